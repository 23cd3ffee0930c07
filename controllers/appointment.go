package controllers

import (
	"net/http"

	"ClinicCore/apperr"
	"ClinicCore/middleware"
	"ClinicCore/models"
	"ClinicCore/role"
	"ClinicCore/services"
	"ClinicCore/util"

	"github.com/gin-gonic/gin"
)

type AppointmentController struct {
	service *services.AppointmentService
}

func NewAppointmentController(service *services.AppointmentService) *AppointmentController {
	return &AppointmentController{service: service}
}

// Register wires the appointment routes; the caller has already applied JWT auth.
func (ac *AppointmentController) Register(api *gin.RouterGroup) {
	appointments := api.Group("/appointments")
	{
		appointments.POST("", middleware.Authorize(role.AppointmentCreate...), ac.Create)
		appointments.GET("", ac.FetchAll)
		appointments.GET("/:id", ac.FetchByID)
		appointments.PUT("/:id", middleware.Authorize(role.AppointmentUpdate...), ac.Update)
		appointments.PATCH("/:id/cancel", ac.Cancel)
	}
}

type createAppointmentRequest struct {
	PatientID string `json:"patientId" binding:"required"`
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string `json:"time" binding:"required,datetime=15:04"`
	EndTime   string `json:"endTime" binding:"omitempty,datetime=15:04"`
	Modality  string `json:"modality" binding:"omitempty,oneof=presencial remota"`
	Reason    string `json:"reason" binding:"required"`
	Notes     string `json:"notes"`
}

/*
* Bind and validate, then pass to the service
 */
func (ac *AppointmentController) Create(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBindingError(c, err)
		return
	}
	appt, err := ac.service.Create(c.Request.Context(), ident, services.CreateAppointmentInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		StartTime: req.Time,
		EndTime:   req.EndTime,
		Modality:  req.Modality,
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

/*
* Optional query filters; the service narrows by the requester's role first
 */
func (ac *AppointmentController) FetchAll(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	appts, err := ac.service.FetchAll(c.Request.Context(), ident, services.AppointmentListInput{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Status:    c.Query("status"),
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (ac *AppointmentController) FetchByID(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	appt, err := ac.service.FetchByID(c.Request.Context(), ident, c.Param("id"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (ac *AppointmentController) Update(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	var upd models.AppointmentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		util.RespondBindingError(c, err)
		return
	}
	appt, err := ac.service.Update(c.Request.Context(), ident, c.Param("id"), &upd)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (ac *AppointmentController) Cancel(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	appt, err := ac.service.Cancel(c.Request.Context(), ident, c.Param("id"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
