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

type MedicalRecordController struct {
	service *services.MedicalRecordService
}

func NewMedicalRecordController(service *services.MedicalRecordService) *MedicalRecordController {
	return &MedicalRecordController{service: service}
}

func (mc *MedicalRecordController) Register(api *gin.RouterGroup) {
	records := api.Group("/medical-records")
	{
		records.POST("", middleware.Authorize(role.MedicalRecordCreate...), mc.Create)
		records.GET("", mc.FetchAll)
		records.GET("/:id", mc.FetchByID)
		records.PUT("/:id", middleware.Authorize(role.MedicalRecordUpdate...), mc.Update)
	}
}

type createMedicalRecordRequest struct {
	Patient     string              `json:"patient" binding:"required"`
	Doctor      string              `json:"doctor" binding:"required"`
	Date        string              `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Type        string              `json:"type" binding:"required,oneof=consulta emergencia control procedimiento"`
	Symptoms    []string            `json:"symptoms"`
	Diagnosis   string              `json:"diagnosis"`
	Treatment   *models.Treatment   `json:"treatment"`
	VitalSigns  *models.VitalSigns  `json:"vitalSigns"`
	Attachments []models.Attachment `json:"attachments"`
	Notes       string              `json:"notes"`
	FollowUp    *models.FollowUp    `json:"followUp"`
}

/*
* Vital-sign ranges are enforced here by the binding tags before the service
* ever sees the payload
 */
func (mc *MedicalRecordController) Create(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	var req createMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBindingError(c, err)
		return
	}
	rec, err := mc.service.Create(c.Request.Context(), ident, services.CreateMedicalRecordInput{
		PatientID:   req.Patient,
		DoctorID:    req.Doctor,
		Date:        req.Date,
		Type:        req.Type,
		Symptoms:    req.Symptoms,
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
		VitalSigns:  req.VitalSigns,
		Attachments: req.Attachments,
		Notes:       req.Notes,
		FollowUp:    req.FollowUp,
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (mc *MedicalRecordController) FetchAll(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	views, err := mc.service.FetchAll(c.Request.Context(), ident, services.MedicalRecordListInput{
		PatientID: c.Query("patientId"),
		DoctorID:  c.Query("doctorId"),
		Type:      c.Query("type"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (mc *MedicalRecordController) FetchByID(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	rec, err := mc.service.FetchByID(c.Request.Context(), ident, c.Param("id"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (mc *MedicalRecordController) Update(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	var upd models.MedicalRecordUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		util.RespondBindingError(c, err)
		return
	}
	rec, err := mc.service.Update(c.Request.Context(), ident, c.Param("id"), &upd)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
