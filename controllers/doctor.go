package controllers

import (
	"net/http"

	"ClinicCore/services"
	"ClinicCore/util"

	"github.com/gin-gonic/gin"
)

type DoctorController struct {
	service *services.DoctorService
}

func NewDoctorController(service *services.DoctorService) *DoctorController {
	return &DoctorController{service: service}
}

func (dc *DoctorController) Register(api *gin.RouterGroup) {
	api.GET("/doctors", dc.FetchAll)
}

/*
* Doctor directory for scheduling clients, any authenticated role
 */
func (dc *DoctorController) FetchAll(c *gin.Context) {
	doctors, err := dc.service.FetchAll(c.Request.Context())
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}
