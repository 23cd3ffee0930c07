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

type AuthController struct {
	service *services.AuthService
	auth    gin.HandlerFunc
}

func NewAuthController(service *services.AuthService, auth gin.HandlerFunc) *AuthController {
	return &AuthController{service: service, auth: auth}
}

func (ac *AuthController) Register(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", ac.RegisterUser)
		auth.POST("/login", ac.Login)
		auth.GET("/profile", ac.auth, ac.Profile)
	}
}

type registerRequest struct {
	Name         string                `json:"name" binding:"required"`
	Email        string                `json:"email" binding:"required,email"`
	Password     string                `json:"password" binding:"required,min=6"`
	Role         string                `json:"role" binding:"required,oneof=patient doctor admin"`
	DocumentID   string                `json:"documentId" binding:"required"`
	DocumentType string                `json:"documentType"`
	BirthDate    string                `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Phone        string                `json:"phone"`
	Address      string                `json:"address"`
	Specialty    string                `json:"specialty"`
	License      string                `json:"licenseNumber"`
	Schedule     []models.ScheduleSlot `json:"schedule"`
	History      string                `json:"medicalHistory"`
	Insurance    string                `json:"insuranceNumber"`
}

/*
* Bind and validate the registration payload
* Pass the profile and plaintext password to the service
 */
func (ac *AuthController) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBindingError(c, err)
		return
	}
	r, _ := role.Parse(req.Role)
	user := &models.User{
		Name:            req.Name,
		Email:           req.Email,
		Role:            r,
		DocumentID:      req.DocumentID,
		DocumentType:    req.DocumentType,
		BirthDate:       req.BirthDate,
		Phone:           req.Phone,
		Address:         req.Address,
		Specialty:       req.Specialty,
		LicenseNumber:   req.License,
		Schedule:        req.Schedule,
		MedicalHistory:  req.History,
		InsuranceNumber: req.Insurance,
	}
	token, profile, err := ac.service.Register(c.Request.Context(), user, req.Password)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": profile})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBindingError(c, err)
		return
	}
	token, profile, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": profile})
}

func (ac *AuthController) Profile(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		util.RespondError(c, apperr.InvalidToken(util.INVALID_TOKEN))
		return
	}
	profile, err := ac.service.Profile(c.Request.Context(), ident.UserID)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
