package routes

import (
	"context"

	"ClinicCore/config"
	"ClinicCore/controllers"
	"ClinicCore/middleware"
	"ClinicCore/services"

	"github.com/gin-gonic/gin"
)

// Deps carries the constructed services into route registration; nothing here
// reaches for globals.
type Deps struct {
	JWT          *config.JWTManager
	Auth         *services.AuthService
	Appointments *services.AppointmentService
	Records      *services.MedicalRecordService
	Doctors      *services.DoctorService
	Ping         func(ctx context.Context) error
}

func Routes(r *gin.Engine, deps Deps) {
	api := r.Group("/api")

	// public
	controllers.NewHealthController(deps.Ping).Register(api)
	controllers.NewAuthController(deps.Auth, middleware.JWTAuth(deps.JWT)).Register(api)

	// private
	private := api.Group("")
	private.Use(middleware.JWTAuth(deps.JWT))
	controllers.NewAppointmentController(deps.Appointments).Register(private)
	controllers.NewMedicalRecordController(deps.Records).Register(private)
	controllers.NewDoctorController(deps.Doctors).Register(private)
}
