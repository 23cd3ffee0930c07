package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ClinicCore/config"
	"ClinicCore/jobs"
	"ClinicCore/migrations"
	"ClinicCore/routes"
	"ClinicCore/services"
	"ClinicCore/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	run()
}

func run() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error in loading the ENV")
	}
	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := config.ConnectMongo(ctx, cfg)
	if err != nil {
		log.Fatal("Unable to connect to mongo: ", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Println("Error while disconnecting mongo: ", err)
		}
	}()

	if err := migrations.Run(ctx, db); err != nil {
		log.Fatal("Unable to ensure indexes: ", err)
	}

	deps := buildDeps(cfg, client, db)
	r := newRouter(deps)

	scheduler := jobs.StartDailyScheduler(deps.Appointments)
	defer scheduler.Stop()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("Listening on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Error during shutdown: ", err)
	}
}

/*
* Construct every component with its explicitly passed handle
 */
func buildDeps(cfg config.Config, client *mongo.Client, db *mongo.Database) routes.Deps {
	jwtMgr := config.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	users := store.NewMongoUserStore(db)
	appts := store.NewMongoAppointmentStore(db)
	records := store.NewMongoMedicalRecordStore(db)

	return routes.Deps{
		JWT:          jwtMgr,
		Auth:         services.NewAuthService(users, jwtMgr),
		Appointments: services.NewAppointmentService(appts, users),
		Records:      services.NewMedicalRecordService(records, users),
		Doctors:      services.NewDoctorService(users),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}
}

func newRouter(deps routes.Deps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.Routes(r, deps)
	return r
}
