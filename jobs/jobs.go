package jobs

import (
	"context"
	"log"
	"time"

	"ClinicCore/services"

	"github.com/robfig/cron/v3"
)

/*
* Runs every day at 00:05 AM
* Past-dated appointments still pendiente or confirmada become completada
 */
func StartDailyScheduler(appointments *services.AppointmentService) *cron.Cron {
	c := cron.New()
	c.AddFunc("5 0 * * *", func() {
		log.Println("Running daily appointment completion sweep...")
		RunCompletionSweep(appointments)
	})
	c.Start()
	return c
}

func RunCompletionSweep(appointments *services.AppointmentService) {
	today := time.Now().Format("2006-01-02")
	n, err := appointments.CompleteExpired(context.Background(), today)
	if err != nil {
		log.Println("Error from CompleteExpired in daily sweep: ", err)
		return
	}
	log.Println("Completed expired appointments: ", n)
}
