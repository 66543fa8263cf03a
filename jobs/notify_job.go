// File: /jobs/notify_job.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"w2meet-api/repositories"
	"w2meet-api/services"
)

// NotifyJob periodically scans for events past their response deadline and
// dispatches finalization emails. One instance is started from main; nothing
// guards against starting it twice.
type NotifyJob struct {
	db                  *gorm.DB
	notificationService *services.NotificationService
	ticker              *time.Ticker
	done                chan bool
}

// NewNotifyJob creates the notification job with its own repository wiring.
func NewNotifyJob(db *gorm.DB, mailer services.NotificationMailer, interval time.Duration) *NotifyJob {
	eventRepo := repositories.NewEventRepository(db)

	return &NotifyJob{
		db:                  db,
		notificationService: services.NewNotificationService(eventRepo, mailer),
		ticker:              time.NewTicker(interval),
		done:                make(chan bool),
	}
}

// Start begins the notification job
func (j *NotifyJob) Start() {
	fmt.Println("Event notification job started")

	go func() {
		// Run immediately on start
		j.scan()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.scan()
			case <-j.done:
				fmt.Println("Event notification job stopped")
				return
			}
		}
	}()
}

// Stop stops the notification job
func (j *NotifyJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

// scan runs one expiry-scan-and-dispatch cycle. Cycles are expected to be
// short relative to the interval; overlapping cycles are not prevented.
func (j *NotifyJob) scan() {
	j.notificationService.NotifyParticipants()
}
