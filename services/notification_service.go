// File: /services/notification_service.go
package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"w2meet-api/models"
)

// EventStore is the slice of the event repository the services depend on.
type EventStore interface {
	CreateEvent(event *models.Event) error
	GetEventByID(eventID string) (*models.Event, error)
	UpdateEvent(eventID string, event *models.Event) (*models.Event, error)
	GetExpiredEvents(now time.Time) ([]models.Event, error)
	MarkNotified(eventID string) (bool, error)
}

// NotificationMailer delivers one finalization email. An error means that
// single delivery failed; it carries no retry obligation.
type NotificationMailer interface {
	SendNotificationEmail(to, subject, text string) error
}

type NotificationService struct {
	store  EventStore
	mailer NotificationMailer
}

func NewNotificationService(store EventStore, mailer NotificationMailer) *NotificationService {
	return &NotificationService{
		store:  store,
		mailer: mailer,
	}
}

// NotifyParticipants finds every event whose response deadline has passed and
// which has not been notified yet, finalizes each one, and emails the outcome
// to every participant that left an address. A store failure skips the whole
// cycle; the next tick retries naturally.
func (s *NotificationService) NotifyParticipants() {
	expiredEvents, err := s.store.GetExpiredEvents(time.Now())
	if err != nil {
		log.Printf("Expired event scan failed: %v", err)
		return
	}

	for i := range expiredEvents {
		s.notifyEvent(&expiredEvents[i])
	}
}

// notifyEvent sends the finalized details to all reachable participants of
// one event, then flips its notified flag. Sends run concurrently and are
// joined before the write-back; a failed send is logged and does not block
// the other participants or the flag update. Best effort: once the flag is
// set, failed sends from this cycle are not retried.
func (s *NotificationService) notifyEvent(event *models.Event) {
	details := FinalizeEvent(event)

	meetAt := event.Area.Name
	if details.MeetupLocation != nil {
		meetAt = details.MeetupLocation.Location.Name
	}

	subject := fmt.Sprintf("[Finalised] %s(%s) Details", event.Name, event.ID)
	body := fmt.Sprintf("Date: %s\nTime: %s\nMeet at: %s\nPax: %d\nNot sure how to get there? Use Google Maps:\n%s",
		details.StartTime.Date,
		details.StartTime.Time,
		meetAt,
		details.Pax,
		details.MeetupLocationLink,
	)

	log.Printf("[%s] Event %s Finalised", time.Now().UTC().Format(models.TimeLayoutISO), event.ID)

	var wg sync.WaitGroup
	for _, p := range event.Participants {
		if p.Email == "" {
			continue
		}

		wg.Add(1)
		go func(p models.Participant) {
			defer wg.Done()
			if err := s.mailer.SendNotificationEmail(p.Email, subject, body); err != nil {
				log.Printf("Failed to notify %s for event %s: %v", p.Email, event.ID, err)
			}
		}(p)
	}
	wg.Wait()

	// Guarded flip so the next scan skips this event. If the process dies
	// between the sends above and this write, the next cycle re-notifies;
	// at-least-once is the accepted contract here.
	flipped, err := s.store.MarkNotified(event.ID)
	if err != nil {
		log.Printf("Failed to mark event %s as notified: %v", event.ID, err)
		return
	}
	if !flipped {
		log.Printf("Event %s was already marked as notified", event.ID)
	}
}
