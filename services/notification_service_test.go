// File: /services/notification_service_test.go
package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"w2meet-api/models"
)

// fakeEventStore keeps events in memory and mirrors the repository's scan and
// guarded-update semantics.
type fakeEventStore struct {
	mutex   sync.Mutex
	events  map[string]*models.Event
	scanErr error
}

func newFakeEventStore(events ...*models.Event) *fakeEventStore {
	store := &fakeEventStore{events: make(map[string]*models.Event)}
	for _, e := range events {
		store.events[e.ID] = e
	}
	return store
}

func (f *fakeEventStore) CreateEvent(event *models.Event) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventStore) GetEventByID(eventID string) (*models.Event, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	event, ok := f.events[eventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventStore) UpdateEvent(eventID string, event *models.Event) (*models.Event, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	event.ID = eventID
	copied := *event
	f.events[eventID] = &copied
	return event, nil
}

func (f *fakeEventStore) GetExpiredEvents(now time.Time) ([]models.Event, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	deadline := now.UTC().Format(models.TimeLayoutISO)
	var expired []models.Event
	for _, e := range f.events {
		if e.ResponseDeadline <= deadline && !e.Notified {
			expired = append(expired, *e)
		}
	}
	return expired, nil
}

func (f *fakeEventStore) MarkNotified(eventID string) (bool, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	event, ok := f.events[eventID]
	if !ok || event.Notified {
		return false, nil
	}
	event.Notified = true
	return true, nil
}

// fakeMailer records sends and fails the addresses it is told to fail.
type fakeMailer struct {
	mutex sync.Mutex
	sent  []string
	fail  map[string]bool
}

func (f *fakeMailer) SendNotificationEmail(to, subject, text string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.sent = append(f.sent, to)
	if f.fail[to] {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (f *fakeMailer) attempted(to string) bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	for _, addr := range f.sent {
		if addr == to {
			return true
		}
	}
	return false
}

func pastDeadlineEvent(id string, participants ...models.Participant) *models.Event {
	return &models.Event{
		ID:               id,
		Name:             "Board Games",
		Area:             models.Location{Name: "Tampines", Lat: 1.3496, Lng: 103.9568},
		ResponseDeadline: time.Now().Add(-time.Hour).UTC().Format(models.TimeLayoutISO),
		Participants:     models.ParticipantList(participants),
	}
}

func TestNotifyParticipantsSendsAndMarks(t *testing.T) {
	event := pastDeadlineEvent("ev1",
		models.Participant{ID: "p1", Name: "Ann", Email: "ann@example.com"},
		models.Participant{ID: "p2", Name: "Ben"}, // no address, skipped
	)
	store := newFakeEventStore(event)
	mailer := &fakeMailer{}

	NewNotificationService(store, mailer).NotifyParticipants()

	if !mailer.attempted("ann@example.com") {
		t.Error("Expected a send to the participant with an address")
	}
	if len(mailer.sent) != 1 {
		t.Errorf("Expected exactly 1 send attempt, got %d", len(mailer.sent))
	}
	if !store.events["ev1"].Notified {
		t.Error("Expected the event to be marked notified")
	}
}

func TestNotifyParticipantsIsolatesSendFailures(t *testing.T) {
	event := pastDeadlineEvent("ev1",
		models.Participant{ID: "p1", Name: "Ann", Email: "ann@example.com"},
		models.Participant{ID: "p2", Name: "Ben", Email: "ben@example.com"},
		models.Participant{ID: "p3", Name: "Cat", Email: "cat@example.com"},
	)
	store := newFakeEventStore(event)
	mailer := &fakeMailer{fail: map[string]bool{"ben@example.com": true}}

	NewNotificationService(store, mailer).NotifyParticipants()

	for _, addr := range []string{"ann@example.com", "ben@example.com", "cat@example.com"} {
		if !mailer.attempted(addr) {
			t.Errorf("Expected a send attempt to %s", addr)
		}
	}
	if !store.events["ev1"].Notified {
		t.Error("Expected the event to be marked notified despite a failed send")
	}
}

func TestNotifyParticipantsIdempotentAcrossScans(t *testing.T) {
	event := pastDeadlineEvent("ev1",
		models.Participant{ID: "p1", Name: "Ann", Email: "ann@example.com"},
	)
	store := newFakeEventStore(event)
	mailer := &fakeMailer{}
	service := NewNotificationService(store, mailer)

	service.NotifyParticipants()

	// The event is now flagged, so a second scan must not return it.
	expired, err := store.GetExpiredEvents(time.Now())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(expired) != 0 {
		t.Errorf("Expected no expired events after dispatch, got %d", len(expired))
	}

	service.NotifyParticipants()
	if len(mailer.sent) != 1 {
		t.Errorf("Expected no further sends on the second cycle, got %d total", len(mailer.sent))
	}
}

func TestNotifyParticipantsFutureDeadlineUntouched(t *testing.T) {
	event := pastDeadlineEvent("ev1", models.Participant{ID: "p1", Name: "Ann", Email: "ann@example.com"})
	event.ResponseDeadline = time.Now().Add(time.Hour).UTC().Format(models.TimeLayoutISO)
	store := newFakeEventStore(event)
	mailer := &fakeMailer{}

	NewNotificationService(store, mailer).NotifyParticipants()

	if len(mailer.sent) != 0 {
		t.Errorf("Expected no sends before the deadline, got %d", len(mailer.sent))
	}
	if store.events["ev1"].Notified {
		t.Error("Event before its deadline must not be marked notified")
	}
}

func TestNotifyParticipantsScanFailureAbortsCycle(t *testing.T) {
	event := pastDeadlineEvent("ev1", models.Participant{ID: "p1", Name: "Ann", Email: "ann@example.com"})
	store := newFakeEventStore(event)
	store.scanErr = errors.New("store unreachable")
	mailer := &fakeMailer{}

	NewNotificationService(store, mailer).NotifyParticipants()

	if len(mailer.sent) != 0 {
		t.Errorf("Expected no sends when the scan fails, got %d", len(mailer.sent))
	}
	if store.events["ev1"].Notified {
		t.Error("Event must stay unnotified when the scan fails")
	}
}
