// File: /services/event_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"w2meet-api/models"
)

// fakePlaces returns a canned result set so creation can be tested without
// the maps API.
type fakePlaces struct {
	results []models.Establishment
	err     error
}

func (f *fakePlaces) SearchEstablishments(ctx context.Context, center models.Location, radius uint, categories ...string) ([]models.Establishment, error) {
	return f.results, f.err
}

func TestCreateEventCapsMeetupLocations(t *testing.T) {
	results := make([]models.Establishment, 7)
	for i := range results {
		results[i] = models.Establishment{ID: string(rune('a' + i)), VotedBy: []string{}}
	}

	store := newFakeEventStore()
	service := NewEventService(store, &fakePlaces{results: results})

	event, err := service.CreateEvent(context.Background(), CreateEventInput{
		Name:             "Picnic",
		Area:             models.Location{Name: "Botanic Gardens", Lat: 1.3138, Lng: 103.8159},
		ResponseDeadline: "2025-03-01T00:00:00.000Z",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if len(event.MeetupLocations) != 5 {
		t.Errorf("Expected venue candidates capped at 5, got %d", len(event.MeetupLocations))
	}
	if len(event.ID) != 6 {
		t.Errorf("Expected a 6 character event id, got %q", event.ID)
	}
	if event.Notified {
		t.Error("New events must start unnotified")
	}
	if !event.IsPublic {
		t.Error("Events default to public")
	}
}

func TestCreateEventPlacesFailureDefaultsToNoVenues(t *testing.T) {
	store := newFakeEventStore()
	service := NewEventService(store, &fakePlaces{err: errors.New("quota exceeded")})

	event, err := service.CreateEvent(context.Background(), CreateEventInput{
		Name:             "Picnic",
		Area:             models.Location{Name: "Botanic Gardens", Lat: 1.3138, Lng: 103.8159},
		ResponseDeadline: "2025-03-01T00:00:00.000Z",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if len(event.MeetupLocations) != 0 {
		t.Errorf("Expected no venue candidates on search failure, got %d", len(event.MeetupLocations))
	}
}

func TestRecordResponseAppendsAndReplaces(t *testing.T) {
	event := pastDeadlineEvent("ev1")
	store := newFakeEventStore(event)
	service := NewEventService(store, nil)

	updated, err := service.RecordResponse("ev1", models.Participant{
		Name:         "Ann",
		Email:        "ann@example.com",
		Availability: []string{"2025-03-09T16:00:00.000ZT09:00"},
	})
	if err != nil {
		t.Fatalf("RecordResponse failed: %v", err)
	}
	if len(updated.Participants) != 1 {
		t.Fatalf("Expected 1 participant, got %d", len(updated.Participants))
	}
	if updated.Participants[0].ID == "" {
		t.Error("Expected an id to be assigned to a new participant")
	}

	// A repeat response under the same id replaces the availability instead
	// of adding a second participant.
	annID := updated.Participants[0].ID
	updated, err = service.RecordResponse("ev1", models.Participant{
		ID:           annID,
		Name:         "Ann",
		Email:        "ann@example.com",
		Availability: []string{"2025-03-10T16:00:00.000ZT14:00"},
	})
	if err != nil {
		t.Fatalf("RecordResponse failed: %v", err)
	}
	if len(updated.Participants) != 1 {
		t.Errorf("Expected repeat response to replace, got %d participants", len(updated.Participants))
	}
	if updated.Participants[0].Availability[0] != "2025-03-10T16:00:00.000ZT14:00" {
		t.Errorf("Expected replaced availability, got %v", updated.Participants[0].Availability)
	}
}

func TestRecordLocationVoteDeduplicates(t *testing.T) {
	event := pastDeadlineEvent("ev1")
	event.MeetupLocations = models.EstablishmentList{
		{ID: "e1", Location: models.Location{Name: "Cafe"}, VotedBy: []string{}},
	}
	store := newFakeEventStore(event)
	service := NewEventService(store, nil)

	if _, err := service.RecordLocationVote("ev1", "e1", "p1"); err != nil {
		t.Fatalf("RecordLocationVote failed: %v", err)
	}
	if _, err := service.RecordLocationVote("ev1", "e1", "p1"); err != nil {
		t.Fatalf("Repeat vote failed: %v", err)
	}

	stored, _ := store.GetEventByID("ev1")
	if len(stored.MeetupLocations[0].VotedBy) != 1 {
		t.Errorf("Expected votedBy to hold each participant once, got %v", stored.MeetupLocations[0].VotedBy)
	}
}

func TestRecordLocationVoteUnknownEstablishment(t *testing.T) {
	event := pastDeadlineEvent("ev1")
	store := newFakeEventStore(event)
	service := NewEventService(store, nil)

	if _, err := service.RecordLocationVote("ev1", "nope", "p1"); !errors.Is(err, ErrEstablishmentNotFound) {
		t.Errorf("Expected ErrEstablishmentNotFound, got %v", err)
	}
}
