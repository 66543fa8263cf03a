// File: /services/event_service.go
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math/big"

	"github.com/google/uuid"

	"w2meet-api/models"
)

const (
	// Venue candidates are fixed at creation: top results nearest the area,
	// capped so the voting UI stays small.
	maxMeetupLocations = 5
	searchRadiusMeters = 500
)

var (
	ErrEstablishmentNotFound = errors.New("establishment not found on event")
)

// PlacesSearcher is the venue lookup the event creation flow depends on.
type PlacesSearcher interface {
	SearchEstablishments(ctx context.Context, center models.Location, radius uint, categories ...string) ([]models.Establishment, error)
}

type EventService struct {
	store  EventStore
	places PlacesSearcher
}

func NewEventService(store EventStore, places PlacesSearcher) *EventService {
	return &EventService{
		store:  store,
		places: places,
	}
}

// CreateEventInput is the client-end form; id and meetupLocations are not yet
// populated.
type CreateEventInput struct {
	Name             string
	Area             models.Location
	DateRange        models.DateRange
	TimeRange        models.TimeRange
	ResponseDeadline string
	CreatedBy        *string
	IsPublic         *bool
}

// CreateEvent completes the form into a full event: assigns a shareable id,
// seeds the venue candidates from the places search, and persists it.
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	event := &models.Event{
		ID:               generateEventID(),
		Name:             input.Name,
		Area:             input.Area,
		DateRange:        input.DateRange,
		TimeRange:        input.TimeRange,
		ResponseDeadline: input.ResponseDeadline,
		MeetupLocations:  s.initMeetupLocations(ctx, input.Area),
		Participants:     models.ParticipantList{},
		Notified:         false,
		CreatedBy:        input.CreatedBy,
		IsPublic:         isPublic,
	}

	if err := s.store.CreateEvent(event); err != nil {
		return nil, err
	}

	return event, nil
}

// initMeetupLocations queries venues around the area center. A failed search
// defaults to no available meetup locations rather than failing creation.
func (s *EventService) initMeetupLocations(ctx context.Context, area models.Location) models.EstablishmentList {
	if s.places == nil {
		return models.EstablishmentList{}
	}

	results, err := s.places.SearchEstablishments(ctx, area, searchRadiusMeters, "cafe", "bus_station")
	if err != nil {
		log.Printf("Places search failed for area %q: %v", area.Name, err)
		return models.EstablishmentList{}
	}

	if len(results) > maxMeetupLocations {
		results = results[:maxMeetupLocations]
	}

	return models.EstablishmentList(results)
}

// RecordResponse stores a participant's availability on the event. A repeat
// response from the same participant id replaces their earlier one; anyone
// else is appended. Participants are never removed.
func (s *EventService) RecordResponse(eventID string, participant models.Participant) (*models.Event, error) {
	event, err := s.store.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.Availability == nil {
		participant.Availability = []string{}
	}

	replaced := false
	for i := range event.Participants {
		if event.Participants[i].ID == participant.ID {
			event.Participants[i] = participant
			replaced = true
			break
		}
	}
	if !replaced {
		event.Participants = append(event.Participants, participant)
	}

	return s.store.UpdateEvent(event.ID, event)
}

// RecordLocationVote adds the participant to a venue's votedBy set. The set
// only grows and holds each participant at most once; a repeat vote is a
// no-op, not an error.
func (s *EventService) RecordLocationVote(eventID, establishmentID, participantID string) (*models.Event, error) {
	event, err := s.store.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	for i := range event.MeetupLocations {
		if event.MeetupLocations[i].ID != establishmentID {
			continue
		}

		for _, voter := range event.MeetupLocations[i].VotedBy {
			if voter == participantID {
				return event, nil
			}
		}

		event.MeetupLocations[i].VotedBy = append(event.MeetupLocations[i].VotedBy, participantID)
		return s.store.UpdateEvent(event.ID, event)
	}

	return nil, ErrEstablishmentNotFound
}

// generateEventID produces a short shareable identifier for a new event.
func generateEventID() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	id := make([]byte, 6)

	for i := range id {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		id[i] = alphabet[num.Int64()]
	}

	return string(id)
}
