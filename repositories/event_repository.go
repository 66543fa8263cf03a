// File: /repositories/event_repository.go
package repositories

import (
	"time"

	"gorm.io/gorm"

	"w2meet-api/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateEvent pushes a new event into the database with its pre-assigned id.
func (r *EventRepository) CreateEvent(event *models.Event) error {
	return r.db.Create(event).Error
}

// GetEventByID returns the event or gorm.ErrRecordNotFound.
func (r *EventRepository) GetEventByID(eventID string) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, "id = ?", eventID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent overwrites the stored event with the new value and returns the
// row as persisted.
func (r *EventRepository) UpdateEvent(eventID string, event *models.Event) (*models.Event, error) {
	event.ID = eventID
	if err := r.db.Save(event).Error; err != nil {
		return nil, err
	}
	return r.GetEventByID(eventID)
}

// DeleteEvent removes the event and returns its id, or gorm.ErrRecordNotFound
// if it did not exist.
func (r *EventRepository) DeleteEvent(eventID string) (string, error) {
	var event models.Event
	if err := r.db.First(&event, "id = ?", eventID).Error; err != nil {
		return "", err
	}

	if err := r.db.Delete(&event).Error; err != nil {
		return "", err
	}

	return event.ID, nil
}

// ListPublicEvents returns public events, newest first.
func (r *EventRepository) ListPublicEvents() ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("is_public = ?", true).Order("created_at DESC").Find(&events).Error
	return events, err
}

// GetExpiredEvents returns every event whose response deadline has passed and
// which has not been notified yet. Read-only; result order is whatever the
// store returns.
func (r *EventRepository) GetExpiredEvents(now time.Time) ([]models.Event, error) {
	deadline := now.UTC().Format(models.TimeLayoutISO)

	var events []models.Event
	err := r.db.Where("response_deadline <= ? AND notified = ?", deadline, false).Find(&events).Error
	return events, err
}

// MarkNotified flips the notified flag with a guarded update so only one
// writer ever observes the transition. Returns false when the flag was
// already set.
func (r *EventRepository) MarkNotified(eventID string) (bool, error) {
	result := r.db.Model(&models.Event{}).
		Where("id = ? AND notified = ?", eventID, false).
		Update("notified", true)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
