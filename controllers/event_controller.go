// File: /controllers/event_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"w2meet-api/models"
	"w2meet-api/repositories"
	"w2meet-api/services"
	"w2meet-api/utils"
)

type EventController struct {
	db           *gorm.DB
	eventService *services.EventService
	eventRepo    *repositories.EventRepository
}

func NewEventController(db *gorm.DB, eventService *services.EventService, eventRepo *repositories.EventRepository) *EventController {
	return &EventController{
		db:           db,
		eventService: eventService,
		eventRepo:    eventRepo,
	}
}

type CreateEventRequest struct {
	Name             string           `json:"name" binding:"required"`
	Area             models.Location  `json:"area" binding:"required"`
	DateRange        models.DateRange `json:"dateRange" binding:"required"`
	TimeRange        models.TimeRange `json:"timeRange" binding:"required"`
	ResponseDeadline string           `json:"responseDeadline" binding:"required"`
	IsPublic         *bool            `json:"isPublic"`
}

type RespondRequest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email"`
	Availability []string `json:"availability"`
}

type VoteRequest struct {
	EstablishmentID string `json:"establishmentId" binding:"required"`
	ParticipantID   string `json:"participantId" binding:"required"`
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidLatitude(req.Area.Lat) || !utils.IsValidLongitude(req.Area.Lng) {
		utils.SendValidationError(c, "Area coordinates are out of range")
		return
	}

	// Populated by the optional auth middleware when a token was presented.
	var createdBy *string
	if userID := c.GetString("user_id"); userID != "" {
		createdBy = &userID
	}

	event, err := ec.eventService.CreateEvent(c.Request.Context(), services.CreateEventInput{
		Name:             req.Name,
		Area:             req.Area,
		DateRange:        req.DateRange,
		TimeRange:        req.TimeRange,
		ResponseDeadline: req.ResponseDeadline,
		CreatedBy:        createdBy,
		IsPublic:         req.IsPublic,
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event Creation Successful.", "id": event.ID})
}

func (ec *EventController) GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	event, err := ec.eventRepo.GetEventByID(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event Not Found.", "id": eventID})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (ec *EventController) ListEvents(c *gin.Context) {
	events, err := ec.eventRepo.ListPublicEvents()
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := ec.eventRepo.UpdateEvent(eventID, &event)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")

	deletedID, err := ec.eventRepo.DeleteEvent(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found.", "id": eventID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully deleted event.", "id": deletedID})
}

// RespondToEvent records one participant's availability response.
func (ec *EventController) RespondToEvent(c *gin.Context) {
	eventID := c.Param("id")

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		utils.SendValidationError(c, "Invalid email address")
		return
	}

	event, err := ec.eventService.RecordResponse(eventID, models.Participant{
		ID:           req.ID,
		Name:         req.Name,
		Email:        req.Email,
		Availability: req.Availability,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event Not Found.", "id": eventID})
			return
		}
		utils.SendError(c, http.StatusInternalServerError, "Failed to record response")
		return
	}

	// Track participation on the account when the responder is logged in.
	if userID := c.GetString("user_id"); userID != "" {
		ec.recordParticipation(userID, eventID)
	}

	c.JSON(http.StatusOK, event)
}

// recordParticipation appends the event id to the user's history, once.
func (ec *EventController) recordParticipation(userID, eventID string) {
	var user models.User
	if err := ec.db.First(&user, "id = ?", userID).Error; err != nil {
		return
	}

	for _, id := range user.Events {
		if id == eventID {
			return
		}
	}

	user.Events = append(user.Events, eventID)
	ec.db.Save(&user)
}

// VoteLocation records a participant's vote for one of the event's candidate
// venues.
func (ec *EventController) VoteLocation(c *gin.Context) {
	eventID := c.Param("id")

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := ec.eventService.RecordLocationVote(eventID, req.EstablishmentID, req.ParticipantID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event Not Found.", "id": eventID})
		case errors.Is(err, services.ErrEstablishmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Meetup location not found.", "id": req.EstablishmentID})
		default:
			utils.SendError(c, http.StatusInternalServerError, "Failed to record vote")
		}
		return
	}

	c.JSON(http.StatusOK, event)
}
