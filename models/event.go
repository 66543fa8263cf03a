// File: /models/event.go
package models

import (
	"time"
)

// TimeLayoutISO matches the millisecond ISO-8601 strings the clients write
// into responseDeadline and availability slot identifiers, e.g.
// "2025-03-09T16:00:00.000Z". Stored as strings so deadline comparisons stay
// lexicographic.
const TimeLayoutISO = "2006-01-02T15:04:05.000Z07:00"

// Location is a named geographic point.
type Location struct {
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Establishment is a candidate meetup venue near an event's area. VotedBy
// holds participant ids and only ever grows; entries are unique per
// participant (enforced where votes are recorded, not here).
type Establishment struct {
	ID       string   `json:"id"`
	Location Location `json:"location"`
	Distance float64  `json:"distance"` // meters from the area center
	Rating   float64  `json:"rating"`
	Category []string `json:"category"`
	VotedBy  []string `json:"votedBy"`
	Link     string   `json:"link"`
}

// Participant is a person attached to an event. Availability holds composite
// slot identifiers of the form "<ISO datetime>T<HH:MM>".
type Participant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	Availability []string `json:"availability"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Event is a meetup being scheduled among participants. MeetupLocations is
// fixed at creation time (top 5 nearest search results); afterwards only the
// venues' VotedBy sets change. Once Notified flips to true the event is never
// picked up by the expiry scan again.
type Event struct {
	ID               string            `json:"id" gorm:"primaryKey;size:191"`
	Name             string            `json:"name" gorm:"not null;size:255"`
	Area             Location          `json:"area" gorm:"embedded;embeddedPrefix:area_"`
	DateRange        DateRange         `json:"dateRange" gorm:"embedded;embeddedPrefix:date_"`
	TimeRange        TimeRange         `json:"timeRange" gorm:"embedded;embeddedPrefix:time_"`
	ResponseDeadline string            `json:"responseDeadline" gorm:"not null;size:64;index"`
	MeetupLocations  EstablishmentList `json:"meetupLocations" gorm:"type:json"`
	Participants     ParticipantList   `json:"participants" gorm:"type:json"`
	Notified         bool              `json:"notified" gorm:"default:false;index"`
	CreatedBy        *string           `json:"createdBy" gorm:"size:191"`
	IsPublic         bool              `json:"isPublic" gorm:"default:true"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// StartTime is the winning date and time-of-day of a finalized event. Both
// fields are empty when no participant ever submitted availability.
type StartTime struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// FinalizationResult is the derived summary of a finalized event. It is
// computed on demand and never persisted.
type FinalizationResult struct {
	StartTime          StartTime      `json:"startTime"`
	MeetupLocation     *Establishment `json:"meetupLocation"`
	MeetupLocationLink string         `json:"meetupLocationLink"`
	Pax                int            `json:"pax"`
}
