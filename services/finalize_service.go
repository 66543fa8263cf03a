// File: /services/finalize_service.go
package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"w2meet-api/models"
	"w2meet-api/utils"
)

// CountSlotVotes tallies availability votes per time-slot identifier across
// all participants. Duplicate entries within one participant's own list are
// counted again; upstream is expected not to produce them, and this layer
// does not second-guess it.
func CountSlotVotes(participants []models.Participant) map[string]int {
	votes := make(map[string]int)

	for _, p := range participants {
		for _, slotID := range p.Availability {
			votes[slotID]++
		}
	}

	return votes
}

// FinalizeEvent computes the winning time slot and venue of an event. It
// never mutates the event: callers decide what to do with the summary. An
// event nobody responded to still finalizes, with empty winners and pax 0.
func FinalizeEvent(event *models.Event) models.FinalizationResult {
	votes := CountSlotVotes(event.Participants)

	// Map iteration order is randomized, so scan slot ids in sorted order to
	// keep the first-wins tie-break deterministic.
	slotIDs := make([]string, 0, len(votes))
	for slotID := range votes {
		slotIDs = append(slotIDs, slotID)
	}
	sort.Strings(slotIDs)

	var startTime models.StartTime
	if winner, ok := utils.MaxBy(slotIDs, func(id string) int { return votes[id] }); ok {
		startTime = decodeSlotID(winner)
	}

	var meetupLocation *models.Establishment
	if winner, ok := utils.MaxBy(event.MeetupLocations, func(e models.Establishment) int { return len(e.VotedBy) }); ok {
		meetupLocation = &winner
	}

	link := ""
	if meetupLocation != nil {
		link = meetupLocation.Link
	}
	if link == "" {
		link = mapsQueryLink(event.Area.Lat, event.Area.Lng)
	}

	return models.FinalizationResult{
		StartTime:          startTime,
		MeetupLocation:     meetupLocation,
		MeetupLocationLink: link,
		Pax:                len(event.Participants),
	}
}

// decodeSlotID splits a composite availability key into its calendar date and
// time-of-day parts. Keys look like "2025-03-09T16:00:00.000ZT09:00": an ISO
// timestamp for the day, then a second "T", then the HH:MM slot.
func decodeSlotID(slotID string) models.StartTime {
	sep := strings.LastIndex(slotID, "T")
	if sep <= 0 {
		return models.StartTime{}
	}

	datePart := slotID[:sep]
	timePart := slotID[sep+1:]

	parsed, err := time.Parse(models.TimeLayoutISO, datePart)
	if err != nil {
		// Not a timestamp we understand; surface the raw parts rather than
		// dropping the winning slot.
		return models.StartTime{Date: datePart, Time: timePart}
	}

	return models.StartTime{
		Date: parsed.Format("2 January 2006"),
		Time: timePart,
	}
}

// mapsQueryLink builds the generic map link used when the winning venue has
// no assigned link, or no venue won at all.
func mapsQueryLink(lat, lng float64) string {
	return fmt.Sprintf("http://maps.google.com/?ll=%s,%s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64))
}
