// Package itinerary implements the trip-planning domain computations:
// itinerary skeleton generation from a date range, normalization of
// client-supplied replacement itineraries, and cost aggregation.
package itinerary

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"TRIPPLANNER_BACK-END/internal/models"
)

// DayInput is a day object as supplied by a client replacing an itinerary.
// Activity costs arrive as arbitrary JSON (number, numeric string, empty
// string, or null) and are coerced during normalization.
type DayInput struct {
	Day        string          `json:"day"`
	Activities []ActivityInput `json:"activities"`
}

// ActivityInput mirrors models.Activity with an uncoerced cost.
type ActivityInput struct {
	StartTime string `json:"startTime"`
	Activity  string `json:"activity"`
	Cost      any    `json:"cost"`
	Notes     string `json:"notes"`
}

// NumDays returns the inclusive day count between two calendar dates.
// Both ends are normalized to UTC midnight before subtraction, so
// time-of-day and timezone offsets never affect the count. The delta is
// computed in Unix seconds because time.Duration saturates on
// multi-century ranges. Inverted ranges clamp to 1, a defensive floor,
// not date validation.
func NumDays(start, end time.Time) int {
	s := utcMidnight(start)
	e := utcMidnight(end)
	days := int((e.Unix()-s.Unix())/86400) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Skeleton builds the initial itinerary for a trip: NumDays entries labeled
// "Day 1".."Day N", each with an empty activity list.
func Skeleton(start, end time.Time) []models.ItineraryDay {
	days := make([]models.ItineraryDay, NumDays(start, end))
	for i := range days {
		days[i] = models.ItineraryDay{
			Day:        fmt.Sprintf("Day %d", i+1),
			Activities: []models.Activity{},
		}
	}
	return days
}

// Normalize converts a client-supplied replacement itinerary into its stored
// form. The result has exactly one entry per input day; the itinerary length
// is never reconciled against the trip's date range here. Missing or empty
// day labels fall back to the positional "Day N". Costs that do not parse as
// numbers are stored as nil, never as zero.
func Normalize(days []DayInput) []models.ItineraryDay {
	out := make([]models.ItineraryDay, len(days))
	for i, d := range days {
		label := d.Day
		if label == "" {
			label = fmt.Sprintf("Day %d", i+1)
		}
		activities := make([]models.Activity, len(d.Activities))
		for j, a := range d.Activities {
			activities[j] = models.Activity{
				StartTime: a.StartTime,
				Activity:  a.Activity,
				Cost:      coerceCost(a.Cost),
				Notes:     a.Notes,
			}
		}
		out[i] = models.ItineraryDay{Day: label, Activities: activities}
	}
	return out
}

// coerceCost maps a raw JSON cost value to a stored cost.
// Numbers pass through; numeric strings are parsed; everything else
// (null, "", non-numeric strings, booleans, objects) becomes nil.
func coerceCost(v any) *float64 {
	switch c := v.(type) {
	case float64:
		return &c
	case string:
		s := strings.TrimSpace(c)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
		return nil
	default:
		return nil
	}
}

// Summary is the cost roll-up for one trip. It is computed fresh on every
// read and never persisted, so it always reflects the stored itinerary.
type Summary struct {
	Total       float64   `json:"total"`
	PerTraveler float64   `json:"perTraveler"`
	PerDay      []float64 `json:"perDay"`
}

// Cost sums all numeric activity costs across the itinerary. Nil costs
// contribute zero to the sum but are not mutated in storage. A traveler
// count below 1 divides as 1.
func Cost(days []models.ItineraryDay, travelers int) Summary {
	perDay := make([]float64, len(days))
	var total float64
	for i, d := range days {
		for _, a := range d.Activities {
			if a.Cost != nil {
				perDay[i] += *a.Cost
			}
		}
		total += perDay[i]
	}
	if travelers < 1 {
		travelers = 1
	}
	return Summary{
		Total:       total,
		PerTraveler: total / float64(travelers),
		PerDay:      perDay,
	}
}

func utcMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
