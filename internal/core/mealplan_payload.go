package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"kitchenharmony-backend-go/internal/models"
)

// The canonical meal-plan body is the flat shape:
//
//	{"meals": [{"recipeId": "R1", "date": "2024-02-01", "servings": 2}], "dateRange": {"start": ..., "end": ...}}
//
// Older clients send a date-keyed map instead:
//
//	{"2024-02-01": {"breakfast": {"_id": "R3", "servings": 4}}}
//
// DecodeMealPlanPayload converts the latter into the former.

// slotOrder fixes the order of the well-known meal slots within one day. Other slots follow
// alphabetically.
var slotOrder = map[string]int{"breakfast": 0, "lunch": 1, "dinner": 2, "snack": 3}

// recipeSnapshot is the recipe copy stored under a meal slot in the nested shape.
type recipeSnapshot struct {
	ID       string `json:"_id"`
	AltID    string `json:"id"`
	Servings *int   `json:"servings"`
}

// DecodeMealPlanPayload decodes a request body in either accepted shape into the canonical
// request. Any structural problem is reported as ErrInvalidPayload.
func DecodeMealPlanPayload(data []byte) (*models.MealPlanRequest, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, invalidPayload("meal plan payload is missing")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, invalidPayload("meal plan payload must be a JSON object: %v", err)
	}
	if len(top) == 0 {
		return nil, invalidPayload("meal plan payload is empty")
	}

	_, hasMeals := top["meals"]
	_, hasRange := top["dateRange"]
	_, hasName := top["name"]
	if hasMeals || hasRange || hasName {
		var req models.MealPlanRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, invalidPayload("malformed meal plan: %v", err)
		}
		return &req, nil
	}
	return flattenDateMap(top)
}

func flattenDateMap(days map[string]json.RawMessage) (*models.MealPlanRequest, error) {
	type day struct {
		date  time.Time
		slots map[string]*recipeSnapshot
	}

	parsed := make([]day, 0, len(days))
	for key, raw := range days {
		date, err := parseCalendarDate(key)
		if err != nil {
			return nil, invalidPayload("date key %q is not a calendar date", key)
		}
		var slots map[string]*recipeSnapshot
		if err := json.Unmarshal(raw, &slots); err != nil {
			return nil, invalidPayload("meals for %q must map meal slots to recipes: %v", key, err)
		}
		parsed = append(parsed, day{date: date, slots: slots})
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].date.Before(parsed[j].date) })

	// The range spans every date key, including days with no slots filled yet.
	req := &models.MealPlanRequest{
		Meals: make([]models.MealEntryRequest, 0),
		DateRange: &models.DateRangeRequest{
			Start: parsed[0].date.Format(time.DateOnly),
			End:   parsed[len(parsed)-1].date.Format(time.DateOnly),
		},
	}
	for _, d := range parsed {
		for _, slot := range sortedSlots(d.slots) {
			snap := d.slots[slot]
			if snap == nil {
				return nil, invalidPayload("slot %q on %s has no recipe", slot, d.date.Format(time.DateOnly))
			}
			recipeID := snap.ID
			if recipeID == "" {
				recipeID = snap.AltID
			}
			if recipeID == "" {
				return nil, invalidPayload("slot %q on %s has no recipe id", slot, d.date.Format(time.DateOnly))
			}
			req.Meals = append(req.Meals, models.MealEntryRequest{
				RecipeID: recipeID,
				Date:     d.date.Format(time.DateOnly),
				Servings: snap.Servings,
			})
		}
	}
	return req, nil
}

func sortedSlots(slots map[string]*recipeSnapshot) []string {
	names := make([]string, 0, len(slots))
	for name := range slots {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iKnown := slotOrder[strings.ToLower(names[i])]
		rj, jKnown := slotOrder[strings.ToLower(names[j])]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return names[i] < names[j]
		}
	})
	return names
}

// normalizeMealPlan validates a canonical request and produces the stored meals and range.
// A missing range is derived from the earliest and latest meal dates.
func normalizeMealPlan(req *models.MealPlanRequest) ([]models.MealEntry, models.DateRange, error) {
	var dateRange models.DateRange
	if req == nil {
		return nil, dateRange, invalidPayload("meal plan payload is missing")
	}

	meals := make([]models.MealEntry, 0, len(req.Meals))
	for i, m := range req.Meals {
		entry, err := normalizeMealEntry(m.RecipeID, m.Date, m.Servings)
		if err != nil {
			return nil, dateRange, invalidPayload("meals[%d]: %v", i, err)
		}
		meals = append(meals, entry)
	}

	if req.DateRange != nil {
		start, err := parseCalendarDate(req.DateRange.Start)
		if err != nil {
			return nil, dateRange, invalidPayload("dateRange.start %q is not a calendar date", req.DateRange.Start)
		}
		end, err := parseCalendarDate(req.DateRange.End)
		if err != nil {
			return nil, dateRange, invalidPayload("dateRange.end %q is not a calendar date", req.DateRange.End)
		}
		if start.After(end) {
			return nil, dateRange, invalidPayload("dateRange.start is after dateRange.end")
		}
		dateRange = models.DateRange{Start: start, End: end}
		for i, m := range meals {
			if !dateRange.Contains(m.Date) {
				return nil, dateRange, invalidPayload("meals[%d] date %s is outside the date range", i, m.Date.Format(time.DateOnly))
			}
		}
		return meals, dateRange, nil
	}

	if len(meals) == 0 {
		return nil, dateRange, invalidPayload("dateRange is required when there are no meals")
	}
	dateRange = models.DateRange{Start: meals[0].Date, End: meals[0].Date}
	for _, m := range meals[1:] {
		if m.Date.Before(dateRange.Start) {
			dateRange.Start = m.Date
		}
		if m.Date.After(dateRange.End) {
			dateRange.End = m.Date
		}
	}
	return meals, dateRange, nil
}

func normalizeMealEntry(recipeID, date string, servings *int) (models.MealEntry, error) {
	recipeID = strings.TrimSpace(recipeID)
	if recipeID == "" {
		return models.MealEntry{}, errors.New("recipeId is required")
	}
	d, err := parseCalendarDate(date)
	if err != nil {
		return models.MealEntry{}, fmt.Errorf("date %q is not a calendar date", date)
	}
	n := 1
	if servings != nil {
		n = *servings
	}
	if n < 1 {
		return models.MealEntry{}, errors.New("servings must be at least 1")
	}
	return models.MealEntry{RecipeID: recipeID, Date: d, Servings: n}, nil
}
