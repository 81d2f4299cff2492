package attendance

import (
	"time"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/calendar"
	"github.com/kalashala/kalashala/core/school"
)

// ResolveRosterParams fills the blanks of q with defaults: today, the first class and the first location.
// It does not modify q. An ID stays blank when there is nothing to default it to.
func ResolveRosterParams(q RosterQuery, today time.Time, classes []school.Class, locations []school.Location) (RosterParams, error) {
	params := RosterParams{
		Date:       calendar.NormalizeDay(today),
		ClassID:    core.CleanString(q.ClassID),
		LocationID: core.CleanString(q.LocationID),
	}
	if date := core.CleanString(q.Date); date != "" {
		day, err := calendar.ParseDay(date)
		if err != nil {
			return RosterParams{}, err
		}
		params.Date = day
	}
	if params.ClassID == "" && len(classes) > 0 {
		params.ClassID = classes[0].ID
	}
	if params.LocationID == "" && len(locations) > 0 {
		params.LocationID = locations[0].ID
	}
	return params, nil
}
