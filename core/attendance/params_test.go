package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kalashala/kalashala/core/calendar"
	"github.com/kalashala/kalashala/core/school"
)

func TestResolveRosterParams(t *testing.T) {
	today := time.Date(2024, 1, 15, 16, 20, 0, 0, time.Local)
	classes := []school.Class{{ID: "c1", Name: "Bharatanatyam"}, {ID: "c2", Name: "Singing"}}
	locations := []school.Location{{ID: "l1", Name: "JP Nagar"}, {ID: "l2", Name: "Pride Apartment"}}

	tests := []struct {
		name      string
		q         RosterQuery
		classes   []school.Class
		locations []school.Location
		want      RosterParams
		wantErr   bool
	}{
		{
			name: "all defaults", classes: classes, locations: locations,
			want: RosterParams{Date: calendar.NormalizeDay(today), ClassID: "c1", LocationID: "l1"},
		},
		{
			name: "provided", q: RosterQuery{Date: "2024-01-10", ClassID: "c2", LocationID: " l2 "},
			classes: classes, locations: locations,
			want: RosterParams{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local), ClassID: "c2", LocationID: "l2"},
		},
		{
			name: "nothing to default to",
			want: RosterParams{Date: calendar.NormalizeDay(today)},
		},
		{name: "invalid date", q: RosterQuery{Date: "yesterday"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := tt.q
			got, err := ResolveRosterParams(tt.q, today, tt.classes, tt.locations)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResolveRosterParams() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, orig, tt.q, "query must not be modified")
			if tt.wantErr {
				assert.True(t, calendar.IsInvalidDate(err))
				return
			}
			assert.True(t, got.Date.Equal(tt.want.Date), "Date = %v, want %v", got.Date, tt.want.Date)
			assert.Equal(t, tt.want.ClassID, got.ClassID)
			assert.Equal(t, tt.want.LocationID, got.LocationID)
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" PRESENT ")
	assert.NoError(t, err)
	assert.Equal(t, Present, st)

	_, err = ParseStatus("LATE")
	assert.Error(t, err)
}
