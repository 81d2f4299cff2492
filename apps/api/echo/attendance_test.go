package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalashala/kalashala/core/attendance"
	"github.com/kalashala/kalashala/core/calendar"
)

func TestAttendanceAPI(t *testing.T) {
	app := setup(t)
	meera := app.admit(t, "Meera", app.jpNagar, app.singing)
	asha := app.admit(t, "Asha", app.jpNagar, app.singing, app.slokha)
	app.admit(t, "Zoya", app.pride, app.singing) // other location
	app.admit(t, "Kiran", app.jpNagar, app.slokha) // other class

	mark := func(t *testing.T, m attendance.MarkAttendance) attendance.Attendance {
		t.Helper()
		rec := app.do(http.MethodPut, "/v1/attendance", marshallObj(t, m))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got attendance.Attendance
		unmarshall(t, rec, &got)
		return got
	}
	roster := func(t *testing.T, path string) RosterResponse {
		t.Helper()
		rec := app.do(http.MethodGet, path)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got RosterResponse
		unmarshall(t, rec, &got)
		return got
	}

	first := mark(t, attendance.MarkAttendance{StudentID: asha.ID, ClassID: app.singing.ID, Date: "2024-03-04T18:30:00", Status: "PRESENT"})
	again := mark(t, attendance.MarkAttendance{StudentID: asha.ID, ClassID: app.singing.ID, Date: "2024-03-04", Status: "ABSENT"})
	assert.Equal(t, first.ID, again.ID, "marking the same day twice updates the mark")
	assert.Equal(t, attendance.Absent, again.Status)

	t.Run("roster", func(t *testing.T) {
		got := roster(t, "/v1/attendance?date=2024-03-04&class_id="+app.singing.ID+"&location_id="+app.jpNagar.ID)
		require.Len(t, got.Entries, 2)
		assert.Equal(t, asha.ID, got.Entries[0].StudentID)
		if assert.NotNil(t, got.Entries[0].Mark) {
			assert.Equal(t, attendance.Absent, got.Entries[0].Mark.Status)
		}
		assert.Equal(t, meera.ID, got.Entries[1].StudentID)
		assert.Nil(t, got.Entries[1].Mark, "unmarked is not absent")
	})

	t.Run("other days are unmarked", func(t *testing.T) {
		got := roster(t, "/v1/attendance?date=2024-03-05&class_id="+app.singing.ID+"&location_id="+app.jpNagar.ID)
		require.Len(t, got.Entries, 2)
		assert.Nil(t, got.Entries[0].Mark)
	})

	t.Run("defaults", func(t *testing.T) {
		got := roster(t, "/v1/attendance")
		assert.Equal(t, app.bharatanatyam.ID, got.ClassID)
		assert.Equal(t, app.jpNagar.ID, got.LocationID)
		assert.True(t, got.Date.Equal(calendar.Today()))
		assert.Empty(t, got.Entries)
	})

	runHttpTests(t, app, []httpTest{
		{
			name:     "invalid status",
			method:   http.MethodPut,
			path:     "/v1/attendance",
			body:     marshallObj(t, attendance.MarkAttendance{StudentID: asha.ID, ClassID: app.singing.ID, Date: "2024-03-04", Status: "LATE"}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"status": "status must be one of [PRESENT ABSENT]"}),
		},
		{
			name:     "invalid date",
			method:   http.MethodPut,
			path:     "/v1/attendance",
			body:     marshallObj(t, attendance.MarkAttendance{StudentID: asha.ID, ClassID: app.singing.ID, Date: "yesterday", Status: "PRESENT"}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "invalid date: yesterday"}),
		},
		{
			name:     "unknown student",
			method:   http.MethodPut,
			path:     "/v1/attendance",
			body:     marshallObj(t, attendance.MarkAttendance{StudentID: "nobody", ClassID: app.singing.ID, Date: "2024-03-04", Status: "PRESENT"}),
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Error: "student or class not found"}),
		},
		{
			name:     "unknown class",
			method:   http.MethodGet,
			path:     "/v1/attendance?class_id=painting",
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Error: "class not found"}),
		},
		{
			name:     "unparseable roster date",
			method:   http.MethodGet,
			path:     "/v1/attendance?date=04/03/2024",
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "invalid date: 04/03/2024"}),
		},
	})
}
