package echoapi

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalashala/kalashala/core/attendance"
	"github.com/kalashala/kalashala/core/calendar"
	"github.com/kalashala/kalashala/core/report"
)

func TestReportAPI(t *testing.T) {
	app := setup(t)
	ctx := context.Background()
	asha := app.admit(t, "Asha", app.jpNagar, app.singing, app.slokha)
	meera := app.admit(t, "Meera", app.pride, app.singing)

	march, err := calendar.ParseDay("2024-03-04")
	require.NoError(t, err)
	today := calendar.Today()
	for _, m := range []struct {
		studentID, classID string
		day                time.Time
		status             attendance.Status
	}{
		{asha.ID, app.singing.ID, today, attendance.Present},
		{asha.ID, app.slokha.ID, today, attendance.Absent},
		{meera.ID, app.singing.ID, today, attendance.Present},
		{meera.ID, app.singing.ID, march, attendance.Absent},
	} {
		_, err := app.attend.Mark(ctx, m.studentID, m.classID, m.day, m.status)
		require.NoError(t, err)
	}

	build := func(t *testing.T, path string) []report.Row {
		t.Helper()
		rec := app.do(http.MethodGet, path)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var rows []report.Row
		unmarshall(t, rec, &rows)
		return rows
	}

	t.Run("weekly by default", func(t *testing.T) {
		rows := build(t, "/v1/reports")
		require.Len(t, rows, 3)
		assert.Equal(t, "Asha", rows[0].StudentName)
		assert.Equal(t, "Singing", rows[0].ClassName)
		assert.Equal(t, "Slokha", rows[1].ClassName)
		assert.Equal(t, "Meera", rows[2].StudentName)
	})

	t.Run("class filter", func(t *testing.T) {
		rows := build(t, "/v1/reports?period=weekly&class_id="+app.slokha.ID)
		require.Len(t, rows, 1)
		assert.Equal(t, "ABSENT", rows[0].Status)
	})

	t.Run("month of a given year", func(t *testing.T) {
		rows := build(t, "/v1/reports?period=2&year=2024&class_id=ALL")
		require.Len(t, rows, 1)
		assert.Equal(t, "Meera", rows[0].StudentName)
		assert.Equal(t, "Pride Apartment", rows[0].LocationName)
		assert.True(t, march.Equal(rows[0].Date))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, build(t, "/v1/reports?period=2&year=1999"))
	})

	t.Run("export", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/reports/export?period=2&year=2024")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, csvContentType, rec.Header().Get("Content-Type"))
		wantName := report.FileName("2", time.Now())
		assert.Equal(t, `attachment; filename="`+wantName+`"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(wantName, "attendance_report_month_3_"))

		want := "Date,StudentName,Status,Class,Location\n" +
			"2024-03-04,Meera,ABSENT,Singing,Pride Apartment\n"
		assert.Equal(t, want, rec.Body.String())
	})

	runHttpTests(t, app, []httpTest{
		{
			name:     "unknown period",
			method:   http.MethodGet,
			path:     "/v1/reports?period=daily",
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "unknown period: daily"}),
		},
		{
			name:     "unknown class",
			method:   http.MethodGet,
			path:     "/v1/reports/export?period=weekly&class_id=painting",
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Error: "class not found"}),
		},
	})
}
