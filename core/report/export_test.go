package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// assertText fails with a unified diff when got differs from want.
func assertText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	t.Errorf("unexpected export:\n%s", diff)
}

func TestExportText(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		want string
	}{
		{name: "empty", rows: nil, want: "Date,StudentName,Status,Class,Location\n"},
		{
			name: "plain",
			rows: []Row{
				{Date: day(2024, 1, 16), StudentName: "Asha", Status: "PRESENT", ClassName: "Singing", LocationName: "JP Nagar"},
				{Date: day(2024, 1, 15), StudentName: "Ravi", Status: "ABSENT", ClassName: "Slokha", LocationName: "Pride Apartment"},
			},
			want: "Date,StudentName,Status,Class,Location\n" +
				"2024-01-16,Asha,PRESENT,Singing,JP Nagar\n" +
				"2024-01-15,Ravi,ABSENT,Slokha,Pride Apartment\n",
		},
		{
			name: "quoting",
			rows: []Row{
				{Date: day(2024, 1, 15), StudentName: "Doe, Jane", Status: "PRESENT", ClassName: `The "Best" Class`, LocationName: "Line\nBreak"},
			},
			want: "Date,StudentName,Status,Class,Location\n" +
				"2024-01-15,\"Doe, Jane\",PRESENT,\"The \"\"Best\"\" Class\",\"Line\nBreak\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExportText(tt.rows)
			require.NoError(t, err)
			assertText(t, tt.want, string(got))

			again, err := ExportText(tt.rows)
			require.NoError(t, err)
			assert.Equal(t, got, again, "export must be repeatable")
		})
	}
}

func TestExportText_roundTrip(t *testing.T) {
	rows := []Row{{Date: day(2024, 1, 15), StudentName: "Doe, Jane", Status: "PRESENT", ClassName: "Singing", LocationName: "JP Nagar"}}
	text, err := ExportText(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(text)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"2024-01-15", "Doe, Jane", "PRESENT", "Singing", "JP Nagar"}, records[1])
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 6, 10, 18, 0, 0, 0, time.Local)
	assert.Equal(t, "attendance_report_weekly_2024-06-10.csv", FileName("WEEKLY", now))
	assert.Equal(t, "attendance_report_yearly_2024-06-10.csv", FileName("yearly", now))
	assert.Equal(t, "attendance_report_month_2_2024-06-10.csv", FileName("1", now))
}
