package attendance

import (
	"time"

	"github.com/kalashala/kalashala/core"
)

type Status string

const (
	Present Status = "PRESENT"
	Absent  Status = "ABSENT"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(core.CleanString(s)); st {
	case Present, Absent:
		return st, nil
	}
	return "", core.NewValidationError(nil, core.FieldError{Field: "status", Error: "status must be one of PRESENT ABSENT"})
}

// Attendance is a student's mark for a class on a day. There is at most one per (Date, StudentID, ClassID).
type Attendance struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	ClassID   string    `json:"class_id"`
	Date      time.Time `json:"date"` // start of day, local
	Status    Status    `json:"status"`
}

// RosterEntry is a student expected in class, with its mark for the day if any.
// A nil Mark means unmarked, which is not the same as ABSENT.
type RosterEntry struct {
	StudentID   string      `json:"student_id"`
	StudentName string      `json:"student_name"`
	Mark        *Attendance `json:"mark"`
}

func (e RosterEntry) IsMarked() bool { return e.Mark != nil }

// HistoryEntry is one of a student's past marks, with its class name.
type HistoryEntry struct {
	Date      time.Time `json:"date"`
	ClassID   string    `json:"class_id"`
	ClassName string    `json:"class_name"`
	Status    Status    `json:"status"`
}

// MarkAttendance is the input of a roster toggle. Date accepts a date or a timestamp.
type MarkAttendance struct {
	StudentID string `json:"student_id" validate:"notblank"`
	ClassID   string `json:"class_id" validate:"notblank"`
	Date      string `json:"date" validate:"notblank"`
	Status    string `json:"status" validate:"oneof=PRESENT ABSENT"`
}

func (m *MarkAttendance) Clean() {
	m.StudentID = core.CleanString(m.StudentID)
	m.ClassID = core.CleanString(m.ClassID)
	m.Date = core.CleanString(m.Date)
	m.Status = core.CleanString(m.Status)
}

// RosterQuery holds the raw roster filters; any of them may be blank.
type RosterQuery struct {
	Date       string `query:"date"`
	ClassID    string `query:"class_id"`
	LocationID string `query:"location_id"`
}

// RosterParams are the effective roster filters.
type RosterParams struct {
	Date       time.Time `json:"date"`
	ClassID    string    `json:"class_id"`
	LocationID string    `json:"location_id"`
}
