package dummydb

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/kalashala/kalashala/core/school"
	"github.com/kalashala/kalashala/core/student"
)

type (
	// DB is an in-memory store honouring the same uniqueness and cascade rules as the postgres schema.
	// All tables share one lock so cross-table writes are atomic.
	DB struct {
		sync.RWMutex

		location   map[string]school.Location
		class      map[string]school.Class
		student    map[string]student.Student // without ClassIDs
		enrollment map[enrollmentKey]struct{}
		attendance map[attendanceKey]*attendanceRecord
		fee        map[feeKey]*feeRecord
	}

	enrollmentKey struct {
		studentID string
		classID   string
	}

	attendanceKey struct {
		date      int64 // unix nanos of the start of day
		studentID string
		classID   string
	}

	attendanceRecord struct {
		id     string
		date   time.Time
		status string
	}

	feeKey struct {
		studentID string
		period    string
	}

	feeRecord struct {
		id          string
		status      string
		amount      decimal.Decimal
		paymentDate null.Time
		createdAt   time.Time
	}
)

func Open() (*DB, error) {
	db := &DB{
		location:   make(map[string]school.Location),
		class:      make(map[string]school.Class),
		student:    make(map[string]student.Student),
		enrollment: make(map[enrollmentKey]struct{}),
		attendance: make(map[attendanceKey]*attendanceRecord),
		fee:        make(map[feeKey]*feeRecord),
	}
	return db, nil
}

// classes returns the student's enrolled classes ordered by name. Callers must hold the lock.
func (db *DB) classes(studentID string) []school.Class {
	classes := []school.Class{}
	for key := range db.enrollment {
		if key.studentID == studentID {
			classes = append(classes, db.class[key.classID])
		}
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].Name != classes[j].Name {
			return classes[i].Name < classes[j].Name
		}
		return classes[i].ID < classes[j].ID
	})
	return classes
}

// classIDs returns the student's enrolled class ids ordered by class name. Callers must hold the lock.
func (db *DB) classIDs(studentID string) []string {
	classes := db.classes(studentID)
	ids := make([]string, 0, len(classes))
	for _, cls := range classes {
		ids = append(ids, cls.ID)
	}
	return ids
}

// deleteStudent removes the student and everything it owns. Callers must hold the write lock.
func (db *DB) deleteStudent(id string) {
	delete(db.student, id)
	for key := range db.enrollment {
		if key.studentID == id {
			delete(db.enrollment, key)
		}
	}
	for key := range db.attendance {
		if key.studentID == id {
			delete(db.attendance, key)
		}
	}
	for key := range db.fee {
		if key.studentID == id {
			delete(db.fee, key)
		}
	}
}

// ChildRows counts the enrollments, attendance marks and fees referencing studentID.
func (db *DB) ChildRows(studentID string) (enrollments, marks, fees int) {
	db.RLock()
	defer db.RUnlock()

	for key := range db.enrollment {
		if key.studentID == studentID {
			enrollments++
		}
	}
	for key := range db.attendance {
		if key.studentID == studentID {
			marks++
		}
	}
	for key := range db.fee {
		if key.studentID == studentID {
			fees++
		}
	}
	return
}
