package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/school"
	"github.com/kalashala/kalashala/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

// checkReferences mimics the foreign keys of student and enrollment. Callers must hold the lock.
func (repo *studentRepository) checkReferences(s student.Student) error {
	if _, ok := repo.db.location[s.LocationID]; !ok {
		return school.ErrLocationNotFound
	}
	for _, id := range s.ClassIDs {
		if _, ok := repo.db.class[id]; !ok {
			return school.ErrClassNotFound
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(_ context.Context, s student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s.ClassIDs = core.UniqueStrings(s.ClassIDs)
	if err := repo.checkReferences(s); err != nil {
		return student.Student{}, err
	}

	s.ID = uuid.New().String()
	for _, classID := range s.ClassIDs {
		repo.db.enrollment[enrollmentKey{studentID: s.ID, classID: classID}] = struct{}{}
	}
	classIDs := s.ClassIDs
	s.ClassIDs = nil
	repo.db.student[s.ID] = s

	s.ClassIDs = classIDs
	return s, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, s student.Student) (student.Diff, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.student[s.ID]
	if !ok {
		return student.Diff{}, student.ErrNotFound
	}
	if err := repo.checkReferences(s); err != nil {
		return student.Diff{}, err
	}

	diff := student.Reconcile(repo.db.classIDs(s.ID), s.ClassIDs)
	for _, classID := range diff.Removed {
		delete(repo.db.enrollment, enrollmentKey{studentID: s.ID, classID: classID})
	}
	for _, classID := range diff.Added {
		repo.db.enrollment[enrollmentKey{studentID: s.ID, classID: classID}] = struct{}{}
	}

	s.CreatedAt = orig.CreatedAt
	s.ClassIDs = nil
	repo.db.student[s.ID] = s
	return diff, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.student[id]; !ok {
		return student.ErrNotFound
	}
	repo.db.deleteStudent(id)
	return nil
}

func (repo *studentRepository) listing(s student.Student) student.Listing {
	classes := repo.db.classes(s.ID)
	s.ClassIDs = make([]string, 0, len(classes))
	for _, cls := range classes {
		s.ClassIDs = append(s.ClassIDs, cls.ID)
	}
	return student.Listing{
		Student:  s,
		Location: repo.db.location[s.LocationID],
		Classes:  classes,
	}
}

func (repo *studentRepository) GetStudent(ctx context.Context, id string) (student.Student, error) {
	l, err := repo.GetListing(ctx, id)
	if err != nil {
		return student.Student{}, err
	}
	return l.Student, nil
}

func (repo *studentRepository) GetListing(_ context.Context, id string) (student.Listing, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	s, ok := repo.db.student[id]
	if !ok {
		return student.Listing{}, student.ErrNotFound
	}
	return repo.listing(s), nil
}

func (repo *studentRepository) QueryStudents(_ context.Context, filter *student.QueryFilter, ordering []core.DBOrdering) ([]student.Listing, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Listing, 0, len(repo.db.student))
	for _, s := range repo.db.student {
		l := repo.listing(s)
		// students with search keyword matching their Name or Location name ?
		if filter != nil && filter.Search != "" {
			search := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(l.Name), search) &&
				!strings.Contains(strings.ToLower(l.Location.Name), search) {
				continue
			}
		}
		students = append(students, l)
	}

	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at"}}
	}
	sort.SliceStable(students, func(i, j int) bool {
		for _, ord := range ordering {
			if c := compareStudents(students[i].Student, students[j].Student, ord.Field); c != 0 {
				if ord.Ascending {
					return c < 0
				}
				return c > 0
			}
		}
		return students[i].ID < students[j].ID
	})
	return students, nil
}

func compareStudents(a, b student.Student, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "created_at":
		return compareTimes(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	case "admission_date":
		return compareTimes(a.AdmissionDate.UnixNano(), b.AdmissionDate.UnixNano())
	}
	return 0
}

func compareTimes(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
