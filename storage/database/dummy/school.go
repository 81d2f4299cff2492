package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kalashala/kalashala/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) locations() []school.Location {
	locs := make([]school.Location, 0, len(repo.db.location))
	for _, loc := range repo.db.location {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Name < locs[j].Name })
	return locs
}

func (repo *schoolRepository) classes() []school.Class {
	classes := make([]school.Class, 0, len(repo.db.class))
	for _, cls := range repo.db.class {
		classes = append(classes, cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes
}

func (repo *schoolRepository) QueryLocations(_ context.Context) ([]school.Location, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.locations(), nil
}

func (repo *schoolRepository) QueryClasses(_ context.Context) ([]school.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.classes(), nil
}

func (repo *schoolRepository) GetLocationByID(_ context.Context, id string) (school.Location, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if loc, ok := repo.db.location[id]; ok {
		return loc, nil
	}
	return school.Location{}, school.ErrLocationNotFound
}

func (repo *schoolRepository) GetClassByID(_ context.Context, id string) (school.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.class[id]; ok {
		return cls, nil
	}
	return school.Class{}, school.ErrClassNotFound
}

func (repo *schoolRepository) UpsertLocationByName(_ context.Context, loc school.Location) (school.Location, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.location {
		if existing.Name == loc.Name {
			return existing, nil
		}
	}
	loc.ID = uuid.New().String()
	repo.db.location[loc.ID] = loc
	return loc, nil
}

func (repo *schoolRepository) UpsertClassByName(_ context.Context, cls school.Class) (school.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.class {
		if existing.Name == cls.Name {
			return existing, nil
		}
	}
	cls.ID = uuid.New().String()
	repo.db.class[cls.ID] = cls
	return cls, nil
}

func (repo *schoolRepository) GetStats(_ context.Context, since time.Time) (school.Stats, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	stats := school.Stats{TotalStudents: len(repo.db.student)}

	perLocation := make(map[string]int)
	for _, s := range repo.db.student {
		perLocation[s.LocationID]++
	}
	stats.Locations = make([]school.LocationCount, 0, len(repo.db.location))
	for _, loc := range repo.locations() {
		stats.Locations = append(stats.Locations, school.LocationCount{Location: loc, StudentCount: perLocation[loc.ID]})
	}

	perClass := make(map[string]int)
	for key := range repo.db.enrollment {
		perClass[key.classID]++
	}
	stats.Classes = make([]school.ClassCount, 0, len(repo.db.class))
	for _, cls := range repo.classes() {
		stats.Classes = append(stats.Classes, school.ClassCount{Class: cls, EnrollmentCount: perClass[cls.ID]})
	}

	for _, rec := range repo.db.attendance {
		if rec.status == "PRESENT" && !rec.date.Before(since) {
			stats.PresentToday++
		}
	}
	return stats, nil
}
