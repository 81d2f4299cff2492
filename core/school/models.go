package school

// Location is a physical teaching site. Names are unique.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Class is a subject taught across locations (eg. "Singing"). Names are unique.
type Class struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LocationCount struct {
	Location
	StudentCount int `json:"student_count"`
}

type ClassCount struct {
	Class
	EnrollmentCount int `json:"enrollment_count"`
}

// Stats is the dashboard summary.
type Stats struct {
	TotalStudents int             `json:"total_students"`
	Locations     []LocationCount `json:"locations"`
	Classes       []ClassCount    `json:"classes"`
	PresentToday  int             `json:"present_today"`
}
