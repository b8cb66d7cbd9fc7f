package pipeline

import "time"

// Status is the lifecycle status of a candidate, independent of its stage.
type Status string

const (
	StatusActive   Status = "active"
	StatusOnHold   Status = "on_hold"
	StatusRejected Status = "rejected"
	StatusHired    Status = "hired"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOnHold, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Candidate is an applicant tracked on a job's hiring pipeline.
type Candidate struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Location          string    `json:"location,omitempty"`
	Position          string    `json:"position"`
	StageID           string    `json:"stage"`
	Rating            int       `json:"rating"`
	AppliedDate       time.Time `json:"applied_date"`
	LastActivity      time.Time `json:"last_activity"`
	Source            string    `json:"source"`
	Experience        string    `json:"experience"`
	SalaryExpectation *float64  `json:"salary_expectation,omitempty"`
	Skills            []string  `json:"skills"`
	Status            Status    `json:"status"`
}

// clone returns a copy that shares no slices or pointers with c.
func (c Candidate) clone() Candidate {
	out := c
	if c.Skills != nil {
		out.Skills = make([]string, len(c.Skills))
		copy(out.Skills, c.Skills)
	}
	if c.SalaryExpectation != nil {
		v := *c.SalaryExpectation
		out.SalaryExpectation = &v
	}
	return out
}

// ClampRating bounds a rating to the 0-5 scale.
func ClampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
