package models

// Voter is one row of the pre-uploaded voter roll. Reference data only;
// nothing in this system ever mutates it.
type Voter struct {
	Name       string
	NationalID string
	RollNumber string
	Center     string
	Village    string
}

// Delegate is a field agent. A delegate is implicitly responsible for every
// voter sharing its (center, village) assignment.
type Delegate struct {
	UserID       string
	Name         string
	Center       string
	Village      string
	SupervisorID string
}

// Supervisor oversees the delegates of one center. The SupervisorID link on
// Delegate is a weak reference; nothing cascades.
type Supervisor struct {
	UserID string
	Name   string
	Center string
}
