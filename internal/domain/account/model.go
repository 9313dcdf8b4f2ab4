package account

import (
	"time"

	"github.com/google/uuid"
)

// Roles an account can hold. Patients self-register; doctor accounts are
// provisioned out of band.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// Profile is the optional demographic block completed after signup.
type Profile struct {
	Age      int    `json:"age,omitempty"`
	Location string `json:"location,omitempty"`
}

// User is a registered account. UserID is the public 5-digit handle used
// by the front end and by doctors; ID is the internal primary key.
type User struct {
	ID           uuid.UUID `json:"-"`
	UserID       int       `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SearchQuery filters the doctor-facing patient search. Name and Email are
// case-insensitive substring matches; UserID is exact. Zero values mean the
// criterion is unused.
type SearchQuery struct {
	Name   string
	Email  string
	UserID int
}

// Empty reports whether no criterion is set.
func (q SearchQuery) Empty() bool {
	return q.Name == "" && q.Email == "" && q.UserID == 0
}
