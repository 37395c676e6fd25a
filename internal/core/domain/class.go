package domain

import (
	"errors"
	"time"
)

type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassDenied   ClassStatus = "denied"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidID    = errors.New("invalid id")
	ErrClassFull    = errors.New("class has no available seats")
	ErrInvalidClass = errors.New("invalid class")
)

// Class is a course offered by an instructor.
type Class struct {
	ID              string      `json:"_id"`
	Name            string      `json:"name"`
	Image           string      `json:"image,omitempty"`
	InstructorName  string      `json:"instructorName"`
	InstructorEmail string      `json:"instructorEmail"`
	AvailableSeats  int         `json:"availableSeats"`
	Price           float64     `json:"price"`
	Enrolled        int         `json:"enrolled"`
	Status          ClassStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Instructor is a read-only profile shown on the instructors page.
type Instructor struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Image        string   `json:"image,omitempty"`
	ClassesTaken int      `json:"classesTaken"`
	ClassNames   []string `json:"classNames,omitempty"`
}
