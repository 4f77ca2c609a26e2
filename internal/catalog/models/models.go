// Package models holds the enrollment domain entities. Persistence for these
// types lives outside this codebase; the in-memory stores here exist for
// development wiring and tests.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity-type tags used as translation keys. They are deliberately stable
// strings rather than Go type names.
const (
	KindFaculty = "Faculty"
	KindProgram = "Program"
	KindSubject = "Subject"
	KindClass   = "Class"
)

type Faculty struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Program struct {
	ID        uuid.UUID `json:"id"`
	FacultyID uuid.UUID `json:"faculty_id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Years     int       `json:"years"`
}

type Subject struct {
	ID          uuid.UUID `json:"id"`
	FacultyID   uuid.UUID `json:"faculty_id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Credits     int       `json:"credits"`

	// Faculty is populated by reads that join the owning faculty. May be nil.
	Faculty *Faculty `json:"faculty,omitempty"`
}

type Class struct {
	ID        uuid.UUID `json:"id"`
	SubjectID uuid.UUID `json:"subject_id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Capacity  int       `json:"capacity"`
	Semester  string    `json:"semester"`
}

type Student struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentApproved  EnrollmentStatus = "approved"
	EnrollmentRejected  EnrollmentStatus = "rejected"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

type Enrollment struct {
	ID         uuid.UUID        `json:"id"`
	StudentID  uuid.UUID        `json:"student_id"`
	ClassID    uuid.UUID        `json:"class_id"`
	Status     EnrollmentStatus `json:"status"`
	EnrolledAt time.Time        `json:"enrolled_at"`
}

type Result struct {
	ID           uuid.UUID `json:"id"`
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	Score        float64   `json:"score"`
	Grade        string    `json:"grade"`
	GradedAt     time.Time `json:"graded_at"`
}
