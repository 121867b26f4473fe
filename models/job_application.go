package models

import (
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationReviewed ApplicationStatus = "REVIEWED"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// JobApplication represents a candidate's application to a job offer.
// One candidate can apply at most once per offer.
type JobApplication struct {
	ID          string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	JobOfferID  string            `json:"jobOfferId" gorm:"type:uuid;not null;index"`
	CandidateID string            `json:"candidateId" gorm:"type:uuid;not null;index"`
	CoverLetter string            `json:"coverLetter" gorm:"type:text"`
	ResumeURL   string            `json:"resumeUrl"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	JobOffer JobOffer `json:"jobOffer,omitempty" gorm:"foreignKey:JobOfferID"`
}

// JobApplicationUpdate model for employer status transitions
type JobApplicationUpdate struct {
	Status ApplicationStatus `json:"status" binding:"required"`
}
