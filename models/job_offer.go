package models

import (
	"time"
)

type JobOfferStatus string

const (
	JobOfferDraft     JobOfferStatus = "DRAFT"
	JobOfferPublished JobOfferStatus = "PUBLISHED"
	JobOfferClosed    JobOfferStatus = "CLOSED"
)

// JobOffer represents a job posting created by an employer
type JobOffer struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	EmployerID  string         `json:"employerId" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"not null" binding:"required"`
	Description string         `json:"description" gorm:"type:text"`
	CompanyName string         `json:"companyName"`
	Location    string         `json:"location"`
	SalaryMin   int            `json:"salaryMin"`
	SalaryMax   int            `json:"salaryMax"`
	Status      JobOfferStatus `json:"status" gorm:"type:varchar(20);default:'DRAFT'"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   *time.Time     `json:"deletedAt,omitempty" gorm:"index"`
}

// JobOfferCreate model for creating a job offer
// @Description model for creating a job offer
type JobOfferCreate struct {
	Title       string `json:"title" binding:"required" example:"Backend developer"`
	Description string `json:"description" example:"We build job boards."`
	CompanyName string `json:"companyName" example:"Acme Inc."`
	Location    string `json:"location" example:"Remote"`
	SalaryMin   int    `json:"salaryMin" example:"45000"`
	SalaryMax   int    `json:"salaryMax" example:"65000"`
}

// JobOfferUpdate model for updating a job offer
type JobOfferUpdate struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	CompanyName *string         `json:"companyName"`
	Location    *string         `json:"location"`
	SalaryMin   *int            `json:"salaryMin"`
	SalaryMax   *int            `json:"salaryMax"`
	Status      *JobOfferStatus `json:"status"`
}
