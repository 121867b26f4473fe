package models

import (
	"time"
)

// Contact represents a contact form submission
// @Description full model of a contact request
type Contact struct {
	ID          string     `json:"id" gorm:"primaryKey;default:gen_random_uuid()"`
	FirstName   string     `json:"firstName" gorm:"column:first_name" binding:"required"`
	LastName    string     `json:"lastName" gorm:"column:last_name" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Subject     string     `json:"subject" binding:"required"`
	Message     string     `json:"message" gorm:"type:text" binding:"required"`
	SubmittedAt time.Time  `json:"submittedAt" gorm:"column:submitted_at;default:CURRENT_TIMESTAMP"`
	CreatedAt   time.Time  `json:"createdAt" swaggerignore:"true"`
	UpdatedAt   time.Time  `json:"updatedAt" swaggerignore:"true"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" swaggerignore:"true" gorm:"index"`
}

func (Contact) TableName() string {
	return "contacts"
}

// ContactCreate model for submitting a contact request
// @Description model for submitting a contact request
type ContactCreate struct {
	FirstName string `json:"firstName" binding:"required" example:"Jane"`
	LastName  string `json:"lastName" binding:"required" example:"Doe"`
	Email     string `json:"email" binding:"required,email" example:"jane.doe@example.com"`
	Subject   string `json:"subject" binding:"required" example:"Employer account question"`
	Message   string `json:"message" binding:"required" example:"I would like to know more about the Pro plan."`
}
