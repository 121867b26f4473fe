package models

import (
	"time"
)

type Role string

const (
	AdminRole     Role = "ADMIN"
	CandidateRole Role = "CANDIDATE"
	EmployerRole  Role = "EMPLOYER"
)

// User represents an account on the platform (candidate, employer or admin)
type User struct {
	ID               string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email            string     `json:"email" gorm:"uniqueIndex" binding:"required,email"`
	Password         string     `json:"-" binding:"required,min=6"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	CompanyName      string     `json:"companyName"`
	Role             Role       `json:"role" gorm:"type:varchar(20);default:'CANDIDATE'"`
	StripeCustomerId string     `json:"stripeCustomerId"`
	Enable           bool       `json:"enable" gorm:"default:true"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	DeletedAt        *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

// UserCreate model for the register endpoint
// @Description model for creating a user account
type UserCreate struct {
	Email       string `json:"email" binding:"required,email" example:"jane.doe@example.com"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" example:"Jane"`
	LastName    string `json:"lastName" example:"Doe"`
	CompanyName string `json:"companyName" example:"Acme Inc."`
	Role        Role   `json:"role" example:"CANDIDATE"`
}

// UserLogin model for the login endpoint
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserUpdate model for profile updates
type UserUpdate struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
}
