package models

import (
	"time"
)

type PlanInterval string

const (
	PlanIntervalDay   PlanInterval = "day"
	PlanIntervalWeek  PlanInterval = "week"
	PlanIntervalMonth PlanInterval = "month"
	PlanIntervalYear  PlanInterval = "year"
)

type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanInactive PlanStatus = "inactive"
	PlanArchived PlanStatus = "archived"
)

// SubscriptionPlan is a purchasable recurring offering. Plans are archived,
// never deleted, so historical subscriptions keep a valid plan reference.
type SubscriptionPlan struct {
	ID              string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name            string       `json:"name" gorm:"not null" binding:"required"`
	Description     string       `json:"description" gorm:"type:text"`
	Price           float64      `json:"price" gorm:"not null"`
	Currency        string       `json:"currency" gorm:"type:varchar(3);default:'usd'"`
	Interval        PlanInterval `json:"interval" gorm:"type:varchar(10);default:'month'"`
	IntervalCount   int          `json:"intervalCount" gorm:"default:1"`
	StripeProductId string       `json:"stripeProductId"`
	StripePriceId   string       `json:"stripePriceId"`
	Features        []string     `json:"features" gorm:"serializer:json"`
	Status          PlanStatus   `json:"status" gorm:"type:varchar(20);default:'active'"`
	SkipBilling     bool         `json:"skipBilling" gorm:"default:false"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	DeletedAt       *time.Time   `json:"deletedAt,omitempty" gorm:"index"`
}

// PlanCreate model for creating a subscription plan
// @Description model for creating a subscription plan
type PlanCreate struct {
	Name          string       `json:"name" binding:"required" example:"Employer Pro"`
	Description   string       `json:"description" example:"Unlimited job postings"`
	Price         float64      `json:"price" example:"29.99"`
	Currency      string       `json:"currency" example:"usd"`
	Interval      PlanInterval `json:"interval" example:"month"`
	IntervalCount int          `json:"intervalCount" example:"1"`
	Features      []string     `json:"features"`
	SkipBilling   bool         `json:"skipBilling"`
}

// PlanUpdate model for patching a subscription plan. Pointer fields
// distinguish "not provided" from zero values.
type PlanUpdate struct {
	Name          *string       `json:"name"`
	Description   *string       `json:"description"`
	Price         *float64      `json:"price"`
	Currency      *string       `json:"currency"`
	Interval      *PlanInterval `json:"interval"`
	IntervalCount *int          `json:"intervalCount"`
	Features      *[]string     `json:"features"`
	Status        *PlanStatus   `json:"status"`
}
