// Package catalog manages the subscription plan offering and mirrors it into
// the billing provider as a product plus price pair.
package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("plan not found")

// ValidationError marks malformed plan input; handlers answer it with a 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Gateway is the slice of the billing adapter the catalog needs.
type Gateway interface {
	CreateProduct(name, description string) (string, error)
	UpdateProduct(productID, name, description string) error
	DeactivateProduct(productID string) error
	CreatePrice(productID string, amount float64, currency string, interval models.PlanInterval, intervalCount int) (string, error)
}

type Catalog struct {
	db      *gorm.DB
	gateway Gateway
}

func New(db *gorm.DB, gateway Gateway) *Catalog {
	return &Catalog{db: db, gateway: gateway}
}

func validInterval(i models.PlanInterval) bool {
	switch i {
	case models.PlanIntervalDay, models.PlanIntervalWeek, models.PlanIntervalMonth, models.PlanIntervalYear:
		return true
	}
	return false
}

// Create validates the plan, provisions the provider product and price when
// billing applies, then persists the plan. The local write only happens after
// the provider calls succeed, so a gateway failure leaves no partial state.
func (c *Catalog) Create(input models.PlanCreate) (*models.SubscriptionPlan, error) {
	if input.Price < 0 {
		return nil, &ValidationError{Reason: "price must be greater than or equal to 0"}
	}
	if input.Interval == "" {
		input.Interval = models.PlanIntervalMonth
	}
	if !validInterval(input.Interval) {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid interval %q", input.Interval)}
	}
	if input.IntervalCount < 1 {
		input.IntervalCount = 1
	}
	if input.Currency == "" {
		input.Currency = "usd"
	}

	plan := models.SubscriptionPlan{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Currency:      input.Currency,
		Interval:      input.Interval,
		IntervalCount: input.IntervalCount,
		Features:      input.Features,
		Status:        models.PlanActive,
		SkipBilling:   input.SkipBilling,
	}

	if !(input.Price == 0 && input.SkipBilling) {
		productID, err := c.gateway.CreateProduct(input.Name, input.Description)
		if err != nil {
			return nil, err
		}
		priceID, err := c.gateway.CreatePrice(productID, input.Price, input.Currency, input.Interval, input.IntervalCount)
		if err != nil {
			return nil, err
		}
		plan.StripeProductId = productID
		plan.StripePriceId = priceID
	}

	if err := c.db.Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update patches a plan. Name and description update the provider product in
// place; any pricing change mints a new provider price (prices are immutable
// there) and swaps the stored reference. Old prices stay, historical
// subscriptions still reference them.
func (c *Catalog) Update(id string, patch models.PlanUpdate) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := c.db.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Price != nil && *patch.Price < 0 {
		return nil, &ValidationError{Reason: "price must be greater than or equal to 0"}
	}
	if patch.Interval != nil && !validInterval(*patch.Interval) {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid interval %q", *patch.Interval)}
	}
	if patch.IntervalCount != nil && *patch.IntervalCount < 1 {
		return nil, &ValidationError{Reason: "intervalCount must be at least 1"}
	}

	metadataChanged := false
	if patch.Name != nil {
		plan.Name = *patch.Name
		metadataChanged = true
	}
	if patch.Description != nil {
		plan.Description = *patch.Description
		metadataChanged = true
	}
	if patch.Features != nil {
		plan.Features = *patch.Features
	}
	if patch.Status != nil {
		plan.Status = *patch.Status
	}

	pricingChanged := false
	if patch.Price != nil && *patch.Price != plan.Price {
		plan.Price = *patch.Price
		pricingChanged = true
	}
	if patch.Currency != nil && *patch.Currency != plan.Currency {
		plan.Currency = *patch.Currency
		pricingChanged = true
	}
	if patch.Interval != nil && *patch.Interval != plan.Interval {
		plan.Interval = *patch.Interval
		pricingChanged = true
	}
	if patch.IntervalCount != nil && *patch.IntervalCount != plan.IntervalCount {
		plan.IntervalCount = *patch.IntervalCount
		pricingChanged = true
	}

	if plan.StripeProductId != "" && metadataChanged {
		if err := c.gateway.UpdateProduct(plan.StripeProductId, plan.Name, plan.Description); err != nil {
			return nil, err
		}
	}

	if plan.StripeProductId != "" && pricingChanged {
		priceID, err := c.gateway.CreatePrice(plan.StripeProductId, plan.Price, plan.Currency, plan.Interval, plan.IntervalCount)
		if err != nil {
			return nil, err
		}
		plan.StripePriceId = priceID
	}

	if err := c.db.Save(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// Archive soft-deletes a plan and deactivates the provider product.
// Idempotent: archiving an archived plan is a no-op.
func (c *Catalog) Archive(id string) error {
	var plan models.SubscriptionPlan
	if err := c.db.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if plan.Status == models.PlanArchived {
		return nil
	}

	if plan.StripeProductId != "" {
		if err := c.gateway.DeactivateProduct(plan.StripeProductId); err != nil {
			return err
		}
	}

	now := time.Now()
	return c.db.Model(&plan).Updates(map[string]interface{}{
		"status":     models.PlanArchived,
		"deleted_at": &now,
	}).Error
}

// List returns plans, optionally filtered by status, newest first.
func (c *Catalog) List(status string, limit, offset int) ([]models.SubscriptionPlan, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := c.db.Limit(limit).Offset(offset).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var plans []models.SubscriptionPlan
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Get returns one plan by id.
func (c *Catalog) Get(id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := c.db.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}
