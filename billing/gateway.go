package billing

import (
	"github.com/LauraM111/jobtowners-backend-sub001/models"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// PaymentIntent is the slice of a provider payment attempt the rest of the
// system needs.
type PaymentIntent struct {
	ID              string
	ClientSecret    string
	Status          string
	PaymentMethodID string
	Amount          float64
}

const (
	PaymentStatusSucceeded = string(stripe.PaymentIntentStatusSucceeded)
	PaymentStatusCanceled  = string(stripe.PaymentIntentStatusCanceled)
)

// Gateway is a thin adapter over the Stripe API. Every method maps 1:1 to a
// provider REST call and surfaces failures as *GatewayError.
type Gateway struct {
	api *client.API
}

func New(secretKey string) *Gateway {
	return &Gateway{api: client.New(secretKey, nil)}
}

// CustomerExists checks that a stored customer id still resolves at the
// provider (it disappears when the account is purged in the dashboard).
func (g *Gateway) CustomerExists(customerID string) bool {
	_, err := g.api.Customers.Get(customerID, nil)
	return err == nil
}

func (g *Gateway) CreateCustomer(name, email string) (string, error) {
	cust, err := g.api.Customers.New(&stripe.CustomerParams{
		Name:  stripe.String(name),
		Email: stripe.String(email),
	})
	if err != nil {
		return "", wrapErr("create customer", err)
	}
	return cust.ID, nil
}

func (g *Gateway) CreateProduct(name, description string) (string, error) {
	params := &stripe.ProductParams{Name: stripe.String(name)}
	if description != "" {
		params.Description = stripe.String(description)
	}
	product, err := g.api.Products.New(params)
	if err != nil {
		return "", wrapErr("create product", err)
	}
	return product.ID, nil
}

func (g *Gateway) UpdateProduct(productID, name, description string) error {
	params := &stripe.ProductParams{}
	if name != "" {
		params.Name = stripe.String(name)
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	_, err := g.api.Products.Update(productID, params)
	return wrapErr("update product", err)
}

func (g *Gateway) DeactivateProduct(productID string) error {
	_, err := g.api.Products.Update(productID, &stripe.ProductParams{
		Active: stripe.Bool(false),
	})
	return wrapErr("deactivate product", err)
}

// CreatePrice mints a new recurring price for a product. Prices are immutable
// at the provider, so a price change always goes through here.
func (g *Gateway) CreatePrice(productID string, amount float64, currency string, interval models.PlanInterval, intervalCount int) (string, error) {
	if intervalCount < 1 {
		intervalCount = 1
	}
	price, err := g.api.Prices.New(&stripe.PriceParams{
		Product:    stripe.String(productID),
		UnitAmount: stripe.Int64(ToMinorUnits(amount)),
		Currency:   stripe.String(currency),
		Recurring: &stripe.PriceRecurringParams{
			Interval:      stripe.String(string(interval)),
			IntervalCount: stripe.Int64(int64(intervalCount)),
		},
	})
	if err != nil {
		return "", wrapErr("create price", err)
	}
	return price.ID, nil
}

func (g *Gateway) CreatePaymentIntent(customerID string, amount float64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(ToMinorUnits(amount)),
		Currency:           stripe.String(currency),
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapErr("create payment intent", err)
	}
	return toPaymentIntent(pi), nil
}

func (g *Gateway) GetPaymentIntent(paymentIntentID string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.AddExpand("payment_method")
	pi, err := g.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, wrapErr("get payment intent", err)
	}
	return toPaymentIntent(pi), nil
}

func (g *Gateway) CancelPaymentIntent(paymentIntentID string) error {
	_, err := g.api.PaymentIntents.Cancel(paymentIntentID, nil)
	return wrapErr("cancel payment intent", err)
}

// EnsureDefaultPaymentMethod makes sure the customer can be charged for
// renewals: when no default payment method is set, the method from the
// confirming payment is attached and promoted.
func (g *Gateway) EnsureDefaultPaymentMethod(customerID, paymentMethodID string) error {
	cust, err := g.api.Customers.Get(customerID, nil)
	if err != nil {
		return wrapErr("get customer", err)
	}
	if cust.InvoiceSettings != nil && cust.InvoiceSettings.DefaultPaymentMethod != nil {
		return nil
	}
	if paymentMethodID == "" {
		return nil
	}

	_, err = g.api.PaymentMethods.Attach(paymentMethodID, &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	})
	if err != nil {
		return wrapErr("attach payment method", err)
	}

	_, err = g.api.Customers.Update(customerID, &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	})
	return wrapErr("set default payment method", err)
}

func (g *Gateway) CreateSubscription(customerID, priceID string, metadata map[string]string) (string, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	sub, err := g.api.Subscriptions.New(params)
	if err != nil {
		return "", wrapErr("create subscription", err)
	}
	return sub.ID, nil
}

func (g *Gateway) CancelSubscription(subscriptionID string) error {
	_, err := g.api.Subscriptions.Cancel(subscriptionID, &stripe.SubscriptionCancelParams{
		Prorate: stripe.Bool(false),
	})
	return wrapErr("cancel subscription", err)
}

func toPaymentIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	out := &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       FromMinorUnits(pi.Amount),
	}
	if pi.PaymentMethod != nil {
		out.PaymentMethodID = pi.PaymentMethod.ID
	}
	return out
}
