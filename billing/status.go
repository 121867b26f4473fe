package billing

import (
	"github.com/LauraM111/jobtowners-backend-sub001/models"
)

var providerStatuses = map[string]models.SubscriptionStatus{
	"active":             models.SubscriptionActive,
	"canceled":           models.SubscriptionCanceled,
	"past_due":           models.SubscriptionPastDue,
	"unpaid":             models.SubscriptionUnpaid,
	"incomplete":         models.SubscriptionIncomplete,
	"incomplete_expired": models.SubscriptionIncompleteExpired,
	"trialing":           models.SubscriptionTrialing,
}

// MapProviderStatus translates a provider subscription status into the local
// enum. The mapping is closed: a status the map does not know returns
// ok=false and the caller logs and ignores it instead of guessing.
func MapProviderStatus(s string) (models.SubscriptionStatus, bool) {
	status, ok := providerStatuses[s]
	return status, ok
}
