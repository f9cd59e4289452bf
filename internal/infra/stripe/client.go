package stripe

import (
	"github.com/stripe/stripe-go/v75/client"
)

// NewClient builds the process-wide Stripe client. Constructed once at
// startup and injected into handlers; no global stripe.Key.
func NewClient(secretKey string) *client.API {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return sc
}
