package stripewebhooks

import (
	"io"
	"log"
	"net/http"

	"clubhost-app/database"
	"clubhost-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
	"github.com/stripe/stripe-go/v75/webhook"
)

// Handler is the webhook gateway. The Stripe client is injected at process
// start; handlers never touch the global stripe.Key.
type Handler struct {
	sc            *client.API
	webhookSecret string
}

func NewHandler(sc *client.API, webhookSecret string) *Handler {
	return &Handler{sc: sc, webhookSecret: webhookSecret}
}

// eventHandler returns nil when the event is handled OR deliberately dropped;
// an error means "retryable" and surfaces as a 500 to trigger redelivery.
type eventHandler func(h *Handler, event stripe.Event) error

var dispatch = map[string]eventHandler{
	"checkout.session.completed":    (*Handler).handleCheckoutSessionCompleted,
	"customer.subscription.updated": (*Handler).handleSubscriptionUpdated,
	"customer.subscription.deleted": (*Handler).handleSubscriptionDeleted,
	"invoice.payment_failed":        (*Handler).handleInvoicePaymentFailed,
}

// HandleWebhook verifies the signature on the raw body before anything else
// runs, then dispatches by event type.
func (h *Handler) HandleWebhook(c *gin.Context) {
	if h.webhookSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook secret not configured"})
		return
	}

	payload, err := readRawBody(c)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Println("❌ Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	// Redelivered events are acknowledged without reprocessing.
	var dup int64
	if err := database.DB.Model(&billing.ProcessedStripeEvent{}).
		Where("stripe_event_id = ?", event.ID).
		Count(&dup).Error; err == nil && dup > 0 {
		c.JSON(http.StatusOK, gin.H{"received": true, "duplicate": true})
		return
	}

	handle, ok := dispatch[string(event.Type)]
	if !ok {
		log.Printf("stripe webhook: ignoring event type %s", event.Type)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err := handle(h, event); err != nil {
		// 500 signals "please retry" to Stripe
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.markProcessed(event)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// markProcessed claims the event id. Written only after a successful
// dispatch so that a 5xx leaves the event free for redelivery. A unique
// index backs the racing-delivery case.
func (h *Handler) markProcessed(event stripe.Event) {
	rec := billing.ProcessedStripeEvent{
		StripeEventID: event.ID,
		EventType:     string(event.Type),
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		log.Printf("⚠️ failed to record processed event %s: %v", event.ID, err)
	}
}

func (h *Handler) handleInvoicePaymentFailed(event stripe.Event) error {
	// No state transition in the current scope; the membership billing flow
	// owns failed-payment bookkeeping.
	log.Printf("⚠️ invoice.payment_failed received (event=%s)", event.ID)
	return nil
}

// Uncapped: expanded Stripe payloads (invoices with line items) can run
// well past any fixed bound.
func readRawBody(c *gin.Context) ([]byte, error) {
	return io.ReadAll(c.Request.Body)
}

func metadataPhase(md map[string]string) string {
	if md == nil {
		return ""
	}
	return md["phase"]
}
