package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/webhook"
)

const EventCheckoutCompleted = "checkout.session.completed"

// ErrIgnoredEvent is returned for verified events that carry no VIP purchase.
var ErrIgnoredEvent = errors.New("event ignored")

type Config struct {
	SecretKey  string
	PublicKey  string
	WebhookKey string
	ProductID  string
	PriceID    string
}

type StripeClient struct {
	secretKey     string
	publicKey     string
	webhookSecret string
	priceID       string
	productID     string
}

func NewStripeClient(cfg Config) *StripeClient {
	stripe.Key = cfg.SecretKey

	return &StripeClient{
		secretKey:     cfg.SecretKey,
		publicKey:     cfg.PublicKey,
		webhookSecret: cfg.WebhookKey,
		priceID:       cfg.PriceID,
		productID:     cfg.ProductID,
	}
}

// Enabled reports whether VIP checkout can be offered.
func (s *StripeClient) Enabled() bool {
	return s != nil && s.secretKey != "" && s.priceID != "" && s.webhookSecret != ""
}

// CreateVIPCheckout opens a checkout session for one VIP membership. The
// chat id travels as the client reference so the webhook can find the chat.
func (s *StripeClient) CreateVIPCheckout(chatID int64, successURL, cancelURL string) (string, string, error) {
	if stripe.Key != s.secretKey {
		stripe.Key = s.secretKey
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(strconv.FormatInt(chatID, 10)),
	}
	params.AddMetadata("product", "vip")

	sess, err := session.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.ID, sess.URL, nil
}

// Purchase is a completed VIP checkout.
type Purchase struct {
	SessionID string
	ChatID    int64
}

// ParseWebhook verifies the Stripe signature and extracts a completed VIP
// purchase. Other verified events return ErrIgnoredEvent.
func (s *StripeClient) ParseWebhook(payload []byte, signature string) (Purchase, error) {
	if s.webhookSecret == "" {
		return Purchase{}, fmt.Errorf("webhook secret is not configured")
	}
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return Purchase{}, fmt.Errorf("invalid webhook signature: %w", err)
	}
	return purchaseFromEvent(event)
}

func purchaseFromEvent(event stripe.Event) (Purchase, error) {
	if event.Type != EventCheckoutCompleted {
		return Purchase{}, ErrIgnoredEvent
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return Purchase{}, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	if cs.ClientReferenceID == "" {
		return Purchase{}, fmt.Errorf("checkout session %s has no client reference", cs.ID)
	}
	chatID, err := strconv.ParseInt(cs.ClientReferenceID, 10, 64)
	if err != nil {
		return Purchase{}, fmt.Errorf("invalid client reference %q: %w", cs.ClientReferenceID, err)
	}
	return Purchase{SessionID: cs.ID, ChatID: chatID}, nil
}
