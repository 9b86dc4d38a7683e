package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"daily-energy/internal/payment"
)

const maxWebhookBytes = 64 << 10

func (t *TelegramBot) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		t.logger.Errorw("Failed to read webhook body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		t.logger.Errorw("Missing Stripe signature header")
		http.Error(w, "Missing signature", http.StatusBadRequest)
		return
	}

	purchase, err := t.stripeClient.ParseWebhook(body, signature)
	switch {
	case errors.Is(err, payment.ErrIgnoredEvent):
		w.WriteHeader(http.StatusOK)
		return
	case err != nil:
		t.logger.Errorw("Rejected Stripe webhook", "error", err)
		http.Error(w, "Invalid webhook", http.StatusBadRequest)
		return
	}

	// Stripe only waits a few seconds for the acknowledgement.
	t.startVIPRefresh(purchase)
	t.logger.Infow("VIP purchase received", "chat_id", purchase.ChatID, "session_id", purchase.SessionID)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Webhook received"))
}

// startVIPRefresh runs handleVIPPurchase in the background; Stop waits for it.
func (t *TelegramBot) startVIPRefresh(p payment.Purchase) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.handleVIPPurchase(p)
	}()
}

// handleVIPPurchase refreshes the cached user so the new user type, granted
// by the API server, shows up in the chat session.
func (t *TelegramBot) handleVIPPurchase(p payment.Purchase) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	svc, sess := t.servicesFor(p.ChatID)
	info, err := svc.User.GetUserInfo(ctx)
	if err != nil {
		t.logger.Errorw("Failed to refresh user after purchase", "chat_id", p.ChatID, "error", err)
		t.reply(p.ChatID, "Payment received. VIP will show up in your profile shortly.")
		return
	}
	sess.SaveUserInfo(ctx, info)

	text := "Payment received, thank you!"
	if svc.Auth.IsVIP(ctx) {
		text = fmt.Sprintf("Welcome to VIP, %s! Payment received.", displayName(info.Nickname))
	}
	t.reply(p.ChatID, text)
}

func displayName(nickname string) string {
	if nickname == "" {
		return "friend"
	}
	return nickname
}
