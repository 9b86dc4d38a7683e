package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-energy/config"
	"daily-energy/internal/advisor"
	"daily-energy/internal/api"
	"daily-energy/internal/bot"
	"daily-energy/internal/payment"
	"daily-energy/internal/server"
	"daily-energy/internal/service"
	"daily-energy/internal/session"
	"daily-energy/internal/store"
	"daily-energy/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatalw("Failed to load config", "error", err)
	}

	l := logger.New(cfg.Log.Level)
	if cfg.Log.Development {
		l = logger.NewDevelopment()
	}
	defer func() { _ = l.Sync() }()
	l.Infow("Starting Daily Energy bot...")

	if cfg.Telegram.Token == "" {
		l.Fatalw("Telegram token is not configured")
	}

	st, closeStore := openStore(cfg, l)
	defer closeStore()

	deviceID := session.New(st, l).DeviceID(context.Background())
	client := api.NewClient(cfg.ClientConfig(deviceID), nil, l)

	stripeClient := payment.NewStripeClient(payment.Config{
		SecretKey:  cfg.Stripe.SecretKey,
		PublicKey:  cfg.Stripe.PublicKey,
		WebhookKey: cfg.Stripe.WebhookKey,
		ProductID:  cfg.Stripe.ProductID,
		PriceID:    cfg.Stripe.PriceID,
	})
	if !stripeClient.Enabled() {
		l.Warnw("Stripe configuration is incomplete, VIP checkout disabled")
	}

	adv := advisor.NewClient(advisor.Config{
		APIKey:  cfg.GPT.APIKey,
		Model:   cfg.GPT.Model,
		BaseURL: cfg.GPT.BaseURL,
	})
	if adv == nil {
		l.Warnw("GPT API key is not configured, suggestions disabled")
	}

	telegramBot, err := bot.NewTelegramBot(cfg.Telegram.Token, cfg.Telegram.Debug, bot.Deps{
		Client:  client,
		Store:   st,
		Stripe:  stripeClient,
		Advisor: adv,
		Poll: service.PollConfig{
			MaxAttempts: cfg.AI.MaxPollAttempts,
			Interval:    cfg.AI.PollInterval,
		},
		Logger: l,
	})
	if err != nil {
		l.Fatalw("Failed to create Telegram bot", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := telegramBot.Start(ctx); err != nil {
		l.Fatalw("Failed to start Telegram bot", "error", err)
	}
	l.Infow("Telegram bot started successfully")

	var webhook http.HandlerFunc
	if stripeClient.Enabled() {
		webhook = telegramBot.HandleStripeWebhook
	}
	httpServer := server.NewServer(cfg.Server.Port, webhook, l)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatalw("Failed to start HTTP server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Infow("Shutting down bot...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Stop HTTP server first
	if err := httpServer.Stop(shutdownCtx); err != nil {
		l.Errorw("Error during HTTP server shutdown", "error", err)
	}
	if err := telegramBot.Stop(shutdownCtx); err != nil {
		l.Errorw("Error during bot shutdown", "error", err)
	}

	l.Infow("Bot stopped successfully")
}

// openStore retries postgres a few times since the database container often
// comes up after the bot.
func openStore(cfg *config.Config, l *logger.Logger) (store.Store, func()) {
	opts := cfg.StoreOptions()

	attempts := 1
	if opts.Driver == store.DriverPostgres {
		attempts = 5
	}

	var err error
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		st, closeFn, openErr := store.Open(ctx, opts)
		cancel()
		if openErr == nil {
			l.Infow("Preferences store ready", "driver", opts.Driver)
			return st, closeFn
		}
		err = openErr
		l.Errorw("Failed to open store, retrying...", "driver", opts.Driver, "error", err)
		time.Sleep(time.Duration(i+1) * time.Second)
	}
	l.Fatalw("Failed to open store after multiple attempts", "error", err)
	return nil, nil
}
