package bot

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-energy/internal/advisor"
	"daily-energy/internal/api"
	"daily-energy/internal/payment"
	"daily-energy/internal/service"
	"daily-energy/internal/session"
	"daily-energy/internal/store"
	"daily-energy/pkg/logger"
)

// sender is the part of the Telegram API the bot talks to.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Deps struct {
	Client  *api.Client
	Store   store.Store
	Stripe  *payment.StripeClient
	Advisor *advisor.Client
	Poll    service.PollConfig
	Logger  *logger.Logger
}

type TelegramBot struct {
	api          *tgbotapi.BotAPI
	sender       sender
	client       *api.Client
	store        store.Store
	stripeClient *payment.StripeClient
	advisor      *advisor.Client
	poll         service.PollConfig
	logger       *logger.Logger
	httpClient   *http.Client
	now          func() time.Time
	botURL       string

	// chat id -> phone waiting for its verification code
	pendingLogins map[int64]string
	pendingMutex  sync.Mutex

	wg sync.WaitGroup
}

func NewTelegramBot(token string, debug bool, deps Deps) (*TelegramBot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	botAPI.Debug = debug

	b := newBot(botAPI, deps)
	b.api = botAPI
	b.botURL = fmt.Sprintf("https://t.me/%s", botAPI.Self.UserName)
	b.logger.Infow("Authorized on Telegram", "username", botAPI.Self.UserName)
	return b, nil
}

func newBot(s sender, deps Deps) *TelegramBot {
	l := deps.Logger
	if l == nil {
		l = logger.NewNop()
	}
	return &TelegramBot{
		sender:        s,
		client:        deps.Client,
		store:         deps.Store,
		stripeClient:  deps.Stripe,
		advisor:       deps.Advisor,
		poll:          deps.Poll,
		logger:        l,
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		now:           time.Now,
		pendingLogins: make(map[int64]string),
	}
}

// Start begins receiving updates from Telegram via polling
func (t *TelegramBot) Start(ctx context.Context) error {
	t.logger.Infow("Removing any existing webhook")
	if _, err := t.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := t.api.GetUpdatesChan(updateConfig)

	t.logger.Infow("Started receiving Telegram updates")
	go t.handleUpdates(ctx, updates)
	return nil
}

func (t *TelegramBot) handleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		t.wg.Add(1)
		go func(update tgbotapi.Update) {
			defer t.wg.Done()
			t.handleUpdate(ctx, update)
		}(update)
	}
}

func (t *TelegramBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Errorw("Recovered from panic while processing update", "error", r)
		}
	}()

	message := update.Message
	if message == nil {
		return
	}
	t.logger.Debugw("Received message", "chat_id", message.Chat.ID, "update_id", update.UpdateID)

	switch {
	case message.IsCommand():
		t.handleCommand(ctx, message)
	case len(message.Photo) > 0:
		t.handlePhoto(ctx, message)
	default:
		t.reply(message.Chat.ID, "Send /help to see what I can do.")
	}
}

// Stop stops polling and waits for running handlers until ctx expires.
func (t *TelegramBot) Stop(ctx context.Context) error {
	if t.api != nil {
		t.api.StopReceivingUpdates()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// servicesFor builds services bound to the session of one chat.
func (t *TelegramBot) servicesFor(chatID int64) (*service.Services, *session.Session) {
	l := t.logger.With("chat_id", chatID)
	sess := session.New(store.Prefixed(t.store, "chat:"+strconv.FormatInt(chatID, 10)), l)
	client := t.client.WithTokens(sess)
	return service.New(client, sess, l, service.Options{
		Poll:    t.poll,
		Now:     t.now,
		Advisor: t.advisor,
	}), sess
}

func (t *TelegramBot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.sender.Send(msg); err != nil {
		t.logger.Errorw("Failed to send message", "chat_id", chatID, "error", err)
	}
}
