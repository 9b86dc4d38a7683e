package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-energy/internal/api"
	"daily-energy/internal/models"
	"daily-energy/internal/service"
)

const helpText = `Daily Energy keeps track of what you eat and burn.

/login <phone> - get a verification code
/code <code> - finish signing in
/today - today's calorie balance
/trend [days] - calorie trend, 7 days by default
/profile - your profile
/weight <kg> - log today's weight
/food <name> <grams> [meal] - log a food
/suggest - meal and exercise ideas
/vip - upgrade to VIP
/logout - sign out

Send a photo of your meal to recognize it.`

const maxPhotoBytes = 10 << 20

func (t *TelegramBot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command := message.Command()
	args := strings.Fields(message.CommandArguments())

	t.logger.Infow("Handling command", "command", command, "chat_id", chatID)

	switch command {
	case "start":
		switch message.CommandArguments() {
		case "vip_success":
			t.reply(chatID, "Thanks for your purchase! VIP is switched on as soon as the payment is confirmed.")
		case "vip_cancel":
			t.reply(chatID, "Payment cancelled. You can upgrade any time with /vip.")
		default:
			t.reply(chatID, "Welcome to Daily Energy!\n\n"+helpText)
		}
	case "help":
		t.reply(chatID, helpText)
	case "login":
		t.cmdLogin(ctx, chatID, args)
	case "code":
		t.cmdCode(ctx, chatID, args)
	case "today", "trend", "profile", "weight", "food", "suggest", "vip", "logout":
		svc, _ := t.servicesFor(chatID)
		if !svc.Auth.IsLoggedIn(ctx) {
			t.reply(chatID, "Please sign in first with /login <phone>.")
			return
		}
		t.authedCommand(ctx, chatID, command, args, svc)
	default:
		t.reply(chatID, "Unknown command. Use /help to see the list.")
	}
}

func (t *TelegramBot) authedCommand(ctx context.Context, chatID int64, command string, args []string, svc *service.Services) {
	switch command {
	case "today":
		summary, err := svc.Calorie.GetTodaySummary(ctx)
		if err != nil {
			t.replyError(chatID, err)
			return
		}
		t.reply(chatID, formatSummary(summary))

	case "trend":
		days := 7
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 || n > 365 {
				t.reply(chatID, "Usage: /trend [days], days between 1 and 365.")
				return
			}
			days = n
		}
		trend, err := svc.Calorie.GetCalorieTrend(ctx, days)
		if err != nil {
			t.replyError(chatID, err)
			return
		}
		t.reply(chatID, formatTrend(trend))

	case "profile":
		profile, err := svc.User.GetUserProfile(ctx)
		if err != nil {
			t.replyError(chatID, err)
			return
		}
		t.reply(chatID, formatProfile(profile, svc.Auth.IsVIP(ctx)))

	case "weight":
		if len(args) != 1 {
			t.reply(chatID, "Usage: /weight <kg>")
			return
		}
		kg, err := strconv.ParseFloat(strings.Replace(args[0], ",", ".", 1), 64)
		if err != nil || kg < 20 || kg > 400 {
			t.reply(chatID, "Please send your weight in kilograms, for example /weight 72.5")
			return
		}
		record, err := svc.User.AddWeightRecord(ctx, kg, t.now().Format("2006-01-02"))
		if err != nil {
			t.replyError(chatID, err)
			return
		}
		t.reply(chatID, fmt.Sprintf("Logged %.1f kg for %s.", record.Weight, record.RecordDate))

	case "food":
		t.cmdFood(ctx, chatID, args, svc)

	case "suggest":
		t.cmdSuggest(ctx, chatID, svc)

	case "vip":
		t.cmdVIP(ctx, chatID, svc)

	case "logout":
		if _, err := svc.Auth.Logout(ctx); err != nil {
			t.logger.Warnw("Logout failed on the server", "chat_id", chatID, "error", err)
		}
		t.reply(chatID, "You are signed out.")
	}
}

func (t *TelegramBot) cmdLogin(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		t.reply(chatID, "Usage: /login <phone>")
		return
	}
	phone := args[0]

	svc, _ := t.servicesFor(chatID)
	resp, err := svc.Auth.SendCode(ctx, phone)
	if err != nil {
		t.replyError(chatID, err)
		return
	}
	if !resp.Success {
		t.reply(chatID, "Could not send a code: "+resp.Message)
		return
	}

	t.pendingMutex.Lock()
	t.pendingLogins[chatID] = phone
	t.pendingMutex.Unlock()

	t.reply(chatID, fmt.Sprintf("Code sent to %s. Reply with /code <code>.", phone))
}

func (t *TelegramBot) cmdCode(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		t.reply(chatID, "Usage: /code <code>")
		return
	}

	t.pendingMutex.Lock()
	phone, ok := t.pendingLogins[chatID]
	t.pendingMutex.Unlock()
	if !ok {
		t.reply(chatID, "Start with /login <phone> first.")
		return
	}

	svc, _ := t.servicesFor(chatID)
	resp, err := svc.Auth.Login(ctx, phone, args[0], models.LoginTypePhone)
	if err != nil {
		t.replyError(chatID, err)
		return
	}

	t.pendingMutex.Lock()
	delete(t.pendingLogins, chatID)
	t.pendingMutex.Unlock()

	name := phone
	if resp.UserInfo != nil && resp.UserInfo.Nickname != "" {
		name = resp.UserInfo.Nickname
	}
	text := fmt.Sprintf("Signed in as %s.", name)
	if resp.IsFirstLogin {
		text += " Welcome aboard! Fill in your profile in the app to get accurate targets."
	}
	t.reply(chatID, text)
}

func (t *TelegramBot) cmdFood(ctx context.Context, chatID int64, args []string, svc *service.Services) {
	if len(args) < 2 {
		t.reply(chatID, "Usage: /food <name> <grams> [breakfast|lunch|dinner|snack]")
		return
	}

	meal := mealFor(t.now().Hour())
	gramsIdx := len(args) - 1
	if isMealType(args[len(args)-1]) {
		meal = args[len(args)-1]
		gramsIdx = len(args) - 2
	}
	if gramsIdx < 1 {
		t.reply(chatID, "Usage: /food <name> <grams> [breakfast|lunch|dinner|snack]")
		return
	}
	grams, err := strconv.ParseFloat(args[gramsIdx], 64)
	if err != nil || grams <= 0 {
		t.reply(chatID, "Grams must be a positive number.")
		return
	}
	name := strings.Join(args[:gramsIdx], " ")

	record, err := svc.Calorie.QuickAddFood(ctx, name, grams, meal)
	if err != nil {
		t.replyError(chatID, err)
		return
	}
	t.reply(chatID, fmt.Sprintf("Logged %s, %.0f g for %s: %.0f kcal.", name, grams, meal, record.Calories))
}

func (t *TelegramBot) cmdSuggest(ctx context.Context, chatID int64, svc *service.Services) {
	summary, err := svc.Calorie.GetTodaySummary(ctx)
	if err != nil {
		t.replyError(chatID, err)
		return
	}

	meal := mealFor(t.now().Hour())
	foods, err := svc.AI.FoodSuggestions(ctx, summary, meal)
	if err != nil {
		t.logger.Warnw("Food suggestions failed", "chat_id", chatID, "error", err)
	}
	exercises, err := svc.AI.ExerciseSuggestions(ctx, summary)
	if err != nil {
		t.logger.Warnw("Exercise suggestions failed", "chat_id", chatID, "error", err)
	}

	if len(foods) == 0 && len(exercises) == 0 {
		t.reply(chatID, "No suggestions right now. Try again later.")
		return
	}
	t.reply(chatID, formatSuggestions(meal, foods, exercises))
}

func (t *TelegramBot) cmdVIP(ctx context.Context, chatID int64, svc *service.Services) {
	if svc.Auth.IsVIP(ctx) {
		t.reply(chatID, "You are already a VIP member.")
		return
	}
	if !t.stripeClient.Enabled() {
		t.reply(chatID, "VIP upgrades are not available right now.")
		return
	}

	successURL := t.botURL + "?start=vip_success"
	cancelURL := t.botURL + "?start=vip_cancel"
	_, checkoutURL, err := t.stripeClient.CreateVIPCheckout(chatID, successURL, cancelURL)
	if err != nil {
		t.logger.Errorw("Failed to create Stripe session", "chat_id", chatID, "error", err)
		t.reply(chatID, "Could not start the payment. Please try again later.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Tap the button below to become a VIP member:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Upgrade", checkoutURL),
		),
	)
	if _, err := t.sender.Send(msg); err != nil {
		t.logger.Errorw("Failed to send payment link", "chat_id", chatID, "error", err)
	}
}

func (t *TelegramBot) handlePhoto(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	svc, _ := t.servicesFor(chatID)
	if !svc.Auth.IsLoggedIn(ctx) {
		t.reply(chatID, "Please sign in first with /login <phone>.")
		return
	}

	// Telegram lists sizes smallest first.
	photo := message.Photo[len(message.Photo)-1]
	image, err := t.downloadFile(ctx, photo.FileID)
	if err != nil {
		t.logger.Errorw("Failed to download photo", "chat_id", chatID, "error", err)
		t.reply(chatID, "Could not read the photo. Please try again.")
		return
	}

	t.reply(chatID, "Analyzing your meal...")
	result, err := svc.AI.RecognizeFoodAndGetCalories(ctx, image)
	if err != nil {
		t.replyError(chatID, err)
		return
	}
	t.reply(chatID, formatRecognition(result))
}

func (t *TelegramBot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := t.sender.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
}

func (t *TelegramBot) replyError(chatID int64, err error) {
	t.logger.Warnw("Request failed", "chat_id", chatID, "error", err)
	t.reply(chatID, errorText(err))
}

func errorText(err error) string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return "Something went wrong. Please try again."
	}
	switch apiErr.Kind {
	case api.KindUnauthorized:
		return "Your session has expired. Please /login again."
	case api.KindTimeout:
		return "The server took too long to answer. Please try again."
	case api.KindNetworkError:
		return "Could not reach the server. Please try again later."
	case api.KindServerError:
		if apiErr.Message != "" {
			return apiErr.Message
		}
	case api.KindEncodingError:
		return "That input does not look right: " + apiErr.Message
	}
	return fmt.Sprintf("Request failed (%d): %s", apiErr.Code(), apiErr.Error())
}

func mealFor(hour int) string {
	switch {
	case hour >= 5 && hour < 10:
		return models.MealBreakfast
	case hour >= 10 && hour < 15:
		return models.MealLunch
	case hour >= 17 && hour < 21:
		return models.MealDinner
	default:
		return models.MealSnack
	}
}

func isMealType(s string) bool {
	switch s {
	case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack:
		return true
	}
	return false
}
