// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strings"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// StatusProvider exposes the monitor state rendered by /status.
type StatusProvider interface {
	Snapshot() app.MonitorSnapshot
}

var outcomeDescriptions = map[app.CycleOutcome]string{
	app.OutcomeNoUpdates: "обновлений не было",
	app.OutcomeNotified:  "отправлено уведомление",
	app.OutcomeUnchanged: "статус не изменился",
	app.OutcomeError:     "цикл завершился ошибкой",
}

func RegisterBotCommands(
	b *telebot.Bot,
	cfg *config.AppConfig, // For the tracked chat ID
	monitor StatusProvider,
	baseLogger *logrus.Entry, // For contextual logging
) {
	cmdLogger := baseLogger.WithField("handler_group", "commands")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := cmdLogger.WithField("command", "/start").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /start command")

		if c.Chat().ID != cfg.TelegramChatID {
			logCtx.Info("Command received from an untracked chat")
			return c.Send("Этот бот следит за домашними работами другого пользователя.")
		}
		return c.Send("Привет! Я слежу за статусом проверки твоей домашней работы и напишу, как только он изменится.\n\n/status — текущее состояние монитора.")
	})

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := cmdLogger.WithField("command", "/status").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /status command")

		if c.Chat().ID != cfg.TelegramChatID {
			logCtx.Info("Command received from an untracked chat")
			return c.Send("Этот бот следит за домашними работами другого пользователя.")
		}

		snap := monitor.Snapshot()
		if snap.LastCycleAt.IsZero() {
			return c.Send("Опрос API ещё не выполнялся. Загляните чуть позже.")
		}

		var text strings.Builder
		outcome, ok := outcomeDescriptions[snap.LastOutcome]
		if !ok {
			outcome = string(snap.LastOutcome)
		}
		text.WriteString(fmt.Sprintf("Последний опрос: %s (%s)\n", snap.LastCycleAt.Format("2006-01-02 15:04:05"), outcome))
		text.WriteString(fmt.Sprintf("Курсор опроса: %d\n", snap.Cursor))
		if snap.LastVerdict != "" {
			text.WriteString("\nПоследний вердикт:\n" + snap.LastVerdict + "\n")
		}
		if snap.LastError != "" {
			text.WriteString("\nПоследняя ошибка: " + snap.LastError)
		}
		return c.Send(strings.TrimRight(text.String(), "\n"))
	})
}
