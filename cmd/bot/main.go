package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Log.WithField("component", "main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Chat ID: %d", cfg.LogLevel, cfg.Environment, cfg.TelegramChatID)

	// Initialize Practicum API client
	practicumClient := practicum.NewClient(cfg.PracticumToken, cfg.PracticumEndpoint, cfg.RequestTimeout)
	mainLogger.Info("Practicum API client initialized.")

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Log.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"text":      c.Text(),
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
				})
			}
			entry.Error("Telebot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	telegramClient := telegram.NewTelebotAdapter(bot)
	mainLogger.Info("Telegram client initialized.")

	// Initialize MonitorService. Polling starts from process start time.
	monitor := app.NewMonitorService(
		practicumClient,
		telegramClient,
		cfg.TelegramChatID,
		time.Now().Unix(),
		logger.Log.WithField("component", "monitor"),
	)
	mainLogger.Info("Monitor service initialized.")

	// Register Handlers
	telegram.RegisterBotCommands(bot, cfg, monitor, logger.Log.WithField("component", "telegram"))
	mainLogger.Info("Bot command handlers registered.")

	// Start bot in a goroutine so it doesn't block the scheduler and
	// graceful shutdown handling
	go bot.Start()

	pollScheduler := scheduler.NewPollScheduler(monitor, logger.Log.WithField("component", "scheduler"), cfg.CronSpecPoll)
	pollScheduler.Start()

	mainLogger.Info("Application setup complete. Bot and scheduler are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	pollScheduler.Stop()
	bot.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
