// Package bot is the Telegram front-end. It drives the same game engine as
// the web server, keyed by a per-chat session identifier.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"blackjack/internal/config"
	"blackjack/internal/game"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	log     zerolog.Logger
}

func New(cfg *config.Config, engine *game.Service, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		handler: NewHandler(api, cfg, engine, log),
		log:     log,
	}, nil
}

func (b *Bot) Run() error {
	b.log.Info().Str("username", b.api.Self.UserName).Msg("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			go b.handler.HandleCallback(update.CallbackQuery)
			continue
		}

		if update.Message != nil {
			go b.handler.HandleMessage(update.Message)
		}
	}

	return nil
}
