package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"blackjack/internal/config"
	"blackjack/internal/game"
)

type Handler struct {
	bot    *tgbotapi.BotAPI
	cfg    *config.Config
	engine *game.Service
	log    zerolog.Logger
}

func NewHandler(bot *tgbotapi.BotAPI, cfg *config.Config, engine *game.Service, log zerolog.Logger) *Handler {
	return &Handler{
		bot:    bot,
		cfg:    cfg,
		engine: engine,
		log:    log,
	}
}

// sessionFor maps a Telegram chat onto the engine's session keyspace so
// bot players and web players share the same record shape.
func sessionFor(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	parts := strings.Fields(msg.Text)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "/start":
		h.handleStart(msg.Chat.ID)
	case "/help":
		h.handleHelp(msg.Chat.ID)
	case "/balance":
		h.handleBalance(msg.Chat.ID)
	case "/play":
		h.handlePlay(msg.Chat.ID, parts[1:])
	case "/reset":
		h.handleReset(msg.Chat.ID)
	}
}

func (h *Handler) HandleCallback(cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	data := cb.Data

	switch {
	case data == CallbackHit:
		h.handleHit(chatID)
	case data == CallbackStand:
		h.handleStand(chatID)
	case data == CallbackBalance:
		h.handleBalance(chatID)
	case strings.HasPrefix(data, CallbackPlayAgain):
		bet := 0
		if _, raw, ok := strings.Cut(data, ":"); ok {
			bet, _ = strconv.Atoi(raw)
		}
		h.startGame(chatID, bet)
	}

	h.answerCallback(cb.ID)
}

func (h *Handler) handleStart(chatID int64) {
	p, err := h.engine.GetOrCreatePlayer(sessionFor(chatID))
	if err != nil {
		h.sendFailure(chatID, err)
		return
	}

	h.send(chatID, fmt.Sprintf(
		"🎰 Welcome to Blackjack!\n\n"+
			"💵 Balance: %d\n\n"+
			"/play <bet> — start a game\n"+
			"/balance — stats\n"+
			"/reset — reset balance\n"+
			"/help — rules",
		p.Balance))
}

func (h *Handler) handleHelp(chatID int64) {
	h.send(chatID, fmt.Sprintf(
		"📖 Blackjack rules:\n\n"+
			"🎯 Beat the dealer without going over 21\n\n"+
			"📊 Card values:\n"+
			"• 2-10 — face value\n"+
			"• J, Q, K — 10\n"+
			"• A — 11 or 1\n\n"+
			"🎮 Actions:\n"+
			"• Hit — take a card\n"+
			"• Stand — stop, dealer plays\n\n"+
			"🎰 Blackjack pays x%.1f", 1+h.cfg.BlackjackPayout))
}

func (h *Handler) handleBalance(chatID int64) {
	stats, err := h.engine.Stats(sessionFor(chatID))
	if err != nil {
		var notFound *game.NotFoundError
		if errors.As(err, &notFound) {
			h.send(chatID, "No games yet. Start with /play <bet>")
			return
		}
		h.sendFailure(chatID, err)
		return
	}

	h.send(chatID, fmt.Sprintf(
		"💰 Balance: %d\n\n"+
			"📊 Stats:\n"+
			"🎮 Games: %d\n"+
			"✅ Wins: %d (%.1f%%)\n"+
			"❌ Losses: %d\n"+
			"🤝 Pushes: %d",
		stats.Balance, stats.Games, stats.Wins, stats.WinRate, stats.Losses, stats.Pushes))
}

func (h *Handler) handlePlay(chatID int64, args []string) {
	if len(args) == 0 {
		h.send(chatID, "Usage: /play <bet>")
		return
	}

	bet, err := strconv.Atoi(args[0])
	if err != nil {
		h.send(chatID, fmt.Sprintf("❌ Invalid bet. Example: /play %d", h.cfg.MinBet*10))
		return
	}

	h.startGame(chatID, bet)
}

func (h *Handler) handleReset(chatID int64) {
	p, err := h.engine.ResetBalance(sessionFor(chatID))
	if err != nil {
		h.sendFailure(chatID, err)
		return
	}
	h.send(chatID, fmt.Sprintf("💵 Balance reset to %d", p.Balance))
}

func (h *Handler) startGame(chatID int64, bet int) {
	g, p, err := h.engine.StartGame(sessionFor(chatID), bet)
	if err != nil {
		h.sendRejection(chatID, err)
		return
	}

	v := game.NewView(g, p)
	if v.GameOver {
		h.sendWithKeyboard(chatID, formatGameEnd(v), EndGameKeyboard(v.Bet))
		return
	}

	text := fmt.Sprintf("💰 Bet: %d\n💵 Balance: %d\n\n%s", v.Bet, v.Balance, formatTable(v))
	h.sendWithKeyboard(chatID, text, GameKeyboard())
}

func (h *Handler) handleHit(chatID int64) {
	g, p, err := h.engine.Hit(sessionFor(chatID))
	if err != nil {
		h.sendRejection(chatID, err)
		return
	}

	v := game.NewView(g, p)
	if v.GameOver {
		h.sendWithKeyboard(chatID, formatGameEnd(v), EndGameKeyboard(v.Bet))
		return
	}

	h.sendWithKeyboard(chatID, formatTable(v), GameKeyboard())
}

func (h *Handler) handleStand(chatID int64) {
	g, p, err := h.engine.Stand(sessionFor(chatID))
	if err != nil {
		h.sendRejection(chatID, err)
		return
	}

	v := game.NewView(g, p)
	h.sendWithKeyboard(chatID, formatGameEnd(v), EndGameKeyboard(v.Bet))
}

func formatHand(hand []game.Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func formatTable(v game.View) string {
	return fmt.Sprintf("🎴 You: %s (%d)\n🃏 Dealer: %s (%d)",
		formatHand(v.PlayerHand), v.PlayerScore,
		formatHand(v.DealerHand), v.DealerScore)
}

func formatGameEnd(v game.View) string {
	text := fmt.Sprintf("%s\n\n%s", formatTable(v), v.Message)
	text += fmt.Sprintf("\n💵 Balance: %d", v.Balance)
	return text
}

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

func (h *Handler) answerCallback(id string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		h.log.Error().Err(err).Msg("failed to answer callback")
	}
}

// sendRejection surfaces engine rejections verbatim and hides everything
// else behind a generic apology.
func (h *Handler) sendRejection(chatID int64, err error) {
	var validation *game.ValidationError
	var notFound *game.NotFoundError

	switch {
	case errors.As(err, &validation):
		h.send(chatID, "❌ "+validation.Reason)
	case errors.As(err, &notFound):
		h.send(chatID, "❌ "+notFound.Reason+". Start with /play <bet>")
	default:
		h.sendFailure(chatID, err)
	}
}

func (h *Handler) sendFailure(chatID int64, err error) {
	h.log.Error().Err(err).Int64("chat_id", chatID).Msg("engine call failed")
	h.send(chatID, "❌ Something went wrong. Try again later.")
}
