package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackHit       = "hit"
	CallbackStand     = "stand"
	CallbackPlayAgain = "play_again" // carries the bet as "play_again:<bet>"
	CallbackBalance   = "balance"
)

func GameKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👊 Hit", CallbackHit),
			tgbotapi.NewInlineKeyboardButtonData("✋ Stand", CallbackStand),
		),
	)
}

func EndGameKeyboard(lastBet int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🔄 Play again (%d)", lastBet),
				fmt.Sprintf("%s:%d", CallbackPlayAgain, lastBet),
			),
			tgbotapi.NewInlineKeyboardButtonData("💵 Balance", CallbackBalance),
		),
	)
}
