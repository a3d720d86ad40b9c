package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IJTechs/namedu-backend/internal/domain"
)

// Callback actions carried in inline button data.
const (
	actionStartPostNews = "start_postnews"
	actionGetHelp       = "get_help"
	actionAddPrefix     = "add_"
	actionSkipSocial    = "skip_social"
	actionFinishSocial  = "finish_social"
	actionConfirmPost   = "confirm_post"
	actionCancelPost    = "cancel_post"
	actionNoop          = "noop"
)

// socialPlatforms lists the platforms offered during the social step, in
// the order the buttons appear.
var socialPlatforms = []string{"telegram", "instagram", "facebook", "youtube", "twitter"}

// startKeyboard offers the two entry points under the greeting.
func startKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Yangilik qo'shish", actionStartPostNews),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Yordam", actionGetHelp),
		),
	)
}

// socialKeyboard offers the platforms not yet collected, two per row, with
// a skip button before any link exists and a finish button after.
func socialKeyboard(session *domain.Session) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, platform := range socialPlatforms {
		if session.HasPlatform(platform) {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(platform, actionAddPrefix+platform))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if len(session.SocialLinks) == 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ O'tkazib yuborish", actionSkipSocial),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Tugatish", actionFinishSocial),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// confirmKeyboard sits under the preview message.
func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Tasdiqlash", actionConfirmPost),
			tgbotapi.NewInlineKeyboardButtonData("❌ Bekor qilish", actionCancelPost),
		),
	)
}

// postedKeyboard replaces the confirm keyboard once the article is posted,
// so a second tap cannot double-submit.
func postedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Posted", actionNoop),
		),
	)
}

// canceledKeyboard replaces the confirm keyboard after a cancel.
func canceledKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Canceled", actionNoop),
		),
	)
}
