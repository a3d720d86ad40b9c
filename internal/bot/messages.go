package bot

// Operator-facing messages. The product ships in Uzbek; these strings are
// shown in the admin's private chat with the bot, never on the channel.
const (
	msgGreeting = "👋 Salom, bu yangilik e'lon qilish botidir!\n\n" +
		"Siz quyidagi buyruqlardan foydalanishingiz mumkin:\n\n" +
		"/postnews - Yangilik qo'shish\n/help - Yordam olish"
	msgHelp = "ℹ️ *Yordam:*\n\n- /postnews — Yangilik qo'shish uchun foydalaning.\n" +
		"- Har bir qadamda ko'rsatmalarga rioya qiling.\n" +
		"- Yangilikni tasdiqlashdan oldin oldindan ko'rishni ko'ring."
	msgHelpHint = "ℹ️ Botdan foydalanish bo'yicha yordam uchun /help ni bosing."

	msgAskTitle    = "📰 Iltimos, yangilik sarlavhasini yuboring."
	msgAskBody     = "📝 Keyingi qadamda, yangilik matnini yuboring."
	msgAskImage    = "📷 Iltimos, yangilik rasmini yuboring."
	msgUploading   = "⌛️ Rasm yuklanmoqda, iltimos kuting..."
	msgUploadError = "❌ Rasm yuklashda xatolik yuz berdi. Iltimos, qayta urinib ko'ring."
	msgNotAnImage  = "❌ Iltimos, faqat rasm formatidagi faylni yuklang."
	msgAskSocial   = "🔗 Ijtimoiy tarmoqlarni qo'shing:"
	msgAskMore     = "Boshqa ijtimoiy tarmoqlarni qo'shishni xohlaysizmi?"
	msgIncomplete  = "❌ Ma'lumotlar yetarli emas. Iltimos, yangilikni qayta kiriting."

	msgPosted          = "✅ Yangilik muvaffaqiyatli yuklandi va e'lon qilindi!"
	msgPostedNoChannel = "⚠️ Yangilik saytga joylandi, lekin Telegram kanalga yuborilmadi."
	msgCanceled        = "❌ Yangilik bekor qilindi."

	msgWrongStep    = "⚠️ Noto'g'ri buyruq. /postnews ni qayta yuboring."
	msgErrorRestart = "❌ Xatolik yuz berdi. Iltimos, /postnews buyrug'ini qayta yuboring."
)

// askPlatformURL prompts for one platform's link.
func askPlatformURL(platform string) string {
	return platform + " havolasini kiriting:"
}
