package domain

import "time"

// ChannelBinding links an admin account to the Telegram bot and channel
// used to mirror that admin's articles. One bot token serves one channel.
type ChannelBinding struct {
	ID          string    `json:"id"`
	BotToken    string    `json:"-"`
	ChannelID   string    `json:"channel_id"`
	AdminChatID int64     `json:"admin_chat_id"`
	AdminID     string    `json:"admin_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
