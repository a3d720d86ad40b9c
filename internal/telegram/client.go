// Package telegram wraps the Bot API client with the narrow surface the
// dialogue engine and channel publisher need. Polling mechanics and raw
// update types stay behind this package.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SentMessage identifies one message delivered to a chat or channel.
type SentMessage struct {
	MessageID int
	ChatID    int64
}

// Client is a thin wrapper around one bot token's API connection. The same
// client serves both roles: polling operator chats for the dialogue engine
// and pushing posts into the channel for the publisher.
type Client struct {
	api *tgbotapi.BotAPI
}

// NewClient authenticates a bot token against the Bot API.
func NewClient(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Client{api: api}, nil
}

// Username returns the authenticated bot's username.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// Updates starts long polling and returns the update stream. Updates for
// one bot arrive strictly in order, which the dialogue engine relies on.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return c.api.GetUpdatesChan(u)
}

// StopPolling shuts the update stream down.
func (c *Client) StopPolling() {
	c.api.StopReceivingUpdates()
}

// SetCommands registers the bot's slash-command menu.
func (c *Client) SetCommands(commands ...tgbotapi.BotCommand) error {
	_, err := c.api.Request(tgbotapi.NewSetMyCommands(commands...))
	return err
}

// SendMessage sends a Markdown text message to an operator chat.
func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.api.Send(msg)
	return err
}

// SendMessageWithKeyboard sends a Markdown text message with an inline keyboard.
func (c *Client) SendMessageWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	_, err := c.api.Send(msg)
	return err
}

// SendPhotoPreview sends a photo with caption and keyboard to an operator
// chat. Used for the dialogue confirmation preview.
func (c *Client) SendPhotoPreview(chatID int64, photoURL, caption string, kb tgbotapi.InlineKeyboardMarkup) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	photo.ReplyMarkup = kb
	_, err := c.api.Send(photo)
	return err
}

// EditReplyMarkup replaces the inline keyboard of an existing message.
func (c *Client) EditReplyMarkup(chatID int64, messageID int, kb tgbotapi.InlineKeyboardMarkup) error {
	_, err := c.api.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, kb))
	return err
}

// AnswerCallback acknowledges an inline button press.
func (c *Client) AnswerCallback(callbackID string) error {
	_, err := c.api.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

// FileURL resolves a photo file id into a fetchable download URL.
func (c *Client) FileURL(fileID string) (string, error) {
	file, err := c.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}
	return file.Link(c.api.Token), nil
}

// SendChannelMessage sends a plain Markdown message to the channel.
func (c *Client) SendChannelMessage(ctx context.Context, channel, text string) (SentMessage, error) {
	if err := ctx.Err(); err != nil {
		return SentMessage{}, err
	}

	msg := tgbotapi.NewMessageToChannel(channel, text)
	if chatID, ok := numericChatID(channel); ok {
		msg = tgbotapi.NewMessage(chatID, text)
	}
	msg.ParseMode = tgbotapi.ModeMarkdown

	sent, err := c.api.Send(msg)
	if err != nil {
		return SentMessage{}, fmt.Errorf("send channel message: %w", err)
	}
	return SentMessage{MessageID: sent.MessageID, ChatID: sent.Chat.ID}, nil
}

// SendChannelPhoto sends a single captioned photo to the channel.
func (c *Client) SendChannelPhoto(ctx context.Context, channel, photoURL, caption string) (SentMessage, error) {
	if err := ctx.Err(); err != nil {
		return SentMessage{}, err
	}

	var photo tgbotapi.PhotoConfig
	if chatID, ok := numericChatID(channel); ok {
		photo = tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	} else {
		photo = tgbotapi.NewPhotoToChannel(channel, tgbotapi.FileURL(photoURL))
	}
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown

	sent, err := c.api.Send(photo)
	if err != nil {
		return SentMessage{}, fmt.Errorf("send channel photo: %w", err)
	}
	return SentMessage{MessageID: sent.MessageID, ChatID: sent.Chat.ID}, nil
}

// SendChannelMediaGroup sends a media group to the channel. The caption is
// attached to the first item only; captions on the rest would duplicate the
// text in clients.
func (c *Client) SendChannelMediaGroup(ctx context.Context, channel string, photoURLs []string, caption string) ([]SentMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	media := make([]interface{}, 0, len(photoURLs))
	for i, url := range photoURLs {
		item := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(url))
		if i == 0 {
			item.Caption = caption
			item.ParseMode = tgbotapi.ModeMarkdown
		}
		media = append(media, item)
	}

	group := tgbotapi.MediaGroupConfig{Media: media}
	if chatID, ok := numericChatID(channel); ok {
		group.ChatID = chatID
	} else {
		group.ChannelUsername = channel
	}

	sent, err := c.api.SendMediaGroup(group)
	if err != nil {
		return nil, fmt.Errorf("send media group: %w", err)
	}
	if len(sent) == 0 {
		return nil, fmt.Errorf("send media group: empty response")
	}

	out := make([]SentMessage, len(sent))
	for i, m := range sent {
		out[i] = SentMessage{MessageID: m.MessageID, ChatID: m.Chat.ID}
	}
	return out, nil
}

// DeleteMessage removes one message from a chat. The message may already be
// gone; callers treat failures as best-effort.
func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

// numericChatID parses channel identifiers like "-1001234" while leaving
// "@channelname" forms alone.
func numericChatID(channel string) (int64, bool) {
	if strings.HasPrefix(channel, "@") {
		return 0, false
	}
	id, err := strconv.ParseInt(channel, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
