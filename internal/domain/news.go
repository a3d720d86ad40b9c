package domain

import "time"

// News represents a news article stored on the website and mirrored
// to a Telegram channel.
type News struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Images   []string `json:"images,omitempty"`
	ReadTime int      `json:"read_time,omitempty"`
	Views    int      `json:"views"`

	// SocialLinks keeps insertion order, which a plain map would lose.
	SocialLinks []SocialLink `json:"social_links,omitempty"`

	AuthorID string `json:"author_id"`

	// TelegramMessageIDs and TelegramChatID describe the channel copy of
	// this article. They are populated together after a successful publish
	// and cleared together after a retract; one without the other is a bug.
	TelegramMessageIDs []int  `json:"telegram_message_ids,omitempty"`
	TelegramChatID     *int64 `json:"telegram_chat_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SocialLink is one platform-name/URL pair attached to an article.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// IsPublished reports whether the article currently has a live channel copy.
func (n *News) IsPublished() bool {
	return n.TelegramChatID != nil && len(n.TelegramMessageIDs) > 0
}

// ChannelStateConsistent checks the message-ids/chat-id pairing invariant.
func (n *News) ChannelStateConsistent() bool {
	if n.TelegramChatID == nil {
		return len(n.TelegramMessageIDs) == 0
	}
	return len(n.TelegramMessageIDs) > 0
}

// NewsUpdate carries the fields an edit may change. Nil means "keep".
type NewsUpdate struct {
	Title    *string
	Body     *string
	Images   []string
	ReadTime *int
}

// SetSocialLink stores a link for a platform, replacing an existing entry
// for the same platform while preserving first-insertion order.
func (n *News) SetSocialLink(platform, url string) {
	for i := range n.SocialLinks {
		if n.SocialLinks[i].Platform == platform {
			n.SocialLinks[i].URL = url
			return
		}
	}
	n.SocialLinks = append(n.SocialLinks, SocialLink{Platform: platform, URL: url})
}
