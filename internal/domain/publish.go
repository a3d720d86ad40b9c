package domain

// PublishStatus describes how a publish attempt ended.
type PublishStatus string

// Publish dispositions. The website copy of the article survives in every
// case; the status only describes what happened on the channel side.
const (
	// StatusPublished means the article is live on the website and the channel.
	StatusPublished PublishStatus = "PUBLISHED"
	// StatusPublishedWithoutChannel means no channel is linked for the author.
	StatusPublishedWithoutChannel PublishStatus = "PUBLISHED_WITHOUT_CHANNEL"
	// StatusFailedChannelSend means the channel send failed after the article
	// was stored.
	StatusFailedChannelSend PublishStatus = "FAILED_CHANNEL_SEND"
)

// PublishOutcome is the result of a publish attempt.
type PublishOutcome struct {
	News    *News         `json:"news"`
	Status  PublishStatus `json:"telegram_status"`
	Message string        `json:"message"`
}
