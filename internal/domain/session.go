package domain

import "time"

// Step identifies the stage of a guided submission dialogue.
type Step int

// Dialogue steps, in the order an operator walks through them.
const (
	StepTitle Step = iota + 1
	StepBody
	StepImage
	StepSocial
	StepConfirm
)

// String returns a stable name for logging.
func (s Step) String() string {
	switch s {
	case StepTitle:
		return "title"
	case StepBody:
		return "body"
	case StepImage:
		return "image"
	case StepSocial:
		return "social"
	case StepConfirm:
		return "confirm"
	}
	return "unknown"
}

// Session is one in-progress submission dialogue, keyed by the chat it
// originates from. Sessions live only in process memory; a restart drops
// them and the operator starts over.
type Session struct {
	ChatID int64
	Step   Step

	Title       string
	Body        string
	Images      []string
	SocialLinks []SocialLink

	// CurrentPlatform is set after the operator picks a platform button and
	// cleared once the next text message supplies that platform's URL.
	CurrentPlatform string

	// UploadNoticeSent dedupes the "uploading, please wait" message when
	// several photos arrive in the image step.
	UploadNoticeSent bool

	UpdatedAt time.Time
}

// SetSocialLink mirrors News.SetSocialLink for the collected dialogue state.
func (s *Session) SetSocialLink(platform, url string) {
	for i := range s.SocialLinks {
		if s.SocialLinks[i].Platform == platform {
			s.SocialLinks[i].URL = url
			return
		}
	}
	s.SocialLinks = append(s.SocialLinks, SocialLink{Platform: platform, URL: url})
}

// HasPlatform reports whether a link for the platform was already collected.
func (s *Session) HasPlatform(platform string) bool {
	for _, l := range s.SocialLinks {
		if l.Platform == platform {
			return true
		}
	}
	return false
}
