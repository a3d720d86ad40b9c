// Package format renders news articles into Telegram Markdown captions.
// Every function here is pure: the same inputs always produce the same
// output, so publish and republish render identically.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/IJTechs/namedu-backend/internal/domain"
)

const (
	// MaxCaptionLength is the hard cap Telegram enforces on media captions
	// that we budget against.
	MaxCaptionLength = 1000

	// captionReserve keeps slack between the truncated body and the cap so
	// the read-more link and closing line always fit intact.
	captionReserve = 10

	// followUsLine closes every post.
	followUsLine = "*Bizni kuzatib boring*"
)

var (
	urlRegex        = regexp.MustCompile(`https?://[^\s]+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// LinkifyURLs rewrites every bare absolute URL in body into an explicit
// Markdown link pointing at itself. Some clients do not auto-linkify
// captions, so we never rely on that.
func LinkifyURLs(body string) string {
	return urlRegex.ReplaceAllStringFunc(body, func(url string) string {
		return fmt.Sprintf("[%s](%s)", url, url)
	})
}

// Slugify lowercases the title and collapses whitespace runs into single
// hyphens. Non-ASCII characters pass through unchanged.
func Slugify(title string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
}

// ReadMoreLink builds the canonical website link appended to every post.
func ReadMoreLink(baseURL, title, newsID string) string {
	return fmt.Sprintf("[Batafsil](%s/yangilik/%s?id=%s)", strings.TrimRight(baseURL, "/"), Slugify(title), newsID)
}

// SocialLinksLine formats collected social links as a "|"-separated row of
// Markdown links with capitalized platform names. Empty input yields "".
func SocialLinksLine(links []domain.SocialLink) string {
	if len(links) == 0 {
		return ""
	}
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, fmt.Sprintf("[%s](%s)", capitalize(l.Platform), l.URL))
	}
	return strings.Join(parts, " | ")
}

// Post renders the full channel caption: bold title, linkified body
// truncated to the caption budget, the read-more link, the closing line and
// an optional social-links row. The read-more link and closing line are
// never truncated; only the body gives way.
func Post(title, body, readMore string, links []domain.SocialLink) string {
	filtered := LinkifyURLs(body)

	budget := MaxCaptionLength - utf8.RuneCountInString(readMore) - captionReserve
	if utf8.RuneCountInString(filtered) > budget {
		filtered = string([]rune(filtered)[:budget]) + "... "
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n%s %s\n\n%s", title, filtered, readMore, followUsLine)
	if line := SocialLinksLine(links); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

// Preview renders the dialogue confirmation message shown to the operator
// before posting. Unlike Post it has no caption budget pressure and shows
// the social links placeholder when none were added.
func Preview(title, body string, links []domain.SocialLink) string {
	linksText := SocialLinksLine(links)
	if linksText == "" {
		linksText = "Siz ijtimoiy tarmoqlarni qo'shmadingiz."
	}
	return fmt.Sprintf("*%s*\n\n%s\n\nBizni kuzatib boring:\n%s", title, body, linksText)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}
