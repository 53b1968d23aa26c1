package cache

import "strings"

// DefaultEmbedToken is the marker pages use to embed a carousel, e.g.
// [offers-carousel slug="summer-sale"].
const DefaultEmbedToken = "[offers-carousel"

// TokenScanner decides whether saved page content may embed a carousel.
// The check is inherently approximate (false positives only cost a cache
// rebuild), so it lives behind an interface and can be swapped or
// disabled.
type TokenScanner interface {
	ContentMayReferenceCarousel(body string) bool
}

// EmbedTokenScanner matches the literal embed token prefix.
type EmbedTokenScanner struct {
	Token string
}

func NewEmbedTokenScanner() EmbedTokenScanner {
	return EmbedTokenScanner{Token: DefaultEmbedToken}
}

func (s EmbedTokenScanner) ContentMayReferenceCarousel(body string) bool {
	return s.Token != "" && strings.Contains(body, s.Token)
}

// NopScanner disables page-content invalidation entirely.
type NopScanner struct{}

func (NopScanner) ContentMayReferenceCarousel(string) bool { return false }
