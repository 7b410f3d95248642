package models

import (
	"strings"
	"time"
)

// NewsArticle is one news item about a stock or its market
type NewsArticle struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Symbol      string    `json:"symbol,omitempty"`
}

// DedupKey returns the exact-match identity for an article. Lowercased
// title when present, then URL, then source plus a summary prefix.
func (a *NewsArticle) DedupKey() string {
	if t := strings.TrimSpace(a.Title); t != "" {
		return strings.ToLower(t)
	}
	if a.URL != "" {
		return a.URL
	}
	summary := a.Summary
	if len(summary) > 50 {
		summary = summary[:50]
	}
	return a.Source + "_" + summary
}
