// Package aggregator derives read-only views from the stored collections.
//
// This package enables ytf to:
// - Count feedback per reaction for the stats overview
// - Filter feedback and watch-later lists by reaction, platform and date
// - Summarize both collections for the dashboard
package aggregator

import (
	"time"

	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/video"
)

// Counts maps every reaction in entry.Emojis to a number of feedback entries.
type Counts map[entry.Emoji]int

// Summary is the dashboard overview.
type Summary struct {
	TotalFeedback int    `json:"totalFeedback"`
	WatchLater    int    `json:"watchLater"`
	ByEmoji       Counts `json:"byEmoji"`
}

// FeedOptions configures list filtering. Zero values mean "no filter".
type FeedOptions struct {
	Limit       int
	Since       time.Time
	Until       time.Time
	Emoji       entry.Emoji
	Platforms   []video.Platform
	NewestFirst bool
}
