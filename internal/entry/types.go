// Package entry defines the records ytf keeps: feedback reactions and
// watch-later bookmarks against a moment in a video.
//
// Entries are immutable values. They are only created by a store from a
// draft, which carries the caller-supplied fields; the store supplies the id
// and the creation instant.
package entry

import "time"

// Emoji is a reaction category.
type Emoji string

const (
	EmojiGreat      Emoji = "🔥"
	EmojiInsightful Emoji = "💡"
	EmojiUseless    Emoji = "❌"
	EmojiConfusing  Emoji = "🤔"
	EmojiBoring     Emoji = "💤"
)

// Emojis is the closed set of reactions, in display order.
var Emojis = []Emoji{EmojiGreat, EmojiInsightful, EmojiUseless, EmojiConfusing, EmojiBoring}

// DefaultNote is stored on a watch-later entry saved without a note.
const DefaultNote = "Saved for later viewing"

// Feedback is a reaction to a moment in a video.
type Feedback struct {
	ID                 int64     `json:"id"`
	VideoURL           string    `json:"videoUrl"`
	VideoTitle         string    `json:"videoTitle"`
	VideoOffsetSeconds int       `json:"videoOffsetSeconds"`
	CreatedAt          time.Time `json:"createdAt"`
	Emoji              Emoji     `json:"emoji"`
	Comment            string    `json:"comment"`
}

// WatchLater is a bookmark to come back to a moment in a video.
type WatchLater struct {
	ID                 int64     `json:"id"`
	VideoURL           string    `json:"videoUrl"`
	VideoTitle         string    `json:"videoTitle"`
	VideoOffsetSeconds int       `json:"videoOffsetSeconds"`
	CreatedAt          time.Time `json:"createdAt"`
	Note               string    `json:"note"`
}

// EntryID returns the store-assigned id.
func (f Feedback) EntryID() int64 { return f.ID }

// EntryID returns the store-assigned id.
func (w WatchLater) EntryID() int64 { return w.ID }

// FeedbackDraft carries the caller-supplied fields of a new Feedback.
type FeedbackDraft struct {
	VideoURL           string `json:"videoUrl"`
	VideoTitle         string `json:"videoTitle,omitempty"`
	VideoOffsetSeconds int    `json:"videoOffsetSeconds"`
	Emoji              Emoji  `json:"emoji"`
	Comment            string `json:"comment"`
}

// WatchLaterDraft carries the caller-supplied fields of a new WatchLater.
type WatchLaterDraft struct {
	VideoURL           string `json:"videoUrl"`
	VideoTitle         string `json:"videoTitle,omitempty"`
	VideoOffsetSeconds int    `json:"videoOffsetSeconds"`
	Note               string `json:"note"`
}
