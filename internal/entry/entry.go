package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/gauthierbraillon/ytf/internal/video"
)

// ValidationError reports a draft that cannot become an entry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

var emojiLabels = map[Emoji]string{
	EmojiGreat:      "Great",
	EmojiInsightful: "Insightful",
	EmojiUseless:    "Useless",
	EmojiConfusing:  "Confusing",
	EmojiBoring:     "Boring",
}

// Extra names accepted on the command line next to the labels.
var emojiAliases = map[string]Emoji{
	"fire":     EmojiGreat,
	"idea":     EmojiInsightful,
	"bulb":     EmojiInsightful,
	"x":        EmojiUseless,
	"thinking": EmojiConfusing,
	"zzz":      EmojiBoring,
	"sleep":    EmojiBoring,
}

var fold = cases.Fold()

// Valid reports whether e belongs to the closed reaction set.
func (e Emoji) Valid() bool {
	_, ok := emojiLabels[e]
	return ok
}

// Label returns the human name of the reaction, or "" for unknown values.
func (e Emoji) Label() string {
	return emojiLabels[e]
}

// ParseEmoji accepts a reaction either as the emoji itself or by name
// ("great", "Insightful", "zzz", ...). Names are matched case-insensitively.
func ParseEmoji(s string) (Emoji, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: "emoji", Message: "Please select an emoji reaction"}
	}

	// Drop the emoji presentation selector some keyboards append.
	candidate := Emoji(strings.TrimSuffix(s, "\ufe0f"))
	if candidate.Valid() {
		return candidate, nil
	}

	name := fold.String(s)
	for _, e := range Emojis {
		if fold.String(e.Label()) == name {
			return e, nil
		}
	}
	if e, ok := emojiAliases[name]; ok {
		return e, nil
	}
	return "", &ValidationError{Field: "emoji", Message: fmt.Sprintf("unknown reaction %q", s)}
}

// Validate checks the fields a caller must supply for feedback.
func (d FeedbackDraft) Validate() error {
	if err := validateVideo(d.VideoURL, d.VideoOffsetSeconds); err != nil {
		return err
	}
	if d.Emoji == "" {
		return &ValidationError{Field: "emoji", Message: "Please select an emoji reaction"}
	}
	if !d.Emoji.Valid() {
		return &ValidationError{Field: "emoji", Message: fmt.Sprintf("unknown reaction %q", d.Emoji)}
	}
	return nil
}

// Build turns the draft into a Feedback with the given identity. The id and
// creation instant come only from the arguments; no draft field can
// override them.
func (d FeedbackDraft) Build(id int64, createdAt time.Time) (Feedback, error) {
	if err := d.Validate(); err != nil {
		return Feedback{}, err
	}
	return Feedback{
		ID:                 id,
		VideoURL:           d.VideoURL,
		VideoTitle:         titleFor(d.VideoTitle, d.VideoURL),
		VideoOffsetSeconds: d.VideoOffsetSeconds,
		CreatedAt:          createdAt,
		Emoji:              d.Emoji,
		Comment:            cleanText(d.Comment),
	}, nil
}

// Validate checks the fields a caller must supply for a bookmark. Unlike
// feedback, no reaction is required.
func (d WatchLaterDraft) Validate() error {
	return validateVideo(d.VideoURL, d.VideoOffsetSeconds)
}

// Build turns the draft into a WatchLater with the given identity. A blank
// note becomes DefaultNote.
func (d WatchLaterDraft) Build(id int64, createdAt time.Time) (WatchLater, error) {
	if err := d.Validate(); err != nil {
		return WatchLater{}, err
	}
	note := cleanText(d.Note)
	if note == "" {
		note = DefaultNote
	}
	return WatchLater{
		ID:                 id,
		VideoURL:           d.VideoURL,
		VideoTitle:         titleFor(d.VideoTitle, d.VideoURL),
		VideoOffsetSeconds: d.VideoOffsetSeconds,
		CreatedAt:          createdAt,
		Note:               note,
	}, nil
}

func validateVideo(rawURL string, offset int) error {
	if strings.TrimSpace(rawURL) == "" {
		return &ValidationError{Field: "videoUrl", Message: "Please enter a video URL"}
	}
	if offset < 0 {
		return &ValidationError{Field: "videoOffsetSeconds", Message: "video offset must not be negative"}
	}
	return nil
}

func titleFor(title, rawURL string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	return video.Title(rawURL)
}

func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
