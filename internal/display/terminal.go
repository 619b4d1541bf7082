// Package display provides terminal output formatting for ytf.
package display

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gauthierbraillon/ytf/internal/aggregator"
	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/service"
	"github.com/gauthierbraillon/ytf/internal/video"
)

const (
	separator      = " • "
	commentMaxLen  = 200
	entrySeparator = "\n---\n\n"
)

// TerminalFormatter formats entries for terminal display.
type TerminalFormatter struct {
	now func() time.Time
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{now: time.Now}
}

// FormatFeedback formats a single reaction card.
func (f *TerminalFormatter) FormatFeedback(fb entry.Feedback) string {
	var lines []string

	// Header: #id 🔥 [YOUTUBE] Title
	lines = append(lines, fmt.Sprintf("#%d %s %s", fb.ID, fb.Emoji, f.header(fb.VideoURL, fb.VideoTitle)))
	lines = append(lines, f.meta(fb.VideoOffsetSeconds, fb.Emoji.Label(), fb.CreatedAt))

	if fb.Comment != "" {
		lines = append(lines, "  \""+f.TruncateText(fb.Comment, commentMaxLen)+"\"")
	}

	lines = append(lines, "  "+video.WatchURLAt(fb.VideoURL, fb.VideoOffsetSeconds))
	return strings.Join(lines, "\n") + "\n"
}

// FormatWatchLater formats a single bookmark card.
func (f *TerminalFormatter) FormatWatchLater(w entry.WatchLater) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("#%d %s", w.ID, f.header(w.VideoURL, w.VideoTitle)))
	lines = append(lines, f.meta(w.VideoOffsetSeconds, "", w.CreatedAt))

	if w.Note != "" {
		lines = append(lines, "  "+f.TruncateText(w.Note, commentMaxLen))
	}

	lines = append(lines, "  "+video.WatchURLAt(w.VideoURL, w.VideoOffsetSeconds))
	return strings.Join(lines, "\n") + "\n"
}

func (f *TerminalFormatter) header(rawURL, title string) string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(video.Label(rawURL)), title)
}

func (f *TerminalFormatter) meta(offsetSeconds int, label string, createdAt time.Time) string {
	parts := []string{"at " + video.FormatOffset(offsetSeconds)}
	if label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, f.FormatTimestamp(createdAt))
	return "  " + strings.Join(parts, separator)
}

// FormatFeedbackList formats reactions for display.
func (f *TerminalFormatter) FormatFeedbackList(items []entry.Feedback) string {
	if len(items) == 0 {
		return "No feedback yet. Add some with: ytf feedback add <url> --emoji great\n"
	}
	formatted := make([]string, 0, len(items))
	for _, item := range items {
		formatted = append(formatted, f.FormatFeedback(item))
	}
	return strings.Join(formatted, entrySeparator)
}

// FormatWatchLaterList formats bookmarks for display.
func (f *TerminalFormatter) FormatWatchLaterList(items []entry.WatchLater) string {
	if len(items) == 0 {
		return "Nothing saved for later. Save a video with: ytf later add <url>\n"
	}
	formatted := make([]string, 0, len(items))
	for _, item := range items {
		formatted = append(formatted, f.FormatWatchLater(item))
	}
	return strings.Join(formatted, entrySeparator)
}

// FormatStats formats the dashboard overview, one line per reaction.
func (f *TerminalFormatter) FormatStats(s aggregator.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total feedback: %d\n", s.TotalFeedback)
	fmt.Fprintf(&b, "Watch later:    %d\n", s.WatchLater)
	b.WriteString("\n")
	for _, e := range entry.Emojis {
		fmt.Fprintf(&b, "  %s %-10s %d\n", e, e.Label(), s.ByEmoji[e])
	}
	return b.String()
}

// FormatPreview describes where a video will play.
func (f *TerminalFormatter) FormatPreview(p service.Preview) string {
	lines := []string{
		fmt.Sprintf("[%s] %s", strings.ToUpper(p.Label), p.Title),
		fmt.Sprintf("  platform: %s%sstarts at %s", p.Platform, separator, video.FormatOffset(p.OffsetSeconds)),
	}
	if p.CanonicalID != "" {
		lines = append(lines, "  id: "+p.CanonicalID)
	}
	if p.EmbedURL != "" {
		lines = append(lines, "  embed: "+p.EmbedURL)
	} else {
		lines = append(lines, "  not embeddable, open on "+p.Label+":")
	}
	lines = append(lines, "  "+p.OpenURL)
	return strings.Join(lines, "\n") + "\n"
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := f.now().Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(text)
	return string(runes[:maxLen-3]) + "..."
}
