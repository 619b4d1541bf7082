package aggregator

import (
	"slices"
	"time"

	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/video"
)

// CountsByEmoji counts feedback per reaction. The result always holds all
// five reactions; entries with a reaction outside the set are not counted.
func CountsByEmoji(feedback []entry.Feedback) Counts {
	counts := make(Counts, len(entry.Emojis))
	for _, e := range entry.Emojis {
		counts[e] = 0
	}
	for _, f := range feedback {
		if _, ok := counts[f.Emoji]; ok {
			counts[f.Emoji]++
		}
	}
	return counts
}

// Summarize builds the dashboard overview of both collections.
func Summarize(feedback []entry.Feedback, watchLater []entry.WatchLater) Summary {
	return Summary{
		TotalFeedback: len(feedback),
		WatchLater:    len(watchLater),
		ByEmoji:       CountsByEmoji(feedback),
	}
}

// FilterFeedback returns the feedback matching opts. Order is kept (oldest
// first) unless opts.NewestFirst is set.
func FilterFeedback(items []entry.Feedback, opts FeedOptions) []entry.Feedback {
	return filter(items, opts, func(f entry.Feedback) (string, time.Time, bool) {
		return f.VideoURL, f.CreatedAt, opts.Emoji == "" || f.Emoji == opts.Emoji
	})
}

// FilterWatchLater returns the bookmarks matching opts. The Emoji option
// does not apply to bookmarks.
func FilterWatchLater(items []entry.WatchLater, opts FeedOptions) []entry.WatchLater {
	return filter(items, opts, func(w entry.WatchLater) (string, time.Time, bool) {
		return w.VideoURL, w.CreatedAt, true
	})
}

// filter applies the shared options; fields extracts the video URL, the
// creation instant and any type-specific match of one item.
func filter[E any](items []E, opts FeedOptions, fields func(E) (string, time.Time, bool)) []E {
	result := make([]E, 0, len(items))
	for _, item := range items {
		rawURL, createdAt, ok := fields(item)
		if !ok {
			continue
		}
		if !opts.Since.IsZero() && createdAt.Before(opts.Since) {
			continue
		}
		if !opts.Until.IsZero() && createdAt.After(opts.Until) {
			continue
		}
		if len(opts.Platforms) > 0 && !slices.Contains(opts.Platforms, video.DetectPlatform(rawURL)) {
			continue
		}
		result = append(result, item)
	}

	if opts.NewestFirst {
		slices.Reverse(result)
	}
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result
}
