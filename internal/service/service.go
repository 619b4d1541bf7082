// Package service turns user input into store operations. It is shared by
// the CLI commands and the HTTP server.
package service

import (
	"fmt"
	"strings"

	"github.com/gauthierbraillon/ytf/internal/aggregator"
	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/store"
	"github.com/gauthierbraillon/ytf/internal/video"
)

// FeedbackInput is a reaction as typed by the user. Emoji may be the emoji
// itself or its name. A nil At means "use the t= parameter of VideoURL".
type FeedbackInput struct {
	VideoURL string `json:"videoUrl"`
	Title    string `json:"videoTitle,omitempty"`
	At       *int   `json:"videoOffsetSeconds,omitempty"`
	Emoji    string `json:"emoji"`
	Comment  string `json:"comment"`
}

// WatchLaterInput is a bookmark as typed by the user.
type WatchLaterInput struct {
	VideoURL string `json:"videoUrl"`
	Title    string `json:"videoTitle,omitempty"`
	At       *int   `json:"videoOffsetSeconds,omitempty"`
	Note     string `json:"note"`
}

// Preview describes how a video will be played back.
type Preview struct {
	video.Classification
	Label         string `json:"label"`
	Title         string `json:"title"`
	OffsetSeconds int    `json:"offsetSeconds"`
	EmbedURL      string `json:"embedUrl,omitempty"`
	// OpenURL points at the original platform at the offset. It is the
	// fallback when EmbedURL is empty.
	OpenURL string `json:"openUrl"`
}

// Service wires both collections together.
type Service struct {
	feedback   *store.Feedback
	watchLater *store.WatchLater
}

// New creates a Service over already loaded stores.
func New(feedback *store.Feedback, watchLater *store.WatchLater) *Service {
	return &Service{feedback: feedback, watchLater: watchLater}
}

// SubmitFeedback records a reaction. Like store.Add, it may return the
// entry together with a *store.PersistenceError.
func (s *Service) SubmitFeedback(in FeedbackInput) (entry.Feedback, error) {
	var emoji entry.Emoji
	if strings.TrimSpace(in.Emoji) != "" {
		parsed, err := entry.ParseEmoji(in.Emoji)
		if err != nil {
			return entry.Feedback{}, err
		}
		emoji = parsed
	}

	return s.feedback.Add(entry.FeedbackDraft{
		VideoURL:           strings.TrimSpace(in.VideoURL),
		VideoTitle:         in.Title,
		VideoOffsetSeconds: offset(in.VideoURL, in.At),
		Emoji:              emoji,
		Comment:            in.Comment,
	})
}

// SaveForLater records a bookmark.
func (s *Service) SaveForLater(in WatchLaterInput) (entry.WatchLater, error) {
	return s.watchLater.Add(entry.WatchLaterDraft{
		VideoURL:           strings.TrimSpace(in.VideoURL),
		VideoTitle:         in.Title,
		VideoOffsetSeconds: offset(in.VideoURL, in.At),
		Note:               in.Note,
	})
}

// Feedback lists reactions matching opts.
func (s *Service) Feedback(opts aggregator.FeedOptions) []entry.Feedback {
	return aggregator.FilterFeedback(s.feedback.List(), opts)
}

// WatchLater lists bookmarks matching opts.
func (s *Service) WatchLater(opts aggregator.FeedOptions) []entry.WatchLater {
	return aggregator.FilterWatchLater(s.watchLater.List(), opts)
}

// FindFeedback returns the reaction with the given id.
func (s *Service) FindFeedback(id int64) (entry.Feedback, bool) {
	return s.feedback.Get(id)
}

// FindWatchLater returns the bookmark with the given id.
func (s *Service) FindWatchLater(id int64) (entry.WatchLater, bool) {
	return s.watchLater.Get(id)
}

// RemoveFeedback deletes a reaction and reports whether it existed.
func (s *Service) RemoveFeedback(id int64) (bool, error) {
	_, found := s.feedback.Get(id)
	return found, s.feedback.Remove(id)
}

// RemoveWatchLater deletes a bookmark and reports whether it existed.
func (s *Service) RemoveWatchLater(id int64) (bool, error) {
	_, found := s.watchLater.Get(id)
	return found, s.watchLater.Remove(id)
}

// Stats summarizes both collections.
func (s *Service) Stats() aggregator.Summary {
	return aggregator.Summarize(s.feedback.List(), s.watchLater.List())
}

// PreviewVideo classifies rawURL and resolves where playback starts. A nil
// at falls back to the t= parameter of rawURL.
func PreviewVideo(rawURL string, at *int) (Preview, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Preview{}, fmt.Errorf("%w: no video URL given", video.ErrInvalidURL)
	}
	c, err := video.Classify(rawURL)
	if err != nil {
		return Preview{}, err
	}

	seconds := max(offset(rawURL, at), 0)
	embed, _ := c.EmbedURL(seconds)
	return Preview{
		Classification: c,
		Label:          video.Label(rawURL),
		Title:          video.Title(rawURL),
		OffsetSeconds:  seconds,
		EmbedURL:       embed,
		OpenURL:        video.WatchURLAt(rawURL, seconds),
	}, nil
}

// PreviewLaunch previews the video carried by a launch URL. Without a
// positive "t" parameter the video URL's own t= applies.
func PreviewLaunch(launchURL string) (Preview, error) {
	launch, err := video.ParseLaunch(launchURL)
	if err != nil {
		return Preview{}, err
	}
	var at *int
	if launch.OffsetSeconds > 0 {
		at = &launch.OffsetSeconds
	}
	return PreviewVideo(launch.VideoURL, at)
}

func offset(rawURL string, at *int) int {
	if at != nil {
		return *at
	}
	return video.ExtractTimestamp(rawURL)
}
