package service

import (
	"errors"
	"testing"

	"github.com/gauthierbraillon/ytf/internal/aggregator"
	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/storage"
	"github.com/gauthierbraillon/ytf/internal/store"
	"github.com/gauthierbraillon/ytf/internal/video"
)

func newService(t *testing.T) *Service {
	t.Helper()
	backend := storage.NewMemory()
	feedback := store.NewFeedback(backend)
	later := store.NewWatchLater(backend)
	if err := feedback.Load(); err != nil {
		t.Fatal(err)
	}
	if err := later.Load(); err != nil {
		t.Fatal(err)
	}
	return New(feedback, later)
}

func seconds(n int) *int { return &n }

func TestAC600_SubmitFeedback_OffsetFromURL(t *testing.T) {
	svc := newService(t)

	f, err := svc.SubmitFeedback(FeedbackInput{
		VideoURL: "https://www.youtube.com/watch?v=abc123&t=95",
		Emoji:    "great",
		Comment:  "  the best part  ",
	})
	if err != nil {
		t.Fatal(err)
	}

	if f.VideoOffsetSeconds != 95 {
		t.Errorf("user should get the offset from the link, got %d", f.VideoOffsetSeconds)
	}
	if f.Emoji != entry.EmojiGreat {
		t.Errorf("user typing 'great' should get 🔥, got %s", f.Emoji)
	}
	if f.VideoTitle != "YouTube Video" {
		t.Errorf("user should see a derived title, got %q", f.VideoTitle)
	}
	if f.Comment != "the best part" {
		t.Errorf("comment should be trimmed, got %q", f.Comment)
	}
}

func TestAC601_SubmitFeedback_ExplicitOffsetWins(t *testing.T) {
	svc := newService(t)

	f, err := svc.SubmitFeedback(FeedbackInput{
		VideoURL: "https://youtu.be/abc123?t=95",
		Emoji:    "💡",
		At:       seconds(12),
	})
	if err != nil {
		t.Fatal(err)
	}
	if f.VideoOffsetSeconds != 12 {
		t.Errorf("explicit offset should win over the link, got %d", f.VideoOffsetSeconds)
	}
}

func TestAC602_SubmitFeedback_RequiresReaction(t *testing.T) {
	svc := newService(t)

	_, err := svc.SubmitFeedback(FeedbackInput{VideoURL: "https://youtu.be/abc"})

	var verr *entry.ValidationError
	if !errors.As(err, &verr) || verr.Message != "Please select an emoji reaction" {
		t.Fatalf("user should be asked for a reaction, got %v", err)
	}
	if len(svc.Feedback(aggregator.FeedOptions{})) != 0 {
		t.Error("nothing should be stored for invalid input")
	}
}

func TestAC603_SaveForLater_DefaultNote(t *testing.T) {
	svc := newService(t)

	w, err := svc.SaveForLater(WatchLaterInput{VideoURL: "https://www.tiktok.com/@a/video/1"})
	if err != nil {
		t.Fatal(err)
	}
	if w.Note != entry.DefaultNote {
		t.Errorf("user should see the default note, got %q", w.Note)
	}
	if w.VideoTitle != "TikTok Video" {
		t.Errorf("user should see TikTok Video, got %q", w.VideoTitle)
	}
}

func TestAC604_Remove_ReportsMissingEntries(t *testing.T) {
	svc := newService(t)
	f, _ := svc.SubmitFeedback(FeedbackInput{VideoURL: "https://youtu.be/a", Emoji: "🔥"})

	found, err := svc.RemoveFeedback(f.ID)
	if err != nil || !found {
		t.Fatalf("existing entry should be removed, found=%v err=%v", found, err)
	}
	found, err = svc.RemoveFeedback(f.ID)
	if err != nil || found {
		t.Errorf("second removal should be a no-op, found=%v err=%v", found, err)
	}
	if found, _ := svc.RemoveWatchLater(99); found {
		t.Error("unknown bookmark should not be reported as removed")
	}
}

func TestAC605_Stats_CombinesCollections(t *testing.T) {
	svc := newService(t)
	for _, e := range []string{"🔥", "fire", "boring"} {
		if _, err := svc.SubmitFeedback(FeedbackInput{VideoURL: "https://youtu.be/a", Emoji: e}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.SaveForLater(WatchLaterInput{VideoURL: "https://youtu.be/b"}); err != nil {
		t.Fatal(err)
	}

	s := svc.Stats()

	if s.TotalFeedback != 3 || s.WatchLater != 1 {
		t.Errorf("user should see 3 feedback and 1 bookmark, got %+v", s)
	}
	if s.ByEmoji[entry.EmojiGreat] != 2 || s.ByEmoji[entry.EmojiBoring] != 1 {
		t.Errorf("unexpected counts %v", s.ByEmoji)
	}
}

func TestAC606_Preview_YouTubeEmbedsAtOffset(t *testing.T) {
	p, err := PreviewVideo("https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", nil)
	if err != nil {
		t.Fatal(err)
	}

	want := "https://www.youtube.com/embed/dQw4w9WgXcQ?start=42&autoplay=1"
	if p.EmbedURL != want {
		t.Errorf("embed URL = %q, want %q", p.EmbedURL, want)
	}
	if p.Platform != video.PlatformYouTube || p.Label != "YouTube" {
		t.Errorf("unexpected classification %+v", p)
	}
}

func TestAC607_Preview_OtherPlatformsOpenOriginal(t *testing.T) {
	p, err := PreviewVideo("https://www.instagram.com/reel/xyz/", seconds(30))
	if err != nil {
		t.Fatal(err)
	}

	if p.EmbedURL != "" {
		t.Errorf("instagram should not embed, got %q", p.EmbedURL)
	}
	if p.OpenURL != "https://www.instagram.com/reel/xyz/?t=30" {
		t.Errorf("user should open the original at 30s, got %q", p.OpenURL)
	}
}

func TestAC608_Preview_RejectsBrokenYouTubeLink(t *testing.T) {
	for _, raw := range []string{"", "https://www.youtube.com/watch"} {
		if _, err := PreviewVideo(raw, nil); !errors.Is(err, video.ErrInvalidURL) {
			t.Errorf("PreviewVideo(%q) should fail with ErrInvalidURL, got %v", raw, err)
		}
	}
}

func TestAC609_PreviewLaunch_ReadsHashRoute(t *testing.T) {
	launch := "http://localhost:8787/#/feedback?video=https%3A%2F%2Fyoutu.be%2Fabc%3Fsi%3Dx&t=75"

	p, err := PreviewLaunch(launch)
	if err != nil {
		t.Fatal(err)
	}
	if p.CanonicalID != "abc" || p.OffsetSeconds != 75 {
		t.Errorf("launch should open abc at 75s, got %+v", p)
	}
}
