package aggregator

import (
	"testing"
	"time"

	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/video"
)

func TestAC500_Stats_CountsEachReaction(t *testing.T) {
	feedback := []entry.Feedback{
		{ID: 1, Emoji: entry.EmojiGreat},
		{ID: 2, Emoji: entry.EmojiGreat},
		{ID: 3, Emoji: entry.EmojiGreat},
		{ID: 4, Emoji: entry.EmojiInsightful},
		{ID: 5, Emoji: "🎉"},
	}

	counts := CountsByEmoji(feedback)

	want := Counts{
		entry.EmojiGreat:      3,
		entry.EmojiInsightful: 1,
		entry.EmojiUseless:    0,
		entry.EmojiConfusing:  0,
		entry.EmojiBoring:     0,
	}
	if len(counts) != len(want) {
		t.Fatalf("user should see exactly the 5 reactions, got %v", counts)
	}
	total := 0
	for e, n := range want {
		if counts[e] != n {
			t.Errorf("user should see %d x %s, got %d", n, e, counts[e])
		}
		total += counts[e]
	}
	if total != 4 {
		t.Errorf("out-of-set reaction should not be counted, total %d of %d entries", total, len(feedback))
	}
}

func TestAC500_Stats_EmptyListHasAllZeroBuckets(t *testing.T) {
	counts := CountsByEmoji(nil)

	for _, e := range entry.Emojis {
		n, ok := counts[e]
		if !ok {
			t.Errorf("user should see %s even with no feedback", e)
		}
		if n != 0 {
			t.Errorf("user should see 0 x %s, got %d", e, n)
		}
	}
}

func TestAC501_Summary_CountsBothCollections(t *testing.T) {
	s := Summarize(
		[]entry.Feedback{{ID: 1, Emoji: entry.EmojiBoring}, {ID: 2, Emoji: entry.EmojiBoring}},
		[]entry.WatchLater{{ID: 1}},
	)

	if s.TotalFeedback != 2 || s.WatchLater != 1 {
		t.Errorf("user should see 2 feedback and 1 watch later, got %+v", s)
	}
	if s.ByEmoji[entry.EmojiBoring] != 2 {
		t.Errorf("user should see 2 boring moments, got %d", s.ByEmoji[entry.EmojiBoring])
	}
}

func TestAC502_Filter_ShowsOnlySelectedReaction(t *testing.T) {
	feedback := []entry.Feedback{
		{ID: 1, Emoji: entry.EmojiGreat},
		{ID: 2, Emoji: entry.EmojiUseless},
		{ID: 3, Emoji: entry.EmojiGreat},
	}

	got := FilterFeedback(feedback, FeedOptions{Emoji: entry.EmojiGreat})

	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("user filtering by 🔥 should see entries 1 and 3 in order, got %+v", got)
	}
}

func TestAC503_Filter_ShowsOnlySelectedPlatform(t *testing.T) {
	items := []entry.WatchLater{
		{ID: 1, VideoURL: "https://youtu.be/a"},
		{ID: 2, VideoURL: "https://www.tiktok.com/@a/video/1"},
		{ID: 3, VideoURL: "https://www.youtube.com/watch?v=b"},
	}

	got := FilterWatchLater(items, FeedOptions{Platforms: []video.Platform{video.PlatformYouTube}})

	if len(got) != 2 {
		t.Fatalf("user filtering by YouTube should see 2 items, got %d", len(got))
	}
	for _, w := range got {
		if video.DetectPlatform(w.VideoURL) != video.PlatformYouTube {
			t.Errorf("user should only see YouTube items, got %s", w.VideoURL)
		}
	}
}

func TestAC504_Filter_DateRangeNewestFirstAndLimit(t *testing.T) {
	now := time.Now()
	items := []entry.Feedback{
		{ID: 1, Emoji: entry.EmojiGreat, CreatedAt: now.Add(-72 * time.Hour)},
		{ID: 2, Emoji: entry.EmojiGreat, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: 3, Emoji: entry.EmojiGreat, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 4, Emoji: entry.EmojiGreat, CreatedAt: now.Add(-1 * time.Hour)},
	}

	got := FilterFeedback(items, FeedOptions{
		Since:       now.Add(-24 * time.Hour),
		NewestFirst: true,
		Limit:       2,
	})

	if len(got) != 2 {
		t.Fatalf("user requesting limit 2 should see 2 items, got %d", len(got))
	}
	if got[0].ID != 4 || got[1].ID != 3 {
		t.Errorf("user should see newest recent items first, got %d, %d", got[0].ID, got[1].ID)
	}
}

func TestAC505_Filter_EmptyInputGivesEmptySlice(t *testing.T) {
	got := FilterFeedback(nil, FeedOptions{})
	if got == nil {
		t.Fatal("filter should return empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("got %d items", len(got))
	}
}
