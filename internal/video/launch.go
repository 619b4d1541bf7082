package video

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseLaunch reads the "video" and "t" parameters the bookmarklet puts on
// the ytf launch URL. The parameters may sit in the query string or inside a
// hash route such as "/#/feedback?video=...&t=42". Missing parameters yield
// zero values, not an error.
func ParseLaunch(rawURL string) (Launch, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Launch{}, fmt.Errorf("failed to parse launch URL: %w", err)
	}

	launch := LaunchFromQuery(u.Query())
	if launch.VideoURL != "" {
		return launch, nil
	}

	// EscapedFragment keeps %26 and friends encoded so the embedded video URL
	// survives query parsing.
	_, fragmentQuery, found := strings.Cut(u.EscapedFragment(), "?")
	if !found {
		return launch, nil
	}
	values, err := url.ParseQuery(fragmentQuery)
	if err != nil {
		return Launch{}, fmt.Errorf("failed to parse launch parameters: %w", err)
	}
	return LaunchFromQuery(values), nil
}

// LaunchFromQuery extracts launch parameters from already-decoded values.
// A non-numeric or negative "t" becomes 0; trailing garbage after the
// leading digits is ignored.
func LaunchFromQuery(values url.Values) Launch {
	return Launch{
		VideoURL:      strings.TrimSpace(values.Get("video")),
		OffsetSeconds: leadingSeconds(values.Get("t")),
	}
}

func leadingSeconds(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
