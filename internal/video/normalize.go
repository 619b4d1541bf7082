package video

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const embedURLFormat = "https://www.youtube.com/embed/%s?start=%d&autoplay=1"

var timestampPattern = regexp.MustCompile(`[?&]t=(\d+)`)

// DetectPlatform classifies a link by substring match. The first match wins:
// youtube.com/watch or youtu.be/, then tiktok.com, then instagram.com.
func DetectPlatform(rawURL string) Platform {
	switch {
	case strings.Contains(rawURL, "youtube.com/watch"), strings.Contains(rawURL, "youtu.be/"):
		return PlatformYouTube
	case strings.Contains(rawURL, "tiktok.com"):
		return PlatformTikTok
	case strings.Contains(rawURL, "instagram.com"):
		return PlatformInstagram
	default:
		return PlatformOther
	}
}

// Classify resolves the platform of rawURL and, for YouTube, its video id.
// Unknown hosts are not an error: they classify as PlatformOther and are not
// embeddable. A YouTube-shaped link without an id fails with ErrInvalidURL.
func Classify(rawURL string) (Classification, error) {
	c := Classification{RawURL: rawURL, Platform: DetectPlatform(rawURL)}
	if c.Platform != PlatformYouTube {
		return c, nil
	}

	id := youTubeID(rawURL)
	if id == "" {
		return c, fmt.Errorf("%w: no YouTube video id in %q", ErrInvalidURL, rawURL)
	}
	c.CanonicalID = id
	c.Embeddable = true
	return c, nil
}

// youTubeID reads the "v" parameter of a watch link or the path segment of a
// youtu.be link. It returns "" when neither is present.
func youTubeID(rawURL string) string {
	if strings.Contains(rawURL, "youtube.com/watch") {
		parts := strings.Split(rawURL, "?")
		if len(parts) < 2 {
			return ""
		}
		// ParseQuery keeps every well-formed pair even when others are malformed.
		values, _ := url.ParseQuery(parts[1])
		return values.Get("v")
	}

	_, after, found := strings.Cut(rawURL, "youtu.be/")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, "?")
	return id
}

// EmbedURL returns the player URL starting at offsetSeconds. The second
// result is false when the video cannot be embedded; callers then open
// RawURL on the original platform instead.
func (c Classification) EmbedURL(offsetSeconds int) (string, bool) {
	if !c.Embeddable || c.CanonicalID == "" {
		return "", false
	}
	if offsetSeconds < 0 {
		offsetSeconds = 0
	}
	return fmt.Sprintf(embedURLFormat, url.PathEscape(c.CanonicalID), offsetSeconds), true
}

// ExtractTimestamp returns the integer value of the first "t=<digits>" query
// parameter in rawURL, or 0 when there is none or it does not fit an int.
func ExtractTimestamp(rawURL string) int {
	match := timestampPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return 0
	}
	seconds, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return seconds
}

// WatchURLAt appends a "t=" start offset to rawURL so the original platform
// opens at that moment.
func WatchURLAt(rawURL string, offsetSeconds int) string {
	if offsetSeconds < 0 {
		offsetSeconds = 0
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%st=%d", rawURL, sep, offsetSeconds)
}

// Label names the hosting platform for display. It is broader than
// DetectPlatform: any youtube.com link counts, not only watch pages.
func Label(rawURL string) string {
	switch {
	case strings.Contains(rawURL, "youtube.com"), strings.Contains(rawURL, "youtu.be"):
		return "YouTube"
	case strings.Contains(rawURL, "tiktok.com"):
		return "TikTok"
	case strings.Contains(rawURL, "instagram.com"):
		return "Instagram"
	default:
		return "Video"
	}
}

// Title derives a best-effort label such as "YouTube Video". It is not
// authoritative metadata.
func Title(rawURL string) string {
	label := Label(rawURL)
	if label == "Video" {
		return label
	}
	return label + " Video"
}

// FormatOffset renders seconds as m:ss.
func FormatOffset(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
