// Package video turns pasted video links into something ytf can play or hand off.
//
// This package enables ytf to:
// - Classify a link by platform (YouTube, TikTok, Instagram, other)
// - Extract the YouTube video id and build an embed URL at a start offset
// - Read a "t=" start offset out of any URL
// - Parse the launch parameters produced by the bookmarklet
package video

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidURL is returned when a link looks like YouTube but carries no video id.
var ErrInvalidURL = errors.New("invalid video URL")

// Platform identifies where a video is hosted.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformOther     Platform = "other"
)

// Platforms lists every platform value in detection order.
var Platforms = []Platform{PlatformYouTube, PlatformTikTok, PlatformInstagram, PlatformOther}

// ParsePlatforms reads a comma-separated platform list such as
// "youtube,tiktok". Blank input yields nil, meaning every platform.
func ParsePlatforms(s string) ([]Platform, error) {
	var result []Platform
	for _, part := range strings.Split(s, ",") {
		p := Platform(strings.ToLower(strings.TrimSpace(part)))
		if p == "" {
			continue
		}
		if !slices.Contains(Platforms, p) {
			return nil, fmt.Errorf("unknown platform %q: must be youtube, tiktok, instagram or other", part)
		}
		if !slices.Contains(result, p) {
			result = append(result, p)
		}
	}
	return result, nil
}

// Classification is the result of normalizing a raw link.
type Classification struct {
	RawURL      string   `json:"rawUrl"`
	Platform    Platform `json:"platform"`
	CanonicalID string   `json:"canonicalId,omitempty"`
	Embeddable  bool     `json:"embeddable"`
}

// Launch holds the parameters the bookmarklet passes when it opens ytf.
type Launch struct {
	VideoURL      string `json:"videoUrl"`
	OffsetSeconds int    `json:"videoOffsetSeconds"`
}
