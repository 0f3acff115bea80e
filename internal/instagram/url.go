// Package instagram fetches the video behind an Instagram post URL so it can
// be uploaded like any local file. Downloads are scoped to one analysis run
// and removed by the returned cleanup func.
package instagram

import "regexp"

// postPatterns match the three public post URL shapes: posts, reels, and TV.
var postPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.)?instagram\.com/p/[A-Za-z0-9_-]+/?`),
	regexp.MustCompile(`^https?://(www\.)?instagram\.com/reel/[A-Za-z0-9_-]+/?`),
	regexp.MustCompile(`^https?://(www\.)?instagram\.com/tv/[A-Za-z0-9_-]+/?`),
}

// IsPostURL reports whether s looks like an Instagram post, reel, or TV URL.
func IsPostURL(s string) bool {
	for _, p := range postPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
