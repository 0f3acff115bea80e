package instagram

import "testing"

func TestIsPostURL(t *testing.T) {
	valid := []string{
		"https://www.instagram.com/p/Cxyz123_-/",
		"https://instagram.com/p/Cxyz123",
		"http://www.instagram.com/reel/AbC9_x/",
		"https://instagram.com/tv/QQQ111/",
	}
	for _, u := range valid {
		if !IsPostURL(u) {
			t.Errorf("expected valid: %s", u)
		}
	}

	invalid := []string{
		"",
		"clip.mp4",
		"/home/user/clip.mp4",
		"https://www.instagram.com/someuser/",
		"https://www.instagram.com/stories/someuser/123/",
		"https://example.com/p/Cxyz123/",
		"https://www.youtube.com/watch?v=abc",
	}
	for _, u := range invalid {
		if IsPostURL(u) {
			t.Errorf("expected invalid: %s", u)
		}
	}
}
