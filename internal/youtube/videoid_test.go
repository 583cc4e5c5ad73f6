package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ?start=10", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ#t=5", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=short", "", false},
		{"https://www.youtube.com/channel/abc", "", false},
	}
	for _, c := range cases {
		got, ok := ExtractVideoID(c.url)
		if got != c.want || ok != c.ok {
			t.Errorf("ExtractVideoID(%q) = %q, %v; want %q, %v", c.url, got, ok, c.want, c.ok)
		}
	}
}

func TestIsVideoURL(t *testing.T) {
	valid := []string{"https://www.youtube.com/watch?v=x", "youtu.be/abc", "http://youtube.com/embed/x"}
	for _, u := range valid {
		if !IsVideoURL(u) {
			t.Errorf("IsVideoURL(%q) = false", u)
		}
	}
	invalid := []string{"https://vimeo.com/123", "https://www.youtube.com/", "not a url"}
	for _, u := range invalid {
		if IsVideoURL(u) {
			t.Errorf("IsVideoURL(%q) = true", u)
		}
	}
}
