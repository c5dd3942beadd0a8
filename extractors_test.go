package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestExtractTextPlain(t *testing.T) {
	counter := 1
	text, links := extractText("  A community   platform\tfor sharing.  ", "https://github.com", &counter)
	if text != "A community platform for sharing." {
		t.Errorf("text = %q", text)
	}
	if len(links) != 0 || counter != 1 {
		t.Errorf("links = %v, counter = %d; want none", links, counter)
	}
}

func TestExtractTextLinks(t *testing.T) {
	fragment := `Tracks stock with <b>real-time</b> alerts, see <a href="/topics/inventory-management">inventory</a>,
		<a href="#top">top</a> and <a href="https://d3js.org">d3</a>.`

	counter := 4
	text, links := extractText(fragment, "https://github.com", &counter)

	want := []Link{
		{Text: "inventory", URL: "https://github.com/topics/inventory-management", ID: 4},
		{Text: "d3", URL: "https://d3js.org", ID: 5},
	}
	if len(links) != len(want) {
		t.Fatalf("links = %+v, want %+v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %+v, want %+v", i, links[i], want[i])
		}
	}
	if counter != 6 {
		t.Errorf("counter = %d, want 6", counter)
	}

	plain := ansi.Strip(text)
	for _, s := range []string{"real-time", "inventory [4]", "top and", "d3 [5]"} {
		if !strings.Contains(plain, s) {
			t.Errorf("text %q does not contain %q", plain, s)
		}
	}
	if strings.Contains(plain, "<") {
		t.Errorf("markup left in %q", plain)
	}
}

func TestExtractTextLineBreak(t *testing.T) {
	counter := 1
	text, _ := extractText("first line<br>second   line", "", &counter)
	if got := ansi.Strip(text); got != "first line\nsecond line" {
		t.Errorf("text = %q", got)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		href, base, want string
	}{
		{"", "https://github.com", ""},
		{"#section", "https://github.com", ""},
		{"tel:+6212345", "https://github.com", ""},
		{"javascript:void(0)", "https://github.com", ""},
		{"/topics/go", "https://github.com", "https://github.com/topics/go"},
		{"https://d3js.org", "https://github.com", "https://d3js.org"},
		{"mailto:example@email.com", "", "mailto:example@email.com"},
		{"ftp://files.example.com", "", ""},
		{"relative/path", "", ""},
	}

	for _, tt := range tests {
		if got := resolveURL(tt.href, tt.base); got != tt.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.href, tt.base, got, tt.want)
		}
	}
}
