package webfetch

import (
	"strings"
	"testing"
)

func TestToMarkdown(t *testing.T) {
	html := `<html><head><title>T</title><style>body { color: red; }</style></head>
<body>
	<script>alert("tracking")</script>
	<h1>Welcome</h1>
	<p>This is a <strong>test</strong> paragraph with a <a href="https://go.dev">link</a>.</p>
	<ul><li>Item 1</li><li>Item 2</li></ul>
	<noscript>enable javascript</noscript>
	<iframe src="https://ads.example.com"></iframe>
</body></html>`

	md, err := ToMarkdown(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"# Welcome", "**test**", "[link](https://go.dev)", "Item 1"} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in markdown:\n%s", want, md)
		}
	}
	for _, unwanted := range []string{"alert", "color: red", "enable javascript", "ads.example.com"} {
		if strings.Contains(md, unwanted) {
			t.Errorf("expected %q to be stripped:\n%s", unwanted, md)
		}
	}
}

func TestToMarkdown_PlainText(t *testing.T) {
	md, err := ToMarkdown("just text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md != "just text" {
		t.Errorf("expected plain text to pass through, got %q", md)
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"title tag", `<html><head><title> Go Docs </title></head><body><h1>Other</h1></body></html>`, "Go Docs"},
		{"og title", `<html><head><meta property="og:title" content="Open Graph"></head></html>`, "Open Graph"},
		{"h1 fallback", `<html><body><h1>Heading</h1></body></html>`, "Heading"},
		{"none", `<html><body><p>text</p></body></html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.html); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}
