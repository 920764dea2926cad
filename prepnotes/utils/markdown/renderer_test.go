package markdown

import (
	"strings"
	"testing"
)

func TestRenderGFM(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render([]byte("# Title\n\n- [ ] task\n\n| a | b |\n| - | - |\n| 1 | 2 |"))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "<h1") {
		t.Errorf("expected heading, got %q", out)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("expected GFM table, got %q", out)
	}
	if !strings.Contains(out, "checkbox") {
		t.Errorf("expected task list checkbox, got %q", out)
	}
}

func TestRenderCodeFence(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render([]byte("```go\nfunc main() {}\n```"))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(string(html), "<pre") {
		t.Errorf("expected highlighted code block, got %q", string(html))
	}
}
