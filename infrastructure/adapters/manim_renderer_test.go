package adapters

import (
	"strings"
	"testing"

	"github.com/DJRGVC/Noter/config"
)

func newTestRenderer(t *testing.T) *manimRenderer {
	t.Helper()

	renderer := NewManimRenderer(&config.ManimConfig{
		Binary:       "manim",
		MediaDir:     t.TempDir(),
		VideoBaseUrl: "http://localhost:8080",
	}, NewZerologWrapper())

	return renderer.(*manimRenderer)
}

func TestManimRenderer_ParseProgress(t *testing.T) {
	renderer := newTestRenderer(t)

	cases := []struct {
		line       string
		current    int
		animation  int
		percentage int
		ok         bool
	}{
		{line: "Animation 0: Write(Text), etc.", current: -1, animation: 0, percentage: 0, ok: true},
		{line: " 45%|████      | 27/60", current: 0, animation: 0, percentage: 45, ok: true},
		{line: "100%|██████████| 60/60", current: 0, animation: 0, percentage: 100, ok: true},
		{line: "Animation 3: FadeOut", current: 0, animation: 3, percentage: 0, ok: true},
		{line: "[INFO] Rendered GenScene", current: 3, ok: false},
	}

	for _, tc := range cases {
		animation, percentage, ok := renderer.parseProgress(tc.line, tc.current)
		if ok != tc.ok {
			t.Fatalf("line %q: expected ok=%v, got %v", tc.line, tc.ok, ok)
		}
		if !ok {
			continue
		}
		if animation != tc.animation || percentage != tc.percentage {
			t.Fatalf("line %q: expected animation %d at %d%%, got %d at %d%%",
				tc.line, tc.animation, tc.percentage, animation, percentage)
		}
	}
}

func TestManimRenderer_WrapCode(t *testing.T) {
	renderer := newTestRenderer(t)

	wrapped := renderer.wrapCode("class GenScene(Scene):\n    pass", "9:16")

	if !strings.Contains(wrapped, "config.frame_size = (1080, 1920)") {
		t.Fatal("expected portrait frame size, got:\n", wrapped)
	}
	if !strings.Contains(wrapped, "from manim import *") {
		t.Fatal("expected manim import, got:\n", wrapped)
	}
	if !strings.Contains(wrapped, "class GenScene(Scene):") {
		t.Fatal("expected scene code, got:\n", wrapped)
	}

	landscape := renderer.wrapCode("class GenScene(Scene):\n    pass", "16:9")
	if !strings.Contains(landscape, "config.frame_size = (3840, 2160)") {
		t.Fatal("expected landscape frame size, got:\n", landscape)
	}
}
