package story

import (
	"strings"
	"testing"
)

func TestSceneCount(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		count int
	}{
		{"single sentence without terminator", "A fox walks into the forest", 1},
		{"two sentences", "A fox walks into the forest. It finds a river.", 2},
		{"short fragments dropped", "Hi. Ok. A lion roars loudly. Yes.", 1},
		{"exactly five chars is not a scene", "abcde.abcdef", 1},
		{"capped at five", strings.Repeat("The sun rises again. ", 9), 5},
		{"only separators", "..........", 0},
		{"whitespace trimmed before length check", "   hello   .  world wide  ", 1},
		{"unicode counted in characters", "नमस्ते दुनिया. छोटा.", 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SceneCount(c.text); got != c.count {
				t.Fatalf("SceneCount(%q) = %d; want %d", c.text, got, c.count)
			}
		})
	}
}

func TestSplitScenesTrims(t *testing.T) {
	scenes := SplitScenes("  The cat sleeps.   The dog barks loudly.  ")
	want := []string{"The cat sleeps", "The dog barks loudly"}
	if len(scenes) != len(want) {
		t.Fatalf("SplitScenes returned %d scenes; want %d", len(scenes), len(want))
	}
	for i := range want {
		if scenes[i] != want[i] {
			t.Fatalf("scene %d = %q; want %q", i, scenes[i], want[i])
		}
	}
}

func TestLengthAndTruncate(t *testing.T) {
	if got := Length("   short   "); got != 5 {
		t.Fatalf("Length = %d; want 5", got)
	}
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Fatalf("Truncate = %q; want %q", got, "abc")
	}
	if got := Truncate("नमस्ते", 2); got != "नम" {
		t.Fatalf("Truncate unicode = %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("Truncate short = %q", got)
	}
}
