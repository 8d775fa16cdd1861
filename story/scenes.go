// Package story splits a free-text story into the scenes a video is built from.
// The client uses the scene count to size its progress bar and the backend
// renders one clip per scene, so both sides must agree on the rules here.
package story

import (
	"strings"
	"unicode/utf8"

	"studio/config"
)

// SplitScenes returns the trimmed fragments of text, split on the scene
// separator, that are longer than config.MinSceneLength. At most
// config.MaxScenes scenes are returned.
func SplitScenes(text string) []string {
	scenes := make([]string, 0, config.MaxScenes)
	for _, fragment := range strings.Split(text, config.SceneSeparator) {
		fragment = strings.TrimSpace(fragment)
		if utf8.RuneCountInString(fragment) <= config.MinSceneLength {
			continue
		}
		scenes = append(scenes, fragment)
		if len(scenes) == config.MaxScenes {
			break
		}
	}
	return scenes
}

// SceneCount is len(SplitScenes(text))
func SceneCount(text string) int {
	return len(SplitScenes(text))
}

// Length is the trimmed length of text in characters
func Length(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}

// Truncate cuts text to at most n characters
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n])
}
