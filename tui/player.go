package tui

import (
	"fmt"
	"os/exec"
	"strings"
)

// Player starts playback of a media URL
type Player interface {
	Play(url string) error
}

// CommandPlayer runs an external program with the URL as its last argument,
// e.g. "mpv --really-quiet". It does not wait for the program to exit.
type CommandPlayer struct {
	Command string
}

// Play implements Player
func (p CommandPlayer) Play(url string) error {
	fields := strings.Fields(p.Command)
	if len(fields) == 0 {
		return nil
	}
	cmd := exec.Command(fields[0], append(fields[1:], url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start player: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// NewPlayer returns a CommandPlayer, or a no-op player when command is empty
func NewPlayer(command string) Player {
	if strings.TrimSpace(command) == "" {
		return nopPlayer{}
	}
	return CommandPlayer{Command: command}
}

type nopPlayer struct{}

func (nopPlayer) Play(string) error { return nil }
