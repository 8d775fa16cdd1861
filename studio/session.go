package studio

import (
	"sync"

	"studio/types"
)

// Session holds the state shared between flows: the last generated artifact.
// Only the controller writes it; everyone else reads copies.
type Session struct {
	mu   sync.RWMutex
	last types.Artifact
}

// NewSession returns a session with no artifact
func NewSession() *Session {
	return &Session{}
}

// Last returns the most recent successfully generated artifact
func (s *Session) Last() types.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// remember overwrites the artifact. Empty artifacts never replace a real one.
func (s *Session) remember(r types.GenerationResult) types.Artifact {
	a := types.NewArtifact(r)
	if a.IsEmpty() {
		return s.Last()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = a
	return a
}
