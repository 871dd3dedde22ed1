package history

import (
	"sync"

	"github.com/samber/do"
)

// Service keeps per-session conversation turns in memory for the process
// lifetime. Sessions are created lazily on first append and grow without
// bound.
type Service struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		sessions: make(map[string][]Turn),
	}, nil
}

// Load returns a copy of the session's turns, empty for an unknown id.
func (s *Service) Load(sessionID string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]

	result := make([]Turn, len(turns))
	copy(result, turns)

	return result
}

// Append adds the user turn followed by the assistant turn as one unit.
func (s *Service) Append(sessionID, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID],
		Turn{Role: RoleUser, Content: userText},
		Turn{Role: RoleAssistant, Content: assistantText},
	)
}

func (s *Service) Count(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions[sessionID])
}

// Clear drops all sessions.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string][]Turn)
}
