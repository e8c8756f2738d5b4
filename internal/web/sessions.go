package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aryanwebd35/portfolio/internal/assistant"
)

const sessionTTL = 30 * time.Minute

// sessions maps chat cookies to live widgets. A session lives as long as the
// page that opened it; idle sessions are swept when new ones are created.
type sessions struct {
	mu      sync.Mutex
	chats   map[string]*session
	newChat func() *assistant.Chat
	now     func() time.Time
	ttl     time.Duration
}

type session struct {
	chat     *assistant.Chat
	lastSeen time.Time
}

func newSessions(newChat func() *assistant.Chat) *sessions {
	return &sessions{
		chats:   make(map[string]*session),
		newChat: newChat,
		now:     time.Now,
		ttl:     sessionTTL,
	}
}

func (s *sessions) create() (string, *assistant.Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	id := uuid.NewString()
	chat := s.newChat()
	s.chats[id] = &session{chat: chat, lastSeen: s.now()}
	return id, chat
}

func (s *sessions) get(id string) (*assistant.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.chats[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.chat, true
}

func (s *sessions) sweepLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.chats {
		if sess.lastSeen.Before(cutoff) {
			delete(s.chats, id)
		}
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chats)
}
