package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/a11yscan/auditor/session"
)

// Session lazily launches and holds a single browser session, shared
// across tool calls so repeated scans don't each pay browser startup cost.
type Session struct {
	config session.LaunchOptions

	mu   sync.Mutex
	sess *session.Session
}

// NewSession creates a lazy session holder with the given launch options.
func NewSession(config session.LaunchOptions) *Session {
	return &Session{config: config}
}

// Get returns the shared browser session, launching it on first use.
func (s *Session) Get(ctx context.Context) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil && !s.sess.IsClosed() {
		return s.sess, nil
	}

	sess, err := session.Launch(ctx, s.config)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	s.sess = sess
	return sess, nil
}

// Close tears down the underlying browser session, if one was launched.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return nil
	}
	err := s.sess.Close(ctx)
	s.sess = nil
	return err
}
