package session

import "context"

// PressTab presses the Tab key, advancing focus to the next focusable
// element. Shared by the keyboard-walk analyzer and the focus-order probe.
func (s *Session) PressTab(ctx context.Context) error {
	return s.Keyboard().Press(ctx, "Tab")
}
