package session

import "context"

// Keyboard sends key events to the focused element of a browsing context.
type Keyboard struct {
	client  *bidiClient
	context string
}

// Press presses and releases a single key. Key names follow the standard
// DOM key naming convention (e.g. "Enter", "Tab", "ArrowUp").
func (k *Keyboard) Press(ctx context.Context, key string) error {
	_, err := k.client.Send(ctx, "input.performActions", map[string]interface{}{
		"context": k.context,
		"actions": []interface{}{
			map[string]interface{}{
				"type": "key",
				"id":   "auditor-keyboard",
				"actions": []interface{}{
					map[string]interface{}{"type": "keyDown", "value": key},
					map[string]interface{}{"type": "keyUp", "value": key},
				},
			},
		},
	})
	return err
}

// Type sends individual keypress events for each character in text.
func (k *Keyboard) Type(ctx context.Context, text string) error {
	for _, r := range text {
		if err := k.Press(ctx, string(r)); err != nil {
			return err
		}
	}
	return nil
}
