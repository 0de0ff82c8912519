package services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxPlayerNameLength is measured in characters, not bytes.
const MaxPlayerNameLength = 100

// EventBroadcaster pushes tournament events to live clients.
type EventBroadcaster interface {
	BroadcastEvent(eventType string, payload interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastEvent(string, interface{}) {}

func broadcasterOrNoop(b EventBroadcaster) EventBroadcaster {
	if b == nil {
		return noopBroadcaster{}
	}
	return b
}

func storageError(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, action, err)
}

func normalizePlayerName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", ErrPlayerNameRequired
	}
	if utf8.RuneCountInString(name) > MaxPlayerNameLength {
		return "", fmt.Errorf("%w (max %d characters)", ErrPlayerNameTooLong, MaxPlayerNameLength)
	}
	return name, nil
}
