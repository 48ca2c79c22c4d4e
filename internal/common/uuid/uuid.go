package uuid

import "github.com/google/uuid"

// UUID hands out session identifiers.
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements UUID with random (v4) uuids.
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}
