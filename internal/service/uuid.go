package service

import "github.com/google/uuid"

// newEntityID generates a client-side entity identifier. Ids are assigned
// at creation and never change afterwards.
func newEntityID() string {
	return uuid.NewString()
}
