package utils

import (
	"github.com/google/uuid"
)

// NewRequestID returns a new unique identifier for request correlation
func NewRequestID() string {
	return uuid.New().String()
}
