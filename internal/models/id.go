package models

import (
	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/google/uuid"
)

// NewPlaceholderID returns a client-local identifier for an entry that has
// not been confirmed by the remote store yet.
func NewPlaceholderID() string {
	return common.PlaceholderPrefix + uuid.NewString()
}
