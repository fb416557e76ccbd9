package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed identifier like "cmp-1f2e3d4c5b6a". The prefix
// keeps ids readable in the persisted document and in operator-facing logs.
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "-" + raw[:12]
}
