// Package guard implements the pre-write uniqueness check for records.
//
// The check is advisory: it gives the operator a fast answer before a write
// is attempted, while the unique constraints in the store remain the final
// arbiter under concurrent writers.
package guard

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/models"
)

// ContactFinder returns records whose email or phone equals one of the given
// non-empty values.
type ContactFinder interface {
	FindByContact(ctx context.Context, email, phone string) ([]models.Record, error)
}

type Guard struct {
	finder ContactFinder
}

func New(finder ContactFinder) *Guard {
	return &Guard{finder: finder}
}

// CheckConflict reports whether another record, other than excludeID, already
// uses the candidate's email or phone. Empty values never conflict.
func (g *Guard) CheckConflict(ctx context.Context, candidate models.RecordInput, excludeID string) (bool, error) {
	email := strings.TrimSpace(candidate.Email)
	phone := strings.TrimSpace(candidate.Phone)
	if email == "" && phone == "" {
		return false, nil
	}

	rows, err := g.finder.FindByContact(ctx, email, phone)
	if err != nil {
		return false, fmt.Errorf("%w: duplicate check: %w", common.ErrRemoteRead, err)
	}

	for _, r := range rows {
		if r.ID == excludeID {
			continue
		}
		if (email != "" && r.Email == email) || (phone != "" && r.Phone == phone) {
			return true, nil
		}
	}
	return false, nil
}
