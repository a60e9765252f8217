package scheme

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Checker adalah view kecil di atas repository untuk modul lain yang
// hanya perlu memastikan skema ada dan aktif.
type Checker struct {
	repo Repository
}

func NewChecker(repo Repository) *Checker {
	return &Checker{repo: repo}
}

func (c *Checker) Exists(ctx context.Context, schemeID string) (bool, error) {
	s, err := c.repo.FindByID(ctx, schemeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.IsActive, nil
}
