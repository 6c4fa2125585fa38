package repository

import (
	"strings"

	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

// IDはUUID文字列のみ受け付ける
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repo.ErrInvalidID
	}
	return nil
}

// LIKE用に % と _ をエスケープ
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
