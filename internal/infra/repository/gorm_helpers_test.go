package repository

import (
	"testing"

	"storefront/internal/infra/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// テストごとに独立したインメモリSQLite
func newTestGormDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.ConnectSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gormDB))

	t.Cleanup(func() { _ = db.Close(gormDB) })
	return gormDB
}
