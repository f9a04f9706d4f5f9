package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/holocron-api/database"
	"github.com/holocron-api/repositories"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	credentials *CredentialService
	catalog     *CatalogService
	favorites   *FavoriteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn := database.OpenTestDB(t)
	_, err := database.SeedCatalog(context.Background(), conn.DB)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		db:          conn.DB,
		credentials: NewCredentialService(repositories.NewUserRepository(conn.DB), bcrypt.MinCost, logger),
		catalog:     NewCatalogService(repositories.NewCatalogRepository(conn.DB)),
		favorites:   NewFavoriteService(repositories.NewFavoriteRepository(conn.DB), logger),
	}
}
