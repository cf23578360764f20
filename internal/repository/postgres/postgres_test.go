package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantdoc/backend/internal/domain"
)

type failingCatalog struct {
	err      error
	profiles []domain.ConditionProfile
}

func (f failingCatalog) ConditionProfiles(context.Context) ([]domain.ConditionProfile, error) {
	return f.profiles, f.err
}

func (f failingCatalog) Source() string { return "failing" }

func (f failingCatalog) Health(context.Context) error { return f.err }

func TestStaticRepository_Order(t *testing.T) {
	profiles, err := NewStaticRepository().ConditionProfiles(context.Background())
	require.NoError(t, err)

	keys := make([]string, 0, len(profiles))
	for _, p := range profiles {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"leaf blight", "powdery mildew", "root rot", "rust", "blight"}, keys)

	assert.NotNil(t, profiles[0].Pathogen)
	assert.Equal(t, "Phytophthora infestans", profiles[0].Pathogen.Species)
	assert.Nil(t, profiles[3].Pathogen)
	assert.Nil(t, profiles[4].Pathogen)
}

func TestStaticRepository_ReturnsCopy(t *testing.T) {
	repo := NewStaticRepository()
	first, _ := repo.ConditionProfiles(context.Background())
	first[0].Key = "changed"

	second, _ := repo.ConditionProfiles(context.Background())
	assert.Equal(t, "leaf blight", second[0].Key)
}

func TestLoadProfiles(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	tests := []struct {
		name       string
		repo       domain.CatalogRepository
		wantSource string
		wantKeys   int
	}{
		{"nil repository", nil, "builtin", 5},
		{"query error", failingCatalog{err: errors.New("connection refused")}, "builtin", 5},
		{"empty table", failingCatalog{}, "builtin", 5},
		{
			"database rows",
			failingCatalog{profiles: []domain.ConditionProfile{{Key: "scab", Priority: 1}}},
			"failing",
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles, source := LoadProfiles(ctx, tt.repo, logger)
			assert.Equal(t, tt.wantSource, source.Source())
			assert.Len(t, profiles, tt.wantKeys)
		})
	}
}

// Runs against a real database when TEST_DATABASE_URL is set and the
// migration in migrations/ has been applied.
func TestCatalogRepository_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	repo := NewCatalogRepository(pool)
	require.NoError(t, repo.Health(ctx))

	profiles, err := repo.ConditionProfiles(ctx)
	require.NoError(t, err)

	builtin, _ := NewStaticRepository().ConditionProfiles(ctx)
	assert.Equal(t, builtin, profiles)
}
