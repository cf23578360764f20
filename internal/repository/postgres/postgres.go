package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plantdoc/backend/internal/domain"
)

// CatalogRepository implements domain.CatalogRepository over the
// disease_profiles table
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new PostgreSQL catalog repository
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ConditionProfiles reads every profile ordered by priority
func (r *CatalogRepository) ConditionProfiles(ctx context.Context) ([]domain.ConditionProfile, error) {
	query := `
		SELECT match_key, priority, symptoms, treatments, prevention,
			   pathogen_species, pathogen_strain, pathogen_mating_type, pathogen_resistance
		FROM disease_profiles
		ORDER BY priority
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query disease profiles: %w", err)
	}
	defer rows.Close()

	var results []domain.ConditionProfile
	for rows.Next() {
		var (
			p                                   domain.ConditionProfile
			species, strain, mating, resistance *string
		)
		err := rows.Scan(
			&p.Key, &p.Priority, &p.Symptoms, &p.Treatments, &p.Prevention,
			&species, &strain, &mating, &resistance,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan disease profile row: %w", err)
		}
		if species != nil {
			p.Pathogen = &domain.PathogenInfo{
				Species:           *species,
				Strain:            deref(strain),
				MatingType:        deref(mating),
				ResistanceProfile: deref(resistance),
			}
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read disease profiles: %w", err)
	}

	return results, nil
}

// Source names the backing store
func (r *CatalogRepository) Source() string {
	return "postgres"
}

// Health checks database connectivity
func (r *CatalogRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "Unknown"
	}
	return *s
}
