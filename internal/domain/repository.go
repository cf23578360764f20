package domain

import (
	"context"
)

// ConditionProfile is the care advice for diseases whose name contains Key.
// Profiles are matched in Priority order, first match wins.
type ConditionProfile struct {
	Key        string        `json:"key"`
	Priority   int           `json:"priority"`
	Symptoms   []string      `json:"symptoms"`
	Treatments []string      `json:"treatments"`
	Prevention []string      `json:"prevention"`
	Pathogen   *PathogenInfo `json:"pathogen,omitempty"`
}

// CatalogRepository defines the read-only disease reference data source
// This follows the Dependency Inversion Principle - domain defines the interface
type CatalogRepository interface {
	// ConditionProfiles returns every profile ordered by priority
	ConditionProfiles(ctx context.Context) ([]ConditionProfile, error)

	// Source names the backing store for health reporting
	Source() string

	// Health checks store connectivity
	Health(ctx context.Context) error
}
