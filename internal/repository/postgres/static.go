package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/domain"
)

// builtinProfiles mirrors the seed rows of disease_profiles. Order matters:
// "leaf blight" must be tried before the bare "blight".
var builtinProfiles = []domain.ConditionProfile{
	{
		Key:        "leaf blight",
		Priority:   1,
		Symptoms:   []string{"Brown spots on leaves", "Yellowing edges", "Wilting"},
		Treatments: []string{"Apply copper-based fungicide", "Remove infected leaves", "Improve air circulation"},
		Prevention: []string{"Avoid overhead watering", "Maintain proper spacing", "Use disease-resistant varieties"},
		Pathogen: &domain.PathogenInfo{
			Species:           "Phytophthora infestans",
			Strain:            "US-23",
			MatingType:        "A2",
			ResistanceProfile: "Metalaxyl-resistant",
		},
	},
	{
		Key:        "powdery mildew",
		Priority:   2,
		Symptoms:   []string{"White powdery spots", "Leaf distortion", "Stunted growth"},
		Treatments: []string{"Apply neem oil solution", "Remove affected leaves", "Increase air circulation"},
		Prevention: []string{"Plant in full sun", "Avoid overcrowding", "Water at soil level"},
		Pathogen: &domain.PathogenInfo{
			Species:           "Erysiphe cichoracearum",
			Strain:            "EC-2023",
			MatingType:        "A1",
			ResistanceProfile: "Sulfur-sensitive",
		},
	},
	{
		Key:        "root rot",
		Priority:   3,
		Symptoms:   []string{"Wilting despite watering", "Yellow leaves", "Soft roots"},
		Treatments: []string{"Improve drainage", "Remove affected roots", "Apply fungicide to soil"},
		Prevention: []string{"Use well-draining soil", "Avoid overwatering", "Plant in raised beds"},
		Pathogen: &domain.PathogenInfo{
			Species:           "Fusarium oxysporum",
			Strain:            "FO-2023",
			MatingType:        "A1",
			ResistanceProfile: "Benomyl-resistant",
		},
	},
	{
		Key:        "rust",
		Priority:   4,
		Symptoms:   []string{"Orange or brown spots", "Leaf drop", "Stunted growth"},
		Treatments: []string{"Apply fungicide", "Remove infected parts", "Improve spacing"},
		Prevention: []string{"Choose resistant varieties", "Proper spacing", "Good air circulation"},
	},
	{
		Key:        "blight",
		Priority:   5,
		Symptoms:   []string{"Dark lesions", "Rapid spread", "Plant death"},
		Treatments: []string{"Immediate fungicide application", "Remove infected plants", "Preventive measures"},
		Prevention: []string{"Crop rotation", "Resistant varieties", "Early detection"},
	},
}

// StaticRepository implements domain.CatalogRepository from the built-in table.
// Used when no database is configured or reachable.
type StaticRepository struct{}

// NewStaticRepository creates a new static catalog
func NewStaticRepository() *StaticRepository {
	return &StaticRepository{}
}

// ConditionProfiles returns a copy of the built-in profiles
func (r *StaticRepository) ConditionProfiles(ctx context.Context) ([]domain.ConditionProfile, error) {
	out := make([]domain.ConditionProfile, len(builtinProfiles))
	copy(out, builtinProfiles)
	return out, nil
}

// Source names the backing store
func (r *StaticRepository) Source() string {
	return "builtin"
}

// Health always returns nil for the static catalog
func (r *StaticRepository) Health(ctx context.Context) error {
	return nil
}

// LoadProfiles reads profiles from repo, falling back to the built-in table
// when the read fails or returns nothing. The returned repository is the one
// the profiles actually came from.
func LoadProfiles(ctx context.Context, repo domain.CatalogRepository, logger zerolog.Logger) ([]domain.ConditionProfile, domain.CatalogRepository) {
	static := NewStaticRepository()
	if repo == nil {
		profiles, _ := static.ConditionProfiles(ctx)
		return profiles, static
	}

	profiles, err := repo.ConditionProfiles(ctx)
	if err == nil && len(profiles) == 0 {
		err = fmt.Errorf("postgres: disease_profiles is empty")
	}
	if err != nil {
		logger.Warn().Err(err).Msg("catalog unavailable, using built-in disease profiles")
		profiles, _ = static.ConditionProfiles(ctx)
		return profiles, static
	}

	logger.Info().Int("profiles", len(profiles)).Str("source", repo.Source()).Msg("disease catalog loaded")
	return profiles, repo
}
