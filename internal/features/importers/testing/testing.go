package importers_testing

import (
	importers_enums "importhub/internal/features/importers/enums"
	importers_models "importhub/internal/features/importers/models"
	importers_repositories "importhub/internal/features/importers/repositories"
	"importhub/internal/util/rate_limit"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TestImporterOptions struct {
	WorkspaceID uuid.UUID
	ProjectID   uuid.UUID
	CreatedByID uuid.UUID
	Service     importers_enums.ImportService
	Data        string
	Config      string
	Metadata    string
}

// CreateTestImporter stores a pending import job without dispatching it.
func CreateTestImporter(options TestImporterOptions) *importers_models.ImportJob {
	job := &importers_models.ImportJob{
		WorkspaceID: options.WorkspaceID,
		ProjectID:   options.ProjectID,
		CreatedByID: &options.CreatedByID,
		Service:     options.Service,
		Status:      importers_enums.ImporterStatusPending,
		Data:        jsonOrEmpty(options.Data),
		Config:      jsonOrEmpty(options.Config),
		Metadata:    jsonOrEmpty(options.Metadata),
	}

	repository := &importers_repositories.ImporterRepository{}
	if err := repository.Create(job); err != nil {
		panic(err)
	}

	return job
}

func GetTestImporter(id uuid.UUID) *importers_models.ImportJob {
	repository := &importers_repositories.ImporterRepository{}

	job, err := repository.GetByID(id)
	if err != nil {
		panic(err)
	}

	return job
}

func jsonOrEmpty(value string) datatypes.JSON {
	if value == "" {
		return datatypes.JSON("{}")
	}

	return datatypes.JSON(value)
}

// FixedRateLimiter answers every check the same way without touching valkey.
type FixedRateLimiter struct {
	Allowed bool
}

func (l *FixedRateLimiter) CheckRateLimit(_ uuid.UUID, _, _ int) (*rate_limit.RateLimitResult, error) {
	result := &rate_limit.RateLimitResult{Allowed: l.Allowed}
	if !l.Allowed {
		result.RetryAfterSec = 1
	}

	return result, nil
}
