package importers_dto

import (
	importers_models "importhub/internal/features/importers/models"

	"gorm.io/datatypes"
)

type CreateImporterRequestDTO struct {
	Data     datatypes.JSON `json:"data"     binding:"required"`
	Config   datatypes.JSON `json:"config"`
	Metadata datatypes.JSON `json:"metadata"`
}

type ListImportersResponseDTO struct {
	Importers []*importers_models.ImportJob `json:"importers"`
}
