package importers_models

import (
	"encoding/json"
	"fmt"
	"time"

	importers_enums "importhub/internal/features/importers/enums"
	integrations_dto "importhub/internal/features/integrations/dto"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ImportJob struct {
	ID          uuid.UUID                      `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	WorkspaceID uuid.UUID                      `json:"workspaceId" gorm:"column:workspace_id;type:uuid;index"`
	ProjectID   uuid.UUID                      `json:"projectId"   gorm:"column:project_id;type:uuid"`
	CreatedByID *uuid.UUID                     `json:"createdById" gorm:"column:created_by_id;type:uuid"`
	Service     importers_enums.ImportService  `json:"service"     gorm:"column:service;not null"`
	Status      importers_enums.ImporterStatus `json:"status"      gorm:"column:status;not null"`
	Data        datatypes.JSON                 `json:"data"        gorm:"column:data"`
	Config      datatypes.JSON                 `json:"config"      gorm:"column:config"`
	Metadata    datatypes.JSON                 `json:"metadata"    gorm:"column:metadata"`
	CreatedAt   time.Time                      `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                      `json:"updatedAt"   gorm:"column:updated_at"`
}

func (ImportJob) TableName() string {
	return "importers"
}

type ImportUser struct {
	Email  string                     `json:"email"`
	Import importers_enums.ImportMode `json:"import"`
}

type ImportData struct {
	Users       []ImportUser    `json:"users"`
	Credentials json.RawMessage `json:"credentials"`
}

type ImportConfig struct {
	Sync bool `json:"sync"`
}

func (j *ImportJob) GetData() (*ImportData, error) {
	data := &ImportData{}
	if err := decodeJSONColumn(j.Data, data); err != nil {
		return nil, fmt.Errorf("invalid importer data: %w", err)
	}

	return data, nil
}

func (j *ImportJob) GetConfig() (*ImportConfig, error) {
	config := &ImportConfig{}
	if err := decodeJSONColumn(j.Config, config); err != nil {
		return nil, fmt.Errorf("invalid importer config: %w", err)
	}

	return config, nil
}

// GetMetadata decodes the repository a github import was taken from.
func (j *ImportJob) GetMetadata() (*integrations_dto.GithubRepositoryDTO, error) {
	metadata := &integrations_dto.GithubRepositoryDTO{}
	if err := decodeJSONColumn(j.Metadata, metadata); err != nil {
		return nil, fmt.Errorf("invalid importer metadata: %w", err)
	}

	return metadata, nil
}

func decodeJSONColumn(column datatypes.JSON, target any) error {
	if len(column) == 0 || string(column) == "null" {
		return nil
	}

	return json.Unmarshal(column, target)
}
