package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"dpm-integrator/internal/core/domain"
	ports "dpm-integrator/internal/core/ports/output"
)

type DataModelService struct {
	client ports.DPMToolClient
	logger log.FieldLogger
}

func NewDataModelService(client ports.DPMToolClient, logger log.FieldLogger) *DataModelService {
	return &DataModelService{client: client, logger: logger}
}

func (s *DataModelService) List(ctx context.Context) ([]domain.DataModelInfo, error) {
	return s.client.ListDataModels(ctx)
}

// SelectTargetVersion fetches the catalog and resolves name to the version
// that receives the import.
func (s *DataModelService) SelectTargetVersion(ctx context.Context, name string) (*domain.DataModelVersionInfo, error) {
	catalog, err := s.client.ListDataModels(ctx)
	if err != nil {
		return nil, err
	}

	selected, err := SelectVersion(catalog, name)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{
		"data_model":         name,
		"data_model_id":      selected.DataModelID,
		"data_model_version": selected.ID,
		"creation_date":      selected.CreationDate,
	}).Info("selected target data model version")
	return selected, nil
}
