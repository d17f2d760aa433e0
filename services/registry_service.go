package services

import (
	"context"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

// RegistryService manages the technology and type lookup tables.
type RegistryService struct {
	db database.Database
}

func NewRegistryService(db database.Database) *RegistryService {
	return &RegistryService{db: db}
}

func validateName(input NameInput) error {
	fields := errs.FieldErrors{}
	if err := collectFieldErrors(input, fields); err != nil {
		return err
	}
	return fields.Err()
}

func (s *RegistryService) ListTechnologies(ctx context.Context) ([]*models.Technology, error) {
	technologies, err := s.db.TechnologyRepo().FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "technologies", err)
	}
	return technologies, nil
}

func (s *RegistryService) CreateTechnology(ctx context.Context, input NameInput) (*models.Technology, error) {
	input = input.trimmed()
	if err := validateName(input); err != nil {
		return nil, err
	}

	technology := &models.Technology{Name: input.Name}
	if err := s.db.TechnologyRepo().Add(ctx, technology); err != nil {
		return nil, errs.NewDatabaseError("create", "technology", err)
	}
	return technology, nil
}

func (s *RegistryService) ListTypes(ctx context.Context) ([]*models.Type, error) {
	types, err := s.db.TypeRepo().FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "types", err)
	}
	return types, nil
}

func (s *RegistryService) CreateType(ctx context.Context, input NameInput) (*models.Type, error) {
	input = input.trimmed()
	if err := validateName(input); err != nil {
		return nil, err
	}

	projectType := &models.Type{Name: input.Name}
	if err := s.db.TypeRepo().Add(ctx, projectType); err != nil {
		return nil, errs.NewDatabaseError("create", "type", err)
	}
	return projectType, nil
}
