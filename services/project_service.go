package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	ImageDirectory      = "uploads"
	MaxUpdateImageBytes = 512 * 1024
)

// ProjectService owns the project lifecycle: create, update, trash, restore
// and permanent deletion, including the attached image blob.
type ProjectService struct {
	db      database.Database
	storage storage.Backend
	logger  zerolog.Logger
}

func NewProjectService(db database.Database, backend storage.Backend) *ProjectService {
	return &ProjectService{
		db:      db,
		storage: backend,
		logger:  log.With().Str("serviceName", "projectService").Logger(),
	}
}

// FormOptions lists everything a project form can reference.
type FormOptions struct {
	Types        []*models.Type       `json:"types"`
	Technologies []*models.Technology `json:"technologies"`
}

func projectSlug(id uint, title string) string {
	return slug.Make(fmt.Sprintf("%d %s", id, title))
}

// Create validates input, stores the image and inserts the project. The slug
// fix-up and the technology sync share the insert's transaction.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	input = input.trimmed()
	contentType, err := s.validate(ctx, input, 0, 0)
	if err != nil {
		return nil, err
	}

	var imageKey *string
	if input.Image != nil {
		key, err := s.storage.Put(ctx, ImageDirectory, input.Image.Data, contentType)
		if err != nil {
			return nil, errs.NewStorageError("store", "", err)
		}
		imageKey = &key
	}

	project := &models.Project{
		Title:   input.Title,
		Slug:    slug.Make(input.Title),
		URL:     input.URL,
		Content: input.Content,
		Image:   imageKey,
		TypeID:  input.TypeID,
	}

	err = s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.ProjectRepo().Add(ctx, project); err != nil {
			return errs.NewDatabaseError("create", "project", err)
		}

		project.Slug = projectSlug(project.ID, project.Title)
		if err := tx.ProjectRepo().UpdateSlug(ctx, project.ID, project.Slug); err != nil {
			return errs.NewDatabaseError("update slug of", "project", err)
		}

		if input.TechnologyIDs != nil {
			if _, err := tx.ProjectTechnologyRepo().Sync(ctx, project.ID, input.TechnologyIDs); err != nil {
				return errs.NewDatabaseError("sync technologies of", "project", err)
			}
		}
		return nil
	})
	if err != nil {
		s.discardBlob(ctx, imageKey)
		return nil, errs.NewTransactionFailedError("create project", err)
	}

	s.logger.Info().Uint("projectID", project.ID).Str("slug", project.Slug).Msg("project created")
	return s.reload(ctx, project.ID)
}

// Update rewrites an active project. A new image is stored before the row
// changes; the old blob is removed only once the update has committed, and a
// failed removal only logs.
func (s *ProjectService) Update(ctx context.Context, id uint, input ProjectInput) (*models.Project, error) {
	input = input.trimmed()
	project, err := s.db.Primary().ProjectRepo().FindActive(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}

	contentType, err := s.validate(ctx, input, project.ID, MaxUpdateImageBytes)
	if err != nil {
		return nil, err
	}

	columns := map[string]interface{}{
		"title":   input.Title,
		"slug":    projectSlug(project.ID, input.Title),
		"url":     input.URL,
		"content": input.Content,
		"type_id": input.TypeID,
	}

	var imageKey *string
	if input.Image != nil {
		key, err := s.storage.Put(ctx, ImageDirectory, input.Image.Data, contentType)
		if err != nil {
			return nil, errs.NewStorageError("store", "", err)
		}
		imageKey = &key
		columns["image"] = key
	}

	err = s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.ProjectRepo().Update(ctx, project.ID, columns); err != nil {
			return errs.NewDatabaseError("update", "project", err)
		}

		if input.TechnologyIDs != nil {
			if _, err := tx.ProjectTechnologyRepo().Sync(ctx, project.ID, input.TechnologyIDs); err != nil {
				return errs.NewDatabaseError("sync technologies of", "project", err)
			}
		}
		return nil
	})
	if err != nil {
		s.discardBlob(ctx, imageKey)
		return nil, errs.NewTransactionFailedError("update project", err)
	}

	if imageKey != nil && project.Image != nil {
		s.deleteBlob(ctx, *project.Image)
	}

	s.logger.Info().Uint("projectID", project.ID).Msg("project updated")
	return s.reload(ctx, project.ID)
}

// SoftDelete moves an active project to the trash. Its image and
// technologies are kept.
func (s *ProjectService) SoftDelete(ctx context.Context, id uint) error {
	err := s.db.ProjectRepo().SoftDelete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound("project")
	}
	if err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}

	s.logger.Info().Uint("projectID", id).Msg("project trashed")
	return nil
}

// Restore brings a trashed project, found by id or slug, back. It fails with
// a title field error when an active project has taken the title meanwhile.
func (s *ProjectService) Restore(ctx context.Context, ref string) (*models.Project, error) {
	project, err := s.findTrashed(ctx, ref)
	if err != nil {
		return nil, err
	}

	err = s.db.ProjectRepo().Restore(ctx, project.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		dbErr := errs.NewDatabaseError("restore", "project", err)
		if errs.IsUniqueConstraintViolationError(dbErr) {
			return nil, errs.NewValidationError(map[string][]string{"title": {messageTitleTaken}})
		}
		return nil, dbErr
	}

	s.logger.Info().Uint("projectID", project.ID).Msg("project restored")
	return s.reload(ctx, project.ID)
}

// Obliterate permanently removes a trashed project, found by id or slug,
// with its image and technology links.
func (s *ProjectService) Obliterate(ctx context.Context, ref string) error {
	project, err := s.findTrashed(ctx, ref)
	if err != nil {
		return err
	}

	if project.Image != nil {
		s.deleteBlob(ctx, *project.Image)
	}

	err = s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.ProjectTechnologyRepo().Detach(ctx, project.ID); err != nil {
			return errs.NewDatabaseError("detach technologies of", "project", err)
		}
		if err := tx.ProjectRepo().ForceDelete(ctx, project.ID); err != nil {
			return errs.NewDatabaseError("obliterate", "project", err)
		}
		return nil
	})
	if err != nil {
		return errs.NewTransactionFailedError("obliterate project", err)
	}

	s.logger.Info().Uint("projectID", project.ID).Msg("project obliterated")
	return nil
}

// List returns one page of active or trashed projects in id order. Pages
// below 1 are treated as 1; pages past the end come back empty.
func (s *ProjectService) List(ctx context.Context, trashed bool, page, pageSize int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = ActivePageSize
	}

	projects, total, err := s.db.ProjectRepo().Page(ctx, trashed, (page-1)*pageSize, pageSize)
	if err != nil {
		return Page{}, errs.NewDatabaseError("list", "projects", err)
	}

	return Page{
		Items:    projects,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		LastPage: lastPage(total, pageSize),
	}, nil
}

// Find resolves an active project by id or slug.
func (s *ProjectService) Find(ctx context.Context, ref string) (*models.Project, error) {
	project, err := s.db.ProjectRepo().FindActiveByRef(ctx, ref)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	return project, nil
}

func (s *ProjectService) FormOptions(ctx context.Context) (FormOptions, error) {
	types, err := s.db.TypeRepo().FindAll(ctx)
	if err != nil {
		return FormOptions{}, errs.NewDatabaseError("list", "types", err)
	}

	technologies, err := s.db.TechnologyRepo().FindAll(ctx)
	if err != nil {
		return FormOptions{}, errs.NewDatabaseError("list", "technologies", err)
	}

	return FormOptions{Types: types, Technologies: technologies}, nil
}

// validate checks input against the store. exceptID excludes the project
// being updated from the title check; maxImageBytes 0 means unlimited.
// It returns the sniffed image content type when an image is present.
func (s *ProjectService) validate(ctx context.Context, input ProjectInput, exceptID uint, maxImageBytes int) (string, error) {
	fields := errs.FieldErrors{}
	if err := collectFieldErrors(input, fields); err != nil {
		return "", err
	}

	primary := s.db.Primary()
	if !fields.Has("title") {
		taken, err := primary.ProjectRepo().TitleTaken(ctx, input.Title, exceptID)
		if err != nil {
			return "", errs.NewDatabaseError("check title of", "project", err)
		}
		if taken {
			fields.Add("title", messageTitleTaken)
		}
	}

	if !fields.Has("type_id") {
		exists, err := primary.TypeRepo().Exists(ctx, input.TypeID)
		if err != nil {
			return "", errs.NewDatabaseError("find", "type", err)
		}
		if !exists {
			fields.Add("type_id", messageTypeInvalid)
		}
	}

	if len(input.TechnologyIDs) > 0 {
		missing, err := primary.TechnologyRepo().MissingIDs(ctx, input.TechnologyIDs)
		if err != nil {
			return "", errs.NewDatabaseError("find", "technologies", err)
		}
		if len(missing) > 0 {
			fields.Add("technologies", messageTechnologiesBad)
		}
	}

	var contentType string
	if input.Image != nil {
		var message string
		contentType, message = inspectImage(input.Image, maxImageBytes)
		if message != "" {
			fields.Add("image", message)
		}
	}

	return contentType, fields.Err()
}

func (s *ProjectService) findTrashed(ctx context.Context, ref string) (*models.Project, error) {
	project, err := s.db.Primary().ProjectRepo().FindTrashed(ctx, ref)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	return project, nil
}

// reload reads a project back from the primary after a write.
func (s *ProjectService) reload(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.db.Primary().ProjectRepo().FindActive(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	return project, nil
}

// deleteBlob removes a blob and only logs on failure.
func (s *ProjectService) deleteBlob(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn().Err(errs.NewStorageError("delete", key, err)).Str("key", key).Msg("failed to delete image blob")
	}
}

func (s *ProjectService) discardBlob(ctx context.Context, key *string) {
	if key != nil {
		s.deleteBlob(ctx, *key)
	}
}
