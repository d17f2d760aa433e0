package database

import (
	"context"

	"github.com/rpupo63/portfolio-admin-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db                    *gorm.DB
	projectRepo           *ProjectRepo
	projectTechnologyRepo *ProjectTechnologyRepo
	technologyRepo        *TechnologyRepo
	typeRepo              *TypeRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) (Database, error) {
	if err := db.SetupJoinTable(&models.Project{}, "Technologies", &models.ProjectTechnology{}); err != nil {
		return Database{}, err
	}
	return withDB(db), nil
}

func withDB(db *gorm.DB) Database {
	return Database{
		db:                    db,
		projectRepo:           NewProjectRepo(db),
		projectTechnologyRepo: NewProjectTechnologyRepo(db),
		technologyRepo:        NewTechnologyRepo(db),
		typeRepo:              NewTypeRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectTechnologyRepo() *ProjectTechnologyRepo {
	return d.projectTechnologyRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) TypeRepo() *TypeRepo {
	return d.typeRepo
}

// DB returns the underlying connection.
func (d Database) DB() *gorm.DB {
	return d.db
}

// Primary returns repositories pinned to the primary connection. Reads that
// must see the caller's own writes go through it when a replica is configured.
func (d Database) Primary() Database {
	return withDB(d.db.Clauses(dbresolver.Write))
}

// Transaction runs fn against repositories bound to a single transaction.
// Returning an error from fn rolls the transaction back.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withDB(tx))
	})
}

// Migrate creates or updates every table the models declare.
func (d Database) Migrate(ctx context.Context) error {
	return d.db.WithContext(ctx).AutoMigrate(models.All()...)
}

// Ping checks that the database answers a trivial query.
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}
