package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codecrew/models"
	"codecrew/repository"
)

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *projectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error)
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Team").
		Preload("Team.Leader").
		Preload("Team.Memberships.User").
		First(&project, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error)
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]models.Project, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.VisibleOnly {
			db = db.Where("is_visible = ?", true)
		}
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.TeamID != nil {
			db = db.Where("team_id = ?", *filter.TeamID)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	query := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Creator").
		Preload("Team").
		Order("created_at DESC").
		Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, translate(err)
	}
	return projects, total, nil
}
