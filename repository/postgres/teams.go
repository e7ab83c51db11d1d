package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codecrew/models"
	"codecrew/repository"
)

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *teamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(team).Error)
}

func (r *teamRepository) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, translate(err)
	}
	return &team, nil
}

func (r *teamRepository) GetWithMembers(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := r.withRoster(r.db.WithContext(ctx)).First(&team, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.withRoster(r.db.WithContext(ctx)).Order("id ASC").Find(&teams).Error; err != nil {
		return nil, translate(err)
	}
	return teams, nil
}

func (r *teamRepository) withRoster(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Leader").
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_members.id ASC")
		}).
		Preload("Memberships.User")
}

func (r *teamRepository) FindMember(ctx context.Context, teamID, userID uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (r *teamRepository) AddMember(ctx context.Context, member *models.TeamMember) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error)
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
