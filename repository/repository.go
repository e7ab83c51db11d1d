package repository

import (
	"context"
	"errors"

	"codecrew/models"
)

var (
	// ErrNotFound indicates an entity was not located.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a unique constraint rejected the write.
	ErrDuplicate = errors.New("repository: duplicate key")
	// ErrForeignKey indicates the write referenced a row that does not exist.
	ErrForeignKey = errors.New("repository: foreign key violation")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, email string, role models.Role) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uint) (*models.Team, error)
	// GetWithMembers loads the leader and every membership with its user.
	GetWithMembers(ctx context.Context, id uint) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	FindMember(ctx context.Context, teamID, userID uint) (*models.TeamMember, error)
	AddMember(ctx context.Context, member *models.TeamMember) error
	// RemoveMember reports ErrNotFound when no membership matched.
	RemoveMember(ctx context.Context, teamID, userID uint) error
}

// ProjectFilter narrows a project listing. Zero values mean "any".
type ProjectFilter struct {
	Category    string
	TeamID      *uint
	VisibleOnly bool
	Limit       int
	Offset      int
}

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	// GetByID loads the creator, the team and the team roster.
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	// List returns one page of projects newest first and the total match count.
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error)
}
