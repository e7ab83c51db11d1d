package services

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"codecrew/models"
	"codecrew/repository"
)

type TeamInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// MemberInput names a user to add to or remove from a team.
type MemberInput struct {
	TeamID uint   `json:"teamId" validate:"required"`
	UserID uint   `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"max=100"`
}

// Teams manages teams and their membership. Only the leader of a team may
// change who belongs to it.
type Teams struct {
	teams    repository.TeamRepository
	projects repository.ProjectRepository
	logger   *log.Logger
}

func NewTeams(teams repository.TeamRepository, projects repository.ProjectRepository, logger *log.Logger) *Teams {
	return &Teams{
		teams:    teams,
		projects: projects,
		logger:   logger.WithPrefix("teams"),
	}
}

// CreateTeam creates a team led by caller.
func (s *Teams) CreateTeam(ctx context.Context, caller *models.User, in TeamInput) (*models.Team, error) {
	if !caller.IsTeamLeader() {
		return nil, models.NewForbiddenError("Only Team Leaders can create teams")
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   caller.ID,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, models.NewInternalError("create team", err)
	}
	team.Leader = caller
	team.Memberships = []models.TeamMember{}

	s.logger.Info("team created", "team_id", team.ID, "leader_id", caller.ID)
	return team, nil
}

func (s *Teams) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, models.NewInternalError("list teams", err)
	}
	return teams, nil
}

// AddMember adds a user to a team led by caller and returns the new
// membership with the user attached.
func (s *Teams) AddMember(ctx context.Context, caller *models.User, in MemberInput) (*models.TeamMember, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.ledTeam(ctx, caller, in.TeamID, "Only team leader can add members"); err != nil {
		return nil, err
	}

	_, err := s.teams.FindMember(ctx, in.TeamID, in.UserID)
	switch {
	case err == nil:
		return nil, models.NewConflictError("User is already a team member")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, models.NewInternalError("lookup membership", err)
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = models.DefaultMemberRole
	}
	member := &models.TeamMember{TeamID: in.TeamID, UserID: in.UserID, Role: role}
	if err := s.teams.AddMember(ctx, member); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, models.NewConflictError("User is already a team member")
		case errors.Is(err, repository.ErrForeignKey):
			return nil, models.NewNotFoundError("User")
		}
		return nil, models.NewInternalError("add member", err)
	}

	added, err := s.teams.FindMember(ctx, in.TeamID, in.UserID)
	if err != nil {
		return nil, models.NewInternalError("reload membership", err)
	}
	s.logger.Info("member added", "team_id", in.TeamID, "user_id", in.UserID)
	return added, nil
}

func (s *Teams) RemoveMember(ctx context.Context, caller *models.User, in MemberInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	if _, err := s.ledTeam(ctx, caller, in.TeamID, "Only team leader can remove members"); err != nil {
		return err
	}

	if err := s.teams.RemoveMember(ctx, in.TeamID, in.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.NewNotFoundError("Team member")
		}
		return models.NewInternalError("remove member", err)
	}
	s.logger.Info("member removed", "team_id", in.TeamID, "user_id", in.UserID)
	return nil
}

// ListTeamProjects returns every project of the team, newest first. An
// unknown team yields an empty list.
func (s *Teams) ListTeamProjects(ctx context.Context, teamID uint) ([]models.Project, error) {
	projects, _, err := s.projects.List(ctx, repository.ProjectFilter{TeamID: &teamID})
	if err != nil {
		return nil, models.NewInternalError("list team projects", err)
	}
	return projects, nil
}

// ledTeam loads the team and checks that caller is its leader.
func (s *Teams) ledTeam(ctx context.Context, caller *models.User, teamID uint, denied string) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewNotFoundError("Team")
		}
		return nil, models.NewInternalError("load team", err)
	}
	if !caller.Leads(team) {
		return nil, models.NewForbiddenError(denied)
	}
	return team, nil
}
