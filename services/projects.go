package services

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"codecrew/models"
	"codecrew/repository"
	"codecrew/uploads"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	LatestCount     = 6
)

// ListQuery selects one page of the public project listing.
type ListQuery struct {
	Category string
	TeamID   *uint
	Page     int
	Limit    int
}

type Page struct {
	Projects    []models.Project
	Total       int64
	TotalPages  int
	CurrentPage int
}

type ProjectInput struct {
	Name        string             `json:"name" validate:"required,max=200"`
	Category    string             `json:"category" validate:"required,max=100"`
	Description string             `json:"description" validate:"required"`
	LiveURL     string             `json:"liveUrl" validate:"omitempty,url"`
	GithubURL   string             `json:"githubUrl" validate:"omitempty,url"`
	Developers  models.StringList  `json:"developers"`
	ProjectType models.ProjectType `json:"projectType" validate:"omitempty,oneof=individual team"`
	TeamID      *uint              `json:"teamId"`
}

// ProjectPatch carries the fields of a project update. Nil fields are left
// untouched; an empty URL clears it.
type ProjectPatch struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string             `json:"category" validate:"omitempty,min=1,max=100"`
	Description *string             `json:"description" validate:"omitempty,min=1"`
	LiveURL     *string             `json:"liveUrl"`
	GithubURL   *string             `json:"githubUrl"`
	Developers  *models.StringList  `json:"developers"`
	ProjectType *models.ProjectType `json:"projectType" validate:"omitempty,oneof=individual team"`
	TeamID      *uint               `json:"teamId"`
	IsVisible   *bool               `json:"isVisible"`
}

// Projects publishes, lists and edits showcase projects.
type Projects struct {
	projects repository.ProjectRepository
	files    FileSaver
	logger   *log.Logger
}

func NewProjects(projects repository.ProjectRepository, files FileSaver, logger *log.Logger) *Projects {
	return &Projects{
		projects: projects,
		files:    files,
		logger:   logger.WithPrefix("projects"),
	}
}

// ListProjects returns one page of visible projects, newest first.
func (s *Projects) ListProjects(ctx context.Context, q ListQuery) (*Page, error) {
	if q.Page < 1 {
		return nil, models.NewValidationError("page must be a positive integer")
	}
	if q.Limit < 1 || q.Limit > MaxPageSize {
		return nil, models.NewValidationError("limit must be between 1 and %d", MaxPageSize)
	}

	projects, total, err := s.projects.List(ctx, repository.ProjectFilter{
		Category:    q.Category,
		TeamID:      q.TeamID,
		VisibleOnly: true,
		Limit:       q.Limit,
		Offset:      (q.Page - 1) * q.Limit,
	})
	if err != nil {
		return nil, models.NewInternalError("list projects", err)
	}

	return &Page{
		Projects:    projects,
		Total:       total,
		TotalPages:  int((total + int64(q.Limit) - 1) / int64(q.Limit)),
		CurrentPage: q.Page,
	}, nil
}

func (s *Projects) ListLatest(ctx context.Context) ([]models.Project, error) {
	projects, _, err := s.projects.List(ctx, repository.ProjectFilter{
		VisibleOnly: true,
		Limit:       LatestCount,
	})
	if err != nil {
		return nil, models.NewInternalError("list latest projects", err)
	}
	return projects, nil
}

// GetProject returns a project whether or not it is visible.
func (s *Projects) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewNotFoundError("Project")
		}
		return nil, models.NewInternalError("load project", err)
	}
	return project, nil
}

func (s *Projects) CreateProject(ctx context.Context, caller *models.User, in ProjectInput, thumbnail *uploads.File) (*models.Project, error) {
	if in.ProjectType == "" {
		in.ProjectType = models.ProjectIndividual
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if in.ProjectType == models.ProjectTeam {
		if !caller.IsTeamLeader() {
			return nil, models.NewForbiddenError("Only Team Leaders can create team projects")
		}
		if in.TeamID == nil || *in.TeamID == 0 {
			return nil, models.NewValidationError("teamId is required for team projects")
		}
	} else {
		in.TeamID = nil
	}

	project := &models.Project{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Thumbnail:   models.DefaultThumbnail,
		LiveURL:     in.LiveURL,
		GithubURL:   in.GithubURL,
		Developers:  in.Developers,
		ProjectType: in.ProjectType,
		TeamID:      in.TeamID,
		CreatedBy:   caller.ID,
		IsVisible:   true,
	}
	if project.Developers == nil {
		project.Developers = models.StringList{}
	}
	if thumbnail != nil {
		name, err := s.files.Save(thumbnail)
		if err != nil {
			return nil, models.NewInternalError("store thumbnail", err)
		}
		project.Thumbnail = name
	}

	if err := s.projects.Create(ctx, project); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, models.NewValidationError("Team does not exist")
		}
		return nil, models.NewInternalError("create project", err)
	}
	project.Creator = caller

	s.logger.Info("project created", "project_id", project.ID, "user_id", caller.ID, "type", project.ProjectType)
	return project, nil
}

// UpdateProject applies patch to a project the caller may modify and
// returns the reloaded project.
func (s *Projects) UpdateProject(ctx context.Context, caller *models.User, id uint, patch ProjectPatch, thumbnail *uploads.File) (*models.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanModify(project) {
		return nil, models.NewForbiddenError("Access denied")
	}

	if err := validateInput(patch); err != nil {
		return nil, err
	}
	if err := validateURL("liveUrl", patch.LiveURL); err != nil {
		return nil, err
	}
	if err := validateURL("githubUrl", patch.GithubURL); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Category != nil {
		project.Category = *patch.Category
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.LiveURL != nil {
		project.LiveURL = *patch.LiveURL
	}
	if patch.GithubURL != nil {
		project.GithubURL = *patch.GithubURL
	}
	if patch.Developers != nil {
		project.Developers = *patch.Developers
	}
	if patch.IsVisible != nil {
		project.IsVisible = *patch.IsVisible
	}
	if patch.TeamID != nil {
		project.TeamID = patch.TeamID
	}
	if patch.ProjectType != nil && *patch.ProjectType != project.ProjectType {
		if *patch.ProjectType == models.ProjectTeam && !caller.IsTeamLeader() {
			return nil, models.NewForbiddenError("Only Team Leaders can create team projects")
		}
		project.ProjectType = *patch.ProjectType
	}

	if project.IsTeamProject() {
		if project.TeamID == nil || *project.TeamID == 0 {
			return nil, models.NewValidationError("teamId is required for team projects")
		}
	} else {
		project.TeamID = nil
	}

	if thumbnail != nil {
		name, err := s.files.Save(thumbnail)
		if err != nil {
			return nil, models.NewInternalError("store thumbnail", err)
		}
		project.Thumbnail = name
	}

	// Drop the preloaded associations so the new team id is what gets saved.
	project.Team = nil
	project.Creator = nil
	if err := s.projects.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, models.NewValidationError("Team does not exist")
		}
		return nil, models.NewInternalError("update project", err)
	}

	s.logger.Info("project updated", "project_id", id, "user_id", caller.ID)
	return s.GetProject(ctx, id)
}

func (s *Projects) DeleteProject(ctx context.Context, caller *models.User, id uint) error {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanModify(project) {
		return models.NewForbiddenError("Access denied")
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.NewNotFoundError("Project")
		}
		return models.NewInternalError("delete project", err)
	}
	s.logger.Info("project deleted", "project_id", id, "user_id", caller.ID)
	return nil
}
