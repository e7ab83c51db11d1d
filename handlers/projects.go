package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"codecrew/middleware"
	"codecrew/models"
	"codecrew/services"
	"codecrew/uploads"
)

type ProjectService interface {
	ListProjects(ctx context.Context, q services.ListQuery) (*services.Page, error)
	ListLatest(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	CreateProject(ctx context.Context, caller *models.User, in services.ProjectInput, thumbnail *uploads.File) (*models.Project, error)
	UpdateProject(ctx context.Context, caller *models.User, id uint, patch services.ProjectPatch, thumbnail *uploads.File) (*models.Project, error)
	DeleteProject(ctx context.Context, caller *models.User, id uint) error
}

type ProjectHandler struct {
	projects ProjectService
	logger   *log.Logger
}

func NewProjectHandler(projects ProjectService, logger *log.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		logger:   logger,
	}
}

// List serves GET /api/projects?category=&team=&page=&limit=.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := services.ListQuery{Category: strings.TrimSpace(r.URL.Query().Get("category"))}

	var err error
	if q.Page, err = queryInt(r, "page", 1); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if q.Limit, err = queryInt(r, "limit", services.DefaultPageSize); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	team, err := queryInt(r, "team", 0)
	if err != nil || team < 0 {
		writeError(w, r, h.logger, models.NewValidationError("team must be a positive integer"))
		return
	}
	if team > 0 {
		id := uint(team)
		q.TeamID = &id
	}

	page, err := h.projects.ListProjects(r.Context(), q)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"message":     "Projects fetched successfully",
		"projects":    newProjectViews(page.Projects),
		"total":       page.Total,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
	})
}

func (h *ProjectHandler) Latest(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListLatest(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"message": "Latest projects fetched successfully", "projects": newProjectViews(projects)})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "Project")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	project, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"message": "Project fetched successfully", "project": newProjectView(project, true)})
}

// Create accepts JSON, or multipart with an optional thumbnail.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		in        services.ProjectInput
		thumbnail *uploads.File
		err       error
	)
	if isMultipart(r) {
		thumbnail, err = parseMultipart(w, r, uploads.ProjectThumbnail)
		if err == nil {
			f := &form{r: r}
			in = services.ProjectInput{
				Name:        f.value("name"),
				Category:    f.value("category"),
				Description: f.value("description"),
				LiveURL:     f.value("liveUrl"),
				GithubURL:   f.value("githubUrl"),
				ProjectType: models.ProjectType(f.value("projectType")),
				TeamID:      f.id("teamId"),
			}
			if devs := f.list("developers"); devs != nil {
				in.Developers = *devs
			}
			err = f.err
		}
	} else {
		err = decodeJSON(w, r, &in)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	project, err := h.projects.CreateProject(r.Context(), middleware.GetUserFromContext(r.Context()), in, thumbnail)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"message": "Project created successfully", "project": newProjectView(project, false)})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "Project")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var (
		patch     services.ProjectPatch
		thumbnail *uploads.File
	)
	if isMultipart(r) {
		thumbnail, err = parseMultipart(w, r, uploads.ProjectThumbnail)
		if err == nil {
			f := &form{r: r}
			patch = services.ProjectPatch{
				Name:        f.str("name"),
				Category:    f.str("category"),
				Description: f.str("description"),
				LiveURL:     f.str("liveUrl"),
				GithubURL:   f.str("githubUrl"),
				Developers:  f.list("developers"),
				TeamID:      f.id("teamId"),
				IsVisible:   f.flag("isVisible"),
			}
			if pt := f.str("projectType"); pt != nil {
				t := models.ProjectType(*pt)
				patch.ProjectType = &t
			}
			err = f.err
		}
	} else {
		err = decodeJSON(w, r, &patch)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	project, err := h.projects.UpdateProject(r.Context(), middleware.GetUserFromContext(r.Context()), id, patch, thumbnail)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"message": "Project updated successfully", "project": newProjectView(project, true)})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "Project")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.projects.DeleteProject(r.Context(), middleware.GetUserFromContext(r.Context()), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Project deleted successfully")
}
