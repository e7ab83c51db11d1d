package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"

	"codecrew/middleware"
	"codecrew/models"
	"codecrew/services"
)

type TeamService interface {
	CreateTeam(ctx context.Context, caller *models.User, in services.TeamInput) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	AddMember(ctx context.Context, caller *models.User, in services.MemberInput) (*models.TeamMember, error)
	RemoveMember(ctx context.Context, caller *models.User, in services.MemberInput) error
	ListTeamProjects(ctx context.Context, teamID uint) ([]models.Project, error)
}

type TeamHandler struct {
	teams  TeamService
	logger *log.Logger
}

func NewTeamHandler(teams TeamService, logger *log.Logger) *TeamHandler {
	return &TeamHandler{
		teams:  teams,
		logger: logger,
	}
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.ListTeams(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"message": "Teams fetched successfully", "teams": newTeamViews(teams)})
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.TeamInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	team, err := h.teams.CreateTeam(r.Context(), middleware.GetUserFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"message": "Team created successfully", "team": newTeamView(team)})
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var in services.MemberInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	member, err := h.teams.AddMember(r.Context(), middleware.GetUserFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"message": "Member added successfully", "member": newMembershipView(member)})
}

func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	var in services.MemberInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.teams.RemoveMember(r.Context(), middleware.GetUserFromContext(r.Context()), in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Member removed successfully")
}

func (h *TeamHandler) Projects(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamId", "Team")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	projects, err := h.teams.ListTeamProjects(r.Context(), teamID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"message": "Team projects fetched successfully", "projects": newProjectViews(projects)})
}
