package handlers

import (
	"time"

	"codecrew/models"
)

// Response shapes. Users embedded in teams and projects are reduced to a
// summary; full profiles are only returned by the user endpoints.

type userSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProfilePhoto string `json:"profilePhoto"`
}

func newUserSummary(u *models.User) *userSummary {
	if u == nil {
		return nil
	}
	return &userSummary{ID: u.ID, Name: u.Name, ProfilePhoto: u.ProfilePhoto}
}

type memberView struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	ProfilePhoto string            `json:"profilePhoto"`
	Position     string            `json:"position"`
	Skills       models.StringList `json:"skills"`
	Role         string            `json:"role"`
}

func newMemberViews(memberships []models.TeamMember) []memberView {
	views := make([]memberView, 0, len(memberships))
	for _, m := range memberships {
		if m.User == nil {
			continue
		}
		views = append(views, memberView{
			ID:           m.User.ID,
			Name:         m.User.Name,
			ProfilePhoto: m.User.ProfilePhoto,
			Position:     m.User.Position,
			Skills:       m.User.Skills,
			Role:         m.Role,
		})
	}
	return views
}

type teamView struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedBy   uint         `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	TeamLeader  *userSummary `json:"teamLeader"`
	Members     []memberView `json:"members"`
}

func newTeamView(t *models.Team) teamView {
	return teamView{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		TeamLeader:  newUserSummary(t.Leader),
		Members:     newMemberViews(t.Memberships),
	}
}

func newTeamViews(teams []models.Team) []teamView {
	views := make([]teamView, 0, len(teams))
	for i := range teams {
		views = append(views, newTeamView(&teams[i]))
	}
	return views
}

// projectTeam is the team attached to a project. Leader and members are
// only filled on the detail endpoint.
type projectTeam struct {
	ID         uint         `json:"id"`
	Name       string       `json:"name"`
	TeamLeader *userSummary `json:"teamLeader,omitempty"`
	Members    []memberView `json:"members,omitempty"`
}

type projectView struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Thumbnail   string             `json:"thumbnail"`
	Description string             `json:"description"`
	LiveURL     string             `json:"liveUrl"`
	GithubURL   string             `json:"githubUrl"`
	Developers  models.StringList  `json:"developers"`
	ProjectType models.ProjectType `json:"projectType"`
	TeamID      *uint              `json:"teamId"`
	CreatedBy   uint               `json:"createdBy"`
	IsVisible   bool               `json:"isVisible"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Creator     *userSummary       `json:"creator,omitempty"`
	Team        *projectTeam       `json:"team,omitempty"`
}

func newProjectView(p *models.Project, withRoster bool) projectView {
	view := projectView{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Thumbnail:   p.Thumbnail,
		Description: p.Description,
		LiveURL:     p.LiveURL,
		GithubURL:   p.GithubURL,
		Developers:  p.Developers,
		ProjectType: p.ProjectType,
		TeamID:      p.TeamID,
		CreatedBy:   p.CreatedBy,
		IsVisible:   p.IsVisible,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Creator:     newUserSummary(p.Creator),
	}
	if p.Team != nil {
		view.Team = &projectTeam{ID: p.Team.ID, Name: p.Team.Name}
		if withRoster {
			view.Team.TeamLeader = newUserSummary(p.Team.Leader)
			view.Team.Members = newMemberViews(p.Team.Memberships)
		}
	}
	return view
}

func newProjectViews(projects []models.Project) []projectView {
	views := make([]projectView, 0, len(projects))
	for i := range projects {
		views = append(views, newProjectView(&projects[i], false))
	}
	return views
}

type membershipView struct {
	ID        uint         `json:"id"`
	TeamID    uint         `json:"teamId"`
	UserID    uint         `json:"userId"`
	Role      string       `json:"role"`
	CreatedAt time.Time    `json:"createdAt"`
	User      *models.User `json:"user,omitempty"`
}

func newMembershipView(m *models.TeamMember) membershipView {
	return membershipView{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		User:      m.User,
	}
}
