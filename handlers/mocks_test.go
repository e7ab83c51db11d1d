package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"codecrew/models"
	"codecrew/services"
	"codecrew/uploads"
)

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(ctx context.Context, in services.RegisterInput) (*services.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockIdentityService) Authenticate(ctx context.Context, in services.LoginInput) (*services.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockIdentityService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityService) UpdateProfile(ctx context.Context, caller *models.User, patch services.ProfilePatch, photo *uploads.File) (*models.User, error) {
	args := m.Called(ctx, caller, patch, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) CreateTeam(ctx context.Context, caller *models.User, in services.TeamInput) (*models.Team, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamService) AddMember(ctx context.Context, caller *models.User, in services.MemberInput) (*models.TeamMember, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockTeamService) RemoveMember(ctx context.Context, caller *models.User, in services.MemberInput) error {
	args := m.Called(ctx, caller, in)
	return args.Error(0)
}

func (m *MockTeamService) ListTeamProjects(ctx context.Context, teamID uint) ([]models.Project, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) ListProjects(ctx context.Context, q services.ListQuery) (*services.Page, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Page), args.Error(1)
}

func (m *MockProjectService) ListLatest(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) CreateProject(ctx context.Context, caller *models.User, in services.ProjectInput, thumbnail *uploads.File) (*models.Project, error) {
	args := m.Called(ctx, caller, in, thumbnail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, caller *models.User, id uint, patch services.ProjectPatch, thumbnail *uploads.File) (*models.Project, error) {
	args := m.Called(ctx, caller, id, patch, thumbnail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, caller *models.User, id uint) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

// tokenResolver maps fixed bearer tokens to users.
type tokenResolver map[string]*models.User

func (t tokenResolver) ResolveCaller(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.NewUnauthenticatedError("No token, authorization denied", nil)
	}
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, models.NewUnauthenticatedError("Token is not valid", nil)
}
