package services

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"codecrew/models"
	"codecrew/repository"
	"codecrew/uploads"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfilePatch carries the profile fields a user may change. Nil fields are
// left untouched. Role is not patchable.
type ProfilePatch struct {
	Name     *string            `json:"name" validate:"omitempty,min=1,max=200"`
	Email    *string            `json:"email" validate:"omitempty,email,max=255"`
	Password *string            `json:"password" validate:"omitempty,min=6,max=72"`
	Bio      *string            `json:"bio" validate:"omitempty,max=2000"`
	Skills   *models.StringList `json:"skills"`
	Position *string            `json:"position" validate:"omitempty,max=200"`
}

// Session is what a successful register or login hands back.
type Session struct {
	Token string
	User  *models.User
}

// Identity registers users, verifies credentials and manages profiles.
type Identity struct {
	users  repository.UserRepository
	tokens TokenManager
	files  FileSaver
	cost   int
	logger *log.Logger
}

func NewIdentity(users repository.UserRepository, tokens TokenManager, files FileSaver, bcryptCost int, logger *log.Logger) *Identity {
	return &Identity{
		users:  users,
		tokens: tokens,
		files:  files,
		cost:   bcryptCost,
		logger: logger.WithPrefix("identity"),
	}
}

func (s *Identity) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, models.NewConflictError("User already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, models.NewInternalError("lookup user", err)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleMember,
	}
	user.ApplyDefaults()
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("User already exists")
		}
		return nil, models.NewInternalError("create user", err)
	}

	tok, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, models.NewInternalError("sign token", err)
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return &Session{Token: tok, User: user}, nil
}

// Authenticate checks an email and password pair. Unknown emails and wrong
// passwords produce the same error.
func (s *Identity) Authenticate(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewUnauthenticatedError("Invalid credentials", nil)
		}
		return nil, models.NewInternalError("lookup user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials", nil)
	}

	tok, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, models.NewInternalError("sign token", err)
	}
	return &Session{Token: tok, User: user}, nil
}

// ResolveCaller turns a bearer token into the user it was issued for. The
// user is reloaded so role changes apply to tokens already handed out.
func (s *Identity) ResolveCaller(ctx context.Context, tok string) (*models.User, error) {
	if tok == "" {
		return nil, models.NewUnauthenticatedError("No token, authorization denied", nil)
	}
	claims, err := s.tokens.Validate(tok)
	if err != nil {
		return nil, models.NewUnauthenticatedError("Token is not valid", err)
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewUnauthenticatedError("Token is not valid", err)
		}
		return nil, models.NewInternalError("load caller", err)
	}
	return user, nil
}

func (s *Identity) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, models.NewInternalError("load user", err)
	}
	return user, nil
}

// UpdateProfile applies patch to the caller's own record. A new photo, when
// given, replaces the stored profile photo.
func (s *Identity) UpdateProfile(ctx context.Context, caller *models.User, patch ProfilePatch, photo *uploads.File) (*models.User, error) {
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if err := validateInput(patch); err != nil {
		return nil, err
	}

	user, err := s.GetProfile(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil && *patch.Email != user.Email {
		_, err := s.users.GetByEmail(ctx, *patch.Email)
		switch {
		case err == nil:
			return nil, models.NewConflictError("Email is already in use")
		case !errors.Is(err, repository.ErrNotFound):
			return nil, models.NewInternalError("lookup user", err)
		}
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Skills != nil {
		user.Skills = *patch.Skills
	}
	if patch.Position != nil {
		user.Position = *patch.Position
	}
	if photo != nil {
		name, err := s.files.Save(photo)
		if err != nil {
			return nil, models.NewInternalError("store profile photo", err)
		}
		user.ProfilePhoto = name
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("Email is already in use")
		}
		return nil, models.NewInternalError("update user", err)
	}
	return user, nil
}

func (s *Identity) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, models.NewInternalError("list users", err)
	}
	return users, nil
}

// SetRole changes the role of the user registered under email. It backs the
// operator CLI; no HTTP route reaches it.
func (s *Identity) SetRole(ctx context.Context, email string, role models.Role) error {
	if !role.Valid() {
		return models.NewValidationError("role must be one of: %s %s", models.RoleTeamLeader, models.RoleMember)
	}
	if err := s.users.SetRole(ctx, normalizeEmail(email), role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.NewNotFoundError("User")
		}
		return models.NewInternalError("set role", err)
	}
	s.logger.Info("role changed", "email", normalizeEmail(email), "role", role)
	return nil
}

// EnsureLeader makes sure a team leader account exists for email, creating
// it or promoting the existing user.
func (s *Identity) EnsureLeader(ctx context.Context, name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.IsTeamLeader() {
			return user, nil
		}
		if err := s.SetRole(ctx, email, models.RoleTeamLeader); err != nil {
			return nil, err
		}
		user.Role = models.RoleTeamLeader
		return user, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, models.NewInternalError("lookup user", err)
	}

	in := RegisterInput{Name: name, Email: email, Password: password}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	user = &models.User{Name: name, Email: email, PasswordHash: hash, Role: models.RoleTeamLeader}
	user.ApplyDefaults()
	if err := s.users.Create(ctx, user); err != nil {
		return nil, models.NewInternalError("create leader", err)
	}
	s.logger.Info("team leader seeded", "user_id", user.ID, "email", email)
	return user, nil
}

func (s *Identity) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", models.NewInternalError("hash password", err)
	}
	return string(b), nil
}
