package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/models"
	"github.com/holocron-api/repositories"
	"golang.org/x/crypto/bcrypt"
)

// CredentialService owns user identities and password hashes.
type CredentialService struct {
	users    *repositories.UserRepository
	cost     int
	validate *validator.Validate
	logger   *slog.Logger

	decoyOnce sync.Once
	decoy     []byte
}

// NewCredentialService creates a credential service hashing with the given bcrypt cost.
func NewCredentialService(users *repositories.UserRepository, cost int, logger *slog.Logger) *CredentialService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialService{
		users:    users,
		cost:     cost,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *CredentialService) hash(rawPassword string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), s.cost)
	if err != nil {
		return "", apperrors.Internal(err, "failed to hash password")
	}
	return string(hashed), nil
}

// decoyHash is compared against on unknown emails so that every login
// attempt pays the same bcrypt cost.
func (s *CredentialService) decoyHash() []byte {
	s.decoyOnce.Do(func() {
		hashed, err := bcrypt.GenerateFromPassword([]byte("holocron-decoy"), s.cost)
		if err != nil {
			s.logger.Error("failed to build decoy hash", "error", err)
			return
		}
		s.decoy = hashed
	})
	return s.decoy
}

// Register creates a new active user account
func (s *CredentialService) Register(ctx context.Context, email, rawPassword string) (*models.User, error) {
	if err := s.validate.Var(email, "required,email,max=120"); err != nil {
		return nil, apperrors.InvalidInput("Invalid email address")
	}
	if rawPassword == "" {
		return nil, apperrors.InvalidInput("Password is required")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Conflict("Email already registered")
	}
	if !repositories.IsNotFound(err) {
		return nil, apperrors.Internal(err, "failed to look up email")
	}

	hashed, err := s.hash(rawPassword)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		IsActive: true,
		Roles:    []models.Role{},
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, apperrors.Internal(err, "failed to create user")
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return &user, nil
}

// Verify checks credentials. Every failure looks the same to the caller;
// the reason only goes to the log.
func (s *CredentialService) Verify(ctx context.Context, email, rawPassword string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			_ = bcrypt.CompareHashAndPassword(s.decoyHash(), []byte(rawPassword))
			return nil, s.authFailure(email, "unknown email")
		}
		return nil, apperrors.Internal(err, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(rawPassword)); err != nil {
		return nil, s.authFailure(email, "password mismatch")
	}
	if !user.IsActive {
		return nil, s.authFailure(email, "inactive account")
	}
	return &user, nil
}

func (s *CredentialService) authFailure(email, reason string) error {
	s.logger.Warn("login rejected", "email", email, "reason", reason)
	return apperrors.AuthFailure(reason)
}

// SetPassword rehashes the user's password. Tokens issued earlier stay valid.
func (s *CredentialService) SetPassword(ctx context.Context, userID uint, rawPassword string) error {
	if rawPassword == "" {
		return apperrors.InvalidInput("Password is required")
	}
	hashed, err := s.hash(rawPassword)
	if err != nil {
		return err
	}
	n, err := s.users.UpdatePassword(ctx, userID, hashed)
	if err != nil {
		return apperrors.Internal(err, "failed to update password")
	}
	if n == 0 {
		return apperrors.NotFound("User not found")
	}
	return nil
}

// GetUser retrieves a user with roles by ID
func (s *CredentialService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err, "failed to load user")
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by exact email.
func (s *CredentialService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err, "failed to load user")
	}
	return &user, nil
}

// UserWithCount pairs a user with the number of favorites they own.
type UserWithCount struct {
	User           models.User
	FavoritesCount int64
}

// ListUsers returns every user with their favorites count.
func (s *CredentialService) ListUsers(ctx context.Context) ([]UserWithCount, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list users")
	}
	counts, err := s.users.CountFavorites(ctx)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to count favorites")
	}

	out := make([]UserWithCount, 0, len(users))
	for _, user := range users {
		out = append(out, UserWithCount{User: user, FavoritesCount: counts[user.ID]})
	}
	return out, nil
}

// AssignRole adds a role to the user's capability set, creating the role if needed.
func (s *CredentialService) AssignRole(ctx context.Context, userID uint, roleName string) (*models.User, error) {
	roleName = strings.ToLower(strings.TrimSpace(roleName))
	if roleName == "" {
		return nil, apperrors.InvalidInput("Role is required")
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.users.FindOrCreateRole(ctx, roleName)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load role")
	}
	if err := s.users.AddRole(ctx, user, role); err != nil {
		return nil, apperrors.Internal(err, "failed to assign role")
	}

	s.logger.Info("role assigned", "user_id", user.ID, "role", roleName)
	return s.GetUser(ctx, userID)
}

// SetActive enables or disables login for a user.
func (s *CredentialService) SetActive(ctx context.Context, userID uint, active bool) (*models.User, error) {
	n, err := s.users.UpdateActive(ctx, userID, active)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to update user")
	}
	if n == 0 {
		return nil, apperrors.NotFound("User not found")
	}
	return s.GetUser(ctx, userID)
}

// DeleteUser removes a user together with their favorites.
func (s *CredentialService) DeleteUser(ctx context.Context, userID uint) error {
	n, err := s.users.Delete(ctx, userID)
	if err != nil {
		return apperrors.Internal(err, "failed to delete user")
	}
	if n == 0 {
		return apperrors.NotFound("User not found")
	}
	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
