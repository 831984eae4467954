package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/repo"
	"github.com/SilasJCSP/delivery-tech-fat/internal/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService issues opaque uuid bearer tokens, stored server-side with a
// TTL. Passwords are bcrypt hashes, never stored or logged in the clear.
type AuthService struct {
	users      repo.UserRepository
	sessions   repo.SessionRepository
	sessionTTL time.Duration
	logger     *zap.SugaredLogger
}

func NewAuthService(
	users repo.UserRepository,
	sessions repo.SessionRepository,
	sessionTTL time.Duration,
	logger *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "O nome é obrigatório")
	}

	email := normalizeEmail(input.Email)
	if err := validate.CustomerEmail(email); err != nil {
		return nil, err
	}

	if len(input.Password) < 6 {
		return nil, domain.NewValidationError("password", "A senha deve ter pelo menos 6 caracteres")
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	switch role {
	case domain.RoleAdmin, domain.RoleCustomer, domain.RoleRestaurant, domain.RoleCourier:
	default:
		return nil, domain.NewValidationError("role", "Perfil inválido")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}

	// duplicate email surfaces from the unique index as a ValidationError
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("user registered", "user_id", user.ID.Hex(), "role", user.Role)

	return user, nil
}

// Login verifies the credentials and issues a session. Invalid email and
// invalid password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error) {
	errInvalid := domain.NewValidationError("credentials", "Email ou senha inválidos")

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, nil, errInvalid
		}
		return nil, nil, err
	}

	if !user.Active {
		return nil, nil, domain.NewValidationError("credentials", "Usuário inativo")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, errInvalid
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	s.logger.Infow("user logged in", "user_id", user.ID.Hex())

	return session, user, nil
}

// Authenticate resolves a bearer token to its user. Expired or unknown
// tokens come back as ErrNotFound.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		// the TTL index removes it eventually; delete eagerly anyway
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrNotFound
	}

	return s.users.GetByID(ctx, session.UserID)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
