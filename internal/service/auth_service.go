package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

// AuthService coordina registro, login y lectura de perfil.
type AuthService struct {
	logger *zap.Logger
	users  repository.UserRepository
	hasher PasswordHasher
	tokens *TokenService

	// digest de relleno para igualar la latencia cuando el email no existe
	dummyDigest string
}

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

func NewAuthService(logger *zap.Logger, users repository.UserRepository, hasher PasswordHasher, tokens *TokenService) *AuthService {
	svc := &AuthService{
		logger: logger,
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
	if digest, err := hasher.Hash("fintrack-equalizer"); err == nil {
		svc.dummyDigest = digest
	}
	return svc
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	ProfileImage    string
}

// Register valida los campos, hashea la contraseña, persiste el usuario
// y devuelve un token para la nueva identidad.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	emailAddr := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	confirm := strings.TrimSpace(input.ConfirmPassword)

	if name == "" || emailAddr == "" || password == "" || confirm == "" {
		return "", fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if len(name) < 3 || len(name) > 30 {
		return "", fmt.Errorf("%w: name must be 3-30 characters", ErrValidation)
	}
	if len(emailAddr) < 8 || len(emailAddr) > 30 || !strings.Contains(emailAddr, "@") {
		return "", fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(password) < 5 || len(password) > 17 {
		return "", fmt.Errorf("%w: password must be 5-17 characters", ErrValidation)
	}
	if password != confirm {
		return "", fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        emailAddr,
		PasswordHash: digest,
		ProfileImage: strings.TrimSpace(input.ProfileImage),
		CreatedAt:    time.Now().UTC(),
	}

	// La unicidad del email la garantiza el índice único del store, no un
	// check previo: dos registros concurrentes nunca pasan ambos.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return s.tokens.Issue(user.ID)
}

// Login verifica credenciales y emite un token. Todos los fallos de
// credenciales devuelven el mismo ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (string, error) {
	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// compara contra un digest de relleno para no delatar por timing
			// qué parte de la credencial falló
			s.hasher.Verify(password, s.dummyDigest)
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if user.PasswordHash == "" || !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return s.tokens.Issue(user.ID)
}

// GetProfile devuelve el usuario sin exponer el hash (json:"-").
func (s *AuthService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
