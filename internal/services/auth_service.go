package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipevault/engine/internal/models"
	"github.com/recipevault/engine/internal/repository"
	appErr "github.com/recipevault/engine/pkg/errors"
	"github.com/recipevault/engine/pkg/logger"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in *ProfileUpdate) (*models.User, error)
}

// ProfileUpdate carries optional profile changes; nil fields are untouched.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

type authService struct {
	users      repository.UserRepository
	hmacSecret []byte
}

func NewAuthService(users repository.UserRepository, secret []byte) AuthService {
	return &authService{users: users, hmacSecret: secret}
}

var _ AuthService = (*authService)(nil)

// NormalizeEmail lower-cases the address so EMAIL@MAIL.COM and
// email@mail.com resolve to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, appErr.Invalid("email is required")
	}

	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appErr.New(appErr.CodeAlreadyExists, "email already registered")
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	u := &models.User{
		Email:        email,
		PasswordHash: string(ph),
		Name:         name,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.L().Info("user registered", zap.String("user_id", u.ID.String()))
	return u, nil
}

func (s *authService) CreateSuperuser(ctx context.Context, email, password, name string) (*models.User, error) {
	u, err := s.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	u.IsStaff = true
	u.IsSuperuser = true
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	logger.L().Info("superuser created", zap.String("user_id", u.ID.String()))
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var u models.User
	if err := s.users.GetByEmail(ctx, NormalizeEmail(email), &u); err != nil {
		return "", nil, appErr.Invalid("unable to authenticate with provided credentials")
	}
	if !u.IsActive {
		return "", nil, appErr.Invalid("unable to authenticate with provided credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, appErr.Invalid("unable to authenticate with provided credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.ID.String(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return tokenString, &u, nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.users.GetByID(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *authService) UpdateProfile(ctx context.Context, id uuid.UUID, in *ProfileUpdate) (*models.User, error) {
	var u models.User
	if err := s.users.GetByID(ctx, id, &u); err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email == "" {
			return nil, appErr.Invalid("email is required")
		}
		if email != u.Email {
			taken, err := s.users.EmailTaken(ctx, email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, appErr.New(appErr.CodeAlreadyExists, "email already registered")
			}
			u.Email = email
		}
	}
	if in.Password != nil {
		ph, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
		}
		u.PasswordHash = string(ph)
	}

	if err := s.users.Update(ctx, &u); err != nil {
		return nil, err
	}
	logger.L().Info("profile updated", zap.String("user_id", id.String()))
	return &u, nil
}
