package service

import (
	"context"
	"errors"
	"strings"

	authdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/auth/domain"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/auth/password"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxPasswordLength matches the historical bcrypt input limit the
// dashboard enforced; kept so oversized submissions fail loudly instead
// of silently truncating.
const maxPasswordLength = 72

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewService(p ServiceParam) authdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("auth.service"),
	}
}

func (s *Service) Login(ctx context.Context, identifier, plain string) (*authdomain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plain == "" {
		return nil, authdomain.ErrInvalidCredentials
	}
	if len(plain) > maxPasswordLength {
		return nil, authdomain.ErrPasswordTooLong
	}

	var user authdomain.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authdomain.ErrInvalidCredentials
		}
		s.log.Error("credential lookup failed", zap.Error(err))
		return nil, authdomain.ErrStoreUnavailable
	}

	if !password.Verify(plain, user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}
	return &user, nil
}
