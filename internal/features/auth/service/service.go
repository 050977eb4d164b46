package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/logger"
	"slotbot-backend/internal/features/auth/models"
	"slotbot-backend/internal/features/auth/repository"
	usermodels "slotbot-backend/internal/features/user/models"
	userrepo "slotbot-backend/internal/features/user/repository"
)

// trialPeriod is the free access window granted on registration.
const trialPeriod = 7 * 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, input *models.RegisterRequest) (*usermodels.User, *models.Session, error)
	Login(ctx context.Context, input *models.LoginRequest) (*usermodels.User, *models.Session, error)
	Logout(ctx context.Context, token string) error
	// Resolve maps a bearer token to its user, nil when the session is
	// unknown or expired.
	Resolve(ctx context.Context, token string) (*usermodels.User, error)
}

type authService struct {
	sessions   repository.SessionRepository
	users      userrepo.UserRepository
	sessionTTL time.Duration
}

func NewAuthService(sessions repository.SessionRepository, users userrepo.UserRepository, sessionTTL time.Duration) AuthService {
	return &authService{
		sessions:   sessions,
		users:      users,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Register(ctx context.Context, input *models.RegisterRequest) (*usermodels.User, *models.Session, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, nil, apperrors.New(apperrors.ErrCodeConflict, "Email is already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperrors.NewDatabaseError("get user by email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to hash password")
	}

	now := time.Now()
	trialUntil := now.Add(trialPeriod)
	user := &usermodels.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Geo:          input.Geo,
		ReferralCode: input.Referral,
		TrialUntil:   &trialUntil,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, apperrors.NewDatabaseError("create user", err)
	}

	session, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered")
	return user, session, nil
}

func (s *authService) Login(ctx context.Context, input *models.LoginRequest) (*usermodels.User, *models.Session, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same response for unknown email and wrong password.
			return nil, nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, nil, apperrors.NewDatabaseError("get user by email", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	session, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) startSession(ctx context.Context, userID string) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "Failed to save session")
	}
	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "Failed to delete session")
	}
	return nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*usermodels.User, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "Failed to load session")
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// User deleted after the session was issued.
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return user, nil
}
