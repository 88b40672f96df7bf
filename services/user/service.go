package user

import (
	"context"
	"fmt"
	"time"

	userRepo "homely/database/repository/user"
	"homely/events"
	"homely/models"
	"homely/realtime"
	"homely/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 72 * time.Hour

// SessionCache drops an account's cached session hash. Revocation must bite
// immediately, not when the auth cache TTL runs out.
type SessionCache interface {
	Invalidate(ctx context.Context, accountID string) error
}

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Hub      realtime.Publisher
	Events   events.Publisher
	Sessions SessionCache
}

// clearSessionCache drops the cached hash after the persisted one changed.
func (s *DefaultUserService) clearSessionCache(id string) {
	if s.Sessions == nil {
		return
	}
	if err := s.Sessions.Invalidate(context.Background(), id); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.Error(err))
	}
}

// Register creates an unverified account and fires an OTP to its phone number.
func (s *DefaultUserService) Register(req RegistrationRequest) (*models.PublicUser, error) {
	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		Role:         models.RoleCustomer,
		Verified:     false,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if err := utils.InitiateOTP(u.ID, u.PhoneNumber); err != nil {
		utils.GetLogger().Error("Register: failed to initiate OTP", zap.Error(err))
	}

	pub := u.Public()
	return &pub, nil
}

// Authenticate verifies credentials and issues a session token. Unverified accounts
// get a fresh OTP and an OTPPendingError instead of a token.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	rec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if rec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !rec.Verified {
		if err := utils.InitiateOTP(rec.ID, rec.PhoneNumber); err != nil {
			utils.GetLogger().Error("Authenticate: failed to resend OTP", zap.Error(err))
		}
		return nil, OTPPendingError{Email: rec.Email}
	}

	return s.issueToken(rec)
}

// VerifyOTP checks the submitted code, marks the account verified and issues a token.
func (s *DefaultUserService) VerifyOTP(email, otp string) (*AuthResponse, error) {
	rec, err := s.Repo.GetByEmail(email)
	if err != nil || rec == nil {
		return nil, ErrNotFound
	}

	if err := utils.VerifyOTPRecord(rec.ID, otp); err != nil {
		return nil, err
	}

	if !rec.Verified {
		rec.Verified = true
		if err := s.Repo.UpdateSetDocument(rec.ID, bson.M{"verified": true}); err != nil {
			return nil, fmt.Errorf("failed to mark account verified: %w", err)
		}
	}

	return s.issueToken(rec)
}

// ResendOTP sends a fresh code to an unverified account.
func (s *DefaultUserService) ResendOTP(email string) error {
	rec, err := s.Repo.GetByEmail(email)
	if err != nil || rec == nil {
		return ErrNotFound
	}
	if rec.Verified {
		return fmt.Errorf("account is already verified")
	}
	return utils.InitiateOTP(rec.ID, rec.PhoneNumber)
}

// issueToken generates a JWT, persists its hash (invalidating any prior session) and
// builds the auth response.
func (s *DefaultUserService) issueToken(rec *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(rec.ID, rec.Email, rec.Role, authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateSetDocument(rec.ID, bson.M{"token_hash": tokenHash}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	s.clearSessionCache(rec.ID)

	return &AuthResponse{User: rec.Public(), Token: token}, nil
}
