package provider

import (
	"context"
	"fmt"
	"time"

	providerRepo "homely/database/repository/provider"
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

// DefaultProviderService is the production implementation of ProviderService.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	Hub      realtime.Publisher
	Events   events.Publisher
	Sessions SessionCache
}

// clearSessionCache drops the cached hash after the persisted one changed.
func (s *DefaultProviderService) clearSessionCache(id string) {
	if s.Sessions == nil {
		return
	}
	if err := s.Sessions.Invalidate(context.Background(), id); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.Error(err))
	}
}

// Register creates an unverified provider account and fires an OTP.
func (s *DefaultProviderService) Register(req RegistrationRequest) (*models.PublicProvider, error) {
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

	p := &models.Provider{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		ServiceIDs:   req.ServiceIDs,
		Verified:     false,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if err := utils.InitiateOTP(p.ID, p.PhoneNumber); err != nil {
		utils.GetLogger().Error("Register: failed to initiate OTP", zap.Error(err))
	}

	pub := p.Public()
	return &pub, nil
}

// Authenticate verifies credentials and issues a session token. Unverified accounts
// get a fresh OTP and an OTPPendingError instead of a token.
func (s *DefaultProviderService) Authenticate(email, password string) (*AuthResponse, error) {
	rec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch provider", zap.Error(err))
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
func (s *DefaultProviderService) VerifyOTP(email, otp string) (*AuthResponse, error) {
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

// ResendOTP sends a fresh code to an unverified provider.
func (s *DefaultProviderService) ResendOTP(email string) error {
	rec, err := s.Repo.GetByEmail(email)
	if err != nil || rec == nil {
		return ErrNotFound
	}
	if rec.Verified {
		return fmt.Errorf("account is already verified")
	}
	return utils.InitiateOTP(rec.ID, rec.PhoneNumber)
}

func (s *DefaultProviderService) issueToken(rec *models.Provider) (*AuthResponse, error) {
	token, err := utils.GenerateToken(rec.ID, rec.Email, models.RoleProvider, authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateSetDocument(rec.ID, bson.M{"token_hash": tokenHash}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	s.clearSessionCache(rec.ID)

	return &AuthResponse{Provider: rec.Public(), Token: token}, nil
}
