package user

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"casillero-backend/internal/config"
	domainUser "casillero-backend/internal/domain/user"
	"casillero-backend/internal/logger"
	"casillero-backend/internal/notification"
	appErrors "casillero-backend/pkg/errors"
	"casillero-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements user use cases
type Service struct {
	userRepo   domainUser.Repository
	dispatcher notification.Dispatcher
	config     *config.Config
}

// NewService creates a new user service
func NewService(
	userRepo domainUser.Repository,
	dispatcher notification.Dispatcher,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:   userRepo,
		dispatcher: dispatcher,
		config:     cfg,
	}
}

// Register creates the account, opens its casillero and fires the admin and
// welcome mails. A failed mail is reported in the warning string; the account
// is never rolled back for it.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, "", appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, "", appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	// Uniqueness pre-checks, surfaced before the store sees the insert
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, "", domainUser.ErrDuplicateEmail
	}

	existing, err = s.userRepo.GetByPhoneNumber(ctx, req.PhoneNumber)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing phone number: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempt with existing phone number",
			zap.String("phone_number", req.PhoneNumber),
			zap.String("event", "registration_failed_duplicate_phone"),
		)
		return nil, "", domainUser.ErrDuplicatePhoneNumber
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domainUser.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		PasswordHashed: hashedPassword,
		IsAdmin:        false,
		CasilleroCode:  generateCasilleroCode(req.FirstName, req.LastName),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
		zap.String("casillero_code", u.CasilleroCode),
		zap.String("event", "user_registered"),
	)

	var warnings []string

	if ops := s.config.Brevo.OpsMailbox; ops != "" {
		delivered, diagnostic := s.dispatcher.Send(ctx,
			notification.NewUserAdminSubject(),
			ops,
			notification.NewUserAdminBody(u.FirstName, u.LastName, u.Email),
			false,
		)
		if !delivered {
			logger.Warn("Failed to notify admin of registration",
				zap.String("user_id", u.ID.String()),
				zap.String("diagnostic", diagnostic),
			)
			warnings = append(warnings, "user created, but the admin notification failed")
		}
	}

	delivered, diagnostic := s.dispatcher.Send(ctx,
		notification.WelcomeSubject(),
		u.Email,
		notification.WelcomeBody(u.FirstName, u.LastName, u.CasilleroCode),
		false,
	)
	if !delivered {
		logger.Warn("Failed to send welcome mail",
			zap.String("user_id", u.ID.String()),
			zap.String("diagnostic", diagnostic),
		)
		warnings = append(warnings, "user created, but the welcome mail failed")
	}

	tokenPair, err := utils.GenerateTokenPair(
		u.ID,
		u.Email,
		u.Role(),
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		s.config.JWT.RefreshExpiryHours,
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &AuthResponse{
		User:         ToUserResponse(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, strings.Join(warnings, "; "), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(u.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", u.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	tokenPair, err := utils.GenerateTokenPair(
		u.ID,
		u.Email,
		u.Role(),
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		s.config.JWT.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role()),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		User:         ToUserResponse(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	claims, err := utils.ValidateToken(req.RefreshToken, s.config.JWT.Secret)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	tokenPair, err := utils.GenerateTokenPair(
		u.ID,
		u.Email,
		u.Role(),
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		s.config.JWT.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &AuthResponse{
		User:         ToUserResponse(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != u.Email {
		existing, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check existing email: %w", err)
		}
		if existing != nil {
			return nil, domainUser.ErrDuplicateEmail
		}
	}
	if req.PhoneNumber != u.PhoneNumber {
		existing, err := s.userRepo.GetByPhoneNumber(ctx, req.PhoneNumber)
		if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check existing phone number: %w", err)
		}
		if existing != nil {
			return nil, domainUser.ErrDuplicatePhoneNumber
		}
	}

	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Email = req.Email
	u.PhoneNumber = req.PhoneNumber

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("user_id", u.ID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToUserResponse(u), nil
}

func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	return s.GetProfile(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponseList(users), nil
}

func (s *Service) UpdateUser(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	return s.UpdateProfile(ctx, userID, req)
}

// DeleteUser removes the account together with its parcels and addresses.
func (s *Service) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Info("User deleted",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_deleted"),
	)

	return nil
}

// generateCasilleroCode builds the mailbox code stamped on inbound boxes:
// country prefix, a slice of the customer's name, four digits.
func generateCasilleroCode(firstName, lastName string) string {
	letters := func(s string, n int) string {
		cleaned := strings.ToUpper(strings.TrimSpace(s))
		runes := make([]rune, 0, n)
		for _, r := range cleaned {
			if r >= 'A' && r <= 'Z' {
				runes = append(runes, r)
			}
			if len(runes) == n {
				break
			}
		}
		for len(runes) < n {
			runes = append(runes, 'X')
		}
		return string(runes)
	}

	return fmt.Sprintf("CO%s%s%04d", letters(firstName, 1), letters(lastName, 2), rand.IntN(10000))
}
