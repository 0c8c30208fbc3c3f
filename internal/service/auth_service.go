package service

import (
	"errors"
	"fmt"

	"microblog/internal/config"
	"microblog/internal/dto"
	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/utils"
)

// AuthService handles registration, login and password management.
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	cfg        *config.Config
}

// NewAuthService creates an auth service.
func NewAuthService(userRepo *repository.UserRepository, jwtManager *utils.JWTManager, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		cfg:        cfg,
	}
}

// Register creates a new user. Duplicate username/email conflicts are
// resolved here, before anything reaches the data model.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	exists, err = s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.NewUserInfo(user),
	}, nil
}

// GetMe returns the current user's profile info.
func (s *AuthService) GetMe(userID uint) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	info := dto.NewUserInfo(user)
	return &info, nil
}

// RequestPasswordReset issues a reset token for the account behind the
// email. Delivery is left to an external collaborator; the token is
// returned to it. Unknown emails produce no error, so the endpoint
// does not leak which addresses exist.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil
	}
	return s.jwtManager.GenerateResetToken(user.ID)
}

// ResetPassword verifies a reset token and replaces the password.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	userID, err := s.jwtManager.ValidateResetToken(token)
	if err != nil {
		return errors.New("invalid or expired reset token")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	return s.userRepo.Update(user)
}

// UpdateProfile changes the username and bio of the current user.
func (s *AuthService) UpdateProfile(userID uint, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if exists {
			return nil, ErrUsernameTaken
		}
		user.Username = *req.Username
	}
	if req.AboutMe != nil {
		user.AboutMe = *req.AboutMe
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// InitAdmin creates the bootstrap admin account if none exists.
func (s *AuthService) InitAdmin() error {
	admin, err := s.userRepo.GetAdmin()
	if err == nil && admin != nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(s.cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	email := s.cfg.Admin.Email
	if email == "" {
		email = s.cfg.Admin.Username + "@localhost"
	}

	user := &models.User{
		Username:     s.cfg.Admin.Username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	return nil
}
