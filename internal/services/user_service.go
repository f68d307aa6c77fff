package services

import (
	"time"

	"gorm.io/gorm"

	"sakay_backend/internal/auth"
	"sakay_backend/internal/models"
	"sakay_backend/internal/repositories"
	"sakay_backend/internal/services/dto"
	"sakay_backend/pkg/apperrors"
)

// UserService covers the admin user manager plus commuter self-service
// (profile and preference edits).
type UserService interface {
	List(db *gorm.DB, filter repositories.UserFilter) ([]dto.UserResponse, error)
	AdminCreate(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	SetStatus(db *gorm.DB, userID string, status models.UserStatus) error
	Delete(db *gorm.DB, userID string) error
	GetByEmail(db *gorm.DB, email string) (*dto.UserResponse, error)
	UpdateProfile(db *gorm.DB, email string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdatePreferences(db *gorm.DB, email string, prefs models.Preferences) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) List(db *gorm.DB, filter repositories.UserFilter) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

// AdminCreate adds an account directly, bypassing the OTP flow.
func (s *UserServiceImpl) AdminCreate(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleUser
	}
	status := models.UserStatus(req.Status)
	if status == "" {
		status = models.UserStatusActive
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       status,
		Role:         role,
		Preferences:  models.DefaultPreferences(),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAccountExists
		}
		return nil, apperrors.InternalError(err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) SetStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	if err := s.userRepo.UpdateStatus(db, userID, status); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) Delete(db *gorm.DB, userID string) error {
	if err := s.userRepo.Delete(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) GetByEmail(db *gorm.DB, email string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes username/email for the session's own account. The
// new email or username must not collide with another account.
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, email string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Email != user.Email || req.Username != user.Username {
		var count int64
		err := db.Model(&models.User{}).
			Where("(email = ? OR username = ?) AND id <> ?", req.Email, req.Username, user.ID).
			Count(&count).Error
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if count > 0 {
			return nil, apperrors.ErrAccountExists
		}
	}

	user.Username = req.Username
	user.Email = req.Email
	if err := s.userRepo.Update(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) UpdatePreferences(db *gorm.DB, email string, prefs models.Preferences) error {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePreferences(db, user.ID, prefs); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Status:      user.Status,
		Role:        user.Role,
		Preferences: user.Preferences,
		TripsTaken:  user.TripsTaken,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	}
}
