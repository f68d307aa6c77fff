package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"sakay_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	// ExistsByEmailOrUsername backs the uniqueness check at signup time and
	// again at OTP verification time (the TOCTOU re-check).
	ExistsByEmailOrUsername(db *gorm.DB, email, username string) (bool, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error
	UpdatePreferences(db *gorm.DB, userID string, prefs models.Preferences) error
	IncrementTrips(db *gorm.DB, email string) error
	Delete(db *gorm.DB, userID string) error

	// Admin operations
	FindWithFilter(db *gorm.DB, criteria UserFilter) ([]models.User, error)
	CountAll(db *gorm.DB) (int64, error)
}

// UserFilter narrows the admin user list.
type UserFilter struct {
	Search string
	Status models.UserStatus
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ExistsByEmailOrUsername(db *gorm.DB, email, username string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	exists, err := r.ExistsByEmailOrUsername(db, user.Email, user.Username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}
	// Unique indexes are the backstop for races between the check and the
	// insert.
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"username":   user.Username,
		"email":      user.Email,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePreferences(db *gorm.DB, userID string, prefs models.Preferences) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("preferences", prefs)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) IncrementTrips(db *gorm.DB, email string) error {
	return db.Model(&models.User{}).
		Where("email = ?", email).
		UpdateColumn("trips_taken", gorm.Expr("trips_taken + 1")).Error
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, userID string) error {
	result := db.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindWithFilter(db *gorm.DB, criteria UserFilter) ([]models.User, error) {
	var users []models.User
	query := db.Model(&models.User{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", search, search)
	}

	err := query.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}
