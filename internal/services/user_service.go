package services

import (
	"errors"
	"strings"

	"github.com/franciscosanchezn/gin-ferias-api/internal/auth"
	"github.com/franciscosanchezn/gin-ferias-api/internal/models"
	"gorm.io/gorm"
)

// UserService provides account management on top of the users table.
// Emails are normalized to lowercase before storage and lookup, so the
// uniqueness check is case-insensitive.
type UserService interface {
	// Register creates a new non-admin account. Returns ErrEmailTaken when
	// the normalized email already exists.
	Register(name, email, password, role string) (*models.User, error)
	// Authenticate verifies email/password. Unknown email and wrong password
	// both return ErrInvalidCredentials.
	Authenticate(email, password string) (*models.User, error)
	// GetByID loads a user or returns ErrUserNotFound.
	GetByID(id uint) (*models.User, error)
	// ListUsers returns every account.
	ListUsers() ([]models.User, error)
	// Promote flips the target's admin flag on. Returns ErrUserNotFound if
	// the target does not exist.
	Promote(id uint) (*models.User, error)
	// Delete removes the account. The user's leave requests are left in
	// place. Returns ErrUserNotFound if the target does not exist.
	Delete(id uint) error
}

type userService struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB, hasher auth.PasswordHasher) UserService {
	return &userService{db: db, hasher: hasher}
}

func (s *userService) Register(name, email, password, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *userService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) Promote(id uint) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Update("is_admin", true).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(id uint) error {
	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
