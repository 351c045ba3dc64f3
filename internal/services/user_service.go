package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// userService resolves the ownership graph: a group owner and the one level
// of members whose OwnerID points at it.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// Members returns the users whose OwnerID equals the given owner. Nesting is
// never traversed beyond this single edge.
func (s *userService) Members(ownerID uint) ([]models.User, error) {
	var members []models.User
	if err := s.db.Where("owner_id = ?", ownerID).Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// VisibleUsers returns the user itself plus, for group owners, its members.
// This is the read scope for user listing only; financial records are always
// scoped to the single acting user id.
func (s *userService) VisibleUsers(user *models.User) ([]models.User, error) {
	members, err := s.Members(user.ID)
	if err != nil {
		return nil, err
	}
	return append([]models.User{*user}, members...), nil
}

// AddMember creates a member under a group owner. Only group accounts may
// add members; the member's AccountType defaults to individual.
func (s *userService) AddMember(acting *models.User, name, email, password string, monthlyIncome *float64, accountType models.AccountType) (*models.User, error) {
	if !acting.IsGroup() {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "Only group accounts can add users")
	}
	if name == "" || email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and email are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashed := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		hashed = string(h)
	}

	if accountType == "" {
		accountType = models.AccountTypeIndividual
	}

	ownerID := acting.ID
	member := &models.User{
		Name:          name,
		Email:         strings.ToLower(email),
		Password:      hashed,
		MonthlyIncome: monthlyIncome,
		AccountType:   accountType,
		OwnerID:       &ownerID,
	}

	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// UpdateProfile updates the mutable profile fields of a user.
func (s *userService) UpdateProfile(userID uint, name *string, monthlyIncome *float64) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil && *name != "" {
		updates["name"] = *name
	}
	if monthlyIncome != nil {
		updates["monthly_income"] = *monthlyIncome
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return user, nil
}
