package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/sessions"
)

// authService handles registration, sign-in, and session resolution.
type authService struct {
	db    *gorm.DB
	store *sessions.Store
}

// NewAuthService creates a new AuthServicer backed by the given session store.
func NewAuthService(db *gorm.DB, store *sessions.Store) AuthServicer {
	return &authService{db: db, store: store}
}

// Register creates a new user and issues a session token. The email must be
// unique; on collision no row is created and no token issued.
func (s *authService) Register(name, email, password string, monthlyIncome *float64, accountType models.AccountType) (string, *models.User, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name, email and password are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return "", nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if accountType == "" {
		accountType = models.AccountTypeIndividual
	}

	user := &models.User{
		Name:          name,
		Email:         strings.ToLower(email),
		Password:      string(hashedPassword),
		MonthlyIncome: monthlyIncome,
		AccountType:   accountType,
	}

	if err := s.db.Create(user).Error; err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.store.Issue(user.ID), user, nil
}

// Login verifies credentials and issues a fresh token. Each login mints a
// new token; existing tokens stay valid.
func (s *authService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	return s.store.Issue(user.ID), &user, nil
}

// Resolve returns the user bound to the token. Lookup only.
func (s *authService) Resolve(token string) (*models.User, error) {
	userID, ok := s.store.Resolve(token)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
