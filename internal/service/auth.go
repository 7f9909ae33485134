package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kilo-recipes/recipe-api/backend/internal/database"
	"github.com/kilo-recipes/recipe-api/backend/internal/models"
	"github.com/kilo-recipes/recipe-api/backend/internal/types"
)

const minPasswordLength = 5

// UpdateUserInput holds the self-service fields; nil means unchanged.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
}

// AuthService owns accounts and token issuance
type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
	validate  *validator.Validate
	now       func() time.Time
}

// NewAuthService creates an AuthService; a zero tokenTTL defaults to 24 hours.
func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// Register creates a regular account
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	return s.createUser(ctx, email, password, name, false)
}

// CreateSuperuser creates an account with staff and superuser rights
func (s *AuthService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.createUser(ctx, email, password, "", true)
}

func (s *AuthService) createUser(ctx context.Context, email, password, name string, superuser bool) (*models.User, error) {
	email = models.NormalizeEmail(email)

	verr := &ValidationError{}
	s.checkEmail(verr, email)
	checkPassword(verr, password)
	if utf8.RuneCountInString(name) > 255 {
		verr.Add("name", msgTooLong)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	if taken, err := s.emailTaken(ctx, email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, NewValidationError("email", "user with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, NewValidationError("email", "user with this email already exists.")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate checks the credentials and issues a token
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, *models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", now).Error; err != nil {
		return "", nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.GenerateToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// CheckPassword reports whether password matches the user's hash
func CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// GenerateToken signs an HS256 token for the user
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserFromToken resolves the active account behind a token
func (s *AuthService) UserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// GetUserByID loads an account
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// UpdateUser applies self-service changes; a new password is re-hashed.
func (s *AuthService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	if in.Email != nil {
		email := models.NormalizeEmail(*in.Email)
		s.checkEmail(verr, email)
		if verr.Err() == nil {
			taken, err := s.emailTaken(ctx, email, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				verr.Add("email", "user with this email already exists.")
			}
		}
		user.Email = email
	}
	if in.Name != nil {
		if utf8.RuneCountInString(*in.Name) > 255 {
			verr.Add("name", msgTooLong)
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		checkPassword(verr, *in.Password)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, NewValidationError("email", "user with this email already exists.")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *AuthService) checkEmail(verr *ValidationError, email string) {
	switch {
	case email == "":
		verr.Add("email", msgRequired)
	case utf8.RuneCountInString(email) > 255:
		verr.Add("email", msgTooLong)
	case s.validate.Var(email, "email") != nil:
		verr.Add("email", msgInvalidEmail)
	}
}

func checkPassword(verr *ValidationError, password string) {
	switch {
	case password == "":
		verr.Add("password", msgRequired)
	case utf8.RuneCountInString(password) < minPasswordLength:
		verr.Add("password", msgPasswordShort)
	}
}

func (s *AuthService) emailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}
