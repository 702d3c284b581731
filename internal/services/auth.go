package services

import (
	"errors"
	"time"

	"emsys/internal/config"
	"emsys/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Security.BcryptCost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// Register creates a new user account. Username and email must be unique and
// the role must be one of the fixed enumeration.
func (s *AuthService) Register(username, email, password, role, fullName string) (*models.User, error) {
	var existing models.User
	if err := models.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		FullName:     fullName,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := models.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the user
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := models.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GenerateToken issues a signed token embedding the username as subject.
func (s *AuthService) GenerateToken(user *models.User) (string, time.Time, error) {
	expiresIn, err := time.ParseDuration(s.cfg.JWT.ExpiresIn)
	if err != nil || expiresIn <= 0 {
		expiresIn = 24 * time.Hour
	}
	expiresAt := time.Now().Add(expiresIn)

	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
		"iss":  s.cfg.JWT.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ResolveToken verifies a token and re-fetches the live user record by the
// embedded username. A user deleted after issuance fails resolution on the
// next request; there is no mid-session revocation list.
func (s *AuthService) ResolveToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := models.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateDefaultAdmin creates the configured administrator account if no user
// with that username exists yet.
func (s *AuthService) CreateDefaultAdmin() error {
	username := s.cfg.Admin.Username
	if username == "" {
		username = "admin"
	}

	var count int64
	if err := models.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := s.HashPassword(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     username,
		Email:        s.cfg.Admin.Email,
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
		FullName:     s.cfg.Admin.FullName,
		Active:       true,
		CreatedAt:    time.Now(),
		CreatedBy:    "system",
	}
	return models.DB.Create(admin).Error
}
