package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ah-ugo/amber-hotels-menu/internal/models"
	"github.com/Ah-ugo/amber-hotels-menu/internal/repository"
	"github.com/Ah-ugo/amber-hotels-menu/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type SignedDetails struct {
	Username string
	Email    string
	jwt.StandardClaims
}

type AuthService interface {
	Register(username, email, password string) (*models.Admin, error)
	Login(username, password string) (token string, admin *models.Admin, err error)
	ValidateToken(signedToken string) (*SignedDetails, error)
}

type authService struct {
	adminRepo repository.AdminRepository
	secret    string
	tokenTTL  time.Duration
}

func NewAuthService(adminRepo repository.AdminRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{adminRepo: adminRepo, secret: secret, tokenTTL: tokenTTL}
}

func (s *authService) Register(username, email, password string) (*models.Admin, error) {
	if username == "" {
		return nil, validation.ValidationError{Field: "username", Message: "username is required"}
	}
	if len(password) < 6 {
		return nil, validation.ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, ConnectivityError{Op: "register admin", Err: err}
	}
	return admin, nil
}

func (s *authService) Login(username, password string) (string, *models.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, ConnectivityError{Op: "login", Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := SignedDetails{
		Username: admin.Username,
		Email:    admin.Email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, admin, nil
}

func (s *authService) ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.secret), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return nil, errors.New("token is expired")
	}
	return claims, nil
}
