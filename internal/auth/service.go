package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/user"
)

type UserRepository interface {
	GetByUsername(username string) (*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
	Create(u *userDatamodel.User) error
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    24 * 7 * time.Hour,
	}
}

// Authenticate validates credentials against the store, enforces the
// case-insensitive role match, and issues tokens.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.userRepo.GetByUsername(strings.TrimSpace(dto.Username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(record.PasswordHash, dto.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	storedRole := NormalizeRole(record.Role)
	if !userDatamodel.ValidRole(storedRole) {
		return nil, ErrInvalidRole
	}

	if NormalizeRole(dto.Role) != storedRole {
		return nil, ErrRoleMismatch
	}

	uid := strconv.FormatInt(record.ID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(uid, record.Username, storedRole)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(uid, record.Username, storedRole)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Success: true,
		User: User{
			ID:       record.ID,
			Name:     record.Name,
			Username: record.Username,
			Role:     storedRole,
		},
		Tokens: AuthTokens{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

// Signup creates a new account. Role is normalized before the allow-list
// check; duplicate username/email are rejected before the insert.
func (s *Service) Signup(dto SignupDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	role := NormalizeRole(dto.Role)
	if !userDatamodel.ValidRole(role) {
		return ErrInvalidRole
	}

	username := strings.TrimSpace(dto.Username)
	email := strings.TrimSpace(dto.Email)

	exists, err := s.userRepo.UsernameExists(username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameExists
	}

	exists, err = s.userRepo.EmailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailExists
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return err
	}

	return s.userRepo.Create(&userDatamodel.User{
		Name:         strings.TrimSpace(dto.Name),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	})
}

// RefreshTokens validates a refresh token and issues a new token pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(claims.UserID, claims.Username, claims.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	newRefreshToken, err := s.tokenGenerator.GenerateRefreshToken(claims.UserID, claims.Username, claims.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUserByID resolves a token subject to a full identity for the request
// context.
func (s *Service) GetUserByID(id int64) (*User, error) {
	record, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &User{
		ID:       record.ID,
		Name:     record.Name,
		Username: record.Username,
		Role:     NormalizeRole(record.Role),
	}, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, username, role string) (string, error) {
	return j.signToken(userID, username, role, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID, username, role string) (string, error) {
	return j.signToken(userID, username, role, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) signToken(userID, username, role string, ttl time.Duration, secret []byte) (string, error) {
	expiresAt := time.Now().Add(ttl)

	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// refresh tokens outlive the access TTL; pick the secret by remaining lifetime
		if claims, ok := token.Claims.(*Claims); ok {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
