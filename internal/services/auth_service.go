package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 10

// ErrInvalidCredentials covers both an unknown email and a wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenClaims are the claims carried by every issued token
type TokenClaims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"userEmail"`
	Role    string `json:"role"`
	AppRole string `json:"app_role,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *TokenIssuer) Issue(userID, email, role, appRole string) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := TokenClaims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		AppRole: appRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature and expiry
func (t *TokenIssuer) Parse(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

type AuthService interface {
	RegisterCustomer(ctx context.Context, customer *models.Customer, password string) error
	LoginCustomer(ctx context.Context, email, password string) (*models.Customer, *models.TokenResponse, error)
	AddAuthority(ctx context.Context, authority *models.Authority, password string) error
	LoginAuthority(ctx context.Context, email, password string) (*models.Authority, *models.TokenResponse, error)
}

type authService struct {
	customerRepo  repositories.CustomerRepository
	authorityRepo repositories.AuthorityRepository
	tokens        *TokenIssuer
}

func NewAuthService(customerRepo repositories.CustomerRepository, authorityRepo repositories.AuthorityRepository, tokens *TokenIssuer) AuthService {
	return &authService{
		customerRepo:  customerRepo,
		authorityRepo: authorityRepo,
		tokens:        tokens,
	}
}

// RegisterCustomer assigns the user id and stores the password hash. Duplicate
// email or phone come back as the store's unique violation.
func (s *authService) RegisterCustomer(ctx context.Context, customer *models.Customer, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	customer.UserID = newShortID()
	customer.PasswordHash = string(hash)
	return s.customerRepo.Create(ctx, customer)
}

func (s *authService) LoginCustomer(ctx context.Context, email, password string) (*models.Customer, *models.TokenResponse, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return customer, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(customer.UserID, customer.Email, models.RoleCustomer, "")
	if err != nil {
		return customer, nil, err
	}
	return customer, &models.TokenResponse{Msg: common.MsgLoginSucceeded, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) AddAuthority(ctx context.Context, authority *models.Authority, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	authority.UserID = newShortID()
	authority.PasswordHash = string(hash)
	return s.authorityRepo.Create(ctx, authority)
}

func (s *authService) LoginAuthority(ctx context.Context, email, password string) (*models.Authority, *models.TokenResponse, error) {
	authority, err := s.authorityRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up authority: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(authority.PasswordHash), []byte(password)); err != nil {
		return authority, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(authority.UserID, authority.Email, models.RoleAppAuthority, authority.AppRole)
	if err != nil {
		return authority, nil, err
	}
	return authority, &models.TokenResponse{Msg: common.MsgLoginSucceeded, Token: token, ExpiresAt: expiresAt}, nil
}

// newShortID returns the first ten characters of a random uuid
func newShortID() string {
	return common.ShortID(uuid.NewString(), 10)
}
