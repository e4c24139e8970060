package services

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

type MockAuthorityRepository struct {
	mock.Mock
}

func (m *MockAuthorityRepository) Create(ctx context.Context, authority *models.Authority) error {
	args := m.Called(ctx, authority)
	return args.Error(0)
}

func (m *MockAuthorityRepository) GetByEmail(ctx context.Context, email string) (*models.Authority, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Authority), args.Error(1)
}

type AuthServiceTestSuite struct {
	suite.Suite
	customers   *MockCustomerRepository
	authorities *MockAuthorityRepository
	tokens      *TokenIssuer
	service     AuthService
	ctx         context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.customers = &MockCustomerRepository{}
	suite.authorities = &MockAuthorityRepository{}
	suite.tokens = NewTokenIssuer("test-secret", 720*time.Hour)
	suite.service = NewAuthService(suite.customers, suite.authorities, suite.tokens)
	suite.ctx = context.Background()
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func hashed(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func (suite *AuthServiceTestSuite) TestRegisterCustomer_HashesPassword() {
	customer := &models.Customer{FirstName: "Ayşe", LastName: "Yılmaz", Email: "ayse@example.com", PhoneNumber: "(555)-123-45-67"}
	suite.customers.On("Create", suite.ctx, customer).Return(nil)

	err := suite.service.RegisterCustomer(suite.ctx, customer, "gizli123")

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), customer.UserID, 10)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte("gizli123")))
	cost, err := bcrypt.Cost([]byte(customer.PasswordHash))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 10, cost)
	suite.customers.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLoginCustomer_Success() {
	suite.customers.On("GetByEmail", suite.ctx, "ayse@example.com").Return(&models.Customer{
		UserID:       "U1",
		Email:        "ayse@example.com",
		PasswordHash: hashed("gizli123"),
	}, nil)

	customer, token, err := suite.service.LoginCustomer(suite.ctx, "ayse@example.com", "gizli123")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "U1", customer.UserID)
	claims, err := suite.tokens.Parse(token.Token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "U1", claims.UserID)
	assert.Equal(suite.T(), models.RoleCustomer, claims.Role)
	assert.Empty(suite.T(), claims.AppRole)
}

func (suite *AuthServiceTestSuite) TestLoginCustomer_WrongPassword() {
	suite.customers.On("GetByEmail", suite.ctx, "ayse@example.com").Return(&models.Customer{
		UserID:       "U1",
		PasswordHash: hashed("gizli123"),
	}, nil)

	_, token, err := suite.service.LoginCustomer(suite.ctx, "ayse@example.com", "yanlis")

	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
	assert.Nil(suite.T(), token)
}

func (suite *AuthServiceTestSuite) TestLoginCustomer_UnknownEmail() {
	suite.customers.On("GetByEmail", suite.ctx, "nobody@example.com").Return(nil, pgx.ErrNoRows)

	customer, _, err := suite.service.LoginCustomer(suite.ctx, "nobody@example.com", "x")

	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
	assert.Nil(suite.T(), customer)
}

func (suite *AuthServiceTestSuite) TestLoginAuthority_CarriesAppRole() {
	suite.authorities.On("GetByEmail", suite.ctx, "adminproduct@ekinoks.com.tr").Return(&models.Authority{
		UserID:       "AU1",
		Email:        "adminproduct@ekinoks.com.tr",
		AppRole:      models.AppRoleProductAdmin,
		PasswordHash: hashed("admin"),
	}, nil)

	_, token, err := suite.service.LoginAuthority(suite.ctx, "adminproduct@ekinoks.com.tr", "admin")

	require.NoError(suite.T(), err)
	claims, err := suite.tokens.Parse(token.Token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.AppRoleProductAdmin, claims.AppRole)
	assert.Equal(suite.T(), models.RoleAppAuthority, claims.Role)
	assert.Equal(suite.T(), "adminproduct@ekinoks.com.tr", claims.Email)
}

func (suite *AuthServiceTestSuite) TestAddAuthority_AssignsID() {
	authority := &models.Authority{FirstName: "Mehmet", AppRole: models.AppRoleAdmin, Email: "m@example.com"}
	suite.authorities.On("Create", suite.ctx, authority).Return(nil)

	require.NoError(suite.T(), suite.service.AddAuthority(suite.ctx, authority, "sifre"))
	assert.Len(suite.T(), authority.UserID, 10)
	assert.NotEmpty(suite.T(), authority.PasswordHash)
}

func TestTokenIssuer_RejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := issuer.Issue("U1", "a@b.c", models.RoleCustomer, "")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Parse(expired)
	assert.Error(t, err)

	fresh, _, err := NewTokenIssuer("other", time.Hour).Issue("U1", "a@b.c", models.RoleCustomer, "")
	require.NoError(t, err)
	_, err = NewTokenIssuer("secret", time.Hour).Parse(fresh)
	assert.Error(t, err)
}
