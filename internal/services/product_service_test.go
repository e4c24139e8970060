package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetProducts(ctx context.Context) ([]*models.ProductSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProductSummary), args.Error(1)
}

func (m *MockCacheService) SetProducts(ctx context.Context, products []*models.ProductSummary, ttl time.Duration) error {
	args := m.Called(ctx, products, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateProducts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) GetArchiveWatermark(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockCacheService) SetArchiveWatermark(ctx context.Context, until time.Time) error {
	args := m.Called(ctx, until)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Close() error {
	return m.Called().Error(0)
}

const productSelectSQL = `SELECT product_id, price, name, description, stock, updated_by FROM product WHERE product_id = $1`

type ProductServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	cache   *MockCacheService
	service ProductService
	ctx     context.Context
}

func (suite *ProductServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.cache = &MockCacheService{}
	suite.service = NewProductService(mock, repositories.NewProductRepo(mock), suite.cache, 5*time.Minute)
	suite.ctx = context.Background()
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.cache.AssertExpectations(suite.T())
	suite.mock.Close()
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func upsert(id string, price float64, name string, stock int) *models.ProductUpsert {
	return &models.ProductUpsert{ProductID: id, Price: &price, Name: &name, Stock: &stock}
}

func (suite *ProductServiceTestSuite) TestListProducts_CacheHit() {
	cached := []*models.ProductSummary{{ProductID: "P1", Price: 10, Name: "Kalem"}}
	suite.cache.On("GetProducts", suite.ctx).Return(cached, nil)

	products, err := suite.service.ListProducts(suite.ctx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, products)
}

func (suite *ProductServiceTestSuite) TestListProducts_CacheMissFillsCache() {
	suite.cache.On("GetProducts", suite.ctx).Return(nil, nil)
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT product_id, price, name FROM product`)).
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "price", "name"}).AddRow("P1", 10.0, "Kalem"))
	suite.cache.On("SetProducts", suite.ctx, mock.Anything, 5*time.Minute).Return(nil)

	products, err := suite.service.ListProducts(suite.ctx)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), "Kalem", products[0].Name)
}

func (suite *ProductServiceTestSuite) TestListProducts_CacheErrorFallsBackToStore() {
	suite.cache.On("GetProducts", suite.ctx).Return(nil, errors.New("redis down"))
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT product_id, price, name FROM product`)).
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "price", "name"}))
	suite.cache.On("SetProducts", suite.ctx, mock.Anything, 5*time.Minute).Return(errors.New("redis down"))

	products, err := suite.service.ListProducts(suite.ctx)

	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), products)
}

func (suite *ProductServiceTestSuite) TestUpsertProduct_InsertsWhenMissing() {
	product := upsert("P9", 15.5, "Silgi", 20)
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(productSelectSQL)).
		WithArgs("P9").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "price", "name", "description", "stock", "updated_by"}))
	suite.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product`)).
		WithArgs("P9", product.Price, product.Name, product.Description, product.Stock, product.UpdatedBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()
	suite.cache.On("InvalidateProducts", suite.ctx).Return(nil)

	inserted, err := suite.service.UpsertProduct(suite.ctx, product)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), inserted)
}

func (suite *ProductServiceTestSuite) TestUpsertProduct_UpdatesWhenPresent() {
	product := upsert("P1", 12.0, "Kalem", 5)
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(productSelectSQL)).
		WithArgs("P1").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "price", "name", "description", "stock", "updated_by"}).
			AddRow("P1", 10.0, "Kalem", nil, 3, nil))
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE product SET name = COALESCE($3, name)`)).
		WithArgs("P1", product.Price, product.Name, product.Description, product.Stock, product.UpdatedBy).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()
	suite.cache.On("InvalidateProducts", suite.ctx).Return(nil)

	inserted, err := suite.service.UpsertProduct(suite.ctx, product)

	require.NoError(suite.T(), err)
	assert.False(suite.T(), inserted)
}

func (suite *ProductServiceTestSuite) TestUpsertProduct_InsertFailureRollsBack() {
	product := upsert("P9", 15.5, "Silgi", 20)
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(productSelectSQL)).
		WithArgs("P9").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "price", "name", "description", "stock", "updated_by"}))
	suite.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product`)).
		WithArgs("P9", product.Price, product.Name, product.Description, product.Stock, product.UpdatedBy).
		WillReturnError(errors.New("value too long"))
	suite.mock.ExpectRollback()

	_, err := suite.service.UpsertProduct(suite.ctx, product)

	assert.Error(suite.T(), err)
	suite.cache.AssertNotCalled(suite.T(), "InvalidateProducts", mock.Anything)
}

func TestProductService_NilCacheReadsStore(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()
	db.ExpectQuery(regexp.QuoteMeta(`SELECT product_id, price, name FROM product`)).
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "price", "name"}).AddRow("P1", 10.0, "Kalem"))

	service := NewProductService(db, repositories.NewProductRepo(db), nil, time.Minute)
	products, err := service.ListProducts(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.NoError(t, service.WarmCache(context.Background()))
	assert.NoError(t, db.ExpectationsWereMet())
}
