package services

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/jackc/pgx/v5"
)

const defaultOrderTimeout = 10 * time.Second

// ActivitySink accepts activity records without blocking the caller
type ActivitySink interface {
	Dispatch(record models.ActivityRecord)
}

// OrderEventPublisher announces committed orders. It must not block.
type OrderEventPublisher interface {
	PublishOrderCreated(event *models.OrderCreatedEvent)
}

// OrderResult is returned only after the transaction committed
type OrderResult struct {
	OrderID string `json:"orderId"`
	Message string `json:"msg"`
}

// OrderTransaction places an order atomically
type OrderTransaction interface {
	CreateOrder(ctx context.Context, req *models.OrderRequest) (*OrderResult, error)
}

type orderTransaction struct {
	db          repositories.DBTX
	validator   OrderValidator
	reservation StockReservation
	writer      OrderWriter
	activity    ActivitySink
	events      OrderEventPublisher
	timeout     time.Duration
}

// OrderTransactionDeps groups the collaborators of NewOrderTransaction
type OrderTransactionDeps struct {
	DB          repositories.DBTX
	Validator   OrderValidator
	Reservation StockReservation
	Writer      OrderWriter
	Activity    ActivitySink
	Events      OrderEventPublisher
	Timeout     time.Duration
}

func NewOrderTransaction(deps OrderTransactionDeps) OrderTransaction {
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = defaultOrderTimeout
	}
	events := deps.Events
	if events == nil {
		events = noopPublisher{}
	}
	return &orderTransaction{
		db:          deps.DB,
		validator:   deps.Validator,
		reservation: deps.Reservation,
		writer:      deps.Writer,
		activity:    deps.Activity,
		events:      events,
		timeout:     timeout,
	}
}

// CreateOrder runs validate, check stock, write, commit stock and commit in one transaction.
// Any failure rolls the transaction back before the error is returned; the activity
// record is dispatched after the outcome is known in both cases.
func (s *orderTransaction) CreateOrder(ctx context.Context, req *models.OrderRequest) (result *OrderResult, err error) {
	defer func() {
		s.activity.Dispatch(models.ActivityRecord{
			UserID:     req.UserID,
			Action:     models.ActionCreateOrder,
			UserRole:   models.RoleCustomer,
			StatusCode: OrderStatusCode(err),
		})
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, &StoreUnavailableError{Err: err}
	}

	if err := s.validator.Validate(ctx, tx, req); err != nil {
		return nil, s.rollback(ctx, tx, err)
	}

	snapshot, err := s.reservation.CheckStock(ctx, tx, req)
	if err != nil {
		return nil, s.rollback(ctx, tx, err)
	}

	orderID, err := s.writer.Write(ctx, tx, req)
	if err != nil {
		return nil, s.rollback(ctx, tx, err)
	}

	if err := s.reservation.CommitStock(ctx, tx, req, snapshot); err != nil {
		return nil, s.rollback(ctx, tx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, s.rollback(ctx, tx, err)
	}

	s.events.PublishOrderCreated(&models.OrderCreatedEvent{
		OrderID:    orderID,
		UserID:     req.UserID,
		AddressID:  req.AddressID,
		TotalPrice: req.TotalPriceAll,
		Lines:      req.Products,
		CreatedAt:  time.Now().UTC(),
	})

	return &OrderResult{OrderID: orderID, Message: common.MsgOrderCreated}, nil
}

// rollback ends tx and returns cause classified. It uses a context detached from
// cancellation so a timed-out order still releases its locks.
func (s *orderTransaction) rollback(ctx context.Context, tx pgx.Tx, cause error) error {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		log.Printf("order transaction rollback failed: %v (cause: %v)", err, cause)
	}
	return classifyStoreError(cause)
}

// OrderStatusCode maps an order outcome to the HTTP status reported to the client
func OrderStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsBusinessRuleError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderCreated(*models.OrderCreatedEvent) {}
