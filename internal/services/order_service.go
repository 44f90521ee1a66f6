package services

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/Ah-ugo/amber-hotels-menu/internal/models"
	"github.com/Ah-ugo/amber-hotels-menu/internal/repository"
	"github.com/Ah-ugo/amber-hotels-menu/internal/validation"

	"gorm.io/gorm"
)

// SubmitLine is one requested order line: a catalog item reference and a
// strictly positive quantity.
type SubmitLine struct {
	ItemID   uint
	Quantity int
}

// SubmitRequest carries everything needed to turn a cart snapshot into a
// persisted order. The lines are already decoupled from the cart that
// produced them, so concurrent cart mutation cannot change a submission.
type SubmitRequest struct {
	TableNumber    int
	Lines          []SubmitLine
	Notes          string
	IdempotencyKey string
}

// SubmissionDeduper remembers which idempotency tokens already produced an
// order, so retrying a failed network call cannot create a duplicate.
type SubmissionDeduper interface {
	MarkSubmission(token string, orderID uint) error
	LookupSubmission(token string) (uint, bool, error)
}

type DashboardStats struct {
	TotalMenuItems int64          `json:"total_menu_items"`
	TotalTables    int64          `json:"total_tables"`
	PendingOrders  int64          `json:"pending_orders"`
	TodayOrders    int64          `json:"today_orders"`
	RecentOrders   []models.Order `json:"recent_orders"`
}

type OrderService interface {
	Submit(req SubmitRequest) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	GetAllOrders() ([]models.Order, error)
	OrdersForTable(tableNumber int) ([]models.Order, error)
	OrdersCreatedOn(day time.Time) ([]models.Order, error)
	CountByStatus(status models.OrderStatus) (int64, error)
	UpdateStatus(id uint, status models.OrderStatus) error
	OrderTotal(order *models.Order) float64
	Dashboard() (*DashboardStats, error)
}

type orderService struct {
	orderRepo         repository.OrderRepository
	menuRepo          repository.MenuRepository
	tableRepo         repository.TableRepository
	deduper           SubmissionDeduper
	loc               *time.Location
	requireKnownTable bool
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	tableRepo repository.TableRepository,
	deduper SubmissionDeduper,
	loc *time.Location,
	requireKnownTable bool,
) OrderService {
	if loc == nil {
		loc = time.Local
	}
	return &orderService{
		orderRepo:         orderRepo,
		menuRepo:          menuRepo,
		tableRepo:         tableRepo,
		deduper:           deduper,
		loc:               loc,
		requireKnownTable: requireKnownTable,
	}
}

// Submit is the only code path that creates an Order. Validation failures
// return before any persistence call; on success the returned order is
// pending with a server-side creation time.
func (s *orderService) Submit(req SubmitRequest) (*models.Order, error) {
	if err := validation.ValidateTableNumber(req.TableNumber); err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return nil, validation.ErrEmptyCart
	}
	for i, line := range req.Lines {
		if err := validation.ValidateQuantity(i, line.Quantity); err != nil {
			return nil, err
		}
	}

	if s.requireKnownTable {
		exists, err := s.tableRepo.ExistsNumber(req.TableNumber)
		if err != nil {
			return nil, ConnectivityError{Op: "submit order", Err: err}
		}
		if !exists {
			return nil, validation.ErrInvalidTableNumber
		}
	}

	if req.IdempotencyKey != "" && s.deduper != nil {
		orderID, seen, err := s.deduper.LookupSubmission(req.IdempotencyKey)
		if err != nil {
			log.Printf("order service: idempotency lookup failed: %v", err)
		} else if seen {
			return s.GetOrder(orderID)
		}
	}

	order := &models.Order{
		TableNumber: req.TableNumber,
		Notes:       req.Notes,
		Status:      models.OrderPending,
	}
	for _, line := range req.Lines {
		item, err := s.menuRepo.GetByID(line.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFoundError{Resource: "menu item", ID: strconv.FormatUint(uint64(line.ItemID), 10)}
			}
			return nil, ConnectivityError{Op: "submit order", Err: err}
		}
		order.Items = append(order.Items, models.OrderItem{
			ItemID:    item.ID,
			Quantity:  line.Quantity,
			UnitPrice: item.Price,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, ConnectivityError{Op: "submit order", Err: err}
	}

	if req.IdempotencyKey != "" && s.deduper != nil {
		if err := s.deduper.MarkSubmission(req.IdempotencyKey, order.ID); err != nil {
			log.Printf("order service: failed to record idempotency token: %v", err)
		}
	}
	return order, nil
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Resource: "order", ID: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, ConnectivityError{Op: "get order", Err: err}
	}
	return order, nil
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, ConnectivityError{Op: "list orders", Err: err}
	}
	return orders, nil
}

func (s *orderService) OrdersForTable(tableNumber int) ([]models.Order, error) {
	if err := validation.ValidateTableNumber(tableNumber); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.GetByTableNumber(tableNumber)
	if err != nil {
		return nil, ConnectivityError{Op: "list table orders", Err: err}
	}
	return orders, nil
}

// OrdersCreatedOn returns the orders whose creation time falls on the given
// calendar day in the service's configured timezone.
func (s *orderService) OrdersCreatedOn(day time.Time) ([]models.Order, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1)

	orders, err := s.orderRepo.GetByDateRange(start, end)
	if err != nil {
		return nil, ConnectivityError{Op: "list orders by day", Err: err}
	}
	return orders, nil
}

func (s *orderService) CountByStatus(status models.OrderStatus) (int64, error) {
	if err := validation.ValidateStatus(status); err != nil {
		return 0, err
	}
	count, err := s.orderRepo.CountByStatus(status)
	if err != nil {
		return 0, ConnectivityError{Op: "count orders", Err: err}
	}
	return count, nil
}

// UpdateStatus accepts any of the three statuses regardless of the order's
// current state; staff drive every change explicitly and the UI stays
// flexible about skipping or reverting steps.
func (s *orderService) UpdateStatus(id uint, status models.OrderStatus) error {
	if err := validation.ValidateStatus(status); err != nil {
		return err
	}
	affected, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return ConnectivityError{Op: "update order status", Err: err}
	}
	if affected == 0 {
		return NotFoundError{Resource: "order", ID: strconv.FormatUint(uint64(id), 10)}
	}
	return nil
}

// OrderTotal sums the prices snapshotted at submission, so the total of a
// historical order never moves when the menu changes.
func (s *orderService) OrderTotal(order *models.Order) float64 {
	total := 0.0
	for _, item := range order.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

func (s *orderService) Dashboard() (*DashboardStats, error) {
	menuCount, err := s.menuRepo.Count()
	if err != nil {
		return nil, ConnectivityError{Op: "dashboard", Err: err}
	}
	tableCount, err := s.tableRepo.Count()
	if err != nil {
		return nil, ConnectivityError{Op: "dashboard", Err: err}
	}
	pending, err := s.orderRepo.CountByStatus(models.OrderPending)
	if err != nil {
		return nil, ConnectivityError{Op: "dashboard", Err: err}
	}
	today, err := s.OrdersCreatedOn(time.Now().In(s.loc))
	if err != nil {
		return nil, err
	}
	recent, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, ConnectivityError{Op: "dashboard", Err: err}
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &DashboardStats{
		TotalMenuItems: menuCount,
		TotalTables:    tableCount,
		PendingOrders:  pending,
		TodayOrders:    int64(len(today)),
		RecentOrders:   recent,
	}, nil
}
