package services

import (
	"testing"
	"time"

	"github.com/Ah-ugo/amber-hotels-menu/internal/models"
	"github.com/Ah-ugo/amber-hotels-menu/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubOrderRepo struct {
	orders      []models.Order
	nextID      uint
	createCalls int
	createErr   error
}

func (r *stubOrderRepo) Create(order *models.Order) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	order.ID = r.nextID
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders = append(r.orders, *order)
	return nil
}

func (r *stubOrderRepo) GetByID(id uint) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) GetAll() ([]models.Order, error) {
	out := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *stubOrderRepo) GetByTableNumber(tableNumber int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.TableNumber == tableNumber {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) GetByDateRange(start, end time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) CountByStatus(status models.OrderStatus) (int64, error) {
	var count int64
	for _, o := range r.orders {
		if o.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *stubOrderRepo) UpdateStatus(id uint, status models.OrderStatus) (int64, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return 1, nil
		}
	}
	return 0, nil
}

type stubMenuRepo struct {
	items map[uint]models.MenuItem
}

func (r *stubMenuRepo) Create(item *models.MenuItem) error { r.items[item.ID] = *item; return nil }

func (r *stubMenuRepo) GetByID(id uint) (*models.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *stubMenuRepo) GetAll() ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubMenuRepo) Update(item *models.MenuItem) error { r.items[item.ID] = *item; return nil }

func (r *stubMenuRepo) Delete(id uint) (int64, error) {
	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}

func (r *stubMenuRepo) Count() (int64, error) { return int64(len(r.items)), nil }

type stubTableRepo struct {
	numbers map[int]bool
}

func (r *stubTableRepo) Create(table *models.Table) error {
	r.numbers[table.TableNumber] = true
	return nil
}

func (r *stubTableRepo) GetAll() ([]models.Table, error) { return nil, nil }

func (r *stubTableRepo) GetByNumber(tableNumber int) (*models.Table, error) {
	if !r.numbers[tableNumber] {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Table{TableNumber: tableNumber}, nil
}

func (r *stubTableRepo) DeleteByNumber(tableNumber int) (int64, error) {
	if !r.numbers[tableNumber] {
		return 0, nil
	}
	delete(r.numbers, tableNumber)
	return 1, nil
}

func (r *stubTableRepo) ExistsNumber(tableNumber int) (bool, error) {
	return r.numbers[tableNumber], nil
}

func (r *stubTableRepo) Count() (int64, error) { return int64(len(r.numbers)), nil }

type stubDeduper struct {
	tokens map[string]uint
}

func (d *stubDeduper) MarkSubmission(token string, orderID uint) error {
	d.tokens[token] = orderID
	return nil
}

func (d *stubDeduper) LookupSubmission(token string) (uint, bool, error) {
	id, ok := d.tokens[token]
	return id, ok, nil
}

type fixture struct {
	orders  *stubOrderRepo
	menu    *stubMenuRepo
	tables  *stubTableRepo
	deduper *stubDeduper
	service OrderService
}

func newFixture(requireKnownTable bool) *fixture {
	f := &fixture{
		orders: &stubOrderRepo{},
		menu: &stubMenuRepo{items: map[uint]models.MenuItem{
			1: {ID: 1, Name: "Jollof Rice", Price: 8.0, Category: "Mains"},
			2: {ID: 2, Name: "Suya", Price: 5.0, Category: "Grill"},
		}},
		tables:  &stubTableRepo{numbers: map[int]bool{5: true}},
		deduper: &stubDeduper{tokens: map[string]uint{}},
	}
	f.service = NewOrderService(f.orders, f.menu, f.tables, f.deduper, time.UTC, requireKnownTable)
	return f
}

func TestSubmitEmptyCartNeverReachesPersistence(t *testing.T) {
	f := newFixture(false)

	_, err := f.service.Submit(SubmitRequest{TableNumber: 5})

	require.Error(t, err)
	assert.ErrorAs(t, err, &validation.ValidationError{})
	assert.Equal(t, validation.ErrEmptyCart, err)
	assert.Zero(t, f.orders.createCalls, "persistence must not be called for an empty cart")
}

func TestSubmitRejectsBadTableNumber(t *testing.T) {
	f := newFixture(false)

	for _, n := range []int{0, -2} {
		_, err := f.service.Submit(SubmitRequest{
			TableNumber: n,
			Lines:       []SubmitLine{{ItemID: 1, Quantity: 1}},
		})
		assert.Equal(t, validation.ErrInvalidTableNumber, err)
	}
	assert.Zero(t, f.orders.createCalls)
}

func TestSubmitRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(false)

	_, err := f.service.Submit(SubmitRequest{
		TableNumber: 5,
		Lines:       []SubmitLine{{ItemID: 1, Quantity: 0}},
	})

	assert.ErrorAs(t, err, &validation.ValidationError{})
	assert.Zero(t, f.orders.createCalls)
}

func TestSubmitRoundTrip(t *testing.T) {
	f := newFixture(false)

	order, err := f.service.Submit(SubmitRequest{
		TableNumber: 5,
		Notes:       "no pepper",
		Lines: []SubmitLine{
			{ItemID: 1, Quantity: 2},
			{ItemID: 2, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 5, order.TableNumber)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "no pepper", order.Notes)
	assert.False(t, order.CreatedAt.IsZero())

	require.Len(t, order.Items, 2)
	assert.Equal(t, uint(1), order.Items[0].ItemID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 8.0, order.Items[0].UnitPrice)
	assert.Equal(t, uint(2), order.Items[1].ItemID)
	assert.Equal(t, 1, order.Items[1].Quantity)
	assert.Equal(t, 5.0, order.Items[1].UnitPrice)

	assert.Equal(t, 21.0, f.service.OrderTotal(order))
}

func TestSubmitUnknownMenuItem(t *testing.T) {
	f := newFixture(false)

	_, err := f.service.Submit(SubmitRequest{
		TableNumber: 5,
		Lines:       []SubmitLine{{ItemID: 42, Quantity: 1}},
	})

	assert.ErrorAs(t, err, &NotFoundError{})
	assert.Zero(t, f.orders.createCalls)
}

func TestSubmitTotalSurvivesMenuPriceChange(t *testing.T) {
	f := newFixture(false)

	order, err := f.service.Submit(SubmitRequest{
		TableNumber: 5,
		Lines:       []SubmitLine{{ItemID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 16.0, f.service.OrderTotal(order))

	// Raising the menu price must not move the historical total.
	item := f.menu.items[1]
	item.Price = 100.0
	f.menu.items[1] = item

	stored, err := f.service.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 16.0, f.service.OrderTotal(stored))
}

func TestSubmitIdempotencyKeyDeduplicates(t *testing.T) {
	f := newFixture(false)
	req := SubmitRequest{
		TableNumber:    5,
		Lines:          []SubmitLine{{ItemID: 1, Quantity: 1}},
		IdempotencyKey: "attempt-1",
	}

	first, err := f.service.Submit(req)
	require.NoError(t, err)
	second, err := f.service.Submit(req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.orders.createCalls, "a retried submission must not create a second order")
}

func TestSubmitRequireKnownTable(t *testing.T) {
	f := newFixture(true)

	_, err := f.service.Submit(SubmitRequest{
		TableNumber: 9,
		Lines:       []SubmitLine{{ItemID: 1, Quantity: 1}},
	})
	assert.Equal(t, validation.ErrInvalidTableNumber, err)

	_, err = f.service.Submit(SubmitRequest{
		TableNumber: 5,
		Lines:       []SubmitLine{{ItemID: 1, Quantity: 1}},
	})
	assert.NoError(t, err)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newFixture(false)
	f.mustSubmit(t, 5)

	err := f.service.UpdateStatus(99, models.OrderPreparing)

	assert.ErrorAs(t, err, &NotFoundError{})
	// The rest of the collection is untouched.
	orders, _ := f.service.GetAllOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderPending, orders[0].Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newFixture(false)
	order := f.mustSubmit(t, 5)

	err := f.service.UpdateStatus(order.ID, "cancelled")
	assert.ErrorAs(t, err, &validation.ValidationError{})
}

func TestUpdateStatusIsPermissive(t *testing.T) {
	f := newFixture(false)
	order := f.mustSubmit(t, 5)

	// Skipping preparing and moving backward are both allowed; staff drive
	// every transition explicitly.
	require.NoError(t, f.service.UpdateStatus(order.ID, models.OrderServed))
	require.NoError(t, f.service.UpdateStatus(order.ID, models.OrderPending))
	require.NoError(t, f.service.UpdateStatus(order.ID, models.OrderPreparing))

	stored, err := f.service.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPreparing, stored.Status)
}

func TestOrdersForTableFiltersAndPreservesOrder(t *testing.T) {
	f := newFixture(false)
	first := f.mustSubmit(t, 5)
	f.mustSubmit(t, 7)
	second := f.mustSubmit(t, 5)

	orders, err := f.service.OrdersForTable(5)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
}

func TestOrdersCreatedOnUsesCalendarDayBounds(t *testing.T) {
	f := newFixture(false)
	today := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	f.orders.orders = []models.Order{
		{ID: 1, TableNumber: 5, CreatedAt: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)},
		{ID: 2, TableNumber: 5, CreatedAt: time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)},
		{ID: 3, TableNumber: 5, CreatedAt: time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)},
		{ID: 4, TableNumber: 5, CreatedAt: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)},
	}

	orders, err := f.service.OrdersCreatedOn(today)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, uint(1), orders[0].ID)
	assert.Equal(t, uint(2), orders[1].ID)
}

func TestCountByStatus(t *testing.T) {
	f := newFixture(false)
	f.mustSubmit(t, 5)
	served := f.mustSubmit(t, 5)
	f.mustSubmit(t, 7)
	require.NoError(t, f.service.UpdateStatus(served.ID, models.OrderServed))

	pending, err := f.service.CountByStatus(models.OrderPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)

	servedCount, err := f.service.CountByStatus(models.OrderServed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), servedCount)

	_, err = f.service.CountByStatus("bogus")
	assert.ErrorAs(t, err, &validation.ValidationError{})
}

func TestDashboard(t *testing.T) {
	f := newFixture(false)
	for i := 0; i < 7; i++ {
		f.mustSubmit(t, 5)
	}

	stats, err := f.service.Dashboard()

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalMenuItems)
	assert.Equal(t, int64(1), stats.TotalTables)
	assert.Equal(t, int64(7), stats.PendingOrders)
	assert.Equal(t, int64(7), stats.TodayOrders)
	require.Len(t, stats.RecentOrders, 5)
	// Newest first.
	assert.Equal(t, uint(7), stats.RecentOrders[0].ID)
}

func (f *fixture) mustSubmit(t *testing.T, tableNumber int) *models.Order {
	t.Helper()
	order, err := f.service.Submit(SubmitRequest{
		TableNumber: tableNumber,
		Lines:       []SubmitLine{{ItemID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	return order
}
