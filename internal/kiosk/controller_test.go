package kiosk

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastyhub/ordering-service/internal/client"
	"github.com/tastyhub/ordering-service/internal/models"
)

// fakeBackend is an in-memory Backend that records calls and can be forced
// to fail.
type fakeBackend struct {
	mu       sync.Mutex
	menu     []models.MenuItem
	orders   []models.Order
	settings models.StoreSettings
	err      error

	menuHook func(call int) ([]models.MenuItem, error)
	menuCall int

	statusHook func(call int, id string, status models.OrderStatus) (*models.Order, error)
	statusCall int

	createOrderCalls  int
	updateStatusCalls int
	updateItemCalls   int
	deleteCalls       int
	ordersCalls       int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		menu:     []models.MenuItem{burger, tea},
		settings: models.StoreSettings{Name: "Tasty Ordering", IsOpen: true},
	}
}

func (f *fakeBackend) Menu(ctx context.Context) ([]models.MenuItem, error) {
	f.mu.Lock()
	hook := f.menuHook
	call := f.menuCall
	f.menuCall++
	f.mu.Unlock()
	if hook != nil {
		return hook(call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.MenuItem(nil), f.menu...), nil
}

func (f *fakeBackend) Orders(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ordersCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeBackend) Settings(ctx context.Context) (*models.StoreSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s := f.settings
	return &s, nil
}

func (f *fakeBackend) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createOrderCalls++
	if f.err != nil {
		return nil, f.err
	}
	order := models.Order{
		ID:            fmt.Sprintf("o%d", len(f.orders)+1),
		Lines:         req.Items,
		TotalAmount:   req.TotalAmount,
		Status:        models.OrderStatusPending,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerNote:  req.CustomerNote,
	}
	f.orders = append([]models.Order{order}, f.orders...)
	return &order, nil
}

func (f *fakeBackend) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	f.mu.Lock()
	hook := f.statusHook
	call := f.statusCall
	f.statusCall++
	f.mu.Unlock()
	if hook != nil {
		return hook(call, id, status)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateStatusCalls++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Body: "not found"}
}

func (f *fakeBackend) CreateMenuItem(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	item := req.Item()
	item.ID = fmt.Sprintf("m%d", len(f.menu)+1)
	f.menu = append(f.menu, item)
	return &item, nil
}

func (f *fakeBackend) UpdateMenuItem(ctx context.Context, id string, req models.MenuItemRequest) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateItemCalls++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.menu {
		if f.menu[i].ID == id {
			item := req.Item()
			item.ID = id
			f.menu[i] = item
			return &item, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Body: "not found"}
}

func (f *fakeBackend) DeleteMenuItem(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.err != nil {
		return f.err
	}
	for i := range f.menu {
		if f.menu[i].ID == id {
			f.menu = append(f.menu[:i], f.menu[i+1:]...)
			return nil
		}
	}
	return &client.APIError{StatusCode: 404, Body: "not found"}
}

func (f *fakeBackend) ToggleMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.menu {
		if f.menu[i].ID == id {
			f.menu[i].IsAvailable = !f.menu[i].IsAvailable
			item := f.menu[i]
			return &item, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Body: "not found"}
}

func (f *fakeBackend) UpdateSettings(ctx context.Context, settings models.StoreSettings) (*models.StoreSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.settings = settings
	s := settings
	return &s, nil
}

type staticVerifier struct{ err error }

func (v staticVerifier) Verify(ctx context.Context, username, password string) error { return v.err }

func newTestController(t *testing.T, backend *fakeBackend) *Controller {
	t.Helper()
	c := NewController(backend, staticVerifier{})
	require.NoError(t, c.Refresh(context.Background()))
	return c
}

func TestAddToCartWhileClosed(t *testing.T) {
	backend := newFakeBackend()
	backend.settings.IsOpen = false
	c := newTestController(t, backend)

	c.AddToCart("m1")

	assert.Equal(t, 0, c.CartCount())
	notices := c.Notices()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Text, "closed")
}

func TestAddToCartSoldOut(t *testing.T) {
	backend := newFakeBackend()
	backend.menu[0].IsAvailable = false
	c := newTestController(t, backend)

	c.AddToCart("m1")

	assert.Equal(t, 0, c.CartCount())
	notices := c.Notices()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Text, "sold out")
}

func TestItemStatusLabel(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	assert.Equal(t, "", c.ItemStatusLabel(burger))

	soldOut := burger
	soldOut.IsAvailable = false
	assert.Equal(t, "Sold Out", c.ItemStatusLabel(soldOut))

	closed := c.Settings()
	closed.IsOpen = false
	require.NoError(t, c.SaveSettings(context.Background(), closed))
	assert.Equal(t, "Store Closed", c.ItemStatusLabel(burger))
}

func TestCanSubmitGating(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	assert.False(t, c.CanSubmit(), "empty cart")

	c.AddToCart("m1")
	assert.False(t, c.CanSubmit(), "no customer details")

	c.SetCheckout("   ", "0400123456", "")
	assert.False(t, c.CanSubmit(), "blank name")

	c.SetCheckout("Dana", "0400123456", "")
	assert.True(t, c.CanSubmit())
}

func TestSubmitOrderSuccess(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	c.AddToCart("m1")
	c.AddToCart("m1")
	c.AddToCart("m2")
	c.SetCheckout("Dana", "0400123456", "no onions")

	order, err := c.SubmitOrder(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 250, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, []models.OrderLine{
		{Name: "Burger", Price: 95, Quantity: 2},
		{Name: "Iced Tea", Price: 60, Quantity: 1},
	}, order.Lines)

	assert.Equal(t, 0, c.CartCount(), "cart cleared after submit")
	assert.Equal(t, Checkout{}, c.CheckoutDraft())
	require.Len(t, c.Orders(), 1, "ledger refetched after submit")
	assert.Equal(t, 1, c.PendingOrders())
}

func TestSubmitOrderFailureKeepsCart(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	c.AddToCart("m1")
	c.SetCheckout("Dana", "0400123456", "")

	backend.mu.Lock()
	backend.err = &client.APIError{StatusCode: 500, Body: "boom"}
	backend.mu.Unlock()

	_, err := c.SubmitOrder(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1, c.CartCount(), "cart kept so the customer can retry")
	assert.Equal(t, "Dana", c.CheckoutDraft().Name)
}

func TestSubmitOrderRejectsIncompleteDraft(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	c.AddToCart("m1")

	_, err := c.SubmitOrder(context.Background())
	assert.ErrorIs(t, err, models.ErrOrderNameRequired)
	assert.Equal(t, 0, backend.createOrderCalls, "no request for an invalid draft")
}

func TestAdvanceOrder(t *testing.T) {
	backend := newFakeBackend()
	backend.orders = []models.Order{
		{ID: "o1", Status: models.OrderStatusPending, TotalAmount: 95},
	}
	c := newTestController(t, backend)

	require.NoError(t, c.AdvanceOrder(context.Background(), "o1", models.OrderStatusCooking))
	assert.Equal(t, models.OrderStatusCooking, c.Orders()[0].Status, "patched in place")
	assert.Equal(t, 1, backend.ordersCalls, "no ledger refetch on status change")
}

func TestAdvanceOrderRejectsTerminal(t *testing.T) {
	backend := newFakeBackend()
	backend.orders = []models.Order{
		{ID: "o1", Status: models.OrderStatusCompleted, TotalAmount: 95},
	}
	c := newTestController(t, backend)

	err := c.AdvanceOrder(context.Background(), "o1", models.OrderStatusCancelled)
	assert.ErrorIs(t, err, models.ErrOrderStatusTerminal)
	assert.Equal(t, 0, backend.updateStatusCalls, "rejected locally, no request")
}

func TestAdvanceOrderRejectsIllegalTransition(t *testing.T) {
	backend := newFakeBackend()
	backend.orders = []models.Order{
		{ID: "o1", Status: models.OrderStatusCooking, TotalAmount: 95},
	}
	c := newTestController(t, backend)

	err := c.AdvanceOrder(context.Background(), "o1", models.OrderStatusPending)
	assert.ErrorIs(t, err, models.ErrOrderStatusInvalid)
	assert.Equal(t, 0, backend.updateStatusCalls)
}

func TestDeleteMenuItemUnconfirmed(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	err := c.DeleteMenuItem(context.Background(), "m1", func() bool { return false })
	require.NoError(t, err)
	assert.Equal(t, 0, backend.deleteCalls, "declined confirmation sends no request")
	assert.Len(t, c.Menu(), 2)
}

func TestDeleteMenuItemConfirmed(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	err := c.DeleteMenuItem(context.Background(), "m1", func() bool { return true })
	require.NoError(t, err)
	assert.Equal(t, 1, backend.deleteCalls)
	assert.Len(t, c.Menu(), 1)
}

func TestToggleMenuItemPatchesCatalog(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	require.NoError(t, c.ToggleMenuItem(context.Background(), "m1"))
	assert.False(t, c.Menu()[0].IsAvailable)
}

func TestAddMenuItemValidatesBeforeRequest(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	err := c.AddMenuItem(context.Background(), models.MenuItemRequest{Name: "Fries"})
	assert.ErrorIs(t, err, models.ErrItemDescriptionRequired)
	assert.Len(t, c.Menu(), 2)
}

func TestUpdateMenuItemReplacesAndRefetches(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	req := models.MenuItemRequest{
		Name:        "Double Burger",
		Description: "Two beef patties",
		Price:       140,
		Category:    models.CategoryMain,
		IsAvailable: true,
	}
	require.NoError(t, c.UpdateMenuItem(context.Background(), "m1", req))

	assert.Equal(t, 1, backend.updateItemCalls)
	menu := c.Menu()
	require.Len(t, menu, 2, "full catalog refetched after an edit")
	assert.Equal(t, "Double Burger", menu[0].Name)
	assert.Equal(t, 140, menu[0].Price)

	notices := c.Notices()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Text, "updated")
}

func TestUpdateMenuItemValidatesBeforeRequest(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	req := models.MenuItemRequest{
		Name:        "Free Burger",
		Description: "costs nothing",
		Price:       0,
		Category:    models.CategoryMain,
	}
	err := c.UpdateMenuItem(context.Background(), "m1", req)
	assert.ErrorIs(t, err, models.ErrItemPriceInvalid)
	assert.Equal(t, 0, backend.updateItemCalls, "invalid edit is never sent")
	assert.Equal(t, "Burger", c.Menu()[0].Name)
}

func TestCatalogMutationNotices(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	req := models.MenuItemRequest{
		Name:        "Fries",
		Description: "Crispy shoestring fries",
		Price:       45,
		Category:    models.CategorySnack,
		IsAvailable: true,
	}
	require.NoError(t, c.AddMenuItem(context.Background(), req))
	require.NoError(t, c.ToggleMenuItem(context.Background(), "m1"))
	require.NoError(t, c.DeleteMenuItem(context.Background(), "m2", nil))

	var texts []string
	for _, n := range c.Notices() {
		texts = append(texts, n.Text)
	}
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "Fries added")
	assert.Contains(t, texts[1], "sold out")
	assert.Contains(t, texts[2], "deleted")
}

func TestConcurrentStatusUpdatesLastResponseWins(t *testing.T) {
	backend := newFakeBackend()
	backend.orders = []models.Order{
		{ID: "o1", Status: models.OrderStatusPending, TotalAmount: 95},
	}
	c := newTestController(t, backend)

	release := make(chan struct{})
	started := make(chan struct{})
	backend.statusHook = func(call int, id string, status models.OrderStatus) (*models.Order, error) {
		if call == 0 {
			close(started)
			<-release
		}
		return &models.Order{ID: id, Status: status, TotalAmount: 95}, nil
	}

	done := make(chan error, 1)
	go func() { done <- c.AdvanceOrder(context.Background(), "o1", models.OrderStatusCooking) }()
	<-started

	// a second update resolves while the first is still in flight
	require.NoError(t, c.AdvanceOrder(context.Background(), "o1", models.OrderStatusCancelled))
	assert.Equal(t, models.OrderStatusCancelled, c.Orders()[0].Status)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, models.OrderStatusCooking, c.Orders()[0].Status,
		"the last response to land is what stays displayed")
}

func TestDisconnectedOnUnreachable(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)
	assert.True(t, c.Connected())

	backend.mu.Lock()
	backend.err = fmt.Errorf("%w: connection refused", client.ErrUnreachable)
	backend.mu.Unlock()

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.False(t, c.Connected())
	assert.Len(t, c.Menu(), 2, "stale state kept while offline")

	backend.mu.Lock()
	backend.err = nil
	backend.mu.Unlock()

	require.NoError(t, c.Refresh(context.Background()))
	assert.True(t, c.Connected())
}

func TestApplicationErrorDoesNotDisconnect(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	backend.mu.Lock()
	backend.err = &client.APIError{StatusCode: 500, Body: "boom"}
	backend.mu.Unlock()

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, c.Connected())
}

func TestStaleRefreshDiscarded(t *testing.T) {
	backend := newFakeBackend()
	c := NewController(backend, staticVerifier{})

	oldMenu := []models.MenuItem{burger}
	newMenu := []models.MenuItem{burger, tea}

	release := make(chan struct{})
	started := make(chan struct{})
	backend.menuHook = func(call int) ([]models.MenuItem, error) {
		if call == 0 {
			close(started)
			<-release
			return oldMenu, nil
		}
		return newMenu, nil
	}

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()
	<-started

	// a newer refresh completes while the first is still in flight
	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, c.Menu(), 2)

	close(release)
	require.NoError(t, <-done)

	assert.Len(t, c.Menu(), 2, "stale response must not overwrite newer state")
}

func TestLoginSwitchesMode(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	assert.Equal(t, ModeCustomer, c.Mode())
	require.NoError(t, c.Login(context.Background(), "admin", "secret"))
	assert.True(t, c.IsAdmin())
	assert.Equal(t, ModeAdmin, c.Mode())

	c.Logout()
	assert.False(t, c.IsAdmin())
	assert.Equal(t, ModeCustomer, c.Mode())
}

func TestLoginFailureStaysCustomer(t *testing.T) {
	backend := newFakeBackend()
	c := NewController(backend, staticVerifier{err: fmt.Errorf("bad credentials")})
	require.NoError(t, c.Refresh(context.Background()))

	assert.Error(t, c.Login(context.Background(), "admin", "wrong"))
	assert.False(t, c.IsAdmin())
}

func TestNoticesExpire(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(t, backend)

	now := time.Now()
	c.now = func() time.Time { return now }

	c.AddToCart("m1")
	require.Len(t, c.Notices(), 1)

	now = now.Add(noticeTTL + time.Millisecond)
	assert.Empty(t, c.Notices())
}
