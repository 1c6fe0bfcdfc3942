package kiosk

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tastyhub/ordering-service/internal/client"
	"github.com/tastyhub/ordering-service/internal/models"
)

// ViewMode selects which of the two application surfaces is active.
type ViewMode string

const (
	ModeCustomer ViewMode = "CUSTOMER"
	ModeAdmin    ViewMode = "ADMIN"
)

// noticeTTL is how long a transient notice stays visible.
const noticeTTL = 3 * time.Second

// Backend is the slice of the REST client the controller needs. It is an
// interface so tests can drive the controller against a fake.
type Backend interface {
	Menu(ctx context.Context) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, req models.MenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	ToggleMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	Orders(ctx context.Context) ([]models.Order, error)
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	Settings(ctx context.Context) (*models.StoreSettings, error)
	UpdateSettings(ctx context.Context, settings models.StoreSettings) (*models.StoreSettings, error)
}

// CredentialVerifier checks admin credentials. The production implementation
// logs in against the backend; tests substitute their own.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}

// Notice is a short-lived message shown to the user.
type Notice struct {
	Text    string
	Expires time.Time
}

// Checkout is the customer detail draft filled in before submitting.
type Checkout struct {
	Name  string
	Phone string
	Note  string
}

// Controller holds the full client-side application state and mediates every
// user action against it. All methods are safe for concurrent use; the
// poller and the frontend loop share one instance.
type Controller struct {
	backend  Backend
	verifier CredentialVerifier
	now      func() time.Time

	mu        sync.Mutex
	menu      []models.MenuItem
	orders    []models.Order
	settings  models.StoreSettings
	cart      Cart
	checkout  Checkout
	mode      ViewMode
	admin     bool
	connected bool
	loaded    bool
	notices   []Notice

	// refresh fencing: responses from an older refresh must not overwrite
	// state written by a newer one.
	refreshSeq uint64
	appliedSeq uint64
}

// NewController creates a controller in customer mode. State is empty until
// the first Refresh.
func NewController(backend Backend, verifier CredentialVerifier) *Controller {
	return &Controller{
		backend:   backend,
		verifier:  verifier,
		now:       time.Now,
		mode:      ModeCustomer,
		settings:  models.DefaultSettings(),
		connected: true,
	}
}

// Refresh fetches the catalog, the order ledger and the store settings and
// replaces the local copies. A refresh that returns after a newer one has
// already applied is discarded. Connectivity failures flip the controller
// into the disconnected state; any other error leaves the old state in
// place.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.refreshSeq++
	seq := c.refreshSeq
	c.mu.Unlock()

	menu, err := c.backend.Menu(ctx)
	if err != nil {
		return c.refreshFailed(err)
	}
	orders, err := c.backend.Orders(ctx)
	if err != nil {
		return c.refreshFailed(err)
	}
	settings, err := c.backend.Settings(ctx)
	if err != nil {
		return c.refreshFailed(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.appliedSeq {
		return nil
	}
	c.appliedSeq = seq
	c.menu = menu
	c.orders = orders
	c.settings = *settings
	c.connected = true
	c.loaded = true
	return nil
}

func (c *Controller) refreshFailed(err error) error {
	if client.IsUnreachable(err) {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}
	return err
}

// Connected reports whether the last refresh reached the backend.
func (c *Controller) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Loaded reports whether at least one refresh has completed.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Mode returns the active surface.
func (c *Controller) Mode() ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Menu returns a copy of the catalog.
func (c *Controller) Menu() []models.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.MenuItem, len(c.menu))
	copy(out, c.menu)
	return out
}

// MenuByCategory returns the catalog items of one category, in server order.
func (c *Controller) MenuByCategory(cat models.Category) []models.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.MenuItem
	for _, it := range c.menu {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// Orders returns a copy of the order ledger, newest first.
func (c *Controller) Orders() []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

// PendingOrders counts the orders still waiting for the kitchen.
func (c *Controller) PendingOrders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, o := range c.orders {
		if o.Status == models.OrderStatusPending {
			n++
		}
	}
	return n
}

// Settings returns the store settings as last seen.
func (c *Controller) Settings() models.StoreSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// ItemStatusLabel returns the badge shown on a catalog tile, or an empty
// string when the item is orderable.
func (c *Controller) ItemStatusLabel(item models.MenuItem) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.settings.IsOpen {
		return "Store Closed"
	}
	if !item.IsAvailable {
		return "Sold Out"
	}
	return ""
}

// AddToCart puts one unit of the catalog item with the given ID into the
// cart. Nothing happens when the store is closed, the item is sold out, or
// the ID is unknown; a notice explains why.
func (c *Controller) AddToCart(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settings.IsOpen {
		c.pushNotice("The store is closed right now.")
		return
	}
	for _, it := range c.menu {
		if it.ID != itemID {
			continue
		}
		if !it.IsAvailable {
			c.pushNotice(it.Name + " is sold out.")
			return
		}
		c.cart.Add(it)
		c.pushNotice(it.Name + " added to cart.")
		return
	}
}

// AdjustCart changes a cart entry's quantity by delta; pass RemoveEntirely
// to drop the entry.
func (c *Controller) AdjustCart(itemID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Adjust(itemID, delta)
}

// CartItems returns the cart contents in insertion order.
func (c *Controller) CartItems() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Items()
}

// CartCount returns the unit count across the cart.
func (c *Controller) CartCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Count()
}

// CartTotal returns the cart total in integer currency units.
func (c *Controller) CartTotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Total()
}

// SetCheckout stores the customer detail draft.
func (c *Controller) SetCheckout(name, phone, note string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkout = Checkout{Name: name, Phone: phone, Note: note}
}

// CheckoutDraft returns the current customer detail draft.
func (c *Controller) CheckoutDraft() Checkout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkout
}

// CanSubmit reports whether the cart and the checkout draft together form a
// submittable order.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *Controller) canSubmitLocked() bool {
	return !c.cart.Empty() &&
		strings.TrimSpace(c.checkout.Name) != "" &&
		strings.TrimSpace(c.checkout.Phone) != ""
}

// SubmitOrder sends the cart as a new order. On success the cart and the
// checkout draft are cleared and the ledger is refetched so the new order
// shows up immediately; on failure everything stays so the customer can
// retry.
func (c *Controller) SubmitOrder(ctx context.Context) (*models.Order, error) {
	c.mu.Lock()
	req := models.OrderRequest{
		Items:         c.cart.Lines(),
		TotalAmount:   c.cart.Total(),
		CustomerName:  strings.TrimSpace(c.checkout.Name),
		CustomerPhone: strings.TrimSpace(c.checkout.Phone),
		CustomerNote:  strings.TrimSpace(c.checkout.Note),
	}
	c.mu.Unlock()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := c.backend.CreateOrder(ctx, req)
	if err != nil {
		return nil, c.refreshFailed(err)
	}

	c.mu.Lock()
	c.cart.Clear()
	c.checkout = Checkout{}
	c.pushNotice("Order placed. Thank you!")
	c.mu.Unlock()

	if orders, err := c.backend.Orders(ctx); err == nil {
		c.mu.Lock()
		c.orders = orders
		c.mu.Unlock()
	}
	return order, nil
}

// AdvanceOrder moves an order to a new status. Transitions the lifecycle
// does not allow are rejected locally without a request; on success the
// order is patched in place rather than refetching the whole ledger.
func (c *Controller) AdvanceOrder(ctx context.Context, orderID string, to models.OrderStatus) error {
	if !to.Valid() {
		return models.ErrOrderStatusInvalid
	}

	c.mu.Lock()
	var from models.OrderStatus
	found := false
	for _, o := range c.orders {
		if o.ID == orderID {
			from = o.Status
			found = true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return models.ErrOrderStatusInvalid
	}
	if from.Terminal() {
		return models.ErrOrderStatusTerminal
	}
	if !models.CanTransition(from, to) {
		return models.ErrOrderStatusInvalid
	}

	updated, err := c.backend.UpdateOrderStatus(ctx, orderID, to)
	if err != nil {
		return c.refreshFailed(err)
	}

	c.mu.Lock()
	for i := range c.orders {
		if c.orders[i].ID == orderID {
			c.orders[i] = *updated
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// AddMenuItem creates a catalog item and refetches the catalog.
func (c *Controller) AddMenuItem(ctx context.Context, req models.MenuItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := c.backend.CreateMenuItem(ctx, req); err != nil {
		c.notify("Could not add " + req.Name + ".")
		return c.refreshFailed(err)
	}
	c.notify(req.Name + " added to the menu.")
	return c.refetchMenu(ctx)
}

// UpdateMenuItem replaces a catalog item and refetches the catalog.
func (c *Controller) UpdateMenuItem(ctx context.Context, id string, req models.MenuItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := c.backend.UpdateMenuItem(ctx, id, req); err != nil {
		c.notify("Could not update " + req.Name + ".")
		return c.refreshFailed(err)
	}
	c.notify(req.Name + " updated.")
	return c.refetchMenu(ctx)
}

// DeleteMenuItem removes a catalog item after the confirm callback agrees.
// A declined confirmation sends no request and is not an error.
func (c *Controller) DeleteMenuItem(ctx context.Context, id string, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}
	if err := c.backend.DeleteMenuItem(ctx, id); err != nil {
		c.notify("Could not delete the menu item.")
		return c.refreshFailed(err)
	}
	c.notify("Menu item deleted.")
	return c.refetchMenu(ctx)
}

// ToggleMenuItem flips an item's availability and patches the local catalog
// with the server's answer.
func (c *Controller) ToggleMenuItem(ctx context.Context, id string) error {
	updated, err := c.backend.ToggleMenuItem(ctx, id)
	if err != nil {
		c.notify("Could not change availability.")
		return c.refreshFailed(err)
	}
	c.mu.Lock()
	for i := range c.menu {
		if c.menu[i].ID == id {
			c.menu[i] = *updated
		}
	}
	if updated.IsAvailable {
		c.pushNotice(updated.Name + " is available again.")
	} else {
		c.pushNotice(updated.Name + " marked as sold out.")
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller) refetchMenu(ctx context.Context) error {
	menu, err := c.backend.Menu(ctx)
	if err != nil {
		return c.refreshFailed(err)
	}
	c.mu.Lock()
	c.menu = menu
	c.mu.Unlock()
	return nil
}

// SaveSettings persists the store settings and keeps the server's answer.
func (c *Controller) SaveSettings(ctx context.Context, settings models.StoreSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	saved, err := c.backend.UpdateSettings(ctx, settings)
	if err != nil {
		return c.refreshFailed(err)
	}
	c.mu.Lock()
	c.settings = *saved
	c.mu.Unlock()
	return nil
}

// Login verifies admin credentials and switches to the admin surface.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if err := c.verifier.Verify(ctx, username, password); err != nil {
		return err
	}
	c.mu.Lock()
	c.admin = true
	c.mode = ModeAdmin
	c.mu.Unlock()
	return nil
}

// Logout returns to the customer surface.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.admin = false
	c.mode = ModeCustomer
	c.mu.Unlock()
}

// IsAdmin reports whether an admin session is active.
func (c *Controller) IsAdmin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admin
}

// Notices returns the notices that have not yet expired, pruning the rest.
func (c *Controller) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	live := c.notices[:0]
	for _, n := range c.notices {
		if n.Expires.After(now) {
			live = append(live, n)
		}
	}
	c.notices = live
	out := make([]Notice, len(live))
	copy(out, live)
	return out
}

func (c *Controller) pushNotice(text string) {
	c.notices = append(c.notices, Notice{Text: text, Expires: c.now().Add(noticeTTL)})
}

func (c *Controller) notify(text string) {
	c.mu.Lock()
	c.pushNotice(text)
	c.mu.Unlock()
}
