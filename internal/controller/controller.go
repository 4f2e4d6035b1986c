// Package controller orchestrates the inventory screen: it loads products from the
// store, owns the form and view state, and runs the save, edit and delete flows.
//
// The loaded items are a snapshot. After any mutation the controller reloads the
// whole list from the store instead of patching the snapshot.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abgdnv/inventory/internal/store"
	"github.com/abgdnv/inventory/internal/view"
)

const (
	msgInitFailed   = "Could not open the inventory. Please restart the app."
	msgLoadFailed   = "Could not load products. Please try again."
	msgSaveFailed   = "Could not save the product. Please try again."
	msgDeleteFailed = "Could not delete the product. Please try again."
	msgNotFound     = "This product no longer exists."
	msgSaved        = "Product saved."
	msgUpdated      = "Product updated."
	msgDeleted      = "Product deleted."
)

// Controller is the application controller for the inventory screen.
// Operations are serialized; state reads (Screen, Form, ...) never wait for store I/O.
type Controller struct {
	store  store.ProductStore
	logger *slog.Logger

	// op serializes user-initiated operations.
	op sync.Mutex

	// mu guards the fields below.
	mu            sync.Mutex
	items         []store.Product
	form          Form
	search        string
	sort          view.SortMode
	loading       bool
	pendingDelete *store.Product
	notices       []Notice
}

// New creates a controller over s. The controller starts in the loading state
// until Start completes.
func New(s store.ProductStore, logger *slog.Logger) *Controller {
	return &Controller{
		store:   s,
		logger:  logger.With("component", "controller"),
		items:   []store.Product{},
		sort:    view.SortRecent,
		loading: true,
	}
}

// Start initializes the store schema and loads all products.
// The loading flag is cleared when Start returns, whether it succeeded or not.
func (c *Controller) Start(ctx context.Context) error {
	c.op.Lock()
	defer c.op.Unlock()

	c.setLoading(true)
	defer c.setLoading(false)

	if err := c.store.Initialize(ctx); err != nil {
		c.logger.ErrorContext(ctx, "Error initializing store", "error", err)
		c.notify(LevelError, "", msgInitFailed)
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return c.reload(ctx)
}

// Reload replaces the loaded items with a fresh read of the store.
// On failure the previous snapshot is kept.
func (c *Controller) Reload(ctx context.Context) error {
	c.op.Lock()
	defer c.op.Unlock()
	return c.reload(ctx)
}

// reload must be called with op held.
func (c *Controller) reload(ctx context.Context) error {
	records, err := c.store.ListAll(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Error loading products", "error", err)
		c.notify(LevelError, "", msgLoadFailed)
		return fmt.Errorf("failed to load products: %w", err)
	}
	items := store.DecodeAll(records)

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "Products loaded", "count", len(items))
	return nil
}

// SetSearch sets the search query used to filter the visible list.
func (c *Controller) SetSearch(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = query
}

// CycleSort advances the sort mode by one step and returns the new mode.
func (c *Controller) CycleSort() view.SortMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = c.sort.Next()
	return c.sort
}

// SetSort selects a sort mode directly.
func (c *Controller) SetSort(mode view.SortMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = mode
}

// Loading reports whether the initial load is still running.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

// Items returns a copy of the loaded snapshot in storage order.
func (c *Controller) Items() []store.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]store.Product(nil), c.items...)
}

// Visible returns the filtered and sorted items.
func (c *Controller) Visible() []store.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return view.DeriveVisibleItems(c.items, c.search, c.sort)
}

// Totals returns the summary of all loaded items.
func (c *Controller) Totals() view.Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return view.ComputeTotals(c.items)
}

// Screen is a consistent snapshot of everything the presentation layer renders.
type Screen struct {
	Items         []store.Product `json:"items"`
	Totals        view.Totals     `json:"totals"`
	Loading       bool            `json:"loading"`
	Form          Form            `json:"form"`
	Search        string          `json:"search"`
	Sort          view.SortMode   `json:"sort"`
	PendingDelete *store.Product  `json:"pendingDelete,omitempty"`
}

// Screen returns the current screen state.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	screen := Screen{
		Items:   view.DeriveVisibleItems(c.items, c.search, c.sort),
		Totals:  view.ComputeTotals(c.items),
		Loading: c.loading,
		Form:    c.form.clone(),
		Search:  c.search,
		Sort:    c.sort,
	}
	if c.pendingDelete != nil {
		p := *c.pendingDelete
		screen.PendingDelete = &p
	}
	return screen
}

// find returns the loaded product with id. Must be called with mu held.
func (c *Controller) find(id int64) (store.Product, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return store.Product{}, false
}
