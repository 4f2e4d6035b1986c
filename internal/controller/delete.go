package controller

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/inventory/internal/errors"
)

// ErrNoPendingDelete is returned by ConfirmDelete when no delete was requested.
var ErrNoPendingDelete = errors.New("no delete pending confirmation")

// RequestDelete marks the loaded product with id as pending deletion.
// Nothing is removed until ConfirmDelete.
func (c *Controller) RequestDelete(id int64) error {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	product, ok := c.find(id)
	if ok {
		c.pendingDelete = &product
	}
	c.mu.Unlock()

	if !ok {
		c.logger.Warn("Product to delete not found", "ID", id)
		c.notify(LevelError, "", msgNotFound)
		return fmt.Errorf("failed to request delete of product with ID %d: %w", id, perrors.ErrProductNotFound)
	}
	return nil
}

// CancelDelete drops the pending deletion, if any.
func (c *Controller) CancelDelete() {
	c.clearPendingDelete()
}

// ConfirmDelete deletes the pending product and reloads the list. On a storage
// failure the confirmation stays pending and the list keeps its last snapshot, so
// the user can retry or cancel.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	pending := c.pendingDelete
	c.mu.Unlock()

	if pending == nil {
		return ErrNoPendingDelete
	}

	if err := c.store.Delete(ctx, pending.ID); err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			c.logger.WarnContext(ctx, "Product not found for deletion", "ID", pending.ID)
			c.clearPendingDelete()
			c.notify(LevelError, "", msgNotFound)
			_ = c.reload(ctx)
			return fmt.Errorf("failed to delete product with ID %d: %w", pending.ID, err)
		}
		c.logger.ErrorContext(ctx, "Error deleting product", "ID", pending.ID, "error", err)
		c.notify(LevelError, "", msgDeleteFailed)
		return fmt.Errorf("failed to delete product with ID %d: %w", pending.ID, err)
	}

	c.logger.InfoContext(ctx, "Product deleted successfully", "ID", pending.ID)
	c.mu.Lock()
	c.pendingDelete = nil
	if c.form.EditingID != nil && *c.form.EditingID == pending.ID {
		c.form = Form{}
	}
	c.mu.Unlock()
	c.notify(LevelInfo, "", msgDeleted)
	return c.reload(ctx)
}

func (c *Controller) clearPendingDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = nil
}
