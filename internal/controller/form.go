package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/input"
)

// Form is the product form. EditingID is set while an existing product is edited,
// which switches Save from insert to update.
type Form struct {
	Name         string `json:"name"`
	PriceText    string `json:"price"`
	QuantityText string `json:"quantity"`
	EditingID    *int64 `json:"editingId,omitempty"`
}

// Editing reports whether Save will update an existing product.
func (f Form) Editing() bool { return f.EditingID != nil }

func (f Form) clone() Form {
	if f.EditingID != nil {
		id := *f.EditingID
		f.EditingID = &id
	}
	return f
}

// SetName sets the draft name as typed.
func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Name = name
}

// SetPriceText masks and stores the draft price, returning the masked text.
func (c *Controller) SetPriceText(text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.PriceText = input.NormalizePrice(text).Display
	return c.form.PriceText
}

// SetQuantityText masks and stores the draft quantity, returning the masked text.
func (c *Controller) SetQuantityText(text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.QuantityText = input.NormalizeQuantity(text)
	return c.form.QuantityText
}

// Form returns the current form state.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.clone()
}

// ClearForm empties the form and leaves edit mode.
func (c *Controller) ClearForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = Form{}
}

// StartEdit copies the loaded product with id into the form and enters edit mode.
// Returns ErrProductNotFound if id is not in the loaded list.
func (c *Controller) StartEdit(id int64) error {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	product, ok := c.find(id)
	if ok {
		c.form = Form{
			Name:         product.Name,
			PriceText:    input.NormalizePrice(strconv.FormatFloat(product.Price, 'f', -1, 64)).Display,
			QuantityText: strconv.FormatInt(product.Quantity, 10),
			EditingID:    &product.ID,
		}
	}
	c.mu.Unlock()

	if !ok {
		c.logger.Warn("Product to edit not found", "ID", id)
		c.notify(LevelError, "", msgNotFound)
		return fmt.Errorf("failed to edit product with ID %d: %w", id, perrors.ErrProductNotFound)
	}
	c.logger.Debug("Editing product", "ID", id)
	return nil
}

// Save validates the form, then inserts a new product or updates the one being
// edited. On success the form is cleared and the list reloaded. On any failure the
// form is left untouched so the user can retry. updated reports whether the write
// was an update of the edited product rather than an insert.
func (c *Controller) Save(ctx context.Context) (updated bool, err error) {
	c.op.Lock()
	defer c.op.Unlock()

	form := c.Form()
	updated = form.Editing()
	sub, err := input.Validate(input.Draft{
		Name:         form.Name,
		PriceText:    form.PriceText,
		QuantityText: form.QuantityText,
	})
	if err != nil {
		if ve, ok := perrors.AsValidation(err); ok {
			c.logger.WarnContext(ctx, "Validation errors occurred", "errors", ve.Fields())
			c.notifyValidation(ve)
			return updated, err
		}
		c.logger.ErrorContext(ctx, "Error validating form", "error", err)
		c.notify(LevelError, "", msgSaveFailed)
		return updated, fmt.Errorf("failed to validate product: %w", err)
	}

	if updated {
		err = c.store.Update(ctx, *form.EditingID, sub.Name, sub.Price, sub.Quantity)
	} else {
		err = c.store.Insert(ctx, sub.Name, sub.Price, sub.Quantity)
	}
	if err != nil {
		return updated, c.saveFailed(ctx, form, err)
	}

	if updated {
		c.logger.InfoContext(ctx, "Product updated successfully", "ID", *form.EditingID, "Name", sub.Name)
		c.notify(LevelInfo, "", msgUpdated)
	} else {
		c.logger.InfoContext(ctx, "Product created successfully", "Name", sub.Name)
		c.notify(LevelInfo, "", msgSaved)
	}
	c.ClearForm()
	return updated, c.reload(ctx)
}

func (c *Controller) saveFailed(ctx context.Context, form Form, err error) error {
	if errors.Is(err, perrors.ErrProductNotFound) {
		c.logger.WarnContext(ctx, "Product not found for update", "ID", *form.EditingID)
		c.notify(LevelError, "", msgNotFound)
		// the snapshot is stale; resync it while keeping the draft
		_ = c.reload(ctx)
		return fmt.Errorf("failed to update product with ID %d: %w", *form.EditingID, err)
	}
	c.logger.ErrorContext(ctx, "Error saving product", "editing", form.Editing(), "error", err)
	c.notify(LevelError, "", msgSaveFailed)
	return fmt.Errorf("failed to save product: %w", err)
}
