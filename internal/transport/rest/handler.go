// Package rest exposes the inventory screen as a loopback JSON API for a webview shell.
// It holds no business rules: every request maps onto one controller operation.
package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/abgdnv/inventory/internal/controller"
	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/input"
	"github.com/abgdnv/inventory/internal/view"
	"github.com/abgdnv/inventory/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Inventory is the controller surface used by the handler.
type Inventory interface {
	Screen() controller.Screen
	TakeNotices() []controller.Notice
	SetName(name string)
	SetPriceText(text string) string
	SetQuantityText(text string) string
	Form() controller.Form
	ClearForm()
	Save(ctx context.Context) (updated bool, err error)
	Reload(ctx context.Context) error
	SetSearch(query string)
	CycleSort() view.SortMode
	SetSort(mode view.SortMode)
	StartEdit(id int64) error
	RequestDelete(id int64) error
	ConfirmDelete(ctx context.Context) error
	CancelDelete()
}

type Handler struct {
	inventory Inventory
	formatter *input.CurrencyFormatter
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewHandler creates a new Handler over inventory.
func NewHandler(inventory Inventory, formatter *input.CurrencyFormatter, logger *slog.Logger) *Handler {
	return &Handler{
		inventory: inventory,
		formatter: formatter,
		validate:  validator.New(),
		logger:    logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes of the inventory screen.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/", h.GetScreen)
		r.Post("/reload", h.Reload)

		r.Put("/form", h.UpdateForm)
		r.Post("/form/clear", h.ClearForm)
		r.Post("/save", h.Save)

		r.Put("/search", h.SetSearch)
		r.Put("/sort", h.SetSort)
		r.Post("/sort/next", h.NextSort)

		r.Route("/items/{id}", func(r chi.Router) {
			r.Post("/edit", h.StartEdit)
			r.Post("/delete", h.RequestDelete)
		})
		r.Post("/delete/confirm", h.ConfirmDelete)
		r.Post("/delete/cancel", h.CancelDelete)
	})

	r.Get("/healthz", h.HealthCheck)
}

// GetScreen returns the current screen and drains pending notices.
func (h *Handler) GetScreen(w http.ResponseWriter, _ *http.Request) {
	h.respondScreen(w, http.StatusOK)
}

// Reload re-reads the full product list from storage.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.Reload(r.Context()); err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondScreen(w, http.StatusOK)
}

// UpdateForm applies typed text to the form and returns the masked form.
func (h *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	var dto FormUpdateDto
	if !web.DecodeJSON(w, r, h.logger, &dto) {
		return
	}
	if dto.Name != nil {
		h.inventory.SetName(*dto.Name)
	}
	if dto.Price != nil {
		h.inventory.SetPriceText(*dto.Price)
	}
	if dto.Quantity != nil {
		h.inventory.SetQuantityText(*dto.Quantity)
	}
	web.RespondJSON(w, h.logger, http.StatusOK, h.inventory.Form())
}

// ClearForm empties the form and leaves edit mode.
func (h *Handler) ClearForm(w http.ResponseWriter, _ *http.Request) {
	h.inventory.ClearForm()
	h.respondScreen(w, http.StatusOK)
}

// Save inserts or updates the product in the form.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	updated, err := h.inventory.Save(r.Context())
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	status := http.StatusCreated
	if updated {
		status = http.StatusOK
	}
	h.respondScreen(w, status)
}

// SetSearch sets the search query.
func (h *Handler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var dto SearchDto
	if !web.DecodeJSON(w, r, h.logger, &dto) {
		return
	}
	h.inventory.SetSearch(dto.Query)
	h.respondScreen(w, http.StatusOK)
}

// SetSort selects a sort mode by name.
func (h *Handler) SetSort(w http.ResponseWriter, r *http.Request) {
	var dto SortDto
	if !web.DecodeJSON(w, r, h.logger, &dto) {
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		web.RespondError(w, h.logger, http.StatusBadRequest, "Sort mode is required")
		return
	}
	mode, err := view.ParseSortMode(dto.Mode)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Unknown sort mode", "mode", dto.Mode)
		web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	h.inventory.SetSort(mode)
	h.respondScreen(w, http.StatusOK)
}

// NextSort advances the sort mode by one step.
func (h *Handler) NextSort(w http.ResponseWriter, r *http.Request) {
	mode := h.inventory.CycleSort()
	h.logger.DebugContext(r.Context(), "Sort mode changed", "mode", mode)
	h.respondScreen(w, http.StatusOK)
}

// StartEdit loads the product into the form.
func (h *Handler) StartEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.inventory.StartEdit(id); err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondScreen(w, http.StatusOK)
}

// RequestDelete asks for confirmation before deleting the product.
func (h *Handler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.inventory.RequestDelete(id); err != nil {
		h.respondFailure(w, r, err)
		return
	}
	h.respondScreen(w, http.StatusOK)
}

// ConfirmDelete deletes the product pending confirmation.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.ConfirmDelete(r.Context()); err != nil {
		if errors.Is(err, controller.ErrNoPendingDelete) {
			web.RespondError(w, h.logger, http.StatusConflict, "No product is pending deletion")
			return
		}
		h.respondFailure(w, r, err)
		return
	}
	h.respondScreen(w, http.StatusOK)
}

// CancelDelete dismisses the delete confirmation.
func (h *Handler) CancelDelete(w http.ResponseWriter, _ *http.Request) {
	h.inventory.CancelDelete()
	h.respondScreen(w, http.StatusOK)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) respondScreen(w http.ResponseWriter, status int) {
	dto := toScreenDto(h.inventory.Screen(), h.inventory.TakeNotices(), h.formatter)
	web.RespondJSON(w, h.logger, status, dto)
}

// respondFailure maps a controller error onto a status code. The user-facing
// notices stay queued for the next screen read.
func (h *Handler) respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := perrors.AsValidation(err); ok {
		web.RespondJSON(w, h.logger, http.StatusUnprocessableEntity, map[string]any{"validation_errors": ve.Fields()})
		return
	}
	if errors.Is(err, perrors.ErrProductNotFound) {
		web.RespondError(w, h.logger, http.StatusNotFound, "Product not found")
		return
	}
	h.logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	web.RespondError(w, h.logger, http.StatusInternalServerError, "Storage is unavailable, please try again")
}
