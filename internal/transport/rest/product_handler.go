package rest

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/catalog/internal/service"
	"github.com/abgdnv/catalog/internal/store"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new instance of ProductHandler with the provided service.
func NewProductHandler(service service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger.With("component", "rest", "resource", "products"),
	}
}

// RegisterRoutes registers the product routes on r.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/available", h.FindAvailable)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Patch("/", h.Update)
			r.Delete("/", h.Delete)
			r.Patch("/stock", h.UpdateStock)
		})
	})
}

// FindAll lists products. A non-empty search parameter takes precedence over category.
func (h *ProductHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		list []service.ProductDto
		err  error
	)
	if search := r.URL.Query().Get("search"); search != "" {
		h.logger.DebugContext(ctx, "Received request to search products", "search", search)
		list, err = h.service.Search(ctx, search)
	} else {
		category, ok := web.ParseOptionalEnum(r, w, h.logger, "category", store.Categories)
		if !ok {
			return
		}
		h.logger.DebugContext(ctx, "Received request to list products", "category", category)
		if category != "" {
			list, err = h.service.FindByCategory(ctx, category)
		} else {
			list, err = h.service.FindAll(ctx)
		}
	}
	if err != nil {
		productResource.respondError(w, r, h.logger, err, uuid.Nil, "fetch products")
		return
	}
	h.logger.DebugContext(ctx, "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindAvailable lists products that are available and in stock.
func (h *ProductHandler) FindAvailable(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to list available products")
	list, err := h.service.FindAvailable(r.Context())
	if err != nil {
		productResource.respondError(w, r, h.logger, err, uuid.Nil, "fetch available products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *ProductHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		productResource.respondError(w, r, h.logger, err, id, "retrieve product")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var productCreateDto service.ProductCreateDto
	if !decodeValid(w, r, h.logger, h.validate, &productCreateDto) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "sku", productCreateDto.SKU)

	created, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		productResource.respondError(w, r, h.logger, err, uuid.Nil, "create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// Update merges the fields present in the body into the product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	var productUpdateDto service.ProductUpdateDto
	if !decodeValid(w, r, h.logger, h.validate, &productUpdateDto) {
		return
	}

	updated, err := h.service.Update(r.Context(), id, productUpdateDto)
	if err != nil {
		productResource.respondError(w, r, h.logger, err, id, "update product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// UpdateStock adds the signed quantity from the body to the product stock.
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update stock for product", "ID", id)
	var stockUpdateDto service.StockUpdateDto
	if !decodeValid(w, r, h.logger, h.validate, &stockUpdateDto) {
		return
	}

	updated, err := h.service.UpdateStock(r.Context(), id, *stockUpdateDto.Quantity)
	if err != nil {
		productResource.respondError(w, r, h.logger, err, id, "update stock")
		return
	}
	h.logger.InfoContext(r.Context(), "Stock updated successfully for product", "ID", updated.ID, "NewStock", updated.Stock)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// Delete deletes a product by its ID.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		productResource.respondError(w, r, h.logger, err, id, "delete product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}
