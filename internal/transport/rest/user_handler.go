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

type UserHandler struct {
	service  service.UserService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewUserHandler creates a new instance of UserHandler with the provided service.
func NewUserHandler(service service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger.With("component", "rest", "resource", "users"),
	}
}

// RegisterRoutes registers the user routes on r.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/active", h.FindActive)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Patch("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

// FindAll lists users, filtered by the optional role query parameter.
func (h *UserHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	role, ok := web.ParseOptionalEnum(r, w, h.logger, "role", store.Roles)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to list users", "role", role)

	var (
		list []service.UserDto
		err  error
	)
	if role != "" {
		list, err = h.service.FindByRole(r.Context(), role)
	} else {
		list, err = h.service.FindAll(r.Context())
	}
	if err != nil {
		userResource.respondError(w, r, h.logger, err, uuid.Nil, "fetch users")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved user list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindActive lists active users.
func (h *UserHandler) FindActive(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to list active users")
	list, err := h.service.FindActive(r.Context())
	if err != nil {
		userResource.respondError(w, r, h.logger, err, uuid.Nil, "fetch active users")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByID retrieves a user by its ID.
func (h *UserHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	h.logger.DebugContext(r.Context(), "Received request to find user by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		userResource.respondError(w, r, h.logger, err, id, "retrieve user")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Create handles the creation of a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var userCreateDto service.UserCreateDto
	if !decodeValid(w, r, h.logger, h.validate, &userCreateDto) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create user", "email", userCreateDto.Email)

	created, err := h.service.Create(r.Context(), userCreateDto)
	if err != nil {
		userResource.respondError(w, r, h.logger, err, uuid.Nil, "create user")
		return
	}
	h.logger.InfoContext(r.Context(), "User created successfully", "ID", created.ID, "Email", created.Email)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// Update merges the fields present in the body into the user.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update user", "ID", id)
	var userUpdateDto service.UserUpdateDto
	if !decodeValid(w, r, h.logger, h.validate, &userUpdateDto) {
		return
	}

	updated, err := h.service.Update(r.Context(), id, userUpdateDto)
	if err != nil {
		userResource.respondError(w, r, h.logger, err, id, "update user")
		return
	}
	h.logger.InfoContext(r.Context(), "User updated successfully", "ID", updated.ID)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// Delete deletes a user by its ID.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete user", "ID", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		userResource.respondError(w, r, h.logger, err, id, "delete user")
		return
	}
	h.logger.InfoContext(r.Context(), "User deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}
