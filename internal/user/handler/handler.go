package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"padron/internal/transport/http/shared"
	"padron/internal/user/models"
	dErrors "padron/pkg/domain-errors"
	"padron/pkg/requestcontext"
)

// Service defines the interface for user operations.
type Service interface {
	Register(ctx context.Context, req models.RegisterUserRequest) (int, error)
	GetAll(ctx context.Context) ([]*models.UserRecord, error)
	GetByID(ctx context.Context, id int) (*models.UserRecord, error)
	Update(ctx context.Context, id int, req models.RegisterUserRequest) error
	Delete(ctx context.Context, id int) error
}

// Handler is the thin HTTP layer for the user endpoints. It delegates to the
// service without embedding business logic so transport concerns stay
// isolated.
type Handler struct {
	users  Service
	logger *slog.Logger
}

// New creates a user Handler.
func New(users Service, logger *slog.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// Register registers the user routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.handleRegister)
		r.Get("/", h.handleGetAll)
		r.Get("/{id}", h.handleGetByID)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid register request body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body."))
		return
	}

	id, err := h.users.Register(ctx, req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, "User created successfully", id)
}

func (h *Handler) handleGetAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.users.GetAll(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	// The list endpoint returns the bare array, not the envelope.
	shared.WriteData(w, http.StatusOK, records)
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	record, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, "Success", record)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid update request body",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", id,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body."))
		return
	}

	if err := h.users.Update(ctx, id, req); err != nil {
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userID parses the {id} route parameter. Writes a 400 and returns false on
// anything that is not a positive integer.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Valid user id is required."))
		return 0, false
	}
	return id, true
}
