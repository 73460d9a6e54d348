package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	usermetrics "padron/internal/user/metrics"
	"padron/internal/user/models"
	dErrors "padron/pkg/domain-errors"
	"padron/pkg/platform/sentinel"
	"padron/pkg/requestcontext"
)

var tracer = otel.Tracer("padron/internal/user/service")

// UserStore is the persistence contract the service depends on. Adapters
// return sentinel.ErrNotFound for missing records; translation into domain
// errors happens here, not in the store.
type UserStore interface {
	// Create persists a new user and returns the assigned id. It never
	// returns an id for a failed insert.
	Create(ctx context.Context, user *models.User) (int, error)
	// ListAll returns the read-model projection for every user. An empty
	// result is a nil or empty slice, not an error.
	ListAll(ctx context.Context) ([]*models.UserRecord, error)
	// FindByID returns the read-model for one user, or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id int) (*models.UserRecord, error)
	// Update fully replaces the record identified by user.ID.
	Update(ctx context.Context, user *models.User) error
	// DeleteByID removes the record. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id int) error
}

// UserService orchestrates validation, entity construction, and store calls
// for the citizen registry. It is stateless; every invocation is independent.
type UserService struct {
	store   UserStore
	logger  *slog.Logger
	metrics *usermetrics.Metrics
}

// Option configures optional service collaborators.
type Option func(*UserService)

// WithMetrics attaches the user module metrics.
func WithMetrics(m *usermetrics.Metrics) Option {
	return func(s *UserService) {
		s.metrics = m
	}
}

// NewUserService builds the service. The store is required; metrics are
// optional so tests can skip them.
func NewUserService(store UserStore, logger *slog.Logger, opts ...Option) *UserService {
	s := &UserService{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates the input, builds the entity, and persists it.
// Returns the store-assigned id. The store is never called for invalid input.
func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (int, error) {
	ctx, span := tracer.Start(ctx, "UserService.Register")
	defer span.End()
	defer s.observe("register", time.Now())

	if err := req.Validate(); err != nil {
		s.logger.WarnContext(ctx, "user registration rejected",
			"request_id", requestcontext.RequestID(ctx),
			"reason", err.Error(),
		)
		return 0, err
	}

	id, err := s.store.Create(ctx, req.ToUser())
	if err != nil {
		s.recordError(span, err)
		s.logger.ErrorContext(ctx, "failed to register user",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register user")
	}

	s.metrics.IncRegistered()
	s.logger.InfoContext(ctx, "user registered",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", id,
		"municipality_id", req.MunicipalityID,
	)
	return id, nil
}

// GetAll returns the read-model projection for every registered user.
// An empty registry yields an empty slice, never an error.
func (s *UserService) GetAll(ctx context.Context) ([]*models.UserRecord, error) {
	ctx, span := tracer.Start(ctx, "UserService.GetAll")
	defer span.End()
	defer s.observe("get_all", time.Now())

	records, err := s.store.ListAll(ctx)
	if err != nil {
		s.recordError(span, err)
		s.logger.ErrorContext(ctx, "failed to list users",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	if records == nil {
		records = []*models.UserRecord{}
	}
	return records, nil
}

// GetByID returns the read-model for one user. Absence is always a raised
// not-found condition, never a placeholder value.
func (s *UserService) GetByID(ctx context.Context, id int) (*models.UserRecord, error) {
	ctx, span := tracer.Start(ctx, "UserService.GetByID")
	defer span.End()
	defer s.observe("get_by_id", time.Now())

	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "user not found",
				"request_id", requestcontext.RequestID(ctx),
				"user_id", id,
			)
			return nil, dErrors.NotFound("User", id)
		}
		s.recordError(span, err)
		s.logger.ErrorContext(ctx, "failed to get user",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", id,
			"error", err.Error(),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get user")
	}
	return record, nil
}

// Update fully replaces an existing user. Existence is confirmed first, so a
// missing id fails before the new payload is validated; then the payload
// passes the same rules as Register. No diffing against the prior record.
func (s *UserService) Update(ctx context.Context, id int, req models.RegisterUserRequest) error {
	ctx, span := tracer.Start(ctx, "UserService.Update")
	defer span.End()
	defer s.observe("update", time.Now())

	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "update rejected: user not found",
				"request_id", requestcontext.RequestID(ctx),
				"user_id", id,
			)
			return dErrors.NotFound("User", id)
		}
		s.recordError(span, err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}

	if err := req.Validate(); err != nil {
		s.logger.WarnContext(ctx, "user update rejected",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", id,
			"reason", err.Error(),
		)
		return err
	}

	user := req.ToUser()
	user.ID = id
	if err := s.store.Update(ctx, user); err != nil {
		s.recordError(span, err)
		s.logger.ErrorContext(ctx, "failed to update user",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", id,
			"error", err.Error(),
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}

	s.metrics.IncUpdated()
	s.logger.InfoContext(ctx, "user updated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", id,
	)
	return nil
}

// Delete removes a user. Idempotent: no existence pre-check, and deleting a
// missing id succeeds.
func (s *UserService) Delete(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "UserService.Delete")
	defer span.End()
	defer s.observe("delete", time.Now())

	if err := s.store.DeleteByID(ctx, id); err != nil {
		s.recordError(span, err)
		s.logger.ErrorContext(ctx, "failed to delete user",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", id,
			"error", err.Error(),
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}

	s.metrics.IncDeleted()
	s.logger.InfoContext(ctx, "user deleted",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", id,
	)
	return nil
}

func (s *UserService) observe(operation string, start time.Time) {
	s.metrics.ObserveOpDuration(operation, time.Since(start).Seconds())
}

func (s *UserService) recordError(span trace.Span, err error) {
	span.RecordError(err)
}
