// Package core exposes the portal's validated CRUD operations over a
// domain.Store, reporting every call through the metrics seam.
package core

import (
	"context"
	"time"

	"gestor/pkg/domain"
)

// Service wraps a store with input validation and operation metrics. Updates
// are last-write-wins: there is no version check, so concurrent edits to the
// same record silently overwrite one another.
type Service struct {
	store   domain.Store
	team    []string
	metrics MetricsRecorder
}

// Option customizes a Service.
type Option func(*Service)

// WithTeam overrides the allowed responsavel set.
func WithTeam(team []string) Option {
	return func(s *Service) {
		if len(team) > 0 {
			s.team = team
		}
	}
}

// WithMetrics installs an operation metrics recorder.
func WithMetrics(rec MetricsRecorder) Option {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store domain.Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		team:    domain.DefaultTeamMembers(),
		metrics: NopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.Store { return s.store }

// Team returns the allowed responsavel set.
func (s *Service) Team() []string { return s.team }

func (s *Service) observe(ctx context.Context, op string, start time.Time, err error) {
	s.metrics.Observe(ctx, op, err == nil, time.Since(start))
}

// ListTasks returns all tasks, most recent deadline first.
func (s *Service) ListTasks(ctx context.Context) (tasks []domain.Task, err error) {
	defer func(start time.Time) { s.observe(ctx, "list_tasks", start, err) }(time.Now())
	return s.store.ListTasks(ctx)
}

// CreateTask validates and persists a new task.
func (s *Service) CreateTask(ctx context.Context, in domain.TaskInput) (task domain.Task, err error) {
	defer func(start time.Time) { s.observe(ctx, "create_task", start, err) }(time.Now())
	if err = in.Validate(s.team); err != nil {
		return domain.Task{}, err
	}
	return s.store.CreateTask(ctx, in)
}

// UpdateTask validates and persists changes to an existing task.
func (s *Service) UpdateTask(ctx context.Context, id string, in domain.TaskInput) (task domain.Task, err error) {
	defer func(start time.Time) { s.observe(ctx, "update_task", start, err) }(time.Now())
	if err = in.Validate(s.team); err != nil {
		return domain.Task{}, err
	}
	return s.store.UpdateTask(ctx, id, in)
}

// ListContacts returns all contacts, most recent follow-up first.
func (s *Service) ListContacts(ctx context.Context) (contacts []domain.Contact, err error) {
	defer func(start time.Time) { s.observe(ctx, "list_contacts", start, err) }(time.Now())
	return s.store.ListContacts(ctx)
}

// CreateContact validates and persists a new contact.
func (s *Service) CreateContact(ctx context.Context, in domain.ContactInput) (contact domain.Contact, err error) {
	defer func(start time.Time) { s.observe(ctx, "create_contact", start, err) }(time.Now())
	if err = in.Validate(s.team); err != nil {
		return domain.Contact{}, err
	}
	return s.store.CreateContact(ctx, in)
}

// UpdateContact validates and persists changes to an existing contact.
func (s *Service) UpdateContact(ctx context.Context, id string, in domain.ContactInput) (contact domain.Contact, err error) {
	defer func(start time.Time) { s.observe(ctx, "update_contact", start, err) }(time.Now())
	if err = in.Validate(s.team); err != nil {
		return domain.Contact{}, err
	}
	return s.store.UpdateContact(ctx, id, in)
}

// ListMinutes returns all minutes, latest vigency first.
func (s *Service) ListMinutes(ctx context.Context) (minutes []domain.Minute, err error) {
	defer func(start time.Time) { s.observe(ctx, "list_minutes", start, err) }(time.Now())
	return s.store.ListMinutes(ctx)
}

// CreateMinute validates and persists a new minute.
func (s *Service) CreateMinute(ctx context.Context, in domain.MinuteInput) (minute domain.Minute, err error) {
	defer func(start time.Time) { s.observe(ctx, "create_minute", start, err) }(time.Now())
	if err = in.Validate(s.team); err != nil {
		return domain.Minute{}, err
	}
	return s.store.CreateMinute(ctx, in)
}

// UpdateMinute validates and persists changes to an existing minute.
func (s *Service) UpdateMinute(ctx context.Context, id string, in domain.MinuteInput) (minute domain.Minute, err error) {
	defer func(start time.Time) { s.observe(ctx, "update_minute", start, err) }(time.Now())
	if err = in.Validate(s.team); err != nil {
		return domain.Minute{}, err
	}
	return s.store.UpdateMinute(ctx, id, in)
}

// ListSales returns all sales, most recent sale date first.
func (s *Service) ListSales(ctx context.Context) (sales []domain.Sale, err error) {
	defer func(start time.Time) { s.observe(ctx, "list_sales", start, err) }(time.Now())
	return s.store.ListSales(ctx)
}

// CreateSale validates and persists a new sale.
func (s *Service) CreateSale(ctx context.Context, in domain.SaleInput) (sale domain.Sale, err error) {
	defer func(start time.Time) { s.observe(ctx, "create_sale", start, err) }(time.Now())
	if err = in.Validate(s.team); err != nil {
		return domain.Sale{}, err
	}
	return s.store.CreateSale(ctx, in)
}

// UpdateSale validates and persists changes to an existing sale.
func (s *Service) UpdateSale(ctx context.Context, id string, in domain.SaleInput) (sale domain.Sale, err error) {
	defer func(start time.Time) { s.observe(ctx, "update_sale", start, err) }(time.Now())
	if err = in.Validate(s.team); err != nil {
		return domain.Sale{}, err
	}
	return s.store.UpdateSale(ctx, id, in)
}
