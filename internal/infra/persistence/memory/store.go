// Package memory provides an in-memory implementation of the portal
// persistence store used for tests and ephemeral environments.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gestor/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.Store = (*Store)(nil)

// Store keeps every module's records in maps guarded by a single mutex.
type Store struct {
	mu       sync.RWMutex
	tasks    map[string]domain.Task
	contacts map[string]domain.Contact
	minutes  map[string]domain.Minute
	sales    map[string]domain.Sale
	users    map[string]domain.User // keyed by lowercased email

	now   func() time.Time
	newID func() string
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		tasks:    make(map[string]domain.Task),
		contacts: make(map[string]domain.Contact),
		minutes:  make(map[string]domain.Minute),
		sales:    make(map[string]domain.Sale),
		users:    make(map[string]domain.User),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// SetClock overrides the creation timestamp source for tests.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// ListTasks returns all tasks ordered by data_limite descending.
func (s *Store) ListTasks(_ context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataLimite.After(out[j].DataLimite) })
	return out, nil
}

// CreateTask persists a new task with generated ID and creation timestamp.
func (s *Store) CreateTask(_ context.Context, in domain.TaskInput) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := domain.Task{
		ID:          s.newID(),
		Descricao:   in.Descricao,
		Responsavel: in.Responsavel,
		DataLimite:  in.DataLimite,
		Status:      in.Status,
		Prioridade:  in.Prioridade,
		Observacoes: in.Observacoes,
		CreatedAt:   s.now(),
	}
	s.tasks[task.ID] = task
	return task, nil
}

// UpdateTask replaces the mutable fields of an existing task.
func (s *Store) UpdateTask(_ context.Context, id string, in domain.TaskInput) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrNotFound{Entity: domain.EntityTask, ID: id}
	}
	task.Descricao = in.Descricao
	task.Responsavel = in.Responsavel
	task.DataLimite = in.DataLimite
	task.Status = in.Status
	task.Prioridade = in.Prioridade
	task.Observacoes = in.Observacoes
	s.tasks[id] = task
	return task, nil
}

// ListContacts returns all contacts ordered by data_followup descending.
func (s *Store) ListContacts(_ context.Context) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataFollowup.After(out[j].DataFollowup) })
	return out, nil
}

// CreateContact persists a new contact.
func (s *Store) CreateContact(_ context.Context, in domain.ContactInput) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact := domain.Contact{
		ID:           s.newID(),
		PessoaOrgao:  in.PessoaOrgao,
		Motivo:       in.Motivo,
		DataFollowup: in.DataFollowup,
		Responsavel:  in.Responsavel,
		Status:       in.Status,
		Prioridade:   in.Prioridade,
		CreatedAt:    s.now(),
	}
	s.contacts[contact.ID] = contact
	return contact, nil
}

// UpdateContact replaces the mutable fields of an existing contact.
func (s *Store) UpdateContact(_ context.Context, id string, in domain.ContactInput) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact, ok := s.contacts[id]
	if !ok {
		return domain.Contact{}, domain.ErrNotFound{Entity: domain.EntityContact, ID: id}
	}
	contact.PessoaOrgao = in.PessoaOrgao
	contact.Motivo = in.Motivo
	contact.DataFollowup = in.DataFollowup
	contact.Responsavel = in.Responsavel
	contact.Status = in.Status
	contact.Prioridade = in.Prioridade
	s.contacts[id] = contact
	return contact, nil
}

// ListMinutes returns all minutes ordered by vigencia_final descending.
func (s *Store) ListMinutes(_ context.Context) ([]domain.Minute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Minute, 0, len(s.minutes))
	for _, m := range s.minutes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VigenciaFinal.After(out[j].VigenciaFinal) })
	return out, nil
}

// CreateMinute persists a new minute.
func (s *Store) CreateMinute(_ context.Context, in domain.MinuteInput) (domain.Minute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	minute := domain.Minute{
		ID:             s.newID(),
		OrgaoEntidade:  in.OrgaoEntidade,
		Objeto:         in.Objeto,
		ValorUtilizado: in.ValorUtilizado,
		VigenciaFinal:  in.VigenciaFinal,
		Status:         in.Status,
		Prioridade:     in.Prioridade,
		CreatedAt:      s.now(),
	}
	s.minutes[minute.ID] = minute
	return minute, nil
}

// UpdateMinute replaces the mutable fields of an existing minute.
func (s *Store) UpdateMinute(_ context.Context, id string, in domain.MinuteInput) (domain.Minute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	minute, ok := s.minutes[id]
	if !ok {
		return domain.Minute{}, domain.ErrNotFound{Entity: domain.EntityMinute, ID: id}
	}
	minute.OrgaoEntidade = in.OrgaoEntidade
	minute.Objeto = in.Objeto
	minute.ValorUtilizado = in.ValorUtilizado
	minute.VigenciaFinal = in.VigenciaFinal
	minute.Status = in.Status
	minute.Prioridade = in.Prioridade
	s.minutes[id] = minute
	return minute, nil
}

// ListSales returns all sales ordered by data_venda descending.
func (s *Store) ListSales(_ context.Context) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		out = append(out, sale)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataVenda.After(out[j].DataVenda) })
	return out, nil
}

// CreateSale persists a new sale.
func (s *Store) CreateSale(_ context.Context, in domain.SaleInput) (domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale := domain.Sale{
		ID:           s.newID(),
		Tipo:         in.Tipo,
		ClienteOrgao: in.ClienteOrgao,
		ValorTotal:   in.ValorTotal,
		DataVenda:    in.DataVenda,
		Responsavel:  in.Responsavel,
		Status:       in.Status,
		CreatedAt:    s.now(),
	}
	s.sales[sale.ID] = sale
	return sale, nil
}

// UpdateSale replaces the mutable fields of an existing sale.
func (s *Store) UpdateSale(_ context.Context, id string, in domain.SaleInput) (domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.sales[id]
	if !ok {
		return domain.Sale{}, domain.ErrNotFound{Entity: domain.EntitySale, ID: id}
	}
	sale.Tipo = in.Tipo
	sale.ClienteOrgao = in.ClienteOrgao
	sale.ValorTotal = in.ValorTotal
	sale.DataVenda = in.DataVenda
	sale.Responsavel = in.Responsavel
	sale.Status = in.Status
	s.sales[id] = sale
	return sale, nil
}

// FindUserByEmail looks up a user by case-insensitive email.
func (s *Store) FindUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return domain.User{}, domain.ErrNotFound{Entity: domain.EntityUser, ID: email}
	}
	return user, nil
}

// CreateUser persists a new user account, rejecting duplicate emails.
func (s *Store) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := s.users[key]; ok {
		return domain.User{}, domain.ErrConflict{Entity: domain.EntityUser, Field: "email"}
	}
	user.ID = s.newID()
	user.CreatedAt = s.now()
	s.users[key] = user
	return user, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }
