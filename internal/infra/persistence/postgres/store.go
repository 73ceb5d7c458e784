// Package postgres provides a Postgres-backed store mirroring the sqlite
// schema, for deployments that point the portal at a shared database.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"gestor/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Store = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/gestor?sslmode=disable"
	// uniqueViolation is the SQLSTATE for a unique constraint failure.
	uniqueViolation = "23505"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		task_id UUID PRIMARY KEY,
		descricao TEXT NOT NULL,
		responsavel TEXT NOT NULL,
		data_limite DATE NOT NULL,
		status TEXT NOT NULL,
		prioridade TEXT NOT NULL,
		observacoes TEXT,
		data_criacao TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		contact_id UUID PRIMARY KEY,
		pessoa_orgao TEXT NOT NULL,
		motivo TEXT NOT NULL,
		data_followup DATE NOT NULL,
		responsavel TEXT NOT NULL,
		status TEXT NOT NULL,
		prioridade TEXT NOT NULL,
		data_criacao TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS minutes (
		minute_id UUID PRIMARY KEY,
		orgao_entidade TEXT NOT NULL,
		objeto TEXT NOT NULL,
		valor_utilizado NUMERIC(14,2) NOT NULL,
		vigencia_final DATE NOT NULL,
		status TEXT NOT NULL,
		prioridade TEXT NOT NULL,
		data_criacao TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		sale_id UUID PRIMARY KEY,
		tipo TEXT NOT NULL,
		cliente_orgao TEXT NOT NULL,
		valor_total NUMERIC(14,2) NOT NULL,
		data_venda DATE NOT NULL,
		responsavel TEXT NOT NULL,
		status TEXT NOT NULL,
		data_criacao TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Store persists portal records in Postgres.
type Store struct {
	db *sql.DB

	now   func() time.Time
	newID func() string
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to defaultDSN), pings it, and applies the table DDL.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %v: %w", err, domain.ErrUnavailable)
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply ddl: %w", err)
		}
	}
	return &Store{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// classify folds transport-level failures into ErrUnavailable so handlers can
// answer 503 without inspecting driver internals.
func classify(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ListTasks returns all tasks ordered by data_limite descending.
func (s *Store) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT task_id, descricao, responsavel, data_limite, status, prioridade, COALESCE(observacoes, ''), data_criacao FROM tasks ORDER BY data_limite DESC`)
	if err != nil {
		return nil, classify("select tasks", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Task
	for rows.Next() {
		var (
			t      domain.Task
			limite time.Time
		)
		if err := rows.Scan(&t.ID, &t.Descricao, &t.Responsavel, &limite, &t.Status, &t.Prioridade, &t.Observacoes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.DataLimite = domain.DateOf(limite)
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTask inserts a task inside a transaction, rolling back on failure.
func (s *Store) CreateTask(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
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
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (task_id, descricao, responsavel, data_limite, status, prioridade, observacoes, data_criacao) VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),$8)`,
			task.ID, task.Descricao, task.Responsavel, task.DataLimite.Time(), task.Status, task.Prioridade, task.Observacoes, task.CreatedAt)
		if err != nil {
			return classify("insert task", err)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTask rewrites the mutable columns of an existing task.
func (s *Store) UpdateTask(ctx context.Context, id string, in domain.TaskInput) (domain.Task, error) {
	task := domain.Task{
		ID:          id,
		Descricao:   in.Descricao,
		Responsavel: in.Responsavel,
		DataLimite:  in.DataLimite,
		Status:      in.Status,
		Prioridade:  in.Prioridade,
		Observacoes: in.Observacoes,
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`UPDATE tasks SET descricao=$1, responsavel=$2, data_limite=$3, status=$4, prioridade=$5, observacoes=NULLIF($6,'') WHERE task_id=$7 RETURNING data_criacao`,
			task.Descricao, task.Responsavel, task.DataLimite.Time(), task.Status, task.Prioridade, task.Observacoes, id).Scan(&task.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound{Entity: domain.EntityTask, ID: id}
		}
		if err != nil {
			return classify("update task", err)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// ListContacts returns all contacts ordered by data_followup descending.
func (s *Store) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT contact_id, pessoa_orgao, motivo, data_followup, responsavel, status, prioridade, data_criacao FROM contacts ORDER BY data_followup DESC`)
	if err != nil {
		return nil, classify("select contacts", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Contact
	for rows.Next() {
		var (
			c        domain.Contact
			followup time.Time
		)
		if err := rows.Scan(&c.ID, &c.PessoaOrgao, &c.Motivo, &followup, &c.Responsavel, &c.Status, &c.Prioridade, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.DataFollowup = domain.DateOf(followup)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateContact inserts a contact inside a transaction.
func (s *Store) CreateContact(ctx context.Context, in domain.ContactInput) (domain.Contact, error) {
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
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO contacts (contact_id, pessoa_orgao, motivo, data_followup, responsavel, status, prioridade, data_criacao) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			contact.ID, contact.PessoaOrgao, contact.Motivo, contact.DataFollowup.Time(), contact.Responsavel, contact.Status, contact.Prioridade, contact.CreatedAt)
		if err != nil {
			return classify("insert contact", err)
		}
		return nil
	})
	if err != nil {
		return domain.Contact{}, err
	}
	return contact, nil
}

// UpdateContact rewrites the mutable columns of an existing contact.
func (s *Store) UpdateContact(ctx context.Context, id string, in domain.ContactInput) (domain.Contact, error) {
	contact := domain.Contact{
		ID:           id,
		PessoaOrgao:  in.PessoaOrgao,
		Motivo:       in.Motivo,
		DataFollowup: in.DataFollowup,
		Responsavel:  in.Responsavel,
		Status:       in.Status,
		Prioridade:   in.Prioridade,
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`UPDATE contacts SET pessoa_orgao=$1, motivo=$2, data_followup=$3, responsavel=$4, status=$5, prioridade=$6 WHERE contact_id=$7 RETURNING data_criacao`,
			contact.PessoaOrgao, contact.Motivo, contact.DataFollowup.Time(), contact.Responsavel, contact.Status, contact.Prioridade, id).Scan(&contact.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound{Entity: domain.EntityContact, ID: id}
		}
		if err != nil {
			return classify("update contact", err)
		}
		return nil
	})
	if err != nil {
		return domain.Contact{}, err
	}
	return contact, nil
}

// ListMinutes returns all minutes ordered by vigencia_final descending.
func (s *Store) ListMinutes(ctx context.Context) ([]domain.Minute, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT minute_id, orgao_entidade, objeto, valor_utilizado, vigencia_final, status, prioridade, data_criacao FROM minutes ORDER BY vigencia_final DESC`)
	if err != nil {
		return nil, classify("select minutes", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Minute
	for rows.Next() {
		var (
			m        domain.Minute
			vigencia time.Time
		)
		if err := rows.Scan(&m.ID, &m.OrgaoEntidade, &m.Objeto, &m.ValorUtilizado, &vigencia, &m.Status, &m.Prioridade, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan minute: %w", err)
		}
		m.VigenciaFinal = domain.DateOf(vigencia)
		out = append(out, m)
	}
	return out, rows.Err()
}

// CreateMinute inserts a minute inside a transaction.
func (s *Store) CreateMinute(ctx context.Context, in domain.MinuteInput) (domain.Minute, error) {
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
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO minutes (minute_id, orgao_entidade, objeto, valor_utilizado, vigencia_final, status, prioridade, data_criacao) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			minute.ID, minute.OrgaoEntidade, minute.Objeto, minute.ValorUtilizado, minute.VigenciaFinal.Time(), minute.Status, minute.Prioridade, minute.CreatedAt)
		if err != nil {
			return classify("insert minute", err)
		}
		return nil
	})
	if err != nil {
		return domain.Minute{}, err
	}
	return minute, nil
}

// UpdateMinute rewrites the mutable columns of an existing minute.
func (s *Store) UpdateMinute(ctx context.Context, id string, in domain.MinuteInput) (domain.Minute, error) {
	minute := domain.Minute{
		ID:             id,
		OrgaoEntidade:  in.OrgaoEntidade,
		Objeto:         in.Objeto,
		ValorUtilizado: in.ValorUtilizado,
		VigenciaFinal:  in.VigenciaFinal,
		Status:         in.Status,
		Prioridade:     in.Prioridade,
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`UPDATE minutes SET orgao_entidade=$1, objeto=$2, valor_utilizado=$3, vigencia_final=$4, status=$5, prioridade=$6 WHERE minute_id=$7 RETURNING data_criacao`,
			minute.OrgaoEntidade, minute.Objeto, minute.ValorUtilizado, minute.VigenciaFinal.Time(), minute.Status, minute.Prioridade, id).Scan(&minute.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound{Entity: domain.EntityMinute, ID: id}
		}
		if err != nil {
			return classify("update minute", err)
		}
		return nil
	})
	if err != nil {
		return domain.Minute{}, err
	}
	return minute, nil
}

// ListSales returns all sales ordered by data_venda descending.
func (s *Store) ListSales(ctx context.Context) ([]domain.Sale, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT sale_id, tipo, cliente_orgao, valor_total, data_venda, responsavel, status, data_criacao FROM sales ORDER BY data_venda DESC`)
	if err != nil {
		return nil, classify("select sales", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Sale
	for rows.Next() {
		var (
			sale  domain.Sale
			venda time.Time
		)
		if err := rows.Scan(&sale.ID, &sale.Tipo, &sale.ClienteOrgao, &sale.ValorTotal, &venda, &sale.Responsavel, &sale.Status, &sale.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sale.DataVenda = domain.DateOf(venda)
		out = append(out, sale)
	}
	return out, rows.Err()
}

// CreateSale inserts a sale inside a transaction.
func (s *Store) CreateSale(ctx context.Context, in domain.SaleInput) (domain.Sale, error) {
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
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sales (sale_id, tipo, cliente_orgao, valor_total, data_venda, responsavel, status, data_criacao) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			sale.ID, sale.Tipo, sale.ClienteOrgao, sale.ValorTotal, sale.DataVenda.Time(), sale.Responsavel, sale.Status, sale.CreatedAt)
		if err != nil {
			return classify("insert sale", err)
		}
		return nil
	})
	if err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

// UpdateSale rewrites the mutable columns of an existing sale.
func (s *Store) UpdateSale(ctx context.Context, id string, in domain.SaleInput) (domain.Sale, error) {
	sale := domain.Sale{
		ID:           id,
		Tipo:         in.Tipo,
		ClienteOrgao: in.ClienteOrgao,
		ValorTotal:   in.ValorTotal,
		DataVenda:    in.DataVenda,
		Responsavel:  in.Responsavel,
		Status:       in.Status,
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`UPDATE sales SET tipo=$1, cliente_orgao=$2, valor_total=$3, data_venda=$4, responsavel=$5, status=$6 WHERE sale_id=$7 RETURNING data_criacao`,
			sale.Tipo, sale.ClienteOrgao, sale.ValorTotal, sale.DataVenda.Time(), sale.Responsavel, sale.Status, id).Scan(&sale.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound{Entity: domain.EntitySale, ID: id}
		}
		if err != nil {
			return classify("update sale", err)
		}
		return nil
	})
	if err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

// FindUserByEmail looks up a user by case-insensitive email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, email, name, password_hash, created_at FROM users WHERE lower(email) = lower($1)`,
		email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound{Entity: domain.EntityUser, ID: email}
	}
	if err != nil {
		return domain.User{}, classify("select user", err)
	}
	return u, nil
}

// CreateUser persists a user account; the unique email index rejects duplicates.
func (s *Store) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	user.ID = s.newID()
	user.CreatedAt = s.now()
	user.Email = strings.ToLower(user.Email)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (user_id, email, name, password_hash, created_at) VALUES ($1,$2,$3,$4,$5)`,
			user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrConflict{Entity: domain.EntityUser, Field: "email"}
		}
		if err != nil {
			return classify("insert user", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("begin tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return classify("commit", err)
	}
	committed = true
	return nil
}
