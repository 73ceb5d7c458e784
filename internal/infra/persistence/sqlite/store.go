// Package sqlite provides the default on-disk store, one table per module
// with the portal's real column schema.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"gestor/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Store = (*Store)(nil)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339Nano
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		task_id TEXT PRIMARY KEY,
		descricao TEXT NOT NULL,
		responsavel TEXT NOT NULL,
		data_limite TEXT NOT NULL,
		status TEXT NOT NULL,
		prioridade TEXT NOT NULL,
		observacoes TEXT,
		data_criacao TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		contact_id TEXT PRIMARY KEY,
		pessoa_orgao TEXT NOT NULL,
		motivo TEXT NOT NULL,
		data_followup TEXT NOT NULL,
		responsavel TEXT NOT NULL,
		status TEXT NOT NULL,
		prioridade TEXT NOT NULL,
		data_criacao TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS minutes (
		minute_id TEXT PRIMARY KEY,
		orgao_entidade TEXT NOT NULL,
		objeto TEXT NOT NULL,
		valor_utilizado REAL NOT NULL,
		vigencia_final TEXT NOT NULL,
		status TEXT NOT NULL,
		prioridade TEXT NOT NULL,
		data_criacao TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		sale_id TEXT PRIMARY KEY,
		tipo TEXT NOT NULL,
		cliente_orgao TEXT NOT NULL,
		valor_total REAL NOT NULL,
		data_venda TEXT NOT NULL,
		responsavel TEXT NOT NULL,
		status TEXT NOT NULL,
		data_criacao TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
}

// Store persists portal records in a SQLite database file.
type Store struct {
	db   *sql.DB
	path string

	now   func() time.Time
	newID func() string
}

// NewStore opens (creating if needed) the database at path and applies the
// table DDL.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "gestor.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply ddl: %w", err)
		}
	}
	return &Store{
		db:    db,
		path:  path,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) dateOut(d domain.Date) string { return d.Time().Format(dateLayout) }
func (s *Store) timeOut(t time.Time) string   { return t.Format(timeLayout) }

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func scanDate(raw string) (domain.Date, error) {
	return domain.ParseDate(raw)
}

func scanTime(raw string) (time.Time, error) {
	return time.Parse(timeLayout, raw)
}

// ListTasks returns all tasks ordered by data_limite descending.
func (s *Store) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT task_id, descricao, responsavel, data_limite, status, prioridade, observacoes, data_criacao FROM tasks ORDER BY data_limite DESC`)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Task
	for rows.Next() {
		var (
			t       domain.Task
			limite  string
			criacao string
			obs     sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Descricao, &t.Responsavel, &limite, &t.Status, &t.Prioridade, &obs, &criacao); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if t.DataLimite, err = scanDate(limite); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		if t.CreatedAt, err = scanTime(criacao); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		t.Observacoes = obs.String
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
			`INSERT INTO tasks (task_id, descricao, responsavel, data_limite, status, prioridade, observacoes, data_criacao) VALUES (?,?,?,?,?,?,?,?)`,
			task.ID, task.Descricao, task.Responsavel, s.dateOut(task.DataLimite), task.Status, task.Prioridade, nullable(task.Observacoes), s.timeOut(task.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
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
		var criacao string
		if err := tx.QueryRowContext(ctx, `SELECT data_criacao FROM tasks WHERE task_id = ?`, id).Scan(&criacao); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound{Entity: domain.EntityTask, ID: id}
			}
			return fmt.Errorf("find task: %w", err)
		}
		created, err := scanTime(criacao)
		if err != nil {
			return fmt.Errorf("task %s: %w", id, err)
		}
		task.CreatedAt = created
		if _, err := tx.ExecContext(ctx,
			`UPDATE tasks SET descricao=?, responsavel=?, data_limite=?, status=?, prioridade=?, observacoes=? WHERE task_id=?`,
			task.Descricao, task.Responsavel, s.dateOut(task.DataLimite), task.Status, task.Prioridade, nullable(task.Observacoes), id); err != nil {
			return fmt.Errorf("update task: %w", err)
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
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Contact
	for rows.Next() {
		var (
			c        domain.Contact
			followup string
			criacao  string
		)
		if err := rows.Scan(&c.ID, &c.PessoaOrgao, &c.Motivo, &followup, &c.Responsavel, &c.Status, &c.Prioridade, &criacao); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		if c.DataFollowup, err = scanDate(followup); err != nil {
			return nil, fmt.Errorf("contact %s: %w", c.ID, err)
		}
		if c.CreatedAt, err = scanTime(criacao); err != nil {
			return nil, fmt.Errorf("contact %s: %w", c.ID, err)
		}
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
			`INSERT INTO contacts (contact_id, pessoa_orgao, motivo, data_followup, responsavel, status, prioridade, data_criacao) VALUES (?,?,?,?,?,?,?,?)`,
			contact.ID, contact.PessoaOrgao, contact.Motivo, s.dateOut(contact.DataFollowup), contact.Responsavel, contact.Status, contact.Prioridade, s.timeOut(contact.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert contact: %w", err)
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
		var criacao string
		if err := tx.QueryRowContext(ctx, `SELECT data_criacao FROM contacts WHERE contact_id = ?`, id).Scan(&criacao); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound{Entity: domain.EntityContact, ID: id}
			}
			return fmt.Errorf("find contact: %w", err)
		}
		created, err := scanTime(criacao)
		if err != nil {
			return fmt.Errorf("contact %s: %w", id, err)
		}
		contact.CreatedAt = created
		if _, err := tx.ExecContext(ctx,
			`UPDATE contacts SET pessoa_orgao=?, motivo=?, data_followup=?, responsavel=?, status=?, prioridade=? WHERE contact_id=?`,
			contact.PessoaOrgao, contact.Motivo, s.dateOut(contact.DataFollowup), contact.Responsavel, contact.Status, contact.Prioridade, id); err != nil {
			return fmt.Errorf("update contact: %w", err)
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
		return nil, fmt.Errorf("select minutes: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Minute
	for rows.Next() {
		var (
			m        domain.Minute
			vigencia string
			criacao  string
		)
		if err := rows.Scan(&m.ID, &m.OrgaoEntidade, &m.Objeto, &m.ValorUtilizado, &vigencia, &m.Status, &m.Prioridade, &criacao); err != nil {
			return nil, fmt.Errorf("scan minute: %w", err)
		}
		if m.VigenciaFinal, err = scanDate(vigencia); err != nil {
			return nil, fmt.Errorf("minute %s: %w", m.ID, err)
		}
		if m.CreatedAt, err = scanTime(criacao); err != nil {
			return nil, fmt.Errorf("minute %s: %w", m.ID, err)
		}
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
			`INSERT INTO minutes (minute_id, orgao_entidade, objeto, valor_utilizado, vigencia_final, status, prioridade, data_criacao) VALUES (?,?,?,?,?,?,?,?)`,
			minute.ID, minute.OrgaoEntidade, minute.Objeto, minute.ValorUtilizado, s.dateOut(minute.VigenciaFinal), minute.Status, minute.Prioridade, s.timeOut(minute.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert minute: %w", err)
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
		var criacao string
		if err := tx.QueryRowContext(ctx, `SELECT data_criacao FROM minutes WHERE minute_id = ?`, id).Scan(&criacao); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound{Entity: domain.EntityMinute, ID: id}
			}
			return fmt.Errorf("find minute: %w", err)
		}
		created, err := scanTime(criacao)
		if err != nil {
			return fmt.Errorf("minute %s: %w", id, err)
		}
		minute.CreatedAt = created
		if _, err := tx.ExecContext(ctx,
			`UPDATE minutes SET orgao_entidade=?, objeto=?, valor_utilizado=?, vigencia_final=?, status=?, prioridade=? WHERE minute_id=?`,
			minute.OrgaoEntidade, minute.Objeto, minute.ValorUtilizado, s.dateOut(minute.VigenciaFinal), minute.Status, minute.Prioridade, id); err != nil {
			return fmt.Errorf("update minute: %w", err)
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
		return nil, fmt.Errorf("select sales: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.Sale
	for rows.Next() {
		var (
			sale    domain.Sale
			venda   string
			criacao string
		)
		if err := rows.Scan(&sale.ID, &sale.Tipo, &sale.ClienteOrgao, &sale.ValorTotal, &venda, &sale.Responsavel, &sale.Status, &criacao); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if sale.DataVenda, err = scanDate(venda); err != nil {
			return nil, fmt.Errorf("sale %s: %w", sale.ID, err)
		}
		if sale.CreatedAt, err = scanTime(criacao); err != nil {
			return nil, fmt.Errorf("sale %s: %w", sale.ID, err)
		}
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
			`INSERT INTO sales (sale_id, tipo, cliente_orgao, valor_total, data_venda, responsavel, status, data_criacao) VALUES (?,?,?,?,?,?,?,?)`,
			sale.ID, sale.Tipo, sale.ClienteOrgao, sale.ValorTotal, s.dateOut(sale.DataVenda), sale.Responsavel, sale.Status, s.timeOut(sale.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
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
		var criacao string
		if err := tx.QueryRowContext(ctx, `SELECT data_criacao FROM sales WHERE sale_id = ?`, id).Scan(&criacao); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound{Entity: domain.EntitySale, ID: id}
			}
			return fmt.Errorf("find sale: %w", err)
		}
		created, err := scanTime(criacao)
		if err != nil {
			return fmt.Errorf("sale %s: %w", id, err)
		}
		sale.CreatedAt = created
		if _, err := tx.ExecContext(ctx,
			`UPDATE sales SET tipo=?, cliente_orgao=?, valor_total=?, data_venda=?, responsavel=?, status=? WHERE sale_id=?`,
			sale.Tipo, sale.ClienteOrgao, sale.ValorTotal, s.dateOut(sale.DataVenda), sale.Responsavel, sale.Status, id); err != nil {
			return fmt.Errorf("update sale: %w", err)
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
	var (
		u       domain.User
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, email, name, password_hash, created_at FROM users WHERE email = ? COLLATE NOCASE`,
		strings.ToLower(email)).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound{Entity: domain.EntityUser, ID: email}
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	if u.CreatedAt, err = scanTime(created); err != nil {
		return domain.User{}, fmt.Errorf("user %s: %w", u.ID, err)
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
			`INSERT INTO users (user_id, email, name, password_hash, created_at) VALUES (?,?,?,?,?)`,
			user.ID, user.Email, user.Name, user.PasswordHash, s.timeOut(user.CreatedAt))
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint") {
				return domain.ErrConflict{Entity: domain.EntityUser, Field: "email"}
			}
			return fmt.Errorf("insert user: %w", err)
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
		return fmt.Errorf("begin tx: %w", err)
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
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}
