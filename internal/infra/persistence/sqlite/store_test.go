package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gestor/pkg/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStoreFailsOnUnwritablePath(t *testing.T) {
	// A directory is not a valid database file, so the DDL pass fails and
	// NewStore must report the error instead of handing back a store.
	store, err := NewStore(t.TempDir())
	if err == nil {
		_ = store.Close()
		t.Fatal("expected error opening a directory as database")
	}
}

func TestSQLiteAppliesDDL(t *testing.T) {
	store := openTestStore(t)
	for _, table := range []string{"tasks", "contacts", "minutes", "sales", "users"} {
		var name string
		if err := store.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name); err != nil {
			t.Fatalf("lookup %s table: %v", table, err)
		}
	}
}

func TestSQLitePersistAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")
	store, err := NewStore(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	ctx := context.Background()
	created, err := store.CreateTask(ctx, domain.TaskInput{
		Descricao:   "Persistir",
		Responsavel: "Lucas",
		DataLimite:  domain.NewDate(2026, time.September, 15),
		Status:      domain.TaskStatusPendente,
		Prioridade:  domain.PriorityAlta,
		Observacoes: "segue por email",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	t.Cleanup(func() { _ = reloaded.Close() })
	tasks, err := reloaded.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task after reload, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != created.ID || got.Descricao != "Persistir" || got.Observacoes != "segue por email" {
		t.Fatalf("reload mismatch: %+v", got)
	}
	if !got.DataLimite.Equal(created.DataLimite) {
		t.Fatalf("data_limite changed across reload: %s vs %s", got.DataLimite, created.DataLimite)
	}
}

func TestSQLiteListMinutesOrdersByVigenciaDesc(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := domain.MinuteInput{
		OrgaoEntidade:  "Secretaria",
		Objeto:         "Material",
		ValorUtilizado: 100,
		Status:         domain.MinuteStatusVigente,
		Prioridade:     domain.PriorityBaixa,
	}

	first := base
	first.VigenciaFinal = domain.NewDate(2026, time.March, 1)
	second := base
	second.VigenciaFinal = domain.NewDate(2027, time.March, 1)
	if _, err := store.CreateMinute(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.CreateMinute(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	minutes, err := store.ListMinutes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(minutes) != 2 || !minutes[0].VigenciaFinal.After(minutes[1].VigenciaFinal) {
		t.Fatalf("expected vigencia_final DESC, got %+v", minutes)
	}
}

func TestSQLiteUpdateUnknownIDReturnsNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.UpdateContact(context.Background(), "missing", domain.ContactInput{
		PessoaOrgao:  "Prefeitura",
		Motivo:       "Retorno",
		DataFollowup: domain.Today(),
		Responsavel:  "Dani",
		Status:       domain.ContactStatusAberto,
		Prioridade:   domain.PriorityMedia,
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSQLiteUserUniqueEmail(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if _, err := store.CreateUser(ctx, domain.User{Email: "dani@example.com", Name: "Dani", PasswordHash: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.CreateUser(ctx, domain.User{Email: "dani@example.com", Name: "Dani", PasswordHash: "h"}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	user, err := store.FindUserByEmail(ctx, "DANI@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if user.Name != "Dani" {
		t.Fatalf("unexpected user: %+v", user)
	}
}
