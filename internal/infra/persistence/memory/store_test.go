package memory

import (
	"context"
	"testing"
	"time"

	"gestor/pkg/domain"
)

func taskInput(desc string, limite domain.Date) domain.TaskInput {
	return domain.TaskInput{
		Descricao:   desc,
		Responsavel: "Lucas",
		DataLimite:  limite,
		Status:      domain.TaskStatusPendente,
		Prioridade:  domain.PriorityMedia,
	}
}

func TestCreateThenListOrdersByDataLimiteDesc(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	early := domain.NewDate(2026, time.September, 1)
	late := domain.NewDate(2026, time.October, 1)
	if _, err := store.CreateTask(ctx, taskInput("early", early)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.CreateTask(ctx, taskInput("late", late)); err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := store.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Descricao != "late" || tasks[1].Descricao != "early" {
		t.Fatalf("expected data_limite DESC order, got %s then %s", tasks[0].Descricao, tasks[1].Descricao)
	}
}

func TestCreateAssignsIDAndCreatedAt(t *testing.T) {
	store := NewStore()
	fixed := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return fixed })

	task, err := store.CreateTask(context.Background(), taskInput("x", domain.Today()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID == "" {
		t.Fatal("expected generated id")
	}
	if !task.CreatedAt.Equal(fixed) {
		t.Fatalf("expected clock timestamp, got %s", task.CreatedAt)
	}
}

func TestUpdatePreservesIDAndCreatedAt(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	created, err := store.CreateTask(ctx, taskInput("before", domain.Today()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	in := taskInput("after", domain.NewDate(2026, time.December, 24))
	in.Status = domain.TaskStatusConcluida
	updated, err := store.UpdateTask(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update changed the id: %s -> %s", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update changed data_criacao")
	}
	if updated.Descricao != "after" || updated.Status != domain.TaskStatusConcluida {
		t.Fatalf("update did not apply: %+v", updated)
	}
}

func TestUpdateUnknownIDLeavesStoreUnchanged(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	if _, err := store.CreateTask(ctx, taskInput("keep", domain.Today())); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := store.UpdateTask(ctx, "missing", taskInput("stomp", domain.Today()))
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	tasks, err := store.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Descricao != "keep" {
		t.Fatalf("store changed after failed update: %+v", tasks)
	}
}

func TestSalesRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sale, err := store.CreateSale(ctx, domain.SaleInput{
		Tipo:         domain.SaleTypeEntregaDireta,
		ClienteOrgao: "Hospital Regional",
		ValorTotal:   9800.50,
		DataVenda:    domain.NewDate(2026, time.July, 10),
		Responsavel:  "Diego (Sócio)",
		Status:       domain.SaleStatusEmNegociacao,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sales, err := store.ListSales(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sales) != 1 || sales[0].ID != sale.ID || sales[0].ValorTotal != 9800.50 {
		t.Fatalf("unexpected sales: %+v", sales)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, domain.User{Email: "lucas@example.com", Name: "Lucas", PasswordHash: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := store.CreateUser(ctx, domain.User{Email: "LUCAS@example.com", Name: "Lucas", PasswordHash: "x"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	found, err := store.FindUserByEmail(ctx, "Lucas@Example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Email != "lucas@example.com" {
		t.Fatalf("unexpected user: %+v", found)
	}
}
