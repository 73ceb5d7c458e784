package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"gestor/internal/blob"
	"gestor/internal/core"
	"gestor/internal/infra/persistence/memory"
	"gestor/pkg/domain"
)

func newTestExporter(t *testing.T) (*Exporter, *core.Service, blob.Store) {
	t.Helper()
	svc := core.NewService(memory.NewStore())
	blobs := blob.NewMemoryStore()
	return New(svc, blobs), svc, blobs
}

func TestParseFormat(t *testing.T) {
	if _, ok := ParseFormat("csv"); !ok {
		t.Fatal("csv should parse")
	}
	if _, ok := ParseFormat("json"); !ok {
		t.Fatal("json should parse")
	}
	if _, ok := ParseFormat("xml"); ok {
		t.Fatal("xml should not parse")
	}
}

func TestRunCSVUsesSchemaColumnOrder(t *testing.T) {
	exp, svc, blobs := newTestExporter(t)
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, domain.TaskInput{
		Descricao:   "Enviar proposta",
		Responsavel: "Lucas",
		DataLimite:  domain.NewDate(2026, time.September, 15),
		Status:      domain.TaskStatusPendente,
		Prioridade:  domain.PriorityAlta,
		Observacoes: "ligar antes",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, err := exp.Run(ctx, domain.ModuleTasks, FormatCSV)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Module != domain.ModuleTasks || rec.Format != FormatCSV || rec.SizeBytes == 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	_, body, err := blobs.Get(ctx, rec.Key)
	if err != nil {
		t.Fatalf("get artifact: %v", err)
	}
	defer func() { _ = body.Close() }()
	rows, err := csv.NewReader(body).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	wantHeader := []string{"task_id", "descricao", "responsavel", "data_limite", "status", "prioridade", "observacoes", "data_criacao"}
	if strings.Join(rows[0], ",") != strings.Join(wantHeader, ",") {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Enviar proposta" || rows[1][3] != "2026-09-15" {
		t.Fatalf("unexpected data row: %v", rows[1])
	}
}

func TestRunJSONRoundTrips(t *testing.T) {
	exp, svc, blobs := newTestExporter(t)
	ctx := context.Background()

	if _, err := svc.CreateSale(ctx, domain.SaleInput{
		Tipo:         domain.SaleTypeLicitacao,
		ClienteOrgao: "Prefeitura de Teste",
		ValorTotal:   50000,
		DataVenda:    domain.NewDate(2026, time.August, 1),
		Responsavel:  "Dani",
		Status:       domain.SaleStatusGanha,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, err := exp.Run(ctx, domain.ModuleSales, FormatJSON)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	info, body, err := blobs.Get(ctx, rec.Key)
	if err != nil {
		t.Fatalf("get artifact: %v", err)
	}
	defer func() { _ = body.Close() }()
	if info.ContentType != "application/json" {
		t.Fatalf("content type %q", info.ContentType)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 1 || rows[0]["cliente_orgao"] != "Prefeitura de Teste" {
		t.Fatalf("unexpected payload: %v", rows)
	}
}

func TestRunEmptyModuleEncodesEmptyArray(t *testing.T) {
	exp, _, blobs := newTestExporter(t)
	ctx := context.Background()

	rec, err := exp.Run(ctx, domain.ModuleContacts, FormatJSON)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	_, body, err := blobs.Get(ctx, rec.Key)
	if err != nil {
		t.Fatalf("get artifact: %v", err)
	}
	defer func() { _ = body.Close() }()
	raw, _ := io.ReadAll(body)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestFindAndList(t *testing.T) {
	exp, _, _ := newTestExporter(t)
	ctx := context.Background()

	first, err := exp.Run(ctx, domain.ModuleTasks, FormatJSON)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := exp.Find(first.ID); !ok {
		t.Fatal("record not findable after run")
	}
	if _, ok := exp.Find("unknown"); ok {
		t.Fatal("unknown id should not resolve")
	}
	if got := len(exp.List()); got != 1 {
		t.Fatalf("expected 1 record, got %d", got)
	}
}
