// Package export snapshots a module's records into CSV or JSON artifacts
// stored in the blob layer.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"gestor/internal/blob"
	"gestor/internal/core"
	"gestor/pkg/domain"
	"gestor/pkg/view"
)

// Format selects the artifact encoding.
type Format string

const (
	// FormatCSV encodes records as CSV with view-schema column order.
	FormatCSV Format = "csv"
	// FormatJSON encodes records as the wire JSON array.
	FormatJSON Format = "json"
)

// ParseFormat resolves a wire value to a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), true
	}
	return "", false
}

// Record describes one completed export.
type Record struct {
	ID        string        `json:"id"`
	Module    domain.Module `json:"module"`
	Format    Format        `json:"format"`
	Key       string        `json:"key"`
	SizeBytes int64         `json:"size_bytes"`
	CreatedAt time.Time     `json:"created_at"`
}

// Exporter snapshots module records through the service and writes the
// artifact to a blob store. Completed records are indexed in memory for
// lookup; the artifact itself is durable in the blob store.
type Exporter struct {
	svc   *core.Service
	blobs blob.Store

	mu      sync.RWMutex
	records map[string]Record

	now   func() time.Time
	newID func() string
}

// New returns an Exporter writing through svc to blobs.
func New(svc *core.Service, blobs blob.Store) *Exporter {
	return &Exporter{
		svc:     svc,
		blobs:   blobs,
		records: map[string]Record{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Run snapshots module's current records in the given format and stores
// the artifact.
func (e *Exporter) Run(ctx context.Context, module domain.Module, format Format) (Record, error) {
	rows, err := e.listWireRows(ctx, module)
	if err != nil {
		return Record{}, err
	}
	var (
		payload     []byte
		contentType string
	)
	switch format {
	case FormatCSV:
		payload, err = encodeCSV(module, e.svc.Team(), rows)
		contentType = "text/csv"
	case FormatJSON:
		payload, err = json.MarshalIndent(rows, "", "  ")
		contentType = "application/json"
	default:
		return Record{}, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return Record{}, err
	}

	id := e.newID()
	createdAt := e.now().UTC()
	key := fmt.Sprintf("%s/%s-%s.%s", module, createdAt.Format("20060102T150405Z"), id, format)
	info, err := e.blobs.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: contentType,
		Metadata: map[string]string{
			"export-id": id,
			"module":    string(module),
			"format":    string(format),
		},
	})
	if err != nil {
		return Record{}, fmt.Errorf("store export artifact: %w", err)
	}

	rec := Record{ID: id, Module: module, Format: format, Key: info.Key, SizeBytes: info.Size, CreatedAt: createdAt}
	e.mu.Lock()
	e.records[id] = rec
	e.mu.Unlock()
	return rec, nil
}

// Find returns the record of a completed export.
func (e *Exporter) Find(id string) (Record, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rec, ok := e.records[id]
	return rec, ok
}

// List returns every completed export, most recent first.
func (e *Exporter) List() []Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Record, 0, len(e.records))
	for _, rec := range e.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// listWireRows fetches module records and flattens them to wire-keyed maps
// so one encoder serves all four modules.
func (e *Exporter) listWireRows(ctx context.Context, module domain.Module) ([]map[string]any, error) {
	var (
		raw any
		err error
	)
	switch module {
	case domain.ModuleTasks:
		raw, err = e.svc.ListTasks(ctx)
	case domain.ModuleContacts:
		raw, err = e.svc.ListContacts(ctx)
	case domain.ModuleMinutes:
		raw, err = e.svc.ListMinutes(ctx)
	case domain.ModuleSales:
		raw, err = e.svc.ListSales(ctx)
	default:
		return nil, fmt.Errorf("unknown module %q", module)
	}
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(encoded, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}

func encodeCSV(module domain.Module, team []string, rows []map[string]any) ([]byte, error) {
	fields := view.Schema(module, team)
	header := make([]string, 0, len(fields)+2)
	header = append(header, view.IDField(module))
	for _, f := range fields {
		header = append(header, f.Name)
	}
	header = append(header, "data_criacao")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, name := range header {
			cells[i] = cellString(row[name])
		}
		if err := w.Write(cells); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
