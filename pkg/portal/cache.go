package portal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gestor/pkg/domain"
	"gestor/pkg/view"
)

// cache holds fetched module records keyed by module. Invalidation is
// wholesale per module: any successful save drops the module's entry so
// the next Fetch re-reads from the API.
type cache struct {
	mu      sync.RWMutex
	entries map[domain.Module][]view.Record
}

func newCache() *cache {
	return &cache{entries: map[domain.Module][]view.Record{}}
}

func (c *cache) get(m domain.Module) ([]view.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records, ok := c.entries[m]
	return records, ok
}

func (c *cache) set(m domain.Module, records []view.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[m] = records
}

func (c *cache) invalidate(m domain.Module) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, m)
}

func (c *cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[domain.Module][]view.Record{}
}

// Fetch returns the module's records, served from the session cache when
// present, otherwise fetched and remapped to display form.
func (c *Client) Fetch(ctx context.Context, m domain.Module) ([]view.Record, error) {
	if records, ok := c.cache.get(m); ok {
		return records, nil
	}
	var rows []map[string]any
	if err := c.doJSON(ctx, "GET", "/api/v1/"+string(m), nil, &rows); err != nil {
		return nil, err
	}
	records := make([]view.Record, 0, len(rows))
	fields := view.Schema(m, c.team)
	for _, row := range rows {
		records = append(records, toDisplay(m, fields, row))
	}
	c.cache.set(m, records)
	return records, nil
}

// Invalidate drops the module's cached records.
func (c *Client) Invalidate(m domain.Module) { c.cache.invalidate(m) }

// Save persists a display-keyed form: POST when creating, PUT when
// editing id. The module's cache entry is invalidated on success so the
// listing reflects the server's state.
func (c *Client) Save(ctx context.Context, m domain.Module, form view.Record, editing bool, id string) error {
	payload, err := toWire(view.Schema(m, c.team), form)
	if err != nil {
		return err
	}
	path := "/api/v1/" + string(m)
	method := "POST"
	if editing {
		method = "PUT"
		path += "/" + id
	}
	if err := c.doJSON(ctx, method, path, payload, nil); err != nil {
		return err
	}
	c.cache.invalidate(m)
	return nil
}

// SubmitForm saves the open form of the active module and returns to the
// listing on success.
func (c *Client) SubmitForm(ctx context.Context, form view.Record) error {
	state := &c.session.State
	if err := c.Save(ctx, state.ActiveModule, form, state.Editing(), state.EditingID); err != nil {
		return err
	}
	state.Finish()
	return nil
}

// toDisplay remaps a wire row to display labels, parsing date columns.
func toDisplay(m domain.Module, fields []view.Field, row map[string]any) view.Record {
	rec := view.Record{}
	if id, ok := row[view.IDField(m)].(string); ok {
		rec["ID"] = id
	}
	for _, f := range fields {
		v := row[f.Name]
		if f.Kind == view.KindDate {
			if s, ok := v.(string); ok {
				if t, err := domain.ParseDate(s); err == nil {
					rec[f.Label] = t.Time()
					continue
				}
			}
		}
		rec[f.Label] = v
	}
	if s, ok := row["data_criacao"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			rec["Data Criação"] = t
		} else {
			rec["Data Criação"] = s
		}
	}
	return rec
}

// toWire remaps a display-keyed form to the API payload, serializing
// dates and cleaning currency strings.
func toWire(fields []view.Field, form view.Record) (map[string]any, error) {
	payload := make(map[string]any, len(fields))
	for _, f := range fields {
		v, ok := form[f.Label]
		if !ok {
			continue
		}
		switch f.Kind {
		case view.KindDate:
			switch t := v.(type) {
			case time.Time:
				payload[f.Name] = t.Format("2006-01-02")
			case string:
				payload[f.Name] = t
			default:
				return nil, fmt.Errorf("field %s: unsupported date value %T", f.Label, v)
			}
		case view.KindCurrency:
			switch t := v.(type) {
			case float64:
				payload[f.Name] = t
			case string:
				amount, err := view.CleanCurrency(t)
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", f.Label, err)
				}
				payload[f.Name] = amount
			default:
				return nil, fmt.Errorf("field %s: unsupported currency value %T", f.Label, v)
			}
		default:
			payload[f.Name] = v
		}
	}
	return payload, nil
}
