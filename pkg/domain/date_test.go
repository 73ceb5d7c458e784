package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2026-09-15" {
		t.Fatalf("expected 2026-09-15, got %s", d)
	}
}

func TestParseDateTruncatesTimestamps(t *testing.T) {
	d, err := ParseDate("2026-09-15T18:30:00Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !d.Equal(NewDate(2026, time.September, 15)) {
		t.Fatalf("expected 2026-09-15, got %s", d)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("15/09/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	type payload struct {
		Limite Date `json:"data_limite"`
	}
	raw, err := json.Marshal(payload{Limite: NewDate(2026, time.September, 15)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"data_limite":"2026-09-15"}` {
		t.Fatalf("unexpected wire form: %s", raw)
	}
	var decoded payload
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Limite.Equal(NewDate(2026, time.September, 15)) {
		t.Fatalf("round trip changed the date: %s", decoded.Limite)
	}
}

func TestZeroDateMarshalsEmpty(t *testing.T) {
	raw, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `""` {
		t.Fatalf("expected empty string, got %s", raw)
	}
	var d Date
	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !d.IsZero() {
		t.Fatal("null should stay zero")
	}
}
