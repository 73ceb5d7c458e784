package view

import "time"

// Record is one row as the presentation layer sees it: keys are display
// labels (plus "ID" and "Data Criação"), date values are time.Time.
type Record map[string]any

// ID returns the record identifier, empty when absent.
func (r Record) ID() string {
	id, _ := r["ID"].(string)
	return id
}

// Date returns a date-valued column, zero when absent or not a date.
func (r Record) Date(label string) time.Time {
	t, _ := r[label].(time.Time)
	return t
}

// String returns a text column, empty when absent.
func (r Record) String(label string) string {
	s, _ := r[label].(string)
	return s
}
