package view

import (
	"strings"

	"gestor/pkg/domain"
)

// PriorityClass maps a priority value to its row CSS class. Unknown or
// missing values fall back to the low class, matching sales records that
// carry no priority at all.
func PriorityClass(priority string) string {
	switch {
	case strings.EqualFold(priority, string(domain.PriorityAlta)):
		return "priority-high"
	case strings.EqualFold(priority, string(domain.PriorityMedia)):
		return "priority-medium"
	default:
		return "priority-low"
	}
}

// PriorityStripClass maps a priority value to the inline badge class used
// inside the priority column.
func PriorityStripClass(priority string) string {
	return "priority-strip-" + strings.TrimPrefix(PriorityClass(priority), "priority-")
}
