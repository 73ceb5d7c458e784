// Package view holds the presentation contract shared by every client of
// the portal: per-module field schemas, pt-BR currency helpers, priority
// styling, and the navigation state machine.
package view

import "gestor/pkg/domain"

// Kind classifies how a field is rendered and parsed.
type Kind string

const (
	// KindText is a single-line free text field.
	KindText Kind = "text"
	// KindMultiline is a multi-line free text field.
	KindMultiline Kind = "multiline"
	// KindSelect is a closed choice over Options.
	KindSelect Kind = "select"
	// KindDate is a calendar date.
	KindDate Kind = "date"
	// KindCurrency is a monetary amount rendered in pt-BR format.
	KindCurrency Kind = "currency"
)

// Field describes one form field of a module: its wire (JSON) name, the
// label shown to users, how it is rendered, and the closed option set for
// selects.
type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Options []string
}

// Schema returns the ordered field descriptors for a module. The same
// order drives form layout, payload mapping, and export column order.
// team supplies the options of every "Responsável" select.
func Schema(m domain.Module, team []string) []Field {
	switch m {
	case domain.ModuleTasks:
		return []Field{
			{Name: "descricao", Label: "Descrição", Kind: KindMultiline},
			{Name: "responsavel", Label: "Responsável", Kind: KindSelect, Options: team},
			{Name: "data_limite", Label: "Data Limite", Kind: KindDate},
			{Name: "status", Label: "Status", Kind: KindSelect, Options: domain.TaskStatusValues()},
			{Name: "prioridade", Label: "Prioridade", Kind: KindSelect, Options: domain.PriorityValues()},
			{Name: "observacoes", Label: "Observações", Kind: KindMultiline},
		}
	case domain.ModuleContacts:
		return []Field{
			{Name: "pessoa_orgao", Label: "Pessoa/Órgão", Kind: KindText},
			{Name: "motivo", Label: "Motivo", Kind: KindText},
			{Name: "data_followup", Label: "Data Follow-up", Kind: KindDate},
			{Name: "responsavel", Label: "Responsável", Kind: KindSelect, Options: team},
			{Name: "status", Label: "Status", Kind: KindSelect, Options: domain.ContactStatusValues()},
			{Name: "prioridade", Label: "Prioridade", Kind: KindSelect, Options: domain.PriorityValues()},
		}
	case domain.ModuleMinutes:
		return []Field{
			{Name: "orgao_entidade", Label: "Órgão/Entidade", Kind: KindText},
			{Name: "objeto", Label: "Objeto/Itens", Kind: KindText},
			{Name: "valor_utilizado", Label: "Valor Utilizado (R$)", Kind: KindCurrency},
			{Name: "vigencia_final", Label: "Vigência Final", Kind: KindDate},
			{Name: "status", Label: "Status", Kind: KindSelect, Options: domain.MinuteStatusValues()},
			{Name: "prioridade", Label: "Prioridade", Kind: KindSelect, Options: domain.PriorityValues()},
		}
	case domain.ModuleSales:
		return []Field{
			{Name: "tipo", Label: "Tipo", Kind: KindSelect, Options: domain.SaleTypeValues()},
			{Name: "cliente_orgao", Label: "Cliente/Órgão", Kind: KindText},
			{Name: "valor_total", Label: "Valor Total (R$)", Kind: KindCurrency},
			{Name: "data_venda", Label: "Data da Venda", Kind: KindDate},
			{Name: "responsavel", Label: "Responsável", Kind: KindSelect, Options: team},
			{Name: "status", Label: "Status", Kind: KindSelect, Options: domain.SaleStatusValues()},
		}
	}
	return nil
}

// IDField returns the wire name of a module's identifier.
func IDField(m domain.Module) string {
	switch m {
	case domain.ModuleTasks:
		return "task_id"
	case domain.ModuleContacts:
		return "contact_id"
	case domain.ModuleMinutes:
		return "minute_id"
	case domain.ModuleSales:
		return "sale_id"
	}
	return ""
}

// LabelFor returns the display label of a wire name, or the wire name
// itself when the schema does not know it.
func LabelFor(fields []Field, name string) string {
	for _, f := range fields {
		if f.Name == name {
			return f.Label
		}
	}
	return name
}

// WireFor is the inverse of LabelFor.
func WireFor(fields []Field, label string) string {
	for _, f := range fields {
		if f.Label == label {
			return f.Name
		}
	}
	return label
}
