// Package domain defines the persistent record types, enumerated value sets,
// and persistence contracts shared by the portal service and its stores.
package domain

import "time"

// EntityType identifies the kind of record stored in a module table.
type EntityType string

// Supported entity type identifiers used in errors and persistence buckets.
const (
	// EntityTask identifies a task record (module Tarefas).
	EntityTask EntityType = "task"
	// EntityContact identifies a follow-up contact record (module Contatos).
	EntityContact EntityType = "contact"
	// EntityMinute identifies a meeting-minute record (module Atas).
	EntityMinute EntityType = "minute"
	// EntitySale identifies a sale record (module Vendas).
	EntitySale EntityType = "sale"
	// EntityUser identifies a portal user account.
	EntityUser EntityType = "user"
)

// Module names the four record categories exposed over the API. The value is
// the wire path segment, not the display label.
type Module string

// Canonical module identifiers.
const (
	ModuleTasks    Module = "tasks"
	ModuleContacts Module = "contacts"
	ModuleMinutes  Module = "minutes"
	ModuleSales    Module = "sales"
)

// Modules lists every record module in sidebar order.
func Modules() []Module {
	return []Module{ModuleTasks, ModuleContacts, ModuleMinutes, ModuleSales}
}

// ParseModule resolves a wire path segment to a Module.
func ParseModule(s string) (Module, bool) {
	switch Module(s) {
	case ModuleTasks, ModuleContacts, ModuleMinutes, ModuleSales:
		return Module(s), true
	}
	return "", false
}

// TaskStatus enumerates task workflow states.
type TaskStatus string

// Canonical task statuses.
const (
	TaskStatusPendente    TaskStatus = "Pendente"
	TaskStatusEmAndamento TaskStatus = "Em Andamento"
	TaskStatusConcluida   TaskStatus = "Concluída"
	TaskStatusAtrasada    TaskStatus = "Atrasada"
)

// TaskStatusValues returns the task status set in form order.
func TaskStatusValues() []string {
	return []string{
		string(TaskStatusPendente),
		string(TaskStatusEmAndamento),
		string(TaskStatusConcluida),
		string(TaskStatusAtrasada),
	}
}

// Priority enumerates record priorities shared by tasks, contacts and minutes.
type Priority string

// Canonical priorities.
const (
	PriorityAlta  Priority = "Alta"
	PriorityMedia Priority = "Média"
	PriorityBaixa Priority = "Baixa"
)

// PriorityValues returns the priority set in form order.
func PriorityValues() []string {
	return []string{string(PriorityAlta), string(PriorityMedia), string(PriorityBaixa)}
}

// ContactStatus enumerates follow-up contact states.
type ContactStatus string

// Canonical contact statuses.
const (
	ContactStatusAberto          ContactStatus = "Aberto"
	ContactStatusConcluido       ContactStatus = "Concluído"
	ContactStatusAtrasado        ContactStatus = "Atrasado"
	ContactStatusFollowupPending ContactStatus = "Follow-up Pendente"
)

// ContactStatusValues returns the contact status set in form order.
func ContactStatusValues() []string {
	return []string{
		string(ContactStatusAberto),
		string(ContactStatusConcluido),
		string(ContactStatusAtrasado),
		string(ContactStatusFollowupPending),
	}
}

// MinuteStatus enumerates price-registration minute validity states.
type MinuteStatus string

// Canonical minute statuses.
const (
	MinuteStatusVigente     MinuteStatus = "Vigente"
	MinuteStatusVencendo60d MinuteStatus = "Vencendo (60d)"
	MinuteStatusUsoCritico  MinuteStatus = "Uso Crítico"
	MinuteStatusExpirada    MinuteStatus = "Expirada"
)

// MinuteStatusValues returns the minute status set in form order.
func MinuteStatusValues() []string {
	return []string{
		string(MinuteStatusVigente),
		string(MinuteStatusVencendo60d),
		string(MinuteStatusUsoCritico),
		string(MinuteStatusExpirada),
	}
}

// SaleStatus enumerates sale negotiation outcomes.
type SaleStatus string

// Canonical sale statuses.
const (
	SaleStatusGanha        SaleStatus = "Ganha"
	SaleStatusPerdida      SaleStatus = "Perdida"
	SaleStatusEmNegociacao SaleStatus = "Em Negociação"
)

// SaleStatusValues returns the sale status set in form order.
func SaleStatusValues() []string {
	return []string{string(SaleStatusGanha), string(SaleStatusPerdida), string(SaleStatusEmNegociacao)}
}

// SaleType enumerates the commercial nature of a sale.
type SaleType string

// Canonical sale types.
const (
	SaleTypeLicitacao     SaleType = "Licitação"
	SaleTypeEntregaDireta SaleType = "Entrega Direta"
	SaleTypeAssessoria    SaleType = "Assessoria"
)

// SaleTypeValues returns the sale type set in form order.
func SaleTypeValues() []string {
	return []string{string(SaleTypeLicitacao), string(SaleTypeEntregaDireta), string(SaleTypeAssessoria)}
}

// DefaultTeamMembers returns the built-in responsavel set. Deployments may
// override it through configuration.
func DefaultTeamMembers() []string {
	return []string{"Lucas", "Dani", "Bruno (Sócio)", "Fabrício (Sócio)", "Diego (Sócio)", "ABzinho"}
}

// Task is a persisted task record. ID and CreatedAt are store-generated and
// immutable.
type Task struct {
	ID          string     `json:"task_id"`
	Descricao   string     `json:"descricao"`
	Responsavel string     `json:"responsavel"`
	DataLimite  Date       `json:"data_limite"`
	Status      TaskStatus `json:"status"`
	Prioridade  Priority   `json:"prioridade"`
	Observacoes string     `json:"observacoes,omitempty"`
	CreatedAt   time.Time  `json:"data_criacao"`
}

// TaskInput carries the client-suppliable task fields.
type TaskInput struct {
	Descricao   string     `json:"descricao"`
	Responsavel string     `json:"responsavel"`
	DataLimite  Date       `json:"data_limite"`
	Status      TaskStatus `json:"status"`
	Prioridade  Priority   `json:"prioridade"`
	Observacoes string     `json:"observacoes,omitempty"`
}

// Contact is a persisted follow-up contact record.
type Contact struct {
	ID           string        `json:"contact_id"`
	PessoaOrgao  string        `json:"pessoa_orgao"`
	Motivo       string        `json:"motivo"`
	DataFollowup Date          `json:"data_followup"`
	Responsavel  string        `json:"responsavel"`
	Status       ContactStatus `json:"status"`
	Prioridade   Priority      `json:"prioridade"`
	CreatedAt    time.Time     `json:"data_criacao"`
}

// ContactInput carries the client-suppliable contact fields.
type ContactInput struct {
	PessoaOrgao  string        `json:"pessoa_orgao"`
	Motivo       string        `json:"motivo"`
	DataFollowup Date          `json:"data_followup"`
	Responsavel  string        `json:"responsavel"`
	Status       ContactStatus `json:"status"`
	Prioridade   Priority      `json:"prioridade"`
}

// Minute is a persisted price-registration minute record.
type Minute struct {
	ID             string       `json:"minute_id"`
	OrgaoEntidade  string       `json:"orgao_entidade"`
	Objeto         string       `json:"objeto"`
	ValorUtilizado float64      `json:"valor_utilizado"`
	VigenciaFinal  Date         `json:"vigencia_final"`
	Status         MinuteStatus `json:"status"`
	Prioridade     Priority     `json:"prioridade"`
	CreatedAt      time.Time    `json:"data_criacao"`
}

// MinuteInput carries the client-suppliable minute fields.
type MinuteInput struct {
	OrgaoEntidade  string       `json:"orgao_entidade"`
	Objeto         string       `json:"objeto"`
	ValorUtilizado float64      `json:"valor_utilizado"`
	VigenciaFinal  Date         `json:"vigencia_final"`
	Status         MinuteStatus `json:"status"`
	Prioridade     Priority     `json:"prioridade"`
}

// Sale is a persisted sale record. Sales carry no priority; list rendering
// falls back to the low-priority class.
type Sale struct {
	ID           string     `json:"sale_id"`
	Tipo         SaleType   `json:"tipo"`
	ClienteOrgao string     `json:"cliente_orgao"`
	ValorTotal   float64    `json:"valor_total"`
	DataVenda    Date       `json:"data_venda"`
	Responsavel  string     `json:"responsavel"`
	Status       SaleStatus `json:"status"`
	CreatedAt    time.Time  `json:"data_criacao"`
}

// SaleInput carries the client-suppliable sale fields.
type SaleInput struct {
	Tipo         SaleType   `json:"tipo"`
	ClienteOrgao string     `json:"cliente_orgao"`
	ValorTotal   float64    `json:"valor_total"`
	DataVenda    Date       `json:"data_venda"`
	Responsavel  string     `json:"responsavel"`
	Status       SaleStatus `json:"status"`
}

// User is a portal account. The bcrypt hash never crosses the wire.
type User struct {
	ID           string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
