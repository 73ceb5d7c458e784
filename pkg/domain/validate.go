package domain

import (
	"fmt"
	"strings"
)

// Input validation rejects missing required fields and out-of-set enum values
// at the service boundary; the original UI relied on form affordances alone.

func memberOf(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func required(fields []FieldError, name, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		fields = append(fields, FieldError{Field: name, Reason: "required"})
	}
	return fields
}

func enum(fields []FieldError, name, value string, set []string) []FieldError {
	if !memberOf(value, set) {
		fields = append(fields, FieldError{
			Field:  name,
			Reason: fmt.Sprintf("must be one of %s", strings.Join(set, ", ")),
		})
	}
	return fields
}

func requiredDate(fields []FieldError, name string, value Date) []FieldError {
	if value.IsZero() {
		fields = append(fields, FieldError{Field: name, Reason: "required"})
	}
	return fields
}

func nonNegative(fields []FieldError, name string, value float64) []FieldError {
	if value < 0 {
		fields = append(fields, FieldError{Field: name, Reason: "must not be negative"})
	}
	return fields
}

func finish(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return ValidationError{Fields: fields}
}

// Validate checks required fields and enum membership. team is the allowed
// responsavel set.
func (in TaskInput) Validate(team []string) error {
	var fields []FieldError
	fields = required(fields, "descricao", in.Descricao)
	fields = enum(fields, "responsavel", in.Responsavel, team)
	fields = requiredDate(fields, "data_limite", in.DataLimite)
	fields = enum(fields, "status", string(in.Status), TaskStatusValues())
	fields = enum(fields, "prioridade", string(in.Prioridade), PriorityValues())
	return finish(fields)
}

// Validate checks required fields and enum membership.
func (in ContactInput) Validate(team []string) error {
	var fields []FieldError
	fields = required(fields, "pessoa_orgao", in.PessoaOrgao)
	fields = required(fields, "motivo", in.Motivo)
	fields = requiredDate(fields, "data_followup", in.DataFollowup)
	fields = enum(fields, "responsavel", in.Responsavel, team)
	fields = enum(fields, "status", string(in.Status), ContactStatusValues())
	fields = enum(fields, "prioridade", string(in.Prioridade), PriorityValues())
	return finish(fields)
}

// Validate checks required fields and enum membership.
func (in MinuteInput) Validate(_ []string) error {
	var fields []FieldError
	fields = required(fields, "orgao_entidade", in.OrgaoEntidade)
	fields = required(fields, "objeto", in.Objeto)
	fields = nonNegative(fields, "valor_utilizado", in.ValorUtilizado)
	fields = requiredDate(fields, "vigencia_final", in.VigenciaFinal)
	fields = enum(fields, "status", string(in.Status), MinuteStatusValues())
	fields = enum(fields, "prioridade", string(in.Prioridade), PriorityValues())
	return finish(fields)
}

// Validate checks required fields and enum membership.
func (in SaleInput) Validate(team []string) error {
	var fields []FieldError
	fields = enum(fields, "tipo", string(in.Tipo), SaleTypeValues())
	fields = required(fields, "cliente_orgao", in.ClienteOrgao)
	fields = nonNegative(fields, "valor_total", in.ValorTotal)
	fields = requiredDate(fields, "data_venda", in.DataVenda)
	fields = enum(fields, "responsavel", in.Responsavel, team)
	fields = enum(fields, "status", string(in.Status), SaleStatusValues())
	return finish(fields)
}
