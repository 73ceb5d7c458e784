package domain

import (
	"strings"
	"testing"
	"time"
)

func validTaskInput() TaskInput {
	return TaskInput{
		Descricao:   "Enviar proposta",
		Responsavel: "Lucas",
		DataLimite:  NewDate(2026, time.September, 15),
		Status:      TaskStatusPendente,
		Prioridade:  PriorityAlta,
	}
}

func TestTaskInputValidateAccepts(t *testing.T) {
	if err := validTaskInput().Validate(DefaultTeamMembers()); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestTaskInputValidateRejectsUnknownStatus(t *testing.T) {
	in := validTaskInput()
	in.Status = "Feita"
	err := in.Validate(DefaultTeamMembers())
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "status") {
		t.Fatalf("expected status field in error, got %q", err.Error())
	}
}

func TestTaskInputValidateRejectsUnknownResponsavel(t *testing.T) {
	in := validTaskInput()
	in.Responsavel = "Alguém"
	if err := in.Validate(DefaultTeamMembers()); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTaskInputValidateCollectsAllFields(t *testing.T) {
	err := TaskInput{}.Validate(DefaultTeamMembers())
	var verr ValidationError
	if !asValidation(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{"descricao", "responsavel", "data_limite", "status", "prioridade"}
	if len(verr.Fields) != len(want) {
		t.Fatalf("expected %d field errors, got %d: %v", len(want), len(verr.Fields), verr.Fields)
	}
	for i, name := range want {
		if verr.Fields[i].Field != name {
			t.Fatalf("field %d: expected %s, got %s", i, name, verr.Fields[i].Field)
		}
	}
}

func TestContactInputValidate(t *testing.T) {
	in := ContactInput{
		PessoaOrgao:  "Prefeitura de Teste",
		Motivo:       "Retorno de orçamento",
		DataFollowup: NewDate(2026, time.October, 1),
		Responsavel:  "Dani",
		Status:       ContactStatusAberto,
		Prioridade:   PriorityMedia,
	}
	if err := in.Validate(DefaultTeamMembers()); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	in.Status = "Fechado"
	if err := in.Validate(DefaultTeamMembers()); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMinuteInputValidateRejectsNegativeValor(t *testing.T) {
	in := MinuteInput{
		OrgaoEntidade:  "Secretaria de Obras",
		Objeto:         "Material elétrico",
		ValorUtilizado: -1,
		VigenciaFinal:  NewDate(2027, time.January, 31),
		Status:         MinuteStatusVigente,
		Prioridade:     PriorityBaixa,
	}
	err := in.Validate(nil)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "valor_utilizado") {
		t.Fatalf("expected valor_utilizado in error, got %q", err.Error())
	}
}

func TestSaleInputValidate(t *testing.T) {
	in := SaleInput{
		Tipo:         SaleTypeLicitacao,
		ClienteOrgao: "Câmara Municipal",
		ValorTotal:   15000,
		DataVenda:    NewDate(2026, time.August, 20),
		Responsavel:  "Bruno (Sócio)",
		Status:       SaleStatusGanha,
	}
	if err := in.Validate(DefaultTeamMembers()); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	in.Tipo = "Revenda"
	if err := in.Validate(DefaultTeamMembers()); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func asValidation(err error, out *ValidationError) bool {
	verr, ok := err.(ValidationError)
	if ok {
		*out = verr
	}
	return ok
}
