package importer

import (
	"fmt"
)

// message is a rule violation shown to the user verbatim.
type message string

func (m message) Error() string { return string(m) }

const (
	errDateRequired     message = "Data é obrigatória"
	errDateInvalid      message = "Data inválida. Use o formato DD/MM/AAAA"
	errCodeRequired     message = "Código é obrigatório"
	errBranchRequired   message = "Filial é obrigatória"
	errDescRequired     message = "Descrição é obrigatória"
	errQtyRequired      message = "Quantidade é obrigatória"
	errQtyNotNumber     message = "Quantidade deve ser um número"
	errQtyNotInteger    message = "Quantidade deve ser um número inteiro"
	errQtyNegative      message = "Quantidade não pode ser negativa"
	errQtyTooLarge      message = "Quantidade muito grande"
	errUnitRequired     message = "Valor Unit. é obrigatório"
	errUnitInvalid      message = "Valor Unit. inválido"
	errUnitNotPositive  message = "Valor Unit. deve ser maior que zero"
	errTotalRequired    message = "Valor Total é obrigatório"
	errTotalInvalid     message = "Valor Total inválido"
	errTotalNotPositive message = "Valor Total deve ser maior que zero"
	errCustomerRequired message = "Cliente é obrigatório"
	errTaxIDRequired    message = "CPF/CNPJ é obrigatório"
	errTaxIDDigits      message = "CPF/CNPJ deve ter 11 ou 14 dígitos"
	errTypeInvalid      message = `Tipo deve ser "produto" ou "serviço"`
	errStatusInvalid    message = `Status deve ser "concluída" ou "cancelada"`
)

// FieldError is a rule violation on one column of one row.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError locates a FieldError in the uploaded file. Line is the
// 1-based spreadsheet line, so the first data row is line 2.
type ValidationError struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("Linha %d: %s - %s", e.Line, e.Field, e.Message)
}

func totalMismatch(stored, computed string) FieldError {
	return FieldError{
		Field:   "Valor Total",
		Message: fmt.Sprintf("Valor total (%s) não corresponde a quantidade × valor unitário (%s)", stored, computed),
	}
}
