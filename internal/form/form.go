// Package form validates the new-cycle form. Validation never panics or
// returns early: every field is checked and all problems are reported
// together so the UI can show them inline.
package form

import (
	"errors"
	"strconv"
	"strings"

	"github.com/xvierd/ignite-timer/internal/domain"
)

// Field names as they appear in FieldError.
const (
	FieldTask          = "task"
	FieldMinutesAmount = "minutesAmount"
)

// Messages shown next to invalid fields.
const (
	MsgTaskRequired   = "Informe a tarefa"
	MsgMinutesInteger = "Informe um número inteiro de minutos."
	MsgMinutesMin     = "Precisa ser no mínimo 1 minuto."
	MsgMinutesMax     = "Precisa ser no máximo 60 minutos."
)

// Input is the form as typed by the user.
type Input struct {
	Task          string
	MinutesAmount string
}

// Values is a validated form.
type Values struct {
	Task          string
	MinutesAmount int
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

// Result is either a valid Values or a list of field errors.
type Result struct {
	Value  Values
	Errors []FieldError
}

// Valid returns true when no field failed validation.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// FieldMessage returns the message for field, or "" if it is valid.
func (r Result) FieldMessage(field string) string {
	for _, fe := range r.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Err returns a *ValidationError for an invalid result, nil otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// ValidationError carries all field errors of a rejected form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "invalid cycle: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the domain sentinels behind each field error.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Validate checks the task and the minutes amount.
func Validate(in Input) Result {
	var res Result

	task := strings.TrimSpace(in.Task)
	if task == "" {
		res.Errors = append(res.Errors, FieldError{Field: FieldTask, Message: MsgTaskRequired, Err: domain.ErrEmptyTask})
	}
	res.Value.Task = task

	minutes, err := strconv.Atoi(strings.TrimSpace(in.MinutesAmount))
	switch {
	case err != nil:
		res.Errors = append(res.Errors, FieldError{Field: FieldMinutesAmount, Message: MsgMinutesInteger, Err: domain.ErrInvalidMinutes})
	case minutes < domain.MinMinutesAmount:
		res.Errors = append(res.Errors, FieldError{Field: FieldMinutesAmount, Message: MsgMinutesMin, Err: domain.ErrInvalidMinutes})
	case minutes > domain.MaxMinutesAmount:
		res.Errors = append(res.Errors, FieldError{Field: FieldMinutesAmount, Message: MsgMinutesMax, Err: domain.ErrInvalidMinutes})
	}
	res.Value.MinutesAmount = minutes

	return res
}

// ValidateValues validates an already-typed form, e.g. from CLI flags.
func ValidateValues(task string, minutesAmount int) Result {
	return Validate(Input{Task: task, MinutesAmount: strconv.Itoa(minutesAmount)})
}

// CanSubmit reports whether the submit control is enabled. It only looks
// at the task: the duration is checked on submit.
func CanSubmit(in Input) bool {
	return strings.TrimSpace(in.Task) != ""
}

// IsValidationError reports whether err is a rejected form.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
