package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrPricelistNotFound    = errors.New("pricelist not found")
	ErrForbidden            = errors.New("capability missing")
	ErrUnknownRuleKind      = errors.New("unknown rule kind")
	ErrAssistantUnavailable = errors.New("assistant is not configured")
	ErrNextID               = errors.New("get next id from generator")
)

// ActivationError lists the validation issues that blocked activation.
type ActivationError struct {
	issues []string
}

func newActivationError(issues []string) *ActivationError {
	return &ActivationError{issues: issues}
}

func IsActivationError(err error) *ActivationError {
	if err == nil {
		return nil
	}

	var activationError *ActivationError

	if errors.As(err, &activationError) {
		return activationError
	}

	return nil
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("pricelist has %d blocking issues: %+v", len(e.issues), e.issues)
}

func (e *ActivationError) Issues() []string {
	return e.issues
}

type InputError struct {
	fields map[string][]string
}

func NewInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) FieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) AddError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
