// Package apperr define los dos tipos de error de negocio del sistema:
// validación (entidad inexistente, estado inválido, créditos insuficientes...)
// y autorización (rol no permitido, credenciales inválidas).
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
)

var (
	// Sentinels para errors.Is.
	ErrValidation    = errors.New("validation error")
	ErrAuthorization = errors.New("authorization error")
)

type Error struct {
	Kind    Kind
	Message string

	// NotFound marca validaciones del tipo "X not found" (el handler responde 404).
	NotFound bool

	// Field opcional cuando el error viene de un campo puntual del input.
	Field string

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrAuthorization:
		return e.Kind == KindAuthorization
	}
	return false
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func FieldValidation(field, msg string) error {
	return &Error{Kind: KindValidation, Message: msg, Field: field}
}

// NotFound produce "<resource> not found" como error de validación.
func NotFound(resource string) error {
	return &Error{Kind: KindValidation, Message: resource + " not found", NotFound: true}
}

func Authorization(msg string) error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsAuthorization(err error) bool { return errors.Is(err, ErrAuthorization) }

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.NotFound
}

// Message devuelve el texto apto para mostrar al usuario.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
