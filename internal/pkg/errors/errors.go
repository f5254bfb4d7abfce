package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись не найдена ИЛИ у пользователя нет
	// к ней доступа. Оба случая намеренно неразличимы для вызывающего кода,
	// чтобы не раскрывать существование чужих вопросов и билетов.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется, когда запрос пришел без валидного пользователя.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия
	// (например, не-админ пытается раздать билет).
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (например, предмет с таким именем уже существует у пользователя).
	ErrConflict = errors.New("resource state conflict")
)
