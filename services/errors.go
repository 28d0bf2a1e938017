package services

import (
	"fmt"
	"sort"
	"strings"
)

// Доменные ошибки движков. Контроллеры переводят их в единый
// формат {"error": {"code", "message", "details"}}.

// ValidationError агрегирует ошибки по всем невалидным полям сразу.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return joinFields(e.Fields)
}

// NotFoundError — объект с таким идентификатором не существует.
type NotFoundError struct {
	Field   string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ForbiddenError — объект принадлежит другому пользователю.
type ForbiddenError struct {
	Field   string
	Message string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError — расчёт уже использован или имеет недопустимый статус.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// joinFields собирает "field: message; field2: message" в стабильном порядке
func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	return strings.Join(parts, "; ")
}
