package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorDetail единое тело ошибки для всех эндпоинтов
type ErrorDetail struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// NewErrorResponse строит тело ошибки; message склеивается из details
// в стабильном порядке полей
func NewErrorResponse(code int, details map[string]string) ErrorResponse {
	if details == nil {
		details = map[string]string{}
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, details[k]))
	}
	return ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: strings.Join(parts, "; "),
		Details: details,
	}}
}

// ErrorJSON отвечает единым телом ошибки с полевыми деталями
func ErrorJSON(c *gin.Context, code int, details map[string]string) {
	c.JSON(code, NewErrorResponse(code, details))
}

// ErrorMessage отвечает единым телом ошибки без полевых деталей
func ErrorMessage(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: map[string]string{},
	}})
}

// AbortError используется из middleware: отвечает и прерывает цепочку
func AbortError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: map[string]string{},
	}})
}
