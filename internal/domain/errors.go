package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("Transação não encontrada")
	ErrQRCodeMissing = errors.New("QR Code não recebido")
)

// ValidationError is returned for missing or invalid client-supplied fields.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError is a non-2xx answer from the processor. Details holds the
// head of the raw response body.
type UpstreamError struct {
	StatusCode int
	Details    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Erro na API GhostPay: %d", e.StatusCode)
}
