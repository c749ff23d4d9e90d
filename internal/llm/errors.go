package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion indica que el proveedor respondió sin contenido.
var ErrEmptyCompletion = errors.New("llm empty response")

// GenerationError envuelve el fallo del proveedor para que la capa HTTP lo
// convierta en una notificación al usuario. No se reintenta.
type GenerationError struct {
	Provider string
	Model    string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (provider=%s model=%s): %v", e.Provider, e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
