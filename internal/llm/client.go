package llm

import "context"

// Options es la configuración de generación fija que usa toda la app.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// DefaultOptions devuelve la configuración que el cliente original manda a
// todos los proveedores.
func DefaultOptions(model string) Options {
	return Options{
		Model:       model,
		MaxTokens:   4096,
		Temperature: 0.7,
		TopP:        0.4,
	}
}

// Client define la interfaz para generar respuestas con un LLM. El prompt ya
// llega aplanado (el contexto va embebido en el texto, no como historial
// multi-turno).
type Client interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
