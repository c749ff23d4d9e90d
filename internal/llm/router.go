package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Nombres de proveedor que el router conoce.
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderMistral    = "mistral"
	ProviderGroq       = "groq"
	ProviderXAI        = "xai"
	ProviderGoogle     = "google"
	ProviderOpenRouter = "openrouter"
)

// Route es el resultado de resolver un selector de modelo.
type Route struct {
	Provider string
	Model    string
}

// modelTable mapea los selectores fijos de la UI a (proveedor, modelo real).
var modelTable = map[string]Route{
	"gpt35":             {Provider: ProviderOpenAI, Model: "gpt-3.5-turbo"},
	"gpt4o-mini":        {Provider: ProviderOpenAI, Model: "gpt-4o-mini"},
	"claude-sonnet":     {Provider: ProviderAnthropic, Model: "claude-3-5-sonnet-20240620"},
	"claude-haiku":      {Provider: ProviderAnthropic, Model: "claude-3-5-haiku-20240620"},
	"open-mistral-nemo": {Provider: ProviderMistral, Model: "open-mistral-nemo"},
	"mistral-large":     {Provider: ProviderMistral, Model: "mistral-large-2407"},
	"xai":               {Provider: ProviderXAI, Model: "grok-beta"},
	"groq":              {Provider: ProviderGroq, Model: "llama-3.2-90b-vision-preview"},
}

// defaultRoute es el fallback cuando el selector no matchea nada.
var defaultRoute = Route{Provider: ProviderOpenAI, Model: "gpt-3.5-turbo"}

// Router mapea un selector (proveedor, modelo) al cliente correcto y lo
// invoca con la configuración de generación fija.
type Router struct {
	clients map[string]Client
	logger  *zap.Logger
}

// NewRouter construye el router con un cliente por proveedor. Los proveedores
// sin credenciales pueden omitirse; seleccionarlos devuelve GenerationError.
func NewRouter(clients map[string]Client, logger *zap.Logger) *Router {
	if clients == nil {
		clients = map[string]Client{}
	}
	return &Router{clients: clients, logger: logger}
}

// Resolve determina proveedor y modelo real a partir del selector:
// un "/" indica modelo de OpenRouter, el prefijo "gemini" va a Google y
// el resto pasa por la tabla fija con fallback a gpt-3.5-turbo.
func Resolve(selector string) Route {
	selector = strings.TrimSpace(selector)

	if strings.Contains(selector, "/") {
		return Route{Provider: ProviderOpenRouter, Model: selector}
	}

	if strings.HasPrefix(selector, "gemini") {
		return Route{Provider: ProviderGoogle, Model: geminiModelName(selector)}
	}

	if route, ok := modelTable[selector]; ok {
		return route
	}
	return defaultRoute
}

// geminiModelName fija la revisión concreta de cada alias de Gemini.
func geminiModelName(selector string) string {
	switch selector {
	case "gemini-1.5-flash":
		return "gemini-1.5-flash-001"
	case "gemini-1.5-pro":
		return "gemini-1.5-pro-001"
	default:
		return "gemini-1.5-pro-001"
	}
}

// Generate resuelve el selector y pide una completion de un solo turno.
// Cualquier fallo del proveedor (o respuesta vacía) sale como GenerationError.
func (r *Router) Generate(ctx context.Context, selector, prompt string) (string, error) {
	route := Resolve(selector)

	client, ok := r.clients[route.Provider]
	if !ok || client == nil {
		return "", &GenerationError{
			Provider: route.Provider,
			Model:    route.Model,
			Err:      fmt.Errorf("provider not configured"),
		}
	}

	text, err := client.Generate(ctx, prompt, DefaultOptions(route.Model))
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("generation failed",
				zap.String("provider", route.Provider),
				zap.String("model", route.Model),
				zap.Error(err),
			)
		}
		return "", &GenerationError{Provider: route.Provider, Model: route.Model, Err: err}
	}

	return text, nil
}
