package llm

import "context"

// MockClient permite tests sin llamar a un proveedor real.
type MockClient struct {
	Response string
	Err      error

	// LastPrompt y LastOpts guardan la última invocación para aserciones.
	LastPrompt string
	LastOpts   Options
}

func (m *MockClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	m.LastPrompt = prompt
	m.LastOpts = opts
	return m.Response, m.Err
}
