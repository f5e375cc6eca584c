package llm

import (
	"context"
	"strings"
	"sync"
)

// MockClient permite tests y corridas offline sin llamar a un LLM real.
// Respond asigna respuestas por fragmento de prompt; si ninguna matchea se
// devuelve Response. Los prompts recibidos quedan registrados para asserts.
type MockClient struct {
	Response  string
	Err       error
	Available *bool

	mu       sync.Mutex
	byNeedle []mockRule
	Prompts  []string
}

type mockRule struct {
	needle   string
	response string
	err      error
}

// Respond registra una respuesta para prompts que contengan needle.
func (m *MockClient) Respond(needle, response string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byNeedle = append(m.byNeedle, mockRule{needle: needle, response: response})
	return m
}

// Fail registra un error para prompts que contengan needle.
func (m *MockClient) Fail(needle string, err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byNeedle = append(m.byNeedle, mockRule{needle: needle, err: err})
	return m
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	for _, r := range m.byNeedle {
		if strings.Contains(prompt, r.needle) {
			return r.response, r.err
		}
	}
	return m.Response, m.Err
}

// IsAvailable reporta disponible salvo que Available lo fuerce a false.
func (m *MockClient) IsAvailable() bool {
	if m.Available != nil {
		return *m.Available
	}
	return true
}

// IsMock marca al cliente como doble de prueba para el sufijo de procedencia.
func (m *MockClient) IsMock() bool { return true }
