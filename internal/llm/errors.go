package llm

import "errors"

// Taxonomia de fallas del cliente generativo. El orquestador resuelve
// cualquiera de estas con fallback local; ninguna es fatal para el pipeline.
var (
	// ErrUnavailable: sin credenciales o configuracion; no se intenta red.
	ErrUnavailable = errors.New("llm client unavailable")
	// ErrRateLimited: el proveedor devolvio HTTP 429.
	ErrRateLimited = errors.New("llm rate limited")
	// ErrTransport: fallo de red o HTTP durante la invocacion.
	ErrTransport = errors.New("llm transport failure")
)
