package lessonplan

import (
	"errors"
	"fmt"
)

// Kind classifies a failed generation.
type Kind int

const (
	// KindConfiguration means no generator credential is available.
	KindConfiguration Kind = iota + 1
	// KindProvider means the completion service failed or was unreachable.
	KindProvider
	// KindInvalidResponse means the service answered with unusable content.
	KindInvalidResponse
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindProvider:
		return "provider"
	case KindInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// User-facing texts.
const (
	msgConfiguration   = "La API key no está configurada en el entorno. Verifica la configuración (variables LESSONPLAN_* o archivo de configuración)."
	msgProviderPrefix  = "Error de OMEGA AI: "
	msgUnknownProvider = "Error desconocido al procesar la solicitud."
	msgEmptyOutput     = "La IA devolvió una respuesta vacía."
	msgInvalidResponse = "No se pudo generar el plan de clase. Inténtalo de nuevo."
)

// ErrNoProvider is wrapped by configuration failures raised before any
// provider call.
var ErrNoProvider = errors.New("no LLM provider configured")

// GenerationError is the single error type returned by Service.Generate.
type GenerationError struct {
	Kind Kind
	// Message is the provider diagnostic for KindProvider.
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lesson plan generation failed (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("lesson plan generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UserMessage returns the Spanish text shown to the teacher.
func (e *GenerationError) UserMessage() string {
	switch e.Kind {
	case KindConfiguration:
		return msgConfiguration
	case KindProvider:
		msg := e.Message
		if msg == "" {
			msg = msgUnknownProvider
		}
		return msgProviderPrefix + msg
	case KindInvalidResponse:
		if errors.Is(e.Err, ErrEmptyOutput) {
			return msgEmptyOutput
		}
		return msgInvalidResponse
	default:
		return msgProviderPrefix + msgUnknownProvider
	}
}

// UserMessage renders any error from this package for display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.UserMessage()
	}
	return msgProviderPrefix + err.Error()
}
