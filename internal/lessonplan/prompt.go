package lessonplan

import (
	"fmt"
	"strings"
)

const systemPrompt = `Actúa como un experto en diseño curricular pedagógico de vanguardia.
Diseñas planes de clase detallados, creativos y aplicables en el aula.
Responde únicamente con un objeto JSON que siga el esquema proporcionado. Todo el contenido debe estar en español.`

// BuildPrompt composes the system instruction and user message for req.
func BuildPrompt(req Request) (system, user string) {
	extra := strings.TrimSpace(req.AdditionalContext)
	if extra == "" {
		extra = "Ninguno"
	}

	var b strings.Builder
	b.WriteString("Genera un plan de clase detallado y creativo en ESPAÑOL para la siguiente información:\n")
	fmt.Fprintf(&b, "Grado: %s\n", req.Grade)
	fmt.Fprintf(&b, "Materia: %s\n", req.Subject)
	fmt.Fprintf(&b, "Tema: %s\n", req.Topic)
	fmt.Fprintf(&b, "Duración: %s\n", req.Duration)
	fmt.Fprintf(&b, "Contexto adicional: %s\n\n", extra)
	b.WriteString("El plan debe seguir rigurosamente el modelo ABCD (Audiencia, Comportamiento, Condición y Grado).\n")
	b.WriteString("Proporciona objetivos generales, específicos, actividades divididas en Inicio, Desarrollo y Cierre, ")
	b.WriteString("y una rúbrica de evaluación con criterios claros.\n")
	b.WriteString("Las duraciones de las actividades deben sumar la duración total de la clase.\n")
	b.WriteString("Responde estrictamente en formato JSON siguiendo el esquema proporcionado.")

	return systemPrompt, b.String()
}
