// Package lessonplan turns a teacher's lesson parameters into a structured
// lesson plan built around the ABCD objective model.
//
// The Plan type is the contract with the generator: the JSON Schema handed
// to the model is reflected from it, and every response is validated
// against that same schema before a Plan is returned.
package lessonplan

// Phase is the stage of the lesson an activity belongs to.
type Phase string

const (
	PhaseStart       Phase = "Inicio"
	PhaseDevelopment Phase = "Desarrollo"
	PhaseClosing     Phase = "Cierre"
)

// Phases lists the lesson phases in teaching order.
var Phases = []Phase{PhaseStart, PhaseDevelopment, PhaseClosing}

// Request holds the parameters a teacher supplies for one generation.
type Request struct {
	Grade             string `json:"grade" validate:"required,max=120"`
	Subject           string `json:"subject" validate:"required,max=120"`
	Topic             string `json:"topic" validate:"required,max=200"`
	Duration          string `json:"duration" validate:"required,duration_preset"`
	AdditionalContext string `json:"additionalContext,omitempty" validate:"max=2000"`
}

// Plan is a complete lesson plan. Slices keep the order the generator
// produced them in.
type Plan struct {
	Title              string        `json:"title" jsonschema:"minLength=1" jsonschema_description:"Título atractivo de la clase"`
	Grade              string        `json:"grade,omitempty"`
	Subject            string        `json:"subject,omitempty"`
	Duration           string        `json:"duration,omitempty"`
	ABCDObjective      ABCDObjective `json:"abcdObjective"`
	GeneralObjective   string        `json:"generalObjective" jsonschema:"minLength=1"`
	SpecificObjectives []string      `json:"specificObjectives" jsonschema:"minItems=1"`
	Activities         []Activity    `json:"activities" jsonschema:"minItems=1" jsonschema_description:"Secuencia didáctica dividida en Inicio, Desarrollo y Cierre"`
	Rubric             []RubricItem  `json:"rubric" jsonschema:"minItems=1"`
}

// ABCDObjective is a learning objective split into Audience, Behavior,
// Condition and Degree, plus the combined sentence.
type ABCDObjective struct {
	Audience      string `json:"audience" jsonschema:"minLength=1"`
	Behavior      string `json:"behavior" jsonschema:"minLength=1"`
	Condition     string `json:"condition" jsonschema:"minLength=1"`
	Degree        string `json:"degree" jsonschema:"minLength=1"`
	FullStatement string `json:"fullStatement" jsonschema:"minLength=1"`
}

// Activity is one step of the lesson sequence.
type Activity struct {
	Phase       Phase  `json:"phase" jsonschema:"enum=Inicio,enum=Desarrollo,enum=Cierre"`
	Description string `json:"description" jsonschema:"minLength=1"`
	Duration    string `json:"duration" jsonschema:"minLength=1"`
}

// RubricItem is one evaluation criterion with its four performance levels.
type RubricItem struct {
	Criterion string       `json:"criterion" jsonschema:"minLength=1"`
	Levels    RubricLevels `json:"levels"`
}

type RubricLevels struct {
	Excellent string `json:"excellent" jsonschema:"minLength=1"`
	Good      string `json:"good" jsonschema:"minLength=1"`
	Fair      string `json:"fair" jsonschema:"minLength=1"`
	Poor      string `json:"poor" jsonschema:"minLength=1"`
}
