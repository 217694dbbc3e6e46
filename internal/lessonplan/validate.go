package lessonplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"

	"github.com/omegalab/lessonplan/internal/llm"
)

// Validation failure kinds. Match them with errors.Is.
var (
	ErrEmptyOutput     = errors.New("generator returned empty output")
	ErrMalformedJSON   = errors.New("generator output is not valid JSON")
	ErrSchemaViolation = errors.New("generator output does not match the plan schema")
)

// ValidationError reports why raw generator output was rejected. Fields
// holds JSON pointer paths of the offending values, when known.
type ValidationError struct {
	Kind   error
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if len(e.Fields) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Fields, ", "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == e.Kind }

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate parses raw generator output into a Plan, enforcing the plan
// schema plus non-blank required text. It never repairs input.
func Validate(raw string) (*Plan, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationError{Kind: ErrEmptyOutput}
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ValidationError{Kind: ErrMalformedJSON, Err: err}
	}

	compiled, err := llm.CompileSchema(DescribeSchema())
	if err != nil {
		return nil, fmt.Errorf("compile plan schema: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, &ValidationError{
			Kind:   ErrSchemaViolation,
			Fields: violationPaths(err),
			Err:    err,
		}
	}

	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, &ValidationError{Kind: ErrSchemaViolation, Err: err}
	}
	if blank := plan.blankFields(); len(blank) > 0 {
		return nil, &ValidationError{
			Kind:   ErrSchemaViolation,
			Fields: blank,
			Err:    errors.New("required text is blank"),
		}
	}
	return &plan, nil
}

// violationPaths flattens a schema validation error into the instance
// locations of its leaf causes.
func violationPaths(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}

	seen := map[string]bool{}
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	var walk func(v *jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) > 0 {
			for _, c := range v.Causes {
				walk(c)
			}
			return
		}
		base := "/" + strings.Join(v.InstanceLocation, "/")
		if req, ok := v.ErrorKind.(*kind.Required); ok {
			for _, m := range req.Missing {
				add(strings.TrimSuffix(base, "/") + "/" + m)
			}
			return
		}
		add(base)
	}
	walk(ve)
	return paths
}

// blankFields lists required text fields that are present but contain only
// whitespace. Empty strings are already rejected by the schema.
func (p *Plan) blankFields() []string {
	var out []string
	check := func(path, v string) {
		if strings.TrimSpace(v) == "" {
			out = append(out, path)
		}
	}

	check("/title", p.Title)
	check("/abcdObjective/audience", p.ABCDObjective.Audience)
	check("/abcdObjective/behavior", p.ABCDObjective.Behavior)
	check("/abcdObjective/condition", p.ABCDObjective.Condition)
	check("/abcdObjective/degree", p.ABCDObjective.Degree)
	check("/abcdObjective/fullStatement", p.ABCDObjective.FullStatement)
	check("/generalObjective", p.GeneralObjective)
	for i, o := range p.SpecificObjectives {
		check(fmt.Sprintf("/specificObjectives/%d", i), o)
	}
	for i, a := range p.Activities {
		check(fmt.Sprintf("/activities/%d/description", i), a.Description)
		check(fmt.Sprintf("/activities/%d/duration", i), a.Duration)
	}
	for i, r := range p.Rubric {
		prefix := fmt.Sprintf("/rubric/%d", i)
		check(prefix+"/criterion", r.Criterion)
		check(prefix+"/levels/excellent", r.Levels.Excellent)
		check(prefix+"/levels/good", r.Levels.Good)
		check(prefix+"/levels/fair", r.Levels.Fair)
		check(prefix+"/levels/poor", r.Levels.Poor)
	}
	return out
}
