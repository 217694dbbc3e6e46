package lessonplan

import (
	"errors"
	"testing"
)

func validRequest() Request {
	return Request{
		Grade:    "5to Primaria",
		Subject:  "Matemáticas",
		Topic:    "Fracciones equivalentes",
		Duration: DefaultDuration,
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *Request)
		wantField string
		wantRule  string
	}{
		{name: "valid", mutate: func(*Request) {}},
		{name: "context is optional", mutate: func(r *Request) { r.AdditionalContext = "" }},
		{name: "missing grade", mutate: func(r *Request) { r.Grade = "" }, wantField: "grade", wantRule: "required"},
		{name: "missing subject", mutate: func(r *Request) { r.Subject = "" }, wantField: "subject", wantRule: "required"},
		{name: "missing topic", mutate: func(r *Request) { r.Topic = "" }, wantField: "topic", wantRule: "required"},
		{name: "missing duration", mutate: func(r *Request) { r.Duration = "" }, wantField: "duration", wantRule: "required"},
		{name: "duration not a preset", mutate: func(r *Request) { r.Duration = "75 minutos" }, wantField: "duration", wantRule: "duration_preset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)
			err := ValidateRequest(r)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var inErr *InputError
			if !errors.As(err, &inErr) {
				t.Fatalf("expected *InputError, got %T (%v)", err, err)
			}
			if len(inErr.Fields) != 1 {
				t.Fatalf("expected 1 field error, got %+v", inErr.Fields)
			}
			if inErr.Fields[0].Field != tt.wantField || inErr.Fields[0].Rule != tt.wantRule {
				t.Fatalf("got %s/%s, want %s/%s", inErr.Fields[0].Field, inErr.Fields[0].Rule, tt.wantField, tt.wantRule)
			}
			if inErr.Message(tt.wantField) == "" {
				t.Fatal("expected a user-facing message")
			}
		})
	}
}

func TestValidateRequest_ReportsAllFields(t *testing.T) {
	err := ValidateRequest(Request{Duration: DefaultDuration})
	var inErr *InputError
	if !errors.As(err, &inErr) {
		t.Fatalf("expected *InputError, got %v", err)
	}
	if len(inErr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d", len(inErr.Fields))
	}
	if got := inErr.Message("grade"); got != "Este campo es obligatorio." {
		t.Fatalf("grade message = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	r := Request{Grade: "  5to ", Subject: "Ciencias\n", Topic: " El agua "}.Normalize()
	if r.Grade != "5to" || r.Subject != "Ciencias" || r.Topic != "El agua" {
		t.Fatalf("fields not trimmed: %+v", r)
	}
	if r.Duration != DefaultDuration {
		t.Fatalf("duration = %q, want default", r.Duration)
	}

	r = Request{Duration: "90 minutos"}.Normalize()
	if r.Duration != "90 minutos" {
		t.Fatalf("explicit duration overwritten: %q", r.Duration)
	}
}

func TestIsDurationPreset(t *testing.T) {
	for _, d := range DurationPresets {
		if !IsDurationPreset(d) {
			t.Errorf("%q should be a preset", d)
		}
	}
	if IsDurationPreset("60") {
		t.Error("bare number should not be a preset")
	}
}
