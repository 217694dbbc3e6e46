package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/omegalab/lessonplan/internal/flow"
	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/render"
)

//go:embed templates/page.html
var templateFS embed.FS

// busyMessage is shown when a submission arrives while one is in flight.
const busyMessage = "Ya se está generando un plan. Espera a que termine."

var formLabels = map[string]string{
	"grade":       render.FormGrade,
	"subject":     render.FormSubject,
	"topic":       render.FormTopic,
	"duration":    render.FormDuration,
	"context":     render.FormContext,
	"optional":    render.FormOptional,
	"hintGrade":   render.HintGrade,
	"hintSubject": render.HintSubject,
	"hintTopic":   render.HintTopic,
	"hintContext": render.HintContext,
	"submit":      render.SubmitLabel,
	"generating":  render.GeneratingLabel,
}

type handlers struct {
	gen        flow.Generator
	ctrl       *flow.Controller
	configured bool
	version    string
	pages      *template.Template
	logger     zerolog.Logger
}

func newHandlers(deps Dependencies, logger zerolog.Logger) (*handlers, error) {
	tmpl, err := render.Templates()
	if err != nil {
		return nil, err
	}
	tmpl, err = tmpl.Funcs(template.FuncMap{
		"form": func(key string) string { return formLabels[key] },
	}).ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, err
	}

	ctrl := deps.Controller
	if ctrl == nil {
		ctrl = flow.New()
	}
	return &handlers{
		gen:        deps.Generator,
		ctrl:       ctrl,
		configured: deps.Configured,
		version:    deps.Version,
		pages:      tmpl,
		logger:     logger.With().Str("component", "handlers").Logger(),
	}, nil
}

// pageData feeds the "page" template.
type pageData struct {
	Request       lessonplan.Request
	Durations     []string
	FieldErrors   map[string]string
	Error         string
	Notice        string
	Plan          *lessonplan.Plan
	Submitting    bool
	Configured    bool
	ConfigMessage string
}

func (h *handlers) page(snap flow.Snapshot) pageData {
	req := snap.Request
	if req.Duration == "" {
		req.Duration = lessonplan.DefaultDuration
	}
	return pageData{
		Request:     req,
		Durations:   lessonplan.DurationPresets,
		FieldErrors: map[string]string{},
		Error:       snap.ErrorText,
		Plan:        snap.Plan,
		Submitting:  snap.State == flow.Submitting,
		Configured:  h.configured,
		ConfigMessage: lessonplan.UserMessage(&lessonplan.GenerationError{
			Kind: lessonplan.KindConfiguration,
		}),
	}
}

// Index handles GET /
func (h *handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, h.page(h.ctrl.Snapshot()))
}

// SubmitForm handles POST /plans. The generation runs within the request;
// the browser is then redirected to the form, which shows the outcome.
func (h *handlers) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulario no válido", http.StatusBadRequest)
		return
	}
	req := lessonplan.Request{
		Grade:             r.PostForm.Get("grade"),
		Subject:           r.PostForm.Get("subject"),
		Topic:             r.PostForm.Get("topic"),
		Duration:          r.PostForm.Get("duration"),
		AdditionalContext: r.PostForm.Get("additionalContext"),
	}.Normalize()

	if err := lessonplan.ValidateRequest(req); err != nil {
		data := h.page(h.ctrl.Snapshot())
		data.Request = req
		data.Error = ""
		var ierr *lessonplan.InputError
		if !errors.As(err, &ierr) {
			h.logger.Error().Err(err).Msg("Request validation failed")
			http.Error(w, "error interno", http.StatusInternalServerError)
			return
		}
		for _, f := range ierr.Fields {
			data.FieldErrors[f.Field] = f.Message
		}
		h.renderPage(w, http.StatusUnprocessableEntity, data)
		return
	}

	snap, ok := h.submit(r, req)
	if !ok {
		data := h.page(snap)
		data.Notice = busyMessage
		h.renderPage(w, http.StatusConflict, data)
		return
	}
	http.Redirect(w, r, "/#result-section", http.StatusSeeOther)
}

// PrintablePlan handles GET /plans/current
func (h *handlers) PrintablePlan(w http.ResponseWriter, r *http.Request) {
	plan := h.ctrl.Snapshot().Plan
	if plan == nil {
		http.Error(w, "todavía no hay un plan generado", http.StatusNotFound)
		return
	}
	body, err := render.HTML(plan)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to render plan")
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// MarkdownPlan handles GET /plans/current.md
func (h *handlers) MarkdownPlan(w http.ResponseWriter, r *http.Request) {
	plan := h.ctrl.Snapshot().Plan
	if plan == nil {
		http.Error(w, "todavía no hay un plan generado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="plan-de-clase.md"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(render.Markdown(plan)))
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error     string                  `json:"error"`
	Message   string                  `json:"message"`
	Fields    []lessonplan.FieldError `json:"fields,omitempty"`
	RequestID string                  `json:"request_id,omitempty"`
}

// CreatePlan handles POST /api/plans
func (h *handlers) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req lessonplan.Request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	req = req.Normalize()

	if err := lessonplan.ValidateRequest(req); err != nil {
		var ierr *lessonplan.InputError
		if errors.As(err, &ierr) {
			h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:     "validation_failed",
				Message:   "Missing or invalid fields",
				Fields:    ierr.Fields,
				RequestID: middleware.GetReqID(r.Context()),
			})
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	snap, ok := h.submit(r, req)
	if !ok {
		h.writeError(w, r, http.StatusConflict, "busy", busyMessage)
		return
	}
	if snap.State == flow.Failed {
		status, code := errorStatus(snap.Err)
		h.writeJSON(w, status, errorResponse{
			Error:     code,
			Message:   snap.ErrorText,
			RequestID: snap.RequestID,
		})
		return
	}
	h.writeJSON(w, http.StatusOK, snap.Plan)
}

// currentResponse is the body of GET /api/plans/current.
type currentResponse struct {
	State     string              `json:"state"`
	RequestID string              `json:"request_id,omitempty"`
	Request   *lessonplan.Request `json:"request,omitempty"`
	Plan      *lessonplan.Plan    `json:"plan,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// CurrentPlan handles GET /api/plans/current
func (h *handlers) CurrentPlan(w http.ResponseWriter, r *http.Request) {
	snap := h.ctrl.Snapshot()
	resp := currentResponse{
		State:     snap.State.String(),
		RequestID: snap.RequestID,
		Plan:      snap.Plan,
		Error:     snap.ErrorText,
	}
	if snap.State != flow.Idle {
		req := snap.Request
		resp.Request = &req
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /healthz
func (h *handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"version":    h.version,
		"configured": h.configured,
		"state":      h.ctrl.State().String(),
	})
}

func (h *handlers) submit(r *http.Request, req lessonplan.Request) (flow.Snapshot, bool) {
	snap, ok := h.ctrl.Submit(r.Context(), h.generator(), req)
	if !ok {
		h.logger.Warn().Str("topic", req.Topic).Msg("Submission rejected, generation in flight")
		return snap, false
	}
	event := h.logger.Info()
	if snap.State == flow.Failed {
		event = h.logger.Warn().Err(snap.Err)
	}
	event.
		Str("request_id", snap.RequestID).
		Str("http_request_id", middleware.GetReqID(r.Context())).
		Str("state", snap.State.String()).
		Msg("Submission completed")
	return snap, true
}

// generator never returns nil so a missing provider still ends in Failed.
func (h *handlers) generator() flow.Generator {
	if h.gen != nil {
		return h.gen
	}
	return unconfigured{}
}

type unconfigured struct{}

func (unconfigured) Generate(context.Context, lessonplan.Request) (*lessonplan.Plan, error) {
	return nil, &lessonplan.GenerationError{Kind: lessonplan.KindConfiguration, Err: lessonplan.ErrNoProvider}
}

func errorStatus(err error) (int, string) {
	var ge *lessonplan.GenerationError
	if !errors.As(err, &ge) {
		return http.StatusBadGateway, "provider_error"
	}
	switch ge.Kind {
	case lessonplan.KindConfiguration:
		return http.StatusServiceUnavailable, "configuration_error"
	case lessonplan.KindInvalidResponse:
		return http.StatusBadGateway, "invalid_response"
	default:
		return http.StatusBadGateway, "provider_error"
	}
}

func (h *handlers) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf strings.Builder
	if err := h.pages.ExecuteTemplate(&buf, "page", data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}
