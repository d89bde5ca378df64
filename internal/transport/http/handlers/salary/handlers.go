package salaryhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"paystructure/internal/auth"
	"paystructure/internal/domain/audit"
	"paystructure/internal/domain/reports"
	"paystructure/internal/domain/salary"
	"paystructure/internal/requestctx"
	"paystructure/internal/transport/http/api"
	"paystructure/internal/transport/http/middleware"
	"paystructure/internal/transport/http/shared"
)

const (
	entityComponent = "salary_component"
	entityStructure = "salary_structure"
)

type Handler struct {
	Store       *salary.Store
	Audit       *audit.Service
	RequireAuth bool
	Logger      *slog.Logger
}

func NewHandler(store *salary.Store, audits *audit.Service, requireAuth bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if audits == nil {
		audits = audit.New(logger, 0)
	}
	return &Handler{Store: store, Audit: audits, RequireAuth: requireAuth, Logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salary", func(r chi.Router) {
		r.With(h.guard(auth.PermSalaryRead)).Get("/components", h.handleListComponents)
		r.With(h.guard(auth.PermSalaryWrite)).Post("/components", h.handleCreateComponent)
		r.With(h.guard(auth.PermSalaryRead)).Get("/components/{componentID}", h.handleGetComponent)
		r.With(h.guard(auth.PermSalaryWrite)).Patch("/components/{componentID}", h.handleUpdateComponent)
		r.With(h.guard(auth.PermSalaryWrite)).Delete("/components/{componentID}", h.handleDeleteComponent)

		r.With(h.guard(auth.PermSalaryRead)).Get("/structures", h.handleListStructures)
		r.With(h.guard(auth.PermSalaryWrite)).Post("/structures", h.handleCreateStructure)
		r.With(h.guard(auth.PermSalaryRead)).Get("/structures/{structureID}", h.handleGetStructure)
		r.With(h.guard(auth.PermSalaryWrite)).Patch("/structures/{structureID}", h.handleUpdateStructure)
		r.With(h.guard(auth.PermSalaryWrite)).Delete("/structures/{structureID}", h.handleDeleteStructure)
		r.With(h.guard(auth.PermSalaryWrite)).Post("/structures/{structureID}/recalculate", h.handleRecalculateStructure)
		r.With(h.guard(auth.PermSalaryRead)).Get("/structures/{structureID}/breakdown", h.handleBreakdown)
		r.With(h.guard(auth.PermSalaryExport)).Get("/structures/{structureID}/export.pdf", h.handleExportPDF)
		r.With(h.guard(auth.PermSalaryExport)).Get("/structures/{structureID}/export.xlsx", h.handleExportWorkbook)

		r.With(h.guard(auth.PermSalaryRead)).Post("/calculate", h.handleCalculate)
		r.With(h.guard(auth.PermAuditRead)).Get("/audit", h.handleListAudit)
	})
}

// guard enforces permission only when the service runs with authentication on.
func (h *Handler) guard(permission string) func(http.Handler) http.Handler {
	if !h.RequireAuth {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.RequirePermission(permission)
}

func (h *Handler) handleListComponents(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Store.Components(), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	comp, ok := h.Store.Component(chi.URLParam(r, "componentID"))
	if !ok {
		h.writeError(w, r, salary.ErrComponentNotFound)
		return
	}
	api.Success(w, comp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateComponent(w http.ResponseWriter, r *http.Request) {
	var payload componentPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	comp, err := h.Store.AddComponent(r.Context(), payload.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, "salary.component.create", entityComponent, comp.ID, nil, comp)
	api.Created(w, comp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	var payload componentPatchPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	id := chi.URLParam(r, "componentID")
	before, _ := h.Store.Component(id)
	comp, err := h.Store.UpdateComponent(r.Context(), id, payload.patch())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, "salary.component.update", entityComponent, comp.ID, before, comp)
	api.Success(w, comp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "componentID")
	before, _ := h.Store.Component(id)
	if err := h.Store.DeleteComponent(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, "salary.component.delete", entityComponent, id, before, nil)
	api.Success(w, map[string]string{"id": id}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleListStructures(w http.ResponseWriter, r *http.Request) {
	employeeID := strings.TrimSpace(r.URL.Query().Get("employeeId"))
	var active *bool
	if raw := strings.TrimSpace(r.URL.Query().Get("active")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			v := shared.NewValidator()
			v.Add("active", "must be true or false")
			v.Reject(w, requestctx.GetRequestID(r.Context()))
			return
		}
		active = &parsed
	}

	structures := make([]salary.Structure, 0)
	for _, s := range h.Store.Structures() {
		if employeeID != "" && s.EmployeeID != employeeID {
			continue
		}
		if active != nil && s.IsActive != *active {
			continue
		}
		structures = append(structures, s)
	}
	api.Success(w, structures, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGetStructure(w http.ResponseWriter, r *http.Request) {
	structure, ok := h.structure(w, r)
	if !ok {
		return
	}
	api.Success(w, structure, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateStructure(w http.ResponseWriter, r *http.Request) {
	var payload structurePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	in := payload.input(v)
	for i, id := range payload.ComponentIDs {
		if _, ok := h.Store.Component(id); id != "" && !ok {
			v.Add(fmt.Sprintf("componentIds[%d]", i), "unknown component")
		}
	}
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	structure, err := h.Store.AddStructure(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, "salary.structure.create", entityStructure, structure.ID, nil, structure)
	api.Created(w, structure, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateStructure(w http.ResponseWriter, r *http.Request) {
	var payload structurePatchPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	patch := payload.patch(v)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	id := chi.URLParam(r, "structureID")
	before, _ := h.Store.Structure(id)
	structure, err := h.Store.UpdateStructure(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, "salary.structure.update", entityStructure, structure.ID, before, structure)
	api.Success(w, structure, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteStructure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "structureID")
	before, _ := h.Store.Structure(id)
	if err := h.Store.DeleteStructure(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, "salary.structure.delete", entityStructure, id, before, nil)
	api.Success(w, map[string]string{"id": id}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleRecalculateStructure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "structureID")
	before, _ := h.Store.Structure(id)
	structure, err := h.Store.RecalculateStructure(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.record(r, "salary.structure.recalculate", entityStructure, structure.ID, before, structure)
	api.Success(w, structure, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	structure, ok := h.structure(w, r)
	if !ok {
		return
	}
	api.Success(w, h.Store.CalculateCTC(structure.Components), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf", "application/pdf", reports.StructurePDF)
}

func (h *Handler) handleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", reports.StructureWorkbook)
}

type renderFunc func(io.Writer, salary.Structure, salary.Result) error

// export renders into memory first so a failure can still be reported as JSON.
func (h *Handler) export(w http.ResponseWriter, r *http.Request, ext, contentType string, render renderFunc) {
	structure, ok := h.structure(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render(&buf, structure, h.Store.CalculateCTC(structure.Components)); err != nil {
		h.writeError(w, r, fmt.Errorf("export structure %s as %s: %w", structure.ID, ext, err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="salary-structure-%s.%s"`, structure.ID, ext))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		requestctx.Logger(r.Context(), h.Logger).Warn("write export failed", "err", err)
	}
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var payload calculatePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)

	components := inlineComponents(payload.Components)
	for i, id := range payload.ComponentIDs {
		comp, ok := h.Store.Component(id)
		if !ok {
			if id != "" {
				v.Add(fmt.Sprintf("componentIds[%d]", i), "unknown component")
			}
			continue
		}
		components = append(components, comp)
	}
	if payload.Basic != nil && payload.Basic.IsNegative() {
		v.Add("basic", "must not be negative")
	}
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	if payload.Basic != nil {
		components = salary.WithBasic(components, *payload.Basic)
	}
	api.Success(w, h.Store.CalculateCTC(components), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	page := v.Page(r, 50, 200)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}
	query := r.URL.Query()
	filter := audit.Filter{
		Action:     strings.TrimSpace(query.Get("action")),
		EntityType: strings.TrimSpace(query.Get("entityType")),
		ActorUser:  strings.TrimSpace(query.Get("actorId")),
	}
	api.Success(w, h.Audit.List(filter, page.Limit, page.Offset), requestctx.GetRequestID(r.Context()))
}

// record adds an audit event for a mutation that has been applied. A failure
// to record is logged and does not fail the request.
func (h *Handler) record(r *http.Request, action, entityType, entityID string, before, after any) {
	evt := audit.Event{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestctx.GetRequestID(r.Context()),
		IP:         middleware.ClientIP(r),
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		evt.ActorID = user.UserID
	}
	if err := h.Audit.Record(r.Context(), evt, before, after); err != nil {
		requestctx.Logger(r.Context(), h.Logger).Warn("audit record failed", "action", action, "err", err)
	}
}

func (h *Handler) structure(w http.ResponseWriter, r *http.Request) (salary.Structure, bool) {
	structure, ok := h.Store.Structure(chi.URLParam(r, "structureID"))
	if !ok {
		h.writeError(w, r, salary.ErrStructureNotFound)
		return salary.Structure{}, false
	}
	return structure, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestctx.GetRequestID(r.Context()))
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return false
	}
	return true
}
