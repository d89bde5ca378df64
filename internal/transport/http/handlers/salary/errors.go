package salaryhandler

import (
	"errors"
	"net/http"

	"paystructure/internal/domain/salary"
	"paystructure/internal/requestctx"
	"paystructure/internal/transport/http/api"
	"paystructure/internal/transport/http/shared"
)

// writeError maps store errors onto the response envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())

	var verr *salary.ValidationError
	var perr *salary.PersistenceError
	switch {
	case errors.As(err, &verr):
		issues := make([]shared.ValidationIssue, 0, len(verr.Issues))
		for _, issue := range verr.Issues {
			issues = append(issues, shared.ValidationIssue{Field: issue.Field, Reason: issue.Reason})
		}
		shared.FailValidation(w, reqID, issues)
	case errors.Is(err, salary.ErrDuplicateCode):
		api.Fail(w, http.StatusConflict, "duplicate_code", err.Error(), reqID)
	case errors.Is(err, salary.ErrComponentNotFound), errors.Is(err, salary.ErrStructureNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	case errors.Is(err, salary.ErrUnsupportedCalculation):
		api.Fail(w, http.StatusUnprocessableEntity, "unsupported_calculation", err.Error(), reqID)
	case errors.As(err, &perr):
		requestctx.Logger(r.Context(), h.Logger).Error("salary state not persisted", "op", perr.Op, "err", perr.Err)
		api.Fail(w, http.StatusServiceUnavailable, "persistence_error", "changes could not be saved", reqID)
	default:
		requestctx.Logger(r.Context(), h.Logger).Error("salary request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
