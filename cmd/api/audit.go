package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

const defaultAuditLimit = 50

// listAuditHandler godoc
//
//	@Summary		Status change history of an entity
//	@Description	Returns the audit trail recorded by the status worker, newest first
//	@Tags			audit
//	@Produce		json
//	@Param			entity_id	path	string	true	"Entity ID"
//	@Param			limit		query	int		false	"Max records, defaults to 50"
//	@Success		200			{array}	domain.StatusAudit
//	@Router			/audit/{entity_id} [get]
func (app *application) listAuditHandler(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entity_id")
	if entityID == "" {
		app.badRequestResponse(w, r, errors.New("entity_id is required"))
		return
	}

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	audits, err := app.auditService.ListByEntity(r.Context(), entityID, limit)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}
