package http

import (
	"io"
	"net/http"

	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/internal/utils"
	"github.com/scanmark/rostersync/models"
)

// notFoundMessage is the fixed body for every redeem miss. A code that never
// existed, one already taken, and one past its deadline all read the same.
const notFoundMessage = "Code expired or not found"

func (h *Handler) createSyncTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createSyncTicket").Msg("error reading request body")
		utils.WriteJSON(w, models.ErrorResponse{Error: "error reading request body"}, http.StatusBadRequest)
		return
	}

	snapshot, err := models.UnmarshalSnapshotBody(body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createSyncTicket").Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	response, err := h.services.SyncService.CreateTicket(ctx, snapshot)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createSyncTicket").Msg("error creating sync ticket")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) redeemSyncTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	code := r.URL.Query().Get("code")

	snapshot, err := h.services.SyncService.RedeemTicket(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "*Handler.redeemSyncTicket").Str("code", code).Msg("error redeeming sync ticket")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, snapshot, http.StatusOK)
}

// writeError maps a service or store error to the uniform JSON error body.
// Client errors carry the sentinel's own message, registry misses the fixed
// not-found message, and server faults a short label plus the underlying
// detail.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	response := models.ErrorResponse{Error: err.Error()}
	switch {
	case status == http.StatusNotFound:
		response.Error = notFoundMessage
	case status >= http.StatusInternalServerError:
		response = models.ErrorResponse{Error: "internal error", Detail: err.Error()}
	}

	utils.WriteJSON(w, response, status)
}
