package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/scanmark/rostersync/internal/utils"
	"github.com/scanmark/rostersync/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Post("/api/sync/", h.createSyncTicket)
	router.Get("/api/sync/ticket", h.redeemSyncTicket)

	router.MethodNotAllowed(methodNotAllowed)

	return router
}

// methodNotAllowed keeps error bodies JSON even for the router's own
// rejections: a GET on the create route or a POST on the redeem route
// answers 405, not a bare text page.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Error: "Method not allowed"}, http.StatusMethodNotAllowed)
}
