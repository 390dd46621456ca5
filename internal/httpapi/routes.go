package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/draftroom/draftroom/internal/hub"
	"github.com/draftroom/draftroom/internal/metrics"
	"github.com/draftroom/draftroom/internal/orchestrator"
	"github.com/draftroom/draftroom/internal/ws"
)

func SetupRoutes(o *orchestrator.Orchestrator, h *hub.Hub, mets *metrics.Metrics, d Defaults) http.Handler {
	r := chi.NewRouter()

	r.Post("/drafts", StartDraft(o, d))
	r.Get("/drafts/{draftID}", GetDraft(o))
	r.Post("/drafts/{draftID}/advance", AdvanceTurn(o))
	r.Post("/drafts/{draftID}/picks", HumanPick(o))
	r.Get("/drafts/{draftID}/players", AvailablePlayers(o))
	r.Get("/drafts/{draftID}/deviations", Deviations(o))
	r.Get("/drafts/{draftID}/participants", Assignments(o))
	r.Get("/archetypes", Archetypes)

	r.Get("/healthz", Healthz)
	r.Method(http.MethodGet, "/metrics", mets.Handler())
	r.Get("/ws", ws.Handler(h))
	return r
}
