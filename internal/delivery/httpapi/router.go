package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	usecase "github.com/leadrun/fulfillment-service/internal/usecase/order"
)

// NewRouter wires the fulfillment API surface. All mutating routes expect the
// operator identity in the X-Actor-ID header.
func NewRouter(uc usecase.FulfillmentUsecase) *chi.Mux {
	orders := NewOrderHandler(uc)
	injection := NewInjectionHandler(uc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orders.CreateOrder)
		r.Get("/", orders.ListOrders)
		r.Get("/stats", orders.GetStats)

		r.Route("/{orderID}", func(r chi.Router) {
			r.Get("/", orders.GetOrder)
			r.Patch("/", orders.UpdateOrder)
			r.Post("/cancel", orders.CancelOrder)
			r.Get("/export", orders.ExportLeads)

			r.Post("/injection/start", injection.Start)
			r.Post("/injection/pause", injection.Pause)
			r.Post("/injection/stop", injection.Stop)

			r.Post("/brokers/assign", injection.AssignBrokers)
			r.Post("/brokers/skip", injection.SkipBrokerAssignment)
			r.Get("/brokers/pending-leads", injection.PendingBrokerLeads)

			r.Post("/ftd/skip", injection.SkipFTDHandling)
			r.Post("/ftd/complete", injection.CompleteFTDHandling)
			r.Get("/ftd/leads", injection.FTDLeads)
		})
	})

	return r
}
