package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	usecase "github.com/leadrun/fulfillment-service/internal/usecase/order"
	orderdto "github.com/leadrun/fulfillment-service/internal/usecase/dto/order"
)

type InjectionHandler struct {
	uc usecase.FulfillmentUsecase
}

func NewInjectionHandler(uc usecase.FulfillmentUsecase) *InjectionHandler {
	return &InjectionHandler{uc: uc}
}

func (h *InjectionHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.uc.StartInjection, "in_progress")
}

func (h *InjectionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.uc.PauseInjection, "paused")
}

func (h *InjectionHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.uc.StopInjection, "completed")
}

func (h *InjectionHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, orderID string) error, next string) {
	if err := op(r.Context(), chi.URLParam(r, "orderID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"injection_status": next})
}

type assignBrokersRequest struct {
	Assignments []struct {
		LeadID   string `json:"lead_id"`
		BrokerID string `json:"broker_id"`
		Domain   string `json:"domain"`
	} `json:"assignments"`
}

func (h *InjectionHandler) AssignBrokers(w http.ResponseWriter, r *http.Request) {
	var req assignBrokersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	input := &orderdto.AssignBrokersInput{
		OrderID:    chi.URLParam(r, "orderID"),
		AssignedBy: actorID(r),
	}
	for _, a := range req.Assignments {
		input.Assignments = append(input.Assignments, orderdto.BrokerAssignmentInput{
			LeadID:   a.LeadID,
			BrokerID: a.BrokerID,
			Domain:   a.Domain,
		})
	}
	if err := h.uc.AssignBrokers(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *InjectionHandler) SkipBrokerAssignment(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.SkipBrokerAssignment(r.Context(), chi.URLParam(r, "orderID"), actorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"broker_assignment": "skipped"})
}

func (h *InjectionHandler) SkipFTDHandling(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.SkipFTDHandling(r.Context(), chi.URLParam(r, "orderID"), actorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ftd_handling": "skipped"})
}

func (h *InjectionHandler) CompleteFTDHandling(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.CompleteFTDHandling(r.Context(), chi.URLParam(r, "orderID"), actorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ftd_handling": "completed"})
}

func (h *InjectionHandler) PendingBrokerLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.uc.PendingBrokerLeads(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponses(leads))
}

func (h *InjectionHandler) FTDLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.uc.FTDLeads(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponses(leads))
}
