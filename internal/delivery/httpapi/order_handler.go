package httpapi

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/leadrun/fulfillment-service/internal/domain"
	usecase "github.com/leadrun/fulfillment-service/internal/usecase/order"
	orderdto "github.com/leadrun/fulfillment-service/internal/usecase/dto/order"
)

type OrderHandler struct {
	uc usecase.FulfillmentUsecase
}

func NewOrderHandler(uc usecase.FulfillmentUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type createOrderRequest struct {
	RequesterID string `json:"requester_id"`
	Requests    struct {
		FTD    int `json:"ftd"`
		Filler int `json:"filler"`
		Cold   int `json:"cold"`
		Live   int `json:"live"`
	} `json:"requests"`
	Include *struct {
		Filler bool `json:"filler"`
		Cold   bool `json:"cold"`
		Live   bool `json:"live"`
	} `json:"include,omitempty"`
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
	Country  string `json:"country"`
	Gender   string `json:"gender"`

	ClientNetworkID string `json:"client_network_id"`
	OurNetworkID    string `json:"our_network_id"`
	CampaignID      string `json:"campaign_id"`

	Injection struct {
		Enabled        bool   `json:"enabled"`
		Mode           string `json:"mode"`
		StartTime      string `json:"start_time"`
		EndTime        string `json:"end_time"`
		MinIntervalSec int    `json:"min_interval_sec"`
		MaxIntervalSec int    `json:"max_interval_sec"`
		Device         struct {
			SelectionMode  string         `json:"selection_mode"`
			BulkDeviceType string         `json:"bulk_device_type"`
			Ratio          map[string]int `json:"ratio"`
			Individual     []struct {
				LeadID     string `json:"lead_id"`
				DeviceType string `json:"device_type"`
			} `json:"individual"`
			Available []string `json:"available"`
		} `json:"device"`
	} `json:"injection"`
}

type createOrderResponse struct {
	Order orderResponse  `json:"order"`
	Leads []leadResponse `json:"leads"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	input := &orderdto.CreateOrderInput{
		RequesterID: req.RequesterID,
		Requests: domain.LeadCounts{
			FTD:    req.Requests.FTD,
			Filler: req.Requests.Filler,
			Cold:   req.Requests.Cold,
			Live:   req.Requests.Live,
		},
		Priority: req.Priority,
		Notes:    req.Notes,
		Country:  req.Country,
		Gender:   req.Gender,

		ClientNetworkID: req.ClientNetworkID,
		OurNetworkID:    req.OurNetworkID,
		CampaignID:      req.CampaignID,

		Injection: orderdto.InjectionParams{
			Enabled:        req.Injection.Enabled,
			Mode:           domain.InjectionMode(req.Injection.Mode),
			StartTime:      req.Injection.StartTime,
			EndTime:        req.Injection.EndTime,
			MinIntervalSec: req.Injection.MinIntervalSec,
			MaxIntervalSec: req.Injection.MaxIntervalSec,
			Device:         toDeviceConfig(req),
		},
	}
	if req.Include != nil {
		input.Include = domain.IncludeTypes{
			Filler: req.Include.Filler,
			Cold:   req.Include.Cold,
			Live:   req.Include.Live,
		}
	}
	if input.RequesterID == "" {
		input.RequesterID = actorID(r)
	}

	out, err := h.uc.CreateOrder(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createOrderResponse{
		Order: toOrderResponse(&out.Order),
		Leads: toLeadResponses(out.Leads),
	})
}

func toDeviceConfig(req createOrderRequest) domain.DeviceConfig {
	dev := req.Injection.Device
	cfg := domain.DeviceConfig{
		SelectionMode:  domain.DeviceSelectionMode(dev.SelectionMode),
		BulkDeviceType: domain.DeviceType(dev.BulkDeviceType),
	}
	if len(dev.Ratio) > 0 {
		cfg.Ratio = make(map[domain.DeviceType]int, len(dev.Ratio))
		for deviceType, weight := range dev.Ratio {
			cfg.Ratio[domain.DeviceType(deviceType)] = weight
		}
	}
	for _, item := range dev.Individual {
		cfg.Individual = append(cfg.Individual, domain.IndividualDevice{
			LeadID:     item.LeadID,
			DeviceType: domain.DeviceType(item.DeviceType),
		})
	}
	for _, available := range dev.Available {
		cfg.Available = append(cfg.Available, domain.DeviceType(available))
	}
	return cfg
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.uc.GetOrderByID(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type listOrdersResponse struct {
	Orders []orderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := &orderdto.ListOrdersInput{
		Filter: domain.OrderFilter{
			RequesterID: q.Get("requester_id"),
			Status:      domain.OrderStatus(q.Get("status")),
			Priority:    q.Get("priority"),
		},
	}
	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date_from"})
			return
		}
		input.Filter.DateFrom = t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date_to"})
			return
		}
		input.Filter.DateTo = t
	}
	input.Page, _ = strconv.Atoi(q.Get("page"))
	input.Limit, _ = strconv.Atoi(q.Get("limit"))

	out, err := h.uc.ListOrders(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := listOrdersResponse{
		Orders: make([]orderResponse, 0, len(out.Orders)),
		Total:  out.Total,
		Page:   out.Page,
		Limit:  out.Limit,
	}
	for _, order := range out.Orders {
		resp.Orders = append(resp.Orders, toOrderResponse(order))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uc.GetOrderStats(r.Context(), r.URL.Query().Get("requester_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]statsResponse, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, statsResponse{
			Status:         string(s.Status),
			Count:          s.Count,
			TotalRequested: s.TotalRequested,
			TotalFulfilled: s.TotalFulfilled,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type updateOrderRequest struct {
	Priority *string `json:"priority"`
	Notes    *string `json:"notes"`
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	order, err := h.uc.UpdateOrder(r.Context(), &orderdto.UpdateOrderInput{
		OrderID:  chi.URLParam(r, "orderID"),
		Priority: req.Priority,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var req cancelOrderRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := h.uc.CancelOrder(r.Context(), chi.URLParam(r, "orderID"), actorID(r), req.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *OrderHandler) ExportLeads(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	rows, err := h.uc.ExportLeads(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "order-"+orderID+"-leads.csv"))
	cw := csv.NewWriter(w)
	_ = cw.WriteAll(rows)
}
