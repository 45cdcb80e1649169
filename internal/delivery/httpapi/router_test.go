package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadrun/fulfillment-service/internal/domain"
	orderdto "github.com/leadrun/fulfillment-service/internal/usecase/dto/order"
)

type stubUsecase struct {
	order       *domain.Order
	createInput *orderdto.CreateOrderInput
	started     []string
	startErr    error
	exportRows  [][]string
}

func (s *stubUsecase) CreateOrder(_ context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error) {
	s.createInput = input
	if input.Requests.Total() == 0 {
		return nil, domain.ErrValidation
	}
	return &orderdto.OrderOutput{Order: *s.order}, nil
}

func (s *stubUsecase) GetOrderByID(_ context.Context, orderID string) (*domain.Order, error) {
	if s.order == nil || s.order.ID != orderID {
		return nil, domain.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubUsecase) ListOrders(_ context.Context, input *orderdto.ListOrdersInput) (*orderdto.ListOrdersOutput, error) {
	return &orderdto.ListOrdersOutput{Orders: []*domain.Order{s.order}, Total: 1, Page: 1, Limit: 20}, nil
}

func (s *stubUsecase) GetOrderStats(_ context.Context, requesterID string) ([]domain.OrderStats, error) {
	return []domain.OrderStats{{Status: domain.OrderStatusFulfilled, Count: 2}}, nil
}

func (s *stubUsecase) UpdateOrder(_ context.Context, input *orderdto.UpdateOrderInput) (*domain.Order, error) {
	if input.Priority != nil {
		s.order.Priority = *input.Priority
	}
	return s.order, nil
}

func (s *stubUsecase) CancelOrder(_ context.Context, orderID, actor, reason string) error {
	return nil
}

func (s *stubUsecase) StartInjection(_ context.Context, orderID string) error {
	if s.startErr != nil {
		return s.startErr
	}
	s.started = append(s.started, orderID)
	return nil
}

func (s *stubUsecase) PauseInjection(_ context.Context, orderID string) error { return nil }
func (s *stubUsecase) StopInjection(_ context.Context, orderID string) error  { return nil }

func (s *stubUsecase) AssignBrokers(_ context.Context, input *orderdto.AssignBrokersInput) error {
	if input.AssignedBy == "" {
		return domain.ErrNotAuthorized
	}
	return nil
}

func (s *stubUsecase) SkipBrokerAssignment(_ context.Context, orderID, actor string) error {
	return nil
}
func (s *stubUsecase) SkipFTDHandling(_ context.Context, orderID, actor string) error { return nil }
func (s *stubUsecase) CompleteFTDHandling(_ context.Context, orderID, actor string) error {
	return nil
}

func (s *stubUsecase) PendingBrokerLeads(_ context.Context, orderID string) ([]*domain.Lead, error) {
	return nil, nil
}

func (s *stubUsecase) FTDLeads(_ context.Context, orderID string) ([]*domain.Lead, error) {
	return nil, nil
}

func (s *stubUsecase) ExportLeads(_ context.Context, orderID string) ([][]string, error) {
	return s.exportRows, nil
}

func newTestServer(stub *stubUsecase) *httptest.Server {
	return httptest.NewServer(NewRouter(stub))
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:          "order-1",
		RequesterID: "aff-1",
		Status:      domain.OrderStatusFulfilled,
		Requests:    domain.LeadCounts{Cold: 2},
		Fulfilled:   domain.LeadCounts{Cold: 2},
		LeadIDs:     []string{"lead-1", "lead-2"},
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	stub := &stubUsecase{order: testOrder()}
	srv := newTestServer(stub)
	defer srv.Close()

	body := `{
		"requests": {"cold": 2},
		"priority": "high",
		"injection": {"enabled": true, "mode": "bulk"}
	}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/orders", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("X-Actor-ID", "aff-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, stub.createInput)
	require.Equal(t, "aff-1", stub.createInput.RequesterID)
	require.Equal(t, 2, stub.createInput.Requests.Cold)
	require.True(t, stub.createInput.Injection.Enabled)
	require.Equal(t, domain.InjectionModeBulk, stub.createInput.Injection.Mode)

	var out createOrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "order-1", out.Order.ID)
}

func TestCreateOrderValidationMapsTo400(t *testing.T) {
	stub := &stubUsecase{order: testOrder()}
	srv := newTestServer(stub)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(`{"requests":{}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetOrderNotFound(t *testing.T) {
	stub := &stubUsecase{order: testOrder()}
	srv := newTestServer(stub)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartInjectionRoutesOrderID(t *testing.T) {
	stub := &stubUsecase{order: testOrder()}
	srv := newTestServer(stub)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/orders/order-1/injection/start", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"order-1"}, stub.started)
}

func TestStartInjectionPreconditionMapsTo409(t *testing.T) {
	stub := &stubUsecase{order: testOrder(), startErr: domain.ErrPreconditionFailed}
	srv := newTestServer(stub)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/orders/order-1/injection/start", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAssignBrokersRequiresActor(t *testing.T) {
	stub := &stubUsecase{order: testOrder()}
	srv := newTestServer(stub)
	defer srv.Close()

	body := `{"assignments":[{"lead_id":"lead-1","domain":"broker.example"}]}`
	resp, err := http.Post(srv.URL+"/orders/order-1/brokers/assign", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/orders/order-1/brokers/assign", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("X-Actor-ID", "ops-1")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestExportLeadsServesCSV(t *testing.T) {
	stub := &stubUsecase{
		order: testOrder(),
		exportRows: [][]string{
			{"lead_id", "email"},
			{"lead-1", "a@example.com"},
		},
	}
	srv := newTestServer(stub)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/order-1/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "order-order-1-leads.csv")

	var buf strings.Builder
	_, err = io.Copy(&buf, resp.Body)
	require.NoError(t, err)
	require.Equal(t, "lead_id,email\nlead-1,a@example.com\n", buf.String())
}
