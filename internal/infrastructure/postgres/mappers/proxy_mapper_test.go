package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

func TestProxyMapperCarriesConfigAndLease(t *testing.T) {
	assignedAt := time.Now().Truncate(time.Second)
	proxy := &domain.Proxy{
		ID:        "proxy-1",
		SessionID: "abcd1234",
		Config: domain.ProxyConfig{
			Server:   "http://proxy.example:8000",
			Username: "acct123-region-GB-sessid-abcd1234",
			Password: "secret",
			Host:     "proxy.example",
			Port:     "8000",
		},
		Country: "United Kingdom",
		Status:  domain.ProxyActive,
		Lease: &domain.ProxyLease{
			LeadID:     "lead-1",
			OrderID:    "order-1",
			Status:     domain.ReservationActive,
			AssignedAt: assignedAt,
		},
	}

	model := ToGORMProxy(proxy)
	require.Equal(t, "8000", model.Port)
	require.Equal(t, "lead-1", model.LeaseLeadID)

	back := ToDomainProxy(model)
	require.Equal(t, "8000", back.Config.Port)
	require.Equal(t, proxy.Config, back.Config)
	require.NotNil(t, back.Lease)
	require.Equal(t, domain.ReservationActive, back.Lease.Status)
	require.Equal(t, assignedAt, back.Lease.AssignedAt)
}

func TestProxyMapperWithoutLease(t *testing.T) {
	proxy := &domain.Proxy{ID: "proxy-2", Status: domain.ProxyFailed}

	back := ToDomainProxy(ToGORMProxy(proxy))
	require.Nil(t, back.Lease)
	require.Equal(t, domain.ProxyFailed, back.Status)
}
