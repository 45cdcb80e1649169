package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddRelationshipLog_ConflictOnSameTargetAndOrder(t *testing.T) {
	lead := &Lead{ID: "lead-1"}

	err := lead.AddRelationshipLog(RelationClientNetwork, "net-1", "user-1", "order-1")
	require.NoError(t, err)

	err = lead.AddRelationshipLog(RelationClientNetwork, "net-1", "user-1", "order-1")
	require.ErrorIs(t, err, ErrRelationshipConflict)

	// Same network for a different order is a new entry, not a conflict.
	err = lead.AddRelationshipLog(RelationClientNetwork, "net-1", "user-1", "order-2")
	require.NoError(t, err)

	// Different relationship kind with the same target id is independent.
	err = lead.AddRelationshipLog(RelationCampaign, "net-1", "user-1", "order-1")
	require.NoError(t, err)

	require.Len(t, lead.NetworkLogs, 3)
}

func TestReserveProxy_SingleActivePerOrder(t *testing.T) {
	lead := &Lead{ID: "lead-1"}

	require.True(t, lead.ReserveProxy("proxy-1", "order-1"))
	require.False(t, lead.ReserveProxy("proxy-2", "order-1"))
	require.Equal(t, "proxy-1", lead.ActiveProxyID("order-1"))

	// A different order may hold its own reservation concurrently.
	require.True(t, lead.ReserveProxy("proxy-2", "order-2"))

	require.True(t, lead.CloseProxyReservation("order-1", ReservationCompleted))
	require.Empty(t, lead.ActiveProxyID("order-1"))

	// Once closed, a fresh reservation for the same order is allowed again.
	require.True(t, lead.ReserveProxy("proxy-3", "order-1"))

	active := 0
	for _, r := range lead.ProxyReservations {
		if r.OrderID == "order-1" && r.Status == ReservationActive {
			active++
		}
	}
	require.Equal(t, 1, active)
}

func TestAssignBroker_IdempotentIDSet(t *testing.T) {
	lead := &Lead{ID: "lead-1"}

	lead.AssignBroker("broker-1", "user-1", "order-1", "partnerx.com")
	lead.AssignBroker("broker-1", "user-1", "order-2", "partnerx.com")

	require.Equal(t, []string{"broker-1"}, lead.BrokerIDs)
	require.Len(t, lead.BrokerLogs, 2)

	lead.SetBrokerLogStatus("order-1", LogStatusSuccessful, "partnerx.com")
	entry := lead.BrokerLogFor("order-1")
	require.NotNil(t, entry)
	require.Equal(t, LogStatusSuccessful, entry.Status)
}

func TestBrokerOnLeadAssignDoesNotDoubleCount(t *testing.T) {
	b := &Broker{ID: "broker-1", IsActive: true}

	b.AssignLead("lead-1")
	b.AssignLead("lead-1")
	b.AssignLead("lead-2")

	require.Equal(t, 2, b.TotalLeadsAssigned)
	require.Len(t, b.AssignedLeadIDs, 2)
}
