package domain

import "time"

type LeadType string

const (
	LeadTypeFTD    LeadType = "ftd"
	LeadTypeFiller LeadType = "filler"
	LeadTypeCold   LeadType = "cold"
	LeadTypeLive   LeadType = "live"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable    AvailabilityStatus = "available"
	AvailabilitySleep        AvailabilityStatus = "sleep"
	AvailabilityNotAvailable AvailabilityStatus = "not_available"
)

// RelationshipKind identifies which history log an assignment belongs to.
type RelationshipKind string

const (
	RelationClientNetwork RelationshipKind = "client_network"
	RelationOurNetwork    RelationshipKind = "our_network"
	RelationCampaign      RelationshipKind = "campaign"
)

type LogStatus string

const (
	LogStatusPending    LogStatus = "pending"
	LogStatusSuccessful LogStatus = "successful"
	LogStatusCompleted  LogStatus = "completed"
	LogStatusFailed     LogStatus = "failed"
)

// NetworkLog is one append-only history entry tying a lead to a network or
// campaign for a specific order.
type NetworkLog struct {
	ID         string
	Kind       RelationshipKind
	TargetID   string
	AssignedBy string
	OrderID    string
	Status     LogStatus
	AssignedAt time.Time
}

// BrokerLog records a broker assignment attempt for a specific order,
// carrying the redirect domain the submission resolved to.
type BrokerLog struct {
	ID         string
	BrokerID   string
	AssignedBy string
	OrderID    string
	Domain     string
	Status     LogStatus
	AssignedAt time.Time
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationFailed    ReservationStatus = "failed"
	ReservationExpired   ReservationStatus = "expired"
)

// ProxyReservation scopes an exclusive proxy lease to one order.
type ProxyReservation struct {
	ID          string
	ProxyID     string
	OrderID     string
	Status      ReservationStatus
	AssignedAt  time.Time
	CompletedAt *time.Time
}

type Lead struct {
	ID            string
	LeadType      LeadType
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Prefix        string
	Country       string
	CountryCode   string
	Gender        string
	Availability  AvailabilityStatus
	SleepReason   string
	IsAssigned    bool
	AssignedTo    string
	OrderID       string
	FingerprintID string
	DeviceType    DeviceType

	NetworkLogs       []NetworkLog
	BrokerLogs        []BrokerLog
	BrokerIDs         []string
	ProxyReservations []ProxyReservation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLoggedAgainst reports whether the lead already carries a history entry for
// the given relationship target. With a non-empty orderID the check is scoped
// to that order, otherwise any order matches.
func (l *Lead) IsLoggedAgainst(kind RelationshipKind, targetID, orderID string) bool {
	for _, entry := range l.NetworkLogs {
		if entry.Kind != kind || entry.TargetID != targetID {
			continue
		}
		if orderID == "" || entry.OrderID == orderID {
			return true
		}
	}
	return false
}

// AddRelationshipLog appends a history entry. Logging the same target twice
// for one order is a contract violation.
func (l *Lead) AddRelationshipLog(kind RelationshipKind, targetID, assignedBy, orderID string) error {
	if l.IsLoggedAgainst(kind, targetID, orderID) {
		return ErrRelationshipConflict
	}
	l.NetworkLogs = append(l.NetworkLogs, NetworkLog{
		Kind:       kind,
		TargetID:   targetID,
		AssignedBy: assignedBy,
		OrderID:    orderID,
		Status:     LogStatusPending,
		AssignedAt: time.Now(),
	})
	return nil
}

// SetRelationshipStatus updates every network-level history entry recorded for
// the given order.
func (l *Lead) SetRelationshipStatus(orderID string, status LogStatus) {
	for i := range l.NetworkLogs {
		if l.NetworkLogs[i].OrderID == orderID {
			l.NetworkLogs[i].Status = status
		}
	}
}

// HasSuccessfulSubmission reports whether any network-level history entry for
// the order already reached a successful or completed state.
func (l *Lead) HasSuccessfulSubmission(orderID string) bool {
	for _, entry := range l.NetworkLogs {
		if entry.OrderID != orderID {
			continue
		}
		if entry.Status == LogStatusSuccessful || entry.Status == LogStatusCompleted {
			return true
		}
	}
	return false
}

func (l *Lead) IsAssignedToBroker(brokerID string) bool {
	for _, id := range l.BrokerIDs {
		if id == brokerID {
			return true
		}
	}
	return false
}

// AssignBroker appends a broker history entry and registers the broker id.
// The id set is idempotent; history is append-only.
func (l *Lead) AssignBroker(brokerID, assignedBy, orderID, domain string) {
	if !l.IsAssignedToBroker(brokerID) {
		l.BrokerIDs = append(l.BrokerIDs, brokerID)
	}
	l.BrokerLogs = append(l.BrokerLogs, BrokerLog{
		BrokerID:   brokerID,
		AssignedBy: assignedBy,
		OrderID:    orderID,
		Domain:     domain,
		Status:     LogStatusPending,
		AssignedAt: time.Now(),
	})
}

// SetBrokerLogStatus updates the most recent broker history entry for the
// order, stamping the domain when one was captured.
func (l *Lead) SetBrokerLogStatus(orderID string, status LogStatus, domain string) {
	for i := len(l.BrokerLogs) - 1; i >= 0; i-- {
		if l.BrokerLogs[i].OrderID == orderID {
			l.BrokerLogs[i].Status = status
			if domain != "" {
				l.BrokerLogs[i].Domain = domain
			}
			return
		}
	}
}

// BrokerLogFor returns the latest broker history entry for the order.
func (l *Lead) BrokerLogFor(orderID string) *BrokerLog {
	for i := len(l.BrokerLogs) - 1; i >= 0; i-- {
		if l.BrokerLogs[i].OrderID == orderID {
			return &l.BrokerLogs[i]
		}
	}
	return nil
}

// ReserveProxy attaches an active proxy reservation for the order. A lead may
// hold at most one active reservation per order.
func (l *Lead) ReserveProxy(proxyID, orderID string) bool {
	if l.ActiveProxyID(orderID) != "" {
		return false
	}
	l.ProxyReservations = append(l.ProxyReservations, ProxyReservation{
		ProxyID:    proxyID,
		OrderID:    orderID,
		Status:     ReservationActive,
		AssignedAt: time.Now(),
	})
	return true
}

func (l *Lead) ActiveProxyID(orderID string) string {
	for _, r := range l.ProxyReservations {
		if r.OrderID == orderID && r.Status == ReservationActive {
			return r.ProxyID
		}
	}
	return ""
}

// CloseProxyReservation resolves the active reservation for the order with a
// terminal status.
func (l *Lead) CloseProxyReservation(orderID string, status ReservationStatus) bool {
	for i := range l.ProxyReservations {
		r := &l.ProxyReservations[i]
		if r.OrderID == orderID && r.Status == ReservationActive {
			now := time.Now()
			r.Status = status
			r.CompletedAt = &now
			return true
		}
	}
	return false
}

func (l *Lead) PutToSleep(reason string) {
	l.Availability = AvailabilitySleep
	l.SleepReason = reason
}

func (l *Lead) WakeUp() {
	l.Availability = AvailabilityAvailable
	l.SleepReason = ""
}

func (l *Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}
