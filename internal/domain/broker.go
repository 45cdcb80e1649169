package domain

import "time"

// Broker is a downstream partner identified by the domain an injection
// redirected to. Brokers are auto-created on first sight of a domain.
type Broker struct {
	ID                 string
	Name               string
	Domain             string
	Description        string
	IsActive           bool
	AssignedLeadIDs    []string
	TotalLeadsAssigned int
	LastAssignedAt     *time.Time
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (b *Broker) IsLeadAssigned(leadID string) bool {
	for _, id := range b.AssignedLeadIDs {
		if id == leadID {
			return true
		}
	}
	return false
}

// AssignLead adds a lead to the broker's assignment set. Re-assigning an
// already-known lead is a no-op and does not bump the usage counter.
func (b *Broker) AssignLead(leadID string) {
	if b.IsLeadAssigned(leadID) {
		return
	}
	now := time.Now()
	b.AssignedLeadIDs = append(b.AssignedLeadIDs, leadID)
	b.TotalLeadsAssigned++
	b.LastAssignedAt = &now
}
