package notifier

import "time"

type CallbackPayload struct {
	OrderID         string    `json:"order_id"`
	RequesterID     string    `json:"requester_id"`
	Status          string    `json:"status"`
	Successful      int       `json:"successful"`
	Failed          int       `json:"failed"`
	BrokersAssigned int       `json:"brokers_assigned"`
	ClientNetworkID string    `json:"client_network_id,omitempty"`
	CampaignID      string    `json:"campaign_id,omitempty"`
	CompletedAt     time.Time `json:"completed_at"`
}
