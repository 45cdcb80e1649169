package kafka

// InjectionEvent is emitted after every submission attempt so downstream
// consumers (CRM sync, notifications) can react without polling.
type InjectionEvent struct {
	OrderID     string `json:"order_id"`
	LeadID      string `json:"lead_id"`
	LeadType    string `json:"lead_type"`
	Status      string `json:"status"`
	FinalDomain string `json:"final_domain,omitempty"`
	BrokerID    string `json:"broker_id,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// OrderLifecycleEvent covers order creation and terminal transitions.
type OrderLifecycleEvent struct {
	OrderID     string `json:"order_id"`
	RequesterID string `json:"requester_id"`
	Status      string `json:"status"`
	Requested   int    `json:"requested"`
	Fulfilled   int    `json:"fulfilled"`
	Timestamp   int64  `json:"timestamp"`
}
