package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPartial   OrderStatus = "partial"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type InjectionMode string

const (
	InjectionModeBulk      InjectionMode = "bulk"
	InjectionModeScheduled InjectionMode = "scheduled"
)

type InjectionStatus string

const (
	InjectionPending    InjectionStatus = "pending"
	InjectionInProgress InjectionStatus = "in_progress"
	InjectionPaused     InjectionStatus = "paused"
	InjectionCompleted  InjectionStatus = "completed"
	InjectionFailed     InjectionStatus = "failed"
)

type FTDHandlingStatus string

const (
	FTDHandlingPending    FTDHandlingStatus = "pending"
	FTDHandlingManualFill FTDHandlingStatus = "manual_fill_required"
	FTDHandlingSkipped    FTDHandlingStatus = "skipped"
	FTDHandlingCompleted  FTDHandlingStatus = "completed"
)

type BrokerAssignmentStatus string

const (
	BrokerAssignmentPending   BrokerAssignmentStatus = "pending"
	BrokerAssignmentCompleted BrokerAssignmentStatus = "completed"
	BrokerAssignmentSkipped   BrokerAssignmentStatus = "skipped"
)

// LeadCounts carries per-category quotas or fulfillment tallies.
type LeadCounts struct {
	FTD    int
	Filler int
	Cold   int
	Live   int
}

func (c LeadCounts) Total() int {
	return c.FTD + c.Filler + c.Cold + c.Live
}

// IncludeTypes picks which categories the automatic pipeline submits.
// FTD is never automatic; filler is kept for manual paths only.
type IncludeTypes struct {
	Filler bool
	Cold   bool
	Live   bool
}

// ScheduledWindow describes the scheduled-mode delivery window. Start and end
// accept either a same-day "HH:MM" clock-time pair or RFC3339 timestamps.
type ScheduledWindow struct {
	StartTime   string
	EndTime     string
	MinInterval time.Duration
	MaxInterval time.Duration
}

type DeviceSelectionMode string

const (
	DeviceSelectBulk       DeviceSelectionMode = "bulk"
	DeviceSelectIndividual DeviceSelectionMode = "individual"
	DeviceSelectRatio      DeviceSelectionMode = "ratio"
	DeviceSelectRandom     DeviceSelectionMode = "random"
)

type IndividualDevice struct {
	LeadID     string
	DeviceType DeviceType
}

type DeviceConfig struct {
	SelectionMode  DeviceSelectionMode
	BulkDeviceType DeviceType
	Ratio          map[DeviceType]int
	Individual     []IndividualDevice
	Available      []DeviceType
}

type InjectionSettings struct {
	Enabled      bool
	Mode         InjectionMode
	Window       ScheduledWindow
	Status       InjectionStatus
	IncludeTypes IncludeTypes
	Device       DeviceConfig
}

type InjectionProgress struct {
	TotalToInject           int
	Successful              int
	Failed                  int
	BrokersAssigned         int
	FTDsPendingManualFill   int
	BrokerAssignmentPending bool
	LastInjectionAt         *time.Time
	CompletedAt             *time.Time
}

type FTDHandling struct {
	Status      FTDHandlingStatus
	SkippedAt   *time.Time
	CompletedAt *time.Time
	Notes       string
}

type BrokerAssignment struct {
	Status     BrokerAssignmentStatus
	AssignedBy string
	AssignedAt *time.Time
	Notes      string
}

type Order struct {
	ID          string
	RequesterID string
	Status      OrderStatus
	Requests    LeadCounts
	Fulfilled   LeadCounts
	LeadIDs     []string
	Priority    string
	Notes       string

	CountryFilter string
	GenderFilter  string

	ClientNetworkID string
	OurNetworkID    string
	CampaignID      string

	Injection        InjectionSettings
	Progress         InjectionProgress
	FTDHandling      FTDHandling
	BrokerAssignment BrokerAssignment

	CreatedAt          time.Time
	UpdatedAt          time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
}

func (o *Order) TotalRequested() int { return o.Requests.Total() }
func (o *Order) TotalFulfilled() int { return o.Fulfilled.Total() }

// InjectableTypes resolves which categories the automatic pipeline may submit.
// Only cold and live are eligible regardless of the include flags.
func (o *Order) InjectableTypes() []LeadType {
	var types []LeadType
	if o.Injection.IncludeTypes.Cold {
		types = append(types, LeadTypeCold)
	}
	if o.Injection.IncludeTypes.Live {
		types = append(types, LeadTypeLive)
	}
	return types
}

// CanStartInjection is the start transition guard of the injection state
// machine: only pending and paused orders may (re)start.
func (o *Order) CanStartInjection() bool {
	return o.Injection.Status == InjectionPending || o.Injection.Status == InjectionPaused
}
