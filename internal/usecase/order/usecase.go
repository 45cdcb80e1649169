package usecase

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/kafka"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/logger"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/metrics"
	orderdto "github.com/leadrun/fulfillment-service/internal/usecase/dto/order"
)

type FulfillmentUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error)

	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, input *orderdto.ListOrdersInput) (*orderdto.ListOrdersOutput, error)
	GetOrderStats(ctx context.Context, requesterID string) ([]domain.OrderStats, error)
	UpdateOrder(ctx context.Context, input *orderdto.UpdateOrderInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID, actor, reason string) error

	StartInjection(ctx context.Context, orderID string) error
	PauseInjection(ctx context.Context, orderID string) error
	StopInjection(ctx context.Context, orderID string) error

	AssignBrokers(ctx context.Context, input *orderdto.AssignBrokersInput) error
	SkipBrokerAssignment(ctx context.Context, orderID, actor string) error
	SkipFTDHandling(ctx context.Context, orderID, actor string) error
	CompleteFTDHandling(ctx context.Context, orderID, actor string) error
	PendingBrokerLeads(ctx context.Context, orderID string) ([]*domain.Lead, error)
	FTDLeads(ctx context.Context, orderID string) ([]*domain.Lead, error)

	ExportLeads(ctx context.Context, orderID string) ([][]string, error)
}

// InjectionConfig carries the injector-facing knobs of the pipeline.
type InjectionConfig struct {
	TargetURL       string
	FollowUpURL     string
	CallbackURL     string
	BulkPacing      time.Duration
	FollowUpTimeout time.Duration
}

// ResourceProvisioner attaches per-lead identity and proxy resources.
type ResourceProvisioner interface {
	EnsureFingerprint(ctx context.Context, lead *domain.Lead, cfg domain.DeviceConfig, createdBy string) error
	FingerprintFor(ctx context.Context, leadID string) (*domain.Fingerprint, error)
	AssignProxy(ctx context.Context, lead *domain.Lead, orderID, createdBy string) (*domain.Proxy, error)
	ReleaseProxy(ctx context.Context, lead *domain.Lead, proxy *domain.Proxy, orderID string, status domain.ReservationStatus)
}

// BrokerResolver maps a redirect domain to a broker record and logs the
// assignment on the lead.
type BrokerResolver interface {
	AssignByDomain(ctx context.Context, lead *domain.Lead, redirectDomain, assignedBy, orderID string) (*domain.Broker, error)
}

type EventPublisher interface {
	PublishInjectionEvent(event kafka.InjectionEvent) error
	PublishOrderEvent(event kafka.OrderLifecycleEvent) error
}

type DefaultFulfillmentUsecase struct {
	LeadRepo    domain.LeadRepository
	OrderRepo   domain.OrderRepository
	BrokerRepo  domain.BrokerRepository
	Provisioner ResourceProvisioner
	Brokers     BrokerResolver
	Injector    domain.InjectorClient
	Publisher   EventPublisher
	Audit       logger.InjectionAuditLogger
	Metrics     *metrics.InjectionMetrics
	Config      InjectionConfig

	rng *rand.Rand
}

func NewDefaultFulfillmentUsecase(
	leadRepo domain.LeadRepository,
	orderRepo domain.OrderRepository,
	brokerRepo domain.BrokerRepository,
	provisioner ResourceProvisioner,
	brokers BrokerResolver,
	injector domain.InjectorClient,
	publisher EventPublisher,
	audit logger.InjectionAuditLogger,
	injectionMetrics *metrics.InjectionMetrics,
	config InjectionConfig) *DefaultFulfillmentUsecase {

	return &DefaultFulfillmentUsecase{
		LeadRepo:    leadRepo,
		OrderRepo:   orderRepo,
		BrokerRepo:  brokerRepo,
		Provisioner: provisioner,
		Brokers:     brokers,
		Injector:    injector,
		Publisher:   publisher,
		Audit:       audit,
		Metrics:     injectionMetrics,
		Config:      config,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (uc *DefaultFulfillmentUsecase) publishInjectionEvent(event kafka.InjectionEvent) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.PublishInjectionEvent(event); err != nil {
		logPublishError("injection", event.OrderID, err)
	}
}

func (uc *DefaultFulfillmentUsecase) publishOrderEvent(event kafka.OrderLifecycleEvent) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.PublishOrderEvent(event); err != nil {
		logPublishError("order", event.OrderID, err)
	}
}

func (uc *DefaultFulfillmentUsecase) logAttempt(ctx context.Context, record logger.InjectionAttemptRecord) {
	if uc.Audit == nil {
		return
	}
	if err := uc.Audit.LogAttempt(ctx, record); err != nil {
		slog.Error("audit log write failed", "order_id", record.OrderID, "lead_id", record.LeadID, "error", err)
	}
}

func logPublishError(kind, orderID string, err error) {
	slog.Error("event publish failed", "kind", kind, "order_id", orderID, "error", err)
}
