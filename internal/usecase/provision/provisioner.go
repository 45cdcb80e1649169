package provision

import (
	"math/rand"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

// Provisioner attaches per-lead network and identity resources ahead of a
// submission: a device fingerprint (soft, failure tolerated) and an exclusive
// per-country proxy (hard, failure aborts the lead).
type Provisioner struct {
	fingerprintRepo domain.FingerprintRepository
	proxyRepo       domain.ProxyRepository
	provider        domain.ProxyProvider

	rng   *rand.Rand
	newID func() string
}

func NewProvisioner(
	fingerprintRepo domain.FingerprintRepository,
	proxyRepo domain.ProxyRepository,
	provider domain.ProxyProvider,
) *Provisioner {
	return &Provisioner{
		fingerprintRepo: fingerprintRepo,
		proxyRepo:       proxyRepo,
		provider:        provider,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:           newNanoID(),
	}
}

func (p *Provisioner) newDeviceID() string {
	return p.newID()
}
