package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/leadrun/fulfillment-service/internal/domain"
)

type deviceProfile struct {
	screen    domain.ScreenProfile
	navigator domain.NavigatorProfile
	browser   domain.BrowserProfile
	mobile    domain.MobileProfile
}

var deviceProfiles = map[domain.DeviceType]deviceProfile{
	domain.DeviceWindows: {
		screen: domain.ScreenProfile{Width: 1920, Height: 1080, AvailWidth: 1920, AvailHeight: 1040, ColorDepth: 24, DevicePixelRatio: 1},
		navigator: domain.NavigatorProfile{
			UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Platform:            "Win32",
			HardwareConcurrency: 8,
			DeviceMemory:        8,
		},
		browser: domain.BrowserProfile{Name: "chrome", Version: "120.0.0.0"},
	},
	domain.DeviceAndroid: {
		screen: domain.ScreenProfile{Width: 428, Height: 926, AvailWidth: 428, AvailHeight: 926, ColorDepth: 24, DevicePixelRatio: 3},
		navigator: domain.NavigatorProfile{
			UserAgent:           "Mozilla/5.0 (Linux; Android 14; SM-G998B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			Platform:            "Linux armv8l",
			HardwareConcurrency: 8,
			DeviceMemory:        8,
			MaxTouchPoints:      10,
		},
		browser: domain.BrowserProfile{Name: "chrome", Version: "120.0.0.0"},
		mobile:  domain.MobileProfile{IsMobile: true},
	},
	domain.DeviceIOS: {
		screen: domain.ScreenProfile{Width: 428, Height: 926, AvailWidth: 428, AvailHeight: 926, ColorDepth: 24, DevicePixelRatio: 3},
		navigator: domain.NavigatorProfile{
			UserAgent:           "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			Platform:            "iPhone",
			HardwareConcurrency: 6,
			DeviceMemory:        6,
			MaxTouchPoints:      5,
		},
		browser: domain.BrowserProfile{Name: "safari", Version: "17.0"},
		mobile:  domain.MobileProfile{IsMobile: true},
	},
	domain.DeviceMac: {
		screen: domain.ScreenProfile{Width: 2560, Height: 1440, AvailWidth: 2560, AvailHeight: 1400, ColorDepth: 24, DevicePixelRatio: 2},
		navigator: domain.NavigatorProfile{
			UserAgent:           "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Platform:            "MacIntel",
			HardwareConcurrency: 8,
			DeviceMemory:        16,
		},
		browser: domain.BrowserProfile{Name: "chrome", Version: "120.0.0.0"},
	},
}

var (
	screenJitter        = []int{0, 1, -1, 2, -2}
	mobileConcurrency   = []int{6, 8, 4}
	desktopConcurrency  = []int{4, 6, 8, 12, 16}
	mobileMemoryOptions = []int{4, 6, 8}
	desktopMemory       = []int{8, 16, 32}
)

// PickDeviceType resolves the archetype for one lead per the order's device
// configuration. Unknown modes and invalid archetypes fall back to the
// default.
func (p *Provisioner) PickDeviceType(cfg domain.DeviceConfig, leadID string) domain.DeviceType {
	deviceType := domain.DefaultDeviceType

	switch cfg.SelectionMode {
	case domain.DeviceSelectBulk:
		if cfg.BulkDeviceType != "" {
			deviceType = cfg.BulkDeviceType
		}
	case domain.DeviceSelectIndividual:
		deviceType = p.pickRandom(cfg.Available)
		for _, assignment := range cfg.Individual {
			if assignment.LeadID == leadID {
				deviceType = assignment.DeviceType
				break
			}
		}
	case domain.DeviceSelectRatio:
		if t, ok := p.pickWeighted(cfg.Ratio); ok {
			deviceType = t
		}
	default:
		deviceType = p.pickRandom(cfg.Available)
	}

	if !domain.ValidDeviceType(deviceType) {
		slog.Warn("invalid device type in config, using default",
			"device_type", string(deviceType), "lead_id", leadID)
		return domain.DefaultDeviceType
	}
	return deviceType
}

func (p *Provisioner) pickRandom(available []domain.DeviceType) domain.DeviceType {
	pool := make([]domain.DeviceType, 0, len(available))
	for _, t := range available {
		if domain.ValidDeviceType(t) {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		pool = domain.AllDeviceTypes()
	}
	return pool[p.rng.Intn(len(pool))]
}

// pickWeighted draws an archetype from the ratio weights normalized to a
// distribution.
func (p *Provisioner) pickWeighted(ratio map[domain.DeviceType]int) (domain.DeviceType, bool) {
	total := 0
	for t, w := range ratio {
		if domain.ValidDeviceType(t) && w > 0 {
			total += w
		}
	}
	if total == 0 {
		return "", false
	}
	r := p.rng.Intn(total)
	for _, t := range domain.AllDeviceTypes() {
		w := ratio[t]
		if w <= 0 {
			continue
		}
		if r < w {
			return t, true
		}
		r -= w
	}
	return "", false
}

// GenerateFingerprint builds a perturbed profile from the archetype base.
func (p *Provisioner) GenerateFingerprint(deviceType domain.DeviceType, leadID, createdBy string) *domain.Fingerprint {
	base, ok := deviceProfiles[deviceType]
	if !ok {
		base = deviceProfiles[domain.DefaultDeviceType]
	}

	mobile := deviceType == domain.DeviceAndroid || deviceType == domain.DeviceIOS
	concurrency := desktopConcurrency
	memory := desktopMemory
	if mobile {
		concurrency = mobileConcurrency
		memory = mobileMemoryOptions
	}

	screen := base.screen
	screen.Width += p.jitter()
	screen.Height += p.jitter()
	screen.AvailWidth += p.jitter()
	screen.AvailHeight += p.jitter()

	navigator := base.navigator
	navigator.Language = "en-US"
	navigator.Languages = []string{"en-US", "en"}
	if base.browser.Name == "chrome" {
		navigator.Vendor = "Google Inc."
	}
	navigator.HardwareConcurrency = concurrency[p.rng.Intn(len(concurrency))]
	navigator.DeviceMemory = memory[p.rng.Intn(len(memory))]

	return &domain.Fingerprint{
		ID:         uuid.New().String(),
		DeviceID:   fmt.Sprintf("%s_%s", deviceType, p.newDeviceID()),
		DeviceType: deviceType,
		Browser:    base.browser,
		Screen:     screen,
		Navigator:  navigator,
		CanvasHash: p.newDeviceID(),
		AudioHash:  p.newDeviceID(),
		Timezone:   "America/New_York",
		Mobile:     base.mobile,
		LeadID:     leadID,
		CreatedBy:  createdBy,
		LastUsedAt: time.Now(),
	}
}

func (p *Provisioner) jitter() int {
	return screenJitter[p.rng.Intn(len(screenJitter))]
}

// EnsureFingerprint assigns an identity when the lead has none. Failure here
// is logged by the caller and never aborts the lead's submission.
func (p *Provisioner) EnsureFingerprint(ctx context.Context, lead *domain.Lead, cfg domain.DeviceConfig, createdBy string) error {
	if lead.FingerprintID != "" {
		return nil
	}
	exists, err := p.fingerprintRepo.ExistsForLead(ctx, lead.ID)
	if err != nil {
		return fmt.Errorf("failed to check fingerprint for lead %s: %w", lead.ID, err)
	}
	if exists {
		return domain.ErrFingerprintExists
	}

	deviceType := p.PickDeviceType(cfg, lead.ID)
	fp := p.GenerateFingerprint(deviceType, lead.ID, createdBy)
	if err := p.fingerprintRepo.Create(ctx, fp); err != nil {
		return fmt.Errorf("failed to persist fingerprint for lead %s: %w", lead.ID, err)
	}

	lead.FingerprintID = fp.ID
	lead.DeviceType = deviceType
	slog.Info("assigned device fingerprint",
		"lead_id", lead.ID, "device_type", string(deviceType), "device_id", fp.DeviceID)
	return nil
}

// FingerprintFor loads the stored identity for payload assembly. A lead
// without one yields nil rather than an error.
func (p *Provisioner) FingerprintFor(ctx context.Context, leadID string) (*domain.Fingerprint, error) {
	fp, err := p.fingerprintRepo.GetByLeadID(ctx, leadID)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return fp, nil
}

func newNanoID() func() string {
	gen, err := nanoid.Standard(12)
	if err != nil {
		// Standard only fails on invalid length.
		panic(err)
	}
	return gen
}
