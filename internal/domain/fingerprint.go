package domain

import "time"

type DeviceType string

const (
	DeviceWindows DeviceType = "windows"
	DeviceAndroid DeviceType = "android"
	DeviceIOS     DeviceType = "ios"
	DeviceMac     DeviceType = "mac"
)

// DefaultDeviceType is the fallback when configuration names an unknown
// archetype.
const DefaultDeviceType = DeviceAndroid

func ValidDeviceType(t DeviceType) bool {
	switch t {
	case DeviceWindows, DeviceAndroid, DeviceIOS, DeviceMac:
		return true
	}
	return false
}

func AllDeviceTypes() []DeviceType {
	return []DeviceType{DeviceWindows, DeviceAndroid, DeviceIOS, DeviceMac}
}

type ScreenProfile struct {
	Width            int `json:"width"`
	Height           int `json:"height"`
	AvailWidth       int `json:"availWidth"`
	AvailHeight      int `json:"availHeight"`
	ColorDepth       int `json:"colorDepth"`
	DevicePixelRatio int `json:"devicePixelRatio"`
}

type NavigatorProfile struct {
	UserAgent           string   `json:"userAgent"`
	Platform            string   `json:"platform"`
	Language            string   `json:"language"`
	Languages           []string `json:"languages"`
	Vendor              string   `json:"vendor"`
	HardwareConcurrency int      `json:"hardwareConcurrency"`
	DeviceMemory        int      `json:"deviceMemory"`
	MaxTouchPoints      int      `json:"maxTouchPoints"`
}

type BrowserProfile struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type MobileProfile struct {
	IsMobile bool `json:"isMobile"`
	IsTablet bool `json:"isTablet"`
}

// Fingerprint is a synthetic device identity. At most one exists per lead.
type Fingerprint struct {
	ID          string
	DeviceID    string
	DeviceType  DeviceType
	Browser     BrowserProfile
	Screen      ScreenProfile
	Navigator   NavigatorProfile
	CanvasHash  string
	AudioHash   string
	Timezone    string
	Mobile      MobileProfile
	LeadID      string
	CreatedBy   string
	CreatedAt   time.Time
	LastUsedAt  time.Time
}
