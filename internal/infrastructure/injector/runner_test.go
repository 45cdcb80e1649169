package injector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOutput_FinalDomain(t *testing.T) {
	result := parseOutput("navigating...\nFINAL_DOMAIN: partnerx.com\ndone\n")
	require.Equal(t, "partnerx.com", result.FinalDomain)
	require.False(t, result.ProxyExpired)
}

func TestParseOutput_ProxyExpired(t *testing.T) {
	result := parseOutput("PROXY_EXPIRED: session closed mid-run\n")
	require.True(t, result.ProxyExpired)
	require.Empty(t, result.FinalDomain)
}

func TestParseOutput_NoMarkers(t *testing.T) {
	result := parseOutput("form submitted\n")
	require.Empty(t, result.FinalDomain)
	require.False(t, result.ProxyExpired)
	require.Equal(t, "form submitted\n", result.Output)
}

func TestParseOutput_LastMarkerWins(t *testing.T) {
	result := parseOutput("FINAL_DOMAIN:first.com\nFINAL_DOMAIN:second.com\n")
	require.Equal(t, "second.com", result.FinalDomain)
}
