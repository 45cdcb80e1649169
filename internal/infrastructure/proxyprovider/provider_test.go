package proxyprovider

import (
	"testing"

	"github.com/leadrun/fulfillment-service/internal/config"
	"github.com/stretchr/testify/require"
)

func testProvider() *SessionProvider {
	p := NewSessionProvider(config.ProxyProvider{
		Server:       "http://proxy.example:8000",
		Host:         "proxy.example",
		Port:         "8000",
		UsernameBase: "acct123",
		Password:     "secret",
	})
	p.newSessID = func() string { return "abcd1234" }
	return p
}

func TestGenerateSession_UsernameEncodesRegionAndSession(t *testing.T) {
	p := testProvider()

	session, err := p.GenerateSession("United Kingdom", "44")
	require.NoError(t, err)
	require.Equal(t, "acct123-region-GB-sessid-abcd1234", session.Config.Username)
	require.Equal(t, "abcd1234", session.SessionID)
	require.Equal(t, "proxy.example", session.Config.Host)
	require.Equal(t, "8000", session.Config.Port)
}

func TestGenerateSession_FallsBackToCallingCode(t *testing.T) {
	p := testProvider()

	session, err := p.GenerateSession("Unknownland", "+49")
	require.NoError(t, err)
	require.Contains(t, session.Config.Username, "-region-DE-")
}

func TestGenerateSession_DefaultRegion(t *testing.T) {
	p := testProvider()

	session, err := p.GenerateSession("Atlantis", "999")
	require.NoError(t, err)
	require.Contains(t, session.Config.Username, "-region-US-")
}

func TestGenerateSession_Unconfigured(t *testing.T) {
	p := NewSessionProvider(config.ProxyProvider{})

	_, err := p.GenerateSession("Germany", "49")
	require.Error(t, err)
}
