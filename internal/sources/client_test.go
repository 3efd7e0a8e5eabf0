package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Options{
		ConcentrationURL: server.URL + "/co2_daily_mlo.csv",
		EmissionsURL:     server.URL + "/owid-co2-data.csv",
		UserAgent:        "co2-monitor/test",
		Timeout:          5 * time.Second,
	})
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Options{})
	assert.Equal(t, DefaultConcentrationURL, c.ConcentrationURL())
	assert.Equal(t, DefaultEmissionsURL, c.EmissionsURL())
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Contains(t, c.userAgent, "co2-monitor/")
}

func TestClient_FetchesBothSources(t *testing.T) {
	var (
		mu         sync.Mutex
		userAgents []string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		userAgents = append(userAgents, r.Header.Get("User-Agent"))
		mu.Unlock()
		switch r.URL.Path {
		case "/co2_daily_mlo.csv":
			_, _ = w.Write([]byte(noaaSample))
		case "/owid-co2-data.csv":
			_, _ = w.Write([]byte(owidSample))
		default:
			http.NotFound(w, r)
		}
	})

	snap, err := c.LatestConcentration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 420.70, snap.PPM)

	series, err := c.WorldEmissions(context.Background(), 2020, 2024)
	require.NoError(t, err)
	assert.Len(t, series, 5)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"co2-monitor/test", "co2-monitor/test"}, userAgents)
}

func TestClient_NonSuccessStatusIsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.LatestConcentration(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork))
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	assert.Equal(t, "concentration", fetchErr.Source)
	assert.Contains(t, err.Error(), "status 503")
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(Options{EmissionsURL: url, Timeout: time.Second})
	_, err := c.WorldEmissions(context.Background(), 2020, 2024)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork))
	assert.False(t, IsKind(err, KindParse))
}

func TestClient_UnusableBodyIsParseError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>\n"))
	})

	_, err := c.LatestConcentration(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))

	_, err = c.WorldEmissions(context.Background(), 2020, 2024)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))
}

func TestFetchError_Message(t *testing.T) {
	var nilErr *FetchError
	assert.Equal(t, "fetch error", nilErr.Error())
	assert.NoError(t, nilErr.Unwrap())

	err := &FetchError{Kind: KindParse, Source: "emissions", Err: ErrNoValidRows}
	assert.Equal(t, "parse error fetching emissions: no valid rows", err.Error())
}
