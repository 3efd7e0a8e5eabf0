package cli_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/cli"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/config"
)

const noaaFixture = `# year,month,day,decimal,average
2024,5,29,2024.4085,420.40
2024,5,30,2024.4112,420.70
2024,5,31,2024.4139,-999.99
`

const owidFixture = `country,year,iso_code,co2
World,2019,,37082.559
World,2020,,35000.000
World,2021,,36800.000
World,2022,,37200.000
World,2023,,37600.000
World,2024,,37600.000
Asia,2024,,20000.000
`

// setupCLITest isolates config, env and global state for one test.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("CO2MON_HOME", home)
	t.Setenv("CO2MON_LOG_LEVEL", "error")
	for _, key := range []string{
		"CO2MON_BUDGET", "CO2MON_START_YEAR", "CO2MON_AUTO_REFRESH",
		"CO2MON_CONCENTRATION_URL", "CO2MON_EMISSIONS_URL",
		"CO2MON_LOG_FORMAT", "CO2MON_LOG_FILE", "CO2MON_PROJECT_DIR",
	} {
		t.Setenv(key, "")
	}
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// serveFixtures points both source URLs at httptest servers.
func serveFixtures(t *testing.T, concentrationStatus, emissionsStatus int) {
	t.Helper()
	serve := func(status int, body string) *httptest.Server {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(srv.Close)
		return srv
	}
	t.Setenv("CO2MON_CONCENTRATION_URL", serve(concentrationStatus, noaaFixture).URL)
	t.Setenv("CO2MON_EMISSIONS_URL", serve(emissionsStatus, owidFixture).URL)
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireFetchExit(t *testing.T, err error) *cli.FetchExitError {
	t.Helper()
	require.Error(t, err)
	var exitErr *cli.FetchExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr
}
