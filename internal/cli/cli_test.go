package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/launchdeck/internal/cli/pagination"
	"github.com/rshade/launchdeck/internal/config"
	"github.com/rshade/launchdeck/internal/launch"
	"github.com/rshade/launchdeck/internal/logging"
)

// fixtureLaunches returns n launches, newest first, the way the API serves
// them. Flights 3, 8 and 12 are Falcon missions.
func fixtureLaunches(n int) []launch.Record {
	falcon := map[int]string{3: "FalconSat", 8: "Falcon 9 Test Flight", 12: "Falcon Heavy Test"}
	success := true
	records := make([]launch.Record, 0, n)
	for flight := n; flight >= 1; flight-- {
		name := fmt.Sprintf("Mission %02d", flight)
		if f, ok := falcon[flight]; ok {
			name = f
		}
		records = append(records, launch.Record{
			ID:            fmt.Sprintf("id-%02d", flight),
			FlightNumber:  flight,
			MissionName:   name,
			LaunchYear:    fmt.Sprintf("%d", 2005+flight),
			LaunchDateUTC: fmt.Sprintf("%d-01-01T00:00:00.000Z", 2005+flight),
			LaunchSuccess: &success,
			Links:         launch.Links{ArticleLink: fmt.Sprintf("https://example.com/%d", flight)},
		})
	}
	return records
}

// newAPIServer serves records on the launches endpoint and counts requests.
func newAPIServer(t *testing.T, records []launch.Record) (*httptest.Server, *int) {
	t.Helper()
	body, err := json.Marshal(records)
	require.NoError(t, err)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/launches" {
			http.NotFound(w, r)
			return
		}
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// runCLI executes the root command with args and an isolated home directory.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := NewRootCmd("test")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Structure(t *testing.T) {
	root := NewRootCmd("1.2.3")

	assert.Equal(t, "launchdeck", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "browse")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "version")

	for _, flag := range []string{"config", "debug", "api-url", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "launchdeck dev")
	assert.Contains(t, stdout, "commit:")
}

func TestListCmd_Table(t *testing.T) {
	srv, hits := newAPIServer(t, fixtureLaunches(25))

	stdout, _, err := runCLI(t, "--api-url", srv.URL, "list", "--limit", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6, "header, separator, 3 rows, summary")
	assert.Contains(t, lines[0], "MISSION")
	assert.Contains(t, lines[2], "Mission 25")
	assert.Contains(t, lines[2], "Success")
	assert.Contains(t, lines[2], "https://example.com/25")
	assert.Equal(t, "3 of 25 launches (page 1 of 9)", lines[5])
	assert.Equal(t, 1, *hits)
}

func TestListCmd_SearchIsCaseInsensitive(t *testing.T) {
	srv, _ := newAPIServer(t, fixtureLaunches(25))

	stdout, _, err := runCLI(t, "--api-url", srv.URL, "list", "--search", "FALCON", "--output", "ndjson")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)

	var names []string
	for _, line := range lines {
		var rec launch.Record
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		names = append(names, rec.MissionName)
	}
	assert.Equal(t, []string{"Falcon Heavy Test", "Falcon 9 Test Flight", "FalconSat"}, names,
		"server order is kept")
}

func TestListCmd_JSONWithPagination(t *testing.T) {
	srv, _ := newAPIServer(t, fixtureLaunches(25))

	stdout, _, err := runCLI(t, "--api-url", srv.URL,
		"list", "--page", "3", "--page-size", "10", "--sort", "flight", "--output", "json")
	require.NoError(t, err)

	var out struct {
		Sort       string          `json:"sort"`
		Launches   []launch.Record `json:"launches"`
		Pagination pagination.Meta `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, "flight", out.Sort)
	require.Len(t, out.Launches, 5)
	assert.Equal(t, 21, out.Launches[0].FlightNumber)
	assert.Equal(t, 25, out.Launches[4].FlightNumber)
	assert.Equal(t, pagination.Meta{
		CurrentPage: 3,
		PageSize:    10,
		TotalPages:  3,
		TotalItems:  25,
		HasPrevious: true,
	}, out.Pagination)
}

func TestListCmd_NoResults(t *testing.T) {
	srv, _ := newAPIServer(t, fixtureLaunches(5))

	stdout, _, err := runCLI(t, "--api-url", srv.URL, "list", "--search", "starship")
	require.NoError(t, err)
	assert.Equal(t, "No launches found\n", stdout)

	stdout, _, err = runCLI(t, "--api-url", srv.URL, "list", "--search", "starship", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"launches": []`)
}

func TestListCmd_FlagErrors(t *testing.T) {
	srv, hits := newAPIServer(t, fixtureLaunches(5))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad output", []string{"--output", "xml"}, "unsupported output format"},
		{"mixed pagination", []string{"--page", "2", "--page-size", "5", "--offset", "3"}, "mutually exclusive"},
		{"page without size", []string{"--page", "2"}, "page-size must be specified"},
		{"bad sort order", []string{"--sort", "name:up"}, "sort order"},
		{"unknown sort field", []string{"--sort", "cost"}, "invalid sort field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--api-url", srv.URL, "list"}, tt.args...)
			_, _, err := runCLI(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
	assert.Equal(t, 0, *hits, "flag errors are reported before fetching")
}

func TestListCmd_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, _, err := runCLI(t, "--api-url", srv.URL, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching launches")
	assert.Contains(t, err.Error(), "503")
}

func TestBrowseCmd_PlainFirstPage(t *testing.T) {
	srv, _ := newAPIServer(t, fixtureLaunches(25))

	stdout, _, err := runCLI(t, "--api-url", srv.URL, "browse", "--plain")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 13, "header, separator, 10 rows, footer")
	assert.Contains(t, lines[2], "Mission 25")
	assert.Contains(t, lines[11], "Mission 16")
	assert.Equal(t, "Showing 10 of 25 launches. Use 'launchdeck list' to see more.", lines[12])
}

func TestBrowseCmd_PlainShortCollection(t *testing.T) {
	srv, _ := newAPIServer(t, fixtureLaunches(4))

	// Without a terminal the default command prints the first page too.
	stdout, _, err := runCLI(t, "--api-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Mission 04")
	assert.True(t, strings.HasSuffix(stdout, "No more launches to display\n"))
}

func TestBrowseCmd_PlainFetchFailureShowsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	stdout, _, err := runCLI(t, "--api-url", srv.URL, "browse", "--plain")
	require.NoError(t, err, "fetch failures degrade to an empty list")
	assert.Equal(t, "No launches found\n", stdout)
}

func TestConfigPrecedence(t *testing.T) {
	srv, _ := newAPIServer(t, fixtureLaunches(25))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"api:\n  base_url: http://127.0.0.1:1\nbrowse:\n  page_size: 4\n"), 0600))

	// The flag wins over the unreachable URL in the file; page size comes from the file.
	stdout, _, err := runCLI(t, "--config", cfgPath, "--api-url", srv.URL, "browse", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Showing 4 of 25 launches")

	t.Setenv("LAUNCHDECK_PAGE_SIZE", "6")
	stdout, _, err = runCLI(t, "--config", cfgPath, "--api-url", srv.URL, "browse", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Showing 6 of 25 launches", "env overrides the file")
}

func TestConfigErrors(t *testing.T) {
	_, _, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")

	_, _, err = runCLI(t, "--api-url", "not a url", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, _, err = runCLI(t, "--timeout", "0s", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api timeout")
}

func TestVersionCmd_IgnoresBrokenConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("browse: [not a map\n"), 0600))

	stdout, _, err := runCLI(t, "--config", cfgPath, "--timeout", "0s", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "launchdeck dev")
}

func TestLoggerConfig(t *testing.T) {
	fileCfg := config.LoggingConfig{Level: "warn", Format: "json", File: "/tmp/launchdeck.log"}

	cfg := loggerConfig(fileCfg, false)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, logging.OutputFile, cfg.Output)
	assert.False(t, cfg.Caller)

	cfg = loggerConfig(fileCfg, true)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, logging.FormatConsole, cfg.Format)
	assert.Equal(t, logging.OutputStderr, cfg.Output)
	assert.Empty(t, cfg.File)
	assert.True(t, cfg.Caller, "--debug adds caller locations")
}
