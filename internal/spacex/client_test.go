package spacex

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/launchdeck/internal/launch"
)

const sampleLaunches = `[
  {"_id":"b","flight_number":2,"mission_name":"DemoSat","launch_year":"2007","upcoming":false,"launch_success":false,"details":"Reached space","links":{"video_link":"https://youtu.be/demo"}},
  {"_id":"a","flight_number":1,"mission_name":"FalconSat","launch_year":"2006","upcoming":false,"launch_success":false,"details":null,"links":{}}
]`

func TestClient_LaunchesURL(t *testing.T) {
	c := NewClient("https://mirror.example.com/")
	assert.Equal(t,
		"https://mirror.example.com/v3/launches?id=true&order=desc&sort=launch_date_utc",
		c.LaunchesURL())

	assert.Contains(t, NewClient("").LaunchesURL(), DefaultBaseURL)
}

func TestClient_WithTimeoutCopiesHTTPClient(t *testing.T) {
	shared := &http.Client{}

	c := NewClient("", WithHTTPClient(shared), WithTimeout(5*time.Second))

	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)
	assert.Zero(t, shared.Timeout, "shared client is not modified")

	c = NewClient("", WithHTTPClient(shared), WithTimeout(0))
	assert.Same(t, shared, c.httpClient, "zero timeout keeps the given client")
}

func TestClient_FetchLaunches(t *testing.T) {
	var gotQuery, gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, "/v3/launches", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleLaunches))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).FetchLaunches(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "DemoSat", records[0].MissionName)
	assert.Equal(t, "FalconSat", records[1].MissionName)
	assert.True(t, records[0].HasDetails())
	assert.False(t, records[1].HasDetails())

	assert.Contains(t, gotQuery, "sort=launch_date_utc")
	assert.Contains(t, gotQuery, "order=desc")
	assert.Contains(t, gotQuery, "id=true")
	assert.Equal(t, "application/json", gotAccept)
	assert.Contains(t, gotUA, "launchdeck/")
}

func TestClient_FetchLaunches_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).FetchLaunches(context.Background())
	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "rate limited", statusErr.Body)
}

func TestClient_FetchLaunches_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchLaunches(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestClient_FetchLaunches_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).FetchLaunches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requesting launches")
}

type countingFetcher struct {
	mu      sync.Mutex
	calls   int
	records []launch.Record
	err     error
}

func (f *countingFetcher) FetchLaunches(context.Context) ([]launch.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.records, f.err
}

func TestLoader_LoadsOnce(t *testing.T) {
	f := &countingFetcher{records: []launch.Record{{ID: "a", MissionName: "FalconSat"}}}
	l := NewLoader(f, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := l.Load(context.Background())
			assert.Len(t, res.Records, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, f.calls)
}

func TestLoader_FailureIsLoggedAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := &countingFetcher{err: errors.New("network unreachable")}
	l := NewLoader(f, zerolog.New(&buf))

	res := l.Load(context.Background())

	assert.Empty(t, res.Records)
	require.Error(t, res.Err)
	assert.Contains(t, buf.String(), "error fetching launches")
	assert.Contains(t, buf.String(), "network unreachable")

	// A second call does not retry.
	_ = l.Load(context.Background())
	assert.Equal(t, 1, f.calls)
}
