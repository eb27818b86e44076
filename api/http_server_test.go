package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/VanDung-dev/QNetX-Engine/arrow"
	"github.com/VanDung-dev/QNetX-Engine/metrics"
	"github.com/VanDung-dev/QNetX-Engine/network"
	"github.com/VanDung-dev/QNetX-Engine/qnet"
	"github.com/VanDung-dev/QNetX-Engine/qnetx"
	"github.com/VanDung-dev/QNetX-Engine/qnum"
)

type sentHop struct {
	from, to qnet.NodeID
}

type hopLog struct {
	mu   sync.Mutex
	hops []sentHop
}

func (l *hopLog) SendDirect(_ context.Context, from, to qnet.NodeID, _ qnet.Packet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hops = append(l.hops, sentHop{from, to})
	return nil
}

// newTestBackend builds a backend with a line topology A-B-C, one classical
// channel "0200" and one superposed channel "1234".
func newTestBackend(t *testing.T, reg *prometheus.Registry) (*Backend, *hopLog) {
	t.Helper()

	rec := metrics.NewMetrics("test", reg)
	logger := zaptest.NewLogger(t)

	router := qnet.NewRouter(4)
	router.AddEdge("A", "B")
	router.AddEdge("B", "C")
	hops := &hopLog{}
	relay := qnet.NewRelay(router, hops, qnet.WithRecorder(rec), qnet.WithLogger(logger))

	cfg := qnetx.DefaultConfig()
	mesh := qnetx.NewMesh(cfg, qnetx.WithRecorder(rec), qnetx.WithLogger(logger))
	mesh.EntangleChannel("A", "B")

	superposed, err := qnum.FromSuperposed([]qnum.State{
		{Digits: []uint8{1, 2, 3, 4}, Weight: 1},
		{Digits: []uint8{5, 6, 7, 8}, Weight: 1},
	})
	require.NoError(t, err)
	mesh.Insert(qnetx.ChannelID{1, 2, 3, 4}, superposed)

	return &Backend{
		NodeID:    "A",
		Relay:     relay,
		Mesh:      mesh,
		Anomaly:   qnetx.NewAnomalyFilter(cfg, qnetx.WithRecorder(rec)),
		Condenser: qnetx.NewStateCondenser(qnetx.WithRecorder(rec)),
		StartTime: time.Now(),
	}, hops
}

func newTestHTTP(t *testing.T, token string) (*httptest.Server, *hopLog) {
	reg := prometheus.NewRegistry()
	backend, hops := newTestBackend(t, reg)
	srv := NewHTTPServer(backend, reg, NewAuthenticator(token), zaptest.NewLogger(t))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, hops
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealthAndMetrics(t *testing.T) {
	ts, _ := newTestHTTP(t, "")

	resp, body := get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, body = get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `test_events_total{event="entanglement"} 1`)
}

func TestStatus(t *testing.T) {
	ts, _ := newTestHTTP(t, "")

	resp, body := get(t, ts.URL+"/status")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.True(t, status.Healthy)
	assert.Equal(t, "A", status.NodeID)
	assert.Equal(t, 2, status.Channels)
	assert.Equal(t, 4, status.KPaths)
	assert.ElementsMatch(t, []qnet.NodeID{"A", "B", "C"}, status.Nodes)
	assert.Nil(t, status.Transport)
}

func TestChannelsEndpoints(t *testing.T) {
	ts, _ := newTestHTTP(t, "")

	resp, body := get(t, ts.URL+"/channels")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var channels []ChannelView
	require.NoError(t, json.Unmarshal(body, &channels))
	require.Len(t, channels, 2)
	assert.Equal(t, "0200", channels[0].Key)
	assert.Equal(t, qnetx.ChannelID{0, 2, 0, 0}, channels[0].ID)
	assert.Equal(t, 0.0, channels[0].Entropy)
	assert.Empty(t, channels[0].Probabilities)

	resp, body = get(t, ts.URL+"/channels/1234")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ch ChannelView
	require.NoError(t, json.Unmarshal(body, &ch))
	require.Len(t, ch.Probabilities, 4)
	assert.InDelta(t, 0.5, ch.Probabilities[0][1], 1e-9)
	assert.InDelta(t, 0.5, ch.Probabilities[0][5], 1e-9)

	resp, _ = get(t, ts.URL+"/channels/9999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/channels/12ab")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChannelsArrow(t *testing.T) {
	ts, _ := newTestHTTP(t, "")

	resp, body := get(t, ts.URL+"/channels.arrow")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, arrowStreamType, resp.Header.Get("Content-Type"))

	record, err := arrow.NewIPCWriter().DeserializeFromIPC(body)
	require.NoError(t, err)
	defer record.Release()

	rows, err := arrow.RecordToChannels(record)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.False(t, rows[0].Anomalous)
	assert.True(t, rows[1].Anomalous)
}

func TestAnomaliesAndCondense(t *testing.T) {
	ts, _ := newTestHTTP(t, "")

	resp, body := get(t, ts.URL+"/anomalies")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var anomalies AnomaliesResponse
	require.NoError(t, json.Unmarshal(body, &anomalies))
	assert.Equal(t, qnetx.DefaultAnomalyThreshold, anomalies.Threshold)
	assert.Equal(t, []qnetx.ChannelID{{1, 2, 3, 4}}, anomalies.Channels)

	resp, err := http.Post(ts.URL+"/condense", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all CondenseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.NotNil(t, all.All)
	assert.Equal(t, 4, all.All.Width)

	resp2, err := http.Post(ts.URL+"/condense?by=prefix", "application/json", nil)
	require.NoError(t, err)
	defer resp2.Body.Close()
	var grouped CondenseResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&grouped))
	assert.Len(t, grouped.ByPrefix, 2)
	assert.Contains(t, grouped.ByPrefix, "0")
	assert.Contains(t, grouped.ByPrefix, "1")
}

func TestAnomaliesEndpointIsReadOnly(t *testing.T) {
	reg := prometheus.NewRegistry()
	backend, _ := newTestBackend(t, reg)
	rec := metrics.NewMetrics("scan", prometheus.NewRegistry())
	backend.Anomaly = qnetx.NewAnomalyFilter(qnetx.DefaultConfig(), qnetx.WithRecorder(rec))
	ts := httptest.NewServer(NewHTTPServer(backend, reg, nil, zaptest.NewLogger(t)).Handler())
	defer ts.Close()

	for i := 0; i < 3; i++ {
		resp, _ := get(t, ts.URL+"/anomalies")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.Events.WithLabelValues(metrics.EventAnomalyDetected)))
}

func TestForgetPeerEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	backend, _ := newTestBackend(t, reg)
	ts := httptest.NewServer(NewHTTPServer(backend, reg, nil, zaptest.NewLogger(t)).Handler())
	defer ts.Close()

	forget := func(id string) int {
		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/peers/"+id, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	// No transport configured.
	assert.Equal(t, http.StatusServiceUnavailable, forget("B"))

	cfg := network.DefaultConfig()
	cfg.NodeID, cfg.Kind = "A", network.KindNNG
	tr, err := network.New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	tr.RegisterPeer("B", "tcp://127.0.0.1:1")
	backend.Transport = tr

	assert.Equal(t, http.StatusNoContent, forget("B"))
	assert.Empty(t, tr.Peers())
	assert.Equal(t, http.StatusNotFound, forget("B"))
}

func TestRelayEndpoint(t *testing.T) {
	ts, hops := newTestHTTP(t, "")

	resp, err := http.Post(ts.URL+"/relay", "application/json",
		strings.NewReader(`{"src":"A","dst":"C","payload":"aGk="}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out RelayResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, []string{"A", "B", "C"}, out.Path)
	assert.Equal(t, 2, out.Hops)
	assert.ElementsMatch(t, []sentHop{{"A", "B"}, {"B", "C"}}, hops.hops)

	resp2, err := http.Post(ts.URL+"/relay", "application/json",
		strings.NewReader(`{"src":"A","dst":"Z"}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)

	resp3, err := http.Post(ts.URL+"/relay", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestHTTPAuth(t *testing.T) {
	ts, _ := newTestHTTP(t, "secret")

	// Health and metrics stay open.
	resp, _ := get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/status")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/status", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBackendWithoutMesh(t *testing.T) {
	b := &Backend{NodeID: "solo", StartTime: time.Now()}

	_, err := b.Channels()
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = b.RelayPacket(context.Background(), &RelayRequest{Src: "A", Dst: "B"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, b.Health().Channels)
}

func TestHTTPServerLifecycle(t *testing.T) {
	backend, _ := newTestBackend(t, prometheus.NewRegistry())
	srv := NewHTTPServer(backend, nil, nil, nil)

	require.NoError(t, srv.Start("127.0.0.1:0"))
	require.NotNil(t, srv.Addr())
	assert.Error(t, srv.Start("127.0.0.1:0"))

	resp, _ := get(t, "http://"+srv.Addr().String()+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, "http://"+srv.Addr().String()+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, srv.Stop(context.Background()))
}
