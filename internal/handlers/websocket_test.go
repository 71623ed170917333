package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"gridsense/internal/models"
	"gridsense/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Options{StreamInterval: time.Second, MinStreamInterval: 100 * time.Millisecond})

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_below_min", "/ws?interval=10ms", 1 * time.Second},
		{"interval_too_large", "/ws?interval=2m", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=120000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestNewHandler_StreamDefaults(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Options{})
	if h.opts.StreamInterval != defaultInterval || h.opts.MinStreamInterval != minInterval {
		t.Fatalf("defaults not applied: %+v", h.opts)
	}
}

// --- websocket integration tests ---

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialStream(t *testing.T, as *mockAssessment) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(&service.Service{Assessment: as}, nil, Options{StreamInterval: time.Second, MinStreamInterval: 10 * time.Millisecond})
	r := gin.New()
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	q := u.Query()
	q.Set("interval_ms", "20") // fast ticks for the test
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestWebSocket_StatusStream_InitialAndPeriodic(t *testing.T) {
	as := &mockAssessment{entry: models.ReportEntry{Report: sampleReport()}}
	conn := dialStream(t, as)

	env := readEnvelope(t, conn)
	if env.Type != wsTypeStatus || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var rep models.StatusReport
	if err := json.Unmarshal(env.Data, &rep); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if rep != sampleReport() {
		t.Fatalf("unexpected report: %+v", rep)
	}

	if env = readEnvelope(t, conn); env.Type != wsTypeStatus {
		t.Fatalf("expected a second status push, got %+v", env)
	}
}

func TestWebSocket_LatestErrorSendsErrorEnvelope(t *testing.T) {
	as := &mockAssessment{latestErr: errors.New("boom")}
	conn := dialStream(t, as)

	env := readEnvelope(t, conn)
	if env.Type != wsTypeError || env.Error != errLoadStatus {
		t.Fatalf("expected error envelope, got %+v", env)
	}
	if len(env.Data) != 0 {
		t.Fatalf("error envelope must not carry data: %s", env.Data)
	}
}
