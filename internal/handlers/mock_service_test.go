package handlers

import (
	"context"
	"net/http"
	"sync"

	"gridsense/internal/grid"
	"gridsense/internal/models"
	"gridsense/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSignals struct {
	current      grid.SensorSnapshot
	err          error
	lastCritical *bool
	lastPatch    service.SignalPatch
	patchCalls   int
}

func (m *mockSignals) Current(context.Context) (grid.SensorSnapshot, error) {
	return m.current, m.err
}
func (m *mockSignals) Randomize(_ context.Context, critical bool) (grid.SensorSnapshot, error) {
	m.lastCritical = &critical
	return m.current, m.err
}
func (m *mockSignals) Override(_ context.Context, p service.SignalPatch) (grid.SensorSnapshot, error) {
	m.patchCalls++
	m.lastPatch = p
	return m.current, m.err
}

type mockAssessment struct {
	mu        sync.Mutex
	entry     models.ReportEntry
	report    models.StatusReport
	err       error
	latestErr error
	lastSnap  grid.SensorSnapshot
	assessN   int
	latestN   int
}

func (m *mockAssessment) Assess(context.Context) (models.ReportEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessN++
	return m.entry, m.err
}
func (m *mockAssessment) Evaluate(_ context.Context, s grid.SensorSnapshot) (models.StatusReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSnap = s
	return m.report, m.err
}
func (m *mockAssessment) Latest(context.Context) (models.ReportEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latestN++
	return m.entry, m.latestErr
}

type mockHistory struct {
	reports    []models.ReportEntry
	events     []models.GridEvent
	err        error
	lastReport service.ReportFilter
	lastLog    service.LogFilter
}

func (m *mockHistory) Reports(_ context.Context, f service.ReportFilter) ([]models.ReportEntry, error) {
	m.lastReport = f
	return m.reports, m.err
}
func (m *mockHistory) Events(_ context.Context, f service.LogFilter) ([]models.GridEvent, error) {
	m.lastLog = f
	return m.events, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Options{})
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func sampleReport() models.StatusReport {
	return models.StatusReport{
		Status:       grid.TierCritical,
		SystemHealth: grid.HealthAlert,
		StressIndex:  90.5,
		FaultAlert:   "CRITICAL: Stress Index 90.5 exceeds safe threshold.",
		Timestamp:    "2025-03-01T12:30:00Z",
	}
}

func sampleSnapshot() grid.SensorSnapshot {
	return grid.SensorSnapshot{
		Temperature:       95,
		Humidity:          90,
		ComponentAgeScore: 85,
		LoadPercentage:    95,
		FaultSignal:       1,
		CurrentTopology:   grid.TopologyNormal,
		RenewableInput:    900,
		WeatherScore:      0.7,
	}
}
