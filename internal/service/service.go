package service

import (
	"context"
	"time"

	"gridsense/internal/grid"
	"gridsense/internal/logger"
	"gridsense/internal/models"
	"gridsense/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Signals owns the current snapshot that operators adjust between evaluations.
type Signals interface {
	Current(ctx context.Context) (grid.SensorSnapshot, error)
	Randomize(ctx context.Context, critical bool) (grid.SensorSnapshot, error)
	Override(ctx context.Context, p SignalPatch) (grid.SensorSnapshot, error)
}

// Assessment runs the decision engine and records its output.
type Assessment interface {
	Assess(ctx context.Context) (models.ReportEntry, error)
	Evaluate(ctx context.Context, s grid.SensorSnapshot) (models.StatusReport, error)
	Latest(ctx context.Context) (models.ReportEntry, error)
}

// History exposes stored reports and the operational event log.
type History interface {
	Reports(ctx context.Context, f ReportFilter) ([]models.ReportEntry, error)
	Events(ctx context.Context, f LogFilter) ([]models.GridEvent, error)
}

// Simulator regenerates and assesses snapshots in the background.
// Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
	SetCriticalRatio(ratio float64)
}

// Publisher hands a finished status report to external consumers.
type Publisher interface {
	Publish(ctx context.Context, r models.StatusReport) error
}

// Recorder counts evaluations for the metrics endpoint.
type Recorder interface {
	ObserveReport(r models.StatusReport)
	PublishFailed()
}

// Deps are the non-repository collaborators of the services. Nil Publisher
// and Metrics are allowed.
type Deps struct {
	Rand           grid.RandomSource
	Publisher      Publisher
	PublishTimeout time.Duration
	Metrics        Recorder
	Log            *logger.Logger
	SigningKey     string
	TokenTTL       time.Duration
	AllowSignUp    bool
	CriticalRatio  float64
}

type Service struct {
	Signals
	Assessment
	History
	Simulator
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	src := newSnapshotSource(deps.Rand)
	signals := NewSignalService(repos.SignalRepo, repos.EventRepo, src, deps.Log)
	assessment := NewAssessmentService(signals, repos.ReportRepo, repos.EventRepo, deps.Publisher, deps.Metrics, deps.Log)
	if deps.PublishTimeout > 0 {
		assessment.publishTimeout = deps.PublishTimeout
	}
	return &Service{
		Signals:       signals,
		Assessment:    assessment,
		History:       NewHistoryService(repos.ReportRepo, repos.EventRepo),
		Simulator:     NewSimulatorService(signals, assessment, src, deps.CriticalRatio, deps.Log),
		Authorization: NewAuthService(repos.Auth, deps.SigningKey, deps.TokenTTL, deps.AllowSignUp),
	}
}
