// Package audit provides an append-only observational log of TCR
// resolutions and Root-of-Trust slot events, adapted from the teacher's
// internal/storage/relationaldb Manager/Logger/Metrics shape but scoped
// down to a single events table. The engines never read from this store:
// it exists purely so an operator can inspect history, and its failure can
// never affect consensus-critical state.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger mirrors relationaldb.Logger.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// Metrics mirrors relationaldb.Metrics.
type Metrics interface {
	IncrementCounter(name string, tags map[string]string)
	RecordDuration(name string, duration time.Duration, tags map[string]string)
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) IncrementCounter(string, map[string]string)             {}
func (NoOpMetrics) RecordDuration(string, time.Duration, map[string]string) {}

// Config selects the relational backend. Driver is "sqlite" (the
// embedded default, modernc.org/sqlite) or "postgres" (github.com/lib/pq),
// mirroring the multi-driver selection in relationaldb.Config.
type Config struct {
	Driver string
	DSN    string

	HealthCheckInterval time.Duration
}

// Record is one audit row.
type Record struct {
	ID        string
	Kind      string
	Subject   string
	Detail    string
	Recorded  time.Time
}

// Recorder appends rows to the audit trail. Every method is best-effort:
// a logging failure here must never be treated as a TCR/RoT engine
// failure.
type Recorder interface {
	Record(ctx context.Context, kind, subject, detail string) error
}

// Manager owns the *sql.DB connection and a background health checker,
// mirroring relationaldb.Manager's lifecycle shape.
type Manager struct {
	cfg     Config
	db      *sql.DB
	logger  Logger
	metrics Metrics

	mu        sync.RWMutex
	connected bool

	healthCancel context.CancelFunc
	healthWg     sync.WaitGroup
}

type ManagerOption func(*Manager)

func WithLogger(l Logger) ManagerOption     { return func(m *Manager) { m.logger = l } }
func WithMetrics(metrics Metrics) ManagerOption { return func(m *Manager) { m.metrics = metrics } }

// NewManager constructs a Manager without opening a connection.
func NewManager(cfg Config, opts ...ManagerOption) *Manager {
	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = time.Minute
	}
	m := &Manager{cfg: cfg, logger: noOpLogger{}, metrics: NoOpMetrics{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open establishes the connection, runs the schema migration, and starts
// the background health checker.
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connected {
		return nil
	}

	db, err := sql.Open(m.cfg.Driver, m.cfg.DSN)
	if err != nil {
		return fmt.Errorf("audit: open %s: %w", m.cfg.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("audit: ping %s: %w", m.cfg.Driver, err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		db.Close()
		return fmt.Errorf("audit: migrate: %w", err)
	}

	m.db = db
	m.connected = true

	healthCtx, cancel := context.WithCancel(context.Background())
	m.healthCancel = cancel
	m.healthWg.Add(1)
	go m.runHealthChecker(healthCtx)

	m.logger.Info("audit store opened (driver=%s)", m.cfg.Driver)
	m.metrics.IncrementCounter("audit.connection.opened", map[string]string{"driver": m.cfg.Driver})
	return nil
}

func (m *Manager) runHealthChecker(ctx context.Context) {
	defer m.healthWg.Done()
	ticker := time.NewTicker(m.cfg.HealthCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.db.PingContext(ctx); err != nil {
				m.logger.Warn("audit: health check failed: %v", err)
				m.metrics.IncrementCounter("audit.health_check.failed", nil)
			}
		}
	}
}

// Close stops the health checker and closes the connection.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return nil
	}
	if m.healthCancel != nil {
		m.healthCancel()
	}
	m.healthWg.Wait()
	err := m.db.Close()
	m.connected = false
	return err
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS audit_events (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	subject TEXT NOT NULL,
	detail TEXT NOT NULL,
	recorded_at TIMESTAMP NOT NULL
)`

// Record implements Recorder.
func (m *Manager) Record(ctx context.Context, kind, subject, detail string) error {
	m.mu.RLock()
	db := m.db
	connected := m.connected
	m.mu.RUnlock()
	if !connected {
		return fmt.Errorf("audit: not connected")
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx, m.insertSQL(), id, kind, subject, detail, time.Now().UTC())
	if err != nil {
		m.logger.Warn("audit: record failed: %v", err)
		m.metrics.IncrementCounter("audit.record.failed", map[string]string{"kind": kind})
		return err
	}
	return nil
}

// insertSQL picks the placeholder style for the configured driver: lib/pq
// requires numbered $-placeholders, modernc.org/sqlite accepts plain '?'.
func (m *Manager) insertSQL() string {
	if m.cfg.Driver == "postgres" {
		return `INSERT INTO audit_events (id, kind, subject, detail, recorded_at) VALUES ($1, $2, $3, $4, $5)`
	}
	return `INSERT INTO audit_events (id, kind, subject, detail, recorded_at) VALUES (?, ?, ?, ?, ?)`
}

type noOpLogger struct{}

func (noOpLogger) Debug(string, ...interface{}) {}
func (noOpLogger) Info(string, ...interface{})  {}
func (noOpLogger) Warn(string, ...interface{})  {}
func (noOpLogger) Error(string, ...interface{}) {}

// NoOpRecorder discards every event; used when no audit backend is wired.
type NoOpRecorder struct{}

func (NoOpRecorder) Record(context.Context, string, string, string) error { return nil }
