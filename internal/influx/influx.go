package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/OCAP2/cursortools/internal/config"
	"github.com/OCAP2/cursortools/internal/cursor"
	"github.com/OCAP2/cursortools/internal/queue"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"
)

// MoveMeasurement is the measurement drag samples are written to
const MoveMeasurement = "cursor_move"

// pendingLimit bounds the samples held between flushes
const pendingLimit = 10000

// ErrDisabled is returned by Connect when telemetry is switched off
var ErrDisabled = errors.New("influx telemetry is disabled")

// Manager buffers drag samples and writes them to InfluxDB or, when the
// server is unreachable, to a gzipped line protocol backup file.
type Manager struct {
	Client       influxdb2.Client
	Writer       influxdb2_api.WriteAPI
	BackupWriter *gzip.Writer
	IsValid      bool
	Logger       zerolog.Logger
	BackupPath   string

	cfg        config.InfluxConfig
	pending    *queue.Queue[*influxdb2_write.Point]
	backupFile *os.File
	mu         sync.Mutex
	now        func() time.Time
}

// NewManager creates a new InfluxDB manager.
func NewManager(log zerolog.Logger, cfg config.InfluxConfig, backupPath string) *Manager {
	return &Manager{
		IsValid:    false,
		Logger:     log,
		BackupPath: backupPath,
		cfg:        cfg,
		pending:    queue.NewBounded[*influxdb2_write.Point](pendingLimit),
		now:        time.Now,
	}
}

// Connect establishes a connection to InfluxDB, opening the backup file if
// the server does not answer.
func (m *Manager) Connect(ctx context.Context) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	m.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf("%s://%s:%s", m.cfg.Protocol, m.cfg.Host, m.cfg.Port),
		m.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	// validate client connection health
	running, err := m.Client.Ping(ctx)

	if err != nil || !running {
		m.IsValid = false
		if err := m.openBackup(); err != nil {
			return err
		}
		m.Logger.Warn().Str("backupPath", m.BackupPath).
			Msg("InfluxDB client failed to initialize, using backup writer")
		return nil
	}

	if err := m.setupOrganizationAndBucket(ctx); err != nil {
		return err
	}
	m.IsValid = true
	m.createWriter()
	m.Logger.Info().Str("bucket", m.cfg.Bucket).Msg("InfluxDB client initialized")
	return nil
}

func (m *Manager) openBackup() error {
	if m.BackupWriter != nil {
		return nil
	}
	if m.BackupPath == "" {
		return errors.New("influxDB unreachable and no backup path configured")
	}
	file, err := os.OpenFile(m.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	m.backupFile = file
	m.BackupWriter = gzip.NewWriter(file)
	return nil
}

func (m *Manager) setupOrganizationAndBucket(ctx context.Context) error {
	orgName := m.cfg.Org

	// ensure org exists
	influxOrg, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Info().Str("org", orgName).Msg("Organization not found, creating")
		influxOrg, err = m.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			m.Logger.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	// ensure bucket exists with 90 day retention
	if _, err := m.Client.BucketsAPI().FindBucketByName(ctx, m.cfg.Bucket); err != nil {
		m.Logger.Info().Str("bucket", m.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = m.Client.BucketsAPI().CreateBucketWithName(ctx, influxOrg, m.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 90, // 90 days
		})
		if err != nil {
			m.Logger.Error().Err(err).Str("bucket", m.cfg.Bucket).Msg("Error creating bucket")
			return err
		}
	}
	return nil
}

func (m *Manager) createWriter() {
	m.Writer = m.Client.WriteAPI(m.cfg.Org, m.cfg.Bucket)

	errorsCh := m.Writer.Errors()
	go func() {
		for writeErr := range errorsCh {
			m.Logger.Error().Err(writeErr).Str("bucket", m.cfg.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}()
}

// MovePoint converts a drag sample into a point
func MovePoint(ev cursor.MoveEvent, t time.Time) *influxdb2_write.Point {
	p := influxdb2_write.NewPointWithMeasurement(MoveMeasurement).
		AddTag("kind", ev.Kind.String()).
		AddField("from", ev.From).
		AddField("position", ev.Position).
		AddField("delta", ev.Position-ev.From).
		SetTime(t)
	if ev.DisplayID != 0 {
		p.AddTag("id", strconv.Itoa(ev.DisplayID))
	}
	return p.SortTags().SortFields()
}

// RecordMove queues a drag sample until the next Flush
func (m *Manager) RecordMove(ev cursor.MoveEvent) {
	m.pending.Push(MovePoint(ev, m.now()))
}

// Pending returns the number of queued samples
func (m *Manager) Pending() int {
	return m.pending.Len()
}

// Flush writes all queued samples. Samples that could not be written are
// queued again.
func (m *Manager) Flush() error {
	points := m.pending.GetAndEmpty()
	if len(points) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range points {
		if err := m.writePoint(p); err != nil {
			m.pending.Requeue(points[i:])
			return err
		}
	}
	if m.IsValid {
		m.Writer.Flush()
	} else if m.BackupWriter != nil {
		if err := m.BackupWriter.Flush(); err != nil {
			return fmt.Errorf("error flushing InfluxDB backup file: %w", err)
		}
	}
	m.Logger.Debug().Int("points", len(points)).Msg("Flushed drag samples")
	return nil
}

// writePoint writes a point to InfluxDB or backup file.
func (m *Manager) writePoint(point *influxdb2_write.Point) error {
	if m.IsValid {
		m.Writer.WritePoint(point)
		return nil
	}
	if m.BackupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}

	lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	if !strings.HasSuffix(lineProtocol, "\n") {
		lineProtocol += "\n"
	}
	if _, err := m.BackupWriter.Write([]byte(lineProtocol)); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// Close flushes pending samples and releases the client and backup file.
func (m *Manager) Close() error {
	errs := []error{m.Flush()}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Client != nil {
		m.Client.Close()
		m.Client = nil
	}
	m.IsValid = false
	if m.BackupWriter != nil {
		errs = append(errs, m.BackupWriter.Close())
		m.BackupWriter = nil
	}
	if m.backupFile != nil {
		errs = append(errs, m.backupFile.Close())
		m.backupFile = nil
	}
	return errors.Join(errs...)
}
