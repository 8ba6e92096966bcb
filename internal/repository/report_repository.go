package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/zendframework/maintainers/internal/domain"
)

const (
	// ReportSchemaVersion is written into every report file
	ReportSchemaVersion = "1.0.0"
	// ReportFilePermissions defines the permissions for report files
	ReportFilePermissions = 0600
	// ReportDirPermissions defines the permissions for the report directory
	ReportDirPermissions = 0700
	// LockTimeout is the maximum time to wait for a report lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval is the interval between lock attempts
	LockRetryInterval = 100 * time.Millisecond

	latestFileName = "latest.txt"
	reportPrefix   = "report-"
	reportSuffix   = ".json"
)

// ErrReportNotFound is returned when no report exists for a session.
var ErrReportNotFound = errors.New("run report not found")

// ReportRepository persists batch run reports.
type ReportRepository interface {
	Save(ctx context.Context, report *domain.RunReport) error
	Load(ctx context.Context, sessionID string) (*domain.RunReport, error)
	LoadLatest(ctx context.Context) (*domain.RunReport, error)
}

// NewSessionID returns a fresh run identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// ReportMetadata describes a stored report.
type ReportMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReportEnvelope is the on-disk shape of a report.
type ReportEnvelope struct {
	Metadata ReportMetadata    `json:"metadata"`
	Report   *domain.RunReport `json:"report"`
}

// JSONReportRepository stores reports as JSON files. When the reports live on
// the operating system filesystem they are guarded by flock files next to
// them; other filesystems (the dry-run overlay, tests) only use the in-process
// mutex and never touch the disk.
type JSONReportRepository struct {
	fs  afero.Fs
	dir string
	log *zap.Logger
	mu  sync.RWMutex
}

// NewJSONReportRepository creates a report repository rooted at dir.
func NewJSONReportRepository(fs afero.Fs, dir string, log *zap.Logger) *JSONReportRepository {
	return &JSONReportRepository{fs: fs, dir: dir, log: log}
}

// Save writes the report atomically and points latest.txt at it.
func (r *JSONReportRepository) Save(ctx context.Context, report *domain.RunReport) error {
	if _, err := uuid.Parse(report.SessionID); err != nil {
		return fmt.Errorf("invalid session id %q: %w", report.SessionID, err)
	}
	if err := r.fs.MkdirAll(r.dir, ReportDirPermissions); err != nil {
		return fmt.Errorf("failed to ensure report directory: %w", err)
	}
	unlock, err := r.lock(ctx, report.SessionID, false)
	if err != nil {
		return err
	}
	defer unlock()
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	envelope := ReportEnvelope{
		Metadata: ReportMetadata{
			SchemaVersion: ReportSchemaVersion,
			Checksum:      checksum(payload),
			CreatedAt:     report.StartedAt,
			UpdatedAt:     time.Now(),
		},
		Report: report,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report envelope: %w", err)
	}
	filename := r.reportPath(report.SessionID)
	if err := r.writeAtomic(filename, data); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.writeAtomic(r.latestPath(), []byte(filepath.Base(filename))); err != nil {
		return fmt.Errorf("failed to update latest pointer: %w", err)
	}
	return nil
}

// Load reads and validates the report of one session.
func (r *JSONReportRepository) Load(ctx context.Context, sessionID string) (*domain.RunReport, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", sessionID, err)
	}
	data, err := afero.ReadFile(r.fs, r.reportPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: session %s", ErrReportNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	unlock, err := r.lock(ctx, sessionID, true)
	if err != nil {
		return nil, err
	}
	defer unlock()
	var envelope ReportEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	if envelope.Metadata.SchemaVersion != ReportSchemaVersion {
		return nil, fmt.Errorf("incompatible schema version: expected %s, got %s",
			ReportSchemaVersion, envelope.Metadata.SchemaVersion)
	}
	if envelope.Report == nil {
		return nil, fmt.Errorf("report file for session %s is empty", sessionID)
	}
	payload, err := json.Marshal(envelope.Report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report for checksum validation: %w", err)
	}
	if envelope.Metadata.Checksum != checksum(payload) {
		return nil, fmt.Errorf("report checksum mismatch: data may be corrupted")
	}
	return envelope.Report, nil
}

// LoadLatest loads the report that latest.txt points at.
func (r *JSONReportRepository) LoadLatest(ctx context.Context) (*domain.RunReport, error) {
	r.mu.RLock()
	data, err := afero.ReadFile(r.fs, r.latestPath())
	r.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to read latest pointer: %w", err)
	}
	name := strings.TrimSpace(string(data))
	if !strings.HasPrefix(name, reportPrefix) || !strings.HasSuffix(name, reportSuffix) {
		return nil, fmt.Errorf("invalid latest pointer target: %s", name)
	}
	return r.Load(ctx, strings.TrimSuffix(strings.TrimPrefix(name, reportPrefix), reportSuffix))
}

func (r *JSONReportRepository) lock(ctx context.Context, sessionID string, shared bool) (func(), error) {
	if _, onDisk := r.fs.(*afero.OsFs); !onDisk {
		return func() {}, nil
	}
	if err := os.MkdirAll(r.dir, ReportDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to ensure lock directory: %w", err)
	}
	lock := flock.New(filepath.Join(r.dir, "."+reportPrefix+sessionID+".lock"))
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = lock.TryRLockContext(lockCtx, LockRetryInterval)
	} else {
		locked, err = lock.TryLockContext(lockCtx, LockRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire lock within timeout")
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.log.Warn("failed to unlock report", zap.String("session_id", sessionID), zap.Error(err))
		}
	}, nil
}

func (r *JSONReportRepository) writeAtomic(filename string, data []byte) error {
	tmp := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, data, ReportFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := r.fs.Rename(tmp, filename); err != nil {
		if removeErr := r.fs.Remove(tmp); removeErr != nil {
			r.log.Warn("failed to remove temp file", zap.String("file", tmp), zap.Error(removeErr))
		}
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}

func (r *JSONReportRepository) reportPath(sessionID string) string {
	return filepath.Join(r.dir, reportPrefix+sessionID+reportSuffix)
}

func (r *JSONReportRepository) latestPath() string {
	return filepath.Join(r.dir, latestFileName)
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
