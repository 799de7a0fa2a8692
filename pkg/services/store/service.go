// Package store implements the durable job store on sqlx. Two
// drivers are supported: modernc sqlite (the default, embedded) and
// postgres. Queries use `?` placeholders and are rebound per driver.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
	"github.com/cronforge/jenkins-scheduler/internal/common/logger"
	"github.com/cronforge/jenkins-scheduler/internal/model"
	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
	"github.com/cronforge/jenkins-scheduler/pkg/services/library"
)

func init() {
	// The modernc driver registers as "sqlite", which sqlx does not
	// know a bindvar convention for.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

type Service struct {
	db     *sqlx.DB
	driver string
	log    *logger.Logger
}

func New(ctx context.Context, driver, dsn string, log *logger.Logger) (*Service, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == "sqlite" {
		// One writer connection; sqlite serializes writes anyway and
		// this keeps an in-memory database on a single connection.
		db.SetMaxOpenConns(1)
	}

	return &Service{db: db, driver: driver, log: log}, nil
}

var _ library.Store = (*Service)(nil)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS jenkins_config (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		url TEXT NOT NULL,
		username TEXT,
		token TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scheduled_jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		jenkins_config_id INTEGER,
		jenkins_job_name TEXT,
		targets TEXT,
		job_configs TEXT,
		parameters TEXT,
		cron_expression TEXT,
		execute_once INTEGER NOT NULL DEFAULT 0,
		execute_time TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		last_execution TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS execution_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT,
		log_output TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TEXT NOT NULL
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS jenkins_config (
		id BIGSERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		url TEXT NOT NULL,
		username TEXT,
		token TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scheduled_jobs (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		jenkins_config_id BIGINT,
		jenkins_job_name TEXT,
		targets TEXT,
		job_configs TEXT,
		parameters TEXT,
		cron_expression TEXT,
		execute_once BOOLEAN NOT NULL DEFAULT FALSE,
		execute_time TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		last_execution TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS execution_history (
		id BIGSERIAL PRIMARY KEY,
		job_id BIGINT NOT NULL,
		status TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT,
		log_output TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TEXT NOT NULL
	)`,
}

// Init creates missing tables and seeds the bootstrap admin account.
// Safe to call on every start.
func (s *Service) Init(ctx context.Context, adminUsername, adminPassword, adminEmail string) error {
	schema := sqliteSchema
	if s.driver == "postgres" {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	seed := `INSERT OR IGNORE INTO users (username, password_hash, email, role, created_at) VALUES (?, ?, ?, ?, ?)`
	if s.driver == "postgres" {
		seed = `INSERT INTO users (username, password_hash, email, role, created_at) VALUES (?, ?, ?, ?, ?) ON CONFLICT (username) DO NOTHING`
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(seed),
		adminUsername, string(hash), adminEmail, "admin", model.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	return nil
}

// insert runs an INSERT and returns the generated id, papering over
// the lib/pq lack of LastInsertId.
func (s *Service) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.driver == "postgres" {
		var id int64
		err := s.db.GetContext(ctx, &id, s.db.Rebind(query+" RETURNING id"), args...)
		return id, err
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Service) CreateJob(ctx context.Context, job *payloads.ScheduledJob) (int64, error) {
	row := model.JobRowFrom(job)
	return s.insert(ctx,
		`INSERT INTO scheduled_jobs
			(name, jenkins_config_id, targets, job_configs, parameters, cron_expression, execute_once, execute_time, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.Name, row.BuildServerConfigID, row.Targets, row.JobConfigs, row.Parameters,
		row.CronExpression, row.ExecuteOnce, row.ExecuteTime, row.Status, row.CreatedAt)
}

func (s *Service) GetJob(ctx context.Context, id int64) (*payloads.ScheduledJob, error) {
	var row model.JobRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT * FROM scheduled_jobs WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return row.Job(), nil
}

func (s *Service) ListJobs(ctx context.Context) ([]*payloads.ScheduledJob, error) {
	return s.selectJobs(ctx, `SELECT * FROM scheduled_jobs ORDER BY created_at DESC`)
}

func (s *Service) ListActiveJobs(ctx context.Context) ([]*payloads.ScheduledJob, error) {
	return s.selectJobs(ctx, `SELECT * FROM scheduled_jobs WHERE status = 'active'`)
}

func (s *Service) selectJobs(ctx context.Context, query string, args ...any) ([]*payloads.ScheduledJob, error) {
	var rows []model.JobRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	jobs := make([]*payloads.ScheduledJob, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, rows[i].Job())
	}
	return jobs, nil
}

func (s *Service) UpdateJob(ctx context.Context, job *payloads.ScheduledJob) error {
	row := model.JobRowFrom(job)
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE scheduled_jobs SET
			name = ?, jenkins_config_id = ?, targets = ?, job_configs = ?, parameters = ?,
			cron_expression = ?, execute_once = ?, execute_time = ?, status = ?
			WHERE id = ?`),
		row.Name, row.BuildServerConfigID, row.Targets, row.JobConfigs, row.Parameters,
		row.CronExpression, row.ExecuteOnce, row.ExecuteTime, row.Status, job.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("job %d: %w", job.ID, core.ErrNotFound)
	}
	return nil
}

// DeleteJob removes the job row only. History rows stay behind,
// readable by job id, until separately purged.
func (s *Service) DeleteJob(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM scheduled_jobs WHERE id = ?`), id)
	return err
}

func (s *Service) UpdateJobStatus(ctx context.Context, id int64, status payloads.JobStatus) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE scheduled_jobs SET status = ? WHERE id = ?`), string(status), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("job %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *Service) TouchLastExecution(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE scheduled_jobs SET last_execution = ? WHERE id = ?`), model.FormatTime(at), id)
	return err
}

func (s *Service) AppendHistory(ctx context.Context, entry *payloads.ExecutionHistoryEntry) (int64, error) {
	return s.insert(ctx,
		`INSERT INTO execution_history (job_id, status, start_time, log_output) VALUES (?, ?, ?, ?)`,
		entry.JobID, string(entry.Status), model.FormatTime(entry.StartTime), entry.LogOutput)
}

func (s *Service) CompleteHistory(ctx context.Context, id int64, status payloads.ExecutionStatus, endTime time.Time, logOutput string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE execution_history SET status = ?, end_time = ?, log_output = ? WHERE id = ?`),
		string(status), model.FormatTime(endTime), logOutput, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("history entry %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *Service) ListHistory(ctx context.Context, limit int) ([]*payloads.ExecutionHistoryEntry, error) {
	return s.selectHistory(ctx,
		`SELECT * FROM execution_history ORDER BY start_time DESC LIMIT ?`, limit)
}

func (s *Service) ListHistoryByJob(ctx context.Context, jobID int64) ([]*payloads.ExecutionHistoryEntry, error) {
	return s.selectHistory(ctx,
		`SELECT * FROM execution_history WHERE job_id = ? ORDER BY start_time DESC`, jobID)
}

func (s *Service) selectHistory(ctx context.Context, query string, args ...any) ([]*payloads.ExecutionHistoryEntry, error) {
	var rows []model.HistoryRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	entries := make([]*payloads.ExecutionHistoryEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].Entry())
	}
	return entries, nil
}

func (s *Service) CreateBuildServer(ctx context.Context, server *payloads.BuildServer) (int64, error) {
	return s.insert(ctx,
		`INSERT INTO jenkins_config (name, url, username, token, created_at) VALUES (?, ?, ?, ?, ?)`,
		server.Name, server.URL, server.Username, server.Token, model.FormatTime(time.Now()))
}

func (s *Service) GetBuildServer(ctx context.Context, id int64) (*payloads.BuildServer, error) {
	var row model.BuildServerRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT * FROM jenkins_config WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("jenkins config %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return row.Server(), nil
}

func (s *Service) ListBuildServers(ctx context.Context) ([]*payloads.BuildServer, error) {
	var rows []model.BuildServerRow
	err := s.db.SelectContext(ctx, &rows, `SELECT * FROM jenkins_config`)
	if err != nil {
		return nil, err
	}

	servers := make([]*payloads.BuildServer, 0, len(rows))
	for i := range rows {
		servers = append(servers, rows[i].Server())
	}
	return servers, nil
}

func (s *Service) DeleteBuildServer(ctx context.Context, id int64) error {
	var inUse int
	err := s.db.GetContext(ctx, &inUse, s.db.Rebind(
		`SELECT COUNT(*) FROM scheduled_jobs WHERE jenkins_config_id = ?`), id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return core.Validationf("configuration is still referenced by %d scheduled job(s)", inUse)
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM jenkins_config WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("jenkins config %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*payloads.User, error) {
	var row model.UserRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT * FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return row.User(), nil
}

func (s *Service) GetUserByUsername(ctx context.Context, username string) (*payloads.User, error) {
	var row model.UserRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT * FROM users WHERE username = ?`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, core.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return row.User(), nil
}

func (s *Service) Close() error {
	return s.db.Close()
}
