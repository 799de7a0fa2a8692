// Package model holds the database row shapes and the normalization
// between them and the canonical payload types. Timestamps are stored
// as RFC 3339 text in every dialect, matching what the rows have
// historically contained.
package model

import (
	"database/sql"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
)

type JobRow struct {
	ID                  int64          `db:"id"`
	Name                string         `db:"name"`
	BuildServerConfigID sql.NullInt64  `db:"jenkins_config_id"`
	TargetJob           sql.NullString `db:"jenkins_job_name"`
	Targets             sql.NullString `db:"targets"`
	JobConfigs          sql.NullString `db:"job_configs"`
	Parameters          sql.NullString `db:"parameters"`
	CronExpression      sql.NullString `db:"cron_expression"`
	ExecuteOnce         bool           `db:"execute_once"`
	ExecuteTime         sql.NullString `db:"execute_time"`
	Status              string         `db:"status"`
	LastExecution       sql.NullString `db:"last_execution"`
	CreatedAt           string         `db:"created_at"`
}

type HistoryRow struct {
	ID        int64          `db:"id"`
	JobID     int64          `db:"job_id"`
	Status    string         `db:"status"`
	StartTime string         `db:"start_time"`
	EndTime   sql.NullString `db:"end_time"`
	LogOutput sql.NullString `db:"log_output"`
}

type BuildServerRow struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	URL       string         `db:"url"`
	Username  sql.NullString `db:"username"`
	Token     sql.NullString `db:"token"`
	CreatedAt string         `db:"created_at"`
}

type UserRow struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Email        sql.NullString `db:"email"`
	Role         string         `db:"role"`
	CreatedAt    string         `db:"created_at"`
}

// decodeJSON parses serialized structured text from a row. Stored
// values have been observed double-encoded (a JSON string containing
// JSON), so on failure the text is unquoted once and retried. A value
// that still does not parse yields false, never an error.
func decodeJSON(raw string, dst any) bool {
	if raw == "" {
		return false
	}
	if json.Unmarshal([]byte(raw), dst) == nil {
		return true
	}
	if unq, err := strconv.Unquote(raw); err == nil {
		return json.Unmarshal([]byte(unq), dst) == nil
	}
	return false
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Job converts a row to the canonical payload shape. Legacy rows that
// predate multi-target support carry a single job name plus a
// job-level parameter mapping; they are migrated here, on read, so
// nothing downstream branches on the old shape.
func (r *JobRow) Job() *payloads.ScheduledJob {
	job := &payloads.ScheduledJob{
		ID:                  r.ID,
		Name:                r.Name,
		BuildServerConfigID: r.BuildServerConfigID.Int64,
		CronExpression:      r.CronExpression.String,
		Status:              payloads.JobStatus(r.Status),
		LastExecutionAt:     parseTime(r.LastExecution.String),
	}

	if t := parseTime(r.CreatedAt); t != nil {
		job.CreatedAt = *t
	}

	if r.ExecuteOnce {
		job.Kind = payloads.ScheduleOnce
		job.ExecuteAt = parseTime(r.ExecuteTime.String)
	} else {
		job.Kind = payloads.ScheduleRecurring
	}

	var targets []string
	if decodeJSON(r.Targets.String, &targets) {
		job.Targets = targets
	}

	configs := map[string]payloads.Parameters{}
	if decodeJSON(r.JobConfigs.String, &configs) {
		job.TargetParameters = configs
	} else {
		job.TargetParameters = map[string]payloads.Parameters{}
	}

	params := payloads.Parameters{}
	if decodeJSON(r.Parameters.String, &params) {
		job.DefaultParameters = params
	}

	if len(job.Targets) == 0 && r.TargetJob.String != "" {
		job.Targets = []string{r.TargetJob.String}
		if _, ok := job.TargetParameters[r.TargetJob.String]; !ok && job.DefaultParameters != nil {
			job.TargetParameters[r.TargetJob.String] = job.DefaultParameters
		}
	}

	if len(job.Targets) == 0 && len(job.TargetParameters) > 0 {
		for target := range job.TargetParameters {
			job.Targets = append(job.Targets, target)
		}
		sort.Strings(job.Targets)
	}

	return job
}

// JobRowFrom encodes a canonical job back into row form. Only the
// canonical columns are written; the legacy ones stay empty for new
// rows.
func JobRowFrom(job *payloads.ScheduledJob) *JobRow {
	row := &JobRow{
		ID:     job.ID,
		Name:   job.Name,
		Status: string(job.Status),
	}

	if job.BuildServerConfigID != 0 {
		row.BuildServerConfigID = sql.NullInt64{Int64: job.BuildServerConfigID, Valid: true}
	}

	targets, _ := json.Marshal(job.Targets)
	row.Targets = sql.NullString{String: string(targets), Valid: true}

	configs := job.TargetParameters
	if configs == nil {
		configs = map[string]payloads.Parameters{}
	}
	encoded, _ := json.Marshal(configs)
	row.JobConfigs = sql.NullString{String: string(encoded), Valid: true}

	if job.DefaultParameters != nil {
		params, _ := json.Marshal(job.DefaultParameters)
		row.Parameters = sql.NullString{String: string(params), Valid: true}
	}

	if job.Kind == payloads.ScheduleOnce {
		row.ExecuteOnce = true
		if job.ExecuteAt != nil {
			row.ExecuteTime = sql.NullString{String: formatTime(*job.ExecuteAt), Valid: true}
		}
	} else {
		row.CronExpression = sql.NullString{String: job.CronExpression, Valid: job.CronExpression != ""}
	}

	if job.LastExecutionAt != nil {
		row.LastExecution = sql.NullString{String: formatTime(*job.LastExecutionAt), Valid: true}
	}

	if job.CreatedAt.IsZero() {
		row.CreatedAt = formatTime(time.Now())
	} else {
		row.CreatedAt = formatTime(job.CreatedAt)
	}

	return row
}

func (r *HistoryRow) Entry() *payloads.ExecutionHistoryEntry {
	entry := &payloads.ExecutionHistoryEntry{
		ID:        r.ID,
		JobID:     r.JobID,
		Status:    payloads.ExecutionStatus(r.Status),
		EndTime:   parseTime(r.EndTime.String),
		LogOutput: r.LogOutput.String,
	}
	if t := parseTime(r.StartTime); t != nil {
		entry.StartTime = *t
	}
	return entry
}

func (r *BuildServerRow) Server() *payloads.BuildServer {
	server := &payloads.BuildServer{
		ID:       r.ID,
		Name:     r.Name,
		URL:      r.URL,
		Username: r.Username.String,
		Token:    r.Token.String,
	}
	if t := parseTime(r.CreatedAt); t != nil {
		server.CreatedAt = *t
	}
	return server
}

func (r *UserRow) User() *payloads.User {
	user := &payloads.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email.String,
		Role:         r.Role,
		PasswordHash: r.PasswordHash,
	}
	if t := parseTime(r.CreatedAt); t != nil {
		user.CreatedAt = *t
	}
	return user
}

// FormatTime is the canonical timestamp encoding for stored rows.
func FormatTime(t time.Time) string { return formatTime(t) }
