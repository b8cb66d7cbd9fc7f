package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // PostgreSQL driver and array support
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"ats-pipeline/internal/pipeline"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DB struct {
	connection *sql.DB
	driver     string
}

// NewDB opens the database for driver, tunes the pool and applies the
// embedded migrations.
func NewDB(driver, dataSourceName string) (*DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// A single connection keeps :memory: databases shared and serializes writes.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := applyMigrations(context.Background(), db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &DB{connection: db, driver: driver}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

// GetConnection returns the underlying database connection for advanced queries
func (db *DB) GetConnection() *sql.DB {
	return db.connection
}

// Driver reports which SQL dialect is in use.
func (db *DB) Driver() string {
	return db.driver
}

// SaveJob inserts or renames a job. An empty id is assigned a new uuid.
func (db *DB) SaveJob(ctx context.Context, job *Job) error {
	if job.TenantID == "" || strings.TrimSpace(job.Title) == "" {
		return fmt.Errorf("job tenant and title are required")
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO jobs (id, tenant_id, title, job_type, created_at)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (id) DO UPDATE
                SET title = EXCLUDED.title,
                    job_type = EXCLUDED.job_type`
	_, err := db.connection.ExecContext(ctx, query, job.ID, job.TenantID, job.Title, job.JobType, job.CreatedAt)
	return err
}

// GetJob returns ErrNotFound when the job does not belong to tenantID.
func (db *DB) GetJob(ctx context.Context, tenantID, jobID string) (*Job, error) {
	job := &Job{}
	query := `SELECT id, tenant_id, title, job_type, created_at FROM jobs WHERE tenant_id = $1 AND id = $2`
	err := db.connection.QueryRowContext(ctx, query, tenantID, jobID).
		Scan(&job.ID, &job.TenantID, &job.Title, &job.JobType, &job.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &FetchError{Op: "job", Err: err}
	}
	return job, nil
}

// ListJobs returns every job, across tenants when tenantID is empty.
func (db *DB) ListJobs(ctx context.Context, tenantID string) ([]Job, error) {
	query := `SELECT id, tenant_id, title, job_type, created_at FROM jobs`
	var args []interface{}
	if tenantID != "" {
		query += ` WHERE tenant_id = $1`
		args = append(args, tenantID)
	}
	query += ` ORDER BY created_at, id`

	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &FetchError{Op: "jobs", Err: err}
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.TenantID, &j.Title, &j.JobType, &j.CreatedAt); err != nil {
			return nil, &FetchError{Op: "jobs", Err: err}
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, &FetchError{Op: "jobs", Err: err}
	}
	return jobs, nil
}

// SaveCandidate inserts or updates a candidate. An empty id is assigned a
// new uuid; on update the stage is left alone so moves go through
// MoveCandidateStage.
func (db *DB) SaveCandidate(ctx context.Context, rec *CandidateRecord) error {
	if rec.TenantID == "" || rec.JobID == "" {
		return fmt.Errorf("candidate tenant and job are required")
	}
	if strings.TrimSpace(rec.Email) == "" {
		return fmt.Errorf("candidate email is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Status == "" {
		rec.Status = pipeline.StatusActive
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.StageEnteredAt.IsZero() {
		rec.StageEnteredAt = now
	}
	rec.Rating = pipeline.ClampRating(rec.Rating)

	var salary sql.NullFloat64
	if rec.SalaryExpectation != nil {
		salary = sql.NullFloat64{Float64: *rec.SalaryExpectation, Valid: true}
	}
	skills := pq.StringArray(rec.Skills)
	if skills == nil {
		skills = pq.StringArray{}
	}

	query := `INSERT INTO candidates (id, tenant_id, job_id, name, email, phone, location, position, stage_id,
                  rating, applied_date, last_activity, source, experience, salary_expectation, skills, status,
                  resume_file_path, stage_entered_at, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
              ON CONFLICT (id) DO UPDATE
                SET name = EXCLUDED.name,
                    email = EXCLUDED.email,
                    phone = EXCLUDED.phone,
                    location = EXCLUDED.location,
                    position = EXCLUDED.position,
                    rating = EXCLUDED.rating,
                    last_activity = EXCLUDED.last_activity,
                    source = EXCLUDED.source,
                    experience = EXCLUDED.experience,
                    salary_expectation = EXCLUDED.salary_expectation,
                    skills = EXCLUDED.skills,
                    status = EXCLUDED.status`

	_, err := db.connection.ExecContext(ctx, query,
		rec.ID, rec.TenantID, rec.JobID, rec.Name, rec.Email, rec.Phone, rec.Location, rec.Position, rec.StageID,
		rec.Rating, formatISO(rec.AppliedDate), formatISO(rec.LastActivity), rec.Source, rec.Experience, salary, skills,
		string(rec.Status), rec.ResumeFilePath, rec.StageEnteredAt, rec.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("candidate %s on job %s: %w", rec.Email, rec.JobID, ErrDuplicate)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

const candidateColumns = `id, tenant_id, job_id, name, email, phone, location, position, stage_id, rating,
    applied_date, last_activity, source, experience, salary_expectation, skills, status, resume_file_path,
    stage_entered_at, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (*CandidateRecord, error) {
	rec := &CandidateRecord{}
	var (
		applied, lastActivity, status string
		salary                        sql.NullFloat64
		skills                        pq.StringArray
	)
	err := row.Scan(&rec.ID, &rec.TenantID, &rec.JobID, &rec.Name, &rec.Email, &rec.Phone, &rec.Location,
		&rec.Position, &rec.StageID, &rec.Rating, &applied, &lastActivity, &rec.Source, &rec.Experience,
		&salary, &skills, &status, &rec.ResumeFilePath, &rec.StageEnteredAt, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.AppliedDate = parseISO(applied)
	rec.LastActivity = parseISO(lastActivity)
	rec.Status = pipeline.Status(status)
	rec.Skills = []string(skills)
	if salary.Valid {
		v := salary.Float64
		rec.SalaryExpectation = &v
	}
	return rec, nil
}

// GetCandidate returns ErrNotFound when the candidate does not belong to tenantID.
func (db *DB) GetCandidate(ctx context.Context, tenantID, candidateID string) (*CandidateRecord, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE tenant_id = $1 AND id = $2`
	rec, err := scanCandidate(db.connection.QueryRowContext(ctx, query, tenantID, candidateID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &FetchError{Op: "candidate", Err: err}
	}
	return rec, nil
}

// ListCandidatesByJob returns a job's candidates in the order they entered
// their current stage. Failures are reported as *FetchError.
func (db *DB) ListCandidatesByJob(ctx context.Context, tenantID, jobID string) ([]CandidateRecord, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates
              WHERE tenant_id = $1 AND job_id = $2
              ORDER BY stage_entered_at, created_at, id`

	rows, err := db.connection.QueryContext(ctx, query, tenantID, jobID)
	if err != nil {
		return nil, &FetchError{Op: "candidates", Err: err}
	}
	defer rows.Close()

	res := []CandidateRecord{}
	for rows.Next() {
		rec, err := scanCandidate(rows)
		if err != nil {
			return nil, &FetchError{Op: "candidates", Err: err}
		}
		res = append(res, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &FetchError{Op: "candidates", Err: err}
	}
	return res, nil
}

// MoveCandidateStage sets the candidate's stage and appends the transition
// to the history in one transaction.
func (db *DB) MoveCandidateStage(ctx context.Context, t *StageTransition) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.MovedAt.IsZero() {
		t.MovedAt = time.Now()
	}
	t.MovedAt = t.MovedAt.UTC()

	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin stage move: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE candidates SET stage_id = $1, last_activity = $2, stage_entered_at = $3
         WHERE tenant_id = $4 AND id = $5`,
		t.ToStageID, formatISO(t.MovedAt), t.MovedAt, t.TenantID, t.CandidateID)
	if err != nil {
		return fmt.Errorf("update candidate stage: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO stage_transitions (id, tenant_id, job_id, candidate_id, from_stage_id, to_stage_id, moved_by, moved_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.TenantID, t.JobID, t.CandidateID, t.FromStageID, t.ToStageID, t.MovedBy, t.MovedAt)
	if err != nil {
		return fmt.Errorf("record stage transition: %w", err)
	}

	return tx.Commit()
}

// ListStageTransitions returns a candidate's stage history, oldest first.
func (db *DB) ListStageTransitions(ctx context.Context, tenantID, candidateID string) ([]StageTransition, error) {
	query := `SELECT id, tenant_id, job_id, candidate_id, from_stage_id, to_stage_id, moved_by, moved_at
              FROM stage_transitions WHERE tenant_id = $1 AND candidate_id = $2
              ORDER BY moved_at, id`
	rows, err := db.connection.QueryContext(ctx, query, tenantID, candidateID)
	if err != nil {
		return nil, &FetchError{Op: "transitions", Err: err}
	}
	defer rows.Close()

	res := []StageTransition{}
	for rows.Next() {
		var t StageTransition
		if err := rows.Scan(&t.ID, &t.TenantID, &t.JobID, &t.CandidateID, &t.FromStageID, &t.ToStageID, &t.MovedBy, &t.MovedAt); err != nil {
			return nil, &FetchError{Op: "transitions", Err: err}
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &FetchError{Op: "transitions", Err: err}
	}
	return res, nil
}

// UpdateCandidateResume stores the parsed resume location and the merged skill set.
func (db *DB) UpdateCandidateResume(ctx context.Context, tenantID, candidateID, resumePath string, skills []string) error {
	arr := pq.StringArray(skills)
	if arr == nil {
		arr = pq.StringArray{}
	}
	res, err := db.connection.ExecContext(ctx,
		`UPDATE candidates SET skills = $1, resume_file_path = $2 WHERE tenant_id = $3 AND id = $4`,
		arr, resumePath, tenantID, candidateID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchCandidates returns a tenant's candidates matching the criteria using
// case-insensitive LIKE and a simple skills match.
func (db *DB) SearchCandidates(ctx context.Context, tenantID string, criteria *Criteria) ([]CandidateRecord, error) {
	base := `SELECT ` + candidateColumns + ` FROM candidates`
	where := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}
	i := 2

	if criteria == nil {
		criteria = &Criteria{}
	}

	like := "ILIKE"
	skillsText := "array_to_string(skills, ',')"
	if db.driver == DriverSQLite {
		// LIKE is case-insensitive for ASCII in SQLite.
		like = "LIKE"
		skillsText = "skills"
	}

	if criteria.JobID != "" {
		where = append(where, fmt.Sprintf("job_id = $%d", i))
		args = append(args, criteria.JobID)
		i++
	}
	if criteria.Name != "" {
		where = append(where, fmt.Sprintf("name %s $%d", like, i))
		args = append(args, "%"+criteria.Name+"%")
		i++
	}
	if criteria.Location != "" {
		where = append(where, fmt.Sprintf("location %s $%d", like, i))
		args = append(args, "%"+criteria.Location+"%")
		i++
	}
	if len(criteria.Skills) > 0 {
		var skillConds []string
		for _, s := range criteria.Skills {
			skillConds = append(skillConds, fmt.Sprintf("%s %s $%d", skillsText, like, i))
			args = append(args, "%"+s+"%")
			i++
		}
		where = append(where, "("+strings.Join(skillConds, " OR ")+")")
	}

	base += " WHERE " + strings.Join(where, " AND ") + " ORDER BY name, id"

	rows, err := db.connection.QueryContext(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []CandidateRecord{}
	for rows.Next() {
		rec, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *rec)
	}
	return res, rows.Err()
}

// formatISO renders t as RFC 3339, or "" for the zero time.
func formatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseISO accepts RFC 3339 or a bare date; anything else is the zero time.
func parseISO(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

// ParseISO is the exported form of parseISO for request decoding.
func ParseISO(s string) time.Time {
	return parseISO(s)
}
