package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// SessionRepository handles database operations for activity sessions
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// ReplaceForDate deletes the date's stored sessions and inserts the new set
// in one transaction. Re-running an analysis is idempotent at the storage
// level: deterministic session IDs land on identical rows.
func (r *SessionRepository) ReplaceForDate(date string, sessions []models.ActivitySession) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM activity_sessions WHERE date = ?", date); err != nil {
		return fmt.Errorf("failed to clear sessions for %s: %w", date, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO activity_sessions (
			id, activity_type, date, start_ts, end_ts, duration_hours,
			location_name, location_lat, location_lon,
			confidence, confidence_label, details_json, algo_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range sessions {
		detailsJSON, err := json.Marshal(s.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal session details: %w", err)
		}
		if _, err := stmt.Exec(
			s.ID, s.ActivityType, s.Date, s.StartTime.Unix(), s.EndTime.Unix(), s.DurationH,
			s.LocationName, s.LocationLat, s.LocationLon,
			s.Confidence, s.ConfidenceLabel, string(detailsJSON), s.AlgoVersion,
		); err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSessions retrieves sessions with filtering and pagination
func (r *SessionRepository) GetSessions(filter models.SessionFilter) ([]models.ActivitySession, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.StartDate != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.EndDate)
	}
	if filter.ActivityType != "" {
		conditions = append(conditions, "activity_type = ?")
		args = append(args, filter.ActivityType)
	}
	if filter.MinConfidence > 0 {
		conditions = append(conditions, "confidence >= ?")
		args = append(args, filter.MinConfidence)
	}
	if filter.Label != "" {
		conditions = append(conditions, "confidence_label = ?")
		args = append(args, filter.Label)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM activity_sessions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := `SELECT id, activity_type, date, start_ts, end_ts, duration_hours,
		location_name, location_lat, location_lon,
		confidence, confidence_label, details_json, algo_version, created_at
		FROM activity_sessions` + where + " ORDER BY start_ts LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// GetByDate returns the stored sessions for one date, ordered by start time.
func (r *SessionRepository) GetByDate(date string) ([]models.ActivitySession, error) {
	rows, err := r.db.Query(`SELECT id, activity_type, date, start_ts, end_ts, duration_hours,
		location_name, location_lat, location_lon,
		confidence, confidence_label, details_json, algo_version, created_at
		FROM activity_sessions WHERE date = ? ORDER BY start_ts`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]models.ActivitySession, error) {
	var sessions []models.ActivitySession
	for rows.Next() {
		var s models.ActivitySession
		var startTS, endTS int64
		var detailsJSON string
		var createdAt sql.NullTime

		if err := rows.Scan(
			&s.ID, &s.ActivityType, &s.Date, &startTS, &endTS, &s.DurationH,
			&s.LocationName, &s.LocationLat, &s.LocationLon,
			&s.Confidence, &s.ConfidenceLabel, &detailsJSON, &s.AlgoVersion, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		s.StartTime = time.Unix(startTS, 0).UTC()
		s.EndTime = time.Unix(endTS, 0).UTC()
		if detailsJSON != "" && detailsJSON != "null" {
			if err := json.Unmarshal([]byte(detailsJSON), &s.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal session details: %w", err)
			}
		}
		if createdAt.Valid {
			s.CreatedAt = createdAt.Time
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
