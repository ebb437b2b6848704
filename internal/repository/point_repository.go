package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lifelog-tools/activity-backend-go/internal/models"
)

// PointRepository handles database operations for location points
type PointRepository struct {
	db *sql.DB
}

// NewPointRepository creates a new point repository
func NewPointRepository(db *sql.DB) *PointRepository {
	return &PointRepository{db: db}
}

// InsertBatch inserts a batch of points in one transaction and returns the
// number inserted.
func (r *PointRepository) InsertBatch(points []models.LocationPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO location_points (ts, lat, lon, altitude, accuracy, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(p.Time.Unix(), p.Latitude, p.Longitude, p.Altitude, p.Accuracy, p.Source); err != nil {
			return 0, fmt.Errorf("failed to insert point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(points), nil
}

// GetByDate returns all points whose timestamp falls on the given UTC
// calendar date, ordered by time ascending.
func (r *PointRepository) GetByDate(date string) ([]models.LocationPoint, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start := day.Unix()
	end := day.AddDate(0, 0, 1).Unix()

	rows, err := r.db.Query(`
		SELECT id, ts, lat, lon, altitude, accuracy, source
		FROM location_points
		WHERE ts >= ? AND ts < ?
		ORDER BY ts
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	return scanPoints(rows)
}

// GetPoints retrieves points with filtering and pagination
func (r *PointRepository) GetPoints(filter models.PointFilter) ([]models.LocationPoint, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Date != "" {
		day, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid date %q: %w", filter.Date, err)
		}
		conditions = append(conditions, "ts >= ?", "ts < ?")
		args = append(args, day.Unix(), day.AddDate(0, 0, 1).Unix())
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "ts >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "ts <= ?")
		args = append(args, filter.EndTime)
	}
	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filter.Source)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM location_points"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count points: %w", err)
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

	query := "SELECT id, ts, lat, lon, altitude, accuracy, source FROM location_points" +
		where + " ORDER BY ts LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	points, err := scanPoints(rows)
	if err != nil {
		return nil, 0, err
	}
	return points, total, nil
}

// CountByDate returns how many points are stored for the given date.
func (r *PointRepository) CountByDate(date string) (int64, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}

	var count int64
	err = r.db.QueryRow(
		"SELECT COUNT(*) FROM location_points WHERE ts >= ? AND ts < ?",
		day.Unix(), day.AddDate(0, 0, 1).Unix(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return count, nil
}

func scanPoints(rows *sql.Rows) ([]models.LocationPoint, error) {
	var points []models.LocationPoint
	for rows.Next() {
		var p models.LocationPoint
		var ts int64
		var altitude, accuracy sql.NullFloat64

		if err := rows.Scan(&p.ID, &ts, &p.Latitude, &p.Longitude, &altitude, &accuracy, &p.Source); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}

		p.Time = time.Unix(ts, 0).UTC()
		if altitude.Valid {
			v := altitude.Float64
			p.Altitude = &v
		}
		if accuracy.Valid {
			v := accuracy.Float64
			p.Accuracy = &v
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
