package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"playlistke/internal/models"
)

const chartColumns = `id, name, week, year, COALESCE(region, ''), created_at`

const chartEntryColumns = `id, chart_id, song_id, rank, previous_rank, COALESCE(trend, ''), created_at`

func scanChart(row interface{ Scan(...any) error }) (models.Chart, error) {
	var chart models.Chart
	err := row.Scan(&chart.ID, &chart.Name, &chart.Week, &chart.Year, &chart.Region, &chart.CreatedAt)
	return chart, err
}

func scanChartEntry(row interface{ Scan(...any) error }) (models.ChartEntry, error) {
	var entry models.ChartEntry
	var previousRank sql.NullInt64
	err := row.Scan(
		&entry.ID, &entry.ChartID, &entry.SongID, &entry.Rank,
		&previousRank, &entry.Trend, &entry.CreatedAt,
	)
	if err != nil {
		return models.ChartEntry{}, err
	}
	if previousRank.Valid {
		rank := int(previousRank.Int64)
		entry.PreviousRank = &rank
	}
	return entry, nil
}

// ListCharts returns charts, offset/limit paginated.
func (s *Store) ListCharts(ctx context.Context, skip, limit int) ([]models.Chart, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+chartColumns+`
		FROM charts
		ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list charts: %w", err)
	}
	defer rows.Close()

	var charts []models.Chart
	for rows.Next() {
		chart, err := scanChart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chart: %w", err)
		}
		charts = append(charts, chart)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate charts: %w", err)
	}
	return charts, nil
}

// FindChartByWeek returns the chart for a (week, year) pair, optionally
// narrowed to a region. A missing chart is signalled with ErrChartNotFound
// so the caller can produce the empty weekly shape.
func (s *Store) FindChartByWeek(ctx context.Context, week, year int, region string) (models.Chart, error) {
	query := `
		SELECT ` + chartColumns + `
		FROM charts
		WHERE week = $1 AND year = $2`
	args := []any{week, year}
	if region != "" {
		query += ` AND region = $3`
		args = append(args, region)
	}
	query += ` ORDER BY id LIMIT 1`

	chart, err := scanChart(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chart{}, ErrChartNotFound
	}
	if err != nil {
		return models.Chart{}, fmt.Errorf("find chart: %w", err)
	}
	return chart, nil
}

// GetChart returns a single chart by id.
func (s *Store) GetChart(ctx context.Context, id int64) (models.Chart, error) {
	chart, err := scanChart(s.db.QueryRowContext(ctx, `
		SELECT `+chartColumns+`
		FROM charts
		WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chart{}, ErrChartNotFound
	}
	if err != nil {
		return models.Chart{}, fmt.Errorf("get chart: %w", err)
	}
	return chart, nil
}

// ListChartEntries returns a chart's entries sorted by ascending rank. Rank
// ties fall back to insertion order, stable for a given query.
func (s *Store) ListChartEntries(ctx context.Context, chartID int64) ([]models.ChartEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+chartEntryColumns+`
		FROM chart_entries
		WHERE chart_id = $1
		ORDER BY rank ASC, id ASC`, chartID)
	if err != nil {
		return nil, fmt.Errorf("list chart entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ChartEntry
	for rows.Next() {
		entry, err := scanChartEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chart entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chart entries: %w", err)
	}
	return entries, nil
}

// SongChartHistory returns a song's past chart entries, most recent first.
func (s *Store) SongChartHistory(ctx context.Context, songID int64, limit int) ([]models.ChartEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+chartEntryColumns+`
		FROM chart_entries
		WHERE song_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, songID, limit)
	if err != nil {
		return nil, fmt.Errorf("song chart history: %w", err)
	}
	defer rows.Close()

	var entries []models.ChartEntry
	for rows.Next() {
		entry, err := scanChartEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chart entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chart entries: %w", err)
	}
	return entries, nil
}

// CreateChart inserts a chart and returns the stored row.
func (s *Store) CreateChart(ctx context.Context, chart models.Chart) (models.Chart, error) {
	created, err := scanChart(s.db.QueryRowContext(ctx, `
		INSERT INTO charts (name, week, year, region)
		VALUES ($1, $2, $3, $4)
		RETURNING `+chartColumns,
		strings.TrimSpace(chart.Name), chart.Week, chart.Year, chart.Region,
	))
	if err != nil {
		return models.Chart{}, fmt.Errorf("insert chart: %w", err)
	}
	return created, nil
}

// AddChartEntry records a song's rank in a chart. Both the chart and the
// song must exist.
func (s *Store) AddChartEntry(ctx context.Context, entry models.ChartEntry) (models.ChartEntry, error) {
	if _, err := s.GetChart(ctx, entry.ChartID); err != nil {
		return models.ChartEntry{}, err
	}
	if _, err := s.GetSong(ctx, entry.SongID); err != nil {
		return models.ChartEntry{}, err
	}

	var previousRank any
	if entry.PreviousRank != nil {
		previousRank = *entry.PreviousRank
	}

	created, err := scanChartEntry(s.db.QueryRowContext(ctx, `
		INSERT INTO chart_entries (chart_id, song_id, rank, previous_rank, trend)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+chartEntryColumns,
		entry.ChartID, entry.SongID, entry.Rank, previousRank, entry.Trend,
	))
	if err != nil {
		return models.ChartEntry{}, fmt.Errorf("insert chart entry: %w", err)
	}
	return created, nil
}
