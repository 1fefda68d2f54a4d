package charts

import (
	"context"
	"errors"
	"time"

	"playlistke/internal/models"
	"playlistke/internal/store"
)

// Store captures the persistence needs for chart workflows.
type Store interface {
	ListCharts(ctx context.Context, skip, limit int) ([]models.Chart, error)
	FindChartByWeek(ctx context.Context, week, year int, region string) (models.Chart, error)
	GetChart(ctx context.Context, id int64) (models.Chart, error)
	ListChartEntries(ctx context.Context, chartID int64) ([]models.ChartEntry, error)
	SongChartHistory(ctx context.Context, songID int64, limit int) ([]models.ChartEntry, error)
	CreateChart(ctx context.Context, chart models.Chart) (models.Chart, error)
	AddChartEntry(ctx context.Context, entry models.ChartEntry) (models.ChartEntry, error)
}

// Service coordinates chart resolution and recording.
type Service interface {
	List(ctx context.Context, skip, limit int) ([]models.Chart, error)
	Weekly(ctx context.Context, week, year int, region string) (models.WeeklyChart, error)
	Get(ctx context.Context, id int64) (models.ChartDetail, error)
	SongHistory(ctx context.Context, songID int64, limit int) ([]models.ChartEntry, error)
	Create(ctx context.Context, chart models.Chart) (models.Chart, error)
	AddEntry(ctx context.Context, entry models.ChartEntry) (models.ChartEntry, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store, now: time.Now}
}

func (s *service) List(ctx context.Context, skip, limit int) ([]models.Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListCharts(ctx, skip, limit)
}

// Weekly resolves the chart for a (week, year, region). Zero week/year
// default to the current ISO calendar week and year. A missing chart yields
// the same shape with zero entries; absence is not exceptional.
func (s *service) Weekly(ctx context.Context, week, year int, region string) (models.WeeklyChart, error) {
	if err := ctx.Err(); err != nil {
		return models.WeeklyChart{}, err
	}

	if week == 0 || year == 0 {
		isoYear, isoWeek := s.now().ISOWeek()
		if week == 0 {
			week = isoWeek
		}
		if year == 0 {
			year = isoYear
		}
	}

	chart, err := s.store.FindChartByWeek(ctx, week, year, region)
	if err != nil {
		if errors.Is(err, store.ErrChartNotFound) {
			return models.WeeklyChart{Week: week, Year: year, Region: region, Entries: []models.ChartEntry{}}, nil
		}
		return models.WeeklyChart{}, err
	}

	entries, err := s.store.ListChartEntries(ctx, chart.ID)
	if err != nil {
		return models.WeeklyChart{}, err
	}
	if entries == nil {
		entries = []models.ChartEntry{}
	}
	return models.WeeklyChart{Week: chart.Week, Year: chart.Year, Region: chart.Region, Entries: entries}, nil
}

func (s *service) Get(ctx context.Context, id int64) (models.ChartDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.ChartDetail{}, err
	}
	chart, err := s.store.GetChart(ctx, id)
	if err != nil {
		return models.ChartDetail{}, err
	}
	entries, err := s.store.ListChartEntries(ctx, id)
	if err != nil {
		return models.ChartDetail{}, err
	}
	if entries == nil {
		entries = []models.ChartEntry{}
	}
	return models.ChartDetail{Chart: chart, Entries: entries}, nil
}

func (s *service) SongHistory(ctx context.Context, songID int64, limit int) ([]models.ChartEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SongChartHistory(ctx, songID, limit)
}

func (s *service) Create(ctx context.Context, chart models.Chart) (models.Chart, error) {
	if err := ctx.Err(); err != nil {
		return models.Chart{}, err
	}
	return s.store.CreateChart(ctx, chart)
}

func (s *service) AddEntry(ctx context.Context, entry models.ChartEntry) (models.ChartEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.ChartEntry{}, err
	}
	return s.store.AddChartEntry(ctx, entry)
}
