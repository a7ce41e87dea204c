package service

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/entry"
)

const monthKeyFormat = "2006-01"

// entrySummer is the slice of the entry store the statistics service needs.
type entrySummer interface {
	SumByUser(ctx context.Context, userID int64, window entry.DateWindow) (*entry.ValueSums, error)
	SumByWallet(ctx context.Context, walletID int64, window entry.DateWindow) (*entry.ValueSums, error)
}

// StatisticsService computes all-time balances and month-by-month
// statistics for users and wallets.
type StatisticsService struct {
	entries entrySummer
	now     func() time.Time
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(store *storage.Storage) *StatisticsService {
	return &StatisticsService{
		entries: store.Entries,
		now:     time.Now,
	}
}

// UserBalance returns the all-time user statistic point, excluding
// transfer legs.
func (s *StatisticsService) UserBalance(ctx context.Context, userID int64) (*StatisticPoint, error) {
	sums, err := s.entries.SumByUser(ctx, userID, entry.DateWindow{})
	if err != nil {
		return nil, err
	}

	point := newUserPoint()
	point.accumulate(sums)
	return &point, nil
}

// WalletBalance returns the all-time wallet statistic point, including the
// transfers sub-total.
func (s *StatisticsService) WalletBalance(ctx context.Context, walletID int64) (*StatisticPoint, error) {
	sums, err := s.entries.SumByWallet(ctx, walletID, entry.DateWindow{})
	if err != nil {
		return nil, err
	}

	point := newWalletPoint()
	point.accumulate(sums)
	return &point, nil
}

// StatisticsForUser walks calendar months from startMonth through the
// current month and aggregates each one for the user.
func (s *StatisticsService) StatisticsForUser(ctx context.Context, userID int64, startMonth time.Time) (*Statistics, error) {
	return s.monthlyStatistics(ctx, startMonth, newUserPoint,
		func(ctx context.Context, window entry.DateWindow) (*entry.ValueSums, error) {
			return s.entries.SumByUser(ctx, userID, window)
		})
}

// StatisticsForWallet walks calendar months from startMonth through the
// current month and aggregates each one for the wallet.
func (s *StatisticsService) StatisticsForWallet(ctx context.Context, walletID int64, startMonth time.Time) (*Statistics, error) {
	return s.monthlyStatistics(ctx, startMonth, newWalletPoint,
		func(ctx context.Context, window entry.DateWindow) (*entry.ValueSums, error) {
			return s.entries.SumByWallet(ctx, walletID, window)
		})
}

// monthlyStatistics is the shared month loop. The current partial month is
// included; a start month in the future yields an empty result. Month keys
// cannot collide because the walk is strictly monotonic.
func (s *StatisticsService) monthlyStatistics(
	ctx context.Context,
	startMonth time.Time,
	newPoint func() StatisticPoint,
	sum func(ctx context.Context, window entry.DateWindow) (*entry.ValueSums, error),
) (*Statistics, error) {
	statistics := &Statistics{
		Total:   newPoint(),
		Monthly: make(map[string]StatisticPoint),
	}

	now := s.now()
	for cursor := firstDayOfMonth(startMonth); !cursor.After(now); cursor = cursor.AddDate(0, 1, 0) {
		monthStart := cursor
		monthEnd := lastDayOfMonth(cursor)

		sums, err := sum(ctx, entry.DateWindow{Start: &monthStart, End: &monthEnd})
		if err != nil {
			return nil, err
		}

		point := newPoint()
		point.accumulate(sums)
		statistics.Monthly[cursor.Format(monthKeyFormat)] = point
		statistics.Total.accumulate(sums)
	}

	return statistics, nil
}

func firstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// lastDayOfMonth handles variable month lengths and leap years by stepping
// to the next month's first day minus one day.
func lastDayOfMonth(t time.Time) time.Time {
	return firstDayOfMonth(t).AddDate(0, 1, -1)
}
