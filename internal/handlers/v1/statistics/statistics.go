// Package statistics exposes the balance and monthly statistics endpoints.
package statistics

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

const monthFormat = "2006-01"

// StatisticPoint is the wire form of one statistic tuple. Transfers is
// present only in wallet-scoped responses.
type StatisticPoint struct {
	Balance   string  `json:"balance" doc:"incomes - expenses (+ transfers where present)"`
	Incomes   string  `json:"incomes" doc:"Sum of income values"`
	Expenses  string  `json:"expenses" doc:"Sum of expense values"`
	Transfers *string `json:"transfers,omitempty" doc:"Net transfer amount, wallet scope only"`
}

// StatisticsResponseBody is the response body for the monthly statistics
// endpoints.
type StatisticsResponseBody struct {
	Total   StatisticPoint            `json:"total" doc:"Cumulative totals over all returned months"`
	Monthly map[string]StatisticPoint `json:"monthly" doc:"Per-month points keyed by YYYY-MM"`
}

// WalletStatisticsInput is the Huma input for the wallet monthly statistics
// endpoint.
type WalletStatisticsInput struct {
	ID         int64  `path:"id" doc:"Wallet id"`
	StartMonth string `query:"startMonth" required:"true" doc:"First month to include, YYYY-MM"`
}

// UserStatisticsInput is the Huma input for the user monthly statistics
// endpoint. The user id comes from the resolved caller identity, never from
// the request path.
type UserStatisticsInput struct {
	UserID     int64  `header:"X-User-ID" doc:"Resolved caller identity"`
	StartMonth string `query:"startMonth" required:"true" doc:"First month to include, YYYY-MM"`
}

// StatisticsOutput is the Huma output for the monthly statistics endpoints.
type StatisticsOutput struct {
	Body StatisticsResponseBody
}

// WalletBalanceInput is the Huma input for the wallet all-time balance
// endpoint.
type WalletBalanceInput struct {
	ID int64 `path:"id" doc:"Wallet id"`
}

// UserBalanceInput is the Huma input for the user all-time balance endpoint.
type UserBalanceInput struct {
	UserID int64 `header:"X-User-ID" doc:"Resolved caller identity"`
}

// BalanceOutput is the Huma output for the all-time balance endpoints.
type BalanceOutput struct {
	Body StatisticPoint
}

// statisticsProvider is the interface for the statistics service.
type statisticsProvider interface {
	StatisticsForUser(ctx context.Context, userID int64, startMonth time.Time) (*service.Statistics, error)
	StatisticsForWallet(ctx context.Context, walletID int64, startMonth time.Time) (*service.Statistics, error)
	UserBalance(ctx context.Context, userID int64) (*service.StatisticPoint, error)
	WalletBalance(ctx context.Context, walletID int64) (*service.StatisticPoint, error)
}

// Handler registers the statistics endpoints.
type Handler struct {
	StatisticsService statisticsProvider
}

// NewHandler creates a new statistics Handler.
func NewHandler(svc statisticsProvider) *Handler {
	return &Handler{StatisticsService: svc}
}

// Register registers the statistics endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "wallet-statistics",
		Method:      http.MethodGet,
		Path:        "/v1/wallet/{id}/statistics",
		Summary:     "Wallet monthly statistics",
		Description: "Returns per-month and cumulative statistics for a wallet.",
		Tags:        []string{"Statistics"},
	}, h.handleWalletStatistics)

	huma.Register(api, huma.Operation{
		OperationID: "user-statistics",
		Method:      http.MethodGet,
		Path:        "/v1/user/statistics",
		Summary:     "User monthly statistics",
		Description: "Returns per-month and cumulative statistics for the calling user, transfers excluded.",
		Tags:        []string{"Statistics"},
	}, h.handleUserStatistics)

	huma.Register(api, huma.Operation{
		OperationID: "wallet-balance",
		Method:      http.MethodGet,
		Path:        "/v1/wallet/{id}/balance",
		Summary:     "Wallet all-time balance",
		Description: "Returns the all-time statistic point for a wallet.",
		Tags:        []string{"Statistics"},
	}, h.handleWalletBalance)

	huma.Register(api, huma.Operation{
		OperationID: "user-balance",
		Method:      http.MethodGet,
		Path:        "/v1/user/balance",
		Summary:     "User all-time balance",
		Description: "Returns the all-time statistic point for the calling user, transfers excluded.",
		Tags:        []string{"Statistics"},
	}, h.handleUserBalance)
}

func parseStartMonth(raw string) (time.Time, error) {
	startMonth, err := time.Parse(monthFormat, raw)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid startMonth", err)
	}
	return startMonth, nil
}

func pointToWire(p *service.StatisticPoint) StatisticPoint {
	wire := StatisticPoint{
		Balance:  p.Balance.String(),
		Incomes:  p.Incomes.String(),
		Expenses: p.Expenses.String(),
	}
	if p.Transfers != nil {
		transfers := p.Transfers.String()
		wire.Transfers = &transfers
	}
	return wire
}

func statisticsToWire(s *service.Statistics) StatisticsResponseBody {
	body := StatisticsResponseBody{
		Total:   pointToWire(&s.Total),
		Monthly: make(map[string]StatisticPoint, len(s.Monthly)),
	}
	for monthKey, point := range s.Monthly {
		body.Monthly[monthKey] = pointToWire(&point)
	}
	return body
}

func (h *Handler) handleWalletStatistics(ctx context.Context, input *WalletStatisticsInput) (*StatisticsOutput, error) {
	startMonth, err := parseStartMonth(input.StartMonth)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData := logging.GetLogData(ctx); logData != nil {
		stopTimer = logData.AddTiming("walletStatisticsMs")
	}
	stats, err := h.StatisticsService.StatisticsForWallet(ctx, input.ID, startMonth)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperror.FromService(err, "failed to compute wallet statistics")
	}

	return &StatisticsOutput{Body: statisticsToWire(stats)}, nil
}

func (h *Handler) handleUserStatistics(ctx context.Context, input *UserStatisticsInput) (*StatisticsOutput, error) {
	startMonth, err := parseStartMonth(input.StartMonth)
	if err != nil {
		return nil, err
	}

	stats, err := h.StatisticsService.StatisticsForUser(ctx, input.UserID, startMonth)
	if err != nil {
		return nil, httperror.FromService(err, "failed to compute user statistics")
	}

	return &StatisticsOutput{Body: statisticsToWire(stats)}, nil
}

func (h *Handler) handleWalletBalance(ctx context.Context, input *WalletBalanceInput) (*BalanceOutput, error) {
	point, err := h.StatisticsService.WalletBalance(ctx, input.ID)
	if err != nil {
		return nil, httperror.FromService(err, "failed to compute wallet balance")
	}

	return &BalanceOutput{Body: pointToWire(point)}, nil
}

func (h *Handler) handleUserBalance(ctx context.Context, input *UserBalanceInput) (*BalanceOutput, error) {
	point, err := h.StatisticsService.UserBalance(ctx, input.UserID)
	if err != nil {
		return nil, httperror.FromService(err, "failed to compute user balance")
	}

	return &BalanceOutput{Body: pointToWire(point)}, nil
}
