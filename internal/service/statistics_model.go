package service

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/entry"
)

// StatisticPoint is the balance/incomes/expenses tuple for one period or
// for the all-time total. Transfers is present only for wallet-scoped
// statistics; a user-level aggregate has no transfer notion because both
// legs belong to the same user.
type StatisticPoint struct {
	Balance   decimal.Decimal
	Incomes   decimal.Decimal
	Expenses  decimal.Decimal
	Transfers *decimal.Decimal
}

// Statistics is a cumulative total plus month-by-month points keyed by
// zero-padded "YYYY-MM".
type Statistics struct {
	Total   StatisticPoint
	Monthly map[string]StatisticPoint
}

func newUserPoint() StatisticPoint {
	return StatisticPoint{}
}

func newWalletPoint() StatisticPoint {
	zero := decimal.Zero
	return StatisticPoint{Transfers: &zero}
}

// accumulate folds one aggregation result into the point. For wallet points
// the transfer delta contributes to both balance and the transfers
// sub-total.
func (p *StatisticPoint) accumulate(sums *entry.ValueSums) {
	p.Incomes = p.Incomes.Add(sums.Incomes)
	p.Expenses = p.Expenses.Add(sums.Expenses)
	p.Balance = p.Balance.Add(sums.Incomes.Sub(sums.Expenses))

	if p.Transfers != nil {
		transferDelta := sums.TransferIncomes.Sub(sums.TransferExpenses)
		p.Balance = p.Balance.Add(transferDelta)
		total := p.Transfers.Add(transferDelta)
		p.Transfers = &total
	}
}
