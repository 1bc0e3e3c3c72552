package distribution

import (
	"fmt"

	"github.com/shopspring/decimal"

	dist "rbf-backend/internal/domain/distribution"
)

// shareSumEpsilon absorbs representation noise in stored percentages; a sum
// above 100 + epsilon is rejected outright.
var (
	hundred         = decimal.NewFromInt(100)
	shareSumEpsilon = decimal.NewFromFloat(0.01)
)

type Stake struct {
	InvestorID string
	Percentage decimal.Decimal
}

type Share struct {
	InvestorID  string
	AmountCents int64
}

// SplitPayment computes each investor's payout from a settled total, in
// minor units: floor(total * percentage / 100) per stake, input order
// preserved. The amounts are not forced to sum to the total; the flooring
// remainder stays undistributed with the platform. Pure, no I/O.
func SplitPayment(totalCents int64, stakes []Stake) ([]Share, error) {
	if totalCents < 0 {
		return nil, fmt.Errorf("%w: negative total %d", dist.ErrInvalidInput, totalCents)
	}

	sum := decimal.Zero
	for _, s := range stakes {
		if s.Percentage.IsNegative() {
			return nil, fmt.Errorf("%w: negative share %s for investor %s",
				dist.ErrInvalidInput, s.Percentage, s.InvestorID)
		}
		sum = sum.Add(s.Percentage)
	}
	if sum.GreaterThan(hundred.Add(shareSumEpsilon)) {
		return nil, fmt.Errorf("%w: shares sum to %s", dist.ErrInvalidInput, sum)
	}

	total := decimal.NewFromInt(totalCents)
	out := make([]Share, len(stakes))
	for i, s := range stakes {
		amount := total.Mul(s.Percentage).Div(hundred).Floor()
		out[i] = Share{InvestorID: s.InvestorID, AmountCents: amount.IntPart()}
	}
	return out, nil
}

// SplitPortions divides one payout into cost-basis recovery vs. profit at a
// fixed ratio given in basis points. Principal floors; the remainder is the
// return portion.
func SplitPortions(amountCents, principalBps int64) (principal, ret int64) {
	principal = amountCents * principalBps / 10000
	return principal, amountCents - principal
}
