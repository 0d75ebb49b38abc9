package policy

import (
	"math"

	"github.com/coverguard/coverguard/internal/model"
)

// premiumPerThousand is the coverage premium in whole dollars per
// thousand dollars of declared annual revenue.
const premiumPerThousand = 1000

// Premium estimates the annual premium for a company with the given
// revenue, declared in thousands of US dollars. The estimate is
// monotonically non-decreasing in revenue and non-negative for
// non-negative input; negative revenue is rejected by input validation
// before it reaches this function, and revenue large enough to
// overflow the multiplication saturates instead of wrapping negative.
func Premium(revenueThousands int64) model.Money {
	if revenueThousands < 0 {
		return 0
	}
	if revenueThousands > math.MaxInt64/premiumPerThousand {
		return model.Money(math.MaxInt64)
	}
	return model.Money(revenueThousands * premiumPerThousand)
}
