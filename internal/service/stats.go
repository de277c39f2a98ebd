package service

import (
	"time"

	"github.com/palmbay/resort/api/internal/model"
	"github.com/shopspring/decimal"
)

// Derived aggregation helpers. Sums stay exact decimals; rounding to two
// places happens only when a figure is formatted for a DTO, so intermediate
// results never accumulate rounding error.

// money formats an exact decimal for presentation. StringFixed rounds
// half away from zero.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// safeAverage divides total by n, returning zero when n is zero.
func safeAverage(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}

// checkWindow validates an inclusive [start, end] date-key window without
// expanding it.
func checkWindow(start, end string) error {
	_, err := dateKeys(start, end)
	return err
}

// dateKeys expands an inclusive [start, end] date-key range into one key
// per day. Used to emit a data point for every date even when no record
// exists for it.
func dateKeys(start, end string) ([]string, error) {
	from, err := time.Parse(model.DateKeyLayout, start)
	if err != nil {
		return nil, model.NewInvalidInputError("INVALID_START_DATE", "start date must be in YYYY-MM-DD form")
	}
	to, err := time.Parse(model.DateKeyLayout, end)
	if err != nil {
		return nil, model.NewInvalidInputError("INVALID_END_DATE", "end date must be in YYYY-MM-DD form")
	}
	if to.Before(from) {
		return nil, model.NewInvalidInputError("INVALID_DATE_RANGE", "end date must not be before start date")
	}

	var keys []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(model.DateKeyLayout))
	}
	return keys, nil
}
