package shared

import (
	"fmt"
	"math"
	"strconv"
)

// Money is an amount of C-bills. Fractions are kept until the value is displayed.
type Money float64

// Zero is the empty amount
const Zero Money = 0

func (m Money) Plus(other Money) Money {
	return m + other
}

func (m Money) Times(factor float64) Money {
	return Money(float64(m) * factor)
}

func (m Money) DividedBy(divisor float64) Money {
	if divisor == 0 {
		return Zero
	}
	return Money(float64(m) / divisor)
}

// Rounded returns the whole C-bill amount, rounding half up
func (m Money) Rounded() int64 {
	return int64(math.Floor(float64(m) + 0.5))
}

// String renders the amount with thousands separators, e.g. "1,250,000 C-bills"
func (m Money) String() string {
	return fmt.Sprintf("%s C-bills", groupThousands(m.Rounded()))
}

func groupThousands(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return sign + string(out)
}
