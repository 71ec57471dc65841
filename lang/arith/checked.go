package arith

import (
	"math"

	"github.com/lumesh-lang/lumesh/lang/errs"
)

func checkedAdd(a, b int64) (int64, error) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, errs.New(errs.Overflow, "integer addition overflow: %d + %d", a, b)
	}
	return r, nil
}

func checkedSub(a, b int64) (int64, error) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, errs.New(errs.Overflow, "integer subtraction overflow: %d - %d", a, b)
	}
	return r, nil
}

func checkedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/b != a {
		return 0, errs.New(errs.Overflow, "integer multiplication overflow: %d * %d", a, b)
	}
	return r, nil
}

func checkedDiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errs.New(errs.DivByZero, "division by zero")
	}
	if a == math.MinInt64 && b == -1 {
		return 0, errs.New(errs.Overflow, "integer division overflow: %d / %d", a, b)
	}
	return a / b, nil
}

func checkedRem(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errs.New(errs.DivByZero, "division by zero")
	}
	if a == math.MinInt64 && b == -1 {
		return 0, nil
	}
	return a % b, nil
}

func checkedPow(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, errs.New(errs.Overflow, "negative exponent %d for integer power", exp)
	}
	origExp := exp
	result := int64(1)
	for ; exp > 0; exp-- {
		var err error
		result, err = checkedMul(result, base)
		if err != nil {
			return 0, errs.New(errs.Overflow, "integer power overflow: %d ** %d", base, origExp)
		}
	}
	return result, nil
}

func checkedShl(a, n int64) (int64, error) {
	if n < 0 || n >= 64 {
		return 0, errs.New(errs.Overflow, "shift amount %d out of range", n)
	}
	r := a << uint(n)
	if r>>uint(n) != a {
		return 0, errs.New(errs.Overflow, "integer left-shift overflow: %d << %d", a, n)
	}
	return r, nil
}
