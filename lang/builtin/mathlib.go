package builtin

import (
	"math"

	"github.com/lumesh-lang/lumesh/lang/value"
)

// mathFuncs is grounded in original_source/src/modules/bin/math_module.rs.
func mathFuncs() []*value.Builtin {
	fns := []*value.Builtin{
		builtinFunc("max", "get max of numbers or array", "<num1> <num2> ... | <array>", biListMax),
		builtinFunc("min", "get min of numbers or array", "<num1> <num2> ... | <array>", biListMin),
		builtinFunc("sum", "sum numbers or array", "<num1> <num2> ... | <array>", biListSum),
		builtinFunc("average", "average of numbers or array", "<num1> <num2> ... | <array>", biListAverage),
		builtinFunc("abs", "absolute value", "<num>", biMathAbs),
		builtinFunc("clamp", "clamp a number between low and high", "<low> <high> <num>", biMathClamp),
		builtinFunc("bit_and", "bitwise and of two integers", "<a> <b>", biMathBitAnd),
		builtinFunc("bit_or", "bitwise or of two integers", "<a> <b>", biMathBitOr),
		builtinFunc("bit_xor", "bitwise xor of two integers", "<a> <b>", biMathBitXor),
		builtinFunc("bit_not", "bitwise not of an integer", "<a>", biMathBitNot),
		builtinFunc("bit_shl", "shift left", "<a> <n>", biMathBitShl),
		builtinFunc("bit_shr", "shift right", "<a> <n>", biMathBitShr),
		builtinFunc("pow", "raise to a power", "<base> <exp>", biMathPow),
		builtinFunc("exp", "e raised to a power", "<num>", unaryMath(math.Exp)),
		builtinFunc("exp2", "2 raised to a power", "<num>", unaryMath(math.Exp2)),
		builtinFunc("sqrt", "square root", "<num>", unaryMath(math.Sqrt)),
		builtinFunc("cbrt", "cube root", "<num>", unaryMath(math.Cbrt)),
		builtinFunc("log", "natural logarithm", "<num>", unaryMath(math.Log)),
		builtinFunc("log2", "base-2 logarithm", "<num>", unaryMath(math.Log2)),
		builtinFunc("log10", "base-10 logarithm", "<num>", unaryMath(math.Log10)),
		builtinFunc("ln", "natural logarithm", "<num>", unaryMath(math.Log)),
		builtinFunc("floor", "round down", "<num>", unaryMath(math.Floor)),
		builtinFunc("ceil", "round up", "<num>", unaryMath(math.Ceil)),
		builtinFunc("round", "round to nearest", "<num>", unaryMath(math.Round)),
		builtinFunc("trunc", "truncate towards zero", "<num>", unaryMath(math.Trunc)),
		builtinFunc("isodd", "test if integer is odd", "<num>", biMathIsOdd),
		builtinFunc("sin", "sine", "<num>", unaryMath(math.Sin)),
		builtinFunc("cos", "cosine", "<num>", unaryMath(math.Cos)),
		builtinFunc("tan", "tangent", "<num>", unaryMath(math.Tan)),
		builtinFunc("asin", "arcsine", "<num>", unaryMath(math.Asin)),
		builtinFunc("acos", "arccosine", "<num>", unaryMath(math.Acos)),
		builtinFunc("atan", "arctangent", "<num>", unaryMath(math.Atan)),
		builtinFunc("sinh", "hyperbolic sine", "<num>", unaryMath(math.Sinh)),
		builtinFunc("cosh", "hyperbolic cosine", "<num>", unaryMath(math.Cosh)),
		builtinFunc("tanh", "hyperbolic tangent", "<num>", unaryMath(math.Tanh)),
		builtinFunc("asinh", "inverse hyperbolic sine", "<num>", unaryMath(math.Asinh)),
		builtinFunc("acosh", "inverse hyperbolic cosine", "<num>", unaryMath(math.Acosh)),
		builtinFunc("atanh", "inverse hyperbolic tangent", "<num>", unaryMath(math.Atanh)),
		builtinFunc("sinpi", "sine of num*pi", "<num>", unaryMath(func(x float64) float64 { return math.Sin(x * math.Pi) })),
		builtinFunc("cospi", "cosine of num*pi", "<num>", unaryMath(func(x float64) float64 { return math.Cos(x * math.Pi) })),
		builtinFunc("tanpi", "tangent of num*pi", "<num>", unaryMath(func(x float64) float64 { return math.Tan(x * math.Pi) })),
	}
	return fns
}

func unaryMath(f func(float64) float64) func([]value.Value, value.Env) (value.Value, error) {
	return func(args []value.Value, _ value.Env) (value.Value, error) {
		if err := requireArgs("math", args, 1); err != nil {
			return nil, err
		}
		x, err := asFloat("math", args[0])
		if err != nil {
			return nil, err
		}
		return value.Float(f(x)), nil
	}
}

func biMathAbs(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("abs", args, 1); err != nil {
		return nil, err
	}
	switch n := args[0].(type) {
	case value.Int:
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case value.Float:
		return value.Float(math.Abs(float64(n))), nil
	}
	return nil, argErr("abs", 0, 0)
}

func biMathClamp(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("clamp", args, 3); err != nil {
		return nil, err
	}
	lo, err := asFloat("clamp", args[0])
	if err != nil {
		return nil, err
	}
	hi, err := asFloat("clamp", args[1])
	if err != nil {
		return nil, err
	}
	x, err := asFloat("clamp", args[2])
	if err != nil {
		return nil, err
	}
	clamped := math.Max(lo, math.Min(hi, x))
	if _, ok := args[2].(value.Int); ok {
		return value.Int(int64(clamped)), nil
	}
	return value.Float(clamped), nil
}

func biMathBitAnd(args []value.Value, _ value.Env) (value.Value, error) {
	a, b, err := twoInts("bit_and", args)
	if err != nil {
		return nil, err
	}
	return value.Int(a & b), nil
}

func biMathBitOr(args []value.Value, _ value.Env) (value.Value, error) {
	a, b, err := twoInts("bit_or", args)
	if err != nil {
		return nil, err
	}
	return value.Int(a | b), nil
}

func biMathBitXor(args []value.Value, _ value.Env) (value.Value, error) {
	a, b, err := twoInts("bit_xor", args)
	if err != nil {
		return nil, err
	}
	return value.Int(a ^ b), nil
}

func biMathBitNot(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("bit_not", args, 1); err != nil {
		return nil, err
	}
	a, err := asInt("bit_not", args[0])
	if err != nil {
		return nil, err
	}
	return value.Int(^a), nil
}

func biMathBitShl(args []value.Value, _ value.Env) (value.Value, error) {
	a, b, err := twoInts("bit_shl", args)
	if err != nil {
		return nil, err
	}
	return value.Int(a << uint(b)), nil
}

func biMathBitShr(args []value.Value, _ value.Env) (value.Value, error) {
	a, b, err := twoInts("bit_shr", args)
	if err != nil {
		return nil, err
	}
	return value.Int(a >> uint(b)), nil
}

func twoInts(name string, args []value.Value) (int64, int64, error) {
	if err := requireArgs(name, args, 2); err != nil {
		return 0, 0, err
	}
	a, err := asInt(name, args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := asInt(name, args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func biMathPow(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("pow", args, 2); err != nil {
		return nil, err
	}
	base, err := asFloat("pow", args[0])
	if err != nil {
		return nil, err
	}
	exp, err := asFloat("pow", args[1])
	if err != nil {
		return nil, err
	}
	result := math.Pow(base, exp)
	_, baseInt := args[0].(value.Int)
	_, expInt := args[1].(value.Int)
	if baseInt && expInt && exp >= 0 {
		return value.Int(int64(result)), nil
	}
	return value.Float(result), nil
}

func biMathIsOdd(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("isodd", args, 1); err != nil {
		return nil, err
	}
	n, err := asInt("isodd", args[0])
	if err != nil {
		return nil, err
	}
	return value.Bool(n%2 != 0), nil
}
