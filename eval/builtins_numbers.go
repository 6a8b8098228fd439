package eval

import (
	"strconv"
	"strings"

	"github.com/simon-lentz/weft/immutable"
	"github.com/simon-lentz/weft/internal/value"
)

// registerNumbersBuiltins installs the `numbers` namespace: §4.7's radix
// conversions plus the supplemental predicates/coercions SPEC_FULL.md
// names (isOdd/isEven/isInteger/isDecimal, toFloat/toInteger,
// fromString).
func registerNumbersBuiltins(ns *Namespace) {
	ns.register("toBinary", 1, 1, radixRenderer(2))
	ns.register("toHex", 1, 1, radixRenderer(16))
	ns.register("toRadixNumber", 2, 2, builtinToRadixNumber)
	ns.register("fromBinary", 1, 1, radixParser(2, "Binary"))
	ns.register("fromHex", 1, 1, radixParser(16, "Hexadecimal"))
	ns.register("fromRadixNumber", 2, 2, builtinFromRadixNumber)

	ns.register("isOdd", 1, 1, builtinIsOdd)
	ns.register("isEven", 1, 1, builtinIsEven)
	ns.register("isInteger", 1, 1, builtinIsInteger)
	ns.register("isDecimal", 1, 1, builtinIsDecimal)
	ns.register("toFloat", 1, 1, builtinToFloat)
	ns.register("toInteger", 1, 1, builtinToInteger)
	ns.register("fromString", 1, 1, builtinNumberFromString)
}

// radixRenderer renders a signed integer value in the given base; a
// negative value produces a leading "-" followed by the magnitude's
// digits, per §4.7.
func radixRenderer(base int) BuiltinFunc {
	return func(args []immutable.Value) (immutable.Value, error) {
		n, ok := args[0].Num()
		if !ok {
			return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
		}
		i, ok := value.GetInt64FromFloat(n)
		if !ok {
			return immutable.Value{}, DomainError("expected a whole number")
		}
		return immutable.NewStr(strconv.FormatInt(i, base)), nil
	}
}

func builtinToRadixNumber(args []immutable.Value) (immutable.Value, error) {
	n, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	baseF, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	i, ok := value.GetInt64FromFloat(n)
	if !ok {
		return immutable.Value{}, DomainError("expected a whole number")
	}
	base := int(baseF)
	if base < 2 || base > 36 {
		return immutable.Value{}, DomainError("radix must be between 2 and 36")
	}
	return immutable.NewStr(strconv.FormatInt(i, base)), nil
}

// radixParser validates that s contains only digits legal for base
// before parsing, producing the exact rejection message §4.7 specifies
// (e.g. "Expected Binary, got: Number") when the literal digit set
// exceeds the base.
func radixParser(base int, kindName string) BuiltinFunc {
	return func(args []immutable.Value) (immutable.Value, error) {
		s, digits, err := radixDigitsOf(args[0])
		if err != nil {
			return immutable.Value{}, err
		}
		for _, d := range digits {
			v := digitValue(d)
			if v < 0 || v >= base {
				return immutable.Value{}, TypeMismatch(kindName, "Number")
			}
		}
		i, err := strconv.ParseInt(s, base, 64)
		if err != nil {
			return immutable.Value{}, DomainError("invalid %s literal: %s", strings.ToLower(kindName), s)
		}
		return immutable.NewNum(float64(i)), nil
	}
}

func radixDigitsOf(v immutable.Value) (string, string, error) {
	switch v.Kind() {
	case immutable.KindStr:
		s, _ := v.Str()
		return s, strings.TrimPrefix(s, "-"), nil
	case immutable.KindNum:
		s, _ := toScalarString(v)
		return s, strings.TrimPrefix(s, "-"), nil
	default:
		return "", "", TypeMismatch("String or Number", v.PrettyName())
	}
}

func digitValue(d byte) int {
	switch {
	case d >= '0' && d <= '9':
		return int(d - '0')
	case d >= 'a' && d <= 'z':
		return int(d-'a') + 10
	case d >= 'A' && d <= 'Z':
		return int(d-'A') + 10
	default:
		return -1
	}
}

func builtinFromRadixNumber(args []immutable.Value) (immutable.Value, error) {
	s, _, err := radixDigitsOf(args[0])
	if err != nil {
		return immutable.Value{}, err
	}
	baseF, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	base := int(baseF)
	if base < 2 || base > 36 {
		return immutable.Value{}, DomainError("radix must be between 2 and 36")
	}
	i, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return immutable.Value{}, DomainError("invalid radix-%d literal: %s", base, s)
	}
	return immutable.NewNum(float64(i)), nil
}

func builtinIsOdd(args []immutable.Value) (immutable.Value, error) {
	n, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	i, ok := value.GetInt64FromFloat(n)
	if !ok {
		return immutable.Value{}, DomainError("isOdd: not a whole number")
	}
	return immutable.NewBool(i%2 != 0), nil
}

func builtinIsEven(args []immutable.Value) (immutable.Value, error) {
	n, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	i, ok := value.GetInt64FromFloat(n)
	if !ok {
		return immutable.Value{}, DomainError("isEven: not a whole number")
	}
	return immutable.NewBool(i%2 == 0), nil
}

func builtinIsInteger(args []immutable.Value) (immutable.Value, error) {
	n, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	return immutable.NewBool(value.IsWholeNumber(n)), nil
}

func builtinIsDecimal(args []immutable.Value) (immutable.Value, error) {
	n, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	return immutable.NewBool(!value.IsWholeNumber(n)), nil
}

func builtinToFloat(args []immutable.Value) (immutable.Value, error) {
	switch args[0].Kind() {
	case immutable.KindNum:
		return args[0], nil
	case immutable.KindStr:
		s, _ := args[0].Str()
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return immutable.Value{}, DomainError("toFloat: invalid number literal: %s", s)
		}
		return immutable.NewNum(f), nil
	default:
		return immutable.Value{}, TypeMismatch("Number or String", args[0].PrettyName())
	}
}

func builtinToInteger(args []immutable.Value) (immutable.Value, error) {
	f, err := builtinToFloat(args)
	if err != nil {
		return immutable.Value{}, err
	}
	n, _ := f.Num()
	return immutable.NewNum(float64(int64(n))), nil
}

func builtinNumberFromString(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return immutable.Value{}, DomainError("fromString: invalid number literal: %s", s)
	}
	return immutable.NewNum(f), nil
}
