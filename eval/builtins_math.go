package eval

import (
	"math"
	"math/rand/v2"

	"github.com/simon-lentz/weft/immutable"
)

// registerMathBuiltins installs the `math` namespace: the basic
// floating-point primitives plus the supplemental pow/sqrt/log/random
// set SPEC_FULL.md names (spec.md §5's "Random-number sources used by
// ... math.random, math.randomInt").
func registerMathBuiltins(ns *Namespace) {
	ns.register("abs", 1, 1, mathFn1(math.Abs))
	ns.register("ceil", 1, 1, mathFn1(math.Ceil))
	ns.register("floor", 1, 1, mathFn1(math.Floor))
	ns.register("round", 1, 1, mathFn1(func(f float64) float64 { return math.Round(f) }))
	ns.register("roundHalfEven", 1, 1, mathFn1(math.RoundToEven))
	ns.register("sqrt", 1, 1, mathFn1(math.Sqrt))
	ns.register("pow", 2, 2, builtinPow)
	ns.register("log", 1, 1, mathFn1(math.Log))
	ns.register("log10", 1, 1, mathFn1(math.Log10))
	ns.register("random", 0, 0, builtinRandom)
	ns.register("randomInt", 1, 1, builtinRandomInt)
}

func mathFn1(f func(float64) float64) BuiltinFunc {
	return func(args []immutable.Value) (immutable.Value, error) {
		n, ok := args[0].Num()
		if !ok {
			return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
		}
		return immutable.NewNum(f(n)), nil
	}
}

func builtinPow(args []immutable.Value) (immutable.Value, error) {
	base, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	exp, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	return immutable.NewNum(math.Pow(base, exp)), nil
}

// builtinRandom and builtinRandomInt use a process-wide source with no
// cross-evaluation ordering guarantee, per spec.md §5.
func builtinRandom(args []immutable.Value) (immutable.Value, error) {
	return immutable.NewNum(rand.Float64()), nil
}

func builtinRandomInt(args []immutable.Value) (immutable.Value, error) {
	boundF, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	bound := int(boundF)
	if bound <= 0 {
		return immutable.Value{}, DomainError("randomInt: bound must be positive")
	}
	return immutable.NewNum(float64(rand.IntN(bound))), nil
}
