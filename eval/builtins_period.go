package eval

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/simon-lentz/weft/immutable"
)

// isoPeriod is the parsed form of an ISO-8601 duration string
// (PnYnMnDTnHnMnS), per §4.6. isDuration is true when the string
// contains a "T" component (hours/minutes/seconds govern plus/minus);
// otherwise years/months/days govern calendar arithmetic.
type isoPeriod struct {
	years, months, days int
	hours, minutes       int
	seconds              float64
	isDuration           bool
}

// parseISOPeriod parses a subset of ISO-8601 durations sufficient for
// period.duration/period.period's accumulator fields and for plus/minus
// dispatch.
func parseISOPeriod(s string) (isoPeriod, error) {
	if !strings.HasPrefix(s, "P") {
		return isoPeriod{}, DomainError("invalid ISO-8601 period: %s", s)
	}
	body := s[1:]
	datePart, timePart, hasTime := strings.Cut(body, "T")
	var p isoPeriod
	p.isDuration = hasTime

	if err := scanPeriodComponents(datePart, map[byte]*int{
		'Y': &p.years, 'M': &p.months, 'D': &p.days,
	}, nil); err != nil {
		return isoPeriod{}, err
	}
	if hasTime {
		secFloat := new(float64)
		if err := scanPeriodComponents(timePart, map[byte]*int{
			'H': &p.hours, 'M': &p.minutes,
		}, map[byte]*float64{'S': secFloat}); err != nil {
			return isoPeriod{}, err
		}
		p.seconds = *secFloat
	}
	return p, nil
}

func scanPeriodComponents(s string, intFields map[byte]*int, floatFields map[byte]*float64) error {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			if c != '.' && c != '-' {
				numStr := s[start:i]
				if dst, ok := intFields[c]; ok {
					n, err := strconv.Atoi(numStr)
					if err != nil {
						return DomainError("invalid ISO-8601 period component: %s%c", numStr, c)
					}
					*dst = n
				} else if dst, ok := floatFields[c]; ok {
					f, err := strconv.ParseFloat(numStr, 64)
					if err != nil {
						return DomainError("invalid ISO-8601 period component: %s%c", numStr, c)
					}
					*dst = f
				} else {
					return DomainError("unrecognized ISO-8601 period field: %c", c)
				}
				start = i + 1
			}
		}
	}
	return nil
}

func formatISOPeriod(p isoPeriod) string {
	var b strings.Builder
	b.WriteString("P")
	if p.years != 0 {
		fmt.Fprintf(&b, "%dY", p.years)
	}
	if p.months != 0 {
		fmt.Fprintf(&b, "%dM", p.months)
	}
	if p.days != 0 {
		fmt.Fprintf(&b, "%dD", p.days)
	}
	if p.hours != 0 || p.minutes != 0 || p.seconds != 0 {
		b.WriteString("T")
		if p.hours != 0 {
			fmt.Fprintf(&b, "%dH", p.hours)
		}
		if p.minutes != 0 {
			fmt.Fprintf(&b, "%dM", p.minutes)
		}
		if p.seconds != 0 {
			fmt.Fprintf(&b, "%gS", p.seconds)
		}
	}
	if b.Len() == 1 {
		return "PT0S"
	}
	return b.String()
}

// registerPeriodBuiltins installs the `period` namespace: between,
// duration, and period, per §4.6.
func registerPeriodBuiltins(ns *Namespace) {
	ns.register("between", 2, 2, builtinPeriodBetween)
	ns.register("duration", 1, 1, builtinPeriodDuration)
	ns.register("period", 1, 1, builtinPeriodPeriod)
}

// builtinPeriodBetween returns the calendar period between two dates
// (can be negative), per §4.6.
func builtinPeriodBetween(args []immutable.Value) (immutable.Value, error) {
	aStr, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	bStr, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	a, err := parseDatetime(aStr)
	if err != nil {
		return immutable.Value{}, err
	}
	b, err := parseDatetime(bStr)
	if err != nil {
		return immutable.Value{}, err
	}
	negative := b.Before(a)
	if negative {
		a, b = b, a
	}
	years := b.Year() - a.Year()
	months := int(b.Month()) - int(a.Month())
	days := b.Day() - a.Day()
	if days < 0 {
		months--
		prevMonth := b.AddDate(0, -1, 0)
		days += daysInMonth(prevMonth)
	}
	if months < 0 {
		years--
		months += 12
	}
	if negative {
		years, months, days = -years, -months, -days
	}
	return immutable.NewStr(formatISOPeriod(isoPeriod{years: years, months: months, days: days})), nil
}

// daysInMonth returns the number of days in t's calendar month.
func daysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	lastOfThis := firstOfNext.AddDate(0, 0, -1)
	return lastOfThis.Day()
}

func builtinPeriodDuration(args []immutable.Value) (immutable.Value, error) {
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	var p isoPeriod
	p.isDuration = true
	days, err := objIntField(o, "days")
	if err != nil {
		return immutable.Value{}, err
	}
	hours, err := objIntField(o, "hours")
	if err != nil {
		return immutable.Value{}, err
	}
	minutes, err := objIntField(o, "minutes")
	if err != nil {
		return immutable.Value{}, err
	}
	seconds, err := objFloatField(o, "seconds")
	if err != nil {
		return immutable.Value{}, err
	}
	p.hours = days*24 + hours
	p.minutes = minutes
	p.seconds = seconds
	return immutable.NewStr(formatISOPeriod(p)), nil
}

func builtinPeriodPeriod(args []immutable.Value) (immutable.Value, error) {
	o, ok := args[0].Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", args[0].PrettyName())
	}
	years, err := objIntField(o, "years")
	if err != nil {
		return immutable.Value{}, err
	}
	months, err := objIntField(o, "months")
	if err != nil {
		return immutable.Value{}, err
	}
	days, err := objIntField(o, "days")
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewStr(formatISOPeriod(isoPeriod{years: years, months: months, days: days})), nil
}

func objIntField(o immutable.Object, key string) (int, error) {
	v, ok, err := o.GetVisible(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, ok := v.Num()
	if !ok {
		return 0, TypeMismatch("Number", v.PrettyName())
	}
	return int(n), nil
}

func objFloatField(o immutable.Object, key string) (float64, error) {
	v, ok, err := o.GetVisible(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, ok := v.Num()
	if !ok {
		return 0, TypeMismatch("Number", v.PrettyName())
	}
	return n, nil
}
