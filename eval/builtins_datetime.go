package eval

import (
	"strconv"
	"strings"
	"time"

	"github.com/simon-lentz/weft/immutable"
)

// All datetime values are represented as strings in ISO_OFFSET_DATE_TIME
// form, per §4.6. isoLayout covers the common case (second precision);
// isoLayoutNano is tried first so sub-second input round-trips.
const (
	isoLayout     = "2006-01-02T15:04:05Z07:00"
	isoLayoutNano = "2006-01-02T15:04:05.999999999Z07:00"
)

// registerDatetimeBuiltins installs the `datetime` namespace: the
// atBeginningOfX family, plus/minus, changeTimeZone, compare,
// daysBetween, and parse, per §4.6. Delegates all calendar math to the
// standard library's time package rather than reinventing it, per
// spec.md §9's "delegate to a standard ISO-8601 library" design note.
func registerDatetimeBuiltins(ns *Namespace) {
	ns.register("atBeginningOfDay", 1, 1, dtFn1(func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}))
	ns.register("atBeginningOfHour", 1, 1, dtFn1(func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	}))
	ns.register("atBeginningOfMonth", 1, 1, dtFn1(func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}))
	ns.register("atBeginningOfYear", 1, 1, dtFn1(func(t time.Time) time.Time {
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	}))
	ns.register("atBeginningOfWeek", 1, 1, dtFn1(atBeginningOfWeek))

	ns.register("plus", 2, 2, builtinDatetimePlus)
	ns.register("minus", 2, 2, builtinDatetimeMinus)
	ns.register("changeTimeZone", 2, 2, builtinChangeTimeZone)
	ns.register("compare", 2, 2, builtinDatetimeCompare)
	ns.register("daysBetween", 2, 2, builtinDaysBetween)
	ns.register("parse", 2, 2, builtinDatetimeParse)
	ns.register("now", 0, 0, builtinDatetimeNow)
}

func parseDatetime(s string) (time.Time, error) {
	if t, err := time.Parse(isoLayoutNano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return time.Time{}, DomainError("invalid ISO_OFFSET_DATE_TIME value: %s", s)
	}
	return t, nil
}

func formatDatetime(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format(isoLayout)
	}
	return t.Format(isoLayoutNano)
}

func dtFn1(f func(time.Time) time.Time) BuiltinFunc {
	return func(args []immutable.Value) (immutable.Value, error) {
		s, ok := args[0].Str()
		if !ok {
			return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
		}
		t, err := parseDatetime(s)
		if err != nil {
			return immutable.Value{}, err
		}
		return immutable.NewStr(formatDatetime(f(t))), nil
	}
}

// atBeginningOfWeek implements the Monday-start-with-Sunday-rollback
// rule documented in §4.6 and exercised by the golden scenario in §8.4:
// every date rolls back to the most recent Sunday strictly before its
// own calendar day, including a date that is itself a Sunday (which
// rolls back a full 7 days rather than staying in place).
func atBeginningOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	isoDow := (int(day.Weekday())+6)%7 + 1 // Monday=1 ... Sunday=7
	return day.AddDate(0, 0, -isoDow)
}

func builtinDatetimePlus(args []immutable.Value) (immutable.Value, error) {
	return datetimeAddPeriod(args, 1)
}

func builtinDatetimeMinus(args []immutable.Value) (immutable.Value, error) {
	return datetimeAddPeriod(args, -1)
}

// datetimeAddPeriod dispatches on whether the period string contains "T"
// (duration semantics: hours/minutes/seconds) or not (calendar
// semantics: years/months/days), per §4.6.
func datetimeAddPeriod(args []immutable.Value, sign int) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	periodStr, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	t, err := parseDatetime(s)
	if err != nil {
		return immutable.Value{}, err
	}
	p, err := parseISOPeriod(periodStr)
	if err != nil {
		return immutable.Value{}, err
	}
	if p.isDuration {
		d := time.Duration(sign) * (time.Duration(p.hours)*time.Hour + time.Duration(p.minutes)*time.Minute + time.Duration(p.seconds*float64(time.Second)))
		t = t.Add(d)
	} else {
		t = t.AddDate(sign*p.years, sign*p.months, sign*p.days)
	}
	return immutable.NewStr(formatDatetime(t)), nil
}

func builtinChangeTimeZone(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	offset, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	t, err := parseDatetime(s)
	if err != nil {
		return immutable.Value{}, err
	}
	loc, err := parseOffset(offset)
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewStr(formatDatetime(t.In(loc))), nil
}

func parseOffset(offset string) (*time.Location, error) {
	if offset == "Z" || offset == "" {
		return time.UTC, nil
	}
	sign := 1
	rest := offset
	switch rest[0] {
	case '+':
		rest = rest[1:]
	case '-':
		sign = -1
		rest = rest[1:]
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 2 {
		return nil, DomainError("invalid timezone offset: %s", offset)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil, DomainError("invalid timezone offset: %s", offset)
	}
	secs := sign * (h*3600 + m*60)
	return time.FixedZone(offset, secs), nil
}

func builtinDatetimeCompare(args []immutable.Value) (immutable.Value, error) {
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
	switch {
	case a.Before(b):
		return immutable.NewNum(-1), nil
	case a.After(b):
		return immutable.NewNum(1), nil
	default:
		return immutable.NewNum(0), nil
	}
}

func builtinDaysBetween(args []immutable.Value) (immutable.Value, error) {
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
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(bDay.Sub(aDay).Hours() / 24)
	return immutable.NewNum(float64(days)), nil
}

// builtinDatetimeParse supports "epoch"/"timestamp" (case-insensitive,
// seconds since the Unix epoch) plus a small set of common patterns. A
// parsed value lacking zone information defaults to Z, per §4.6.
func builtinDatetimeParse(args []immutable.Value) (immutable.Value, error) {
	value, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	format, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	lower := strings.ToLower(format)
	if lower == "epoch" || lower == "timestamp" {
		secs, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return immutable.Value{}, DomainError("invalid epoch value: %s", value)
		}
		t := time.Unix(int64(secs), 0).UTC()
		return immutable.NewStr(formatDatetime(t)), nil
	}
	layout := translateDatePattern(format)
	t, err := time.Parse(layout, value)
	if err != nil {
		return immutable.Value{}, DomainError("value %q does not match pattern %q", value, format)
	}
	if t.Location() == time.UTC && !strings.ContainsAny(format, "XxZz") {
		t = t.UTC()
	}
	return immutable.NewStr(formatDatetime(t)), nil
}

func builtinDatetimeNow(args []immutable.Value) (immutable.Value, error) {
	return immutable.NewStr(formatDatetime(time.Now().UTC())), nil
}

// translateDatePattern converts a Java/Joda-style date pattern
// (yyyy-MM-dd'T'HH:mm:ss) into a Go reference-time layout. Only the
// token set actually used by datetime.parse's documented examples is
// supported; an unrecognized token passes through unchanged.
func translateDatePattern(pattern string) string {
	replacer := strings.NewReplacer(
		"yyyy", "2006",
		"yy", "06",
		"MMMM", "January",
		"MMM", "Jan",
		"MM", "01",
		"dd", "02",
		"HH", "15",
		"mm", "04",
		"ss", "05",
		"SSS", "000",
		"XXX", "Z07:00",
		"XX", "Z0700",
		"X", "Z07",
		"'T'", "T",
		"'Z'", "Z",
	)
	return replacer.Replace(pattern)
}
