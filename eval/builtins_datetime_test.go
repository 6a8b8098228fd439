package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/immutable"
)

func callDatetime(t *testing.T, name string, args ...immutable.Value) immutable.Value {
	t.Helper()
	r := eval.NewEvaluator().Registry()
	v, err := r.Call("datetime."+name, args)
	require.NoError(t, err)
	return v
}

func TestDatetimeAtBeginningOfWeekGoldenScenario(t *testing.T) {
	// 2020-12-31 is a Thursday; atBeginningOfWeek rolls back to the most
	// recent Sunday strictly before it.
	v := callDatetime(t, "atBeginningOfWeek", immutable.NewStr("2020-12-31T23:19:35Z"))
	s, _ := v.Str()
	assert.Equal(t, "2020-12-27T00:00:00Z", s)
}

func TestDatetimeAtBeginningOfWeekOnSundayRollsBackFully(t *testing.T) {
	v := callDatetime(t, "atBeginningOfWeek", immutable.NewStr("2020-12-27T00:00:00Z"))
	s, _ := v.Str()
	assert.Equal(t, "2020-12-20T00:00:00Z", s)
}

func TestDatetimeAtBeginningOfDayMonthYear(t *testing.T) {
	v := callDatetime(t, "atBeginningOfDay", immutable.NewStr("2020-12-31T23:19:35Z"))
	s, _ := v.Str()
	assert.Equal(t, "2020-12-31T00:00:00Z", s)

	v = callDatetime(t, "atBeginningOfMonth", immutable.NewStr("2020-12-31T23:19:35Z"))
	s, _ = v.Str()
	assert.Equal(t, "2020-12-01T00:00:00Z", s)

	v = callDatetime(t, "atBeginningOfYear", immutable.NewStr("2020-12-31T23:19:35Z"))
	s, _ = v.Str()
	assert.Equal(t, "2020-01-01T00:00:00Z", s)
}

func TestDatetimePlusMinusCalendar(t *testing.T) {
	v := callDatetime(t, "plus", immutable.NewStr("2020-01-01T00:00:00Z"), immutable.NewStr("P1M"))
	s, _ := v.Str()
	assert.Equal(t, "2020-02-01T00:00:00Z", s)

	v = callDatetime(t, "minus", immutable.NewStr("2020-02-01T00:00:00Z"), immutable.NewStr("P1M"))
	s, _ = v.Str()
	assert.Equal(t, "2020-01-01T00:00:00Z", s)
}

func TestDatetimePlusDuration(t *testing.T) {
	v := callDatetime(t, "plus", immutable.NewStr("2020-01-01T00:00:00Z"), immutable.NewStr("PT1H30M"))
	s, _ := v.Str()
	assert.Equal(t, "2020-01-01T01:30:00Z", s)
}

func TestDatetimeCompareAndDaysBetween(t *testing.T) {
	v := callDatetime(t, "compare", immutable.NewStr("2020-01-01T00:00:00Z"), immutable.NewStr("2020-01-02T00:00:00Z"))
	n, _ := v.Num()
	assert.Equal(t, -1.0, n)

	v = callDatetime(t, "daysBetween", immutable.NewStr("2020-01-01T00:00:00Z"), immutable.NewStr("2020-01-10T00:00:00Z"))
	n, _ = v.Num()
	assert.Equal(t, 9.0, n)
}

func TestDatetimeParseEpoch(t *testing.T) {
	v := callDatetime(t, "parse", immutable.NewStr("0"), immutable.NewStr("epoch"))
	s, _ := v.Str()
	assert.Equal(t, "1970-01-01T00:00:00Z", s)
}
