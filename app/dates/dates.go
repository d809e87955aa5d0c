// Package dates normalizes the date representations that reach the service
// (native times, ISO strings, epoch values and timestamp objects carrying
// seconds/nanoseconds) into epoch milliseconds, and formats them as
// Brazilian calendar dates.
package dates

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// InvalidDate is returned by Format when the input cannot be interpreted.
const InvalidDate = "Data inválida"

// NotInformed is the placeholder for absent optional values.
const NotInformed = "Não informado"

const (
	dayLayout    = "2006-01-02"
	brDayLayout  = "02/01/2006"
	localISO     = "2006-01-02T15:04:05"
	localISOMins = "2006-01-02T15:04"
)

// Millis is the canonical representation: milliseconds since the Unix epoch.
type Millis int64

// Time converts the value to a time in loc.
func (m Millis) Time(loc *time.Location) time.Time {
	return time.UnixMilli(int64(m)).In(loc)
}

// FromTime returns the canonical value for t.
func FromTime(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Now returns the current instant as Millis.
func Now() Millis {
	return FromTime(time.Now())
}

// Timestamp mirrors document-store timestamps that expose seconds and
// nanoseconds fields.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

// Millis converts the timestamp to the canonical representation.
func (ts Timestamp) Millis() Millis {
	return Millis(ts.Seconds*1000 + ts.Nanoseconds/int64(time.Millisecond))
}

// Location is the zone calendar dates are interpreted and rendered in.
// main sets it from site.time_zone.
var Location = time.Local

// Normalize converts v to epoch milliseconds. Plain numbers are epoch
// seconds. Date-only strings are calendar dates at midnight in Location.
func Normalize(v any) (Millis, bool) {
	return NormalizeIn(v, Location)
}

// NormalizeIn is Normalize with an explicit zone for date-only inputs.
// Values outside the years 0001 to 9999 are rejected.
func NormalizeIn(v any, loc *time.Location) (Millis, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case Millis:
		return checked(t)
	case *Millis:
		if t == nil {
			return 0, false
		}
		return checked(*t)
	case time.Time:
		return fromTime(t)
	case *time.Time:
		if t == nil {
			return 0, false
		}
		return fromTime(*t)
	case Timestamp:
		return fromUnix(t.Seconds, t.Nanoseconds)
	case *Timestamp:
		if t == nil {
			return 0, false
		}
		return fromUnix(t.Seconds, t.Nanoseconds)
	case string:
		ms, ok := parseString(t, loc)
		if !ok {
			return 0, false
		}
		return checked(ms)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return fromUnix(i, 0)
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return fromSeconds(f)
	case int:
		return fromUnix(int64(t), 0)
	case int32:
		return fromUnix(int64(t), 0)
	case int64:
		return fromUnix(t, 0)
	case float64:
		return fromSeconds(t)
	case float32:
		return fromSeconds(float64(t))
	case map[string]any:
		return fromMap(t)
	}
	return 0, false
}

// The accepted range is years 0001 to 9999 widened by a day on each side,
// so a calendar day at either end still parses in every zone. FormatIn
// rejects instants whose local year falls outside 0001 to 9999.
var (
	minMillis = Millis(time.Date(0, time.December, 31, 0, 0, 0, 0, time.UTC).UnixMilli())
	maxMillis = Millis(time.Date(10000, time.January, 1, 23, 59, 59, 999_000_000, time.UTC).UnixMilli())

	minSeconds = int64(minMillis) / 1000
	maxSeconds = int64(maxMillis) / 1000
)

func checked(ms Millis) (Millis, bool) {
	if ms < minMillis || ms > maxMillis {
		return 0, false
	}
	return ms, true
}

func fromTime(t time.Time) (Millis, bool) {
	if t.IsZero() {
		return 0, false
	}
	if y := t.UTC().Year(); y < 0 || y > 10000 {
		return 0, false
	}
	return checked(FromTime(t))
}

// fromUnix range-checks secs before scaling so the product cannot overflow.
func fromUnix(secs, nanos int64) (Millis, bool) {
	if secs < minSeconds || secs > maxSeconds {
		return 0, false
	}
	return checked(Millis(secs*1000 + nanos/int64(time.Millisecond)))
}

func fromSeconds(f float64) (Millis, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < float64(minSeconds) || f > float64(maxSeconds) {
		return 0, false
	}
	return checked(Millis(math.Round(f * 1000)))
}

func fromMap(m map[string]any) (Millis, bool) {
	secs, ok := m["seconds"]
	if !ok {
		secs, ok = m["_seconds"]
	}
	if !ok {
		return 0, false
	}
	s, ok := toInt64(secs)
	if !ok {
		return 0, false
	}
	nanos, ok := m["nanoseconds"]
	if !ok {
		nanos = m["_nanoseconds"]
	}
	n, _ := toInt64(nanos)
	return fromUnix(s, n)
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return floatToInt64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return floatToInt64(f)
		}
		return i, true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func parseString(s string, loc *time.Location) (Millis, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), true
		}
	}
	for _, layout := range []string{dayLayout, brDayLayout, localISO, localISOMins} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return FromTime(t), true
		}
	}
	return 0, false
}

// Format renders v as DD/MM/YYYY in Location, or InvalidDate.
func Format(v any) string {
	return FormatIn(v, Location)
}

// FormatIn is Format with an explicit zone.
func FormatIn(v any, loc *time.Location) string {
	ms, ok := NormalizeIn(v, loc)
	if !ok {
		return InvalidDate
	}
	t := ms.Time(loc)
	if t.Year() < 1 || t.Year() > 9999 {
		return InvalidDate
	}
	return t.Format(brDayLayout)
}

// FormatOr behaves like Format but returns fallback for empty input
// instead of InvalidDate.
func FormatOr(v any, fallback string) string {
	if isEmpty(v) {
		return fallback
	}
	return Format(v)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case Millis:
		return t == 0
	}
	return false
}

// Day returns the YYYY-MM-DD calendar day of ms in Location.
func Day(ms Millis) string {
	return ms.Time(Location).Format(dayLayout)
}

// SameDay reports whether ms falls on the calendar day given as YYYY-MM-DD.
func SameDay(ms Millis, day string) bool {
	return Day(ms) == strings.TrimSpace(day)
}

// ValidDay reports whether s is a YYYY-MM-DD calendar date.
func ValidDay(s string) bool {
	_, err := time.Parse(dayLayout, strings.TrimSpace(s))
	return err == nil
}
