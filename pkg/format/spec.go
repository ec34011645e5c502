package format

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrImpossible is returned for text that has the right shape but names a
// value that does not exist, like month 13 or February 30.
var ErrImpossible = errors.New("impossible calendar value")

// ErrNoMatch is returned when text does not have the shape of a spec.
var ErrNoMatch = errors.New("text does not match format")

// Spec is one recognisable shape of a date, time or date-time.
type Spec struct {
	Name         string
	Kind         Kind
	Layout       Layout
	Meridiem     bool
	UserFormat   string
	PickerFormat string
	Pattern      *regexp.Regexp

	anchored *regexp.Regexp
}

const (
	clockMeridiem = `(\d{1,2}):(\d{2}) ?([AaPp][Mm])\b`
	clock24       = `(\d{1,2}):(\d{2})`
)

func datePattern(l Layout) string {
	sep := regexp.QuoteMeta(l.Separator())
	if l.Order() == YearMonthDay {
		return `(\d{4})` + sep + `(\d{1,2})` + sep + `(\d{1,2})`
	}
	return `(\d{1,2})` + sep + `(\d{1,2})` + sep + `(\d{4})`
}

func newSpec(kind Kind, l Layout, meridiem bool) *Spec {
	clock, clockPattern := Clock(true), clock24
	if meridiem {
		clock, clockPattern = Clock(false), clockMeridiem
	}

	var user, pattern string
	switch kind {
	case Date:
		user, pattern = l.DateFormat(), datePattern(l)
	case DateTime:
		user, pattern = l.DateFormat()+" "+clock, datePattern(l)+`[ T]`+clockPattern
	case Time:
		user, pattern = clock, clockPattern
	}

	return &Spec{
		Name:         user,
		Kind:         kind,
		Layout:       l,
		Meridiem:     meridiem,
		UserFormat:   user,
		PickerFormat: PickerFormat(kind),
		Pattern:      regexp.MustCompile(pattern),
		anchored:     regexp.MustCompile(`^(?:` + pattern + `)$`),
	}
}

func (s *Spec) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Kind)
}

// Parse validates text matched in full by the spec's pattern and returns the
// value it names.
func (s *Spec) Parse(raw string) (time.Time, error) {
	t, _, err := s.Read(raw)
	return t, err
}

// Read is Parse that also reports the user format adjusted to the spelling of
// raw: a T between date and time, a lower-case meridiem, or a meridiem
// without the leading space.
func (s *Spec) Read(raw string) (time.Time, string, error) {
	idx := s.anchored.FindStringSubmatchIndex(raw)
	if idx == nil {
		return time.Time{}, "", fmt.Errorf("%w: %q as %s", ErrNoMatch, raw, s.Name)
	}
	group := func(n int) string {
		if idx[2*n] < 0 {
			return ""
		}
		return raw[idx[2*n]:idx[2*n+1]]
	}

	year, month, day := 0, 1, 1
	next := 1
	if s.Kind.HasDate() {
		a, b, c := atoi(group(1)), atoi(group(2)), atoi(group(3))
		switch s.Layout.Order() {
		case YearMonthDay:
			year, month, day = a, b, c
		case DayMonthYear:
			day, month, year = a, b, c
		case MonthDayYear:
			month, day, year = a, b, c
		}
		next = 4
	}
	hour, minute := 0, 0
	meridiem := ""
	if s.Kind.HasClock() {
		hour, minute = atoi(group(next)), atoi(group(next+1))
		if s.Meridiem {
			meridiem = group(next + 2)
		}
	}

	if s.Kind.HasDate() {
		if month < 1 || month > 12 {
			return time.Time{}, "", fmt.Errorf("%w: month %d in %q", ErrImpossible, month, raw)
		}
		if day < 1 || day > DaysIn(year, time.Month(month)) {
			return time.Time{}, "", fmt.Errorf("%w: day %d in %q", ErrImpossible, day, raw)
		}
	}
	if s.Kind.HasClock() {
		if s.Meridiem {
			if hour < 1 || hour > 12 {
				return time.Time{}, "", fmt.Errorf("%w: hour %d in %q", ErrImpossible, hour, raw)
			}
			hour %= 12
			if strings.EqualFold(meridiem, "pm") {
				hour += 12
			}
		} else if hour > 23 {
			return time.Time{}, "", fmt.Errorf("%w: hour %d in %q", ErrImpossible, hour, raw)
		}
		if minute > 59 {
			return time.Time{}, "", fmt.Errorf("%w: minute %d in %q", ErrImpossible, minute, raw)
		}
	}

	user := s.UserFormat
	if s.Kind == DateTime && raw[idx[7]] == 'T' {
		user = strings.Replace(user, " ", "T", 1)
	}
	if s.Meridiem {
		mi := 2 * (next + 2)
		if meridiem == strings.ToLower(meridiem) {
			user = strings.TrimSuffix(user, "A") + "a"
		}
		if raw[idx[mi]-1] != ' ' {
			user = user[:len(user)-2] + user[len(user)-1:]
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), user, nil
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
