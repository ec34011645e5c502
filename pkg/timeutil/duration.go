package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	delayPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap      = map[string]time.Duration{
		"ms":           time.Millisecond,
		"msec":         time.Millisecond,
		"msecs":        time.Millisecond,
		"millisecond":  time.Millisecond,
		"milliseconds": time.Millisecond,
		"s":            time.Second,
		"sec":          time.Second,
		"secs":         time.Second,
		"second":       time.Second,
		"seconds":      time.Second,
		"m":            time.Minute,
		"min":          time.Minute,
		"mins":         time.Minute,
		"minute":       time.Minute,
		"minutes":      time.Minute,
	}
)

// ParseDelay parses a short human-friendly delay such as "300ms", "1s" or
// "1s500ms" and returns it with its canonical spelling. A bare number is
// taken as milliseconds. Zero is allowed; an empty string is an error.
func ParseDelay(input string) (time.Duration, string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, "", fmt.Errorf("empty delay")
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		if n < 0 {
			return 0, "", fmt.Errorf("delay must not be negative")
		}
		d := time.Duration(n) * time.Millisecond
		return d, FormatDelay(d), nil
	}

	remaining := trimmed
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := delayPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid delay segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid delay value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported delay unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	return total, FormatDelay(total), nil
}

// FormatDelay renders a delay using minute, second and millisecond tokens.
func FormatDelay(d time.Duration) string {
	if d <= 0 {
		return "0ms"
	}

	units := []struct {
		label string
		value time.Duration
	}{
		{"m", time.Minute},
		{"s", time.Second},
		{"ms", time.Millisecond},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0ms"
	}
	return strings.Join(parts, "")
}
