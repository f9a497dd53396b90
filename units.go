package logging

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
)

// ByteSize is a size in bytes. Textual forms follow log4j's FileSize:
// "10" is ten bytes, "10KB" and "10K" are binary kilobytes, and so on.
// DefaultRotationSize is 10 MiB, not the bare "10".
type ByteSize int64

// Binary size units.
const (
	KiB ByteSize = units.KiB
	MiB ByteSize = units.MiB
	GiB ByteSize = units.GiB
)

// ParseByteSize parses s into a ByteSize.
func ParseByteSize(s string) (ByteSize, error) {
	n, err := units.RAMInBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return ByteSize(n), nil
}

func (b ByteSize) String() string { return units.BytesSize(float64(b)) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *ByteSize) UnmarshalText(text []byte) error {
	v, err := ParseByteSize(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseRetentionAge accepts ISO-8601 durations limited to days and time
// parts ("P7D", "PT12H", "P1DT30M") as well as Go duration strings ("168h").
func ParseRetentionAge(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == emptyString {
		return 0, fmt.Errorf("empty retention age")
	}
	if s[0] != 'P' && s[0] != 'p' {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid retention age %q: %w", s, err)
		}
		return d, nil
	}
	return parseISODuration(s)
}

func parseISODuration(s string) (time.Duration, error) {
	var (
		total   time.Duration
		inTime  bool
		num     strings.Builder
		matched bool
	)
	for _, r := range strings.ToUpper(s[1:]) {
		switch {
		case r >= '0' && r <= '9':
			num.WriteRune(r)
			continue
		case r == 'T':
			if inTime || num.Len() > 0 {
				return 0, fmt.Errorf("invalid retention age %q", s)
			}
			inTime = true
			continue
		}
		if num.Len() == 0 {
			return 0, fmt.Errorf("invalid retention age %q", s)
		}
		n, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid retention age %q: %w", s, err)
		}
		num.Reset()

		var unit time.Duration
		switch {
		case !inTime && r == 'W':
			unit = 7 * 24 * time.Hour
		case !inTime && r == 'D':
			unit = 24 * time.Hour
		case inTime && r == 'H':
			unit = time.Hour
		case inTime && r == 'M':
			unit = time.Minute
		case inTime && r == 'S':
			unit = time.Second
		default:
			return 0, fmt.Errorf("invalid retention age %q: unsupported unit %q", s, r)
		}
		total += time.Duration(n) * unit
		matched = true
	}
	if !matched || num.Len() > 0 {
		return 0, fmt.Errorf("invalid retention age %q", s)
	}
	return total, nil
}
