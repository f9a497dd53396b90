package logging

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// segment kinds of a compiled pattern.
const (
	segLiteral byte = iota
	segDate
	segLevel
	segCategory
	segLine
	segFile
	segMessage
	segNewline
	segIndex
)

type segment struct {
	kind    byte
	literal string
	// layout is the Go time layout for segDate.
	layout string
	// depth is the %c{N} precision; 0 keeps the full identity.
	depth int
	width int
	left  bool
}

// Layout is a compiled log4j-style line pattern. It supports %d{fmt}, %p,
// %c{N}, %L, %F, %m, %n and %% together with width/alignment modifiers such
// as %-5p.
type Layout struct {
	pattern  string
	segments []segment
}

// Record is the data a Layout renders for one log event.
type Record struct {
	Time    time.Time
	Level   string
	Logger  string
	File    string
	Line    int
	Message string
	Fields  string
}

// CompileLayout compiles a line pattern.
func CompileLayout(pattern string) (*Layout, error) {
	segs, err := compile(pattern, "dpcLFmn")
	if err != nil {
		return nil, err
	}
	return &Layout{pattern: pattern, segments: segs}, nil
}

// Pattern returns the source pattern.
func (l *Layout) Pattern() string { return l.pattern }

// Append renders r onto buf.
func (l *Layout) Append(buf []byte, r Record) []byte {
	for _, s := range l.segments {
		switch s.kind {
		case segLiteral:
			buf = append(buf, s.literal...)
		case segDate:
			buf = pad(buf, r.Time.Format(s.layout), s)
		case segLevel:
			buf = pad(buf, strings.ToUpper(r.Level), s)
		case segCategory:
			buf = pad(buf, shortenCategory(r.Logger, s.depth), s)
		case segLine:
			buf = pad(buf, strconv.Itoa(r.Line), s)
		case segFile:
			buf = pad(buf, r.File, s)
		case segMessage:
			msg := r.Message
			if r.Fields != emptyString {
				if msg != emptyString {
					msg += " "
				}
				msg += r.Fields
			}
			buf = pad(buf, msg, s)
		case segNewline:
			buf = append(buf, '\n')
		}
	}
	return buf
}

// namePattern renders rotated file names: %d{fmt}, %i and %%.
type namePattern struct {
	pattern  string
	segments []segment
	hasDate  bool
	hasIndex bool
}

func compileNamePattern(pattern string) (*namePattern, error) {
	segs, err := compile(pattern, "di")
	if err != nil {
		return nil, err
	}
	np := &namePattern{pattern: pattern, segments: segs}
	for _, s := range segs {
		switch s.kind {
		case segDate:
			np.hasDate = true
		case segIndex:
			np.hasIndex = true
		}
	}
	return np, nil
}

func (p *namePattern) render(now time.Time, seq int) string {
	var b strings.Builder
	for _, s := range p.segments {
		switch s.kind {
		case segLiteral:
			b.WriteString(s.literal)
		case segDate:
			b.WriteString(now.Format(s.layout))
		case segIndex:
			b.WriteString(strconv.Itoa(seq))
		}
	}
	return b.String()
}

func compile(pattern, allowed string) ([]segment, error) {
	var (
		segs []segment
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{kind: segLiteral, literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			lit.WriteByte(c)
			continue
		}
		i++
		if i >= len(pattern) {
			return nil, fmt.Errorf("pattern %q: dangling %%", pattern)
		}
		if pattern[i] == '%' {
			lit.WriteByte('%')
			continue
		}

		var s segment
		if pattern[i] == '-' {
			s.left = true
			i++
		}
		start := i
		for i < len(pattern) && pattern[i] >= '0' && pattern[i] <= '9' {
			i++
		}
		if i > start {
			s.width, _ = strconv.Atoi(pattern[start:i])
		}
		if i >= len(pattern) {
			return nil, fmt.Errorf("pattern %q: missing conversion", pattern)
		}

		conv := pattern[i]
		if !strings.ContainsRune(allowed, rune(conv)) {
			return nil, fmt.Errorf("pattern %q: unsupported conversion %%%c", pattern, conv)
		}

		var arg string
		if i+1 < len(pattern) && pattern[i+1] == '{' {
			end := strings.IndexByte(pattern[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("pattern %q: unterminated {", pattern)
			}
			arg = pattern[i+2 : i+1+end]
			i += end + 1
		}

		switch conv {
		case 'd':
			s.kind = segDate
			if arg == emptyString {
				arg = "yyyy-MM-dd HH:mm:ss,SSS"
			}
			s.layout = javaDateLayout(arg)
		case 'p':
			s.kind = segLevel
		case 'c':
			s.kind = segCategory
			if arg != emptyString {
				n, err := strconv.Atoi(arg)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("pattern %q: invalid %%c precision %q", pattern, arg)
				}
				s.depth = n
			}
		case 'L':
			s.kind = segLine
		case 'F':
			s.kind = segFile
		case 'm':
			s.kind = segMessage
		case 'n':
			s.kind = segNewline
		case 'i':
			s.kind = segIndex
		}
		flush()
		segs = append(segs, s)
	}
	flush()
	return segs, nil
}

func pad(buf []byte, v string, s segment) []byte {
	n := s.width - len(v)
	if n <= 0 {
		return append(buf, v...)
	}
	if s.left {
		buf = append(buf, v...)
		return append(buf, strings.Repeat(" ", n)...)
	}
	buf = append(buf, strings.Repeat(" ", n)...)
	return append(buf, v...)
}

// shortenCategory keeps the right-most depth components of a dotted or
// slashed identity.
func shortenCategory(name string, depth int) string {
	if depth <= 0 || name == emptyString {
		return name
	}
	end := len(name)
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' || name[i] == '/' {
			depth--
			if depth == 0 {
				return name[i+1 : end]
			}
		}
	}
	return name
}

// javaDateLayout converts a java.text.SimpleDateFormat pattern to a Go
// time layout. Quoted text is copied verbatim.
func javaDateLayout(p string) string {
	var b strings.Builder
	for i := 0; i < len(p); {
		c := p[i]
		if c == '\'' {
			i = quoted(&b, p, i)
			continue
		}

		j := i
		for j < len(p) && p[j] == c {
			j++
		}
		n := j - i
		switch c {
		case 'y':
			if n == 2 {
				b.WriteString("06")
			} else {
				b.WriteString("2006")
			}
		case 'M':
			switch {
			case n >= 4:
				b.WriteString("January")
			case n == 3:
				b.WriteString("Jan")
			case n == 2:
				b.WriteString("01")
			default:
				b.WriteString("1")
			}
		case 'd':
			if n >= 2 {
				b.WriteString("02")
			} else {
				b.WriteString("2")
			}
		case 'H':
			b.WriteString("15")
		case 'h':
			if n >= 2 {
				b.WriteString("03")
			} else {
				b.WriteString("3")
			}
		case 'm':
			if n >= 2 {
				b.WriteString("04")
			} else {
				b.WriteString("4")
			}
		case 's':
			if n >= 2 {
				b.WriteString("05")
			} else {
				b.WriteString("5")
			}
		case 'S':
			b.WriteString(strings.Repeat("0", n))
		case 'E':
			if n >= 4 {
				b.WriteString("Monday")
			} else {
				b.WriteString("Mon")
			}
		case 'a':
			b.WriteString("PM")
		case 'z':
			b.WriteString("MST")
		case 'Z':
			b.WriteString("-0700")
		case 'X':
			b.WriteString("Z07:00")
		default:
			b.WriteString(p[i:j])
		}
		i = j
	}
	return b.String()
}

// quoted copies the quoted run starting at p[i] and returns the index after
// it. Two adjacent single quotes stand for one, inside or outside quotes.
func quoted(b *strings.Builder, p string, i int) int {
	if i+1 < len(p) && p[i+1] == '\'' {
		b.WriteByte('\'')
		return i + 2
	}
	for i++; i < len(p); i++ {
		if p[i] != '\'' {
			b.WriteByte(p[i])
			continue
		}
		if i+1 < len(p) && p[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		return i + 1
	}
	return i
}
