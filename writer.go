package logging

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

var linePool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 256)
		return &b
	},
}

// patternWriter turns zerolog's JSON events into lines rendered by a Layout.
// Zerolog issues exactly one Write per event.
type patternWriter struct {
	layout *Layout
	out    io.Writer
	now    func() time.Time
}

func newPatternWriter(layout *Layout, out io.Writer) *patternWriter {
	return &patternWriter{layout: layout, out: out, now: time.Now}
}

func (w *patternWriter) Write(p []byte) (int, error) {
	evt := map[string]interface{}{}
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	if err := dec.Decode(&evt); err != nil {
		// Not a zerolog event; pass it through untouched.
		return w.out.Write(p)
	}

	bp := linePool.Get().(*[]byte)
	line := w.layout.Append((*bp)[:0], w.record(evt))
	_, err := w.out.Write(line)
	*bp = line
	linePool.Put(bp)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *patternWriter) record(evt map[string]interface{}) Record {
	r := Record{Time: w.eventTime(evt[zerolog.TimestampFieldName])}
	delete(evt, zerolog.TimestampFieldName)

	if v, ok := evt[zerolog.LevelFieldName].(string); ok {
		r.Level = v
	}
	delete(evt, zerolog.LevelFieldName)

	if v, ok := evt[zerolog.MessageFieldName].(string); ok {
		r.Message = v
	}
	delete(evt, zerolog.MessageFieldName)

	if v, ok := evt[loggerFieldName].(string); ok {
		r.Logger = v
	}
	delete(evt, loggerFieldName)

	if v, ok := evt[zerolog.CallerFieldName].(string); ok {
		r.File, r.Line = splitCaller(v)
	}
	delete(evt, zerolog.CallerFieldName)

	r.Fields = formatFields(evt)
	return r
}

func (w *patternWriter) eventTime(v interface{}) time.Time {
	switch t := v.(type) {
	case string:
		if ts, err := time.Parse(zerolog.TimeFieldFormat, t); err == nil {
			return ts
		}
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			break
		}
		switch zerolog.TimeFieldFormat {
		case zerolog.TimeFormatUnixMs:
			return time.UnixMilli(n)
		case zerolog.TimeFormatUnixMicro:
			return time.UnixMicro(n)
		case zerolog.TimeFormatUnixNano:
			return time.Unix(0, n)
		default:
			return time.Unix(n, 0)
		}
	}
	return w.now()
}

// splitCaller splits zerolog's "path/file.go:42" caller into base name and line.
func splitCaller(caller string) (string, int) {
	i := strings.LastIndexByte(caller, ':')
	if i < 0 {
		return baseName(caller), 0
	}
	line, _ := strconv.Atoi(caller[i+1:])
	return baseName(caller[:i]), line
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func formatFields(evt map[string]interface{}) string {
	if len(evt) == 0 {
		return emptyString
	}
	keys := make([]string, 0, len(evt))
	for k := range evt {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		switch v := evt[k].(type) {
		case string:
			if strings.ContainsAny(v, " \t\"=") {
				b.WriteString(strconv.Quote(v))
			} else {
				b.WriteString(v)
			}
		case json.Number:
			b.WriteString(v.String())
		case nil:
			b.WriteString("null")
		case bool, float64:
			fmt.Fprint(&b, v)
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				fmt.Fprint(&b, v)
			} else {
				b.Write(raw)
			}
		}
	}
	return b.String()
}
