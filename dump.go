package logging

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
)

const (
	maxDumpDepth    = 10
	maxDumpElements = 10
)

// Dump logs v at Debug level, one line per field, element or map entry.
// Unexported struct fields are skipped, slices are cut after ten elements
// and cycles are reported instead of followed.
func (h *Handle) Dump(v any) {
	l := h.load()
	if l == nil || l.GetLevel() > zerolog.DebugLevel {
		return
	}
	d := dumper{logger: l, visited: make(map[uintptr]bool)}
	if v == nil {
		l.Debug().Msg("Dump: <nil>")
		return
	}
	d.value(reflect.ValueOf(v), emptyString, 0)
}

type dumper struct {
	logger  *zerolog.Logger
	visited map[uintptr]bool
}

func (d dumper) line(format string, args ...any) {
	d.logger.Debug().Msgf(format, args...)
}

func (d dumper) value(val reflect.Value, prefix string, depth int) {
	if depth > maxDumpDepth {
		d.line("%s: <max depth reached>", prefix)
		return
	}

	for val.Kind() == reflect.Interface || val.Kind() == reflect.Ptr {
		if val.IsNil() {
			d.line("%s: <nil>", prefix)
			return
		}
		if val.Kind() == reflect.Ptr {
			ptr := val.Pointer()
			if d.visited[ptr] {
				d.line("%s: <circular reference>", prefix)
				return
			}
			d.visited[ptr] = true
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		d.line("%s: <invalid>", prefix)
		return
	}

	typ := val.Type()
	switch val.Kind() {
	case reflect.Struct:
		if prefix == emptyString {
			d.line("Struct: %s", typ.Name())
		} else {
			d.line("%s: %s {", prefix, typ.Name())
		}
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if prefix != emptyString {
				name = prefix + "." + name
			}
			d.value(val.Field(i), name, depth+1)
		}
		if prefix != emptyString {
			d.line("%s: }", prefix)
		}

	case reflect.Map:
		d.line("%s: map[%s]%s (len: %d) {", prefix, typ.Key(), typ.Elem(), val.Len())
		iter := val.MapRange()
		for iter.Next() {
			d.value(iter.Value(), fmt.Sprintf("%s[%v]", prefix, iter.Key()), depth+1)
		}
		d.line("%s: }", prefix)

	case reflect.Slice, reflect.Array:
		d.line("%s: %s (len: %d) {", prefix, typ, val.Len())
		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			d.value(val.Index(i), fmt.Sprintf("%s[%d]", prefix, i), depth+1)
		}
		if val.Len() > maxDumpElements {
			d.line("%s: ... (%d more elements)", prefix, val.Len()-maxDumpElements)
		}
		d.line("%s: }", prefix)

	default:
		if val.CanInterface() {
			d.line("%s: %v", prefix, val.Interface())
		} else {
			d.line("%s: %v", prefix, val)
		}
	}
}
