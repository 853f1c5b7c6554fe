// Package klutil collects small generic helpers shared across klayopt's
// packages: panic-on-error unwrapping for unrecoverable setup failures,
// map-with-default lookups, and writer helpers that turn an I/O failure
// into a fatal log line instead of a silently ignored error.
package klutil

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
)

// IfThen returns `a` if the condition is true, otherwise returns `b`.
// Both `a` and `b` are always evaluated before the function is called,
// so avoid using it with expensive operations or values that may be invalid.
func IfThen[T any](condition bool, a, b T) T {
	if condition {
		return a
	}
	return b
}

// WithDefault returns the value for the given key in the map `m` if it exists,
// otherwise returns the provided default value `defVal`.
func WithDefault[K comparable, V any](m map[K]V, key K, defVal V) V {
	if val, exists := m[key]; exists {
		return val
	}
	return defVal
}

// Must unwraps the value `val` if `err` is nil.
// If `err` is non-nil, it panics. Reserved for setup-time failures that
// should never occur given a validated configuration (e.g. building a
// derived table from values already checked elsewhere).
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Must0 panics if the provided error is non-nil.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// CountPair represents a key/count pair extracted from a map[K]float64,
// used when rendering sorted frequency breakdowns.
type CountPair[K comparable] struct {
	Key   K
	Count float64
}

// SortedMap returns the key/value pairs of m sorted descending by value.
func SortedMap[K comparable](m map[K]float64) []CountPair[K] {
	if m == nil {
		return []CountPair[K]{}
	}
	pairs := make([]CountPair[K], 0, len(m))
	for k, v := range m {
		pairs = append(pairs, CountPair[K]{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Count > pairs[j].Count
	})
	return pairs
}

// CloseFile closes a file and logs any error that occurs.
func CloseFile(file *os.File) {
	if err := file.Close(); err != nil {
		log.Printf("error closing file: %v", err)
	}
}

// MustFprintf writes a formatted string to the given writer, logging and
// exiting on error. Reserved for report output where a write failure means
// the process has no usable stdout left.
func MustFprintf(w io.Writer, format string, args ...interface{}) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		log.Fatalf("Fprintf failed: %v", err)
	}
}

// FlushWriter flushes the buffered writer and logs any error that occurs.
func FlushWriter(writer *bufio.Writer) {
	if err := writer.Flush(); err != nil {
		log.Printf("error flushing writer: %v", err)
	}
}

// Warnf writes a warning line to w, or to the standard logger when w is nil.
// Used for the skip-with-warning error path (malformed layout files) so
// library callers can capture diagnostics instead of having them land on
// the process-wide log.
func Warnf(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w == nil {
		log.Printf("%s", msg)
		return
	}
	fmt.Fprintln(w, msg)
}
