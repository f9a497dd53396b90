package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644

	// maxRotatedSuffix bounds the ".N" suffixes tried for one rotated name.
	maxRotatedSuffix = 1000
)

// RollingFile is a size-triggered rotating file. Writes and rotation are
// serialised by one mutex, so a rotation is never started while another is
// running. Rotation and retention failures go to the error handler and the
// active file keeps receiving writes.
type RollingFile struct {
	name    string
	policy  *RolloverPolicy
	now     func() time.Time
	onError func(error)

	mu        sync.Mutex
	file      *os.File
	size      int64
	rotations int
	closed    bool
}

// RollingOption configures a RollingFile.
type RollingOption func(*RollingFile)

// WithClock replaces time.Now for rotated names and retention ages.
func WithClock(now func() time.Time) RollingOption {
	return func(r *RollingFile) {
		if now != nil {
			r.now = now
		}
	}
}

// WithErrorHandler receives rotation and retention failures. The handler
// must not write to the same RollingFile.
func WithErrorHandler(fn func(error)) RollingOption {
	return func(r *RollingFile) { r.onError = fn }
}

// NewRollingFile opens (creating parents as needed) the policy's primary path.
func NewRollingFile(name string, policy *RolloverPolicy, opts ...RollingOption) (*RollingFile, error) {
	if policy == nil {
		return nil, configError("PrimaryPath", errors.New("nil rollover policy"))
	}
	if err := checkPath(policy.PrimaryPath); err != nil {
		return nil, configError("PrimaryPath", err)
	}

	r := &RollingFile{name: name, policy: policy, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if err := r.open(); err != nil {
		return nil, configError("PrimaryPath", err)
	}
	return r, nil
}

func checkPath(path string) error {
	switch {
	case path == emptyString:
		return errors.New("path is empty")
	case strings.ContainsRune(path, 0):
		return errors.New("path contains a null byte")
	case strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`):
		return fmt.Errorf("path %q is a directory", path)
	}
	return nil
}

func (r *RollingFile) Name() string          { return r.name }
func (r *RollingFile) Kind() DestinationKind { return KindRollingFile }

// Path returns the active file path.
func (r *RollingFile) Path() string { return r.policy.PrimaryPath }

// Size returns the number of bytes in the active file.
func (r *RollingFile) Size() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Rotations returns how many rotations completed since the file was opened.
func (r *RollingFile) Rotations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotations
}

// open opens the active file in append mode. The caller must hold mu or own r exclusively.
func (r *RollingFile) open() error {
	if err := os.MkdirAll(filepath.Dir(r.policy.PrimaryPath), dirMode); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(r.policy.PrimaryPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	r.file = f
	r.size = info.Size()
	return nil
}

// Write appends p to the active file, rotating first when the file has
// reached the size threshold.
func (r *RollingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, ErrDestinationClosed
	}
	if r.policy.ShouldRotate(r.size) {
		r.report(r.rotate())
	}
	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Rotate forces a rotation regardless of size.
func (r *RollingFile) Rotate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrDestinationClosed
	}
	return r.rotate()
}

// rotate moves the active file aside and opens a fresh one. The caller must hold mu.
func (r *RollingFile) rotate() error {
	primary := r.policy.PrimaryPath
	target, err := r.nextRotatedPath()
	if err != nil {
		return &RotationIOError{Op: "stat", Path: target, Err: err}
	}

	if r.file != nil {
		_ = r.file.Sync()
		if err := r.file.Close(); err != nil {
			r.file = nil
			return &RotationIOError{Op: "close", Path: primary, Err: err}
		}
		r.file = nil
	}

	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return r.reopenAfter(&RotationIOError{Op: "mkdir", Path: target, Err: err})
	}
	if err := os.Rename(primary, target); err != nil {
		return r.reopenAfter(&RotationIOError{Op: "rename", Path: target, Err: err})
	}
	r.rotations++

	if err := r.open(); err != nil {
		return &RotationIOError{Op: "open", Path: primary, Err: err}
	}
	return r.prune()
}

// reopenAfter reopens the active file after a failed rename so logging goes on.
func (r *RollingFile) reopenAfter(cause *RotationIOError) error {
	if err := r.open(); err != nil {
		cause.Err = errors.Join(cause.Err, err)
	}
	return cause
}

// nextRotatedPath renders the rotated name and appends ".N" until the name is
// unused, so consecutive rotations within one timestamp tick stay distinct.
// Any stat failure other than "does not exist" ends the search.
func (r *RollingFile) nextRotatedPath() (string, error) {
	base := r.policy.RotatedPath(r.now(), r.rotations+1)
	candidate := base
	for i := 1; i <= maxRotatedSuffix; i++ {
		_, err := os.Lstat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return candidate, err
		}
		candidate = base + "." + strconv.Itoa(i)
	}
	return base, fmt.Errorf("no free rotated name after %d attempts", maxRotatedSuffix)
}

// prune applies the retention rule to the retention directory.
func (r *RollingFile) prune() error {
	dir := r.policy.RetentionDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &RotationIOError{Op: "list", Path: dir, Err: err}
	}

	files := make([]FileStat, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileStat{Path: filepath.Join(dir, e.Name()), ModTime: info.ModTime()})
	}

	var errs []error
	for _, path := range r.policy.SelectForDeletion(files, r.now()) {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, &RotationIOError{Op: "delete", Path: path, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (r *RollingFile) report(err error) {
	if err == nil || r.onError == nil {
		return
	}
	defer func() { _ = recover() }()
	r.onError(err)
}

// Close syncs and closes the active file. Further writes fail with ErrDestinationClosed.
func (r *RollingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.file == nil {
		return nil
	}
	_ = r.file.Sync()
	err := r.file.Close()
	r.file = nil
	return err
}
