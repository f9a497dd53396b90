package logging

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// RolloverPolicy is the concrete rotation trigger and retention rule derived
// from a SinkConfiguration.
type RolloverPolicy struct {
	Threshold       int64
	PrimaryPath     string
	RetentionDir    string
	DeletionPattern string
	RetentionAge    time.Duration
	MinFiles        int
	MaxFiles        int

	rotated *namePattern
}

// FileStat is the part of a directory entry retention looks at.
type FileStat struct {
	Path    string
	ModTime time.Time
}

// NewRolloverPolicy derives the policy from cfg. cfg is validated first.
func NewRolloverPolicy(cfg SinkConfiguration) (*RolloverPolicy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	np, err := compileNamePattern(cfg.RotatedPathPattern)
	if err != nil {
		return nil, configError("RotatedPathPattern", err)
	}

	primary := filepath.Clean(cfg.PrimaryPath)
	dir := filepath.Dir(primary)
	if rd := filepath.Dir(cfg.RotatedPathPattern); !strings.ContainsRune(rd, '%') {
		dir = filepath.Clean(rd)
	}

	return &RolloverPolicy{
		Threshold:       int64(cfg.RotationSizeThreshold),
		PrimaryPath:     primary,
		RetentionDir:    dir,
		DeletionPattern: cfg.DeletionNamePattern,
		RetentionAge:    cfg.RetentionAge,
		MinFiles:        cfg.MinFiles,
		MaxFiles:        cfg.MaxFiles,
		rotated:         np,
	}, nil
}

// ShouldRotate reports whether an active file of the given size must be
// rotated before the next write.
func (p *RolloverPolicy) ShouldRotate(size int64) bool {
	return p.Threshold > 0 && size >= p.Threshold
}

// RotatedPath renders the rotated path pattern for now and sequence seq.
func (p *RolloverPolicy) RotatedPath(now time.Time, seq int) string {
	return filepath.Clean(p.rotated.render(now, seq))
}

// Matches reports whether path is a rotated file subject to retention.
func (p *RolloverPolicy) Matches(path string) bool {
	if filepath.Clean(path) == p.PrimaryPath {
		return false
	}
	ok, err := filepath.Match(p.DeletionPattern, filepath.Base(path))
	return err == nil && ok
}

// SelectForDeletion returns the paths to delete, oldest first. Files older
// than RetentionAge go while more than MinFiles remain; beyond MaxFiles the
// oldest go regardless of age. The result depends only on the input set.
func (p *RolloverPolicy) SelectForDeletion(files []FileStat, now time.Time) []string {
	candidates := make([]FileStat, 0, len(files))
	for _, f := range files {
		if p.Matches(f.Path) {
			candidates = append(candidates, f)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ModTime.Equal(candidates[j].ModTime) {
			return candidates[i].Path < candidates[j].Path
		}
		return candidates[i].ModTime.Before(candidates[j].ModTime)
	})

	var victims []string
	count := len(candidates)
	for _, f := range candidates {
		if count <= p.MinFiles {
			break
		}
		overCap := count > p.MaxFiles
		expired := p.RetentionAge > 0 && now.Sub(f.ModTime) >= p.RetentionAge
		if !overCap && !expired {
			break
		}
		victims = append(victims, f.Path)
		count--
	}
	return victims
}
