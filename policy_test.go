package logging

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicy(t *testing.T, opts ...Option) *RolloverPolicy {
	t.Helper()
	p, err := NewRolloverPolicy(NewConfig(opts...))
	require.NoError(t, err)
	return p
}

func TestNewRolloverPolicy(t *testing.T) {
	t.Run("derived from config", func(t *testing.T) {
		p := newTestPolicy(t, WithPath("logs/app.log"), WithRotationSize(100), WithRetention(time.Hour, 1, 3))

		assert.Equal(t, int64(100), p.Threshold)
		assert.Equal(t, filepath.Clean("logs/app.log"), p.PrimaryPath)
		assert.Equal(t, "logs", p.RetentionDir)
		assert.Equal(t, "app.log*", p.DeletionPattern)
		assert.Equal(t, time.Hour, p.RetentionAge)
		assert.Equal(t, 1, p.MinFiles)
		assert.Equal(t, 3, p.MaxFiles)
	})

	t.Run("rotated files in another directory", func(t *testing.T) {
		p := newTestPolicy(t, WithPath("logs/app.log"), WithRotatedPathPattern("archive/app.log.%d{yyyyMMdd}"))
		assert.Equal(t, "archive", p.RetentionDir)
	})

	t.Run("dated directory falls back to the primary's", func(t *testing.T) {
		p := newTestPolicy(t, WithPath("logs/app.log"), WithRotatedPathPattern("logs/%d{yyyy-MM}/app.log"))
		assert.Equal(t, "logs", p.RetentionDir)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewRolloverPolicy(NewConfig(WithRetention(time.Hour, 3, 2)))
		var cfgErr *ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestRolloverPolicy_ShouldRotate(t *testing.T) {
	p := newTestPolicy(t, WithRotationSize(100))
	assert.False(t, p.ShouldRotate(0))
	assert.False(t, p.ShouldRotate(99))
	assert.True(t, p.ShouldRotate(100))
	assert.True(t, p.ShouldRotate(250))
}

func TestRolloverPolicy_Matches(t *testing.T) {
	p := newTestPolicy(t, WithPath("logs/app.log"))

	assert.False(t, p.Matches("logs/app.log"), "active file is never a retention candidate")
	assert.True(t, p.Matches("logs/app.log.2026-10-16.10:00:00"))
	assert.True(t, p.Matches("logs/app.log.2026-10-16.10:00:00.1"))
	assert.False(t, p.Matches("logs/other.log.2026-10-16.10:00:00"))
}

func TestRolloverPolicy_SelectForDeletion(t *testing.T) {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	at := func(ago time.Duration) time.Time { return now.Add(-ago) }
	files := func(ages ...time.Duration) []FileStat {
		out := make([]FileStat, len(ages))
		for i, a := range ages {
			out[i] = FileStat{Path: filepath.Join("logs", "app.log."+string(rune('a'+i))), ModTime: at(a)}
		}
		return out
	}
	day := 24 * time.Hour

	tests := []struct {
		name     string
		age      time.Duration
		min, max int
		files    []FileStat
		want     []string
	}{
		{
			name: "nothing to do",
			age:  7 * day, min: 1, max: 3,
			files: files(time.Hour, 2*time.Hour),
		},
		{
			name: "count cap removes oldest",
			age:  7 * day, min: 1, max: 3,
			files: files(time.Hour, 4*time.Hour, 2*time.Hour, 3*time.Hour, 5*time.Hour),
			want:  []string{"logs/app.log.e", "logs/app.log.b"},
		},
		{
			name: "expired files go down to min",
			age:  day, min: 2, max: 10,
			files: files(3*day, 2*day, 4*day, time.Hour),
			want:  []string{"logs/app.log.c", "logs/app.log.a"},
		},
		{
			name: "expired but at min stays",
			age:  day, min: 3, max: 10,
			files: files(3*day, 2*day, 4*day),
		},
		{
			name: "young files stop age deletion",
			age:  day, min: 0, max: 10,
			files: files(2*day, time.Hour, 3*day),
			want:  []string{"logs/app.log.c", "logs/app.log.a"},
		},
		{
			name: "zero age keeps old files under the cap",
			age:  0, min: 0, max: 2,
			files: files(30*day, 20*day),
		},
		{
			name: "foreign and active files ignored",
			age:  day, min: 0, max: 1,
			files: []FileStat{
				{Path: "logs/app.log", ModTime: at(9 * day)},
				{Path: "logs/other.txt", ModTime: at(9 * day)},
				{Path: "logs/app.log.1", ModTime: at(time.Hour)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPolicy(t, WithPath("logs/app.log"), WithRetention(tt.age, tt.min, tt.max))
			got := p.SelectForDeletion(tt.files, now)

			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.FromSlash(w)
			}
			if len(want) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestRolloverPolicy_SelectForDeletionIgnoresInputOrder(t *testing.T) {
	now := time.Now()
	p := newTestPolicy(t, WithPath("logs/app.log"), WithRetention(time.Hour, 1, 3))

	var files []FileStat
	for i := 0; i < 8; i++ {
		files = append(files, FileStat{
			Path:    filepath.Join("logs", "app.log."+string(rune('a'+i))),
			ModTime: now.Add(-time.Duration(i%4) * 40 * time.Minute),
		})
	}
	want := p.SelectForDeletion(files, now)
	require.NotEmpty(t, want)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]FileStat(nil), files...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, p.SelectForDeletion(shuffled, now))
	}
}
