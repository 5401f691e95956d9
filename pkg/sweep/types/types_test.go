package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScanResultStats(t *testing.T) {
	r := &ScanResult{
		Matches:     []string{"/a/target", "/b/target"},
		DirsScanned: 12,
		Elapsed:     1500 * time.Millisecond,
		Errors:      []ScanError{{Path: "/c", Error: "permission denied"}},
	}

	stats := r.Stats()
	assert.Equal(t, 2, stats.Found)
	assert.Equal(t, int64(12), stats.Dirs)
	assert.Equal(t, 1, stats.Errors)
	assert.InDelta(t, 1.5, stats.Seconds(), 0.0001)
}

func TestRunStatsSummary(t *testing.T) {
	tests := []struct {
		name  string
		stats RunStats
		want  string
	}{
		{"plural", RunStats{Found: 3, Elapsed: 420 * time.Millisecond}, "Found 3 target folders (0.42s)"},
		{"singular", RunStats{Found: 1, Elapsed: 2 * time.Second}, "Found 1 target folder (2.00s)"},
		{"none", RunStats{}, "Found 0 target folders (0.00s)"},
		{"thousands", RunStats{Found: 1234, Elapsed: time.Second}, "Found 1,234 target folders (1.00s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.Summary())
		})
	}
}

func TestRunStatsDetail(t *testing.T) {
	assert.Equal(t, "1,500 dirs scanned", RunStats{Dirs: 1500}.Detail())
	assert.Equal(t, "10 dirs scanned, 2 unreadable", RunStats{Dirs: 10, Errors: 2}.Detail())
}
