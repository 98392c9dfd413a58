package internal

import (
	"log/slog"
	"runtime"
	"sync"
)

const (
	LevelTrace slog.Level = slog.LevelDebug - 2
)

var (
	memstats    runtime.MemStats
	lastAllocs  uint64
	lastMallocs uint64
	allocmu     sync.Mutex
)

// LogAllocs prints heap allocation deltas since the last call if any
// allocation happened. Used by the debugheaplog logger.
func LogAllocs(msg string) {
	allocmu.Lock()
	defer allocmu.Unlock()
	runtime.ReadMemStats(&memstats)
	if memstats.TotalAlloc == lastAllocs {
		return
	}
	print("[ALLOC] ", msg)
	print(" inc=", int64(memstats.TotalAlloc)-int64(lastAllocs))
	print(" n=", int64(memstats.Mallocs)-int64(lastMallocs))
	print(" heap=", memstats.HeapAlloc)
	print(" tot=", memstats.TotalAlloc)
	println()
	lastAllocs = memstats.TotalAlloc
	lastMallocs = memstats.Mallocs
}
