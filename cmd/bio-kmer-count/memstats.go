package main

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// memStats records the peak memory use of the process. The global kmer map
// dominates it, so the peak is what matters for sizing a run.
type memStats struct {
	mu          sync.Mutex
	samples     int
	peakHeap    uint64 // max runtime.MemStats.HeapAlloc
	peakSys     uint64 // max runtime.MemStats.Sys
	allocated   uint64 // runtime.MemStats.TotalAlloc at the last sample
	collections uint32 // runtime.MemStats.NumGC at the last sample
}

func mib(n uint64) float64 { return float64(n) / (1 << 20) }

func (m *memStats) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("peak heap %.1fMiB, peak sys %.1fMiB, allocated %.1fMiB, %d GCs (%d samples)",
		mib(m.peakHeap), mib(m.peakSys), mib(m.allocated), m.collections, m.samples)
}

// sample reads the runtime memory statistics and raises the peaks.
func (m *memStats) sample() {
	var s runtime.MemStats
	runtime.ReadMemStats(&s)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples++
	if s.HeapAlloc > m.peakHeap {
		m.peakHeap = s.HeapAlloc
	}
	if s.Sys > m.peakSys {
		m.peakSys = s.Sys
	}
	m.allocated = s.TotalAlloc
	m.collections = s.NumGC
}

// poll samples every interval until done is closed.
func (m *memStats) poll(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			m.sample()
		}
	}
}
