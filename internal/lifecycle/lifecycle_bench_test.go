// Package lifecycle_test provides performance benchmarks for lifecycle operations.
// Related: internal/lifecycle/lifecycle.go
// Tags: lifecycle, benchmark, performance

package lifecycle

import (
	"testing"

	"github.com/ariel-frischer/tasknotify/internal/notify"
)

// benchNotifier is a minimal notifier for benchmarking.
type benchNotifier struct{}

func (benchNotifier) NotifyWithContext(string, string, notify.NotificationContext) {}

func BenchmarkRun(b *testing.B) {
	fn := func() error { return nil }

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		_ = Run(benchNotifier{}, testTask, fn)
	}
}

func BenchmarkRunWithoutNotifier(b *testing.B) {
	fn := func() error { return nil }

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		_ = Run(nil, testTask, fn)
	}
}
