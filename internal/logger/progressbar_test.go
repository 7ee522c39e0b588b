package logger

import (
	"strings"
	"sync"
	"testing"
)

func TestProgressBarRender(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		width    int
		expected string
	}{
		{name: "empty", current: 0, total: 10, width: 10, expected: "[          ] 0/10 (0%)"},
		{name: "half", current: 5, total: 10, width: 10, expected: "[=====     ] 5/10 (50%)"},
		{name: "full", current: 10, total: 10, width: 10, expected: "[==========] 10/10 (100%)"},
		{name: "one of three", current: 1, total: 3, width: 6, expected: "[=     ] 1/3 (33%)"},
		{name: "zero total", current: 0, total: 0, width: 4, expected: "[    ] 0/0 (0%)"},
		{name: "overflow clamps", current: 12, total: 10, width: 5, expected: "[=====] 12/10 (100%)"},
		{name: "invalid width defaults", current: 10, total: 10, width: 0, expected: "[==========] 10/10 (100%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := NewProgressBar(tt.total, tt.width, false)
			pb.Update(tt.current)
			if got := pb.Render(); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestProgressBarPercentage(t *testing.T) {
	pb := NewProgressBar(4, 10, false)
	if pb.Percentage() != 0 {
		t.Errorf("expected 0%%, got %d", pb.Percentage())
	}
	pb.Increment()
	if pb.Percentage() != 25 {
		t.Errorf("expected 25%%, got %d", pb.Percentage())
	}
	pb.Update(-3)
	if pb.Percentage() != 0 {
		t.Errorf("negative progress should clamp to 0, got %d", pb.Percentage())
	}
}

func TestProgressBarConcurrentIncrement(t *testing.T) {
	pb := NewProgressBar(100, 20, false)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pb.Increment()
			_ = pb.Render()
		}()
	}
	wg.Wait()

	if !strings.HasSuffix(pb.Render(), "100/100 (100%)") {
		t.Errorf("expected complete bar, got %q", pb.Render())
	}
}
