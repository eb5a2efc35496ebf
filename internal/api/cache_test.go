package api

import (
	"testing"
	"time"

	"github.com/carscope/carscope/pkg/surface"
)

func TestReportCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewReportCache(2)
	a, b, d := &surface.Summary{Title: "a"}, &surface.Summary{Title: "b"}, &surface.Summary{Title: "d"}

	c.Put("a", a)
	c.Put("b", b)
	if c.Get("a") != a { // a becomes most recent
		t.Fatal("expected a")
	}
	c.Put("d", d)

	if c.Get("b") != nil {
		t.Error("b should have been evicted")
	}
	if c.Get("a") != a || c.Get("d") != d {
		t.Error("a and d should be cached")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestReportCacheReplace(t *testing.T) {
	c := NewReportCache(0)
	c.Put("k", &surface.Summary{HealthScore: 1})
	c.Put("k", &surface.Summary{HealthScore: 2})
	if got := c.Get("k"); got == nil || got.HealthScore != 2 {
		t.Errorf("Get = %+v, want HealthScore 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestReportKeyTracksUpdates(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if reportKey("id", t0) == reportKey("id", t0.Add(time.Millisecond)) {
		t.Error("key should change when the inspection is updated")
	}
	if reportKey("id", t0) != reportKey("id", t0) {
		t.Error("key should be stable")
	}
}
