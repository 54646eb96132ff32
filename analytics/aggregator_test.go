package analytics

import (
	"math"
	"testing"
	"time"
)

func mkVisit(t time.Time, path, ua, sid string, dur int) Visit {
	return Visit{CreatedAt: t, Path: path, UserAgent: ua, SessionID: sid, DurationSec: dur}
}

func TestClampDuration(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{"negative", -5, 0},
		{"too large", 999999, 3600},
		{"nan", math.NaN(), 0},
		{"positive inf", math.Inf(1), 0},
		{"negative inf", math.Inf(-1), 0},
		{"in range", 42, 42},
		{"fractional truncates", 12.9, 12},
		{"zero", 0, 0},
		{"exact max", 3600, 3600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDuration(tt.in); got != tt.want {
				t.Errorf("ClampDuration(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDayBuckets(t *testing.T) {
	loc := time.UTC
	// January has 31 days; visits on days 1, 1, 3, 31.
	visits := []Visit{
		mkVisit(time.Date(2025, time.January, 1, 10, 0, 0, 0, loc), "/", "", "", 0),
		mkVisit(time.Date(2025, time.January, 1, 23, 59, 0, 0, loc), "/cars", "", "", 0),
		mkVisit(time.Date(2025, time.January, 3, 0, 0, 1, 0, loc), "/", "", "", 0),
		mkVisit(time.Date(2025, time.January, 31, 12, 0, 0, 0, loc), "/", "", "", 0),
		// Outside the month, must be ignored.
		mkVisit(time.Date(2025, time.February, 1, 0, 0, 0, 0, loc), "/", "", "", 0),
	}

	buckets := DayBuckets(visits, 2025, time.January, loc)
	if len(buckets) != 31 {
		t.Fatalf("expected 31 buckets, got %d", len(buckets))
	}
	if buckets[0] != 2 {
		t.Errorf("day 1 = %d, want 2", buckets[0])
	}
	if buckets[2] != 1 {
		t.Errorf("day 3 = %d, want 1", buckets[2])
	}
	if buckets[30] != 1 {
		t.Errorf("day 31 = %d, want 1", buckets[30])
	}
	total := 0
	for _, b := range buckets {
		total += b
	}
	if total != 4 {
		t.Errorf("bucket sum = %d, want 4", total)
	}
}

func TestDayBucketsEmptyWindow(t *testing.T) {
	buckets := DayBuckets(nil, 2025, time.February, time.UTC)
	if len(buckets) != 28 {
		t.Fatalf("expected 28 buckets for Feb 2025, got %d", len(buckets))
	}
	for i, b := range buckets {
		if b != 0 {
			t.Errorf("bucket %d = %d, want 0", i, b)
		}
	}
}

func TestUniqueVisitorsExcludesSessionless(t *testing.T) {
	now := time.Now()
	visits := []Visit{
		mkVisit(now, "/", "ua", "s1", 0),
		mkVisit(now, "/cars", "ua", "s1", 0),
		mkVisit(now, "/", "other-ua", "", 0),
	}
	if got := UniqueVisitors(visits); got != 1 {
		t.Errorf("UniqueVisitors = %d, want 1", got)
	}
}

func TestReconstructSessionsFallbackKey(t *testing.T) {
	day1 := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)
	visits := []Visit{
		// Two id-less visits, same agent, same day: one session.
		mkVisit(day1, "/", "firefox", "", 10),
		mkVisit(day1.Add(time.Minute), "/cars", "firefox", "", 20),
		// Same agent on the next day: a separate session.
		mkVisit(day2, "/", "firefox", "", 5),
		// Session id wins over the fallback key.
		mkVisit(day1, "/", "firefox", "sid-a", 7),
	}

	sessions := ReconstructSessions(visits)
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].HitCount != 2 || sessions[0].TotalDurationSec != 30 {
		t.Errorf("fallback session = %+v, want 2 hits / 30s", sessions[0])
	}
	if sessions[1].HitCount != 1 || sessions[1].TotalDurationSec != 5 {
		t.Errorf("next-day session = %+v, want 1 hit / 5s", sessions[1])
	}
	if sessions[2].HitCount != 1 || sessions[2].TotalDurationSec != 7 {
		t.Errorf("keyed session = %+v, want 1 hit / 7s", sessions[2])
	}
}

func TestReconstructSessionsIgnoresNegativeDurations(t *testing.T) {
	now := time.Now()
	sessions := ReconstructSessions([]Visit{
		mkVisit(now, "/", "", "s1", -30),
		mkVisit(now, "/cars", "", "s1", 10),
	})
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].TotalDurationSec != 10 {
		t.Errorf("TotalDurationSec = %d, want 10", sessions[0].TotalDurationSec)
	}
}

func TestBounceRate(t *testing.T) {
	// Sessions A: 1 hit, B: 1 hit, C: 3 hits -> round(100*2/3) = 67.
	sessions := []Session{
		{HitCount: 1},
		{HitCount: 1},
		{HitCount: 3},
	}
	if got := BounceRate(sessions); got != 67 {
		t.Errorf("BounceRate = %d, want 67", got)
	}
}

func TestBounceRateNoSessions(t *testing.T) {
	if got := BounceRate(nil); got != 0 {
		t.Errorf("BounceRate(nil) = %d, want 0", got)
	}
}

func TestAvgSessionDuration(t *testing.T) {
	sessions := []Session{
		{HitCount: 2, TotalDurationSec: 10},
		{HitCount: 1, TotalDurationSec: 15},
	}
	// mean(10, 15) = 12.5, rounds to 13.
	if got := AvgSessionDuration(sessions); got != 13 {
		t.Errorf("AvgSessionDuration = %d, want 13", got)
	}
	if got := AvgSessionDuration(nil); got != 0 {
		t.Errorf("AvgSessionDuration(nil) = %d, want 0", got)
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		name      string
		cur, prev int
		want      int
	}{
		{"from zero", 5, 0, 100},
		{"zero to zero", 0, 0, 100},
		{"unchanged", 10, 10, 0},
		{"doubled", 20, 10, 100},
		{"halved", 5, 10, -50},
		{"down to zero", 0, 10, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Delta(tt.cur, tt.prev); got != tt.want {
				t.Errorf("Delta(%d, %d) = %d, want %d", tt.cur, tt.prev, got, tt.want)
			}
		})
	}
}

func TestMonthBuckets(t *testing.T) {
	loc := time.UTC
	end := time.Date(2025, time.December, 15, 0, 0, 0, 0, loc)
	visits := []Visit{
		mkVisit(time.Date(2025, time.December, 1, 0, 0, 0, 0, loc), "/", "", "", 0),
		mkVisit(time.Date(2025, time.December, 2, 0, 0, 0, 0, loc), "/cars", "", "", 0),
		mkVisit(time.Date(2025, time.December, 3, 0, 0, 0, 0, loc), "/cars", "", "", 0),
		mkVisit(time.Date(2025, time.January, 20, 0, 0, 0, 0, loc), "/", "", "", 0),
		// Before the window, must be ignored.
		mkVisit(time.Date(2024, time.December, 31, 0, 0, 0, 0, loc), "/", "", "", 0),
	}

	buckets := MonthBuckets(visits, end, 12, loc)
	if len(buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "Jan" || buckets[0].Year != 2025 {
		t.Errorf("first bucket = %+v, want Jan 2025", buckets[0])
	}
	if buckets[0].Visits != 1 || buckets[0].UniquePaths != 1 {
		t.Errorf("Jan = %+v, want 1 visit / 1 path", buckets[0])
	}
	last := buckets[11]
	if last.Label != "Dec" || last.Visits != 3 || last.UniquePaths != 2 {
		t.Errorf("Dec = %+v, want 3 visits / 2 paths", last)
	}
	for i := 1; i < 11; i++ {
		if buckets[i].Visits != 0 || buckets[i].UniquePaths != 0 {
			t.Errorf("bucket %d = %+v, want empty", i, buckets[i])
		}
	}
}

func TestExcludeAdminFilter(t *testing.T) {
	now := time.Now()
	visits := []Visit{
		mkVisit(now, "/admin", "", "s1", 0),
		mkVisit(now, "/admin/analytics", "", "s2", 0),
		mkVisit(now, "/cars/123", "", "s3", 0),
	}
	kept := Filter(visits, ExcludeAdmin)
	if len(kept) != 1 {
		t.Fatalf("expected 1 kept visit, got %d", len(kept))
	}
	if kept[0].Path != "/cars/123" {
		t.Errorf("kept path = %s, want /cars/123", kept[0].Path)
	}
}

func TestMonthWindow(t *testing.T) {
	loc := time.UTC
	at := time.Date(2025, time.March, 14, 15, 9, 0, 0, loc)

	start, end := MonthWindow(at, loc)
	if !start.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("end = %v", end)
	}

	prevStart, prevEnd := PrevMonthWindow(at, loc)
	if !prevStart.Equal(time.Date(2025, time.February, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("prevStart = %v", prevStart)
	}
	if !prevEnd.Equal(start) {
		t.Errorf("prevEnd = %v, want %v", prevEnd, start)
	}

	since := TrailingMonthsStart(at, 12, loc)
	if !since.Equal(time.Date(2024, time.April, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("TrailingMonthsStart = %v", since)
	}
}
