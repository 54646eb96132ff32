// Package analytics derives chart-ready visitor metrics from raw visit rows.
// Everything here is a pure function of the rows handed in: sessions are
// reconstructed on every call and nothing is cached or mutated in place, so
// the same window of rows always yields the same numbers.
package analytics

import (
	"math"
	"strings"
	"time"
)

// MaxDurationSec bounds client-reported page durations at ingestion. A tab
// left open for days must not skew session duration averages.
const MaxDurationSec = 3600

// Visit is the read-side projection of one raw visit row.
type Visit struct {
	CreatedAt   time.Time
	Path        string
	UserAgent   string
	SessionID   string
	DurationSec int
}

// Session is a reconstructed browsing episode. It exists only during
// aggregation and is never stored.
type Session struct {
	HitCount         int
	TotalDurationSec int
}

// ClampDuration normalizes a client-reported duration: non-finite values
// default to 0, everything else is truncated to an integer and clamped to
// [0, MaxDurationSec].
func ClampDuration(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	d := int(math.Floor(v))
	if d < 0 {
		return 0
	}
	if d > MaxDurationSec {
		return MaxDurationSec
	}
	return d
}

// ExcludeAdmin reports whether a visit belongs to public traffic. Admin
// back-office navigation is kept out of every visitor metric.
func ExcludeAdmin(v Visit) bool {
	return !strings.HasPrefix(v.Path, "/admin")
}

// Filter returns the visits matching the keep predicate, preserving order.
func Filter(visits []Visit, keep func(Visit) bool) []Visit {
	out := make([]Visit, 0, len(visits))
	for _, v := range visits {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// DayBuckets partitions one calendar month into per-day visit counts. The
// result always has exactly one entry per day of the month, zero-filled and
// chronological; visits outside the month are ignored.
func DayBuckets(visits []Visit, year int, month time.Month, loc *time.Location) []int {
	if loc == nil {
		loc = time.Local
	}
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	buckets := make([]int, days)
	for _, v := range visits {
		t := v.CreatedAt.In(loc)
		if t.Year() == year && t.Month() == month {
			buckets[t.Day()-1]++
		}
	}
	return buckets
}

// MonthBucket is one calendar month of the trailing overview series.
type MonthBucket struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Label       string `json:"label"` // short month name, e.g. "Sep"
	Visits      int    `json:"visits"`
	UniquePaths int    `json:"unique_paths"`
}

// MonthBuckets produces a trailing series of n calendar months ending with
// the month containing end. Each bucket carries the visit count and the
// number of distinct paths seen in that month, zero-filled for empty months.
func MonthBuckets(visits []Visit, end time.Time, n int, loc *time.Location) []MonthBucket {
	if loc == nil {
		loc = time.Local
	}
	end = end.In(loc)

	buckets := make([]MonthBucket, n)
	index := make(map[[2]int]int, n)
	for i := 0; i < n; i++ {
		d := time.Date(end.Year(), end.Month()-time.Month(n-1-i), 1, 0, 0, 0, 0, loc)
		buckets[i] = MonthBucket{Year: d.Year(), Month: int(d.Month()), Label: d.Format("Jan")}
		index[[2]int{d.Year(), int(d.Month())}] = i
	}

	paths := make([]map[string]struct{}, n)
	for _, v := range visits {
		t := v.CreatedAt.In(loc)
		i, ok := index[[2]int{t.Year(), int(t.Month())}]
		if !ok {
			continue
		}
		buckets[i].Visits++
		if v.Path != "" {
			if paths[i] == nil {
				paths[i] = make(map[string]struct{})
			}
			paths[i][v.Path] = struct{}{}
		}
	}
	for i := range buckets {
		buckets[i].UniquePaths = len(paths[i])
	}
	return buckets
}

// UniqueVisitors counts distinct non-empty session ids. Visits without a
// session id are excluded rather than folded into a shared anonymous bucket,
// which would inflate uniqueness.
func UniqueVisitors(visits []Visit) int {
	seen := make(map[string]struct{})
	for _, v := range visits {
		if v.SessionID != "" {
			seen[v.SessionID] = struct{}{}
		}
	}
	return len(seen)
}

// ReconstructSessions groups visits into browsing episodes. The grouping key
// is the client session id when present, otherwise a coarser fallback of
// user agent plus calendar day, since an id-less client can still be
// correlated within a single day.
func ReconstructSessions(visits []Visit) []Session {
	grouped := make(map[string]*Session)
	order := make([]string, 0)
	for _, v := range visits {
		key := v.SessionID
		if key == "" {
			ua := v.UserAgent
			if ua == "" {
				ua = "anon"
			}
			key = ua + ":" + v.CreatedAt.Format("2006-01-02")
		}
		s, ok := grouped[key]
		if !ok {
			s = &Session{}
			grouped[key] = s
			order = append(order, key)
		}
		s.HitCount++
		if v.DurationSec > 0 {
			s.TotalDurationSec += v.DurationSec
		}
	}

	sessions := make([]Session, 0, len(order))
	for _, key := range order {
		sessions = append(sessions, *grouped[key])
	}
	return sessions
}

// BounceRate returns the share of single-hit sessions as a rounded
// percentage, 0 when there are no sessions.
func BounceRate(sessions []Session) int {
	if len(sessions) == 0 {
		return 0
	}
	bounces := 0
	for _, s := range sessions {
		if s.HitCount <= 1 {
			bounces++
		}
	}
	return int(math.Round(float64(bounces) / float64(len(sessions)) * 100))
}

// AvgSessionDuration returns the mean session duration in whole seconds,
// 0 when there are no sessions.
func AvgSessionDuration(sessions []Session) int {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.TotalDurationSec
	}
	return int(math.Round(float64(total) / float64(len(sessions))))
}

// Delta returns the period-over-period change as a rounded percentage.
// A previous value of zero yields exactly 100, so "from nothing to
// something" reads as a fixed +100% instead of a runaway ratio.
func Delta(cur, prev int) int {
	if prev == 0 {
		return 100
	}
	return int(math.Round(float64(cur-prev) / float64(prev) * 100))
}
