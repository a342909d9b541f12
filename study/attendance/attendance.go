// Package attendance 풀이일 목록으로 평일 출석 통계를 계산한다.
package attendance

import (
	"time"
)

type Stats struct {
	FirstDate     time.Time   // 첫 풀이일, 풀이가 없으면 zero
	TotalWeekdays int         // 첫 풀이일부터 오늘까지의 평일 수(오늘 포함)
	SuccessDays   int         // 문제를 푼 평일 수
	FailureDays   int         // 문제를 풀지 않은 평일 수(오늘 제외)
	Rate          float64     // 출석률(0~100)
	MissedDates   []time.Time // 문제를 풀지 않은 평일(오름차순)
}

// Evaluated 성공과 실패로 평가된 평일 수
func (s Stats) Evaluated() int {
	return s.SuccessDays + s.FailureDays
}

func IsWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Calculate 첫 풀이일부터 오늘까지 하루씩 순회하면서 평일(월~금)의 성공/실패를 센다.
// 오늘은 아직 풀 수 있으므로 풀지 않았더라도 실패로 세지 않는다.
// 평가된 평일이 없으면(예: 주말에 처음 푼 날이 오늘) 출석률은 0 이다.
func Calculate(dates []time.Time, today time.Time) Stats {
	if len(dates) == 0 {
		return Stats{}
	}

	today = dayOf(today)
	loc := today.Location()

	solved := make(map[time.Time]bool, len(dates))
	first := time.Time{}
	for _, d := range dates {
		d = dayOf(d.In(loc))
		solved[d] = true
		if first.IsZero() || d.Before(first) {
			first = d
		}
	}

	stats := Stats{FirstDate: first}
	if first.After(today) {
		return stats
	}

	for d := first; !d.After(today); d = d.AddDate(0, 0, 1) {
		if !IsWeekday(d) {
			continue
		}

		stats.TotalWeekdays++
		switch {
		case solved[d]:
			stats.SuccessDays++
		case !d.Equal(today):
			stats.FailureDays++
			stats.MissedDates = append(stats.MissedDates, d)
		}
	}

	if n := stats.Evaluated(); n > 0 {
		stats.Rate = float64(stats.SuccessDays) / float64(n) * 100
	}

	return stats
}

// WeekdaysBetween from 부터 to 까지(양끝 포함)의 평일 수를 반환한다.
func WeekdaysBetween(from, to time.Time) int {
	from, to = dayOf(from), dayOf(to.In(from.Location()))

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			count++
		}
	}
	return count
}
