package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/darkkaiser/baekjoon-study/study/attendance"
	"github.com/darkkaiser/baekjoon-study/study/scanner"
)

const (
	DateLayout = "2006-01-02"

	HeadingRecords   = "📅 풀이 기록"
	HeadingUserStats = "📊 스터디 통계"
)

// 최근 빼먹은 날은 이 값 이하일 때만 표시한다.
const maxMissedDatesShown = 10

const recentMissedDates = 5

func UserSections(user *scanner.UserRecord, stats attendance.Stats) []Section {
	return []Section{
		NewPreamble(fmt.Sprintf("# 📚 %s의 백준 스터디 기록\n\n> 🎯 **매일 꾸준히, 함께 성장하기!**\n\n---\n\n", user.Username)),
		NewSection(HeadingRecords, userRecords(user)),
		NewSection(HeadingUserStats, userStats(user, stats)),
	}
}

// UserDocument 기존 사용자 문서(없으면 빈 문자열)에 자동 생성 섹션을 반영한 전체 문서를 반환한다.
func UserDocument(existing string, user *scanner.UserRecord, stats attendance.Stats) string {
	return Parse(existing).Merge(UserSections(user, stats)...).String()
}

func userRecords(user *scanner.UserRecord) string {
	var sb strings.Builder
	if len(user.Problems) == 0 {
		sb.WriteString("- 아직 풀이 기록이 없습니다.\n")
	}
	for _, p := range user.Problems {
		fmt.Fprintf(&sb, "- %s: %d번 (%s)", p.SolveDate.Format(DateLayout), p.Number, p.Title)
		if p.Tier.Known() {
			fmt.Fprintf(&sb, " %s", p.Tier)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n---\n\n")
	return sb.String()
}

func userStats(user *scanner.UserRecord, stats attendance.Stats) string {
	var sb strings.Builder

	if user.TotalCount == 0 {
		sb.WriteString("**📊 아직 문제를 풀지 않았습니다. 첫 문제를 풀어보세요!**\n")
	} else {
		fmt.Fprintf(&sb, "- **📅 시작일**: %s\n", stats.FirstDate.Format(DateLayout))
		fmt.Fprintf(&sb, "- **📈 총 풀이 문제**: %d개\n", user.TotalCount)
		fmt.Fprintf(&sb, "- **⏱️ 도전 기간**: %d일째 도전 중!\n", stats.TotalWeekdays)
		fmt.Fprintf(&sb, "- **✅ 성공한 날**: %d일\n", stats.SuccessDays)
		fmt.Fprintf(&sb, "- **❌ 실패한 날**: %d일\n", stats.FailureDays)
		fmt.Fprintf(&sb, "- **🎯 출석률**: %s\n", formatRate(stats.Rate))
		if missed := formatMissedDates(stats.MissedDates); missed != "" {
			fmt.Fprintf(&sb, "- **📝 최근 빼먹은 날**: %s\n", missed)
		}
	}

	fmt.Fprintf(&sb, "\n---\n\n**총 풀이 문제: %d개**\n", user.TotalCount)
	if !user.LastUpdate.IsZero() {
		fmt.Fprintf(&sb, "**마지막 업데이트: %s**\n", user.LastUpdate.Format(DateLayout))
	}

	return sb.String()
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

func formatMissedDates(dates []time.Time) string {
	if len(dates) == 0 || len(dates) > maxMissedDatesShown {
		return ""
	}

	recent := dates
	if len(recent) > recentMissedDates {
		recent = recent[len(recent)-recentMissedDates:]
	}

	s := make([]string, 0, len(recent))
	for _, d := range recent {
		s = append(s, d.Format("01-02"))
	}

	missed := strings.Join(s, ", ")
	if len(dates) > recentMissedDates {
		missed += fmt.Sprintf(" (외 %d일)", len(dates)-recentMissedDates)
	}
	return missed
}
