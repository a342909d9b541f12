package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/darkkaiser/baekjoon-study/study/attendance"
	"github.com/darkkaiser/baekjoon-study/study/scanner"
)

const (
	HeadingParticipants = "👥 참여자"
	HeadingStudyStats   = "📊 전체 스터디 통계"
	HeadingProgress     = "📈 진행 현황"

	// 이전 버전 문서에서 전체 통계 자리에 쓰던 제목
	legacyHeadingProgress = "📊 진행 현황"

	tableHeaderPrefix = "| 이름 |"
)

type UserSummary struct {
	User  *scanner.UserRecord
	Stats attendance.Stats
}

// Totals 전체 스터디 통계
type Totals struct {
	StartDate     time.Time // 참여자들의 첫 풀이일 중 가장 빠른 날, 없으면 zero
	TotalProblems int
	TotalWeekdays int
	Participants  int
}

func Summarize(users []UserSummary, today time.Time) Totals {
	t := Totals{Participants: len(users)}
	for _, u := range users {
		t.TotalProblems += u.User.TotalCount
		if u.User.TotalCount == 0 || u.Stats.FirstDate.IsZero() {
			continue
		}
		if t.StartDate.IsZero() || u.Stats.FirstDate.Before(t.StartDate) {
			t.StartDate = u.Stats.FirstDate
		}
	}
	if !t.StartDate.IsZero() {
		t.TotalWeekdays = attendance.WeekdaysBetween(t.StartDate, today)
	}
	return t
}

// RootSections 루트 문서의 자동 생성 섹션을 만든다. users 의 순서대로 표를 그린다.
func RootSections(users []UserSummary, today time.Time) []Section {
	totals := Summarize(users, today)
	return []Section{
		NewSection(HeadingParticipants, participantsTable(users)),
		NewSection(HeadingStudyStats, studyStats(totals)).WithAliases(legacyHeadingProgress),
		NewSection(HeadingProgress, progress(totals, today)),
	}
}

// RootDocument 참여자 섹션은 표만 교체하고, 표 앞뒤에 직접 작성한 내용은 유지한다.
func RootDocument(existing string, users []UserSummary, today time.Time) string {
	doc := Parse(existing)

	sections := RootSections(users, today)
	if s, ok := doc.Find(HeadingParticipants); ok {
		sections[0] = NewSection(HeadingParticipants, replaceTable(rawBody(s), participantsTable(users)))
	}

	return doc.Merge(sections...).String()
}

// rawBody 제목 줄과 그 뒤의 빈 줄을 제외한 본문을 그대로 반환한다.
func rawBody(s Section) string {
	i := strings.IndexByte(s.Text, '\n')
	if i < 0 {
		return ""
	}
	return strings.TrimLeft(s.Text[i+1:], "\n")
}

// replaceTable body 에서 `| 이름 |` 으로 시작하는 표를 table 로 바꾼다. 표가 없으면 본문 뒤에 붙인다.
func replaceTable(body, table string) string {
	if strings.TrimSpace(body) == "" {
		return table
	}

	lines := strings.SplitAfter(body, "\n")
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, tableHeaderPrefix) {
			start = i
			break
		}
	}
	if start < 0 {
		body = ensureNewline(body)
		if !strings.HasSuffix(body, "\n\n") {
			body += "\n"
		}
		return body + table
	}

	end := start
	for end < len(lines) && strings.HasPrefix(lines[end], "|") {
		end++
	}
	for end < len(lines) && strings.TrimSpace(lines[end]) == "" {
		end++
	}

	return strings.Join(lines[:start], "") + table + strings.Join(lines[end:], "")
}

func participantsTable(users []UserSummary) string {
	var sb strings.Builder
	sb.WriteString(tableHeaderPrefix + " 시작일 | 풀이 문제 수 | 성공한 날 | 실패한 날 | 출석률 | 최근 활동 |\n")
	sb.WriteString("|------|--------|-------------|----------|----------|--------|-----------|\n")

	for _, u := range users {
		if u.User.TotalCount == 0 {
			fmt.Fprintf(&sb, "| %s | - | 0문제 | 0일 | 0일 | - | - |\n", u.User.Username)
			continue
		}

		fmt.Fprintf(&sb, "| %s | %s | %d문제 | %d일 | %d일 | %s | %s |\n",
			u.User.Username,
			u.Stats.FirstDate.Format(DateLayout),
			u.User.TotalCount,
			u.Stats.SuccessDays,
			u.Stats.FailureDays,
			formatRate(u.Stats.Rate),
			u.User.LastUpdate.Format(DateLayout),
		)
	}
	sb.WriteString("\n")

	return sb.String()
}

func studyStats(t Totals) string {
	if t.StartDate.IsZero() {
		return "- **📊 아직 문제를 푼 참여자가 없습니다.**\n\n---\n\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "- **📅 스터디 시작일**: %s\n", t.StartDate.Format(DateLayout))
	fmt.Fprintf(&sb, "- **📈 총 풀이 문제**: %d개\n", t.TotalProblems)
	fmt.Fprintf(&sb, "- **⏱️ 도전 기간**: %d일째 도전 중!\n", t.TotalWeekdays)
	fmt.Fprintf(&sb, "- **👥 참여자 수**: %d명\n", t.Participants)
	sb.WriteString("\n---\n\n")
	return sb.String()
}

func progress(t Totals, today time.Time) string {
	day := today.Format("2006년 01월 02일")
	if t.StartDate.IsZero() {
		return fmt.Sprintf("- **현재 진행**: 스터디 준비 중 (%s 기준)\n\n", day)
	}
	return fmt.Sprintf("- **현재 진행**: 총 %d문제 완료 (%s 기준)\n\n", t.TotalProblems, day)
}
