// Package problem 문제 폴더의 README 문서에서 문제 정보를 추출한다.
package problem

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// [#1929. 소수 구하기](https://www.acmicpc.net/problem/1929)
	headerRegexp = regexp.MustCompile(`\[#(\d+)\.\s*(.+?)\]`)

	// <img src="https://static.solved.ac/tier_small/8.svg" ...>
	tierRegexp = regexp.MustCompile(`tier_small/(\d+)\.svg`)
)

type Record struct {
	Number    int
	Title     string
	Tier      Tier
	SolveDate time.Time // 풀이일(기준 시간대의 자정)
}

// Extract 문서에서 문제 번호, 제목, 티어를 추출한다.
// 문제 번호와 제목이 없으면 false 를 반환하고, 티어 이미지가 없거나 범위를 벗어나면 TierUnknown 으로 처리한다.
func Extract(text string) (Record, bool) {
	m := headerRegexp.FindStringSubmatch(text)
	if m == nil {
		return Record{}, false
	}

	number, err := strconv.Atoi(m[1])
	if err != nil {
		return Record{}, false
	}

	title := strings.TrimSpace(m[2])
	if title == "" {
		return Record{}, false
	}

	tier := TierUnknown
	if tm := tierRegexp.FindStringSubmatch(text); tm != nil {
		if n, err := strconv.Atoi(tm[1]); err == nil && Tier(n).Known() {
			tier = Tier(n)
		}
	}

	return Record{
		Number: number,
		Title:  title,
		Tier:   tier,
	}, true
}

// WithSolveDate 풀이일이 지정된 새 Record 를 반환한다.
func (r Record) WithSolveDate(d time.Time) Record {
	r.SolveDate = d
	return r
}
