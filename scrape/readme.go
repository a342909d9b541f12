package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/darkkaiser/baekjoon-study/scrape/problems"
	"github.com/darkkaiser/baekjoon-study/study/render"
)

const (
	HeadingProblemInfo = "📍 문제 정보"
	HeadingSolveInfo   = "📊 풀이 정보"
	HeadingProcess     = "💭 풀이 과정"
	HeadingCore        = "🔥 풀이 핵심"

	// 문서의 앞부분 몇 줄에서만 [#문제번호] 패턴을 찾는다.
	pendingHeaderLines = 5
)

// # [#1929]
var pendingRegexp = regexp.MustCompile(`^#\s*\[#(\d+)\]\s*$`)

// PendingProblemID 아직 문제 정보가 채워지지 않은 README 인지 확인하고, 그렇다면 문제 번호를 반환한다.
func PendingProblemID(content string) (string, bool) {
	if _, ok := render.Parse(content).Find(HeadingProblemInfo); ok {
		return "", false
	}

	lines := strings.SplitN(content, "\n", pendingHeaderLines+1)
	if len(lines) > pendingHeaderLines {
		lines = lines[:pendingHeaderLines]
	}
	for _, line := range lines {
		if m := pendingRegexp.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			return m[1], true
		}
	}

	return "", false
}

// ProblemSections 문제 README 의 섹션을 만든다.
// 풀이 정보, 풀이 과정, 풀이 핵심은 직접 작성하는 섹션이므로 문서에 없을 때만 기본 내용으로 추가된다.
func ProblemSections(p *problems.Problem, problemUrl string) []render.Section {
	preamble := fmt.Sprintf("[#%d. %s](%s)\n<img src=\"https://static.solved.ac/tier_small/%d.svg\" width=\"16\" height=\"16\">\n\n---\n\n",
		p.ID, p.Title, problemUrl, p.Level)

	info := fmt.Sprintf("- **문제 번호**: %d\n- **🏷️ 문제 유형**: %s\n\n---\n\n", p.ID, strings.Join(p.Tags, ", "))

	return []render.Section{
		render.NewPreamble(preamble),
		render.NewSection(HeadingProblemInfo, info),
		render.NewSection("문제", quote(p.Description)),
		render.NewSection("입력", quote(p.Input)),
		render.NewSection("출력", quote(p.Output)),
		render.NewSection("예제 입력", codeBlock(p.SampleInput)),
		render.NewSection("예제 출력", codeBlock(p.SampleOutput)+"---\n\n"),
		render.NewSection(HeadingSolveInfo, "- **⏱️ 소요 시간**: \n- **🔄 시도 횟수**: \n- **📅 풀이 날짜**: \n\n---\n\n").AsPlaceholder(),
		render.NewSection(HeadingProcess, "> 여기에 풀이 과정을 작성하세요.\n\n").AsPlaceholder(),
		render.NewSection(HeadingCore, "> 여기에 풀이 핵심을 작성하세요.\n").AsPlaceholder(),
	}
}

func ProblemDocument(existing string, p *problems.Problem, problemUrl string) string {
	return render.Parse(existing).Merge(ProblemSections(p, problemUrl)...).String()
}

func quote(s string) string {
	return "> " + s + "\n\n"
}

func codeBlock(s string) string {
	return "```\n" + s + "\n```\n\n"
}
