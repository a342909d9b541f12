// Package render 마크다운 문서를 섹션 단위로 나누고, 자동 생성 섹션만 교체하여 다시 조립한다.
//
// 섹션은 코드 블록 밖의 `## ` 제목 줄에서 나뉘며, 첫 제목 앞의 내용은 머리말(preamble)이 된다.
// 섹션 텍스트는 제목 줄을 포함한 원문 그대로이므로 Parse 후 String 은 원문과 같다.
package render

import (
	"strings"
)

const headingPrefix = "## "

type Section struct {
	Key     string   // 제목(`## ` 이후), 머리말은 빈 문자열
	Aliases []string // 같은 섹션으로 취급할 이전 제목
	Text    string   // 제목 줄을 포함한 섹션 전체

	// Placeholder 섹션은 문서에 없을 때만 추가되고 기존 내용을 교체하지 않는다.
	Placeholder bool

	preamble bool
}

// NewSection 제목과 본문으로 섹션을 만든다. 본문은 제목 다음 빈 줄 뒤에 놓인다.
func NewSection(heading, body string) Section {
	return Section{
		Key:  heading,
		Text: headingPrefix + heading + "\n\n" + ensureNewline(body),
	}
}

func NewPreamble(text string) Section {
	return Section{Text: ensureNewline(text), preamble: true}
}

func (s Section) WithAliases(aliases ...string) Section {
	s.Aliases = aliases
	return s
}

func (s Section) AsPlaceholder() Section {
	s.Placeholder = true
	return s
}

func (s Section) IsPreamble() bool {
	return s.preamble
}

// Body 제목 줄을 제외한 본문을 앞뒤 공백 없이 반환한다.
func (s Section) Body() string {
	if s.preamble {
		return strings.TrimSpace(s.Text)
	}
	if i := strings.IndexByte(s.Text, '\n'); i >= 0 {
		return strings.TrimSpace(s.Text[i+1:])
	}
	return ""
}

func (s Section) matches(other Section) bool {
	if s.preamble || other.preamble {
		return s.preamble && other.preamble
	}
	if s.Key == other.Key {
		return true
	}
	for _, alias := range s.Aliases {
		if alias == other.Key {
			return true
		}
	}
	return false
}

type Document struct {
	Sections []Section
}

func Parse(text string) Document {
	var doc Document
	if text == "" {
		return doc
	}

	var current strings.Builder
	var currentKey string
	isPreamble := true
	fenced := false

	flush := func() {
		if current.Len() == 0 {
			return
		}
		doc.Sections = append(doc.Sections, Section{Key: currentKey, Text: current.String(), preamble: isPreamble})
		current.Reset()
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}

		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
		}

		if !fenced && strings.HasPrefix(line, headingPrefix) {
			flush()
			currentKey = strings.TrimSpace(strings.TrimPrefix(line, headingPrefix))
			isPreamble = false
		}

		current.WriteString(line)
	}
	flush()

	return doc
}

func (d Document) String() string {
	var sb strings.Builder
	for _, s := range d.Sections {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Find 제목(또는 별칭)이 key 인 첫 번째 섹션을 찾는다.
func (d Document) Find(key string) (Section, bool) {
	for _, s := range d.Sections {
		if !s.preamble && s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

func (d Document) Preamble() (Section, bool) {
	if len(d.Sections) > 0 && d.Sections[0].preamble {
		return d.Sections[0], true
	}
	return Section{}, false
}

// Merge 생성된 섹션으로 같은 제목의 섹션을 제자리에서 교체한다.
// 같은 제목이 여러 번 나오면 첫 번째만 남기고, 문서에 없는 섹션은 앞선 생성 섹션 바로 뒤에
// (앞선 섹션이 없으면 다음 생성 섹션 바로 앞에, 그것도 없으면 문서 끝에) 추가한다.
// 그 밖의 섹션은 그대로 유지된다.
func (d Document) Merge(generated ...Section) Document {
	out := make([]Section, 0, len(d.Sections)+len(generated))
	pos := make(map[int]int, len(generated)) // 생성 섹션 인덱스 -> out 위치

	for _, s := range d.Sections {
		gi := -1
		for i, g := range generated {
			if g.matches(s) {
				gi = i
				break
			}
		}

		switch {
		case gi < 0:
			out = append(out, s)
		case generated[gi].Placeholder:
			if _, ok := pos[gi]; !ok {
				pos[gi] = len(out)
			}
			out = append(out, s)
		default:
			if _, ok := pos[gi]; ok {
				continue
			}
			pos[gi] = len(out)
			out = append(out, generated[gi])
		}
	}

	for gi, g := range generated {
		if _, ok := pos[gi]; ok {
			continue
		}

		at := len(out)
		switch {
		case g.preamble:
			at = 0
		case prevPosition(pos, gi) >= 0:
			at = prevPosition(pos, gi) + 1
		case nextPosition(pos, gi, len(generated)) >= 0:
			at = nextPosition(pos, gi, len(generated))
		}

		out = append(out, Section{})
		copy(out[at+1:], out[at:])
		out[at] = g

		for k, p := range pos {
			if p >= at {
				pos[k] = p + 1
			}
		}
		pos[gi] = at
	}

	for i := 0; i < len(out)-1; i++ {
		out[i].Text = ensureNewline(out[i].Text)
	}

	return Document{Sections: out}
}

func prevPosition(pos map[int]int, gi int) int {
	for i := gi - 1; i >= 0; i-- {
		if p, ok := pos[i]; ok {
			return p
		}
	}
	return -1
}

func nextPosition(pos map[int]int, gi, n int) int {
	for i := gi + 1; i < n; i++ {
		if p, ok := pos[i]; ok {
			return p
		}
	}
	return -1
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
