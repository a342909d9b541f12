// Package history 파일의 최초 커밋 시각을 git 이력에서 조회한다.
package history

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrNoHistory 파일에 대한 커밋 이력이 없다.
var ErrNoHistory = errors.New("커밋 이력이 없습니다")

type History interface {
	// FirstCommitTime 파일을 처음 추가한 커밋의 시각을 반환한다(이름 변경 추적).
	FirstCommitTime(path string) (time.Time, error)
}

type git struct {
	dir string
}

// NewGit dir 을 작업 디렉토리로 git 명령을 실행하는 History 를 반환한다.
func NewGit(dir string) History {
	return &git{dir: dir}
}

func (g *git) FirstCommitTime(path string) (time.Time, error) {
	cmd := exec.Command("git", "log", "--follow", "--format=%aI", "--reverse", "--", path)
	cmd.Dir = g.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return time.Time{}, fmt.Errorf("git log 실행이 실패하였습니다(%s): %w", strings.TrimSpace(stderr.String()), err)
	}

	return ParseFirst(string(out))
}

// ParseFirst `git log --format=%aI --reverse` 출력의 첫 번째 줄을 시각으로 변환한다.
func ParseFirst(out string) (time.Time, error) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		t, err := time.Parse(time.RFC3339, line)
		if err != nil {
			return time.Time{}, fmt.Errorf("커밋 시각을 해석할 수 없습니다(%s): %w", line, err)
		}
		return t, nil
	}

	return time.Time{}, ErrNoHistory
}
