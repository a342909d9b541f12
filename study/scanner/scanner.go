// Package scanner 사용자별, 문제별 폴더를 스캔하여 풀이 기록을 만든다.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/darkkaiser/baekjoon-study/logger"
	"github.com/darkkaiser/baekjoon-study/study/history"
	"github.com/darkkaiser/baekjoon-study/study/problem"
	"github.com/darkkaiser/baekjoon-study/utils"
	"go.uber.org/zap"
)

type UserRecord struct {
	Username   string
	Problems   []problem.Record // 풀이일 오름차순
	TotalCount int
	LastUpdate time.Time // 마지막 풀이일, 풀이가 없으면 zero
}

func (u *UserRecord) SolveDates() []time.Time {
	dates := make([]time.Time, 0, len(u.Problems))
	for _, p := range u.Problems {
		dates = append(dates, p.SolveDate)
	}
	return dates
}

type Result struct {
	Users    map[string]*UserRecord
	Outcomes []Outcome
}

// Usernames 사용자명을 정렬하여 반환한다.
func (r Result) Usernames() []string {
	names := make([]string, 0, len(r.Users))
	for name := range r.Users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r Result) Count(status Status) int {
	count := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			count++
		}
	}
	return count
}

type Scanner struct {
	root    string
	history history.History

	location     *time.Location
	boundaryHour int
	readmeName   string
	reservedDirs []string

	now func() time.Time
}

type Option func(*Scanner)

func WithLocation(loc *time.Location) Option {
	return func(s *Scanner) { s.location = loc }
}

func WithDayBoundaryHour(hour int) Option {
	return func(s *Scanner) { s.boundaryHour = hour }
}

func WithReadmeName(name string) Option {
	return func(s *Scanner) { s.readmeName = name }
}

func WithReservedDirs(dirs []string) Option {
	return func(s *Scanner) { s.reservedDirs = dirs }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

func New(root string, h history.History, opts ...Option) *Scanner {
	s := &Scanner{
		root:         root,
		history:      h,
		location:     time.UTC,
		boundaryHour: 4,
		readmeName:   "README.md",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan 루트 디렉토리의 사용자 폴더를 모두 스캔한다.
// 루트 디렉토리를 읽을 수 없는 경우에만 에러를 반환하며, 개별 문제 폴더의 문제는 Outcome 으로 기록된다.
func (s *Scanner) Scan() (Result, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return Result{}, fmt.Errorf("루트 디렉토리를 읽을 수 없습니다(%s): %w", s.root, err)
	}

	result := Result{Users: make(map[string]*UserRecord)}
	for _, entry := range entries {
		if !entry.IsDir() || s.reserved(entry.Name()) {
			continue
		}

		user, ok := s.scanUser(entry.Name(), &result.Outcomes)
		if !ok {
			continue
		}
		result.Users[user.Username] = user
	}

	return result, nil
}

func (s *Scanner) reserved(name string) bool {
	return strings.HasPrefix(name, ".") || utils.Contains(s.reservedDirs, name)
}

// scanUser 사용자 폴더를 읽을 수 없으면 false 를 반환하며, 이 사용자는 결과에서 제외된다.
func (s *Scanner) scanUser(username string, outcomes *[]Outcome) (*UserRecord, bool) {
	entries, err := os.ReadDir(filepath.Join(s.root, username))
	if err != nil {
		*outcomes = append(*outcomes, Outcome{User: username, Status: StatusSkipped, Reason: err.Error()})
		return nil, false
	}

	user := &UserRecord{Username: username}

	for _, entry := range entries {
		if !entry.IsDir() || !utils.IsDigits(entry.Name()) {
			continue
		}

		record, outcome, ok := s.scanProblem(username, entry.Name())
		*outcomes = append(*outcomes, outcome)
		if ok {
			user.Problems = append(user.Problems, record)
		}
	}

	// os.ReadDir 가 폴더명 순서로 반환하므로 같은 날짜의 문제는 폴더명 순서를 유지한다.
	sort.SliceStable(user.Problems, func(i, j int) bool {
		return user.Problems[i].SolveDate.Before(user.Problems[j].SolveDate)
	})

	user.TotalCount = len(user.Problems)
	if user.TotalCount > 0 {
		user.LastUpdate = user.Problems[user.TotalCount-1].SolveDate
	}

	return user, true
}

func (s *Scanner) scanProblem(username, folder string) (problem.Record, Outcome, bool) {
	path := filepath.Join(username, folder, s.readmeName)
	outcome := Outcome{User: username, Problem: folder, Path: path, Status: StatusScanned}

	data, err := os.ReadFile(filepath.Join(s.root, path))
	if err != nil {
		outcome.Status = StatusSkipped
		if errors.Is(err, os.ErrNotExist) {
			outcome.Reason = "문서가 없습니다"
		} else {
			outcome.Reason = err.Error()
		}
		return problem.Record{}, outcome, false
	}

	record, ok := problem.Extract(string(data))
	if !ok {
		outcome.Status = StatusSkipped
		outcome.Reason = "문제 번호와 제목을 찾을 수 없습니다"
		return problem.Record{}, outcome, false
	}

	date, err := s.solveDate(path)
	if err != nil {
		outcome.Status = StatusFallbackDate
		outcome.Reason = err.Error()
		logger.Log.Debug("커밋 이력을 사용할 수 없어 오늘 날짜로 대체합니다", zap.String("path", path), zap.Error(err))
	}

	return record.WithSolveDate(date), outcome, true
}

// solveDate 에러가 발생하면 오늘 날짜와 함께 에러를 반환한다.
func (s *Scanner) solveDate(path string) (date time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			date, err = Today(s.now(), s.location), fmt.Errorf("커밋 이력 조회 중 예외가 발생하였습니다: %v", r)
		}
	}()

	t, err := s.history.FirstCommitTime(path)
	if err != nil {
		return Today(s.now(), s.location), err
	}

	return SolveDate(t, s.location, s.boundaryHour), nil
}

// SolveDate 커밋 시각을 기준 시간대의 풀이일로 변환한다.
// boundaryHour 시 이전의 커밋은 전날 풀이로 처리한다.
func SolveDate(t time.Time, loc *time.Location, boundaryHour int) time.Time {
	t = t.In(loc)
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	if t.Hour() < boundaryHour {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// Today 기준 시간대의 오늘 날짜(자정)를 반환한다.
func Today(now time.Time, loc *time.Location) time.Time {
	now = now.In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}
