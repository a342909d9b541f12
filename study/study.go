// Package study 사용자별 풀이 폴더를 스캔하여 출석 통계를 계산하고 README 문서를 갱신한다.
package study

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darkkaiser/baekjoon-study/config"
	"github.com/darkkaiser/baekjoon-study/logger"
	"github.com/darkkaiser/baekjoon-study/metrics"
	"github.com/darkkaiser/baekjoon-study/study/attendance"
	"github.com/darkkaiser/baekjoon-study/study/history"
	"github.com/darkkaiser/baekjoon-study/study/render"
	"github.com/darkkaiser/baekjoon-study/study/scanner"
	"go.uber.org/zap"
)

type study struct {
	cfg     *config.Config
	scanner *scanner.Scanner
	metrics *metrics.Metrics
	now     func() time.Time

	result    scanner.Result
	today     time.Time
	summaries []render.UserSummary
}

type Option func(*study)

func WithClock(now func() time.Time) Option {
	return func(s *study) { s.now = now }
}

func New(cfg *config.Config, h history.History, m *metrics.Metrics, opts ...Option) *study {
	s := &study{
		cfg:     cfg,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.scanner = scanner.New(cfg.Root, h,
		scanner.WithLocation(cfg.Location),
		scanner.WithDayBoundaryHour(cfg.DayBoundaryHour),
		scanner.WithReadmeName(cfg.ReadmeName),
		scanner.WithReservedDirs(reservedDirs(cfg)),
		scanner.WithClock(s.now),
	)

	return s
}

// reservedDirs 설정된 제외 폴더에 로그 파일과 메트릭 파일이 저장되는 폴더를 더한다.
// 두 파일은 실행 중에 만들어지므로 루트 아래에 있으면 사용자 폴더로 잘못 인식될 수 있다.
func reservedDirs(cfg *config.Config) []string {
	dirs := append([]string{}, cfg.ReservedDirs...)
	for _, file := range []string{cfg.Log.File, cfg.Metrics.Textfile} {
		if file == "" {
			continue
		}
		if dir := topLevelDir(cfg.Root, filepath.Dir(file)); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// topLevelDir path 가 root 아래에 있으면 root 바로 아래의 폴더명을 반환한다.
func topLevelDir(root, path string) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return ""
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return strings.SplitN(rel, string(filepath.Separator), 2)[0]
}

func (s *study) Scan() error {
	logger.Log.Info("풀이 폴더 스캔을 시작합니다.", zap.String("root", s.cfg.Root))

	result, err := s.scanner.Scan()
	if err != nil {
		return err
	}
	s.result = result

	problems := 0
	for _, u := range result.Users {
		problems += u.TotalCount
	}

	s.metrics.Users.Set(float64(len(result.Users)))
	s.metrics.Problems.Set(float64(problems))
	for _, o := range result.Outcomes {
		s.metrics.ScanOutcomes.WithLabelValues(o.Status.String()).Inc()
	}

	logger.Log.Info(fmt.Sprintf("풀이 폴더 스캔이 완료되었습니다. 총 %d명의 사용자와 %d개의 문제가 발견되었습니다.", len(result.Users), problems),
		zap.Strings("users", result.Usernames()),
	)

	return nil
}

func (s *study) Calculate() {
	s.today = scanner.Today(s.now(), s.cfg.Location)

	s.summaries = s.summaries[:0]
	for _, name := range s.result.Usernames() {
		user := s.result.Users[name]
		stats := attendance.Calculate(user.SolveDates(), s.today)
		s.summaries = append(s.summaries, render.UserSummary{User: user, Stats: stats})

		logger.Log.Debug("출석 통계를 계산하였습니다.",
			zap.String("user", name),
			zap.Int("success", stats.SuccessDays),
			zap.Int("failure", stats.FailureDays),
			zap.Float64("rate", stats.Rate),
		)
	}
}

// Export 사용자별 README 와 루트 README 를 갱신한다.
// 파일 하나의 실패가 다른 파일의 갱신을 막지 않으며, 발생한 에러는 모아서 반환한다.
func (s *study) Export() error {
	var errs []error

	for _, summary := range s.summaries {
		path := filepath.Join(s.cfg.Root, summary.User.Username, s.cfg.ReadmeName)
		err := s.rewrite(path, "user", func(existing string) string {
			return render.UserDocument(existing, summary.User, summary.Stats)
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	path := filepath.Join(s.cfg.Root, s.cfg.ReadmeName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Log.Info("루트 README 가 없어 갱신하지 않습니다.", zap.String("path", path))
	} else {
		err := s.rewrite(path, "root", func(existing string) string {
			return render.RootDocument(existing, s.summaries, s.today)
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *study) rewrite(path, kind string, renderFn func(existing string) string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Error("문서를 읽을 수 없습니다.", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("문서를 읽을 수 없습니다(%s): %w", path, err)
	}

	content := renderFn(string(existing))
	if content == string(existing) {
		logger.Log.Debug("변경 사항이 없습니다.", zap.String("path", path))
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		logger.Log.Error("문서를 저장할 수 없습니다.", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("문서를 저장할 수 없습니다(%s): %w", path, err)
	}

	s.metrics.DocumentsWritten.WithLabelValues(kind).Inc()
	logger.Log.Info("문서를 갱신하였습니다.", zap.String("path", path))

	return nil
}

// Report 스캔 결과를 한 번에 로그로 남긴다.
func (s *study) Report() {
	for _, o := range s.result.Outcomes {
		switch o.Status {
		case scanner.StatusSkipped:
			logger.Log.Warn("문제 폴더를 제외하였습니다.", zap.String("user", o.User), zap.String("problem", o.Problem), zap.String("reason", o.Reason))
		case scanner.StatusFallbackDate:
			logger.Log.Warn("커밋 이력 대신 오늘 날짜를 사용하였습니다.", zap.String("path", o.Path), zap.String("reason", o.Reason))
		}
	}

	logger.Log.Info(fmt.Sprintf("README 갱신이 완료되었습니다(정상:%d, 날짜대체:%d, 제외:%d).",
		s.result.Count(scanner.StatusScanned),
		s.result.Count(scanner.StatusFallbackDate),
		s.result.Count(scanner.StatusSkipped),
	))
}
