// Package scrape [#문제번호] 만 적혀있는 문제 README 를 찾아 solved.ac 와 백준에서 가져온 문제 정보로 채운다.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/darkkaiser/baekjoon-study/config"
	"github.com/darkkaiser/baekjoon-study/logger"
	"github.com/darkkaiser/baekjoon-study/metrics"
	"github.com/darkkaiser/baekjoon-study/scrape/problems"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type SummaryScraper interface {
	ScrapeSummary(ctx context.Context, id int) (*problems.Summary, error)
}

type StatementScraper interface {
	ScrapeStatement(ctx context.Context, id int) (*problems.Statement, error)
	ProblemUrl(id int) string
}

type readme struct {
	path      string
	problemID int
	content   string // 기존 내용

	completed string // 문제 정보가 채워진 내용
}

type scrape struct {
	root       string
	readmeName string

	summaries  SummaryScraper
	statements StatementScraper

	// 외부 사이트 요청은 requestLimiter 로 SourceInterval 마다 한 번까지만 보낸다.
	// 문제 하나를 마치면 다음 문제까지 problemInterval 만큼 쉰다(재시도, 백오프 없음).
	requestLimiter  *rate.Limiter
	problemInterval time.Duration

	metrics *metrics.Metrics

	readmes []*readme
}

func New(cfg *config.Config, summaries SummaryScraper, statements StatementScraper, m *metrics.Metrics) *scrape {
	return &scrape{
		root:       cfg.Root,
		readmeName: cfg.ReadmeName,

		summaries:  summaries,
		statements: statements,

		requestLimiter:  newLimiter(cfg.Scrape.SourceInterval),
		problemInterval: cfg.Scrape.ProblemInterval,

		metrics: m,
	}
}

func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Find 문제 정보가 채워지지 않은 README 파일을 찾는다. 숨김 폴더(.git, .github 등)는 제외한다.
func (s *scrape) Find() error {
	logger.Log.Info("[#문제번호] 패턴이 있는 README 파일을 찾는 중입니다.", zap.String("root", s.root))

	s.readmes = nil
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Log.Warn("경로를 읽을 수 없습니다.", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() != s.readmeName {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Log.Warn("파일을 읽을 수 없습니다.", zap.String("path", path), zap.Error(err))
			return nil
		}

		id, ok := PendingProblemID(string(data))
		if !ok {
			return nil
		}
		problemID, err := strconv.Atoi(id)
		if err != nil {
			return nil
		}

		logger.Log.Debug("처리 대상에 추가합니다.", zap.String("path", path), zap.Int("problem", problemID))
		s.readmes = append(s.readmes, &readme{path: path, problemID: problemID, content: string(data)})

		return nil
	})
	if err != nil {
		return fmt.Errorf("README 파일을 찾을 수 없습니다: %w", err)
	}

	logger.Log.Info(fmt.Sprintf("%d개의 README 파일을 처리합니다.", len(s.readmes)))

	return nil
}

// Scrape 대상 README 마다 문제 정보를 가져온다. 한 문제의 실패는 로그만 남기고 다음 문제로 넘어간다.
func (s *scrape) Scrape(ctx context.Context) error {
	for i, r := range s.readmes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if err := pause(ctx, s.problemInterval); err != nil {
				return err
			}
		}

		p, err := s.scrapeProblem(ctx, r.problemID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			logger.Log.Error("문제 정보를 가져올 수 없습니다.", zap.String("path", r.path), zap.Int("problem", r.problemID), zap.Error(err))
			s.metrics.Completions.WithLabelValues("failure").Inc()
			continue
		}

		r.completed = ProblemDocument(r.content, p, s.statements.ProblemUrl(r.problemID))
	}

	return nil
}

// pause d 만큼 기다린다. d 가 0 이하이면 바로 반환한다.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *scrape) scrapeProblem(ctx context.Context, id int) (*problems.Problem, error) {
	if err := s.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	summary, err := s.summaries.ScrapeSummary(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	statement, err := s.statements.ScrapeStatement(ctx, id)
	if err != nil {
		return nil, err
	}

	return &problems.Problem{Summary: *summary, Statement: *statement}, nil
}

// Export 문제 정보를 가져온 README 를 저장하고 저장한 파일 수를 반환한다.
func (s *scrape) Export() int {
	count := 0
	for _, r := range s.readmes {
		if r.completed == "" {
			continue
		}

		if err := os.WriteFile(r.path, []byte(r.completed), 0644); err != nil {
			logger.Log.Error("파일 저장이 실패하였습니다.", zap.String("path", r.path), zap.Error(err))
			s.metrics.Completions.WithLabelValues("failure").Inc()
			continue
		}

		logger.Log.Info("README 를 완성하였습니다.", zap.String("path", r.path), zap.Int("problem", r.problemID))
		s.metrics.Completions.WithLabelValues("success").Inc()
		count++
	}

	logger.Log.Info(fmt.Sprintf("작업 완료! %d/%d개의 파일을 성공적으로 처리했습니다.", count, len(s.readmes)))

	return count
}
