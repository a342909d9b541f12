package study

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/darkkaiser/baekjoon-study/config"
	"github.com/darkkaiser/baekjoon-study/logger"
	"github.com/darkkaiser/baekjoon-study/metrics"
	"github.com/darkkaiser/baekjoon-study/study/history"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var kst = time.FixedZone("KST", 9*60*60)

type fakeHistory map[string]time.Time

func (f fakeHistory) FirstCommitTime(path string) (time.Time, error) {
	if t, ok := f[path]; ok {
		return t, nil
	}
	return time.Time{}, history.ErrNoHistory
}

func setup(t *testing.T) (string, fakeHistory) {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	problem := func(user string, number int, title string, tier int) string {
		rel := filepath.Join(user, fmt.Sprint(number), "README.md")
		write(rel, fmt.Sprintf("[#%d. %s](https://www.acmicpc.net/problem/%d)\n<img src=\"https://static.solved.ac/tier_small/%d.svg\" width=\"16\" height=\"16\">\n", number, title, number, tier))
		return rel
	}

	h := fakeHistory{
		problem("junho", 1000, "A+B", 1):         time.Date(2025, 7, 7, 22, 0, 0, 0, kst),
		problem("junho", 2156, "포도주 시식", 11):    time.Date(2025, 7, 10, 1, 30, 0, 0, kst), // 7/9 로 처리
		problem("hyosang", 1929, "소수 구하기", 8):    time.Date(2025, 7, 8, 9, 0, 0, 0, kst),
		problem("hyosang", 10773, "제로", 6):       time.Date(2025, 7, 11, 9, 0, 0, 0, kst),
		filepath.Join("hyosang", "4134", "README.md"): time.Date(2025, 7, 9, 9, 0, 0, 0, kst),
	}
	write(filepath.Join("hyosang", "4134", "README.md"), "# [#4134]\n")
	write(filepath.Join("junho", "README.md"), "# 옛 문서\n\n## ✍️ 회고\n\n꾸준히 하자.\n")
	write("README.md", "# 백준 스터디\n\n## 👥 참여자\n\n(자동 생성)\n\n## 📌 규칙\n\n- 평일 하루 한 문제\n")

	return root, h
}

func newConfig(root string) *config.Config {
	return &config.Config{
		Root:            root,
		Location:        kst,
		DayBoundaryHour: 4,
		ReadmeName:      "README.md",
		ReservedDirs:    []string{"docs"},
	}
}

func TestRun(t *testing.T) {
	root, h := setup(t)
	now := func() time.Time { return time.Date(2025, 7, 11, 20, 0, 0, 0, kst) }
	m := metrics.New()

	s := New(newConfig(root), h, m, WithClock(now))
	require.NoError(t, s.Scan())
	s.Calculate()
	require.NoError(t, s.Export())
	s.Report()

	junho, err := os.ReadFile(filepath.Join(root, "junho", "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(junho), "# 📚 junho의 백준 스터디 기록")
	assert.Contains(t, string(junho), "- 2025-07-09: 2156번 (포도주 시식) Gold V")
	assert.Contains(t, string(junho), "- **🎯 출석률**: 50.0%")
	assert.Contains(t, string(junho), "## ✍️ 회고\n\n꾸준히 하자.\n")
	assert.NotContains(t, string(junho), "옛 문서")

	hyosang, err := os.ReadFile(filepath.Join(root, "hyosang", "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(hyosang), "- **✅ 성공한 날**: 2일")
	assert.Contains(t, string(hyosang), "- **❌ 실패한 날**: 2일")
	assert.NotContains(t, string(hyosang), "4134")

	rootDoc, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(rootDoc), "| hyosang | 2025-07-08 | 2문제 | 2일 | 2일 | 50.0% | 2025-07-11 |")
	assert.Contains(t, string(rootDoc), "| junho | 2025-07-07 | 2문제 | 2일 | 2일 | 50.0% | 2025-07-09 |")
	assert.Contains(t, string(rootDoc), "- **📈 총 풀이 문제**: 4개")
	assert.Contains(t, string(rootDoc), "## 📌 규칙\n\n- 평일 하루 한 문제\n")
	assert.Contains(t, string(rootDoc), "## 👥 참여자\n\n(자동 생성)\n\n| 이름 | 시작일 |")

	assert.Equal(t, 4.0, testutil.ToFloat64(m.ScanOutcomes.WithLabelValues("scanned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScanOutcomes.WithLabelValues("skipped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Users))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Problems))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocumentsWritten.WithLabelValues("user")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentsWritten.WithLabelValues("root")))
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	root, h := setup(t)
	now := func() time.Time { return time.Date(2025, 7, 11, 20, 0, 0, 0, kst) }

	run := func(m *metrics.Metrics) map[string]string {
		s := New(newConfig(root), h, m, WithClock(now))
		require.NoError(t, s.Scan())
		s.Calculate()
		require.NoError(t, s.Export())

		files := map[string]string{}
		for _, rel := range []string{"README.md", filepath.Join("junho", "README.md"), filepath.Join("hyosang", "README.md")} {
			data, err := os.ReadFile(filepath.Join(root, rel))
			require.NoError(t, err)
			files[rel] = string(data)
		}
		return files
	}

	first := run(metrics.New())
	m := metrics.New()
	second := run(m)

	assert.Equal(t, first, second)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DocumentsWritten.WithLabelValues("user")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DocumentsWritten.WithLabelValues("root")))
}

func TestExportWithoutRootReadme(t *testing.T) {
	root, h := setup(t)
	require.NoError(t, os.Remove(filepath.Join(root, "README.md")))

	s := New(newConfig(root), h, metrics.New())
	require.NoError(t, s.Scan())
	s.Calculate()
	require.NoError(t, s.Export())

	_, err := os.Stat(filepath.Join(root, "README.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestScanMissingRoot(t *testing.T) {
	s := New(newConfig(filepath.Join(t.TempDir(), "missing")), fakeHistory{}, metrics.New())
	assert.Error(t, s.Scan())
}

func TestRunWithDefaultConfig(t *testing.T) {
	root, h := setup(t)
	for _, dir := range []string{filepath.Join("solutions", "prime"), filepath.Join("cmd", "complete-readme"), "study"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}
	t.Chdir(root)

	cfg, err := config.Load(".")
	require.NoError(t, err)
	logger.Init(cfg)
	t.Cleanup(func() { logger.Log = zap.NewNop() })

	now := func() time.Time { return time.Date(2025, 7, 11, 20, 0, 0, 0, kst) }
	s := New(cfg, h, metrics.New(), WithClock(now))
	require.NoError(t, s.Scan())
	s.Calculate()
	require.NoError(t, s.Export())

	// 스캔 전에 기록된 로그로 logs 폴더가 만들어져 있어도 사용자로 인식하지 않는다.
	assert.DirExists(t, "logs")
	assert.Equal(t, []string{"hyosang", "junho"}, s.result.Usernames())

	for _, dir := range []string{"logs", "solutions", "cmd", "study"} {
		assert.NoFileExists(t, filepath.Join(dir, "README.md"))
	}

	rootDoc, err := os.ReadFile("README.md")
	require.NoError(t, err)
	assert.Contains(t, string(rootDoc), "- **👥 참여자 수**: 2명")
	assert.NotContains(t, string(rootDoc), "| logs |")
	assert.NotContains(t, string(rootDoc), "| solutions |")
}

func TestReservedDirs(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name     string
		log      string
		textfile string
		want     []string
	}{
		{"outside root", filepath.Join(t.TempDir(), "study.log"), "", []string{"docs"}},
		{"nested under root", filepath.Join(root, "var", "log", "study.log"), filepath.Join(root, "metrics", "study.prom"), []string{"docs", "var", "metrics"}},
		{"directly in root", filepath.Join(root, "study.log"), "", []string{"docs"}},
		{"no files", "", "", []string{"docs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(root)
			cfg.Log.File = tt.log
			cfg.Metrics.Textfile = tt.textfile

			assert.Equal(t, tt.want, reservedDirs(cfg))
			assert.Equal(t, []string{"docs"}, cfg.ReservedDirs)
		})
	}
}
