package scrape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/darkkaiser/baekjoon-study/config"
	"github.com/darkkaiser/baekjoon-study/metrics"
	"github.com/darkkaiser/baekjoon-study/scrape/problems"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummaries struct {
	errs   map[int]error
	delay  time.Duration
	calls  []int
	starts []time.Time
}

func (f *fakeSummaries) ScrapeSummary(_ context.Context, id int) (*problems.Summary, error) {
	f.calls = append(f.calls, id)
	f.starts = append(f.starts, time.Now())
	time.Sleep(f.delay)
	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	return &problems.Summary{ID: id, Title: fmt.Sprintf("문제 %d", id), Level: 5, Tags: []string{"구현"}}, nil
}

type fakeStatements struct {
	calls []int
	ends  []time.Time
}

func (f *fakeStatements) ScrapeStatement(_ context.Context, id int) (*problems.Statement, error) {
	f.calls = append(f.calls, id)
	f.ends = append(f.ends, time.Now())
	return &problems.Statement{Description: "설명", Input: "입력", Output: "출력", SampleInput: "1", SampleOutput: "2"}, nil
}

func (f *fakeStatements) ProblemUrl(id int) string {
	return fmt.Sprintf("https://www.acmicpc.net/problem/%d", id)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func testConfig(root string) *config.Config {
	return &config.Config{Root: root, ReadmeName: "README.md"}
}

func TestScrape(t *testing.T) {
	root := t.TempDir()

	completed := "# [#1000]\n\n## 📍 문제 정보\n\n- **문제 번호**: 1000\n"
	writeFile(t, filepath.Join(root, "README.md"), "# 스터디\n")
	writeFile(t, filepath.Join(root, "alice", "1000", "README.md"), completed)
	writeFile(t, filepath.Join(root, "alice", "1929", "README.md"), "# [#1929]\n")
	writeFile(t, filepath.Join(root, "alice", "4134", "README.md"), "# [#4134]\n")
	writeFile(t, filepath.Join(root, "bob", "2557", "README.md"), "# [#2557]\n\n## 💭 풀이 과정\n\n출력만 하면 된다.\n")
	writeFile(t, filepath.Join(root, "bob", "2557", "notes.md"), "# [#2557]\n")
	writeFile(t, filepath.Join(root, ".github", "README.md"), "# [#9999]\n")

	summaries := &fakeSummaries{errs: map[int]error{4134: errors.New("solved.ac 응답 없음")}}
	statements := &fakeStatements{}
	m := metrics.New()

	s := New(testConfig(root), summaries, statements, m)
	require.NoError(t, s.Find())
	require.NoError(t, s.Scrape(context.Background()))
	assert.Equal(t, 2, s.Export())

	assert.Equal(t, []int{1929, 4134, 2557}, summaries.calls)
	// 요약 정보를 가져오지 못한 문제는 본문을 요청하지 않는다.
	assert.Equal(t, []int{1929, 2557}, statements.calls)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Completions.WithLabelValues("failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Completions.WithLabelValues("success")))

	doc := readFile(t, filepath.Join(root, "alice", "1929", "README.md"))
	assert.Contains(t, doc, "[#1929. 문제 1929](https://www.acmicpc.net/problem/1929)")
	assert.Contains(t, doc, "## 📍 문제 정보")

	doc = readFile(t, filepath.Join(root, "bob", "2557", "README.md"))
	assert.Contains(t, doc, "출력만 하면 된다.")
	assert.NotContains(t, doc, "여기에 풀이 과정을 작성하세요.")

	assert.Equal(t, "# [#4134]\n", readFile(t, filepath.Join(root, "alice", "4134", "README.md")))
	assert.Equal(t, completed, readFile(t, filepath.Join(root, "alice", "1000", "README.md")))
	assert.Equal(t, "# [#9999]\n", readFile(t, filepath.Join(root, ".github", "README.md")))
	assert.Equal(t, "# [#2557]\n", readFile(t, filepath.Join(root, "bob", "2557", "notes.md")))

	// 한 번 완성된 README 는 다시 처리하지 않는다.
	s = New(testConfig(root), summaries, statements, m)
	require.NoError(t, s.Find())
	require.NoError(t, s.Scrape(context.Background()))
	assert.Equal(t, 0, s.Export())
	assert.Equal(t, []int{1929, 4134, 2557, 4134}, summaries.calls)
}

func TestScrapePausesAfterEachProblem(t *testing.T) {
	root := t.TempDir()
	for _, id := range []string{"1000", "1001", "1002"} {
		writeFile(t, filepath.Join(root, "alice", id, "README.md"), fmt.Sprintf("# [#%s]\n", id))
	}

	const interval = 50 * time.Millisecond
	cfg := testConfig(root)
	cfg.Scrape.ProblemInterval = interval

	// 문제 하나를 처리하는 시간이 간격보다 길어도 다음 문제 전에는 간격만큼 쉰다.
	summaries := &fakeSummaries{delay: 2 * interval}
	statements := &fakeStatements{}

	s := New(cfg, summaries, statements, metrics.New())
	require.NoError(t, s.Find())
	require.NoError(t, s.Scrape(context.Background()))

	require.Len(t, summaries.starts, 3)
	require.Len(t, statements.ends, 3)
	for i := 1; i < 3; i++ {
		assert.GreaterOrEqual(t, summaries.starts[i].Sub(statements.ends[i-1]), interval)
	}
}

func TestPause(t *testing.T) {
	assert.NoError(t, pause(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pause(ctx, time.Hour), context.Canceled)
}

func TestScrapeCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alice", "1929", "README.md"), "# [#1929]\n")

	summaries := &fakeSummaries{}
	s := New(testConfig(root), summaries, &fakeStatements{}, metrics.New())
	require.NoError(t, s.Find())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Scrape(ctx), context.Canceled)
	assert.Empty(t, summaries.calls)
	assert.Equal(t, 0, s.Export())
}

func TestFindMissingRoot(t *testing.T) {
	s := New(testConfig(filepath.Join(t.TempDir(), "missing")), &fakeSummaries{}, &fakeStatements{}, metrics.New())

	require.NoError(t, s.Find())
	assert.Empty(t, s.readmes)
}
