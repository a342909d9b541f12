package boj

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/baekjoon-study/scrape/problems"
	"github.com/darkkaiser/baekjoon-study/utils"
)

type acmicpc struct {
	name      string
	baseUrl   string
	userAgent string

	client *http.Client
}

func NewAcmicpc(baseUrl string, userAgent string, timeout time.Duration) *acmicpc {
	return &acmicpc{
		name: "백준",

		baseUrl: baseUrl,

		userAgent: userAgent,

		client: &http.Client{Timeout: timeout},
	}
}

func (a *acmicpc) ProblemUrl(id int) string {
	return fmt.Sprintf("%s/problem/%d", a.baseUrl, id)
}

func (a *acmicpc) ScrapeStatement(ctx context.Context, id int) (*problems.Statement, error) {
	pageUrl := a.ProblemUrl(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageUrl, nil)
	if err != nil {
		return nil, err
	}
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	res, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s 문제 페이지 요청이 실패하였습니다(문제:%d): %w", a.name, id, err)
	}
	defer res.Body.Close()

	if err := utils.CheckStatusCode(res); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, err
	}

	// 문제 본문이 있는지 확인한다.
	if doc.Find("#problem_description").Length() != 1 {
		return nil, fmt.Errorf("%s 문제 데이터 파싱이 실패하였습니다(CSS셀렉터를 확인하세요, URL:%s)", a.name, pageUrl)
	}

	return &problems.Statement{
		Description:  utils.CleanString(doc.Find("#problem_description").Text()),
		Input:        utils.CleanString(doc.Find("#problem_input").Text()),
		Output:       utils.CleanString(doc.Find("#problem_output").Text()),
		SampleInput:  sampleText(doc.Find("#sample-input-1")),
		SampleOutput: sampleText(doc.Find("#sample-output-1")),
	}, nil
}

// sampleText 예제는 줄바꿈을 유지한다.
func sampleText(s *goquery.Selection) string {
	text := strings.ReplaceAll(s.Text(), "\r\n", "\n")

	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
