package boj

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/baekjoon-study/scrape/problems"
	"github.com/darkkaiser/baekjoon-study/utils"
)

type solvedac struct {
	name    string
	baseUrl string

	client *http.Client
}

/*
 * Convert JSON to Go struct : https://mholt.github.io/json-to-go/
 */
type solvedacProblem struct {
	ProblemID int           `json:"problemId"`
	TitleKo   string        `json:"titleKo"`
	Level     int           `json:"level"`
	Tags      []solvedacTag `json:"tags"`
}

type solvedacTag struct {
	Key          string                `json:"key"`
	DisplayNames []solvedacDisplayName `json:"displayNames"`
}

type solvedacDisplayName struct {
	Language string `json:"language"`
	Name     string `json:"name"`
	Short    string `json:"short"`
}

func NewSolvedac(baseUrl string, timeout time.Duration) *solvedac {
	return &solvedac{
		name: "solved.ac",

		baseUrl: baseUrl,

		client: &http.Client{Timeout: timeout},
	}
}

func (s *solvedac) ScrapeSummary(ctx context.Context, id int) (*problems.Summary, error) {
	apiUrl := fmt.Sprintf("%s/api/v3/problem/lookup?problemIds=%s", s.baseUrl, url.QueryEscape(strconv.Itoa(id)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s API 요청이 실패하였습니다(문제:%d): %w", s.name, id, err)
	}
	defer res.Body.Close()

	if err := utils.CheckStatusCode(res); err != nil {
		return nil, err
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var results []solvedacProblem
	if err := json.Unmarshal(resBodyBytes, &results); err != nil {
		return nil, fmt.Errorf("%s API 응답 데이터 파싱이 실패하였습니다(문제:%d): %w", s.name, id, err)
	}

	for _, p := range results {
		if p.ProblemID != id {
			continue
		}

		summary := &problems.Summary{
			ID:    p.ProblemID,
			Title: utils.CleanString(p.TitleKo),
			Level: p.Level,
		}
		for _, tag := range p.Tags {
			if name := tagName(tag.DisplayNames); name != "" {
				summary.Tags = append(summary.Tags, name)
			}
		}
		return summary, nil
	}

	return nil, fmt.Errorf("%s 에서 문제 정보를 찾을 수 없습니다(문제:%d)", s.name, id)
}

// tagName 한국어 이름을 우선하고, 없으면 첫 번째 이름을 사용한다.
func tagName(names []solvedacDisplayName) string {
	for _, n := range names {
		if n.Language == "ko" {
			return n.Name
		}
	}
	if len(names) > 0 {
		return names[0].Name
	}
	return ""
}
