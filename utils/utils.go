package utils

import (
	"fmt"
	"net/http"
	"strings"
)

func CheckStatusCode(res *http.Response) error {
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("요청이 실패하였습니다(Status:%d, URL:%s)", res.StatusCode, res.Request.URL)
	}
	return nil
}

func CleanString(str string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(str)), " ")
}

func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// IsDigits 문자열이 비어있지 않고 숫자로만 구성되어 있는지 확인한다.
func IsDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
