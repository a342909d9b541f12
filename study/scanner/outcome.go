package scanner

// 문제 폴더 하나에 대한 스캔 결과 상태
type Status int

// 지원가능한 스캔 결과 상태 값
const (
	StatusScanned      Status = iota // 정상
	StatusFallbackDate               // 커밋 이력을 사용할 수 없어 오늘 날짜로 대체
	StatusSkipped                    // 제외
)

// 지원가능한 스캔 결과 상태 문자열
var StatusString = []string{"scanned", "fallback_date", "skipped"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(StatusString) {
		return "unknown"
	}
	return StatusString[s]
}

type Outcome struct {
	User    string
	Problem string // 문제 폴더명
	Path    string // 루트 기준 문서 경로
	Status  Status
	Reason  string
}
