package problems

// solved.ac 에서 가져오는 문제 정보
type Summary struct {
	ID    int      // 문제 번호
	Title string   // 문제 제목(한국어)
	Level int      // 티어(0~30)
	Tags  []string // 알고리즘 분류
}

// acmicpc.net 문제 페이지에서 가져오는 문제 본문
type Statement struct {
	Description  string // 문제
	Input        string // 입력
	Output       string // 출력
	SampleInput  string // 예제 입력 1
	SampleOutput string // 예제 출력 1
}

type Problem struct {
	Summary
	Statement
}
