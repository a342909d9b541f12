// 백준 4134 다음 소수
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/darkkaiser/baekjoon-study/solutions/prime"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	//goland:noinspection GoUnhandledErrorResult
	defer writer.Flush()

	var count int
	if _, err := fmt.Fscan(reader, &count); err != nil {
		return fmt.Errorf("테스트 케이스 수를 읽을 수 없습니다: %w", err)
	}

	for i := 0; i < count; i++ {
		var m int
		if _, err := fmt.Fscan(reader, &m); err != nil {
			return fmt.Errorf("%d번째 입력을 읽을 수 없습니다: %w", i+1, err)
		}
		fmt.Fprintln(writer, prime.Next(m))
	}

	return nil
}
