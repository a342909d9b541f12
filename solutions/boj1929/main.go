// 백준 1929 소수 구하기
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

	var n, m int
	if _, err := fmt.Fscan(reader, &n, &m); err != nil {
		return fmt.Errorf("입력을 읽을 수 없습니다: %w", err)
	}

	for _, p := range prime.Range(n, m) {
		fmt.Fprintln(writer, p)
	}

	return nil
}
