// Package prime 시도 나눗셈으로 소수를 판별한다.
package prime

func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Range n 이상 m 이하의 소수를 오름차순으로 반환한다.
func Range(n, m int) []int {
	var primes []int
	for i := max(n, 2); i <= m; i++ {
		if IsPrime(i) {
			primes = append(primes, i)
		}
	}
	return primes
}

// Next m 이상인 가장 작은 소수
func Next(m int) int {
	if m < 2 {
		return 2
	}
	for !IsPrime(m) {
		m++
	}
	return m
}
