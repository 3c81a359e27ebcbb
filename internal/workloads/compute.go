package workloads

import (
	"context"
	"fmt"
)

type fibonacciParams struct {
	N int `mapstructure:"n"`
}

func newFibonacci(_ context.Context, params map[string]any) (*Workload, error) {
	p := fibonacciParams{N: 25}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := positive("n", p.N); err != nil {
		return nil, err
	}
	if p.N > 40 {
		return nil, fmt.Errorf("n must be at most 40, got %d", p.N)
	}

	want := fibIter(p.N)
	return &Workload{
		Run: func() error {
			if got := fibRec(p.N); got != want {
				return fmt.Errorf("fib(%d) = %d, want %d", p.N, got, want)
			}
			return nil
		},
	}, nil
}

func fibRec(n int) int {
	if n < 2 {
		return n
	}
	return fibRec(n-1) + fibRec(n-2)
}

func fibIter(n int) int {
	a, b := 0, 1
	for range n {
		a, b = b, a+b
	}
	return a
}

type sieveParams struct {
	Limit int `mapstructure:"limit"`
}

func newSieve(_ context.Context, params map[string]any) (*Workload, error) {
	p := sieveParams{Limit: 100_000}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.Limit < 2 {
		return nil, fmt.Errorf("limit must be at least 2, got %d", p.Limit)
	}

	var (
		composite []bool
		want      int
	)
	return &Workload{
		Setup: func() error {
			composite = make([]bool, p.Limit+1)
			want = countPrimes(composite)
			return nil
		},
		Run: func() error {
			clear(composite)
			if got := countPrimes(composite); got != want {
				return fmt.Errorf("sieve(%d) found %d primes, want %d", p.Limit, got, want)
			}
			return nil
		},
		Teardown: func() error {
			composite = nil
			return nil
		},
	}, nil
}

// countPrimes runs the sieve of Eratosthenes over a zeroed table.
func countPrimes(composite []bool) int {
	n := 0
	for i := 2; i < len(composite); i++ {
		if composite[i] {
			continue
		}
		n++
		for j := i * i; j < len(composite); j += i {
			composite[j] = true
		}
	}
	return n
}
