package workloads

import (
	"context"
	"crypto/sha256"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type hashParams struct {
	Size int `mapstructure:"size"`
}

func newSHA256(_ context.Context, params map[string]any) (*Workload, error) {
	p := hashParams{Size: 1 << 20}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := positive("size", p.Size); err != nil {
		return nil, err
	}

	var (
		data []byte
		want [sha256.Size]byte
	)
	return &Workload{
		Setup: func() error {
			data = []byte(corpus(p.Size))
			want = sha256.Sum256(data)
			return nil
		},
		Run: func() error {
			if sha256.Sum256(data) != want {
				return fmt.Errorf("digest mismatch")
			}
			return nil
		},
	}, nil
}

type fanOutParams struct {
	Shards  int `mapstructure:"shards"`
	Size    int `mapstructure:"size"`
	Workers int `mapstructure:"workers"`
}

// newFanOutHash hashes Shards independent buffers concurrently, bounded by
// Workers goroutines, and folds the digests into one.
func newFanOutHash(ctx context.Context, params map[string]any) (*Workload, error) {
	p := fanOutParams{Shards: 16, Size: 64 << 10, Workers: runtime.GOMAXPROCS(0)}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	for name, v := range map[string]int{"shards": p.Shards, "size": p.Size, "workers": p.Workers} {
		if err := positive(name, v); err != nil {
			return nil, err
		}
	}

	var (
		shards [][]byte
		want   [sha256.Size]byte
	)
	run := func() ([sha256.Size]byte, error) {
		digests := make([][sha256.Size]byte, len(shards))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.Workers)
		for i, shard := range shards {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				digests[i] = sha256.Sum256(shard)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return [sha256.Size]byte{}, err
		}

		h := sha256.New()
		for _, d := range digests {
			h.Write(d[:])
		}
		var out [sha256.Size]byte
		copy(out[:], h.Sum(nil))
		return out, nil
	}

	return &Workload{
		Setup: func() error {
			shards = make([][]byte, p.Shards)
			for i := range shards {
				shards[i] = []byte(fmt.Sprintf("%d:%s", i, corpus(p.Size)))
			}
			var err error
			want, err = run()
			return err
		},
		Run: func() error {
			got, err := run()
			if err != nil {
				return err
			}
			if got != want {
				return fmt.Errorf("combined digest mismatch")
			}
			return nil
		},
	}, nil
}
