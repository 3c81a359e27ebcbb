package workloads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// record is the document shape shared by the serialization workloads.
type record struct {
	ID      int               `json:"id" yaml:"id"`
	Name    string            `json:"name" yaml:"name"`
	Score   float64           `json:"score" yaml:"score"`
	Active  bool              `json:"active" yaml:"active"`
	Tags    []string          `json:"tags" yaml:"tags"`
	Attribs map[string]string `json:"attribs" yaml:"attribs"`
}

func makeRecords(n int) []record {
	out := make([]record, n)
	for i := range out {
		out[i] = record{
			ID:     i,
			Name:   words[i%len(words)],
			Score:  float64(i) * 1.5,
			Active: i%2 == 0,
			Tags:   []string{words[(i+1)%len(words)], words[(i+2)%len(words)]},
			Attribs: map[string]string{
				"region": words[(i+3)%len(words)],
				"tier":   fmt.Sprint(i % 3),
			},
		}
	}
	return out
}

type recordsParams struct {
	Records int `mapstructure:"records"`
}

func newJSON(_ context.Context, params map[string]any) (*Workload, error) {
	p := recordsParams{Records: 200}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := positive("records", p.Records); err != nil {
		return nil, err
	}

	var in []record
	return &Workload{
		Setup: func() error {
			in = makeRecords(p.Records)
			return nil
		},
		Run: func() error {
			data, err := json.Marshal(in)
			if err != nil {
				return err
			}
			var out []record
			if err := json.Unmarshal(data, &out); err != nil {
				return err
			}
			return sameLen(len(in), len(out))
		},
	}, nil
}

func newYAML(_ context.Context, params map[string]any) (*Workload, error) {
	p := recordsParams{Records: 50}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := positive("records", p.Records); err != nil {
		return nil, err
	}

	var in []record
	return &Workload{
		Setup: func() error {
			in = makeRecords(p.Records)
			return nil
		},
		Run: func() error {
			data, err := yaml.Marshal(in)
			if err != nil {
				return err
			}
			var out []record
			if err := yaml.Unmarshal(data, &out); err != nil {
				return err
			}
			return sameLen(len(in), len(out))
		},
	}, nil
}

type zstdParams struct {
	Size  int    `mapstructure:"size"`
	Level string `mapstructure:"level"`
}

func newZstd(_ context.Context, params map[string]any) (*Workload, error) {
	p := zstdParams{Size: 256 << 10, Level: "default"}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := positive("size", p.Size); err != nil {
		return nil, err
	}
	ok, level := zstd.EncoderLevelFromString(p.Level)
	if !ok {
		return nil, fmt.Errorf("unknown zstd level %q", p.Level)
	}

	var (
		payload    []byte
		compressed []byte
		restored   []byte
		enc        *zstd.Encoder
		dec        *zstd.Decoder
	)
	return &Workload{
		Setup: func() error {
			var err error
			if enc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1)); err != nil {
				return err
			}
			if dec, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1)); err != nil {
				return err
			}
			payload = []byte(corpus(p.Size))
			return nil
		},
		Run: func() error {
			compressed = enc.EncodeAll(payload, compressed[:0])
			var err error
			restored, err = dec.DecodeAll(compressed, restored[:0])
			if err != nil {
				return err
			}
			if !bytes.Equal(payload, restored) {
				return fmt.Errorf("round trip mismatch")
			}
			return nil
		},
		Teardown: func() error {
			var err error
			if enc != nil {
				err = enc.Close()
			}
			if dec != nil {
				dec.Close()
			}
			return err
		},
	}, nil
}

func sameLen(want, got int) error {
	if want != got {
		return fmt.Errorf("decoded %d records, want %d", got, want)
	}
	return nil
}
