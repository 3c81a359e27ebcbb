package workloads

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var words = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel",
	"india", "juliet", "kilo", "lima", "mike", "november", "oscar", "papa",
	"user@example.com", "2024-01-15", "v1.2.3", "https://example.org/path",
}

// corpus returns deterministic text of roughly size bytes.
func corpus(size int) string {
	var sb strings.Builder
	sb.Grow(size + 32)
	for i := 0; sb.Len() < size; i++ {
		sb.WriteString(words[(i*7+i/len(words))%len(words)])
		if i%12 == 11 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

type regexpParams struct {
	Patterns []string `mapstructure:"patterns"`
	Size     int      `mapstructure:"size"`
}

var defaultPatterns = []string{
	`[\w.+-]+@[\w-]+\.[\w.]+`,
	`\d{4}-\d{2}-\d{2}`,
	`v\d+\.\d+\.\d+`,
	`https?://[^\s]+`,
}

func newRegexp(_ context.Context, params map[string]any) (*Workload, error) {
	p := regexpParams{Patterns: defaultPatterns, Size: 64 << 10}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := positive("size", p.Size); err != nil {
		return nil, err
	}
	if len(p.Patterns) == 0 {
		return nil, fmt.Errorf("at least one pattern is required")
	}

	res := make([]*regexp.Regexp, 0, len(p.Patterns))
	for _, pat := range p.Patterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pat, err)
		}
		res = append(res, re)
	}

	var text string
	return &Workload{
		Setup: func() error {
			text = corpus(p.Size)
			return nil
		},
		Run: func() error {
			total := 0
			for _, re := range res {
				total += len(re.FindAllStringIndex(text, -1))
			}
			if total == 0 {
				return fmt.Errorf("no matches in %d bytes", len(text))
			}
			return nil
		},
	}, nil
}

type markdownParams struct {
	Sections int `mapstructure:"sections"`
}

func newMarkdown(_ context.Context, params map[string]any) (*Workload, error) {
	p := markdownParams{Sections: 50}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := positive("sections", p.Sections); err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var (
		src []byte
		out bytes.Buffer
	)
	return &Workload{
		Setup: func() error {
			src = markdownDocument(p.Sections)
			return nil
		},
		Run: func() error {
			out.Reset()
			if err := md.Convert(src, &out); err != nil {
				return err
			}
			if out.Len() == 0 {
				return fmt.Errorf("empty render")
			}
			return nil
		},
	}, nil
}

func markdownDocument(sections int) []byte {
	var sb strings.Builder
	for i := range sections {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		fmt.Fprintf(&sb, "Some *emphasis*, some **strong** text and `code` with a [link](https://example.org/%d).\n\n", i)
		sb.WriteString("- item one\n- item two\n  - nested ~~strike~~\n\n")
		sb.WriteString("| name | value |\n|------|-------|\n")
		for j := range 4 {
			fmt.Fprintf(&sb, "| %s | %d |\n", words[(i+j)%len(words)], i*j)
		}
		sb.WriteString("\n```go\nfunc main() {}\n```\n\n")
	}
	return []byte(sb.String())
}
