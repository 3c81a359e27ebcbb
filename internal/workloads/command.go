package workloads

import (
	"context"
	"fmt"
	"strings"

	"github.com/spboyer/scorebench/internal/hooks"
)

// newCommand runs an external command once per iteration.
func newCommand(ctx context.Context, params map[string]any) (*Workload, error) {
	var c hooks.CommandConfig
	if err := decode(params, &c); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Command) == "" {
		return nil, fmt.Errorf("command is required")
	}

	cmds := []hooks.CommandConfig{c}
	return &Workload{
		Run: func() error {
			return hooks.Run(ctx, "run", cmds)
		},
	}, nil
}
