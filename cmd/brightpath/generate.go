package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brightpath-ai/brightpath/pkg/ledger"
	"github.com/brightpath-ai/brightpath/pkg/models"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		critical   bool
		contextKVs []string
	)

	cmd := &cobra.Command{
		Use:   "generate <kind>",
		Short: "Generate one intervention from the command line",
		Long: "Generate a single piece of tutoring content. Context is passed as\n" +
			"repeated --ctx key=value flags, e.g.:\n\n" +
			"  brightpath generate explain --ctx concept=recursion --ctx student_grade_level=8",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			reqCtx := make(map[string]string, len(contextKVs))
			for _, kv := range contextKVs {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("invalid --ctx value %q (want key=value)", kv)
				}
				reqCtx[k] = v
			}

			logger := zap.NewNop()
			gen, _, cleanup, err := buildCore(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			led := ledger.New(cfg.Cost.SessionLimitUSD, cfg.Cost.LifetimeLimitUSD, cfg.Cost.Prices, logger)

			req := models.GenerationRequest{
				Kind:     args[0],
				Context:  reqCtx,
				Priority: models.PriorityNormal,
			}
			if critical {
				req.Priority = models.PriorityCritical
			}

			result, err := gen.Generate(context.Background(), req, led)
			if err != nil {
				return err
			}

			fmt.Println(result.Content)
			if result.Model != models.ModelFallback {
				stats := led.Stats()
				fmt.Printf("\nmodel: %s  tokens: %d  cost: $%.4f  cached: %v\n",
					result.Model, result.TokensUsed, stats.TotalCost, result.FromCache)
			} else {
				fmt.Println("\n(fallback template, backend not reached)")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&critical, "critical", false, "bypass the rate limiter")
	cmd.Flags().StringArrayVar(&contextKVs, "ctx", nil, "context key=value (repeatable)")
	return cmd
}
