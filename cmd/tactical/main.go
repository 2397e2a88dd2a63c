package main

import (
	"encoding/json"
	"fmt"
	"os"

	"tactical/internal/domain"
	"tactical/internal/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tactical",
		Short:         "Evaluate tactical allocation strategies against market data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEvaluateCmd())
	return root
}

func newEvaluateCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "evaluate <share-id>",
		Short: "Resolve which allocation of a shared strategy currently applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shareID := args[0]
			log := logger.New().With("run_id", uuid.NewString())
			ctx := logger.AddToContext(cmd.Context(), log)

			deps, err := initializeDependencies(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			document, err := deps.TestfolioClient.GetStrategy(ctx, shareID)
			if err != nil {
				return err
			}
			strategy := strategyFromDocument(document)

			var result *domain.EvaluatedStrategy
			if asOf != "" {
				result, err = deps.StrategyService.EvaluateAsOf(ctx, strategy, shareID, asOf)
			} else {
				result, err = deps.StrategyService.Evaluate(ctx, strategy, shareID)
			}
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluate as of this trading day (YYYY-MM-DD) instead of today")
	return cmd
}
