package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoCookingBlog/GoCookingBlog/internal/daemon"
)

const seedTimeout = time.Minute

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default categories and sample recipes into an empty database",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
		defer cancel()

		st, err := daemon.OpenStore(ctx, &cfg)
		if err != nil {
			return err
		}
		defer st.Close(context.Background()) //nolint:errcheck

		result, err := daemon.Seed(ctx, st)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "inserted %d categories and %d recipes\n", result.Categories, result.Recipes)

		return err
	},
}
