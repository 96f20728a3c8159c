package commands

import "github.com/spf13/cobra"

func (c *CLI) newEvictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evict <class...>",
		Short: "Remove classes from the metadata cache",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Evict(cmd.Context(), args, options(cmd))
		},
	}
}
