package commands

import "github.com/spf13/cobra"

func (c *CLI) newWarmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Resolve every class to fill the metadata cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Warm(cmd.Context(), options(cmd))
			return err
		},
	}
}
