package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// purgeCmd groups cache purge operations
var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge cached content",
}

var purgeURLCmd = &cobra.Command{
	Use:   "url <url...>",
	Short: "Purge cached content by exact URL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		receipt, err := purgeClient.PurgeURL(context.Background(), args)
		if err != nil {
			return err
		}
		fmt.Printf("Purge accepted (%s): %d urls\n", receipt.State, len(args))
		return nil
	},
}

var purgeCacheKeyCmd = &cobra.Command{
	Use:   "cachekey <key...>",
	Short: "Purge cached content by cache key",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		receipt, err := purgeClient.PurgeCacheKey(context.Background(), args)
		if err != nil {
			return err
		}
		fmt.Printf("Purge accepted (%s): %d cache keys\n", receipt.State, len(args))
		return nil
	},
}

var purgeWildcardCmd = &cobra.Command{
	Use:   "wildcard <pattern>",
	Short: "Purge cached content matching a wildcard pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		receipt, err := purgeClient.PurgeWildcard(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Purge accepted (%s): %s\n", receipt.State, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
	purgeCmd.AddCommand(purgeURLCmd)
	purgeCmd.AddCommand(purgeCacheKeyCmd)
	purgeCmd.AddCommand(purgeWildcardCmd)
}
