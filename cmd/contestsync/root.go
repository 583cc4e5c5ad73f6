package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "contestsync",
		Short:         "LeetCode / Codeforces / CodeChef 比赛聚合服务",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "配置文件路径（默认 ./config/config.yaml）")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newRefreshCommand(ctx))
	rootCmd.AddCommand(newAttachSolutionsCommand(ctx))
	rootCmd.AddCommand(newSyncAllCommand(ctx))
	rootCmd.AddCommand(newContestsCommand(ctx))
	rootCmd.AddCommand(newPurgeCommand(ctx))

	return rootCmd
}
