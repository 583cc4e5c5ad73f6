package main

import (
	"fmt"
	"strconv"
	"strings"

	"ContestSync/internal/model"

	"github.com/spf13/cobra"
)

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "拉取各平台比赛并入库",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if platform != "" {
				stats, err := a.syncSvc.SyncPlatform(cmd.Context(), model.PlatformType(strings.ToLower(platform)))
				if stats != nil {
					fmt.Fprintln(cmd.OutOrStdout(), renderRefreshStats([]*model.PlatformSyncStats{stats}))
				}
				return err
			}
			report := a.syncSvc.RefreshAll(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), renderRefreshStats(report.Platforms))
			return nil
		},
	}
	cmd.Flags().StringVarP(&platform, "platform", "p", "", "只刷新指定平台（leetcode/codeforces/codechef）")
	return cmd
}

func newAttachSolutionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "attach-solutions",
		Short: "按题解播放列表匹配比赛并写入题解视频",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			report := a.solutionSvc.AttachSolutions(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), renderSolutionStats(report.Platforms))
			return nil
		},
	}
}

func newSyncAllCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-all",
		Short: "刷新比赛后匹配题解（等同 /trigger-all）",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			refresh := a.syncSvc.RefreshAll(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), renderRefreshStats(refresh.Platforms))
			solutions := a.solutionSvc.AttachSolutions(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), renderSolutionStats(solutions.Platforms))
			return nil
		},
	}
}

func newPurgeCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "清空比赛表",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("purge 会删除全部比赛，确认请加 --yes")
			}
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			n, err := a.contestSvc.DeleteAllContests(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已删除 %s 条比赛\n", strconv.FormatInt(n, 10))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "确认删除")
	return cmd
}

func renderRefreshStats(list []*model.PlatformSyncStats) string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			string(s.Platform),
			strconv.Itoa(s.Fetched),
			strconv.Itoa(s.Converted),
			strconv.Itoa(s.Skipped),
			strconv.Itoa(s.Saved),
			strconv.Itoa(s.Failed),
			s.Error,
		})
	}
	return renderTable(
		[]string{"Platform", "Fetched", "Converted", "Skipped", "Saved", "Failed", "Error"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}

func renderSolutionStats(list []*model.SolutionStats) string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			string(s.Platform),
			strconv.Itoa(s.Videos),
			strconv.Itoa(s.Updated),
			strconv.Itoa(s.NotFound),
			strconv.Itoa(s.Unparsed),
			strconv.Itoa(s.Errors),
		})
	}
	return renderTable(
		[]string{"Platform", "Videos", "Updated", "Not Found", "Unparsed", "Errors"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}
