package main

import (
	"fmt"
	"strings"
	"time"

	"ContestSync/internal/model"
	"ContestSync/internal/service"

	"github.com/spf13/cobra"
)

func newContestsCommand(ctx *commandContext) *cobra.Command {
	var (
		platform  string
		query     string
		startDate string
		endDate   string
		upcoming  bool
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "contests",
		Short: "以表格列出已入库的比赛",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}

			var list []*model.Contest
			switch {
			case query != "":
				res, err := a.contestSvc.SearchContests(cmd.Context(), model.SearchQuery{
					Query:    query,
					Platform: model.PlatformType(strings.ToLower(platform)),
					Page:     1,
					Limit:    limit,
				})
				if err != nil {
					return err
				}
				list = res.Contests
			case upcoming:
				if list, err = a.contestSvc.UpcomingContests(cmd.Context()); err != nil {
					return err
				}
			default:
				r, err := service.ParseDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				res, err := a.contestSvc.ListContests(cmd.Context(), service.ListQuery{Range: r, Page: 1, Limit: limit})
				if err != nil {
					return err
				}
				list = res.Contests
			}

			if platform != "" && query == "" {
				list = filterPlatform(list, model.PlatformType(strings.ToLower(platform)))
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "没有符合条件的比赛")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderContests(list))
			return nil
		},
	}
	cmd.Flags().StringVarP(&platform, "platform", "p", "", "平台过滤")
	cmd.Flags().StringVarP(&query, "query", "q", "", "按名称/ID搜索")
	cmd.Flags().StringVar(&startDate, "start", "", "开始日期 YYYY-MM-DD")
	cmd.Flags().StringVar(&endDate, "end", "", "结束日期 YYYY-MM-DD（含当天）")
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "只看即将开始的比赛")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "最多显示条数")
	return cmd
}

func filterPlatform(list []*model.Contest, platform model.PlatformType) []*model.Contest {
	out := list[:0]
	for _, c := range list {
		if c.Platform == platform {
			out = append(out, c)
		}
	}
	return out
}

func renderContests(list []*model.Contest) string {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		solution := ""
		if info, err := c.Solution(); err == nil && info != nil {
			solution = info.URL
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.ID),
			string(c.Platform),
			c.ContestID,
			c.ContestName,
			c.StartTime.UTC().Format(time.DateTime),
			(time.Duration(c.DurationSeconds) * time.Second).String(),
			solution,
		})
	}
	return renderTable(
		[]string{"ID", "Platform", "Contest", "Name", "Start (UTC)", "Duration", "Solution"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
