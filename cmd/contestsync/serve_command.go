package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ContestSync/internal/api"
	"ContestSync/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var noSchedule bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务与定时刷新",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := ctx.ensureApp(runCtx)
			if err != nil {
				return err
			}
			cfg := a.cfg

			gin.SetMode(cfg.Server.Mode)
			a.logger.Infof("Gin运行模式: %s", cfg.Server.Mode)
			router := api.NewRouter(cfg.Server,
				api.NewContestHandler(a.contestSvc, a.logger),
				api.NewSyncHandler(a.syncSvc, a.solutionSvc, a.runs, a.logger),
				a.logger)

			interval := cfg.Sync.Interval
			if noSchedule {
				interval = 0
			}
			sched := scheduler.NewScheduler(a.syncSvc, a.solutionSvc, interval, a.logger)
			sched.Start()
			defer sched.Stop()

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger.Infof("服务启动在 :%d", cfg.Server.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("服务启动失败: %w", err)
				}
				return nil
			case <-runCtx.Done():
			}

			a.logger.Info("收到退出信号，正在关闭服务…")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("服务关闭失败: %w", err)
			}
			a.logger.Info("服务已关闭")
			return nil
		},
	}
	cmd.Flags().BoolVar(&noSchedule, "no-schedule", false, "不在进程内定时刷新（由外部 cron 调用 refresh）")
	return cmd
}
