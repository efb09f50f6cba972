package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/router"
	"github.com/Frenky19/QRkot-spreadsheets/internal/task"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务与定时任务",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := requireApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.users.EnsureSuperuser(ctx, cfg.Auth.FirstSuperuserEmail, cfg.Auth.FirstSuperuserPassword); err != nil {
			return err
		}

		// 启动定时任务
		var jobs []task.Job
		if cfg.Task.ReportInterval > 0 {
			jobs = append(jobs, task.NewReportExportJob(a.reports, time.Duration(cfg.Task.ReportInterval)*time.Second))
		}
		if cfg.Task.AuditInterval > 0 {
			jobs = append(jobs, task.NewFundingAuditJob(a.audit, time.Duration(cfg.Task.AuditInterval)*time.Second))
		}
		tasks, err := task.NewManager(jobs...)
		if err != nil {
			return err
		}
		tasks.Start()
		defer tasks.Stop()

		// 设置Gin模式
		if cfg.Server.Mode == "release" {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: router.Setup(a.routerDeps()),
		}

		go func() {
			logger.Info("Server starting on port %s", cfg.Server.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("Failed to start server: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown: %v", err)
		}
		return nil
	},
}
