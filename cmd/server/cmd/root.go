package cmd

import (
	"os"

	"github.com/Frenky19/QRkot-spreadsheets/internal/config"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "qrkot",
	Short: "QRKot 慈善基金后端",
	Long:  `QRKot 接收用户捐款，按先到先得的顺序分配给慈善项目，并把已关闭项目的排行导出到 Google 表格。`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 加载配置
		cfg = config.Load()
		return logger.Init(cfg.Log)
	},
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	defer logger.Sync()

	rootCmd.AddCommand(serveCmd, migrateCmd, reportCmd, createSuperuserCmd)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
