package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "打印已关闭项目排行",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		export, _ := cmd.Flags().GetBool("export")
		if export {
			result, err := a.reports.Export(cmd.Context())
			if err != nil {
				return err
			}
			return enc.Encode(result)
		}

		rows, err := a.reports.ClosedProjects(cmd.Context())
		if err != nil {
			return err
		}
		return enc.Encode(rows)
	},
}

func init() {
	reportCmd.Flags().Bool("export", false, "导出到配置的 Google 表格")
}
