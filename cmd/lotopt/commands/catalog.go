package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/lotopt/internal/report"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "종목 카탈로그 조회",
	Long: `사용 중인 종목 카탈로그(내장 또는 --catalog/CATALOG_PATH)를 출력합니다.

Example:
  go run ./cmd/lotopt catalog
  go run ./cmd/lotopt catalog --catalog ./my_catalog.yaml`,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return report.WriteCatalog(cmd.OutOrStdout(), a.catalog, a.optimizer.CatalogHash())
}
