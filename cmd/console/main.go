package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mineral-catalog/internal/config"
	"mineral-catalog/internal/console"
	"mineral-catalog/internal/domains/mineral/delimited"
	"mineral-catalog/pkg/container"
)

var useDB bool

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minerals",
	Short: "Mineral catalog console",
	Long:  "Interactive console for the mineral catalog. With --db the collection is loaded from storage at start.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := build(useDB)
		if err != nil {
			return err
		}
		defer c.Cleanup()

		menu := console.NewMenu(c.Collection, c.Exporter, c.MineralRepo, os.Stdin, os.Stdout)
		return menu.Run(cmd.Context())
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a delimited file into storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := build(true)
		if err != nil {
			return err
		}
		defer c.Cleanup()
		if c.MineralRepo == nil {
			return fmt.Errorf("import needs a database")
		}

		result, err := delimited.ReadFile(args[0])
		if err != nil {
			return err
		}
		c.Collection.AddAll(result.Minerals)

		if err := c.MineralRepo.SaveAll(cmd.Context(), c.Collection.All()); err != nil {
			return fmt.Errorf("save: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d minerals, skipped %d rows. Storage now holds %d.\n",
			len(result.Minerals), result.Skipped, c.Collection.Size())
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export the stored collection to a file (.xlsx, .html, .csv or delimited)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := build(true)
		if err != nil {
			return err
		}
		defer c.Cleanup()
		if c.MineralRepo == nil {
			return fmt.Errorf("export needs a database")
		}

		if err := console.ExportToFile(c.Exporter, args[0], c.Collection.All()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d minerals to %s.\n", c.Collection.Size(), args[0])
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print collection statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := build(useDB)
		if err != nil {
			return err
		}
		defer c.Cleanup()

		console.WriteStats(cmd.OutOrStdout(), c.Collection.Stats())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useDB, "db", false, "load the collection from storage")
	rootCmd.AddCommand(importCmd, exportCmd, statsCmd)
}

// build loads config and the catalog layers. withDB overrides DB_ENABLED.
func build(withDB bool) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Database.Enabled = withDB

	return container.NewCatalogContainer(cfg)
}
