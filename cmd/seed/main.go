package main

import (
	"fmt"
	"os"

	"github.com/marcp/critics-eye-backend/config"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/internal/catalog"
	"github.com/marcp/critics-eye-backend/internal/db"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	ownerUsername string
	assumeYes     bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed and import data for The Critic's Eye",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		logger.Initialize(logger.Config{Level: level, Format: "console", EnableColor: true})
	},
	SilenceUsage: true,
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Insert the default users, product types and genres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return db.Seed(db.GetDB())
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Bulk import a product catalog from a spreadsheet",
	Long: `Reads the first sheet of an xlsx workbook. Columns, after a header row:

  Title | Description | Type | Author | Genres (comma separated) | Image URL

Unknown product types and genres are created. Every product is owned by --owner.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, summary, err := catalog.ReadFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rows read: %d, valid: %d, skipped: %d\n", summary.TotalRows, len(entries), summary.Skipped)
		if len(entries) == 0 {
			fmt.Fprintln(out, "Nothing to import.")
			return nil
		}

		if !assumeYes {
			fmt.Fprint(out, "Do you want to proceed with the import? (yes/no): ")
			var confirm string
			fmt.Fscanln(cmd.InOrStdin(), &confirm)
			if confirm != "yes" && confirm != "y" {
				fmt.Fprintln(out, "Import cancelled.")
				return nil
			}
		}

		if err := connect(); err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		owner, err := repository.NewUserRepository(db.GetDB()).FindByUsername(ownerUsername)
		if err != nil {
			return fmt.Errorf("owner %q not found: %w", ownerUsername, err)
		}

		created, err := catalog.Import(db.GetDB(), owner.ID, entries)
		if err != nil {
			return fmt.Errorf("failed to import catalog: %w", err)
		}
		fmt.Fprintf(out, "Import completed successfully! Products imported: %d\n", created)
		return nil
	},
}

func connect() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := db.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	importCmd.Flags().StringVar(&ownerUsername, "owner", "admin", "Username that owns the imported products")
	importCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(defaultsCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
