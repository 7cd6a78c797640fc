package root

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pnkjpro/oathly/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "oathly",
	Short:         "Oathly — local-first exam/target progress tracker",
	Long:          "Oathly tracks time-boxed targets with a daily effort requirement, a reward at the end and a reset-on-miss penalty for slacking.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	// Optional .env for OATHLY_DB and friends.
	_ = godotenv.Load()

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newUseCmd(),
		newListCmd(),
		newStatusCmd(),
		newLogCmd(),
		newUnlogCmd(),
		newDoneCmd(),
		newResetCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
