package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/cortex-outline/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cortex-outline",
	Short: "Cortex Outline - structural outlines of TypeScript, JavaScript and Vue files",
	Long: `Cortex Outline extracts functions, classes, variables, imports, exports and
type declarations from source files, plus template bindings and component
options for Vue single-file components.

Results are cached per file and modification time, so repeated requests for an
unchanged file are cheap. Use "cortex-outline mcp" to serve the outline tools
to an MCP client, or "cortex-outline outline <file>" for a one-off outline.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.cortex-outline/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// loadConfig reads the --config file when given, otherwise
// .cortex-outline/config.yml under the working directory. Environment
// variables override either.
func loadConfig() (*config.Config, error) {
	if path := viper.GetString("config"); path != "" {
		return config.NewFileLoader(path).Load()
	}
	return config.LoadConfig()
}
