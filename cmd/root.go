package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/bomlens/bomlens/internal/utils"
)

var cfgFile string

const (
	LOGO = `	 _                     _
	| |__   ___  _ __ ___ | | ___ _ __  ___
	| '_ \ / _ \| '_ ` + "`" + ` _ \| |/ _ \ '_ \/ __|
	| |_) | (_) | | | | | | |  __/ | | \__ \
	|_.__/ \___/|_| |_| |_|_|\___|_| |_|___/

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bomlens",
	Short: "Descriptive analytics for Bill-of-Materials files.",
	Long: LOGO + `bomlens normalizes one or more BOM files (CSV or JSON, local or remote) and
computes per-product complexity and cost, per-component usage, cost
distributions and deterministic insights, right from your command line.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bomlens.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".bomlens")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.bomlens.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Analysis tunables
	viper.SetDefault("analysis.buckets", 10)
	viper.SetDefault("analysis.topn", 10)
	viper.SetDefault("complexity.count_weight", 0.6)
	viper.SetDefault("complexity.cost_weight", 0.4)

	// Input column mapping
	viper.SetDefault("columns.product", "product")
	viper.SetDefault("columns.component", "component")
	viper.SetDefault("columns.name", "name")
	viper.SetDefault("columns.cost", "unit_cost")
	viper.SetDefault("columns.quantity", "quantity")
	viper.SetDefault("columns.subcomponents", []string{})

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
