package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "smartcore",
		Short: "smartcore is a tool to grow CART decision trees",
		Long:  `A tool to grow classification and regression trees from your data, test them, and use them to make predictions`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(config.verbose)
			loadConfigFile(config.configFile)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress to STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YML config file with defaults for the training flags (defaults to .smartcore.yml in the working directory, if present)")
	rootCmd.AddCommand(versionCmd(), growCmd(), predictCmd(), testCmd(), splitCmd())
	return rootCmd
}

// loadConfigFile reads flag defaults with viper: flags bound through
// viper.BindPFlag resolve to the config file value when not set on the
// command line.
func loadConfigFile(path string) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(".smartcore")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return
		}
		if os.IsNotExist(err) && path == "" {
			return
		}
		logrus.WithError(err).Warn("ignoring unreadable config file")
		return
	}
	logrus.WithField("file", viper.ConfigFileUsed()).Debug("loaded flag defaults from config file")
}
