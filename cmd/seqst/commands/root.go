// Package commands implements the seqst command line tool: build suffix tree
// index files, query them, and move portable snapshots around.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	suffixtree "github.com/seqeron/go-suffixtree"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "seqst",
	Short:         "Suffix tree indexing and substring analytics",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the tool.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.seqst.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	rootCmd.PersistentFlags().StringP("index", "i", "", "tree index file to operate on")
	cobra.CheckErr(viper.BindPFlag("index", rootCmd.PersistentFlags().Lookup("index")))
}

// initConfig layers flag < config file < SEQST_* environment, viper's usual
// precedence inverted at read time.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".seqst")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("seqst")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// A missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

// logger builds the logger the library options expect. Quiet by default so
// query output stays pipeable.
func logger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openIndex loads the tree file named by --index (or config/env).
func openIndex() (*suffixtree.Tree, error) {
	path := viper.GetString("index")
	if path == "" {
		return nil, fmt.Errorf("no index file: pass --index or set SEQST_INDEX")
	}
	return suffixtree.Load(path, suffixtree.WithLogger(logger()))
}
