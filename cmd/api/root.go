package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:     "hospital-api",
	Short:   "Session-scoped doctor and patient registry over HTTP",
	Version: version,
	RunE:    runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./config.yaml or ./config/config.yaml if present)")
	rootCmd.PersistentFlags().IntP("port", "p", 0, "listen port")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	_ = v.BindPFlag("server.port", rootCmd.PersistentFlags().Lookup("port"))
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd)
}
