package main

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var configDir string

var rootCmd = &cobra.Command{
	Use:           "coachos",
	Short:         "Coach OS - workout programming for a functional training studio",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing config.yaml")
	rootCmd.AddCommand(serveCmd, exportCmd, importCmd, clearCmd, hashPasswordCmd)
}
