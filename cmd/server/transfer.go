package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	clearYes     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full-state snapshot as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		out := cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(app.transfer.Export(cmd.Context()))
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Restore a snapshot from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		raw, err := io.ReadAll(in)
		if err != nil {
			return err
		}

		app, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		result, err := app.transfer.Import(cmd.Context(), raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d workouts (cycle: %t), %d equipment, %d benchmarks\n",
			result.History, result.Cycle, result.Equipment, result.Benchmarks)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored data (requires --yes)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.transfer.ClearAll(cmd.Context(), clearYes); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "output file (- for stdout)")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deleting every slot")
}
