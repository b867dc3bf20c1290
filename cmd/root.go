package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scoretool",
	Short: "A stateful JSON-RPC tool server for building a musical piece",
	Long: `scoretool mediates between a reasoning client and an in-memory
musical document: sections, tracks, notes, and a chord progression, with
undo/redo history and Standard MIDI File export.`,
}

// Execute runs the root command.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
