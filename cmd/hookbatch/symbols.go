package main

import (
	"fmt"
	"io"
	"os"

	"github.com/k2io/hookbatch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSymbolsCmd())
}

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols <binary> [name...]",
		Short: "List symbol addresses of an object file",
		Long: `The symbols command reads the symbol table of an ELF, Mach-O or PE
file and prints the link-time address of each symbol.

Example:
  hookbatch symbols ./server
  hookbatch symbols ./server main.handle net/http.(*Client).Do --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSymbols(cmd.OutOrStdout(), args)
		},
	}
	return cmd
}

type symbolEntry struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func runSymbols(w io.Writer, args []string) error {
	syms, err := hookbatch.LookupSymbols(args[0], args[1:]...)
	if err != nil {
		return fmt.Errorf("failed to read symbols: %w", err)
	}

	entries := make([]symbolEntry, 0, len(syms))
	for _, name := range syms.Names() {
		entries = append(entries, symbolEntry{Name: name, Address: fmt.Sprintf("%#x", syms[name])})
	}

	if jsonOut {
		return printJSON(w, entries)
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%18s  %s\n", e.Address, e.Name)
	}
	if missing := len(args) - 1 - len(entries); len(args) > 1 && missing > 0 {
		fmt.Fprintf(os.Stderr, "%d symbol(s) not found\n", missing)
	}
	return nil
}
