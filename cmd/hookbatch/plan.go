package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/k2io/hookbatch"
	"github.com/spf13/cobra"
)

var detach bool

func init() {
	rootCmd.AddCommand(newPlanCmd())
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <binary> <target=replacement>...",
		Short: "Show the engine requests a hook batch would produce",
		Long: `The plan command resolves each target symbol of the binary, pairs it
with its replacement (a hex address or another symbol) and runs the batch
through the hook manager against a dry-run engine. Targets or replacements
that cannot be resolved stay in the batch as empty pairs and are skipped.

Example:
  hookbatch plan ./server main.handle=main.wrapHandle
  hookbatch plan ./server os.Open=0x4a1000 --detach`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.OutOrStdout(), args)
		},
	}
	cmd.Flags().BoolVar(&detach, "detach", false, "Plan hook removal instead of installation")
	return cmd
}

type planResult struct {
	Module   string              `json:"module"`
	Phase    string              `json:"phase"`
	Count    int                 `json:"count"`
	Code     int32               `json:"code"`
	Requests []hookbatch.Request `json:"requests"`
}

func runPlan(w io.Writer, args []string) error {
	binary := args[0]
	type namePair struct{ target, repl string }
	pairs := make([]namePair, 0, len(args)-1)
	for _, pair := range args[1:] {
		target, repl, ok := strings.Cut(pair, "=")
		if !ok || target == "" || repl == "" {
			return fmt.Errorf("invalid pair %q, want target=replacement", pair)
		}
		pairs = append(pairs, namePair{target, repl})
	}

	syms, err := hookbatch.LookupSymbols(binary)
	if err != nil {
		return fmt.Errorf("failed to read symbols: %w", err)
	}

	slots := make([]*uintptr, 0, len(pairs))
	repls := make([]uintptr, 0, len(pairs))
	for _, p := range pairs {
		addr := syms[p.target]
		slots = append(slots, &addr)
		repls = append(repls, resolve(syms, p.repl))
	}
	batch, err := hookbatch.Zip(slots, repls)
	if err != nil {
		return err
	}

	engine := &hookbatch.DryRunEngine{}
	m, err := hookbatch.NewManager(
		hookbatch.WithEngine(engine),
		hookbatch.WithLogger(slog.Default()),
		hookbatch.WithDebug(verbose),
	)
	if err != nil {
		return err
	}

	module := filepath.Base(binary)
	var out hookbatch.Outcome
	if detach {
		out = m.Detach(module, batch)
	} else {
		out = m.Attach(module, batch)
	}

	res := planResult{
		Module:   module,
		Phase:    out.Phase.String(),
		Count:    out.Applied,
		Code:     int32(out.Code),
		Requests: engine.Requests(),
	}
	if jsonOut {
		return printJSON(w, res)
	}
	fmt.Fprintf(w, "%s: %s, %d request(s)\n", res.Module, res.Phase, res.Count)
	for _, r := range res.Requests {
		switch r.Op {
		case "attach", "detach":
			fmt.Fprintf(w, "  %-6s %#x -> %#x\n", r.Op, r.Target, r.Replacement)
		default:
			fmt.Fprintf(w, "  %s\n", r.Op)
		}
	}
	return nil
}

// resolve parses s as an address or looks it up as a symbol. Unknown
// names resolve to 0.
func resolve(syms map[string]uintptr, s string) uintptr {
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return uintptr(v)
	}
	return syms[s]
}
