package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state and FlagSet.Args().
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
// Commands write their output through Print (e.g. the terminal log).
type Registry struct {
	cmds  map[string]*Command
	print func(line string)
}

// NewRegistry returns a registry containing only "help". out receives command output; nil discards it.
func NewRegistry(out func(line string)) *Registry {
	if out == nil {
		out = func(string) {}
	}
	r := &Registry{cmds: make(map[string]*Command), print: out}
	r.Register("help", "list commands", NewFlagSet("help"), func() error {
		for _, u := range r.Usages() {
			r.Print(u)
		}
		return nil
	})
	return r
}

// Print writes one line of command output.
func (r *Registry) Print(line string) {
	r.print(line)
}

// NewFlagSet returns a FlagSet that reports parse errors to Execute instead of printing or exiting.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "gap").
// fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
// Registering an existing name replaces it.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Usages returns "name: usage" for every command in sorted order.
func (r *Registry) Usages() []string {
	out := make([]string, 0, len(r.cmds))
	for _, n := range r.Names() {
		out = append(out, n+": "+r.cmds[n].Usage)
	}
	return out
}

// Parse interprets line as a terminal line. If line starts with "cmd " (case-sensitive),
// the rest is tokenized by spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run()
}
