package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// Command is a console command with its own flags. Run gets the positional arguments left
// after flag parsing and returns a line to print.
type Command struct {
	Name    string
	Usage   string
	FlagSet *pflag.FlagSet
	Run     func(args []string) (string, error)
}

// Registry holds commands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a flag set for a command that reports errors instead of exiting or
// printing.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a command. fs may be nil for commands without flags.
func (r *Registry) Register(name, usage string, fs *pflag.FlagSet, run func(args []string) (string, error)) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Parse splits a console line into arguments. ok is false for a blank line.
func Parse(line string) (args []string, ok bool) {
	args = strings.Fields(line)
	return args, len(args) > 0
}

// Execute runs the command in args[0] with args[1:] as flags and positional arguments.
func (r *Registry) Execute(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("missing command")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return "", fmt.Errorf("unknown command: %s (try help)", name)
	}
	// flag sets are reused across lines
	cmd.FlagSet.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Help returns one usage line per command.
func (r *Registry) Help() string {
	var b strings.Builder
	for i, n := range r.Names() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.cmds[n].Usage)
	}
	return b.String()
}
