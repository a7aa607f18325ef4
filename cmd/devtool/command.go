package main

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Command is a devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry keeps commands in registration order so help reads like a workflow
type Registry struct {
	order  []Command
	byName map[string]Command
}

// NewRegistry creates a registry holding cmds
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{byName: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		r.Register(c)
	}
	return r
}

// Register adds cmd, replacing any command with the same name
func (r *Registry) Register(cmd Command) {
	if _, exists := r.byName[cmd.Name()]; !exists {
		r.order = append(r.order, cmd)
	} else {
		for i, c := range r.order {
			if c.Name() == cmd.Name() {
				r.order[i] = cmd
			}
		}
	}
	r.byName[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// WriteHelp prints usage and one aligned line per command
func (r *Registry) WriteHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: devtool <command> [args...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range r.order {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Name(), c.Description())
	}
	_ = tw.Flush()
}
