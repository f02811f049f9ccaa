package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"reflect"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.Usage(os.Stderr)
}

// Usage writes one line per command, aliases folded into the primary name.
func (p *Executor) Usage(w io.Writer) {
	writeUsage(w, p.commands, 0)
}

func writeUsage(w io.Writer, commands map[string]*Command, depth int) {
	seen := make(map[*Command]bool)
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		command := commands[name]
		if command == nil || seen[command] {
			continue
		}
		if slices.Contains(command.Aliases, name) {
			// printed under its primary name
			continue
		}
		seen[command] = true

		line := strings.Repeat("  ", depth) + name
		if len(command.Aliases) > 0 {
			line += " (" + strings.Join(command.Aliases, ", ") + ")"
		}
		if args := argsDesc(command); args != "" {
			line += " " + args
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)

		if len(command.Subs) > 0 {
			writeUsage(w, command.Subs, depth+1)
		}
	}
}

func argsDesc(command *Command) string {
	if !command.Func.IsValid() {
		return ""
	}
	var parts []string
	fnType := command.Func.Type()
	for i := range fnType.NumIn() {
		t := fnType.In(i)
		if t == stringsType {
			parts = append(parts, "<args...>")
			continue
		}
		if t.Kind() == reflect.Pointer {
			parts = append(parts, "["+t.Elem().Kind().String()+"]")
		} else {
			parts = append(parts, "<"+t.Kind().String()+">")
		}
	}
	return strings.Join(parts, " ")
}
