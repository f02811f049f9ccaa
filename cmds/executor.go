package cmds

import (
	"fmt"
	"maps"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Executor dispatches command line words to defined commands.
// Each command consumes one word per function parameter; a trailing []string
// parameter consumes every remaining word.
type Executor struct {
	commands map[string]*Command
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}

	usage := Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help")
	ret.Define("-h", usage)

	return ret
}

func (p *Executor) Define(name string, command *Command) {
	if _, ok := p.commands[name]; ok {
		panic(fmt.Errorf("duplicated command %s", name))
	}
	p.commands[name] = command
	for _, alias := range command.Aliases {
		if _, ok := p.commands[alias]; ok {
			panic(fmt.Errorf("duplicated command %s", alias))
		}
		p.commands[alias] = command
	}
}

// Names returns the defined command names, aliases included.
func (p *Executor) Names() []string {
	return slices.Sorted(maps.Keys(p.commands))
}

var (
	errorType   = reflect.TypeFor[error]()
	stringsType = reflect.TypeFor[[]string]()
)

func (p *Executor) Execute(args []string) error {
	commands := p.commands
	entered := make(map[*Command]bool)
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := commands[name]
		if !ok || command == nil {
			return fmt.Errorf("unknown command: %s", name)
		}

		if command.Func.IsValid() {
			fnType := command.Func.Type()
			var callArgs []reflect.Value
			for i := range fnType.NumIn() {
				t := fnType.In(i)
				if t == stringsType && i == fnType.NumIn()-1 {
					callArgs = append(callArgs, reflect.ValueOf(slices.Clone(args)))
					args = nil
					break
				}
				value, err := getArg(t, args)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				if len(args) > 0 {
					args = args[1:]
				}
				callArgs = append(callArgs, value)
			}
			rets := command.Func.Call(callArgs)
			if len(rets) > 0 && !rets[0].IsNil() {
				return rets[0].Interface().(error)
			}
		}

		if len(command.Subs) > 0 && !entered[command] {
			entered[command] = true
			commands = maps.Clone(commands)
			for subname, sub := range command.Subs {
				if _, ok := commands[subname]; ok {
					return fmt.Errorf("duplicated sub command: %s %s", name, subname)
				}
				commands[subname] = sub
			}
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

func getArg(t reflect.Type, args []string) (ret reflect.Value, err error) {
	if len(args) == 0 {
		if t.Kind() == reflect.Pointer {
			// optional
			return reflect.New(t.Elem()), nil
		}
		return ret, fmt.Errorf("expecting %v argument, got nothing", t)
	}

	if t.Kind() == reflect.Pointer {
		elem, err := getArg(t.Elem(), args)
		if err != nil {
			return ret, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}

	str := args[0]
	ret = reflect.New(t).Elem()

	switch t.Kind() {

	case reflect.Bool:
		ret.SetBool(strToBool(str))
		return ret, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)
		return ret, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		ret.SetUint(v)
		return ret, nil

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)
		return ret, nil

	case reflect.String:
		ret.SetString(str)
		return ret, nil

	}

	return ret, fmt.Errorf("unsupported type: %v", t)
}
