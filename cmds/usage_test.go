package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("eval", Func(func(expr []string) {}).Desc("evaluate an expression"))
	executor.Define("run", Func(func(path *string) {}).Desc("run a file").Alias("exec"))
	executor.Define("output", Sub(map[string]*Command{
		"precision": Func(func(int) {}).Desc("digits"),
	}).Desc("output settings"))

	buf := new(bytes.Buffer)
	executor.Usage(buf)
	out := buf.String()
	for _, expected := range []string{
		"-h (help, -help, --help)\tprint this usage\n",
		"eval <args...>\tevaluate an expression\n",
		"run (exec) [string]\trun a file\n",
		"output\toutput settings\n",
		"  precision <int>\tdigits\n",
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("missing %q in\n%s", expected, out)
		}
	}
	if strings.Contains(out, "\nexec") {
		t.Fatalf("alias printed as command:\n%s", out)
	}
}
