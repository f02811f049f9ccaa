package logs

import (
	"context"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/taicalc/cmds"
	"github.com/reusee/taicalc/modes"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var (
	level = new(slog.LevelVar)
	// set by command line; overrides the mode default
	levelFromArgs bool
)

func setLevel(l slog.Level) func() {
	return func() {
		level.Set(l)
		levelFromArgs = true
	}
}

func init() {
	cmds.Define("-log-debug", cmds.Func(setLevel(slog.LevelDebug)).
		Desc("log every evaluated statement"))
	cmds.Define("-log-info", cmds.Func(setLevel(slog.LevelInfo)).
		Desc("set log level to info"))
	cmds.Define("-log-warn", cmds.Func(setLevel(slog.LevelWarn)).
		Desc("set log level to warn"))
	cmds.Define("-log-error", cmds.Func(setLevel(slog.LevelError)).
		Desc("set log level to error"))
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
	mode modes.Mode,
) Logger {
	if !levelFromArgs {
		switch mode {
		case modes.ModeDevelopment:
			level.Set(slog.LevelDebug)
		default:
			level.Set(slog.LevelWarn)
		}
	}

	var handlers []slog.Handler
	underSystemd := isSystemdService()

	// terminal
	var terminalHandler slog.Handler
	if !underSystemd {
		terminalHandler = slog.NewTextHandler(
			writer,
			&slog.HandlerOptions{
				Level: level,
			},
		)
		handlers = append(handlers, terminalHandler)
	}

	// journal, for runs under a systemd unit
	if underSystemd {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			fallback := slog.NewTextHandler(writer, &slog.HandlerOptions{
				Level: level,
			})
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = fallback.Handle(context.Background(), record)
			handlers = append(handlers, fallback)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func isSystemdService() bool {
	cgroupPath, err := getCgroupPath()
	if err != nil {
		return false
	}
	return strings.HasSuffix(path.Dir(cgroupPath), ".service")
}

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) >= 3 {
		return parts[2], nil
	}
	return "", nil
}
