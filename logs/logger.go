package logs

import (
	"context"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/scone/cmds"
	"github.com/reusee/scone/modes"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var (
	level    = new(slog.LevelVar)
	levelSet bool
)

func setLevel(l slog.Level) func() {
	return func() {
		level.Set(l)
		levelSet = true
	}
}

func init() {
	cmds.Define("-log-debug", cmds.Func(setLevel(slog.LevelDebug)).Desc("set log level to debug"))
	cmds.Define("-log-info", cmds.Func(setLevel(slog.LevelInfo)).Desc("set log level to info"))
	cmds.Define("-log-warn", cmds.Func(setLevel(slog.LevelWarn)).Desc("set log level to warn"))
	cmds.Define("-log-error", cmds.Func(setLevel(slog.LevelError)).Desc("set log level to error"))
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
	mode modes.Mode,
) Logger {
	if !levelSet && mode == modes.ModeDevelopment {
		level.Set(slog.LevelDebug)
	}

	var handlers []slog.Handler

	// terminal, unless running as a systemd service
	var textHandler slog.Handler
	if mode == modes.ModeDevelopment || !isSystemdService() {
		textHandler = slog.NewTextHandler(writer, &slog.HandlerOptions{
			Level: level,
		})
		handlers = append(handlers, textHandler)
	}

	if mode == modes.ModeProduction {
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
			if textHandler != nil {
				record := slog.NewRecord(time.Now(), slog.LevelDebug, "no systemd journal", 0)
				record.Add("error", err)
				_ = textHandler.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func toJournalKey(str string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(str))
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
