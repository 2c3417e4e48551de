// Package loglevel maps log level names to zerolog levels.
package loglevel

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	Trace       = "trace"
	Debug       = "debug"
	Information = "info"
	Warning     = "warn"
	Error       = "error"
	Fatal       = "fatal"
	Panic       = "panic"
	None        = "none"
	Disabled    = "disabled"

	Default = Debug
)

type setting struct {
	name  string
	level zerolog.Level
}

var settings = []setting{
	{name: Trace, level: zerolog.TraceLevel},
	{name: Debug, level: zerolog.DebugLevel},
	{name: Information, level: zerolog.InfoLevel},
	{name: Warning, level: zerolog.WarnLevel},
	{name: Error, level: zerolog.ErrorLevel},
	{name: Fatal, level: zerolog.FatalLevel},
	{name: Panic, level: zerolog.PanicLevel},
	{name: None, level: zerolog.NoLevel},
	{name: Disabled, level: zerolog.Disabled},
}

// Parse returns the level with the given name (case-insensitive). An empty
// name is the default level.
func Parse(name string) (zerolog.Level, error) {
	if name == "" {
		name = Default
	}
	for _, s := range settings {
		if strings.EqualFold(name, s.name) {
			return s.level, nil
		}
	}
	return zerolog.Disabled, fmt.Errorf("unknown log level %q, possible levels: %s", name, Hint())
}

// Hint lists the accepted level names.
func Hint() string {
	var hint strings.Builder
	for i, s := range settings {
		if i > 0 {
			hint.WriteByte(' ')
		}
		hint.WriteString("[" + s.name + "]")
	}
	return hint.String()
}
