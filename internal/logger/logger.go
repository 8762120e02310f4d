// Package logger configures zerolog for the semprobe command.
package logger

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init builds a console logger at the given level, installs it as the global
// log.Logger and returns it.
func Init(w io.Writer, logLevel string) (zerolog.Logger, error) {
	level, err := parseLevel(logLevel)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		if i := strings.LastIndexByte(file, '/'); i >= 0 {
			file = file[i+1:]
		}
		return file + ":" + strconv.Itoa(line)
	}

	l := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "02-01-2006 15:04:05.000",
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%-6s", i))
		},
	}).Level(level).With().Timestamp().Caller().Str("app", "semprobe").Logger()

	log.Logger = l
	return l, nil
}

func parseLevel(logLevel string) (zerolog.Level, error) {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO":
		return zerolog.InfoLevel, nil
	case "WARN":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	case "DISABLED":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("incorrect log level %q", logLevel)
	}
}
