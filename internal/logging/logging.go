package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New собирает логгер сервиса: консольный вывод для разработки, JSON в остальных случаях.
func New(development bool) zerolog.Logger {
	return newLogger(os.Stdout, development)
}

func newLogger(w io.Writer, development bool) zerolog.Logger {
	if !development {
		return zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
	}
	return zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Caller().Logger()
}
