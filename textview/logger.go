package textview

import (
	"errors"
	"log/slog"
)

const (
	logGroup = "textview"
)

var logger *slog.Logger

var (
	errReservedSource = errors.New("decoration source is reserved for token marks")
	errOutOfRange     = errors.New("decoration out of document range")
)

func init() {
	logger = slog.Default().WithGroup(logGroup)
}

func SetLogger(log *slog.Logger) {
	logger = log.WithGroup(logGroup)
}
