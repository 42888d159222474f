package types

import (
	"go.uber.org/zap"
)

// Logger is a named sugared logger.
type Logger struct {
	*zap.SugaredLogger
	LogsPath string
	Name     string
}
