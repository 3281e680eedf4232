package logger

import (
	"go.uber.org/zap"
)

// New builds the service logger. Production config with ISO8601
// timestamps; debug drops to a development logger.
func New(debug bool) (*zap.SugaredLogger, error) {
	var l *zap.Logger
	var err error
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "json"
		l, err = cfg.Build()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
