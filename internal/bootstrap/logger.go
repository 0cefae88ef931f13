package bootstrap

import (
	"go.uber.org/zap"
)

// NewLogger membuat logger proses (api, worker, consumer) dan memasangnya
// sebagai zap global, karena service memakai zap.L() sebagai default.
func NewLogger(production bool, process string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("process", process))
	zap.ReplaceGlobals(logger)
	return logger, nil
}
