// Package logger provides structured logging for Verdict.
//
// This package wraps Uber's zap logger to provide high-performance,
// structured logging with configurable log levels. It initializes a global
// logger instance that embedding applications can share with the engine.
//
// # Configuration
//
// The log level is configured via the VERDICT_LOG_LEVEL environment
// variable or directly via InitLogger:
//
//	logger.InitLogger("debug") // Options: debug, info, warn, error
//
// # Usage
//
// After initialization, use the global Log variable:
//
//	logger.Log.Info("policy registered",
//	    zap.String("policy", p.Name()),
//	)
//
// or hand it to a checker:
//
//	policy.NewPermissionChecker[User, Action, Doc, Env](
//	    policy.WithLogger(logger.Log),
//	)
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger = zap.NewNop()

func InitLogger(level string) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	Log, err = cfg.Build()
	if err != nil {
		panic(err)
	}
}
