package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	InitLogger("debug")
	if Log == nil {
		t.Fatal("Log not initialized")
	}
	if !Log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}
}

func TestInitLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	InitLogger("chatty")
	if Log == nil {
		t.Fatal("Log not initialized")
	}
	if Log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at the info fallback level")
	}
	if !Log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled")
	}
}
