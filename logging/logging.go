/*
Copyright 2025 The Antfly Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging builds the *zap.Logger the orchestrator, upstream
// client, health server, and CLI log through. No call site in this module
// uses log.Printf directly; every structured field (cache key, TTL,
// upstream request timings) flows through an injected logger.
package logging

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a *zap.Logger for the given Config. A nil Config (or a
// zero Style/Level) defaults to terminal style at info level.
func NewLogger(c *Config) *zap.Logger {
	var err error
	var logger *zap.Logger

	style := StyleTerminal
	level := zapcore.InfoLevel

	if c != nil {
		if c.Style != "" {
			style = c.Style
		}
		if c.Level != "" {
			if lvl, parseErr := zapcore.ParseLevel(c.Level); parseErr == nil {
				level = lvl
			}
		}
	}

	switch style {
	case StyleNoop:
		logger = zap.NewNop()

	case StyleJson:
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))

	case StyleTerminal:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))

	case StyleLogfmt:
		encoderCfg := zapcore.EncoderConfig{
			TimeKey:       "ts",
			LevelKey:      "lvl",
			NameKey:       "logger",
			CallerKey:     "caller",
			MessageKey:    "msg",
			StacktraceKey: "stacktrace",
			LineEnding:    zapcore.DefaultLineEnding,
		}
		core := zapcore.NewCore(NewLogfmtEncoder(encoderCfg), zapcore.AddSync(os.Stderr), level)
		logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))

	default:
		log.Fatalf("invalid logging style %q: must be one of: terminal, json, logfmt, noop", style)
	}

	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	return logger
}
