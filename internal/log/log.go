// Copyright 2012 8pen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log is bindict's structured-logging wrapper, modelled on the
// zoekt project's own in-house log package (which itself wraps
// go.uber.org/zap): a single process-wide *zap.Logger, configured from the
// environment, tagged with a random instance ID so log lines from
// concurrently running build/query processes can be told apart.
package log

import (
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLogFormat = "BINDICT_LOG_FORMAT" // "json" or "console" (default)
	envLogLevel  = "BINDICT_LOG_LEVEL"  // "debug", "info" (default), "warn", "error"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
	instanceID   string
)

// Get returns the process-wide logger, initializing it from the
// environment on first use.
func Get() *zap.Logger {
	once.Do(func() {
		instanceID = uuid.New().String()
		globalLogger = newLogger().With(zap.String("instance_id", instanceID))
	})
	return globalLogger
}

// InstanceID returns the random ID assigned to this process' logger,
// useful for correlating log lines across a build and a later query run
// against the same dictionary.
func InstanceID() string {
	Get()
	return instanceID
}

func newLogger() *zap.Logger {
	level := parseLevel(os.Getenv(envLogLevel))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if os.Getenv(envLogFormat) == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	return zap.New(core, zap.AddCaller())
}

func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
