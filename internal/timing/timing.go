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

// Package timing is the Go analogue of original_source/python/timemonitor.py:
// a minimal phase-timer, except it reports through the structured logger
// instead of print().
package timing

import (
	"time"

	"go.uber.org/zap"
)

// Monitor times a named phase and logs its duration on Stop. The zero
// value is not usable; construct with NewMonitor.
type Monitor struct {
	logger *zap.Logger
	phase  string
	start  time.Time
}

// NewMonitor begins timing phase, logging its start at debug level.
func NewMonitor(logger *zap.Logger, phase string) *Monitor {
	logger.Debug("phase started", zap.String("phase", phase))
	return &Monitor{logger: logger, phase: phase, start: time.Now()}
}

// Stop logs the elapsed time since NewMonitor was called.
func (m *Monitor) Stop() {
	m.logger.Info("phase finished",
		zap.String("phase", m.phase),
		zap.Duration("elapsed", time.Since(m.start)),
	)
}
