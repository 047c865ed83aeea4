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

package bindict

// defaultBufferSize is the reference upper bound for the encoder's working
// buffer (§4.3, §5): 24 MiB. The buffer grows past this if a dictionary
// needs more, up to the 24-bit address space.
const defaultBufferSize = 24 * 1024 * 1024

// EncoderOption configures a Encoder constructed with NewEncoder.
type EncoderOption func(*encoderConfig)

type encoderConfig struct {
	bufferSize int
}

// WithBufferSize overrides the encoder's initial working-buffer size. The
// buffer still grows automatically if exceeded; this only changes the
// starting allocation.
func WithBufferSize(n int) EncoderOption {
	return func(c *encoderConfig) { c.bufferSize = n }
}

// ReaderOption configures a Reader constructed with Open.
type ReaderOption func(*readerConfig)

type readerConfig struct {
	cacheEnabled bool
}

// WithCache toggles the Reader's word/phrase lookup caches (§9: "the only
// process-wide choice is the cache-enable flag... treat it as a
// per-Reader configuration option"). Caches are enabled by default.
func WithCache(enabled bool) ReaderOption {
	return func(c *readerConfig) { c.cacheEnabled = enabled }
}
