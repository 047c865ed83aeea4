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

import (
	"fmt"

	"github.com/pkg/errors"
)

// CorruptImageError is returned whenever a read against a byte image would
// fall outside the image's bounds, or a structural invariant of the format
// (§3 of the design) is found to be violated. Query methods that encounter
// one stop traversing and return it rather than reading further into
// unrelated memory.
type CorruptImageError struct {
	// Offset is where the invalid read or check was attempted.
	Offset uint32
	// Reason describes which invariant or bound was violated.
	Reason string
	cause  error
}

func (e *CorruptImageError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("corrupt image at offset %d: %s: %v", e.Offset, e.Reason, e.cause)
	}
	return fmt.Sprintf("corrupt image at offset %d: %s", e.Offset, e.Reason)
}

func (e *CorruptImageError) Unwrap() error { return e.cause }

func corruptImage(off uint32, reason string) error {
	return errors.WithStack(&CorruptImageError{Offset: off, Reason: reason})
}

func wrapCorruptImage(off uint32, reason string, cause error) error {
	return errors.WithStack(&CorruptImageError{Offset: off, Reason: reason, cause: cause})
}

// EncodeOverflowError is returned by the Encoder when the write cursor
// would exceed the 24-bit address space (2^24 - 1). It is fatal to the
// encode in progress: the Encoder must not be reused afterwards.
type EncodeOverflowError struct {
	// Attempted is the offset the encoder tried to write past maxAddress.
	Attempted uint32
}

func (e *EncodeOverflowError) Error() string {
	return fmt.Sprintf("encode overflow: offset %d exceeds 24-bit address space (%d)", e.Attempted, maxAddress)
}

func encodeOverflow(attempted uint32) error {
	return errors.WithStack(&EncodeOverflowError{Attempted: attempted})
}
