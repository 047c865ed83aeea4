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
	"os"
	"runtime"

	"go.uber.org/zap"

	bindictlog "github.com/eightpen/bindict/internal/log"

	// cross-platform memory-mapped file package.
	mmap "github.com/edsrzf/mmap-go"
)

// IndexFile is a readable region of bytes suitable for a Reader to query
// against. Implementations may be backed by a memory-mapped file (so a
// dictionary built once can be served on a constrained device without
// copying it into the process heap) or by a plain in-memory slice.
type IndexFile interface {
	Read(off, sz uint32) ([]byte, error)
	Size() (uint32, error)
	Close()
	Name() string
}

// boundedSlice is the one bounds check every IndexFile.Read implementation
// in this package needs: off+sz must not overflow uint32 and must not run
// past data's length. Shared so memIndexFile and mmapIndexFile can't drift
// apart on it, and so every out-of-bounds read surfaces as the same
// CorruptImageError rather than each backend inventing its own message.
func boundedSlice(data []byte, off, sz uint32, name string) ([]byte, error) {
	if off > off+sz || int(off+sz) > len(data) {
		return nil, corruptImage(off, fmt.Sprintf("read of %d bytes out of bounds (len %d), file %s", sz, len(data), name))
	}
	return data[off : off+sz], nil
}

// memIndexFile is the simplest IndexFile: a byte slice already resident in
// memory. Used by tests and by small embedded dictionaries, e.g. an image
// taken from Encoder.Bytes.
type memIndexFile struct {
	name string
	data []byte
}

// NewMemIndexFile wraps data, a previously encoded image, as an IndexFile
// without copying it.
func NewMemIndexFile(name string, data []byte) IndexFile {
	return &memIndexFile{name: name, data: data}
}

func (f *memIndexFile) Read(off, sz uint32) ([]byte, error) {
	return boundedSlice(f.data, off, sz, f.name)
}

func (f *memIndexFile) Size() (uint32, error) { return uint32(len(f.data)), nil }
func (f *memIndexFile) Close()                {}
func (f *memIndexFile) Name() string          { return f.name }

// mmapIndexFile memory-maps a file read-only. This is the form meant for
// constrained devices: the OS pages the dictionary in on demand instead of
// the process holding a full copy resident.
type mmapIndexFile struct {
	name string
	size uint32
	data mmap.MMap
}

func (f *mmapIndexFile) Read(off, sz uint32) ([]byte, error) {
	return boundedSlice(f.data, off, sz, f.name)
}

func (f *mmapIndexFile) Name() string { return f.name }

func (f *mmapIndexFile) Size() (uint32, error) { return f.size, nil }

// Close unmaps the file. A failed unmap is logged rather than returned,
// matching IndexFile's Close() signature (no error return) - the caller has
// already finished reading and has nothing to retry.
func (f *mmapIndexFile) Close() {
	if err := f.data.Unmap(); err != nil {
		bindictlog.Get().Warn("failed to unmap index file",
			zap.String("name", f.name), zap.Error(err))
	}
}

// mmapBufferSize rounds a file's size up to a page boundary, since mmap
// likes to allocate in page-sized chunks on Unix; mmap zero-fills the
// extra bytes. Windows' CreateFileMapping wants an exact-size buffer.
func mmapBufferSize(size uint32) int {
	bsize := int(size)
	if runtime.GOOS != "windows" {
		pagesize := os.Getpagesize() - 1
		bsize = (bsize + pagesize) &^ pagesize
	}
	return bsize
}

// OpenFile memory-maps path read-only and returns it as an IndexFile. The
// returned IndexFile owns the underlying *os.File and closes it once
// mapped.
func OpenFile(path string) (IndexFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	sz := fi.Size()
	if sz > maxAddress {
		return nil, fmt.Errorf("bindict: file %s too large: %d bytes exceeds 24-bit address space", path, sz)
	}

	r := &mmapIndexFile{name: path, size: uint32(sz)}
	r.data, err = mmap.MapRegion(f, mmapBufferSize(r.size), mmap.RDONLY, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("bindict: unable to memory map %s: %w", path, err)
	}
	return r, nil
}
