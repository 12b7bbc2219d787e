// Copyright 2024 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bundle

import (
	"android/bundletool/zip"
)

// ByteSource yields an entry's contents on demand, so a large bundle can
// stream through the pipeline without all payloads resident at once.
type ByteSource interface {
	Bytes() ([]byte, error)
	Size() uint64
}

type bufferSource struct {
	buf []byte
}

func (s bufferSource) Bytes() ([]byte, error) {
	return s.buf, nil
}

func (s bufferSource) Size() uint64 {
	return uint64(len(s.buf))
}

// BufferSource wraps in-memory contents as a ByteSource.
func BufferSource(buf []byte) ByteSource {
	return bufferSource{buf}
}

type zipEntrySource struct {
	f *zip.File
}

func (s zipEntrySource) Bytes() ([]byte, error) {
	return zip.ReadFile(s.f)
}

func (s zipEntrySource) Size() uint64 {
	return s.f.UncompressedSize64
}

// ZipEntrySource reads contents lazily from an open archive. The archive
// must outlive the source.
func ZipEntrySource(f *zip.File) ByteSource {
	return zipEntrySource{f}
}

// Entry is a single file of a module. The path is zip-style with forward
// slashes, relative to the module directory, and never changes once the
// entry is created.
type Entry struct {
	Path              string
	Content           ByteSource
	ForceUncompressed bool
	ShouldSign        bool
}
