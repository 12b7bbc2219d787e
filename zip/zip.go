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

// Package zip wraps archive/zip with the operations the bundle pipeline
// needs: an entry index on the reading side and raw entry copies on the
// writing side, so already-deflated payloads move between archives without
// being recompressed.
package zip

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	Store   = zip.Store
	Deflate = zip.Deflate
)

type File = zip.File
type FileHeader = zip.FileHeader

// Reader indexes the entries of a zip archive by name.
type Reader struct {
	*zip.Reader
	entries map[string]*zip.File
}

func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	reader := &Reader{Reader: zr, entries: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		reader.entries[f.Name] = f
	}
	return reader, nil
}

// Entry returns the named entry, or nil.
func (r *Reader) Entry(name string) *zip.File {
	return r.entries[name]
}

// ReadEntry decompresses the named entry in full.
func (r *Reader) ReadEntry(name string) ([]byte, error) {
	f := r.entries[name]
	if f == nil {
		return nil, fmt.Errorf("no entry %q", name)
	}
	return ReadFile(f)
}

// ReadFile decompresses a single entry in full.
func ReadFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	buf, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	return buf, nil
}

// Writer writes a zip archive. Entries may be buffers compressed here or raw
// copies of entries from other archives.
type Writer struct {
	w *zip.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: zip.NewWriter(w)}
}

// CopyFrom copies an entry into the archive under a new name without
// recompressing its payload.
func (w *Writer) CopyFrom(f *zip.File, name string) error {
	fh := f.FileHeader
	fh.Name = name
	raw, err := f.OpenRaw()
	if err != nil {
		return err
	}
	dst, err := w.w.CreateRaw(&fh)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, raw); err != nil {
		return fmt.Errorf("copying %s: %w", f.Name, err)
	}
	return nil
}

// WriteEntry writes contents under name using the given method.
func (w *Writer) WriteEntry(name string, contents []byte, method uint16) error {
	fw, err := w.w.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: method,
	})
	if err != nil {
		return err
	}
	_, err = fw.Write(contents)
	return err
}

// WriteRaw writes a pre-compressed payload under name. crc and
// uncompressedSize describe the original bytes.
func (w *Writer) WriteRaw(name string, compressed []byte, method uint16, crc uint32, uncompressedSize uint64) error {
	fw, err := w.w.CreateRaw(&zip.FileHeader{
		Name:               name,
		Method:             method,
		CRC32:              crc,
		CompressedSize64:   uint64(len(compressed)),
		UncompressedSize64: uncompressedSize,
	})
	if err != nil {
		return err
	}
	_, err = fw.Write(compressed)
	return err
}

func (w *Writer) Close() error {
	return w.w.Close()
}

// Deflated holds the result of compressing a payload once, ready to be
// written raw into any number of archives.
type Deflated struct {
	Data             []byte
	Method           uint16
	CRC32            uint32
	UncompressedSize uint64
}

// DeflateBytes compresses contents at the default level. If deflate does not
// make the payload smaller the original bytes are kept with Store, so a
// rewritten archive never grows.
func DeflateBytes(contents []byte) (*Deflated, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(contents); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	d := &Deflated{
		CRC32:            crc32.ChecksumIEEE(contents),
		UncompressedSize: uint64(len(contents)),
	}
	if buf.Len() < len(contents) {
		d.Data = buf.Bytes()
		d.Method = Deflate
	} else {
		d.Data = contents
		d.Method = Store
	}
	return d, nil
}

// StoreBytes wraps contents as an uncompressed payload.
func StoreBytes(contents []byte) *Deflated {
	return &Deflated{
		Data:             contents,
		Method:           Store,
		CRC32:            crc32.ChecksumIEEE(contents),
		UncompressedSize: uint64(len(contents)),
	}
}

// WriteDeflated writes a previously compressed payload under name.
func (w *Writer) WriteDeflated(name string, d *Deflated) error {
	return w.WriteRaw(name, d.Data, d.Method, d.CRC32, d.UncompressedSize)
}
