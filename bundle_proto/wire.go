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

// Package bundle_proto is a hand-maintained mirror of the subset of the
// bundletool wire schema (config.pb, targeting.pb, resources.pb, proto XML
// manifests and the APK set toc.pb) that the converter reads and writes.
// Message and field numbers follow the upstream .proto definitions so that
// archives produced here can be consumed by existing tooling and vice versa.
// Unknown fields are skipped on decode and are not preserved.
package bundle_proto

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// A message that can serialize itself in wire format.
type marshaler interface {
	Marshal() []byte
}

type unmarshaler interface {
	Unmarshal(data []byte) error
}

// unmarshalFields iterates the top-level fields of a serialized message and
// calls field for each one. The callback returns the number of bytes it
// consumed; returning 0 means the field was not recognized and its value is
// skipped.
func unmarshalFields(data []byte, field func(num protowire.Number, typ protowire.Type, data []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		consumed, err := field(num, typ, data)
		if err != nil {
			return err
		}
		if consumed == 0 {
			consumed = protowire.ConsumeFieldValue(num, typ, data)
			if consumed < 0 {
				return protowire.ParseError(consumed)
			}
		}
		data = data[consumed:]
	}
	return nil
}

func consumeString(data []byte, s *string) (int, error) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*s = string(v)
	return n, nil
}

func consumeStrings(data []byte, s *[]string) (int, error) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*s = append(*s, string(v))
	return n, nil
}

func consumeBool(data []byte, b *bool) (int, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*b = v != 0
	return n, nil
}

func consumeUint32(data []byte, u *uint32) (int, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*u = uint32(v)
	return n, nil
}

func consumeInt32(data []byte, i *int32) (int, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*i = int32(v)
	return n, nil
}

// consumeEnum decodes a varint enum value into *e, which must point to a
// named int32 type.
func consumeEnum[E ~int32](data []byte, e *E) (int, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*e = E(v)
	return n, nil
}

// consumeMessage decodes a length-delimited submessage.
func consumeMessage(data []byte, m unmarshaler) (int, error) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if err := m.Unmarshal(v); err != nil {
		return 0, err
	}
	return n, nil
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendStrings(b []byte, num protowire.Number, s []string) []byte {
	for _, v := range s {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, v)
	}
	return b
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendUint32(b []byte, num protowire.Number, v uint32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendEnum[E ~int32](b []byte, num protowire.Number, v E) []byte {
	return appendInt32(b, num, int32(v))
}

// appendMessage emits m as a length-delimited field. Nil interface values and
// typed nil pointers both produce no output; callers pass concrete pointer
// types so the nil check below covers the typed case.
func appendMessage(b []byte, num protowire.Number, m marshaler) []byte {
	if m == nil {
		return b
	}
	v := m.Marshal()
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
