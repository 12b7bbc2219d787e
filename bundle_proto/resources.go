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

package bundle_proto

import "google.golang.org/protobuf/encoding/protowire"

// ResourceTable is the resources.pb of a module, reduced to the structure
// the splitter walks: packages, types, entries and per-configuration values.
type ResourceTable struct {
	Package []*Package
}

func (m *ResourceTable) GetPackage() []*Package {
	if m == nil {
		return nil
	}
	return m.Package
}

func (m *ResourceTable) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, p := range m.Package {
		b = appendMessage(b, 2, p)
	}
	return b
}

func (m *ResourceTable) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 2 && typ == protowire.BytesType {
			p := new(Package)
			n, err := consumeMessage(data, p)
			if err == nil {
				m.Package = append(m.Package, p)
			}
			return n, err
		}
		return 0, nil
	})
}

type PackageId struct {
	Id uint32
}

func (m *PackageId) GetId() uint32 {
	if m == nil {
		return 0
	}
	return m.Id
}

func (m *PackageId) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendUint32(b, 1, m.Id)
	return b
}

func (m *PackageId) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return consumeUint32(data, &m.Id)
		}
		return 0, nil
	})
}

type Package struct {
	PackageId   *PackageId
	PackageName string
	Type        []*Type
}

func (m *Package) GetPackageId() *PackageId {
	if m == nil {
		return nil
	}
	return m.PackageId
}

func (m *Package) GetType() []*Type {
	if m == nil {
		return nil
	}
	return m.Type
}

func (m *Package) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.PackageId)
	b = appendString(b, 2, m.PackageName)
	for _, t := range m.Type {
		b = appendMessage(b, 3, t)
	}
	return b
}

func (m *Package) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.PackageId = new(PackageId)
			return consumeMessage(data, m.PackageId)
		case 2:
			return consumeString(data, &m.PackageName)
		case 3:
			t := new(Type)
			n, err := consumeMessage(data, t)
			if err == nil {
				m.Type = append(m.Type, t)
			}
			return n, err
		}
		return 0, nil
	})
}

type TypeId struct {
	Id uint32
}

func (m *TypeId) GetId() uint32 {
	if m == nil {
		return 0
	}
	return m.Id
}

func (m *TypeId) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendUint32(b, 1, m.Id)
	return b
}

func (m *TypeId) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return consumeUint32(data, &m.Id)
		}
		return 0, nil
	})
}

type Type struct {
	TypeId *TypeId
	Name   string
	Entry  []*Entry
}

func (m *Type) GetEntry() []*Entry {
	if m == nil {
		return nil
	}
	return m.Entry
}

func (m *Type) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.TypeId)
	b = appendString(b, 2, m.Name)
	for _, e := range m.Entry {
		b = appendMessage(b, 3, e)
	}
	return b
}

func (m *Type) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.TypeId = new(TypeId)
			return consumeMessage(data, m.TypeId)
		case 2:
			return consumeString(data, &m.Name)
		case 3:
			e := new(Entry)
			n, err := consumeMessage(data, e)
			if err == nil {
				m.Entry = append(m.Entry, e)
			}
			return n, err
		}
		return 0, nil
	})
}

type EntryId struct {
	Id uint32
}

func (m *EntryId) GetId() uint32 {
	if m == nil {
		return 0
	}
	return m.Id
}

func (m *EntryId) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendUint32(b, 1, m.Id)
	return b
}

func (m *EntryId) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return consumeUint32(data, &m.Id)
		}
		return 0, nil
	})
}

type Entry struct {
	EntryId     *EntryId
	Name        string
	ConfigValue []*ConfigValue
}

func (m *Entry) GetConfigValue() []*ConfigValue {
	if m == nil {
		return nil
	}
	return m.ConfigValue
}

func (m *Entry) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.EntryId)
	b = appendString(b, 2, m.Name)
	for _, cv := range m.ConfigValue {
		b = appendMessage(b, 6, cv)
	}
	return b
}

func (m *Entry) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.EntryId = new(EntryId)
			return consumeMessage(data, m.EntryId)
		case 2:
			return consumeString(data, &m.Name)
		case 6:
			cv := new(ConfigValue)
			n, err := consumeMessage(data, cv)
			if err == nil {
				m.ConfigValue = append(m.ConfigValue, cv)
			}
			return n, err
		}
		return 0, nil
	})
}

type ConfigValue struct {
	Config *Configuration
	Value  *Value
}

func (m *ConfigValue) GetConfig() *Configuration {
	if m == nil {
		return nil
	}
	return m.Config
}

func (m *ConfigValue) GetValue() *Value {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *ConfigValue) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.Config)
	b = appendMessage(b, 2, m.Value)
	return b
}

func (m *ConfigValue) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.Config = new(Configuration)
			return consumeMessage(data, m.Config)
		case 2:
			m.Value = new(Value)
			return consumeMessage(data, m.Value)
		}
		return 0, nil
	})
}

// Configuration is the resource qualifier set, reduced to the qualifiers the
// splitter partitions on. Density 0xFFFE marks anydpi, 0xFFFF nodpi,
// matching the platform's encoding.
type Configuration struct {
	Locale     string
	Density    uint32
	SdkVersion int32
}

const (
	DensityAny  = 0xFFFE
	DensityNone = 0xFFFF
)

func (m *Configuration) GetLocale() string {
	if m == nil {
		return ""
	}
	return m.Locale
}

func (m *Configuration) GetDensity() uint32 {
	if m == nil {
		return 0
	}
	return m.Density
}

func (m *Configuration) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 3, m.Locale)
	b = appendUint32(b, 13, m.Density)
	b = appendInt32(b, 17, m.SdkVersion)
	return b
}

func (m *Configuration) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 3 && typ == protowire.BytesType:
			return consumeString(data, &m.Locale)
		case num == 13 && typ == protowire.VarintType:
			return consumeUint32(data, &m.Density)
		case num == 17 && typ == protowire.VarintType:
			return consumeInt32(data, &m.SdkVersion)
		}
		return 0, nil
	})
}

// Value wraps a single resource item. Compound values are not modeled: their
// fields are skipped on decode and not written back.
type Value struct {
	Item *Item
}

func (m *Value) GetItem() *Item {
	if m == nil {
		return nil
	}
	return m.Item
}

func (m *Value) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.Item)
	return b
}

func (m *Value) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			m.Item = new(Item)
			return consumeMessage(data, m.Item)
		}
		return 0, nil
	})
}

type Item struct {
	Ref  *Reference
	Str  string
	File *FileReference
}

func (m *Item) GetFile() *FileReference {
	if m == nil {
		return nil
	}
	return m.File
}

func (m *Item) GetRef() *Reference {
	if m == nil {
		return nil
	}
	return m.Ref
}

func (m *Item) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.Ref)
	b = appendString(b, 2, m.Str)
	b = appendMessage(b, 5, m.File)
	return b
}

func (m *Item) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.Ref = new(Reference)
			return consumeMessage(data, m.Ref)
		case 2:
			return consumeString(data, &m.Str)
		case 5:
			m.File = new(FileReference)
			return consumeMessage(data, m.File)
		}
		return 0, nil
	})
}

type Reference struct {
	Id   uint32
	Name string
}

func (m *Reference) GetId() uint32 {
	if m == nil {
		return 0
	}
	return m.Id
}

func (m *Reference) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendUint32(b, 2, m.Id)
	b = appendString(b, 3, m.Name)
	return b
}

func (m *Reference) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 2 && typ == protowire.VarintType:
			return consumeUint32(data, &m.Id)
		case num == 3 && typ == protowire.BytesType:
			return consumeString(data, &m.Name)
		}
		return 0, nil
	})
}

type FileReference struct {
	Path string
}

func (m *FileReference) GetPath() string {
	if m == nil {
		return ""
	}
	return m.Path
}

func (m *FileReference) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.Path)
	return b
}

func (m *FileReference) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			return consumeString(data, &m.Path)
		}
		return 0, nil
	})
}

// RemapPackageId rewrites the package byte of a resource reference id.
// Framework references (package 0x01) are never remapped.
func RemapPackageId(id uint32, packageId uint32) uint32 {
	if id>>24 == 0x01 {
		return id
	}
	return packageId<<24 | id&0x00FFFFFF
}
