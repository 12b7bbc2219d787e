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

// BuildApksResult is the toc.pb entry of an APK set.
type BuildApksResult struct {
	Variant    []*Variant
	Bundletool *Bundletool
}

func (m *BuildApksResult) GetVariant() []*Variant {
	if m == nil {
		return nil
	}
	return m.Variant
}

func (m *BuildApksResult) GetBundletool() *Bundletool {
	if m == nil {
		return nil
	}
	return m.Bundletool
}

func (m *BuildApksResult) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, v := range m.Variant {
		b = appendMessage(b, 1, v)
	}
	b = appendMessage(b, 2, m.Bundletool)
	return b
}

func (m *BuildApksResult) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			v := new(Variant)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Variant = append(m.Variant, v)
			}
			return n, err
		case 2:
			m.Bundletool = new(Bundletool)
			return consumeMessage(data, m.Bundletool)
		}
		return 0, nil
	})
}

type Variant struct {
	Targeting     *VariantTargeting
	ApkSet        []*ApkSet
	VariantNumber uint32
}

func (m *Variant) GetTargeting() *VariantTargeting {
	if m == nil {
		return nil
	}
	return m.Targeting
}

func (m *Variant) GetApkSet() []*ApkSet {
	if m == nil {
		return nil
	}
	return m.ApkSet
}

func (m *Variant) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.Targeting)
	for _, s := range m.ApkSet {
		b = appendMessage(b, 2, s)
	}
	b = appendUint32(b, 3, m.VariantNumber)
	return b
}

func (m *Variant) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.Targeting = new(VariantTargeting)
			return consumeMessage(data, m.Targeting)
		case num == 2 && typ == protowire.BytesType:
			s := new(ApkSet)
			n, err := consumeMessage(data, s)
			if err == nil {
				m.ApkSet = append(m.ApkSet, s)
			}
			return n, err
		case num == 3 && typ == protowire.VarintType:
			return consumeUint32(data, &m.VariantNumber)
		}
		return 0, nil
	})
}

type ApkSet struct {
	ModuleMetadata *ModuleMetadata
	ApkDescription []*ApkDescription
}

func (m *ApkSet) GetModuleMetadata() *ModuleMetadata {
	if m == nil {
		return nil
	}
	return m.ModuleMetadata
}

func (m *ApkSet) GetApkDescription() []*ApkDescription {
	if m == nil {
		return nil
	}
	return m.ApkDescription
}

func (m *ApkSet) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.ModuleMetadata)
	for _, d := range m.ApkDescription {
		b = appendMessage(b, 2, d)
	}
	return b
}

func (m *ApkSet) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.ModuleMetadata = new(ModuleMetadata)
			return consumeMessage(data, m.ModuleMetadata)
		case 2:
			d := new(ApkDescription)
			n, err := consumeMessage(data, d)
			if err == nil {
				m.ApkDescription = append(m.ApkDescription, d)
			}
			return n, err
		}
		return 0, nil
	})
}

type ModuleMetadata struct {
	Name         string
	IsInstant    bool
	Targeting    *ModuleTargeting
	DeliveryType DeliveryType
}

func (m *ModuleMetadata) GetName() string {
	if m == nil {
		return ""
	}
	return m.Name
}

func (m *ModuleMetadata) GetTargeting() *ModuleTargeting {
	if m == nil {
		return nil
	}
	return m.Targeting
}

func (m *ModuleMetadata) GetDeliveryType() DeliveryType {
	if m == nil {
		return DeliveryType_UNKNOWN_DELIVERY_TYPE
	}
	return m.DeliveryType
}

func (m *ModuleMetadata) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.Name)
	b = appendBool(b, 3, m.IsInstant)
	b = appendMessage(b, 4, m.Targeting)
	b = appendEnum(b, 5, m.DeliveryType)
	return b
}

func (m *ModuleMetadata) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(data, &m.Name)
		case num == 3 && typ == protowire.VarintType:
			return consumeBool(data, &m.IsInstant)
		case num == 4 && typ == protowire.BytesType:
			m.Targeting = new(ModuleTargeting)
			return consumeMessage(data, m.Targeting)
		case num == 5 && typ == protowire.VarintType:
			return consumeEnum(data, &m.DeliveryType)
		}
		return 0, nil
	})
}

type ApkDescription struct {
	Targeting *ApkTargeting
	Path      string

	// At most one of the metadata fields is set, matching the kind of APK.
	SplitApkMetadata      *SplitApkMetadata
	StandaloneApkMetadata *StandaloneApkMetadata
	SystemApkMetadata     *SystemApkMetadata
	ApexApkMetadata       *ApexApkMetadata
}

func (m *ApkDescription) GetTargeting() *ApkTargeting {
	if m == nil {
		return nil
	}
	return m.Targeting
}

func (m *ApkDescription) GetPath() string {
	if m == nil {
		return ""
	}
	return m.Path
}

func (m *ApkDescription) GetSplitApkMetadata() *SplitApkMetadata {
	if m == nil {
		return nil
	}
	return m.SplitApkMetadata
}

func (m *ApkDescription) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.Targeting)
	b = appendString(b, 2, m.Path)
	b = appendMessage(b, 3, m.SplitApkMetadata)
	b = appendMessage(b, 4, m.StandaloneApkMetadata)
	b = appendMessage(b, 6, m.SystemApkMetadata)
	b = appendMessage(b, 7, m.ApexApkMetadata)
	return b
}

func (m *ApkDescription) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.Targeting = new(ApkTargeting)
			return consumeMessage(data, m.Targeting)
		case 2:
			return consumeString(data, &m.Path)
		case 3:
			m.SplitApkMetadata = new(SplitApkMetadata)
			return consumeMessage(data, m.SplitApkMetadata)
		case 4:
			m.StandaloneApkMetadata = new(StandaloneApkMetadata)
			return consumeMessage(data, m.StandaloneApkMetadata)
		case 6:
			m.SystemApkMetadata = new(SystemApkMetadata)
			return consumeMessage(data, m.SystemApkMetadata)
		case 7:
			m.ApexApkMetadata = new(ApexApkMetadata)
			return consumeMessage(data, m.ApexApkMetadata)
		}
		return 0, nil
	})
}

type SplitApkMetadata struct {
	SplitId       string
	IsMasterSplit bool
}

func (m *SplitApkMetadata) GetSplitId() string {
	if m == nil {
		return ""
	}
	return m.SplitId
}

func (m *SplitApkMetadata) GetIsMasterSplit() bool {
	if m == nil {
		return false
	}
	return m.IsMasterSplit
}

func (m *SplitApkMetadata) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.SplitId)
	b = appendBool(b, 2, m.IsMasterSplit)
	return b
}

func (m *SplitApkMetadata) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(data, &m.SplitId)
		case num == 2 && typ == protowire.VarintType:
			return consumeBool(data, &m.IsMasterSplit)
		}
		return 0, nil
	})
}

type StandaloneApkMetadata struct {
	FusedModuleName []string
}

func (m *StandaloneApkMetadata) GetFusedModuleName() []string {
	if m == nil {
		return nil
	}
	return m.FusedModuleName
}

func (m *StandaloneApkMetadata) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendStrings(b, 1, m.FusedModuleName)
	return b
}

func (m *StandaloneApkMetadata) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			return consumeStrings(data, &m.FusedModuleName)
		}
		return 0, nil
	})
}

type SystemApkMetadata struct {
	FusedModuleName []string
}

func (m *SystemApkMetadata) GetFusedModuleName() []string {
	if m == nil {
		return nil
	}
	return m.FusedModuleName
}

func (m *SystemApkMetadata) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendStrings(b, 1, m.FusedModuleName)
	return b
}

func (m *SystemApkMetadata) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			return consumeStrings(data, &m.FusedModuleName)
		}
		return 0, nil
	})
}

type ApexApkMetadata struct {
}

func (m *ApexApkMetadata) Marshal() []byte {
	if m == nil {
		return nil
	}
	return []byte{}
}

func (m *ApexApkMetadata) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		return 0, nil
	})
}
