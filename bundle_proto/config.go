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

type BundleConfig_BundleType int32

const (
	BundleConfig_REGULAR    BundleConfig_BundleType = 0
	BundleConfig_APEX       BundleConfig_BundleType = 1
	BundleConfig_ASSET_ONLY BundleConfig_BundleType = 2
)

// BundleConfig is the BundleConfig.pb entry at the root of a bundle.
type BundleConfig struct {
	Bundletool                *Bundletool
	Optimizations             *Optimizations
	Compression               *Compression
	UnsignedEmbeddedApkConfig []*UnsignedEmbeddedApkConfig
	Type                      BundleConfig_BundleType
}

func (m *BundleConfig) GetBundletool() *Bundletool {
	if m == nil {
		return nil
	}
	return m.Bundletool
}

func (m *BundleConfig) GetOptimizations() *Optimizations {
	if m == nil {
		return nil
	}
	return m.Optimizations
}

func (m *BundleConfig) GetCompression() *Compression {
	if m == nil {
		return nil
	}
	return m.Compression
}

func (m *BundleConfig) GetUnsignedEmbeddedApkConfig() []*UnsignedEmbeddedApkConfig {
	if m == nil {
		return nil
	}
	return m.UnsignedEmbeddedApkConfig
}

func (m *BundleConfig) GetType() BundleConfig_BundleType {
	if m == nil {
		return BundleConfig_REGULAR
	}
	return m.Type
}

func (m *BundleConfig) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.Bundletool)
	b = appendMessage(b, 2, m.Optimizations)
	b = appendMessage(b, 3, m.Compression)
	for _, c := range m.UnsignedEmbeddedApkConfig {
		b = appendMessage(b, 6, c)
	}
	b = appendEnum(b, 8, m.Type)
	return b
}

func (m *BundleConfig) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.Bundletool = new(Bundletool)
			return consumeMessage(data, m.Bundletool)
		case num == 2 && typ == protowire.BytesType:
			m.Optimizations = new(Optimizations)
			return consumeMessage(data, m.Optimizations)
		case num == 3 && typ == protowire.BytesType:
			m.Compression = new(Compression)
			return consumeMessage(data, m.Compression)
		case num == 6 && typ == protowire.BytesType:
			c := new(UnsignedEmbeddedApkConfig)
			n, err := consumeMessage(data, c)
			if err == nil {
				m.UnsignedEmbeddedApkConfig = append(m.UnsignedEmbeddedApkConfig, c)
			}
			return n, err
		case num == 8 && typ == protowire.VarintType:
			return consumeEnum(data, &m.Type)
		}
		return 0, nil
	})
}

// Bundletool records the version of the tool that built the bundle.
// The version string is field 2 in the upstream schema.
type Bundletool struct {
	Version string
}

func (m *Bundletool) GetVersion() string {
	if m == nil {
		return ""
	}
	return m.Version
}

func (m *Bundletool) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 2, m.Version)
	return b
}

func (m *Bundletool) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 2 && typ == protowire.BytesType {
			return consumeString(data, &m.Version)
		}
		return 0, nil
	})
}

type Optimizations struct {
	SplitsConfig              *SplitsConfig
	UncompressNativeLibraries *UncompressNativeLibraries
	UncompressDexFiles        *UncompressDexFiles
	StandaloneConfig          *StandaloneConfig
}

func (m *Optimizations) GetSplitsConfig() *SplitsConfig {
	if m == nil {
		return nil
	}
	return m.SplitsConfig
}

func (m *Optimizations) GetUncompressNativeLibraries() *UncompressNativeLibraries {
	if m == nil {
		return nil
	}
	return m.UncompressNativeLibraries
}

func (m *Optimizations) GetUncompressDexFiles() *UncompressDexFiles {
	if m == nil {
		return nil
	}
	return m.UncompressDexFiles
}

func (m *Optimizations) GetStandaloneConfig() *StandaloneConfig {
	if m == nil {
		return nil
	}
	return m.StandaloneConfig
}

func (m *Optimizations) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.SplitsConfig)
	b = appendMessage(b, 2, m.UncompressNativeLibraries)
	b = appendMessage(b, 3, m.UncompressDexFiles)
	b = appendMessage(b, 4, m.StandaloneConfig)
	return b
}

func (m *Optimizations) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.SplitsConfig = new(SplitsConfig)
			return consumeMessage(data, m.SplitsConfig)
		case 2:
			m.UncompressNativeLibraries = new(UncompressNativeLibraries)
			return consumeMessage(data, m.UncompressNativeLibraries)
		case 3:
			m.UncompressDexFiles = new(UncompressDexFiles)
			return consumeMessage(data, m.UncompressDexFiles)
		case 4:
			m.StandaloneConfig = new(StandaloneConfig)
			return consumeMessage(data, m.StandaloneConfig)
		}
		return 0, nil
	})
}

type SplitsConfig struct {
	SplitDimension []*SplitDimension
}

func (m *SplitsConfig) GetSplitDimension() []*SplitDimension {
	if m == nil {
		return nil
	}
	return m.SplitDimension
}

func (m *SplitsConfig) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, d := range m.SplitDimension {
		b = appendMessage(b, 1, d)
	}
	return b
}

func (m *SplitsConfig) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			d := new(SplitDimension)
			n, err := consumeMessage(data, d)
			if err == nil {
				m.SplitDimension = append(m.SplitDimension, d)
			}
			return n, err
		}
		return 0, nil
	})
}

type SplitDimension_Value int32

const (
	SplitDimension_UNSPECIFIED_VALUE          SplitDimension_Value = 0
	SplitDimension_ABI                        SplitDimension_Value = 1
	SplitDimension_SCREEN_DENSITY             SplitDimension_Value = 2
	SplitDimension_LANGUAGE                   SplitDimension_Value = 3
	SplitDimension_TEXTURE_COMPRESSION_FORMAT SplitDimension_Value = 4
	SplitDimension_DEVICE_TIER                SplitDimension_Value = 6
	SplitDimension_COUNTRY_SET                SplitDimension_Value = 7
)

var SplitDimension_Value_name = map[SplitDimension_Value]string{
	SplitDimension_UNSPECIFIED_VALUE:          "UNSPECIFIED_VALUE",
	SplitDimension_ABI:                        "ABI",
	SplitDimension_SCREEN_DENSITY:             "SCREEN_DENSITY",
	SplitDimension_LANGUAGE:                   "LANGUAGE",
	SplitDimension_TEXTURE_COMPRESSION_FORMAT: "TEXTURE_COMPRESSION_FORMAT",
	SplitDimension_DEVICE_TIER:                "DEVICE_TIER",
	SplitDimension_COUNTRY_SET:                "COUNTRY_SET",
}

var SplitDimension_Value_value = map[string]SplitDimension_Value{
	"UNSPECIFIED_VALUE":          SplitDimension_UNSPECIFIED_VALUE,
	"ABI":                        SplitDimension_ABI,
	"SCREEN_DENSITY":             SplitDimension_SCREEN_DENSITY,
	"LANGUAGE":                   SplitDimension_LANGUAGE,
	"TEXTURE_COMPRESSION_FORMAT": SplitDimension_TEXTURE_COMPRESSION_FORMAT,
	"DEVICE_TIER":                SplitDimension_DEVICE_TIER,
	"COUNTRY_SET":                SplitDimension_COUNTRY_SET,
}

func (v SplitDimension_Value) String() string {
	if s, ok := SplitDimension_Value_name[v]; ok {
		return s
	}
	return "UNKNOWN"
}

type SplitDimension struct {
	Value           SplitDimension_Value
	Negate          bool
	SuffixStripping *SuffixStripping
}

func (m *SplitDimension) GetValue() SplitDimension_Value {
	if m == nil {
		return SplitDimension_UNSPECIFIED_VALUE
	}
	return m.Value
}

func (m *SplitDimension) GetNegate() bool {
	if m == nil {
		return false
	}
	return m.Negate
}

func (m *SplitDimension) GetSuffixStripping() *SuffixStripping {
	if m == nil {
		return nil
	}
	return m.SuffixStripping
}

func (m *SplitDimension) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendEnum(b, 1, m.Value)
	b = appendBool(b, 2, m.Negate)
	b = appendMessage(b, 3, m.SuffixStripping)
	return b
}

func (m *SplitDimension) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return consumeEnum(data, &m.Value)
		case num == 2 && typ == protowire.VarintType:
			return consumeBool(data, &m.Negate)
		case num == 3 && typ == protowire.BytesType:
			m.SuffixStripping = new(SuffixStripping)
			return consumeMessage(data, m.SuffixStripping)
		}
		return 0, nil
	})
}

type SuffixStripping struct {
	Enabled       bool
	DefaultSuffix string
}

func (m *SuffixStripping) GetEnabled() bool {
	if m == nil {
		return false
	}
	return m.Enabled
}

func (m *SuffixStripping) GetDefaultSuffix() string {
	if m == nil {
		return ""
	}
	return m.DefaultSuffix
}

func (m *SuffixStripping) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendBool(b, 1, m.Enabled)
	b = appendString(b, 2, m.DefaultSuffix)
	return b
}

func (m *SuffixStripping) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return consumeBool(data, &m.Enabled)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(data, &m.DefaultSuffix)
		}
		return 0, nil
	})
}

type UncompressNativeLibraries struct {
	Enabled bool
}

func (m *UncompressNativeLibraries) GetEnabled() bool {
	if m == nil {
		return false
	}
	return m.Enabled
}

func (m *UncompressNativeLibraries) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendBool(b, 1, m.Enabled)
	return b
}

func (m *UncompressNativeLibraries) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return consumeBool(data, &m.Enabled)
		}
		return 0, nil
	})
}

type UncompressDexFiles_UncompressedDexTargetSdk int32

const (
	UncompressDexFiles_SDK_UNSPECIFIED UncompressDexFiles_UncompressedDexTargetSdk = 0
	UncompressDexFiles_SDK_31          UncompressDexFiles_UncompressedDexTargetSdk = 1
)

type UncompressDexFiles struct {
	Enabled                  bool
	UncompressedDexTargetSdk UncompressDexFiles_UncompressedDexTargetSdk
}

func (m *UncompressDexFiles) GetEnabled() bool {
	if m == nil {
		return false
	}
	return m.Enabled
}

func (m *UncompressDexFiles) GetUncompressedDexTargetSdk() UncompressDexFiles_UncompressedDexTargetSdk {
	if m == nil {
		return UncompressDexFiles_SDK_UNSPECIFIED
	}
	return m.UncompressedDexTargetSdk
}

func (m *UncompressDexFiles) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendBool(b, 1, m.Enabled)
	b = appendEnum(b, 2, m.UncompressedDexTargetSdk)
	return b
}

func (m *UncompressDexFiles) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return consumeBool(data, &m.Enabled)
		case num == 2 && typ == protowire.VarintType:
			return consumeEnum(data, &m.UncompressedDexTargetSdk)
		}
		return 0, nil
	})
}

type StandaloneConfig struct {
	SplitDimension      []*SplitDimension
	Strip64BitLibraries bool
}

func (m *StandaloneConfig) GetSplitDimension() []*SplitDimension {
	if m == nil {
		return nil
	}
	return m.SplitDimension
}

func (m *StandaloneConfig) GetStrip64BitLibraries() bool {
	if m == nil {
		return false
	}
	return m.Strip64BitLibraries
}

func (m *StandaloneConfig) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, d := range m.SplitDimension {
		b = appendMessage(b, 1, d)
	}
	b = appendBool(b, 2, m.Strip64BitLibraries)
	return b
}

func (m *StandaloneConfig) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			d := new(SplitDimension)
			n, err := consumeMessage(data, d)
			if err == nil {
				m.SplitDimension = append(m.SplitDimension, d)
			}
			return n, err
		case num == 2 && typ == protowire.VarintType:
			return consumeBool(data, &m.Strip64BitLibraries)
		}
		return 0, nil
	})
}

type Compression_AssetModuleCompression int32

const (
	Compression_UNSPECIFIED  Compression_AssetModuleCompression = 0
	Compression_UNCOMPRESSED Compression_AssetModuleCompression = 1
	Compression_COMPRESSED   Compression_AssetModuleCompression = 2
)

type Compression struct {
	UncompressedGlob []string
	// Compression of install-time asset modules. On-demand asset module
	// content is always left uncompressed.
	InstallTimeAssetModuleDefaultCompression Compression_AssetModuleCompression
}

func (m *Compression) GetUncompressedGlob() []string {
	if m == nil {
		return nil
	}
	return m.UncompressedGlob
}

func (m *Compression) GetInstallTimeAssetModuleDefaultCompression() Compression_AssetModuleCompression {
	if m == nil {
		return Compression_UNSPECIFIED
	}
	return m.InstallTimeAssetModuleDefaultCompression
}

func (m *Compression) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendStrings(b, 1, m.UncompressedGlob)
	b = appendEnum(b, 2, m.InstallTimeAssetModuleDefaultCompression)
	return b
}

func (m *Compression) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeStrings(data, &m.UncompressedGlob)
		case num == 2 && typ == protowire.VarintType:
			return consumeEnum(data, &m.InstallTimeAssetModuleDefaultCompression)
		}
		return 0, nil
	})
}

type UnsignedEmbeddedApkConfig struct {
	Path string
}

func (m *UnsignedEmbeddedApkConfig) GetPath() string {
	if m == nil {
		return ""
	}
	return m.Path
}

func (m *UnsignedEmbeddedApkConfig) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.Path)
	return b
}

func (m *UnsignedEmbeddedApkConfig) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			return consumeString(data, &m.Path)
		}
		return 0, nil
	})
}

type DeliveryType int32

const (
	DeliveryType_UNKNOWN_DELIVERY_TYPE DeliveryType = 0
	DeliveryType_INSTALL_TIME          DeliveryType = 1
	DeliveryType_ON_DEMAND             DeliveryType = 2
	DeliveryType_FAST_FOLLOW           DeliveryType = 3
)

var DeliveryType_name = map[DeliveryType]string{
	DeliveryType_UNKNOWN_DELIVERY_TYPE: "UNKNOWN_DELIVERY_TYPE",
	DeliveryType_INSTALL_TIME:          "INSTALL_TIME",
	DeliveryType_ON_DEMAND:             "ON_DEMAND",
	DeliveryType_FAST_FOLLOW:           "FAST_FOLLOW",
}

func (d DeliveryType) String() string {
	if s, ok := DeliveryType_name[d]; ok {
		return s
	}
	return "UNKNOWN"
}
