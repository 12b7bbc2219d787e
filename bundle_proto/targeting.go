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

type Abi_AbiAlias int32

const (
	Abi_UNSPECIFIED_CPU_ARCHITECTURE Abi_AbiAlias = 0
	Abi_ARMEABI                      Abi_AbiAlias = 1
	Abi_ARMEABI_V7A                  Abi_AbiAlias = 2
	Abi_ARM64_V8A                    Abi_AbiAlias = 3
	Abi_X86                          Abi_AbiAlias = 4
	Abi_X86_64                       Abi_AbiAlias = 5
	Abi_MIPS                         Abi_AbiAlias = 6
	Abi_MIPS64                       Abi_AbiAlias = 7
)

var Abi_AbiAlias_name = map[Abi_AbiAlias]string{
	Abi_UNSPECIFIED_CPU_ARCHITECTURE: "UNSPECIFIED_CPU_ARCHITECTURE",
	Abi_ARMEABI:                      "ARMEABI",
	Abi_ARMEABI_V7A:                  "ARMEABI_V7A",
	Abi_ARM64_V8A:                    "ARM64_V8A",
	Abi_X86:                          "X86",
	Abi_X86_64:                       "X86_64",
	Abi_MIPS:                         "MIPS",
	Abi_MIPS64:                       "MIPS64",
}

var Abi_AbiAlias_value = map[string]Abi_AbiAlias{
	"UNSPECIFIED_CPU_ARCHITECTURE": Abi_UNSPECIFIED_CPU_ARCHITECTURE,
	"ARMEABI":                      Abi_ARMEABI,
	"ARMEABI_V7A":                  Abi_ARMEABI_V7A,
	"ARM64_V8A":                    Abi_ARM64_V8A,
	"X86":                          Abi_X86,
	"X86_64":                       Abi_X86_64,
	"MIPS":                         Abi_MIPS,
	"MIPS64":                       Abi_MIPS64,
}

func (a Abi_AbiAlias) String() string {
	if s, ok := Abi_AbiAlias_name[a]; ok {
		return s
	}
	return "UNKNOWN"
}

type Abi struct {
	Alias Abi_AbiAlias
}

func (m *Abi) GetAlias() Abi_AbiAlias {
	if m == nil {
		return Abi_UNSPECIFIED_CPU_ARCHITECTURE
	}
	return m.Alias
}

func (m *Abi) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendEnum(b, 1, m.Alias)
	return b
}

func (m *Abi) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return consumeEnum(data, &m.Alias)
		}
		return 0, nil
	})
}

type MultiAbi struct {
	Abi []*Abi
}

func (m *MultiAbi) GetAbi() []*Abi {
	if m == nil {
		return nil
	}
	return m.Abi
}

func (m *MultiAbi) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, a := range m.Abi {
		b = appendMessage(b, 1, a)
	}
	return b
}

func (m *MultiAbi) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			a := new(Abi)
			n, err := consumeMessage(data, a)
			if err == nil {
				m.Abi = append(m.Abi, a)
			}
			return n, err
		}
		return 0, nil
	})
}

type MultiAbiTargeting struct {
	Value        []*MultiAbi
	Alternatives []*MultiAbi
}

func (m *MultiAbiTargeting) GetValue() []*MultiAbi {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *MultiAbiTargeting) GetAlternatives() []*MultiAbi {
	if m == nil {
		return nil
	}
	return m.Alternatives
}

func (m *MultiAbiTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, v := range m.Value {
		b = appendMessage(b, 1, v)
	}
	for _, v := range m.Alternatives {
		b = appendMessage(b, 2, v)
	}
	return b
}

func (m *MultiAbiTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v := new(MultiAbi)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Value = append(m.Value, v)
			}
			return n, err
		case num == 2 && typ == protowire.BytesType:
			v := new(MultiAbi)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Alternatives = append(m.Alternatives, v)
			}
			return n, err
		}
		return 0, nil
	})
}

type AbiTargeting struct {
	Value        []*Abi
	Alternatives []*Abi
}

func (m *AbiTargeting) GetValue() []*Abi {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *AbiTargeting) GetAlternatives() []*Abi {
	if m == nil {
		return nil
	}
	return m.Alternatives
}

func (m *AbiTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, v := range m.Value {
		b = appendMessage(b, 1, v)
	}
	for _, v := range m.Alternatives {
		b = appendMessage(b, 2, v)
	}
	return b
}

func (m *AbiTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v := new(Abi)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Value = append(m.Value, v)
			}
			return n, err
		case num == 2 && typ == protowire.BytesType:
			v := new(Abi)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Alternatives = append(m.Alternatives, v)
			}
			return n, err
		}
		return 0, nil
	})
}

type ScreenDensity_DensityAlias int32

const (
	ScreenDensity_DENSITY_UNSPECIFIED ScreenDensity_DensityAlias = 0
	ScreenDensity_NODPI               ScreenDensity_DensityAlias = 1
	ScreenDensity_LDPI                ScreenDensity_DensityAlias = 2
	ScreenDensity_MDPI                ScreenDensity_DensityAlias = 3
	ScreenDensity_TVDPI               ScreenDensity_DensityAlias = 4
	ScreenDensity_HDPI                ScreenDensity_DensityAlias = 5
	ScreenDensity_XHDPI               ScreenDensity_DensityAlias = 6
	ScreenDensity_XXHDPI              ScreenDensity_DensityAlias = 7
	ScreenDensity_XXXHDPI             ScreenDensity_DensityAlias = 8
)

var ScreenDensity_DensityAlias_name = map[ScreenDensity_DensityAlias]string{
	ScreenDensity_DENSITY_UNSPECIFIED: "DENSITY_UNSPECIFIED",
	ScreenDensity_NODPI:               "NODPI",
	ScreenDensity_LDPI:                "LDPI",
	ScreenDensity_MDPI:                "MDPI",
	ScreenDensity_TVDPI:               "TVDPI",
	ScreenDensity_HDPI:                "HDPI",
	ScreenDensity_XHDPI:               "XHDPI",
	ScreenDensity_XXHDPI:              "XXHDPI",
	ScreenDensity_XXXHDPI:             "XXXHDPI",
}

var ScreenDensity_DensityAlias_value = map[string]ScreenDensity_DensityAlias{
	"DENSITY_UNSPECIFIED": ScreenDensity_DENSITY_UNSPECIFIED,
	"NODPI":               ScreenDensity_NODPI,
	"LDPI":                ScreenDensity_LDPI,
	"MDPI":                ScreenDensity_MDPI,
	"TVDPI":               ScreenDensity_TVDPI,
	"HDPI":                ScreenDensity_HDPI,
	"XHDPI":               ScreenDensity_XHDPI,
	"XXHDPI":              ScreenDensity_XXHDPI,
	"XXXHDPI":             ScreenDensity_XXXHDPI,
}

func (d ScreenDensity_DensityAlias) String() string {
	if s, ok := ScreenDensity_DensityAlias_name[d]; ok {
		return s
	}
	return "UNKNOWN"
}

// ScreenDensity holds either a named density bucket or a raw dpi value.
type ScreenDensity struct {
	DensityAlias ScreenDensity_DensityAlias
	DensityDpi   uint32
}

func (m *ScreenDensity) GetDensityAlias() ScreenDensity_DensityAlias {
	if m == nil {
		return ScreenDensity_DENSITY_UNSPECIFIED
	}
	return m.DensityAlias
}

func (m *ScreenDensity) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	if m.DensityDpi != 0 {
		b = appendUint32(b, 2, m.DensityDpi)
	} else {
		b = appendEnum(b, 1, m.DensityAlias)
	}
	return b
}

func (m *ScreenDensity) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return consumeEnum(data, &m.DensityAlias)
		case num == 2 && typ == protowire.VarintType:
			return consumeUint32(data, &m.DensityDpi)
		}
		return 0, nil
	})
}

type ScreenDensityTargeting struct {
	Value        []*ScreenDensity
	Alternatives []*ScreenDensity
}

func (m *ScreenDensityTargeting) GetValue() []*ScreenDensity {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *ScreenDensityTargeting) GetAlternatives() []*ScreenDensity {
	if m == nil {
		return nil
	}
	return m.Alternatives
}

func (m *ScreenDensityTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, v := range m.Value {
		b = appendMessage(b, 1, v)
	}
	for _, v := range m.Alternatives {
		b = appendMessage(b, 2, v)
	}
	return b
}

func (m *ScreenDensityTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v := new(ScreenDensity)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Value = append(m.Value, v)
			}
			return n, err
		case num == 2 && typ == protowire.BytesType:
			v := new(ScreenDensity)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Alternatives = append(m.Alternatives, v)
			}
			return n, err
		}
		return 0, nil
	})
}

// LanguageTargeting values are two or three letter language codes.
type LanguageTargeting struct {
	Value        []string
	Alternatives []string
}

func (m *LanguageTargeting) GetValue() []string {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *LanguageTargeting) GetAlternatives() []string {
	if m == nil {
		return nil
	}
	return m.Alternatives
}

func (m *LanguageTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendStrings(b, 1, m.Value)
	b = appendStrings(b, 2, m.Alternatives)
	return b
}

func (m *LanguageTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeStrings(data, &m.Value)
		case num == 2 && typ == protowire.BytesType:
			return consumeStrings(data, &m.Alternatives)
		}
		return 0, nil
	})
}

// Int32Value mirrors google.protobuf.Int32Value.
type Int32Value struct {
	Value int32
}

func (m *Int32Value) GetValue() int32 {
	if m == nil {
		return 0
	}
	return m.Value
}

func (m *Int32Value) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendInt32(b, 1, m.Value)
	return b
}

func (m *Int32Value) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return consumeInt32(data, &m.Value)
		}
		return 0, nil
	})
}

type SdkVersion struct {
	Min *Int32Value
}

func (m *SdkVersion) GetMin() *Int32Value {
	if m == nil {
		return nil
	}
	return m.Min
}

func (m *SdkVersion) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.Min)
	return b
}

func (m *SdkVersion) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			m.Min = new(Int32Value)
			return consumeMessage(data, m.Min)
		}
		return 0, nil
	})
}

type SdkVersionTargeting struct {
	Value        []*SdkVersion
	Alternatives []*SdkVersion
}

func (m *SdkVersionTargeting) GetValue() []*SdkVersion {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *SdkVersionTargeting) GetAlternatives() []*SdkVersion {
	if m == nil {
		return nil
	}
	return m.Alternatives
}

func (m *SdkVersionTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, v := range m.Value {
		b = appendMessage(b, 1, v)
	}
	for _, v := range m.Alternatives {
		b = appendMessage(b, 2, v)
	}
	return b
}

func (m *SdkVersionTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v := new(SdkVersion)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Value = append(m.Value, v)
			}
			return n, err
		case num == 2 && typ == protowire.BytesType:
			v := new(SdkVersion)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Alternatives = append(m.Alternatives, v)
			}
			return n, err
		}
		return 0, nil
	})
}

type TextureCompressionFormat_TextureCompressionFormatAlias int32

const (
	TextureCompressionFormat_UNSPECIFIED_TEXTURE_COMPRESSION_FORMAT TextureCompressionFormat_TextureCompressionFormatAlias = 0
	TextureCompressionFormat_ETC1_RGB8                              TextureCompressionFormat_TextureCompressionFormatAlias = 1
	TextureCompressionFormat_PALETTED                               TextureCompressionFormat_TextureCompressionFormatAlias = 2
	TextureCompressionFormat_THREE_DC                               TextureCompressionFormat_TextureCompressionFormatAlias = 3
	TextureCompressionFormat_ATC                                    TextureCompressionFormat_TextureCompressionFormatAlias = 4
	TextureCompressionFormat_LATC                                   TextureCompressionFormat_TextureCompressionFormatAlias = 5
	TextureCompressionFormat_DXT1                                   TextureCompressionFormat_TextureCompressionFormatAlias = 6
	TextureCompressionFormat_S3TC                                   TextureCompressionFormat_TextureCompressionFormatAlias = 7
	TextureCompressionFormat_PVRTC                                  TextureCompressionFormat_TextureCompressionFormatAlias = 8
	TextureCompressionFormat_ASTC                                   TextureCompressionFormat_TextureCompressionFormatAlias = 9
	TextureCompressionFormat_ETC2                                   TextureCompressionFormat_TextureCompressionFormatAlias = 10
)

var TextureCompressionFormat_name = map[TextureCompressionFormat_TextureCompressionFormatAlias]string{
	TextureCompressionFormat_UNSPECIFIED_TEXTURE_COMPRESSION_FORMAT: "UNSPECIFIED_TEXTURE_COMPRESSION_FORMAT",
	TextureCompressionFormat_ETC1_RGB8:                              "ETC1_RGB8",
	TextureCompressionFormat_PALETTED:                               "PALETTED",
	TextureCompressionFormat_THREE_DC:                               "THREE_DC",
	TextureCompressionFormat_ATC:                                    "ATC",
	TextureCompressionFormat_LATC:                                   "LATC",
	TextureCompressionFormat_DXT1:                                   "DXT1",
	TextureCompressionFormat_S3TC:                                   "S3TC",
	TextureCompressionFormat_PVRTC:                                  "PVRTC",
	TextureCompressionFormat_ASTC:                                   "ASTC",
	TextureCompressionFormat_ETC2:                                   "ETC2",
}

func (t TextureCompressionFormat_TextureCompressionFormatAlias) String() string {
	if s, ok := TextureCompressionFormat_name[t]; ok {
		return s
	}
	return "UNKNOWN"
}

type TextureCompressionFormat struct {
	Alias TextureCompressionFormat_TextureCompressionFormatAlias
}

func (m *TextureCompressionFormat) GetAlias() TextureCompressionFormat_TextureCompressionFormatAlias {
	if m == nil {
		return TextureCompressionFormat_UNSPECIFIED_TEXTURE_COMPRESSION_FORMAT
	}
	return m.Alias
}

func (m *TextureCompressionFormat) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendEnum(b, 1, m.Alias)
	return b
}

func (m *TextureCompressionFormat) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return consumeEnum(data, &m.Alias)
		}
		return 0, nil
	})
}

type TextureCompressionFormatTargeting struct {
	Value        []*TextureCompressionFormat
	Alternatives []*TextureCompressionFormat
}

func (m *TextureCompressionFormatTargeting) GetValue() []*TextureCompressionFormat {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *TextureCompressionFormatTargeting) GetAlternatives() []*TextureCompressionFormat {
	if m == nil {
		return nil
	}
	return m.Alternatives
}

func (m *TextureCompressionFormatTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, v := range m.Value {
		b = appendMessage(b, 1, v)
	}
	for _, v := range m.Alternatives {
		b = appendMessage(b, 2, v)
	}
	return b
}

func (m *TextureCompressionFormatTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v := new(TextureCompressionFormat)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Value = append(m.Value, v)
			}
			return n, err
		case num == 2 && typ == protowire.BytesType:
			v := new(TextureCompressionFormat)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Alternatives = append(m.Alternatives, v)
			}
			return n, err
		}
		return 0, nil
	})
}

// DeviceTierTargeting values are tier names starting with a letter.
type DeviceTierTargeting struct {
	Value        []string
	Alternatives []string
}

func (m *DeviceTierTargeting) GetValue() []string {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *DeviceTierTargeting) GetAlternatives() []string {
	if m == nil {
		return nil
	}
	return m.Alternatives
}

func (m *DeviceTierTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendStrings(b, 1, m.Value)
	b = appendStrings(b, 2, m.Alternatives)
	return b
}

func (m *DeviceTierTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeStrings(data, &m.Value)
		case num == 2 && typ == protowire.BytesType:
			return consumeStrings(data, &m.Alternatives)
		}
		return 0, nil
	})
}

type CountrySetTargeting struct {
	Value        []string
	Alternatives []string
}

func (m *CountrySetTargeting) GetValue() []string {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *CountrySetTargeting) GetAlternatives() []string {
	if m == nil {
		return nil
	}
	return m.Alternatives
}

func (m *CountrySetTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendStrings(b, 1, m.Value)
	b = appendStrings(b, 2, m.Alternatives)
	return b
}

func (m *CountrySetTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeStrings(data, &m.Value)
		case num == 2 && typ == protowire.BytesType:
			return consumeStrings(data, &m.Alternatives)
		}
		return 0, nil
	})
}

// GraphicsApi targeting is parsed from asset directory names but is not an
// enabled split dimension; only the version pair is retained.
type GraphicsApi struct {
	MinOpenGlVersion *GraphicsApiVersion
	MinVulkanVersion *GraphicsApiVersion
}

type GraphicsApiVersion struct {
	Major int32
	Minor int32
}

func (m *GraphicsApiVersion) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendInt32(b, 1, m.Major)
	b = appendInt32(b, 2, m.Minor)
	return b
}

func (m *GraphicsApiVersion) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			return consumeInt32(data, &m.Major)
		case num == 2 && typ == protowire.VarintType:
			return consumeInt32(data, &m.Minor)
		}
		return 0, nil
	})
}

func (m *GraphicsApi) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.MinOpenGlVersion)
	b = appendMessage(b, 2, m.MinVulkanVersion)
	return b
}

func (m *GraphicsApi) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.MinOpenGlVersion = new(GraphicsApiVersion)
			return consumeMessage(data, m.MinOpenGlVersion)
		case num == 2 && typ == protowire.BytesType:
			m.MinVulkanVersion = new(GraphicsApiVersion)
			return consumeMessage(data, m.MinVulkanVersion)
		}
		return 0, nil
	})
}

type SanitizerAlias int32

const (
	Sanitizer_NONE      SanitizerAlias = 0
	Sanitizer_HWADDRESS SanitizerAlias = 1
)

type Sanitizer struct {
	Alias SanitizerAlias
}

func (m *Sanitizer) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendEnum(b, 1, m.Alias)
	return b
}

func (m *Sanitizer) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			return consumeEnum(data, &m.Alias)
		}
		return 0, nil
	})
}

type SanitizerTargeting struct {
	Value []*Sanitizer
}

func (m *SanitizerTargeting) GetValue() []*Sanitizer {
	if m == nil {
		return nil
	}
	return m.Value
}

func (m *SanitizerTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, v := range m.Value {
		b = appendMessage(b, 1, v)
	}
	return b
}

func (m *SanitizerTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			v := new(Sanitizer)
			n, err := consumeMessage(data, v)
			if err == nil {
				m.Value = append(m.Value, v)
			}
			return n, err
		}
		return 0, nil
	})
}

// ApkTargeting describes the dimension values of a single APK, with the
// sibling variants recorded as alternatives.
type ApkTargeting struct {
	AbiTargeting                      *AbiTargeting
	LanguageTargeting                 *LanguageTargeting
	ScreenDensityTargeting            *ScreenDensityTargeting
	SdkVersionTargeting               *SdkVersionTargeting
	TextureCompressionFormatTargeting *TextureCompressionFormatTargeting
	MultiAbiTargeting                 *MultiAbiTargeting
	SanitizerTargeting                *SanitizerTargeting
	DeviceTierTargeting               *DeviceTierTargeting
	CountrySetTargeting               *CountrySetTargeting
}

func (m *ApkTargeting) GetAbiTargeting() *AbiTargeting {
	if m == nil {
		return nil
	}
	return m.AbiTargeting
}

func (m *ApkTargeting) GetLanguageTargeting() *LanguageTargeting {
	if m == nil {
		return nil
	}
	return m.LanguageTargeting
}

func (m *ApkTargeting) GetScreenDensityTargeting() *ScreenDensityTargeting {
	if m == nil {
		return nil
	}
	return m.ScreenDensityTargeting
}

func (m *ApkTargeting) GetSdkVersionTargeting() *SdkVersionTargeting {
	if m == nil {
		return nil
	}
	return m.SdkVersionTargeting
}

func (m *ApkTargeting) GetTextureCompressionFormatTargeting() *TextureCompressionFormatTargeting {
	if m == nil {
		return nil
	}
	return m.TextureCompressionFormatTargeting
}

func (m *ApkTargeting) GetMultiAbiTargeting() *MultiAbiTargeting {
	if m == nil {
		return nil
	}
	return m.MultiAbiTargeting
}

func (m *ApkTargeting) GetDeviceTierTargeting() *DeviceTierTargeting {
	if m == nil {
		return nil
	}
	return m.DeviceTierTargeting
}

func (m *ApkTargeting) GetCountrySetTargeting() *CountrySetTargeting {
	if m == nil {
		return nil
	}
	return m.CountrySetTargeting
}

func (m *ApkTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.AbiTargeting)
	b = appendMessage(b, 3, m.LanguageTargeting)
	b = appendMessage(b, 4, m.ScreenDensityTargeting)
	b = appendMessage(b, 5, m.SdkVersionTargeting)
	b = appendMessage(b, 6, m.TextureCompressionFormatTargeting)
	b = appendMessage(b, 7, m.MultiAbiTargeting)
	b = appendMessage(b, 8, m.SanitizerTargeting)
	b = appendMessage(b, 9, m.DeviceTierTargeting)
	b = appendMessage(b, 10, m.CountrySetTargeting)
	return b
}

func (m *ApkTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.AbiTargeting = new(AbiTargeting)
			return consumeMessage(data, m.AbiTargeting)
		case 3:
			m.LanguageTargeting = new(LanguageTargeting)
			return consumeMessage(data, m.LanguageTargeting)
		case 4:
			m.ScreenDensityTargeting = new(ScreenDensityTargeting)
			return consumeMessage(data, m.ScreenDensityTargeting)
		case 5:
			m.SdkVersionTargeting = new(SdkVersionTargeting)
			return consumeMessage(data, m.SdkVersionTargeting)
		case 6:
			m.TextureCompressionFormatTargeting = new(TextureCompressionFormatTargeting)
			return consumeMessage(data, m.TextureCompressionFormatTargeting)
		case 7:
			m.MultiAbiTargeting = new(MultiAbiTargeting)
			return consumeMessage(data, m.MultiAbiTargeting)
		case 8:
			m.SanitizerTargeting = new(SanitizerTargeting)
			return consumeMessage(data, m.SanitizerTargeting)
		case 9:
			m.DeviceTierTargeting = new(DeviceTierTargeting)
			return consumeMessage(data, m.DeviceTierTargeting)
		case 10:
			m.CountrySetTargeting = new(CountrySetTargeting)
			return consumeMessage(data, m.CountrySetTargeting)
		}
		return 0, nil
	})
}

// VariantTargeting describes the dimensions that select a whole variant
// (as opposed to a single split within it).
type VariantTargeting struct {
	SdkVersionTargeting               *SdkVersionTargeting
	AbiTargeting                      *AbiTargeting
	ScreenDensityTargeting            *ScreenDensityTargeting
	MultiAbiTargeting                 *MultiAbiTargeting
	TextureCompressionFormatTargeting *TextureCompressionFormatTargeting
}

func (m *VariantTargeting) GetSdkVersionTargeting() *SdkVersionTargeting {
	if m == nil {
		return nil
	}
	return m.SdkVersionTargeting
}

func (m *VariantTargeting) GetAbiTargeting() *AbiTargeting {
	if m == nil {
		return nil
	}
	return m.AbiTargeting
}

func (m *VariantTargeting) GetScreenDensityTargeting() *ScreenDensityTargeting {
	if m == nil {
		return nil
	}
	return m.ScreenDensityTargeting
}

func (m *VariantTargeting) GetMultiAbiTargeting() *MultiAbiTargeting {
	if m == nil {
		return nil
	}
	return m.MultiAbiTargeting
}

func (m *VariantTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.SdkVersionTargeting)
	b = appendMessage(b, 2, m.AbiTargeting)
	b = appendMessage(b, 3, m.ScreenDensityTargeting)
	b = appendMessage(b, 4, m.MultiAbiTargeting)
	b = appendMessage(b, 5, m.TextureCompressionFormatTargeting)
	return b
}

func (m *VariantTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.SdkVersionTargeting = new(SdkVersionTargeting)
			return consumeMessage(data, m.SdkVersionTargeting)
		case 2:
			m.AbiTargeting = new(AbiTargeting)
			return consumeMessage(data, m.AbiTargeting)
		case 3:
			m.ScreenDensityTargeting = new(ScreenDensityTargeting)
			return consumeMessage(data, m.ScreenDensityTargeting)
		case 4:
			m.MultiAbiTargeting = new(MultiAbiTargeting)
			return consumeMessage(data, m.MultiAbiTargeting)
		case 5:
			m.TextureCompressionFormatTargeting = new(TextureCompressionFormatTargeting)
			return consumeMessage(data, m.TextureCompressionFormatTargeting)
		}
		return 0, nil
	})
}

type UserCountriesTargeting struct {
	CountryCodes []string
	Exclude      bool
}

func (m *UserCountriesTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendStrings(b, 1, m.CountryCodes)
	b = appendBool(b, 2, m.Exclude)
	return b
}

func (m *UserCountriesTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeStrings(data, &m.CountryCodes)
		case num == 2 && typ == protowire.VarintType:
			return consumeBool(data, &m.Exclude)
		}
		return 0, nil
	})
}

// ModuleTargeting describes conditional-delivery constraints of a module.
type ModuleTargeting struct {
	SdkVersionTargeting    *SdkVersionTargeting
	UserCountriesTargeting *UserCountriesTargeting
}

func (m *ModuleTargeting) GetSdkVersionTargeting() *SdkVersionTargeting {
	if m == nil {
		return nil
	}
	return m.SdkVersionTargeting
}

func (m *ModuleTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.SdkVersionTargeting)
	b = appendMessage(b, 3, m.UserCountriesTargeting)
	return b
}

func (m *ModuleTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.SdkVersionTargeting = new(SdkVersionTargeting)
			return consumeMessage(data, m.SdkVersionTargeting)
		case 3:
			m.UserCountriesTargeting = new(UserCountriesTargeting)
			return consumeMessage(data, m.UserCountriesTargeting)
		}
		return 0, nil
	})
}

// AssetsDirectoryTargeting describes the dimensions parsed from one targeted
// assets directory name.
type AssetsDirectoryTargeting struct {
	Abi                      *AbiTargeting
	GraphicsApi              *GraphicsApi
	TextureCompressionFormat *TextureCompressionFormatTargeting
	Language                 *LanguageTargeting
	DeviceTier               *DeviceTierTargeting
	CountrySet               *CountrySetTargeting
}

func (m *AssetsDirectoryTargeting) GetLanguage() *LanguageTargeting {
	if m == nil {
		return nil
	}
	return m.Language
}

func (m *AssetsDirectoryTargeting) GetTextureCompressionFormat() *TextureCompressionFormatTargeting {
	if m == nil {
		return nil
	}
	return m.TextureCompressionFormat
}

func (m *AssetsDirectoryTargeting) GetDeviceTier() *DeviceTierTargeting {
	if m == nil {
		return nil
	}
	return m.DeviceTier
}

func (m *AssetsDirectoryTargeting) GetCountrySet() *CountrySetTargeting {
	if m == nil {
		return nil
	}
	return m.CountrySet
}

func (m *AssetsDirectoryTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.Abi)
	b = appendMessage(b, 2, m.GraphicsApi)
	b = appendMessage(b, 3, m.TextureCompressionFormat)
	b = appendMessage(b, 4, m.Language)
	b = appendMessage(b, 5, m.DeviceTier)
	b = appendMessage(b, 6, m.CountrySet)
	return b
}

func (m *AssetsDirectoryTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.Abi = new(AbiTargeting)
			return consumeMessage(data, m.Abi)
		case 2:
			m.GraphicsApi = new(GraphicsApi)
			return consumeMessage(data, m.GraphicsApi)
		case 3:
			m.TextureCompressionFormat = new(TextureCompressionFormatTargeting)
			return consumeMessage(data, m.TextureCompressionFormat)
		case 4:
			m.Language = new(LanguageTargeting)
			return consumeMessage(data, m.Language)
		case 5:
			m.DeviceTier = new(DeviceTierTargeting)
			return consumeMessage(data, m.DeviceTier)
		case 6:
			m.CountrySet = new(CountrySetTargeting)
			return consumeMessage(data, m.CountrySet)
		}
		return 0, nil
	})
}

type TargetedAssetsDirectory struct {
	Path      string
	Targeting *AssetsDirectoryTargeting
}

func (m *TargetedAssetsDirectory) GetTargeting() *AssetsDirectoryTargeting {
	if m == nil {
		return nil
	}
	return m.Targeting
}

func (m *TargetedAssetsDirectory) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.Path)
	b = appendMessage(b, 2, m.Targeting)
	return b
}

func (m *TargetedAssetsDirectory) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			return consumeString(data, &m.Path)
		case 2:
			m.Targeting = new(AssetsDirectoryTargeting)
			return consumeMessage(data, m.Targeting)
		}
		return 0, nil
	})
}

// Assets is the assets.pb message of a module.
type Assets struct {
	Directory []*TargetedAssetsDirectory
}

func (m *Assets) GetDirectory() []*TargetedAssetsDirectory {
	if m == nil {
		return nil
	}
	return m.Directory
}

func (m *Assets) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, d := range m.Directory {
		b = appendMessage(b, 1, d)
	}
	return b
}

func (m *Assets) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			d := new(TargetedAssetsDirectory)
			n, err := consumeMessage(data, d)
			if err == nil {
				m.Directory = append(m.Directory, d)
			}
			return n, err
		}
		return 0, nil
	})
}

type NativeDirectoryTargeting struct {
	Abi       *Abi
	Sanitizer *Sanitizer
}

func (m *NativeDirectoryTargeting) GetAbi() *Abi {
	if m == nil {
		return nil
	}
	return m.Abi
}

func (m *NativeDirectoryTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.Abi)
	b = appendMessage(b, 4, m.Sanitizer)
	return b
}

func (m *NativeDirectoryTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			m.Abi = new(Abi)
			return consumeMessage(data, m.Abi)
		case 4:
			m.Sanitizer = new(Sanitizer)
			return consumeMessage(data, m.Sanitizer)
		}
		return 0, nil
	})
}

type TargetedNativeDirectory struct {
	Path      string
	Targeting *NativeDirectoryTargeting
}

func (m *TargetedNativeDirectory) GetTargeting() *NativeDirectoryTargeting {
	if m == nil {
		return nil
	}
	return m.Targeting
}

func (m *TargetedNativeDirectory) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.Path)
	b = appendMessage(b, 2, m.Targeting)
	return b
}

func (m *TargetedNativeDirectory) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			return consumeString(data, &m.Path)
		case 2:
			m.Targeting = new(NativeDirectoryTargeting)
			return consumeMessage(data, m.Targeting)
		}
		return 0, nil
	})
}

// NativeLibraries is the native.pb message of a module.
type NativeLibraries struct {
	Directory []*TargetedNativeDirectory
}

func (m *NativeLibraries) GetDirectory() []*TargetedNativeDirectory {
	if m == nil {
		return nil
	}
	return m.Directory
}

func (m *NativeLibraries) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, d := range m.Directory {
		b = appendMessage(b, 1, d)
	}
	return b
}

func (m *NativeLibraries) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			d := new(TargetedNativeDirectory)
			n, err := consumeMessage(data, d)
			if err == nil {
				m.Directory = append(m.Directory, d)
			}
			return n, err
		}
		return 0, nil
	})
}

type ApexImageTargeting struct {
	MultiAbi *MultiAbiTargeting
}

func (m *ApexImageTargeting) GetMultiAbi() *MultiAbiTargeting {
	if m == nil {
		return nil
	}
	return m.MultiAbi
}

func (m *ApexImageTargeting) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendMessage(b, 1, m.MultiAbi)
	return b
}

func (m *ApexImageTargeting) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			m.MultiAbi = new(MultiAbiTargeting)
			return consumeMessage(data, m.MultiAbi)
		}
		return 0, nil
	})
}

type TargetedApexImage struct {
	Path      string
	Targeting *ApexImageTargeting
}

func (m *TargetedApexImage) GetTargeting() *ApexImageTargeting {
	if m == nil {
		return nil
	}
	return m.Targeting
}

func (m *TargetedApexImage) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	b = appendString(b, 1, m.Path)
	b = appendMessage(b, 2, m.Targeting)
	return b
}

func (m *TargetedApexImage) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			return consumeString(data, &m.Path)
		case 2:
			m.Targeting = new(ApexImageTargeting)
			return consumeMessage(data, m.Targeting)
		}
		return 0, nil
	})
}

// ApexImages is the apex.pb message of an APEX module.
type ApexImages struct {
	Image []*TargetedApexImage
}

func (m *ApexImages) GetImage() []*TargetedApexImage {
	if m == nil {
		return nil
	}
	return m.Image
}

func (m *ApexImages) Marshal() []byte {
	if m == nil {
		return nil
	}
	b := []byte{}
	for _, i := range m.Image {
		b = appendMessage(b, 1, i)
	}
	return b
}

func (m *ApexImages) Unmarshal(data []byte) error {
	return unmarshalFields(data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			i := new(TargetedApexImage)
			n, err := consumeMessage(data, i)
			if err == nil {
				m.Image = append(m.Image, i)
			}
			return n, err
		}
		return 0, nil
	})
}
