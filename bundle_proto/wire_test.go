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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestApkTargetingRoundTrip(t *testing.T) {
	in := &ApkTargeting{
		AbiTargeting: &AbiTargeting{
			Value:        []*Abi{{Alias: Abi_ARM64_V8A}},
			Alternatives: []*Abi{{Alias: Abi_X86}, {Alias: Abi_X86_64}},
		},
		LanguageTargeting: &LanguageTargeting{
			Value:        []string{"fr"},
			Alternatives: []string{"en", "ru"},
		},
		ScreenDensityTargeting: &ScreenDensityTargeting{
			Value: []*ScreenDensity{{DensityAlias: ScreenDensity_XHDPI}},
		},
		SdkVersionTargeting: &SdkVersionTargeting{
			Value: []*SdkVersion{{Min: &Int32Value{Value: 21}}},
		},
		TextureCompressionFormatTargeting: &TextureCompressionFormatTargeting{
			Value: []*TextureCompressionFormat{{Alias: TextureCompressionFormat_ASTC}},
		},
		DeviceTierTargeting: &DeviceTierTargeting{Value: []string{"high"}},
		CountrySetTargeting: &CountrySetTargeting{Value: []string{"latam"}},
	}

	out := new(ApkTargeting)
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBundleConfigRoundTrip(t *testing.T) {
	in := &BundleConfig{
		Bundletool: &Bundletool{Version: "1.13.2"},
		Optimizations: &Optimizations{
			SplitsConfig: &SplitsConfig{
				SplitDimension: []*SplitDimension{
					{Value: SplitDimension_ABI},
					{Value: SplitDimension_LANGUAGE, Negate: true},
					{
						Value: SplitDimension_TEXTURE_COMPRESSION_FORMAT,
						SuffixStripping: &SuffixStripping{
							Enabled:       true,
							DefaultSuffix: "etc2",
						},
					},
				},
			},
			UncompressNativeLibraries: &UncompressNativeLibraries{Enabled: true},
			StandaloneConfig:          &StandaloneConfig{Strip64BitLibraries: true},
		},
		Compression: &Compression{
			UncompressedGlob:                         []string{"assets/raw/**"},
			InstallTimeAssetModuleDefaultCompression: Compression_UNCOMPRESSED,
		},
		UnsignedEmbeddedApkConfig: []*UnsignedEmbeddedApkConfig{{Path: "assets/wear/watch.apk"}},
		Type:                      BundleConfig_REGULAR,
	}

	out := new(BundleConfig)
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildApksResultRoundTrip(t *testing.T) {
	in := &BuildApksResult{
		Bundletool: &Bundletool{Version: "1.13.2"},
		Variant: []*Variant{
			{
				Targeting: &VariantTargeting{
					SdkVersionTargeting: &SdkVersionTargeting{
						Value: []*SdkVersion{{Min: &Int32Value{Value: 21}}},
					},
				},
				ApkSet: []*ApkSet{
					{
						ModuleMetadata: &ModuleMetadata{
							Name:         "base",
							DeliveryType: DeliveryType_INSTALL_TIME,
						},
						ApkDescription: []*ApkDescription{
							{
								Path: "splits/base-master.apk",
								SplitApkMetadata: &SplitApkMetadata{
									IsMasterSplit: true,
								},
							},
							{
								Path: "splits/base-arm64_v8a.apk",
								Targeting: &ApkTargeting{
									AbiTargeting: &AbiTargeting{
										Value: []*Abi{{Alias: Abi_ARM64_V8A}},
									},
								},
								SplitApkMetadata: &SplitApkMetadata{
									SplitId: "config.arm64_v8a",
								},
							},
						},
					},
				},
				VariantNumber: 1,
			},
		},
	}

	out := new(BuildApksResult)
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestXmlNodeRoundTrip(t *testing.T) {
	in := &XmlNode{
		Element: &XmlElement{
			Name: "manifest",
			Attribute: []*XmlAttribute{
				{Name: "package", Value: "com.example.app"},
				{
					NamespaceUri: "http://schemas.android.com/apk/res/android",
					Name:         "versionCode",
					Value:        "42",
					ResourceId:   0x0101021b,
				},
			},
			Child: []*XmlNode{
				{Element: &XmlElement{Name: "application"}},
				{Text: "\n"},
			},
		},
	}

	out := new(XmlNode)
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestResourceTableRoundTrip(t *testing.T) {
	in := &ResourceTable{
		Package: []*Package{
			{
				PackageId:   &PackageId{Id: 0x7F},
				PackageName: "com.example.app",
				Type: []*Type{
					{
						TypeId: &TypeId{Id: 0x02},
						Name:   "drawable",
						Entry: []*Entry{
							{
								EntryId: &EntryId{Id: 0x0001},
								Name:    "icon",
								ConfigValue: []*ConfigValue{
									{
										Config: &Configuration{Density: 480},
										Value: &Value{Item: &Item{
											File: &FileReference{Path: "res/drawable-xxhdpi/icon.png"},
										}},
									},
									{
										Config: &Configuration{Locale: "fr"},
										Value:  &Value{Item: &Item{Str: "icône"}},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	out := new(ResourceTable)
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// Decoding must skip unknown fields rather than fail, so newer configs stay
// readable.
func TestUnknownFieldsSkipped(t *testing.T) {
	b := (&Bundletool{Version: "1.8.0"}).Marshal()
	b = protowire.AppendTag(b, 1000, protowire.BytesType)
	b = protowire.AppendString(b, "future")
	b = protowire.AppendTag(b, 1001, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)

	out := new(Bundletool)
	if err := out.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if out.Version != "1.8.0" {
		t.Errorf("got version %q, want %q", out.Version, "1.8.0")
	}
}

func TestRemapPackageId(t *testing.T) {
	testCases := []struct {
		name      string
		id        uint32
		packageId uint32
		want      uint32
	}{
		{"app reference", 0x7F021234, 0x80, 0x80021234},
		{"framework reference unchanged", 0x01051234, 0x80, 0x01051234},
		{"zero package", 0x00021234, 0x7F, 0x7F021234},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RemapPackageId(tc.id, tc.packageId); got != tc.want {
				t.Errorf("RemapPackageId(%#x, %#x) = %#x, want %#x", tc.id, tc.packageId, got, tc.want)
			}
		})
	}
}
