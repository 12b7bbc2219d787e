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

package targeting

import (
	"reflect"
	"testing"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
)

func abiVariant(alias bp.Abi_AbiAlias, sdk int32) *bp.VariantTargeting {
	return &bp.VariantTargeting{
		SdkVersionTargeting: SdkVersionTargetingFor(sdk),
		AbiTargeting:        &bp.AbiTargeting{Value: []*bp.Abi{{Alias: alias}}},
	}
}

func TestSortVariants(t *testing.T) {
	variants := []*bp.VariantTargeting{
		abiVariant(bp.Abi_X86_64, 21),
		{SdkVersionTargeting: SdkVersionTargetingFor(21)},
		abiVariant(bp.Abi_ARM64_V8A, 29),
		abiVariant(bp.Abi_ARMEABI_V7A, 21),
		abiVariant(bp.Abi_ARM64_V8A, 21),
	}
	SortVariants(variants)

	got := make([][2]int32, len(variants))
	for i, v := range variants {
		got[i] = [2]int32{SdkRank(v.SdkVersionTargeting), int32(abiRank(v.AbiTargeting))}
	}
	want := [][2]int32{
		{21, 0}, // no ABI orders below any ABI
		{21, int32(AbiPriority(bp.Abi_ARMEABI_V7A))},
		{21, int32(AbiPriority(bp.Abi_ARM64_V8A))},
		{21, int32(AbiPriority(bp.Abi_X86_64))},
		{29, int32(AbiPriority(bp.Abi_ARM64_V8A))},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortVariants() order = %v, want %v", got, want)
	}
}

func TestCompareVariantsDensity(t *testing.T) {
	low := &bp.VariantTargeting{
		ScreenDensityTargeting: &bp.ScreenDensityTargeting{
			Value: []*bp.ScreenDensity{{DensityAlias: bp.ScreenDensity_MDPI}},
		},
	}
	high := &bp.VariantTargeting{
		ScreenDensityTargeting: &bp.ScreenDensityTargeting{
			Value: []*bp.ScreenDensity{{DensityAlias: bp.ScreenDensity_XXHDPI}},
		},
	}
	none := &bp.VariantTargeting{}
	if CompareVariants(low, high) >= 0 {
		t.Errorf("MDPI does not order before XXHDPI")
	}
	if CompareVariants(none, low) >= 0 {
		t.Errorf("missing density does not order before MDPI")
	}
}

// Alternatives completeness: for every populated variant and dimension,
// values plus alternatives equal the universe of values.
func TestPopulateAlternativeVariantTargeting(t *testing.T) {
	variants := []*bp.VariantTargeting{
		abiVariant(bp.Abi_ARM64_V8A, 21),
		abiVariant(bp.Abi_X86, 21),
		abiVariant(bp.Abi_ARMEABI_V7A, 21),
	}
	if err := PopulateAlternativeVariantTargeting(variants); err != nil {
		t.Fatalf("PopulateAlternativeVariantTargeting() failed: %v", err)
	}

	for _, v := range variants {
		all := map[bp.Abi_AbiAlias]bool{}
		for _, abi := range v.AbiTargeting.Value {
			all[abi.Alias] = true
		}
		for _, abi := range v.AbiTargeting.Alternatives {
			if all[abi.Alias] {
				t.Errorf("alternative %v duplicates a value", abi.Alias)
			}
			all[abi.Alias] = true
		}
		if len(all) != 3 {
			t.Errorf("values + alternatives cover %d ABIs, want 3", len(all))
		}
	}
	// SDK alternatives: all variants share min 21, so none.
	for _, v := range variants {
		if len(v.SdkVersionTargeting.Alternatives) != 0 {
			t.Errorf("unexpected SDK alternatives %v", v.SdkVersionTargeting.Alternatives)
		}
	}
}

func TestPopulateAlternativesMixedTargetingFails(t *testing.T) {
	variants := []*bp.VariantTargeting{
		abiVariant(bp.Abi_ARM64_V8A, 21),
		{SdkVersionTargeting: SdkVersionTargetingFor(21)},
	}
	if err := PopulateAlternativeVariantTargeting(variants); err == nil {
		t.Errorf("mixed ABI targeting succeeded, want error")
	}
}

func TestParseDirectory(t *testing.T) {
	testCases := []struct {
		name string
		path string
		want func(*bp.AssetsDirectoryTargeting) bool
	}{
		{
			"language",
			"assets/strings#lang_fr",
			func(t *bp.AssetsDirectoryTargeting) bool {
				return reflect.DeepEqual(t.GetLanguage().GetValue(), []string{"fr"})
			},
		},
		{
			"texture format",
			"assets/textures#tcf_astc",
			func(t *bp.AssetsDirectoryTargeting) bool {
				v := t.GetTextureCompressionFormat().GetValue()
				return len(v) == 1 && v[0].Alias == bp.TextureCompressionFormat_ASTC
			},
		},
		{
			"device tier",
			"assets/models#tier_high",
			func(t *bp.AssetsDirectoryTargeting) bool {
				return reflect.DeepEqual(t.GetDeviceTier().GetValue(), []string{"high"})
			},
		},
		{
			"nested dimensions",
			"assets/img#tcf_etc2/hires#tier_high",
			func(t *bp.AssetsDirectoryTargeting) bool {
				return t.GetTextureCompressionFormat() != nil && t.GetDeviceTier() != nil
			},
		},
		{
			"opengl version",
			"assets/gfx#opengl_3.1",
			func(t *bp.AssetsDirectoryTargeting) bool {
				gl := t.GraphicsApi.MinOpenGlVersion
				return gl != nil && gl.Major == 3 && gl.Minor == 1
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseDirectory(tc.path)
			if err != nil {
				t.Fatalf("ParseDirectory(%q) failed: %v", tc.path, err)
			}
			if !tc.want(parsed.Targeting) {
				t.Errorf("ParseDirectory(%q) targeting = %+v", tc.path, parsed.Targeting)
			}
		})
	}
}

func TestParseDirectoryErrors(t *testing.T) {
	for _, path := range []string{
		"assets/a#color_red",  // unknown key
		"assets/a#tcf_webp",   // unknown format
		"assets/a#tcf_latc",   // in the wire enum but not a valid suffix
		"assets/a#lang_latin", // too long
		"assets/a#tier_9low",  // must start with a letter
		"assets/a#opengl_three", // not MAJOR.MINOR
	} {
		_, err := ParseDirectory(path)
		if ue := bundle.AsUserError(err); ue == nil || ue.Kind != bundle.InvalidTargetingKey {
			t.Errorf("ParseDirectory(%q) = %v, want INVALID_TARGETING_KEY", path, err)
		}
	}
}

func TestStripSuffix(t *testing.T) {
	testCases := []struct {
		path string
		dim  Dimension
		want string
	}{
		{"assets/textures#tcf_astc/a.bin", TextureCompressionFormat, "assets/textures/a.bin"},
		{"assets/textures#tcf_astc", DeviceTier, "assets/textures#tcf_astc"},
		{"assets/x#tier_low/y#tier_low", DeviceTier, "assets/x/y"},
		{"assets/i18n#lang_fr", Language, "assets/i18n"},
		{"assets/world#countries_latam", CountrySet, "assets/world"},
	}
	for _, tc := range testCases {
		if got := StripSuffix(tc.path, tc.dim); got != tc.want {
			t.Errorf("StripSuffix(%q, %v) = %q, want %q", tc.path, tc.dim, got, tc.want)
		}
	}
}

func TestBucketForDpi(t *testing.T) {
	testCases := []struct {
		dpi  uint32
		want bp.ScreenDensity_DensityAlias
	}{
		{120, bp.ScreenDensity_LDPI},
		{160, bp.ScreenDensity_MDPI},
		{213, bp.ScreenDensity_TVDPI},
		{240, bp.ScreenDensity_HDPI},
		{320, bp.ScreenDensity_XHDPI},
		{480, bp.ScreenDensity_XXHDPI},
		{640, bp.ScreenDensity_XXXHDPI},
		{999, bp.ScreenDensity_XXXHDPI},
	}
	for _, tc := range testCases {
		if got := BucketForDpi(tc.dpi); got != tc.want {
			t.Errorf("BucketForDpi(%d) = %v, want %v", tc.dpi, got, tc.want)
		}
	}
}

func TestMergeApkTargeting(t *testing.T) {
	a := &bp.ApkTargeting{
		AbiTargeting:        &bp.AbiTargeting{Value: []*bp.Abi{{Alias: bp.Abi_X86}}},
		SdkVersionTargeting: SdkVersionTargetingFor(21),
	}
	b := &bp.ApkTargeting{
		AbiTargeting:        &bp.AbiTargeting{Value: []*bp.Abi{{Alias: bp.Abi_ARM64_V8A}}},
		SdkVersionTargeting: SdkVersionTargetingFor(23),
		LanguageTargeting:   &bp.LanguageTargeting{Value: []string{"en"}},
	}
	merged := MergeApkTargeting(a, b)

	wantAbis := []*bp.Abi{{Alias: bp.Abi_ARM64_V8A}, {Alias: bp.Abi_X86}}
	if !reflect.DeepEqual(merged.AbiTargeting.Value, wantAbis) {
		t.Errorf("merged ABIs = %v, want %v", merged.AbiTargeting.Value, wantAbis)
	}
	if got := SdkRank(merged.SdkVersionTargeting); got != 23 {
		t.Errorf("merged SDK rank = %d, want 23", got)
	}
	if !reflect.DeepEqual(merged.LanguageTargeting.Value, []string{"en"}) {
		t.Errorf("merged languages = %v, want [en]", merged.LanguageTargeting.Value)
	}
}

func TestEqualAndKeys(t *testing.T) {
	a := &bp.ApkTargeting{SdkVersionTargeting: SdkVersionTargetingFor(21)}
	b := &bp.ApkTargeting{SdkVersionTargeting: SdkVersionTargetingFor(21)}
	c := &bp.ApkTargeting{SdkVersionTargeting: SdkVersionTargetingFor(22)}
	if !Equal(a, b) {
		t.Errorf("Equal(a, b) = false for identical targetings")
	}
	if Equal(a, c) {
		t.Errorf("Equal(a, c) = true for different targetings")
	}
	if ApkTargetingKey(a) != ApkTargetingKey(b) || ApkTargetingKey(a) == ApkTargetingKey(c) {
		t.Errorf("ApkTargetingKey does not discriminate targetings")
	}
}
