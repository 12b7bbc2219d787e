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
	"bytes"

	bp "android/bundletool/bundle_proto"
)

type wireMessage interface {
	Marshal() []byte
}

// Equal compares two messages by wire form. Both sides are produced by this
// codec, which emits fields deterministically, so byte equality is value
// equality.
func Equal(a, b wireMessage) bool {
	return bytes.Equal(a.Marshal(), b.Marshal())
}

// ApkTargetingKey is a comparable key of an ApkTargeting, usable as a map
// key when grouping splits.
func ApkTargetingKey(t *bp.ApkTargeting) string {
	if t == nil {
		return ""
	}
	return string(t.Marshal())
}

// VariantTargetingKey is a comparable key of a VariantTargeting.
func VariantTargetingKey(t *bp.VariantTargeting) string {
	if t == nil {
		return ""
	}
	return string(t.Marshal())
}

// MergeApkTargeting unions two APK targetings dimension-wise. Used when
// fusing splits whose combined APK covers both targetings.
func MergeApkTargeting(a, b *bp.ApkTargeting) *bp.ApkTargeting {
	if a == nil {
		a = &bp.ApkTargeting{}
	}
	if b == nil {
		b = &bp.ApkTargeting{}
	}
	out := &bp.ApkTargeting{}

	if a.AbiTargeting != nil || b.AbiTargeting != nil {
		out.AbiTargeting = &bp.AbiTargeting{
			Value:        mergeAbis(a.GetAbiTargeting().GetValue(), b.GetAbiTargeting().GetValue()),
			Alternatives: mergeAbis(a.GetAbiTargeting().GetAlternatives(), b.GetAbiTargeting().GetAlternatives()),
		}
	}
	if a.ScreenDensityTargeting != nil || b.ScreenDensityTargeting != nil {
		out.ScreenDensityTargeting = &bp.ScreenDensityTargeting{
			Value:        mergeDensities(a.GetScreenDensityTargeting().GetValue(), b.GetScreenDensityTargeting().GetValue()),
			Alternatives: mergeDensities(a.GetScreenDensityTargeting().GetAlternatives(), b.GetScreenDensityTargeting().GetAlternatives()),
		}
	}
	if a.LanguageTargeting != nil || b.LanguageTargeting != nil {
		out.LanguageTargeting = &bp.LanguageTargeting{
			Value:        mergeStrings(a.GetLanguageTargeting().GetValue(), b.GetLanguageTargeting().GetValue()),
			Alternatives: mergeStrings(a.GetLanguageTargeting().GetAlternatives(), b.GetLanguageTargeting().GetAlternatives()),
		}
	}
	if a.SdkVersionTargeting != nil || b.SdkVersionTargeting != nil {
		out.SdkVersionTargeting = mergeSdkTargeting(a.GetSdkVersionTargeting(), b.GetSdkVersionTargeting())
	}
	if a.TextureCompressionFormatTargeting != nil || b.TextureCompressionFormatTargeting != nil {
		out.TextureCompressionFormatTargeting = &bp.TextureCompressionFormatTargeting{
			Value: mergeTcfs(a.GetTextureCompressionFormatTargeting().GetValue(),
				b.GetTextureCompressionFormatTargeting().GetValue()),
			Alternatives: mergeTcfs(a.GetTextureCompressionFormatTargeting().GetAlternatives(),
				b.GetTextureCompressionFormatTargeting().GetAlternatives()),
		}
	}
	if a.MultiAbiTargeting != nil || b.MultiAbiTargeting != nil {
		out.MultiAbiTargeting = &bp.MultiAbiTargeting{
			Value:        append(append([]*bp.MultiAbi(nil), a.GetMultiAbiTargeting().GetValue()...), b.GetMultiAbiTargeting().GetValue()...),
			Alternatives: append(append([]*bp.MultiAbi(nil), a.GetMultiAbiTargeting().GetAlternatives()...), b.GetMultiAbiTargeting().GetAlternatives()...),
		}
	}
	if a.SanitizerTargeting != nil {
		out.SanitizerTargeting = a.SanitizerTargeting
	} else if b.SanitizerTargeting != nil {
		out.SanitizerTargeting = b.SanitizerTargeting
	}
	if a.DeviceTierTargeting != nil || b.DeviceTierTargeting != nil {
		out.DeviceTierTargeting = &bp.DeviceTierTargeting{
			Value:        mergeStrings(a.GetDeviceTierTargeting().GetValue(), b.GetDeviceTierTargeting().GetValue()),
			Alternatives: mergeStrings(a.GetDeviceTierTargeting().GetAlternatives(), b.GetDeviceTierTargeting().GetAlternatives()),
		}
	}
	if a.CountrySetTargeting != nil || b.CountrySetTargeting != nil {
		out.CountrySetTargeting = &bp.CountrySetTargeting{
			Value:        mergeStrings(a.GetCountrySetTargeting().GetValue(), b.GetCountrySetTargeting().GetValue()),
			Alternatives: mergeStrings(a.GetCountrySetTargeting().GetAlternatives(), b.GetCountrySetTargeting().GetAlternatives()),
		}
	}
	return out
}

func mergeStrings(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func mergeAbis(a, b []*bp.Abi) []*bp.Abi {
	seen := map[bp.Abi_AbiAlias]bool{}
	var aliases []bp.Abi_AbiAlias
	for _, abi := range append(append([]*bp.Abi(nil), a...), b...) {
		if !seen[abi.Alias] {
			seen[abi.Alias] = true
			aliases = append(aliases, abi.Alias)
		}
	}
	SortAbis(aliases)
	var out []*bp.Abi
	for _, alias := range aliases {
		out = append(out, &bp.Abi{Alias: alias})
	}
	return out
}

func mergeDensities(a, b []*bp.ScreenDensity) []*bp.ScreenDensity {
	seen := map[bp.ScreenDensity]bool{}
	var out []*bp.ScreenDensity
	for _, d := range append(append([]*bp.ScreenDensity(nil), a...), b...) {
		if !seen[*d] {
			seen[*d] = true
			out = append(out, d)
		}
	}
	return out
}

func mergeTcfs(a, b []*bp.TextureCompressionFormat) []*bp.TextureCompressionFormat {
	seen := map[bp.TextureCompressionFormat_TextureCompressionFormatAlias]bool{}
	var out []*bp.TextureCompressionFormat
	for _, t := range append(append([]*bp.TextureCompressionFormat(nil), a...), b...) {
		if !seen[t.Alias] {
			seen[t.Alias] = true
			out = append(out, t)
		}
	}
	return out
}

// mergeSdkTargeting keeps the higher minimum: a fused APK requires the most
// demanding of its parts.
func mergeSdkTargeting(a, b *bp.SdkVersionTargeting) *bp.SdkVersionTargeting {
	ra, rb := SdkRank(a), SdkRank(b)
	if ra >= rb {
		if a != nil {
			return a
		}
	}
	if b != nil {
		return b
	}
	return a
}

// SdkVersionTargetingFor builds the minimal SDK targeting of a split APK.
func SdkVersionTargetingFor(minSdk int32) *bp.SdkVersionTargeting {
	return &bp.SdkVersionTargeting{
		Value: []*bp.SdkVersion{{Min: &bp.Int32Value{Value: minSdk}}},
	}
}
