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

package splitter

import (
	"path"
	"sort"
	"strings"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/targeting"
)

// assetDimensionValue extracts the value an asset directory targets in one
// dimension, or "".
func assetDimensionValue(t *bp.AssetsDirectoryTargeting, dim targeting.Dimension) string {
	switch dim {
	case targeting.Language:
		if v := t.GetLanguage().GetValue(); len(v) > 0 {
			return v[0]
		}
	case targeting.TextureCompressionFormat:
		if v := t.GetTextureCompressionFormat().GetValue(); len(v) > 0 {
			return targeting.TcfName(v[0].Alias)
		}
	case targeting.DeviceTier:
		if v := t.GetDeviceTier().GetValue(); len(v) > 0 {
			return v[0]
		}
	case targeting.CountrySet:
		if v := t.GetCountrySet().GetValue(); len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func assetTargetingFor(dim targeting.Dimension, value string, alternatives []string) *bp.ApkTargeting {
	t := &bp.ApkTargeting{}
	switch dim {
	case targeting.Language:
		t.LanguageTargeting = &bp.LanguageTargeting{Value: []string{value}, Alternatives: alternatives}
	case targeting.TextureCompressionFormat:
		tcf, _ := targeting.TcfFromName(value)
		var alts []*bp.TextureCompressionFormat
		for _, a := range alternatives {
			alias, _ := targeting.TcfFromName(a)
			alts = append(alts, &bp.TextureCompressionFormat{Alias: alias})
		}
		t.TextureCompressionFormatTargeting = &bp.TextureCompressionFormatTargeting{
			Value:        []*bp.TextureCompressionFormat{{Alias: tcf}},
			Alternatives: alts,
		}
	case targeting.DeviceTier:
		t.DeviceTierTargeting = &bp.DeviceTierTargeting{Value: []string{value}, Alternatives: alternatives}
	case targeting.CountrySet:
		t.CountrySetTargeting = &bp.CountrySetTargeting{Value: []string{value}, Alternatives: alternatives}
	}
	return t
}

// AssetsSplitter splits targeted asset directories along one dimension.
// Directories without a suffix for the dimension stay behind.
type AssetsSplitter struct {
	Dim targeting.Dimension
}

func (a AssetsSplitter) Split(s *ModuleSplit) ([]*ModuleSplit, error) {
	// Group asset entries by the dimension value of their directory.
	byValue := map[string][]bundle.Entry{}
	var rest []bundle.Entry
	for _, e := range s.Entries {
		if !strings.HasPrefix(e.Path, bundle.AssetsDirectory+"/") {
			rest = append(rest, e)
			continue
		}
		parsed, err := targeting.ParseDirectory(path.Dir(e.Path))
		if err != nil {
			return nil, err
		}
		value := assetDimensionValue(parsed.Targeting, a.Dim)
		if value == "" {
			rest = append(rest, e)
			continue
		}
		byValue[value] = append(byValue[value], e)
	}
	if len(byValue) == 0 {
		return []*ModuleSplit{s}, nil
	}

	values := make([]string, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Strings(values)

	var out []*ModuleSplit
	for _, value := range values {
		var alternatives []string
		for _, other := range values {
			if other != value {
				alternatives = append(alternatives, other)
			}
		}
		split := s.WithEntries(byValue[value]).
			WithApkTargeting(assetTargetingFor(a.Dim, value, alternatives))
		split.ResourceTable = nil
		out = append(out, split)
	}
	return append(out, s.WithEntries(rest)), nil
}

// TextureFormatValues lists the texture formats targeted by a module's
// asset directories.
func TextureFormatValues(m *bundle.Module) (map[string]bool, error) {
	values := map[string]bool{}
	seen := map[string]bool{}
	for _, e := range m.Entries() {
		if !strings.HasPrefix(e.Path, bundle.AssetsDirectory+"/") {
			continue
		}
		dir := path.Dir(e.Path)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		parsed, err := targeting.ParseDirectory(dir)
		if err != nil {
			return nil, err
		}
		if v := assetDimensionValue(parsed.Targeting, targeting.TextureCompressionFormat); v != "" {
			values[v] = true
		}
	}
	return values, nil
}

// CheckTextureFormatParity verifies that every module using texture format
// targeting covers the same set of formats.
func CheckTextureFormatParity(modules []*bundle.Module) error {
	var reference map[string]bool
	var referenceModule string
	for _, m := range modules {
		values, err := TextureFormatValues(m)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			continue
		}
		if reference == nil {
			reference = values
			referenceModule = m.Name
			continue
		}
		if !sameStringSet(reference, values) {
			return bundle.ModuleErrorf(bundle.TextureCompressionParity, m.Name,
				"texture formats %v differ from module %q formats %v",
				sortedKeys(values), referenceModule, sortedKeys(reference))
		}
	}
	return nil
}

func sameStringSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]bool) []string {
	var out []string
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
