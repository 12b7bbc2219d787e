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
	"strings"

	"android/bundletool/bundle"
	"android/bundletool/optimizations"
	"android/bundletool/targeting"
)

// splitTargetsDimension reports whether the split carries values in the
// given suffixed dimension.
func splitTargetsDimension(s *ModuleSplit, dim targeting.Dimension) bool {
	t := s.ApkTargeting
	switch dim {
	case targeting.Language:
		return len(t.GetLanguageTargeting().GetValue()) > 0
	case targeting.TextureCompressionFormat:
		return len(t.GetTextureCompressionFormatTargeting().GetValue()) > 0
	case targeting.DeviceTier:
		return len(t.GetDeviceTierTargeting().GetValue()) > 0
	case targeting.CountrySet:
		return len(t.GetCountrySetTargeting().GetValue()) > 0
	}
	return false
}

// ApplySuffixStripping rewrites asset paths of every split to drop the
// "#key_value" suffix of the dimensions configured for stripping. Only the
// suffix of the split's own dimension value is removed; the targeting
// stays.
func ApplySuffixStripping(splits []*ModuleSplit, strippings map[targeting.Dimension]optimizations.SuffixStripping) []*ModuleSplit {
	out := make([]*ModuleSplit, 0, len(splits))
	for _, s := range splits {
		stripped := s
		for dim, ss := range strippings {
			if !ss.Enabled || !splitTargetsDimension(stripped, dim) {
				continue
			}
			entries := make([]bundle.Entry, len(stripped.Entries))
			for i, e := range stripped.Entries {
				e.Path = targeting.StripSuffix(e.Path, dim)
				entries[i] = e
			}
			stripped = stripped.WithEntries(entries)
		}
		out = append(out, stripped)
	}
	return out
}

// FilterToDefaultSuffix reduces entries to the default variant of a
// suffixed dimension, with the suffix stripped: non-default variant
// directories are dropped and the default's directory collapses to its
// canonical path. Used when fusing splits into standalone or universal
// APKs, which carry exactly one variant.
func FilterToDefaultSuffix(entries []bundle.Entry, dim targeting.Dimension, defaultSuffix string) ([]bundle.Entry, error) {
	var out []bundle.Entry
	for _, e := range entries {
		if !strings.HasPrefix(e.Path, bundle.AssetsDirectory+"/") {
			out = append(out, e)
			continue
		}
		parsed, err := targeting.ParseDirectory(path.Dir(e.Path))
		if err != nil {
			return nil, err
		}
		value := assetDimensionValue(parsed.Targeting, dim)
		switch value {
		case "":
			out = append(out, e)
		case defaultSuffix:
			e.Path = targeting.StripSuffix(e.Path, dim)
			out = append(out, e)
		}
	}
	return out, nil
}
