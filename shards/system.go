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

package shards

import (
	"sort"
	"strings"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/device"
	"android/bundletool/splitter"
	"android/bundletool/targeting"
)

// SystemResult is the output of system APK generation: the fused system
// APK plus the additional splits installed next to it.
type SystemResult struct {
	SystemApk        *splitter.ModuleSplit
	AdditionalSplits []*splitter.ModuleSplit
	FusedModules     []string
}

// GenerateSystemApks builds the system-image APK for one target device.
// Modules in fusedModules collapse into the single system APK; the others
// stay as splits. Language splits of fused modules only fuse when the
// device supports the language; the rest are regrouped into one additional
// split per language across modules.
func GenerateSystemApks(b *bundle.Bundle, spec *device.Spec, fusedModules map[string]bool, opts Options) (*SystemResult, error) {
	if spec == nil {
		return nil, bundle.Errorf(bundle.InvalidCommand, "system mode requires a device spec")
	}

	splitOpts := splitter.Options{
		Optimizations:   opts.Optimizations,
		DeviceSpecKnown: true,
		Logger:          opts.Logger,
	}

	cell, err := deviceCell(b, spec)
	if err != nil {
		return nil, err
	}

	var toFuse []*splitter.ModuleSplit
	languageRegroup := newLanguageRegrouper()
	var additional []*splitter.ModuleSplit
	suffixes := NewSuffixManager()

	var fusedNames []string
	for _, m := range installTimeModules(b) {
		splits, err := splitter.SplitModule(m, splitOpts)
		if err != nil {
			return nil, err
		}
		if !fusedModules[m.Name] && !m.IsBase() {
			// Non-fused modules stay as splits next to the system APK.
			for _, s := range splits {
				if !splitMatchesDevice(s, cell, spec) {
					continue
				}
				s.Type = splitter.SystemApk
				additional = append(additional, s)
			}
			continue
		}
		fusedNames = append(fusedNames, m.Name)
		for _, s := range splits {
			langs := s.ApkTargeting.GetLanguageTargeting().GetValue()
			if len(langs) > 0 {
				if spec.SupportsLanguage(langs[0]) {
					toFuse = append(toFuse, s)
				} else {
					if err := languageRegroup.add(langs[0], s); err != nil {
						return nil, err
					}
				}
				continue
			}
			if splitMatchesDevice(s, cell, spec) {
				toFuse = append(toFuse, s)
			}
		}
	}
	sort.Strings(fusedNames)

	fused, err := FuseSplits(b, toFuse, opts.Logger)
	if err != nil {
		return nil, err
	}
	fused.Type = splitter.SystemApk
	fused.MasterSplit = true
	fused.VariantTargeting = &bp.VariantTargeting{
		SdkVersionTargeting: targeting.SdkVersionTargetingFor(1),
		AbiTargeting:        &bp.AbiTargeting{Value: []*bp.Abi{{Alias: cell.abi}}},
		ScreenDensityTargeting: &bp.ScreenDensityTargeting{
			Value: []*bp.ScreenDensity{{DensityAlias: cell.density}},
		},
	}
	fused = fused.RemoveSplitName()

	if opts.Optimizations.UncompressNativeLibraries {
		fused = uncompressSystemNativeLibs(fused)
	}
	if opts.Optimizations.UncompressDexFiles {
		fused = uncompressSystemDex(fused)
	}

	languageSplits, err := languageRegroup.splits(b, opts)
	if err != nil {
		return nil, err
	}
	additional = append(additional, languageSplits...)

	// Additional splits get deterministic split ids stamped into their
	// manifests.
	for i, s := range additional {
		additional[i] = suffixes.StampSplitId(s)
	}

	return &SystemResult{
		SystemApk:        fused,
		AdditionalSplits: additional,
		FusedModules:     fusedNames,
	}, nil
}

// deviceCell resolves the single ABI x density cell the device occupies.
func deviceCell(b *bundle.Bundle, spec *device.Spec) (shardCell, error) {
	cell := shardCell{density: targeting.BucketForDpi(uint32(spec.ScreenDensity))}
	bundleAbis := map[bp.Abi_AbiAlias]bool{}
	for _, m := range b.Modules {
		for _, abi := range moduleAbis(m) {
			bundleAbis[abi] = true
		}
	}
	if len(bundleAbis) == 0 {
		return cell, nil
	}
	// The device's ABI order is a preference list; pick the first one the
	// bundle serves.
	for _, name := range spec.SupportedAbis {
		abi, ok := targeting.AbiFromDirName(name)
		if !ok {
			return cell, bundle.Errorf(bundle.InvalidDeviceSpec, "unknown ABI %q in device spec", name)
		}
		if bundleAbis[abi] {
			cell.abi = abi
			cell.hasAbi = true
			return cell, nil
		}
	}
	return cell, bundle.Errorf(bundle.InvalidDeviceSpec,
		"device ABIs %v match none of the bundle's native libraries", spec.SupportedAbis)
}

func splitMatchesDevice(s *splitter.ModuleSplit, cell shardCell, spec *device.Spec) bool {
	if !splitMatchesCell(s, cell) {
		return false
	}
	if langs := s.ApkTargeting.GetLanguageTargeting().GetValue(); len(langs) > 0 {
		return spec.SupportsLanguage(langs[0])
	}
	return true
}

// languageRegrouper collects non-matching language splits of fused modules
// and regroups them into one split per language across modules. A module
// may contribute at most one split per language; a second, different
// contribution is an error, while identical duplicates keep the first.
type languageRegrouper struct {
	order  []string
	groups map[string][]*splitter.ModuleSplit
	seen   map[string]*splitter.ModuleSplit
}

func newLanguageRegrouper() *languageRegrouper {
	return &languageRegrouper{
		groups: map[string][]*splitter.ModuleSplit{},
		seen:   map[string]*splitter.ModuleSplit{},
	}
}

func (lr *languageRegrouper) add(lang string, s *splitter.ModuleSplit) error {
	key := s.ModuleName + ":" + lang
	if existing, ok := lr.seen[key]; ok {
		if targeting.Equal(existing.ApkTargeting, s.ApkTargeting) &&
			len(existing.Entries) == len(s.Entries) {
			// First assignment wins.
			return nil
		}
		return bundle.ModuleErrorf(bundle.InvalidBundle, s.ModuleName,
			"conflicting language split for language %q", lang)
	}
	lr.seen[key] = s
	if _, ok := lr.groups[lang]; !ok {
		lr.order = append(lr.order, lang)
	}
	lr.groups[lang] = append(lr.groups[lang], s)
	return nil
}

func (lr *languageRegrouper) splits(b *bundle.Bundle, opts Options) ([]*splitter.ModuleSplit, error) {
	sort.Strings(lr.order)
	var out []*splitter.ModuleSplit
	for _, lang := range lr.order {
		fused, err := FuseSplits(b, lr.groups[lang], opts.Logger)
		if err != nil {
			return nil, err
		}
		fused.Type = splitter.SystemApk
		fused.MasterSplit = false
		fused.ApkTargeting = &bp.ApkTargeting{
			LanguageTargeting: &bp.LanguageTargeting{Value: []string{lang}},
		}
		out = append(out, fused)
	}
	return out, nil
}

func uncompressSystemNativeLibs(s *splitter.ModuleSplit) *splitter.ModuleSplit {
	entries := make([]bundle.Entry, len(s.Entries))
	for i, e := range s.Entries {
		if strings.HasPrefix(e.Path, bundle.LibDirectory+"/") && strings.HasSuffix(e.Path, ".so") {
			e.ForceUncompressed = true
		}
		entries[i] = e
	}
	return s.WithEntries(entries).SetExtractNativeLibs(false)
}

func uncompressSystemDex(s *splitter.ModuleSplit) *splitter.ModuleSplit {
	entries := make([]bundle.Entry, len(s.Entries))
	for i, e := range s.Entries {
		if strings.HasPrefix(e.Path, bundle.DexDirectory+"/") {
			e.ForceUncompressed = true
		}
		entries[i] = e
	}
	return s.WithEntries(entries)
}
