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
	"log"
	"strings"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/optimizations"
	"android/bundletool/targeting"
)

// AndroidL is the first platform release with split APK support; split
// variants target it as their floor.
const AndroidL = 21

// Options configures one module's split run.
type Options struct {
	Optimizations optimizations.ApkOptimizations

	// DeviceSpecKnown gates language splitting: without a concrete device
	// there is no locale set to split against.
	DeviceSpecKnown bool

	// ForSdkConversion drops the RPackage dex of SDK modules being turned
	// into app feature modules.
	ForSdkConversion bool

	Logger *log.Logger
}

// SplitModule runs the four per-dimension pipelines over one module and
// returns its splits: the master plus one split per targeted dimension
// value, with split ids stamped and suffixes stripped as directed.
func SplitModule(m *bundle.Module, opts Options) ([]*ModuleSplit, error) {
	variant := &bp.VariantTargeting{
		SdkVersionTargeting: targeting.SdkVersionTargetingFor(AndroidL),
	}
	seed := FromModule(m, variant)

	// Sanitizers run before any splitter sees the module.
	seed = SanitizeAbiDirs(seed, opts.Logger)
	seed = RenumberClassesDex(seed)
	if opts.ForSdkConversion && m.Type == bundle.SdkModule {
		seed = RemoveRPackageDex(seed)
	}

	enabled := opts.Optimizations.SplitDimensions
	languageEnabled := enabled.Has(targeting.Language) && opts.DeviceSpecKnown

	var splitters []Splitter
	// Native libraries: ABI when enabled; the sanitizer separation always
	// runs.
	if enabled.Has(targeting.Abi) {
		splitters = append(splitters, AbiSplitter{})
	}
	splitters = append(splitters, SanitizerSplitter{})
	// APEX images split unconditionally.
	splitters = append(splitters, ApexSplitter{})
	// Resources.
	if enabled.Has(targeting.ScreenDensity) {
		splitters = append(splitters, DensitySplitter{})
	}
	if languageEnabled {
		splitters = append(splitters, LanguageResourceSplitter{})
	}
	// Assets.
	if languageEnabled {
		splitters = append(splitters, AssetsSplitter{Dim: targeting.Language})
	}
	if enabled.Has(targeting.TextureCompressionFormat) {
		splitters = append(splitters, AssetsSplitter{Dim: targeting.TextureCompressionFormat})
	}
	if enabled.Has(targeting.DeviceTier) {
		splitters = append(splitters, AssetsSplitter{Dim: targeting.DeviceTier})
	}
	if enabled.Has(targeting.CountrySet) {
		splitters = append(splitters, AssetsSplitter{Dim: targeting.CountrySet})
	}

	splits, err := NewPipeline(splitters...).Split(seed)
	if err != nil {
		return nil, err
	}

	// The dimension-agnostic remainder is the master; it carries the
	// manifest, the dex files and everything no splitter claimed.
	masters := 0
	for _, s := range splits {
		if s.isDefaultTargeting() {
			s.MasterSplit = true
			masters++
		}
	}
	if masters == 0 {
		return nil, bundle.InternalErrorf("module %q produced no master split", m.Name)
	}

	splits, err = MergeSameTargeting(splits, opts.Logger)
	if err != nil {
		return nil, err
	}
	// Exactly one master remains after merging.
	masters = 0
	for _, s := range splits {
		if s.MasterSplit {
			masters++
		}
	}
	if masters != 1 {
		return nil, bundle.InternalErrorf("module %q has %d master splits after merging", m.Name, masters)
	}

	// Drop non-master splits that ended up empty: a dimension value whose
	// entries were all claimed by a later splitter contributes nothing.
	var kept []*ModuleSplit
	for _, s := range splits {
		if !s.MasterSplit && len(s.Entries) == 0 && s.ResourceTable == nil {
			continue
		}
		kept = append(kept, s)
	}
	splits = kept

	splits = ApplySuffixStripping(splits, opts.Optimizations.SuffixStrippings)

	if opts.Optimizations.UncompressNativeLibraries {
		splits = uncompressNativeEntries(splits)
	}
	if opts.Optimizations.UncompressDexFiles {
		splits = uncompressDexEntries(splits)
	}

	for i, s := range splits {
		splits[i] = s.writeSplitIdentity()
	}
	return splits, nil
}

// uncompressNativeEntries marks .so files under lib/ as stored and flips
// extractNativeLibs off on the master manifest.
func uncompressNativeEntries(splits []*ModuleSplit) []*ModuleSplit {
	out := make([]*ModuleSplit, 0, len(splits))
	for _, s := range splits {
		entries := make([]bundle.Entry, len(s.Entries))
		changed := false
		for i, e := range s.Entries {
			if strings.HasPrefix(e.Path, bundle.LibDirectory+"/") && strings.HasSuffix(e.Path, ".so") {
				e.ForceUncompressed = true
				changed = true
			}
			entries[i] = e
		}
		if changed {
			s = s.WithEntries(entries)
		}
		if s.MasterSplit {
			s = s.SetExtractNativeLibs(false)
		}
		out = append(out, s)
	}
	return out
}

// uncompressDexEntries marks dex files as stored.
func uncompressDexEntries(splits []*ModuleSplit) []*ModuleSplit {
	out := make([]*ModuleSplit, 0, len(splits))
	for _, s := range splits {
		entries := make([]bundle.Entry, len(s.Entries))
		changed := false
		for i, e := range s.Entries {
			if strings.HasPrefix(e.Path, bundle.DexDirectory+"/") && strings.HasSuffix(e.Path, ".dex") {
				e.ForceUncompressed = true
				changed = true
			}
			entries[i] = e
		}
		if changed {
			s = s.WithEntries(entries)
		}
		out = append(out, s)
	}
	return out
}
