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
	"sort"
	"strings"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/targeting"
)

// nativeDir describes one lib/<abi> directory of a split.
type nativeDir struct {
	path      string
	abi       bp.Abi_AbiAlias
	sanitizer bool
}

// nativeDirs lists the split's native directories, from native.pb when
// present, otherwise by scanning entry paths. Results are in ABI priority
// order.
func nativeDirs(s *ModuleSplit) []nativeDir {
	var dirs []nativeDir
	if s.NativeLibs != nil {
		for _, d := range s.NativeLibs.Directory {
			t := d.GetTargeting()
			dirs = append(dirs, nativeDir{
				path:      strings.TrimSuffix(d.Path, "/"),
				abi:       t.GetAbi().GetAlias(),
				sanitizer: t != nil && t.Sanitizer != nil && t.Sanitizer.Alias == bp.Sanitizer_HWADDRESS,
			})
		}
	} else {
		seen := map[string]bool{}
		for _, e := range s.Entries {
			if !strings.HasPrefix(e.Path, bundle.LibDirectory+"/") {
				continue
			}
			parts := strings.SplitN(e.Path, "/", 3)
			if len(parts) < 3 {
				continue
			}
			dir := parts[0] + "/" + parts[1]
			if seen[dir] {
				continue
			}
			seen[dir] = true
			if abi, ok := targeting.AbiFromDirName(parts[1]); ok {
				dirs = append(dirs, nativeDir{path: dir, abi: abi})
			}
		}
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return targeting.AbiPriority(dirs[i].abi) < targeting.AbiPriority(dirs[j].abi)
	})
	return dirs
}

func entriesUnder(entries []bundle.Entry, dir string) []bundle.Entry {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var out []bundle.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.Path, prefix) {
			out = append(out, e)
		}
	}
	return out
}

func entriesNotUnder(entries []bundle.Entry, dirs []string) []bundle.Entry {
	var out []bundle.Entry
	for _, e := range entries {
		claimed := false
		for _, dir := range dirs {
			if strings.HasPrefix(e.Path, strings.TrimSuffix(dir, "/")+"/") {
				claimed = true
				break
			}
		}
		if !claimed {
			out = append(out, e)
		}
	}
	return out
}

// AbiSplitter peels each non-sanitizer lib/<abi> directory into its own
// ABI-targeted split. Sibling ABIs become alternatives of each split.
type AbiSplitter struct{}

func (AbiSplitter) Split(s *ModuleSplit) ([]*ModuleSplit, error) {
	dirs := nativeDirs(s)
	var plain []nativeDir
	for _, d := range dirs {
		if !d.sanitizer {
			plain = append(plain, d)
		}
	}
	if len(plain) == 0 {
		return []*ModuleSplit{s}, nil
	}

	var abis []bp.Abi_AbiAlias
	for _, d := range plain {
		abis = append(abis, d.abi)
	}

	var out []*ModuleSplit
	var claimed []string
	for _, d := range plain {
		claimed = append(claimed, d.path)
		var alternatives []*bp.Abi
		for _, abi := range abis {
			if abi != d.abi {
				alternatives = append(alternatives, &bp.Abi{Alias: abi})
			}
		}
		abiSplit := s.WithEntries(entriesUnder(s.Entries, d.path)).
			WithApkTargeting(&bp.ApkTargeting{
				AbiTargeting: &bp.AbiTargeting{
					Value:        []*bp.Abi{{Alias: d.abi}},
					Alternatives: alternatives,
				},
			})
		abiSplit.ResourceTable = nil
		out = append(out, abiSplit)
	}
	rest := s.WithEntries(entriesNotUnder(s.Entries, claimed))
	return append(out, rest), nil
}

// SanitizerSplitter separates sanitizer-instrumented native directories
// into a dedicated split carrying a requiresSanitizer manifest marker. It
// always runs, regardless of the enabled split dimensions.
type SanitizerSplitter struct{}

func (SanitizerSplitter) Split(s *ModuleSplit) ([]*ModuleSplit, error) {
	dirs := nativeDirs(s)
	var sanitized []nativeDir
	for _, d := range dirs {
		if d.sanitizer {
			sanitized = append(sanitized, d)
		}
	}
	if len(sanitized) == 0 {
		return []*ModuleSplit{s}, nil
	}

	var entries []bundle.Entry
	var claimed []string
	for _, d := range sanitized {
		claimed = append(claimed, d.path)
		entries = append(entries, entriesUnder(s.Entries, d.path)...)
	}
	sanitizerSplit := s.WithEntries(entries).
		WithApkTargeting(&bp.ApkTargeting{
			SanitizerTargeting: &bp.SanitizerTargeting{
				Value: []*bp.Sanitizer{{Alias: bp.Sanitizer_HWADDRESS}},
			},
		}).
		markRequiresSanitizer()
	sanitizerSplit.ResourceTable = nil
	rest := s.WithEntries(entriesNotUnder(s.Entries, claimed))
	return []*ModuleSplit{sanitizerSplit, rest}, nil
}

// ApexSplitter splits an APEX module by the multi-ABI combinations declared
// in its apex config. It runs unconditionally.
type ApexSplitter struct{}

func (ApexSplitter) Split(s *ModuleSplit) ([]*ModuleSplit, error) {
	images := s.ApexImages.GetImage()
	if len(images) == 0 {
		return []*ModuleSplit{s}, nil
	}

	// The universe of multi-ABI values; each image's alternatives are the
	// other images' values.
	var out []*ModuleSplit
	var claimed []string
	for _, img := range images {
		if img.GetTargeting().GetMultiAbi() == nil {
			return nil, bundle.PathErrorf(bundle.InvalidApexConfig, s.ModuleName, img.Path,
				"apex image has no multi-ABI targeting")
		}
		claimed = append(claimed, img.Path)
	}
	for _, img := range images {
		var entries []bundle.Entry
		for _, e := range s.Entries {
			if e.Path == img.Path {
				entries = append(entries, e)
			}
		}
		if len(entries) == 0 {
			return nil, bundle.PathErrorf(bundle.InvalidApexConfig, s.ModuleName, img.Path,
				"apex config references a missing image")
		}
		var alternatives []*bp.MultiAbi
		for _, other := range images {
			if other != img {
				alternatives = append(alternatives, other.Targeting.MultiAbi.GetValue()...)
			}
		}
		split := s.WithEntries(entries).WithApkTargeting(&bp.ApkTargeting{
			MultiAbiTargeting: &bp.MultiAbiTargeting{
				Value:        img.Targeting.MultiAbi.GetValue(),
				Alternatives: alternatives,
			},
		})
		out = append(out, split)
	}

	var rest []bundle.Entry
	for _, e := range s.Entries {
		found := false
		for _, path := range claimed {
			if e.Path == path {
				found = true
				break
			}
		}
		if !found {
			rest = append(rest, e)
		}
	}
	return append(out, s.WithEntries(rest)), nil
}
