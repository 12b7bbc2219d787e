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

	"android/bundletool/bundle"
	"android/bundletool/targeting"
)

// MergeSameTargeting fuses splits sharing (module, apk targeting, master
// flag) into one split each, preserving first-seen order. Splitters running
// per dimension can each emit a dimension-agnostic split; after this pass
// the serializer sees exactly one split per final targeting.
//
// Duplicate entry paths keep the first occurrence and are logged. Splits
// being fused must agree on resource table, manifest, native config and
// variant targeting.
func MergeSameTargeting(splits []*ModuleSplit, logger *log.Logger) ([]*ModuleSplit, error) {
	type key struct {
		module    string
		targeting string
		master    bool
	}
	merged := map[key]*ModuleSplit{}
	var order []key

	for _, s := range splits {
		k := key{s.ModuleName, targeting.ApkTargetingKey(s.ApkTargeting), s.MasterSplit}
		existing, ok := merged[k]
		if !ok {
			merged[k] = s
			order = append(order, k)
			continue
		}
		fused, err := fuseSplits(existing, s, logger)
		if err != nil {
			return nil, err
		}
		merged[k] = fused
	}

	out := make([]*ModuleSplit, 0, len(order))
	for _, k := range order {
		out = append(out, merged[k])
	}
	return out, nil
}

func fuseSplits(a, b *ModuleSplit, logger *log.Logger) (*ModuleSplit, error) {
	if !targeting.Equal(a.ResourceTable, b.ResourceTable) {
		return nil, bundle.ModuleErrorf(bundle.InvalidBundle, a.ModuleName,
			"conflicting resource tables in splits with targeting %q", a.SuffixName())
	}
	if !targeting.Equal(a.Manifest.Node, b.Manifest.Node) {
		return nil, bundle.ModuleErrorf(bundle.InvalidBundle, a.ModuleName,
			"conflicting manifests in splits with targeting %q", a.SuffixName())
	}
	if !targeting.Equal(a.NativeLibs, b.NativeLibs) {
		return nil, bundle.ModuleErrorf(bundle.InvalidBundle, a.ModuleName,
			"conflicting native configs in splits with targeting %q", a.SuffixName())
	}
	if !targeting.Equal(a.VariantTargeting, b.VariantTargeting) {
		return nil, bundle.ModuleErrorf(bundle.InvalidBundle, a.ModuleName,
			"conflicting variant targeting in splits with targeting %q", a.SuffixName())
	}

	seen := map[string]bool{}
	var entries []bundle.Entry
	for _, e := range append(append([]bundle.Entry(nil), a.Entries...), b.Entries...) {
		if seen[e.Path] {
			if logger != nil {
				logger.Printf("module %q: duplicate entry %q while merging splits; keeping the first",
					a.ModuleName, e.Path)
			}
			continue
		}
		seen[e.Path] = true
		entries = append(entries, e)
	}
	return a.WithEntries(entries), nil
}
