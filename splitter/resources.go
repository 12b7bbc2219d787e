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

// filterTable rebuilds a resource table keeping only the config values the
// predicate accepts. Entries, types and packages left empty are dropped.
// The returned set holds the file paths referenced by the kept values.
func filterTable(table *bp.ResourceTable, pred func(*bp.Configuration) bool) (*bp.ResourceTable, map[string]bool) {
	out := &bp.ResourceTable{}
	paths := map[string]bool{}
	for _, pkg := range table.GetPackage() {
		outPkg := &bp.Package{PackageId: pkg.PackageId, PackageName: pkg.PackageName}
		for _, typ := range pkg.GetType() {
			outType := &bp.Type{TypeId: typ.TypeId, Name: typ.Name}
			for _, entry := range typ.GetEntry() {
				outEntry := &bp.Entry{EntryId: entry.EntryId, Name: entry.Name}
				for _, cv := range entry.GetConfigValue() {
					cfg := cv.GetConfig()
					if cfg == nil {
						cfg = &bp.Configuration{}
					}
					if !pred(cfg) {
						continue
					}
					outEntry.ConfigValue = append(outEntry.ConfigValue, cv)
					if p := cv.GetValue().GetItem().GetFile().GetPath(); p != "" {
						paths[p] = true
					}
				}
				if len(outEntry.ConfigValue) > 0 {
					outType.Entry = append(outType.Entry, outEntry)
				}
			}
			if len(outType.Entry) > 0 {
				outPkg.Type = append(outPkg.Type, outType)
			}
		}
		if len(outPkg.Type) > 0 {
			out.Package = append(out.Package, outPkg)
		}
	}
	if len(out.Package) == 0 {
		return nil, paths
	}
	return out, paths
}

func resEntriesIn(entries []bundle.Entry, paths map[string]bool) []bundle.Entry {
	var out []bundle.Entry
	for _, e := range entries {
		if paths[e.Path] {
			out = append(out, e)
		}
	}
	return out
}

// DensitySplitter partitions resource config values into the standard
// density buckets. anydpi values ride along in every bucket and the
// master; nodpi and density-less values stay in the master only.
type DensitySplitter struct{}

func (DensitySplitter) Split(s *ModuleSplit) ([]*ModuleSplit, error) {
	if s.ResourceTable == nil {
		return []*ModuleSplit{s}, nil
	}

	isMasterConfig := func(cfg *bp.Configuration) bool {
		return cfg.Density == 0 || cfg.Density == bp.DensityNone || cfg.Density == bp.DensityAny
	}

	// Decide which buckets have any content before building the splits, so
	// alternatives only list buckets that exist.
	present := map[bp.ScreenDensity_DensityAlias]bool{}
	for _, pkg := range s.ResourceTable.GetPackage() {
		for _, typ := range pkg.GetType() {
			for _, entry := range typ.GetEntry() {
				for _, cv := range entry.GetConfigValue() {
					d := cv.GetConfig().GetDensity()
					if d == 0 || d == bp.DensityNone || d == bp.DensityAny {
						continue
					}
					present[targeting.BucketForDpi(d)] = true
				}
			}
		}
	}
	if len(present) == 0 {
		return []*ModuleSplit{s}, nil
	}

	masterTable, masterPaths := filterTable(s.ResourceTable, isMasterConfig)

	var out []*ModuleSplit
	claimed := map[string]bool{}
	for _, alias := range targeting.DensityBuckets {
		if !present[alias] {
			continue
		}
		alias := alias
		bucketTable, bucketPaths := filterTable(s.ResourceTable, func(cfg *bp.Configuration) bool {
			if cfg.Density == bp.DensityAny {
				return true
			}
			if cfg.Density == 0 || cfg.Density == bp.DensityNone {
				return false
			}
			return targeting.BucketForDpi(cfg.Density) == alias
		})
		for p := range bucketPaths {
			if !masterPaths[p] {
				claimed[p] = true
			}
		}
		var alternatives []*bp.ScreenDensity
		for _, other := range targeting.DensityBuckets {
			if other != alias && present[other] {
				alternatives = append(alternatives, &bp.ScreenDensity{DensityAlias: other})
			}
		}
		split := s.WithEntries(resEntriesIn(s.Entries, bucketPaths)).
			WithResourceTable(bucketTable).
			WithApkTargeting(&bp.ApkTargeting{
				ScreenDensityTargeting: &bp.ScreenDensityTargeting{
					Value:        []*bp.ScreenDensity{{DensityAlias: alias}},
					Alternatives: alternatives,
				},
			})
		out = append(out, split)
	}

	var restEntries []bundle.Entry
	for _, e := range s.Entries {
		if !claimed[e.Path] {
			restEntries = append(restEntries, e)
		}
	}
	rest := s.WithEntries(restEntries).WithResourceTable(masterTable)
	return append(out, rest), nil
}

// LanguageResourceSplitter peels resources with an explicit locale into one
// split per language. Default-locale resources stay in the master.
type LanguageResourceSplitter struct{}

func localeLanguage(locale string) string {
	lang, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(lang)
}

func (LanguageResourceSplitter) Split(s *ModuleSplit) ([]*ModuleSplit, error) {
	if s.ResourceTable == nil {
		return []*ModuleSplit{s}, nil
	}

	langs := map[string]bool{}
	for _, pkg := range s.ResourceTable.GetPackage() {
		for _, typ := range pkg.GetType() {
			for _, entry := range typ.GetEntry() {
				for _, cv := range entry.GetConfigValue() {
					if l := localeLanguage(cv.GetConfig().GetLocale()); l != "" {
						langs[l] = true
					}
				}
			}
		}
	}
	if len(langs) == 0 {
		return []*ModuleSplit{s}, nil
	}
	var sortedLangs []string
	for l := range langs {
		sortedLangs = append(sortedLangs, l)
	}
	sort.Strings(sortedLangs)

	masterTable, masterPaths := filterTable(s.ResourceTable, func(cfg *bp.Configuration) bool {
		return localeLanguage(cfg.Locale) == ""
	})

	var out []*ModuleSplit
	claimed := map[string]bool{}
	for _, lang := range sortedLangs {
		lang := lang
		langTable, langPaths := filterTable(s.ResourceTable, func(cfg *bp.Configuration) bool {
			return localeLanguage(cfg.Locale) == lang
		})
		for p := range langPaths {
			if !masterPaths[p] {
				claimed[p] = true
			}
		}
		var alternatives []string
		for _, other := range sortedLangs {
			if other != lang {
				alternatives = append(alternatives, other)
			}
		}
		split := s.WithEntries(resEntriesIn(s.Entries, langPaths)).
			WithResourceTable(langTable).
			WithApkTargeting(&bp.ApkTargeting{
				LanguageTargeting: &bp.LanguageTargeting{
					Value:        []string{lang},
					Alternatives: alternatives,
				},
			})
		out = append(out, split)
	}

	var restEntries []bundle.Entry
	for _, e := range s.Entries {
		if !claimed[e.Path] {
			restEntries = append(restEntries, e)
		}
	}
	rest := s.WithEntries(restEntries).WithResourceTable(masterTable)
	return append(out, rest), nil
}
