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
	"bytes"
	"log"
	"reflect"
	"sort"
	"strings"
	"testing"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/optimizations"
	"android/bundletool/targeting"
)

func testManifest() bundle.Manifest {
	return bundle.Manifest{Node: &bp.XmlNode{Element: &bp.XmlElement{
		Name: "manifest",
		Attribute: []*bp.XmlAttribute{
			{Name: "package", Value: "com.example.app"},
		},
	}}}
}

func testModule(t *testing.T, name string, paths ...string) *bundle.Module {
	t.Helper()
	var entries []bundle.Entry
	for _, p := range paths {
		entries = append(entries, bundle.Entry{Path: p, Content: bundle.BufferSource([]byte(p))})
	}
	return bundle.NewModule(name, testManifest(), entries)
}

func defaultOptions() Options {
	return Options{
		Optimizations: optimizations.ApkOptimizations{
			SplitDimensions:      targeting.NewDimensionSet(targeting.Abi, targeting.ScreenDensity, targeting.Language),
			StandaloneDimensions: targeting.NewDimensionSet(targeting.Abi, targeting.ScreenDensity),
			SuffixStrippings:     map[targeting.Dimension]optimizations.SuffixStripping{},
		},
		DeviceSpecKnown: true,
		Logger:          log.New(&bytes.Buffer{}, "", 0),
	}
}

func entryPaths(s *ModuleSplit) []string {
	var out []string
	for _, e := range s.Entries {
		out = append(out, e.Path)
	}
	sort.Strings(out)
	return out
}

func masterOf(t *testing.T, splits []*ModuleSplit) *ModuleSplit {
	t.Helper()
	for _, s := range splits {
		if s.MasterSplit {
			return s
		}
	}
	t.Fatalf("no master split")
	return nil
}

func TestSplitModuleByAbi(t *testing.T) {
	m := testModule(t, "base",
		"dex/classes.dex",
		"lib/x86/libfoo.so",
		"lib/arm64-v8a/libfoo.so",
		"root/extra.txt",
	)
	splits, err := SplitModule(m, defaultOptions())
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}
	if len(splits) != 3 {
		t.Fatalf("got %d splits, want 3 (master + 2 ABI)", len(splits))
	}

	master := masterOf(t, splits)
	for _, p := range entryPaths(master) {
		if strings.HasSuffix(p, ".so") {
			t.Errorf("master contains native library %q", p)
		}
	}
	if want := []string{"dex/classes.dex", "root/extra.txt"}; !reflect.DeepEqual(entryPaths(master), want) {
		t.Errorf("master entries = %v, want %v", entryPaths(master), want)
	}

	byAbi := map[bp.Abi_AbiAlias]*ModuleSplit{}
	for _, s := range splits {
		if s.MasterSplit {
			continue
		}
		values := s.ApkTargeting.GetAbiTargeting().GetValue()
		if len(values) != 1 {
			t.Fatalf("ABI split targets %d values", len(values))
		}
		byAbi[values[0].Alias] = s
	}
	arm := byAbi[bp.Abi_ARM64_V8A]
	x86 := byAbi[bp.Abi_X86]
	if arm == nil || x86 == nil {
		t.Fatalf("missing ABI splits: %v", byAbi)
	}
	if want := []string{"lib/arm64-v8a/libfoo.so"}; !reflect.DeepEqual(entryPaths(arm), want) {
		t.Errorf("arm64 split entries = %v, want %v", entryPaths(arm), want)
	}
	if alts := arm.ApkTargeting.AbiTargeting.Alternatives; len(alts) != 1 || alts[0].Alias != bp.Abi_X86 {
		t.Errorf("arm64 alternatives = %v, want [X86]", alts)
	}
	if alts := x86.ApkTargeting.AbiTargeting.Alternatives; len(alts) != 1 || alts[0].Alias != bp.Abi_ARM64_V8A {
		t.Errorf("x86 alternatives = %v, want [ARM64_V8A]", alts)
	}
	if got := arm.SplitId(); got != "config.arm64_v8a" {
		t.Errorf("arm64 SplitId() = %q, want config.arm64_v8a", got)
	}
	if got, _ := arm.Manifest.Attribute("", "split"); got != "config.arm64_v8a" {
		t.Errorf("arm64 manifest split attribute = %q", got)
	}
}

// Partitioning invariant: the master and dimension splits partition the
// module's entries; distinct dimension values never share an entry.
func TestSplitModulePartitioning(t *testing.T) {
	m := testModule(t, "base",
		"dex/classes.dex",
		"lib/x86/liba.so",
		"lib/x86_64/liba.so",
		"assets/other.bin",
	)
	splits, err := SplitModule(m, defaultOptions())
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}
	seen := map[string]int{}
	for _, s := range splits {
		for _, e := range s.Entries {
			seen[e.Path]++
		}
	}
	for _, e := range m.Entries() {
		if seen[e.Path] != 1 {
			t.Errorf("entry %q appears %d times across splits, want 1", e.Path, seen[e.Path])
		}
	}
}

func TestRenumberClassesDex(t *testing.T) {
	m := testModule(t, "base",
		"dex/classes.dex",
		"dex/classes1.dex",
		"dex/classes2.dex",
	)
	splits, err := SplitModule(m, defaultOptions())
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}
	master := masterOf(t, splits)
	want := []string{"dex/classes.dex", "dex/classes2.dex", "dex/classes3.dex"}
	if !reflect.DeepEqual(entryPaths(master), want) {
		t.Errorf("dex entries = %v, want %v", entryPaths(master), want)
	}
}

func TestRenumberClassesDexNoOp(t *testing.T) {
	s := &ModuleSplit{Entries: []bundle.Entry{
		{Path: "dex/classes.dex"},
		{Path: "dex/classes2.dex"},
	}}
	out := RenumberClassesDex(s)
	if !reflect.DeepEqual(entryPaths(out), []string{"dex/classes.dex", "dex/classes2.dex"}) {
		t.Errorf("renumber without classes1.dex changed entries: %v", entryPaths(out))
	}
}

func TestSanitizeAbiDirs(t *testing.T) {
	var logged bytes.Buffer
	m := testModule(t, "base",
		"lib/x86/liba.so",
		"lib/x86/libb.so",
		"lib/x86/libc.so",
		"lib/x86_64/liba.so",
		"lib/x86_64/libb.so",
	)
	opts := defaultOptions()
	opts.Logger = log.New(&logged, "", 0)
	splits, err := SplitModule(m, opts)
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}
	for _, s := range splits {
		for _, v := range s.ApkTargeting.GetAbiTargeting().GetValue() {
			if v.Alias == bp.Abi_X86_64 {
				t.Errorf("x86_64 split survived the ABI sanitizer")
			}
		}
		for _, p := range entryPaths(s) {
			if strings.HasPrefix(p, "lib/x86_64/") {
				t.Errorf("x86_64 entry %q survived the ABI sanitizer", p)
			}
		}
	}
	if !strings.Contains(logged.String(), "lib/x86_64/liba.so") {
		t.Errorf("dropped paths not logged: %q", logged.String())
	}
}

func densityTable(densities map[string]uint32) *bp.ResourceTable {
	entry := &bp.Entry{EntryId: &bp.EntryId{Id: 1}, Name: "bg"}
	for path, density := range densities {
		entry.ConfigValue = append(entry.ConfigValue, &bp.ConfigValue{
			Config: &bp.Configuration{Density: density},
			Value: &bp.Value{Item: &bp.Item{
				File: &bp.FileReference{Path: path},
			}},
		})
	}
	return &bp.ResourceTable{Package: []*bp.Package{{
		PackageId:   &bp.PackageId{Id: 0x7F},
		PackageName: "com.example.app",
		Type:        []*bp.Type{{TypeId: &bp.TypeId{Id: 1}, Name: "drawable", Entry: []*bp.Entry{entry}}},
	}}}
}

// Density anydpi carrier: an anydpi-qualified value appears in every
// density split and in the master.
func TestDensityAnydpiCarrier(t *testing.T) {
	m := testModule(t, "base",
		"res/drawable-hdpi/bg.png",
		"res/drawable-xhdpi/bg.png",
		"res/drawable-anydpi/bg.xml",
	)
	m.ResourceTable = densityTable(map[string]uint32{
		"res/drawable-hdpi/bg.png":   240,
		"res/drawable-xhdpi/bg.png":  320,
		"res/drawable-anydpi/bg.xml": bp.DensityAny,
	})

	splits, err := SplitModule(m, defaultOptions())
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}

	densitySplits := 0
	for _, s := range splits {
		values := s.ApkTargeting.GetScreenDensityTargeting().GetValue()
		if len(values) == 0 {
			continue
		}
		densitySplits++
		found := false
		for _, p := range entryPaths(s) {
			if p == "res/drawable-anydpi/bg.xml" {
				found = true
			}
		}
		if !found {
			t.Errorf("density split %v lacks the anydpi entry", values[0].DensityAlias)
		}
	}
	if densitySplits != 2 {
		t.Errorf("got %d density splits, want 2", densitySplits)
	}
	master := masterOf(t, splits)
	if !contains(entryPaths(master), "res/drawable-anydpi/bg.xml") {
		t.Errorf("master lacks the anydpi entry")
	}
	if contains(entryPaths(master), "res/drawable-hdpi/bg.png") {
		t.Errorf("master still holds a density-qualified entry")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func localeTable() *bp.ResourceTable {
	entry := &bp.Entry{EntryId: &bp.EntryId{Id: 1}, Name: "title"}
	for _, locale := range []string{"", "fr", "ru-RU"} {
		entry.ConfigValue = append(entry.ConfigValue, &bp.ConfigValue{
			Config: &bp.Configuration{Locale: locale},
			Value:  &bp.Value{Item: &bp.Item{Str: "title-" + locale}},
		})
	}
	return &bp.ResourceTable{Package: []*bp.Package{{
		PackageId:   &bp.PackageId{Id: 0x7F},
		PackageName: "com.example.app",
		Type:        []*bp.Type{{TypeId: &bp.TypeId{Id: 2}, Name: "string", Entry: []*bp.Entry{entry}}},
	}}}
}

func TestLanguageSplitsKeepDefaultInMaster(t *testing.T) {
	m := testModule(t, "base", "dex/classes.dex")
	m.ResourceTable = localeTable()

	splits, err := SplitModule(m, defaultOptions())
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}

	var langs []string
	for _, s := range splits {
		langs = append(langs, s.ApkTargeting.GetLanguageTargeting().GetValue()...)
	}
	sort.Strings(langs)
	if !reflect.DeepEqual(langs, []string{"fr", "ru"}) {
		t.Errorf("language splits = %v, want [fr ru]", langs)
	}

	master := masterOf(t, splits)
	if master.ResourceTable == nil {
		t.Fatalf("master lost its resource table")
	}
	cvs := master.ResourceTable.Package[0].Type[0].Entry[0].ConfigValue
	if len(cvs) != 1 || cvs[0].Config.Locale != "" {
		t.Errorf("master keeps %d config values, want only the default locale", len(cvs))
	}
}

func TestLanguageSplittingNeedsDeviceSpec(t *testing.T) {
	m := testModule(t, "base", "dex/classes.dex")
	m.ResourceTable = localeTable()

	opts := defaultOptions()
	opts.DeviceSpecKnown = false
	splits, err := SplitModule(m, opts)
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}
	for _, s := range splits {
		if len(s.ApkTargeting.GetLanguageTargeting().GetValue()) > 0 {
			t.Errorf("language split produced without a device spec")
		}
	}
}

func TestAssetsLanguageSplitter(t *testing.T) {
	m := testModule(t, "base",
		"dex/classes.dex",
		"assets/i18n#lang_en/strings.bin",
		"assets/i18n#lang_fr/strings.bin",
		"assets/common/data.bin",
	)
	splits, err := SplitModule(m, defaultOptions())
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}
	var langs []string
	for _, s := range splits {
		values := s.ApkTargeting.GetLanguageTargeting().GetValue()
		if len(values) > 0 {
			langs = append(langs, values[0])
			if len(s.Entries) != 1 {
				t.Errorf("language split %v has %d entries, want 1", values, len(s.Entries))
			}
		}
	}
	sort.Strings(langs)
	if !reflect.DeepEqual(langs, []string{"en", "fr"}) {
		t.Errorf("asset language splits = %v, want [en fr]", langs)
	}
	master := masterOf(t, splits)
	if !contains(entryPaths(master), "assets/common/data.bin") {
		t.Errorf("untargeted asset directory left the master")
	}
}

func TestSuffixStripping(t *testing.T) {
	m := testModule(t, "base",
		"dex/classes.dex",
		"assets/textures#tcf_astc/img.bin",
		"assets/textures#tcf_etc2/img.bin",
	)
	opts := defaultOptions()
	opts.Optimizations.SplitDimensions[targeting.TextureCompressionFormat] = true
	opts.Optimizations.SuffixStrippings[targeting.TextureCompressionFormat] = optimizations.SuffixStripping{
		Enabled:       true,
		DefaultSuffix: "etc2",
	}
	splits, err := SplitModule(m, opts)
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}
	for _, s := range splits {
		if len(s.ApkTargeting.GetTextureCompressionFormatTargeting().GetValue()) == 0 {
			continue
		}
		if want := []string{"assets/textures/img.bin"}; !reflect.DeepEqual(entryPaths(s), want) {
			t.Errorf("TCF split entries = %v, want %v", entryPaths(s), want)
		}
		// Targeting is intact after the path rewrite.
		if got := s.SuffixName(); got != "astc" && got != "etc2" {
			t.Errorf("TCF split suffix = %q", got)
		}
	}
}

func TestMergeSameTargetingIdempotent(t *testing.T) {
	a := &ModuleSplit{
		ModuleName:   "base",
		ApkTargeting: &bp.ApkTargeting{},
		Manifest:     testManifest(),
		Entries:      []bundle.Entry{{Path: "a"}, {Path: "b"}},
	}
	b := &ModuleSplit{
		ModuleName:   "base",
		ApkTargeting: &bp.ApkTargeting{},
		Manifest:     testManifest(),
		Entries:      []bundle.Entry{{Path: "b"}, {Path: "c"}},
	}
	logger := log.New(&bytes.Buffer{}, "", 0)

	once, err := MergeSameTargeting([]*ModuleSplit{a, b}, logger)
	if err != nil {
		t.Fatalf("MergeSameTargeting() failed: %v", err)
	}
	if len(once) != 1 {
		t.Fatalf("got %d splits, want 1", len(once))
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(entryPaths(once[0]), want) {
		t.Errorf("merged entries = %v, want %v (first wins)", entryPaths(once[0]), want)
	}

	twice, err := MergeSameTargeting(once, logger)
	if err != nil {
		t.Fatalf("MergeSameTargeting() failed: %v", err)
	}
	if !reflect.DeepEqual(entryPaths(once[0]), entryPaths(twice[0])) || len(twice) != len(once) {
		t.Errorf("merge is not idempotent")
	}
}

func TestMergeSameTargetingConflictingManifests(t *testing.T) {
	other := bundle.Manifest{Node: &bp.XmlNode{Element: &bp.XmlElement{
		Name: "manifest",
		Attribute: []*bp.XmlAttribute{
			{Name: "package", Value: "com.example.other"},
		},
	}}}
	a := &ModuleSplit{ModuleName: "base", ApkTargeting: &bp.ApkTargeting{}, Manifest: testManifest()}
	b := &ModuleSplit{ModuleName: "base", ApkTargeting: &bp.ApkTargeting{}, Manifest: other}

	_, err := MergeSameTargeting([]*ModuleSplit{a, b}, nil)
	if ue := bundle.AsUserError(err); ue == nil || !strings.Contains(ue.Message, "manifest") {
		t.Errorf("MergeSameTargeting() = %v, want conflicting manifest error", err)
	}
}

func TestCheckTextureFormatParity(t *testing.T) {
	consistent := []*bundle.Module{
		testModule(t, "base", "assets/tex#tcf_astc/a", "assets/tex#tcf_etc2/a"),
		testModule(t, "feature", "assets/x#tcf_astc/b", "assets/x#tcf_etc2/b"),
		testModule(t, "plain", "assets/plain/c"),
	}
	if err := CheckTextureFormatParity(consistent); err != nil {
		t.Errorf("CheckTextureFormatParity() failed on consistent modules: %v", err)
	}

	inconsistent := []*bundle.Module{
		testModule(t, "base", "assets/tex#tcf_astc/a", "assets/tex#tcf_etc2/a"),
		testModule(t, "feature", "assets/x#tcf_astc/b"),
	}
	err := CheckTextureFormatParity(inconsistent)
	if ue := bundle.AsUserError(err); ue == nil || ue.Kind != bundle.TextureCompressionParity {
		t.Errorf("CheckTextureFormatParity() = %v, want TEXTURE_COMPRESSION_PARITY", err)
	}
}

func TestApexSplitter(t *testing.T) {
	m := testModule(t, "base", "apex/x86_64.img", "apex/arm64-v8a.img")
	m.ApexImages = &bp.ApexImages{Image: []*bp.TargetedApexImage{
		{
			Path: "apex/x86_64.img",
			Targeting: &bp.ApexImageTargeting{MultiAbi: &bp.MultiAbiTargeting{
				Value: []*bp.MultiAbi{{Abi: []*bp.Abi{{Alias: bp.Abi_X86_64}}}},
			}},
		},
		{
			Path: "apex/arm64-v8a.img",
			Targeting: &bp.ApexImageTargeting{MultiAbi: &bp.MultiAbiTargeting{
				Value: []*bp.MultiAbi{{Abi: []*bp.Abi{{Alias: bp.Abi_ARM64_V8A}}}},
			}},
		},
	}}
	splits, err := SplitModule(m, defaultOptions())
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}
	apexSplits := 0
	for _, s := range splits {
		if len(s.ApkTargeting.GetMultiAbiTargeting().GetValue()) > 0 {
			apexSplits++
			if len(s.ApkTargeting.MultiAbiTargeting.Alternatives) != 1 {
				t.Errorf("apex split has %d alternatives, want 1",
					len(s.ApkTargeting.MultiAbiTargeting.Alternatives))
			}
		}
	}
	if apexSplits != 2 {
		t.Errorf("got %d apex splits, want 2", apexSplits)
	}
}

func TestApexSplitterMissingImage(t *testing.T) {
	m := testModule(t, "base", "apex/x86_64.img")
	m.ApexImages = &bp.ApexImages{Image: []*bp.TargetedApexImage{
		{
			Path: "apex/missing.img",
			Targeting: &bp.ApexImageTargeting{MultiAbi: &bp.MultiAbiTargeting{
				Value: []*bp.MultiAbi{{Abi: []*bp.Abi{{Alias: bp.Abi_X86_64}}}},
			}},
		},
	}}
	_, err := SplitModule(m, defaultOptions())
	if ue := bundle.AsUserError(err); ue == nil || ue.Kind != bundle.InvalidApexConfig {
		t.Errorf("SplitModule() = %v, want INVALID_APEX_CONFIG", err)
	}
}

func TestUncompressDirectives(t *testing.T) {
	m := testModule(t, "base",
		"dex/classes.dex",
		"lib/x86/liba.so",
	)
	opts := defaultOptions()
	opts.Optimizations.UncompressNativeLibraries = true
	opts.Optimizations.UncompressDexFiles = true
	splits, err := SplitModule(m, opts)
	if err != nil {
		t.Fatalf("SplitModule() failed: %v", err)
	}
	for _, s := range splits {
		for _, e := range s.Entries {
			if strings.HasSuffix(e.Path, ".so") && !e.ForceUncompressed {
				t.Errorf("%q not marked uncompressed", e.Path)
			}
			if strings.HasSuffix(e.Path, ".dex") && !e.ForceUncompressed {
				t.Errorf("%q not marked uncompressed", e.Path)
			}
		}
	}
	master := masterOf(t, splits)
	found := false
	for _, c := range master.Manifest.Root().Child {
		if c.Element != nil && c.Element.Name == "application" {
			for _, a := range c.Element.Attribute {
				if a.Name == "extractNativeLibs" && a.Value == "false" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Errorf("master manifest lacks extractNativeLibs=false")
	}
}
