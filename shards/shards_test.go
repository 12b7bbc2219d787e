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
	"bytes"
	"log"
	"reflect"
	"sort"
	"strings"
	"testing"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/device"
	"android/bundletool/optimizations"
	"android/bundletool/splitter"
	"android/bundletool/targeting"
)

func testManifest(pkg string) bundle.Manifest {
	return bundle.Manifest{Node: &bp.XmlNode{Element: &bp.XmlElement{
		Name: "manifest",
		Attribute: []*bp.XmlAttribute{
			{Name: "package", Value: pkg},
		},
	}}}
}

func testModule(name string, paths ...string) *bundle.Module {
	var entries []bundle.Entry
	for _, p := range paths {
		entries = append(entries, bundle.Entry{Path: p, Content: bundle.BufferSource([]byte(p))})
	}
	return bundle.NewModule(name, testManifest("com.example.app"), entries)
}

func testBundle(modules ...*bundle.Module) *bundle.Bundle {
	return &bundle.Bundle{
		Modules: modules,
		Config:  &bp.BundleConfig{Bundletool: &bp.Bundletool{Version: "1.8.0"}},
	}
}

func testOptions() Options {
	return Options{
		Optimizations: optimizations.ApkOptimizations{
			SplitDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity, targeting.Language),
			StandaloneDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity),
			SuffixStrippings: map[targeting.Dimension]optimizations.SuffixStripping{},
		},
		Logger: log.New(&bytes.Buffer{}, "", 0),
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

func entryPaths(s *splitter.ModuleSplit) []string {
	var out []string
	for _, e := range s.Entries {
		out = append(out, e.Path)
	}
	sort.Strings(out)
	return out
}

func TestGenerateStandalonesByAbi(t *testing.T) {
	b := testBundle(
		testModule("base",
			"dex/classes.dex",
			"lib/x86/liba.so",
			"lib/arm64-v8a/liba.so",
		),
		testModule("feature", "assets/data.bin"),
	)
	shards, err := GenerateStandalones(b, testOptions())
	if err != nil {
		t.Fatalf("GenerateStandalones() failed: %v", err)
	}
	if len(shards) != 2 {
		t.Fatalf("got %d shards, want 2 (one per ABI)", len(shards))
	}
	for _, s := range shards {
		if s.Type != splitter.StandaloneApk {
			t.Errorf("shard type = %v, want STANDALONE", s.Type)
		}
		if !s.MasterSplit {
			t.Errorf("standalone shard not marked master")
		}
		if id, ok := s.Manifest.Attribute("", "split"); ok {
			t.Errorf("standalone manifest still carries split id %q", id)
		}
		abis := s.VariantTargeting.GetAbiTargeting().GetValue()
		if len(abis) != 1 {
			t.Fatalf("shard variant has %d ABIs, want 1", len(abis))
		}
		var wantLib string
		switch abis[0].Alias {
		case bp.Abi_X86:
			wantLib = "lib/x86/liba.so"
		case bp.Abi_ARM64_V8A:
			wantLib = "lib/arm64-v8a/liba.so"
		default:
			t.Fatalf("unexpected shard ABI %v", abis[0].Alias)
		}
		want := []string{"assets/data.bin", "dex/classes.dex", wantLib}
		if !reflect.DeepEqual(entryPaths(s), want) {
			t.Errorf("shard entries = %v, want %v", entryPaths(s), want)
		}
	}
}

func TestGenerateStandalonesStrip64Bit(t *testing.T) {
	b := testBundle(testModule("base",
		"dex/classes.dex",
		"lib/armeabi-v7a/liba.so",
		"lib/arm64-v8a/liba.so",
	))
	opts := testOptions()
	opts.Optimizations.Strip64BitLibraries = true
	shards, err := GenerateStandalones(b, opts)
	if err != nil {
		t.Fatalf("GenerateStandalones() failed: %v", err)
	}
	if len(shards) != 1 {
		t.Fatalf("got %d shards, want 1 (64-bit stripped)", len(shards))
	}
	for _, p := range entryPaths(shards[0]) {
		if strings.Contains(p, "arm64-v8a") {
			t.Errorf("64-bit library %q survived stripping", p)
		}
	}
}

func TestGenerateUniversal(t *testing.T) {
	b := testBundle(
		testModule("base",
			"dex/classes.dex",
			"lib/x86/liba.so",
			"assets/tex#tcf_astc/img.bin",
			"assets/tex#tcf_etc2/img.bin",
		),
		testModule("feature", "dex/classes.dex"),
	)
	opts := testOptions()
	opts.Optimizations.StandaloneDimensions = targeting.NewDimensionSet()
	opts.Optimizations.SuffixStrippings[targeting.TextureCompressionFormat] =
		optimizations.SuffixStripping{Enabled: true, DefaultSuffix: "etc2"}

	shards, err := GenerateStandalones(b, opts)
	if err != nil {
		t.Fatalf("GenerateStandalones() failed: %v", err)
	}
	if len(shards) != 1 {
		t.Fatalf("got %d shards, want 1 universal", len(shards))
	}
	got := entryPaths(shards[0])
	want := []string{
		"assets/tex/img.bin", // default TCF variant, suffix stripped
		"dex/classes.dex",
		"dex/classes2.dex", // feature dex renumbered after base
		"lib/x86/liba.so",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("universal entries = %v, want %v", got, want)
	}
}

func languageAssetBundle() *bundle.Bundle {
	base := testModule("base",
		"dex/classes.dex",
		"lib/x86/liba.so",
		"assets/i18n#lang_en/strings.bin",
		"assets/i18n#lang_fr/strings.bin",
		"assets/i18n#lang_ru/strings.bin",
	)
	return testBundle(base)
}

func enFrDevice() *device.Spec {
	return &device.Spec{
		SupportedAbis:    []string{"x86"},
		SupportedLocales: []string{"en-US", "fr-FR"},
		ScreenDensity:    320,
		SdkVersion:       30,
	}
}

func TestGenerateSystemApks(t *testing.T) {
	result, err := GenerateSystemApks(languageAssetBundle(), enFrDevice(),
		map[string]bool{"base": true}, testOptions())
	if err != nil {
		t.Fatalf("GenerateSystemApks() failed: %v", err)
	}

	system := result.SystemApk
	if system.Type != splitter.SystemApk || !system.MasterSplit {
		t.Errorf("system APK misclassified: type=%v master=%v", system.Type, system.MasterSplit)
	}
	got := entryPaths(system)
	for _, want := range []string{
		"assets/i18n#lang_en/strings.bin",
		"assets/i18n#lang_fr/strings.bin",
		"dex/classes.dex",
		"lib/x86/liba.so",
	} {
		if !contains(got, want) {
			t.Errorf("system APK lacks %q; has %v", want, got)
		}
	}
	if contains(got, "assets/i18n#lang_ru/strings.bin") {
		t.Errorf("system APK contains unsupported language ru")
	}

	if len(result.AdditionalSplits) != 1 {
		t.Fatalf("got %d additional splits, want 1 (ru)", len(result.AdditionalSplits))
	}
	ru := result.AdditionalSplits[0]
	if langs := ru.ApkTargeting.GetLanguageTargeting().GetValue(); !reflect.DeepEqual(langs, []string{"ru"}) {
		t.Errorf("additional split languages = %v, want [ru]", langs)
	}
	if id, _ := ru.Manifest.Attribute("", "split"); id != "config.ru" {
		t.Errorf("additional split id = %q, want config.ru", id)
	}
	if !reflect.DeepEqual(result.FusedModules, []string{"base"}) {
		t.Errorf("fused modules = %v, want [base]", result.FusedModules)
	}
}

func TestGenerateSystemApksNonFusedModule(t *testing.T) {
	b := testBundle(
		testModule("base", "dex/classes.dex", "lib/x86/liba.so"),
		testModule("feature", "assets/data.bin"),
	)
	result, err := GenerateSystemApks(b, enFrDevice(), map[string]bool{"base": true}, testOptions())
	if err != nil {
		t.Fatalf("GenerateSystemApks() failed: %v", err)
	}
	if contains(entryPaths(result.SystemApk), "assets/data.bin") {
		t.Errorf("non-fused module content fused into the system APK")
	}
	found := false
	for _, s := range result.AdditionalSplits {
		if contains(entryPaths(s), "assets/data.bin") {
			found = true
			if id, _ := s.Manifest.Attribute("", "split"); id != "feature" {
				t.Errorf("non-fused master split id = %q, want feature", id)
			}
		}
	}
	if !found {
		t.Errorf("non-fused module missing from additional splits")
	}
}

func TestGenerateSystemApksUncompressDirectives(t *testing.T) {
	opts := testOptions()
	opts.Optimizations.UncompressNativeLibraries = true
	opts.Optimizations.UncompressDexFiles = true
	result, err := GenerateSystemApks(languageAssetBundle(), enFrDevice(),
		map[string]bool{"base": true}, opts)
	if err != nil {
		t.Fatalf("GenerateSystemApks() failed: %v", err)
	}
	for _, e := range result.SystemApk.Entries {
		if strings.HasSuffix(e.Path, ".so") && !e.ForceUncompressed {
			t.Errorf("%q not force-uncompressed", e.Path)
		}
		if strings.HasPrefix(e.Path, "dex/") && !e.ForceUncompressed {
			t.Errorf("%q not force-uncompressed", e.Path)
		}
	}
}

func TestGenerateSystemApksRequiresDeviceSpec(t *testing.T) {
	_, err := GenerateSystemApks(languageAssetBundle(), nil, nil, testOptions())
	if ue := bundle.AsUserError(err); ue == nil || ue.Kind != bundle.InvalidCommand {
		t.Errorf("GenerateSystemApks(nil spec) = %v, want INVALID_COMMAND", err)
	}
}

func TestLanguageRegrouperConflicts(t *testing.T) {
	lr := newLanguageRegrouper()
	a := &splitter.ModuleSplit{
		ModuleName:   "base",
		Manifest:     testManifest("com.example.app"),
		ApkTargeting: &bp.ApkTargeting{LanguageTargeting: &bp.LanguageTargeting{Value: []string{"ru"}}},
		Entries:      []bundle.Entry{{Path: "assets/i18n#lang_ru/a.bin"}},
	}
	// Identical second assignment: first wins.
	if err := lr.add("ru", a); err != nil {
		t.Fatalf("add() failed: %v", err)
	}
	if err := lr.add("ru", a); err != nil {
		t.Errorf("identical re-assignment failed: %v", err)
	}
	// Different second assignment for the same (module, language): error.
	conflicting := &splitter.ModuleSplit{
		ModuleName:   "base",
		Manifest:     testManifest("com.example.app"),
		ApkTargeting: &bp.ApkTargeting{LanguageTargeting: &bp.LanguageTargeting{Value: []string{"ru"}}},
		Entries: []bundle.Entry{
			{Path: "assets/i18n#lang_ru/a.bin"},
			{Path: "assets/i18n#lang_ru/b.bin"},
		},
	}
	if err := lr.add("ru", conflicting); bundle.AsUserError(err) == nil {
		t.Errorf("conflicting re-assignment succeeded, want error")
	}
}

func TestSuffixManager(t *testing.T) {
	sm := NewSuffixManager()
	s := &splitter.ModuleSplit{
		ModuleName: "feature",
		ApkTargeting: &bp.ApkTargeting{
			LanguageTargeting: &bp.LanguageTargeting{Value: []string{"fr"}},
		},
	}
	first := sm.Suffix(s)
	if first != "fr" {
		t.Errorf("Suffix() = %q, want fr", first)
	}
	// Stable for the same split.
	if again := sm.Suffix(s); again != first {
		t.Errorf("Suffix() changed between calls: %q then %q", first, again)
	}
	// A different targeting with a colliding suffix gets a tiebreaker.
	other := &splitter.ModuleSplit{
		ModuleName: "feature",
		ApkTargeting: &bp.ApkTargeting{
			LanguageTargeting: &bp.LanguageTargeting{Value: []string{"fr"}, Alternatives: []string{"en"}},
		},
	}
	if got := sm.Suffix(other); got != "fr_2" {
		t.Errorf("colliding Suffix() = %q, want fr_2", got)
	}
}

func tableWithEntry(pkgId uint32, pkgName string, cv *bp.ConfigValue) *bp.ResourceTable {
	return &bp.ResourceTable{Package: []*bp.Package{{
		PackageId:   &bp.PackageId{Id: pkgId},
		PackageName: pkgName,
		Type: []*bp.Type{{
			TypeId: &bp.TypeId{Id: 1},
			Name:   "drawable",
			Entry: []*bp.Entry{{
				EntryId:     &bp.EntryId{Id: 1},
				Name:        "bg",
				ConfigValue: []*bp.ConfigValue{cv},
			}},
		}},
	}}}
}

func TestMergeResourceTablesDistinctPackages(t *testing.T) {
	a := tableWithEntry(0x7F, "com.example.app", &bp.ConfigValue{
		Value: &bp.Value{Item: &bp.Item{Str: "base"}},
	})
	b := tableWithEntry(0x80, "com.example.feature", &bp.ConfigValue{
		Value: &bp.Value{Item: &bp.Item{Str: "feature"}},
	})
	merged, err := mergeResourceTables(a, b)
	if err != nil {
		t.Fatalf("mergeResourceTables() failed: %v", err)
	}
	if len(merged.Package) != 2 {
		t.Errorf("got %d packages, want 2", len(merged.Package))
	}
}

// A module's master and density splits carry disjoint slices of the same
// package; fusing them unions the entries' config values.
func TestMergeResourceTablesSamePackageMergesEntries(t *testing.T) {
	a := tableWithEntry(0x7F, "com.example.app", &bp.ConfigValue{
		Value: &bp.Value{Item: &bp.Item{Str: "default"}},
	})
	b := tableWithEntry(0x7F, "com.example.app", &bp.ConfigValue{
		Config: &bp.Configuration{Density: 240},
		Value:  &bp.Value{Item: &bp.Item{Str: "hdpi"}},
	})
	merged, err := mergeResourceTables(a, b)
	if err != nil {
		t.Fatalf("mergeResourceTables() failed: %v", err)
	}
	if len(merged.Package) != 1 {
		t.Fatalf("got %d packages, want 1", len(merged.Package))
	}
	cvs := merged.Package[0].Type[0].Entry[0].ConfigValue
	if len(cvs) != 2 {
		t.Errorf("merged entry has %d config values, want 2", len(cvs))
	}
	// The inputs are untouched.
	if len(a.Package[0].Type[0].Entry[0].ConfigValue) != 1 {
		t.Errorf("merge mutated its input table")
	}
}

func TestMergeResourceTablesRemapsCollidingPackage(t *testing.T) {
	a := tableWithEntry(0x7F, "com.example.app", &bp.ConfigValue{
		Value: &bp.Value{Item: &bp.Item{Str: "base"}},
	})
	b := tableWithEntry(0x7F, "com.example.feature", &bp.ConfigValue{
		Value: &bp.Value{Item: &bp.Item{
			Ref: &bp.Reference{Id: 0x7F011001, Name: "drawable/other"},
		}},
	})
	// A framework reference rides along and must not be touched.
	b.Package[0].Type[0].Entry = append(b.Package[0].Type[0].Entry, &bp.Entry{
		EntryId: &bp.EntryId{Id: 2},
		Name:    "framework_ref",
		ConfigValue: []*bp.ConfigValue{{
			Value: &bp.Value{Item: &bp.Item{
				Ref: &bp.Reference{Id: 0x01051234},
			}},
		}},
	})

	merged, err := mergeResourceTables(a, b)
	if err != nil {
		t.Fatalf("mergeResourceTables() failed: %v", err)
	}
	if len(merged.Package) != 2 {
		t.Fatalf("got %d packages, want 2", len(merged.Package))
	}
	moved := merged.Package[1]
	if got := moved.GetPackageId().GetId(); got != 0x80 {
		t.Errorf("moved package id = %#x, want 0x80", got)
	}
	if got := moved.Type[0].Entry[0].ConfigValue[0].Value.Item.Ref.Id; got != 0x80011001 {
		t.Errorf("internal reference = %#x, want 0x80011001", got)
	}
	if got := moved.Type[0].Entry[1].ConfigValue[0].Value.Item.Ref.Id; got != 0x01051234 {
		t.Errorf("framework reference = %#x, want untouched 0x01051234", got)
	}
	// The original package keeps its id and references.
	if got := b.Package[0].GetPackageId().GetId(); got != 0x7F {
		t.Errorf("merge mutated its input package id: %#x", got)
	}
}

func TestMergeResourceTablesConflictingDefinition(t *testing.T) {
	a := tableWithEntry(0x7F, "com.example.app", &bp.ConfigValue{
		Value: &bp.Value{Item: &bp.Item{Str: "one"}},
	})
	b := tableWithEntry(0x7F, "com.example.app", &bp.ConfigValue{
		Value: &bp.Value{Item: &bp.Item{Str: "two"}},
	})
	if _, err := mergeResourceTables(a, b); err == nil {
		t.Errorf("conflicting resource definitions fused without error")
	}
}

func TestFuseSplitsDuplicatesFirstWins(t *testing.T) {
	b := testBundle(testModule("base"), testModule("feature"))
	var logged bytes.Buffer
	a := &splitter.ModuleSplit{
		ModuleName:   "base",
		MasterSplit:  true,
		Manifest:     testManifest("com.example.app"),
		ApkTargeting: &bp.ApkTargeting{},
		Entries:      []bundle.Entry{{Path: "root/shared.txt", Content: bundle.BufferSource([]byte("base"))}},
	}
	c := &splitter.ModuleSplit{
		ModuleName:   "feature",
		MasterSplit:  true,
		Manifest:     testManifest("com.example.app"),
		ApkTargeting: &bp.ApkTargeting{},
		Entries:      []bundle.Entry{{Path: "root/shared.txt", Content: bundle.BufferSource([]byte("feature"))}},
	}
	fused, err := FuseSplits(b, []*splitter.ModuleSplit{c, a}, log.New(&logged, "", 0))
	if err != nil {
		t.Fatalf("FuseSplits() failed: %v", err)
	}
	if len(fused.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(fused.Entries))
	}
	buf, _ := fused.Entries[0].Content.Bytes()
	if string(buf) != "base" {
		t.Errorf("fused entry contents = %q, want the base module's (base first)", buf)
	}
	if !strings.Contains(logged.String(), "root/shared.txt") {
		t.Errorf("duplicate not logged: %q", logged.String())
	}
}
