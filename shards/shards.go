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

// Package shards collapses module splits into single-file APKs: standalone
// APKs for devices without split support (one per ABI x density cell) and
// pre-installed system APKs with their additional language splits.
package shards

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/optimizations"
	"android/bundletool/splitter"
	"android/bundletool/targeting"
)

// Options configures shard generation.
type Options struct {
	Optimizations optimizations.ApkOptimizations
	Logger        *log.Logger
}

// shardCell is one cell of the ABI x density grid. Zero values mean the
// dimension is not sharded.
type shardCell struct {
	abi     bp.Abi_AbiAlias
	hasAbi  bool
	density bp.ScreenDensity_DensityAlias
}

// GenerateStandalones produces one standalone APK per cell of the enabled
// shard dimensions. With no shard dimensions (universal mode) a single
// fused APK is produced.
func GenerateStandalones(b *bundle.Bundle, opts Options) ([]*splitter.ModuleSplit, error) {
	universal := len(opts.Optimizations.StandaloneDimensions) == 0

	modules := installTimeModules(b)
	if len(modules) == 0 {
		return nil, bundle.Errorf(bundle.InvalidBundle, "bundle has no install-time modules to fuse")
	}

	if opts.Optimizations.Strip64BitLibraries && !universal {
		modules = strip64BitLibraries(modules, opts.Logger)
	}

	cells := shardCells(modules, opts.Optimizations)

	// Standalone shards split only by the shard dimensions; language never
	// splits out of a standalone.
	splitOpts := splitter.Options{
		Optimizations: optimizations.ApkOptimizations{
			SplitDimensions:  opts.Optimizations.StandaloneDimensions,
			SuffixStrippings: opts.Optimizations.SuffixStrippings,
		},
		Logger: opts.Logger,
	}
	var allSplits []*splitter.ModuleSplit
	for _, m := range modules {
		splits, err := splitter.SplitModule(m, splitOpts)
		if err != nil {
			return nil, err
		}
		allSplits = append(allSplits, splits...)
	}

	var out []*splitter.ModuleSplit
	for _, cell := range cells {
		shard, err := fuseShard(b, allSplits, cell, opts)
		if err != nil {
			return nil, err
		}
		if universal {
			filtered, err := filterUniversalAssets(shard, opts.Optimizations)
			if err != nil {
				return nil, err
			}
			shard = filtered
		}
		out = append(out, shard)
	}
	return out, nil
}

// installTimeModules lists the modules fused into standalone APKs: every
// module that is not on-demand, except asset modules not delivered at
// install time.
func installTimeModules(b *bundle.Bundle) []*bundle.Module {
	var out []*bundle.Module
	for _, m := range b.Modules {
		if m.Type == bundle.AssetModule && m.Delivery != bundle.InstallTimeDelivery {
			continue
		}
		if m.Delivery == bundle.OnDemandDelivery {
			continue
		}
		out = append(out, m)
	}
	return out
}

// strip64BitLibraries removes 64-bit native directories when 32-bit
// equivalents exist, shrinking legacy shards.
func strip64BitLibraries(modules []*bundle.Module, logger *log.Logger) []*bundle.Module {
	has32 := false
	for _, m := range modules {
		for _, abi := range moduleAbis(m) {
			if !targeting.Is64Bit(abi) {
				has32 = true
			}
		}
	}
	if !has32 {
		return modules
	}
	var out []*bundle.Module
	for _, m := range modules {
		var entries []bundle.Entry
		dropped := false
		for _, e := range m.Entries() {
			if dir, ok := abiOfLibPath(e.Path); ok && targeting.Is64Bit(dir) {
				dropped = true
				continue
			}
			entries = append(entries, e)
		}
		if !dropped {
			out = append(out, m)
			continue
		}
		if logger != nil {
			logger.Printf("module %q: stripping 64-bit native libraries from standalone shards", m.Name)
		}
		nm := bundle.NewModule(m.Name, m.Manifest, entries)
		nm.ResourceTable = m.ResourceTable
		nm.Assets = m.Assets
		nm.NativeLibs = strippedNativeConfig(m.NativeLibs)
		nm.ApexImages = m.ApexImages
		out = append(out, nm)
	}
	return out
}

func strippedNativeConfig(libs *bp.NativeLibraries) *bp.NativeLibraries {
	if libs == nil {
		return nil
	}
	kept := &bp.NativeLibraries{}
	for _, d := range libs.Directory {
		if targeting.Is64Bit(d.GetTargeting().GetAbi().GetAlias()) {
			continue
		}
		kept.Directory = append(kept.Directory, d)
	}
	return kept
}

func abiOfLibPath(path string) (bp.Abi_AbiAlias, bool) {
	if !strings.HasPrefix(path, bundle.LibDirectory+"/") {
		return 0, false
	}
	parts := strings.SplitN(path, "/", 3)
	if len(parts) < 3 {
		return 0, false
	}
	return targeting.AbiFromDirName(parts[1])
}

func moduleAbis(m *bundle.Module) []bp.Abi_AbiAlias {
	seen := map[bp.Abi_AbiAlias]bool{}
	var out []bp.Abi_AbiAlias
	for _, e := range m.Entries() {
		if abi, ok := abiOfLibPath(e.Path); ok && !seen[abi] {
			seen[abi] = true
			out = append(out, abi)
		}
	}
	targeting.SortAbis(out)
	return out
}

// shardCells computes the ABI x density cross product of the values present
// in the bundle. A dimension with no content, or disabled, contributes a
// single unsharded cell.
func shardCells(modules []*bundle.Module, opt optimizations.ApkOptimizations) []shardCell {
	var abis []bp.Abi_AbiAlias
	if opt.StandaloneDimensions.Has(targeting.Abi) {
		seen := map[bp.Abi_AbiAlias]bool{}
		for _, m := range modules {
			for _, abi := range moduleAbis(m) {
				if !seen[abi] {
					seen[abi] = true
					abis = append(abis, abi)
				}
			}
		}
		targeting.SortAbis(abis)
	}
	var densities []bp.ScreenDensity_DensityAlias
	if opt.StandaloneDimensions.Has(targeting.ScreenDensity) {
		densities = presentDensityBuckets(modules)
	}

	var cells []shardCell
	if len(abis) == 0 {
		abis = []bp.Abi_AbiAlias{bp.Abi_UNSPECIFIED_CPU_ARCHITECTURE}
	}
	for _, abi := range abis {
		if len(densities) == 0 {
			cells = append(cells, shardCell{
				abi:    abi,
				hasAbi: abi != bp.Abi_UNSPECIFIED_CPU_ARCHITECTURE,
			})
			continue
		}
		for _, d := range densities {
			cells = append(cells, shardCell{
				abi:     abi,
				hasAbi:  abi != bp.Abi_UNSPECIFIED_CPU_ARCHITECTURE,
				density: d,
			})
		}
	}
	return cells
}

// presentDensityBuckets lists the density buckets the bundle's resources
// actually populate, in ascending order. Sharding only those buckets keeps
// every shard complete; devices at other densities pick the nearest shard
// through the alternatives.
func presentDensityBuckets(modules []*bundle.Module) []bp.ScreenDensity_DensityAlias {
	present := map[bp.ScreenDensity_DensityAlias]bool{}
	for _, m := range modules {
		for _, pkg := range m.ResourceTable.GetPackage() {
			for _, typ := range pkg.GetType() {
				for _, entry := range typ.GetEntry() {
					for _, cv := range entry.GetConfigValue() {
						d := cv.GetConfig().GetDensity()
						if d != 0 && d != bp.DensityNone && d != bp.DensityAny {
							present[targeting.BucketForDpi(d)] = true
						}
					}
				}
			}
		}
	}
	var out []bp.ScreenDensity_DensityAlias
	for _, alias := range targeting.DensityBuckets {
		if present[alias] {
			out = append(out, alias)
		}
	}
	return out
}

// splitMatchesCell reports whether a split belongs in a shard cell: it is
// dimension-agnostic in ABI/density or matches the cell's values.
func splitMatchesCell(s *splitter.ModuleSplit, cell shardCell) bool {
	if abis := s.ApkTargeting.GetAbiTargeting().GetValue(); len(abis) > 0 {
		if !cell.hasAbi || abis[0].Alias != cell.abi {
			return false
		}
	}
	if s.ApkTargeting.GetSanitizerTargeting() != nil &&
		len(s.ApkTargeting.GetSanitizerTargeting().GetValue()) > 0 {
		// Sanitizer splits never fuse into legacy shards.
		return false
	}
	if densities := s.ApkTargeting.GetScreenDensityTargeting().GetValue(); len(densities) > 0 {
		if cell.density == bp.ScreenDensity_DENSITY_UNSPECIFIED ||
			densities[0].DensityAlias != cell.density {
			return false
		}
	}
	return true
}

// fuseShard collapses the matching splits of every module into one
// standalone split for the cell.
func fuseShard(b *bundle.Bundle, allSplits []*splitter.ModuleSplit, cell shardCell,
	opts Options) (*splitter.ModuleSplit, error) {

	var matching []*splitter.ModuleSplit
	for _, s := range allSplits {
		if splitMatchesCell(s, cell) {
			matching = append(matching, s)
		}
	}

	fused, err := FuseSplits(b, matching, opts.Logger)
	if err != nil {
		return nil, err
	}
	fused.Type = splitter.StandaloneApk
	fused.MasterSplit = true

	variant := &bp.VariantTargeting{
		SdkVersionTargeting: targeting.SdkVersionTargetingFor(1),
	}
	apkTargeting := &bp.ApkTargeting{}
	if cell.hasAbi {
		variant.AbiTargeting = &bp.AbiTargeting{Value: []*bp.Abi{{Alias: cell.abi}}}
		apkTargeting.AbiTargeting = &bp.AbiTargeting{Value: []*bp.Abi{{Alias: cell.abi}}}
	}
	if cell.density != bp.ScreenDensity_DENSITY_UNSPECIFIED {
		variant.ScreenDensityTargeting = &bp.ScreenDensityTargeting{
			Value: []*bp.ScreenDensity{{DensityAlias: cell.density}},
		}
		apkTargeting.ScreenDensityTargeting = &bp.ScreenDensityTargeting{
			Value: []*bp.ScreenDensity{{DensityAlias: cell.density}},
		}
	}
	fused.VariantTargeting = variant
	fused.ApkTargeting = apkTargeting

	return fused.RemoveSplitName(), nil
}

// FuseSplits merges splits of one or more modules into a single split. The
// base module's manifest carries over; feature dex files are renumbered
// after the base's. Duplicate paths keep the first occurrence.
func FuseSplits(b *bundle.Bundle, splits []*splitter.ModuleSplit, logger *log.Logger) (*splitter.ModuleSplit, error) {
	if len(splits) == 0 {
		return nil, bundle.InternalErrorf("no splits to fuse")
	}

	// Base first, then the other modules in bundle order, masters before
	// dimension splits, so entry precedence is deterministic.
	order := map[string]int{}
	for i, m := range b.Modules {
		order[m.Name] = i
		if m.IsBase() {
			order[m.Name] = -1
		}
	}
	sorted := append([]*splitter.ModuleSplit(nil), splits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order[sorted[i].ModuleName] != order[sorted[j].ModuleName] {
			return order[sorted[i].ModuleName] < order[sorted[j].ModuleName]
		}
		return sorted[i].MasterSplit && !sorted[j].MasterSplit
	})

	fused := &splitter.ModuleSplit{
		ModuleName:   bundle.BaseModuleName,
		Type:         splitter.StandaloneApk,
		ApkTargeting: &bp.ApkTargeting{},
	}

	seen := map[string]bool{}
	nextDex := baseDexCount(sorted)
	var resourceTable *bp.ResourceTable
	for _, s := range sorted {
		if s.Manifest.Node != nil && fused.Manifest.Node == nil && s.ModuleName == bundle.BaseModuleName {
			fused.Manifest = s.Manifest
		}
		if s.ResourceTable != nil {
			merged, err := mergeResourceTables(resourceTable, s.ResourceTable)
			if err != nil {
				return nil, err
			}
			resourceTable = merged
		}
		isBase := s.ModuleName == bundle.BaseModuleName

		add := func(e bundle.Entry) {
			if seen[e.Path] {
				if logger != nil {
					logger.Printf("duplicate entry %q while fusing modules; keeping the first", e.Path)
				}
				return
			}
			seen[e.Path] = true
			fused.Entries = append(fused.Entries, e)
		}

		// Feature dex files follow the base's numbering, in their own
		// numeric order regardless of archive order.
		var dexEntries []bundle.Entry
		for _, e := range s.Entries {
			if strings.HasPrefix(e.Path, bundle.DexDirectory+"/") && !isBase {
				dexEntries = append(dexEntries, e)
				continue
			}
			add(e)
		}
		sort.SliceStable(dexEntries, func(i, j int) bool {
			return dexIndex(dexEntries[i].Path) < dexIndex(dexEntries[j].Path)
		})
		for _, e := range dexEntries {
			nextDex++
			e.Path = renumberedDexPath(nextDex)
			add(e)
		}
	}
	if fused.Manifest.Node == nil {
		// No base master matched the shard; fall back to any manifest.
		for _, s := range sorted {
			if s.Manifest.Node != nil {
				fused.Manifest = s.Manifest
				break
			}
		}
	}
	fused.ResourceTable = resourceTable
	return fused, nil
}

func baseDexCount(splits []*splitter.ModuleSplit) int {
	count := 0
	for _, s := range splits {
		if s.ModuleName != bundle.BaseModuleName {
			continue
		}
		for _, e := range s.Entries {
			if strings.HasPrefix(e.Path, bundle.DexDirectory+"/") && strings.HasSuffix(e.Path, ".dex") {
				count++
			}
		}
	}
	return count
}

// dexIndex parses the numeric suffix of a dex entry path; classes.dex is 1.
func dexIndex(path string) int {
	name := strings.TrimPrefix(path, bundle.DexDirectory+"/")
	name = strings.TrimSuffix(name, ".dex")
	name = strings.TrimPrefix(name, "classes")
	if name == "" {
		return 1
	}
	n := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 1
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func renumberedDexPath(index int) string {
	if index <= 1 {
		return "dex/classes.dex"
	}
	return fmt.Sprintf("dex/classes%d.dex", index)
}

// mergeResourceTables fuses the resource tables of the splits collapsing
// into one APK. Packages sharing an id and name merge their types and
// entries; a different package arriving under an occupied id moves to a
// free id, with its references remapped through the package-id byte.
func mergeResourceTables(a, b *bp.ResourceTable) (*bp.ResourceTable, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	out := &bp.ResourceTable{Package: append([]*bp.Package(nil), a.Package...)}
	for _, pkg := range b.Package {
		idx := packageIndexById(out, pkg.GetPackageId().GetId())
		switch {
		case idx < 0:
			out.Package = append(out.Package, pkg)
		case targeting.Equal(out.Package[idx], pkg):
			// The same package already fused from another split.
		case out.Package[idx].PackageName == pkg.PackageName:
			merged := clonePackage(out.Package[idx])
			if err := mergePackageInto(merged, pkg); err != nil {
				return nil, err
			}
			out.Package[idx] = merged
		default:
			// A different package landed on an occupied id; move it and
			// rewrite its internal references.
			out.Package = append(out.Package, reassignPackageId(pkg, freePackageId(out)))
		}
	}
	return out, nil
}

func packageIndexById(t *bp.ResourceTable, id uint32) int {
	for i, pkg := range t.Package {
		if pkg.GetPackageId().GetId() == id {
			return i
		}
	}
	return -1
}

func freePackageId(t *bp.ResourceTable) uint32 {
	used := map[uint32]bool{}
	for _, pkg := range t.Package {
		used[pkg.GetPackageId().GetId()] = true
	}
	id := uint32(0x7F)
	for used[id] {
		id++
	}
	return id
}

// clonePackage deep-copies a package through its wire form, so the merge
// never mutates a split's own table.
func clonePackage(pkg *bp.Package) *bp.Package {
	out := new(bp.Package)
	if err := out.Unmarshal(pkg.Marshal()); err != nil {
		panic(err)
	}
	return out
}

// reassignPackageId moves a package to a new id. References into the
// package itself follow it; framework references are never touched.
func reassignPackageId(pkg *bp.Package, newId uint32) *bp.Package {
	oldId := pkg.GetPackageId().GetId()
	out := clonePackage(pkg)
	out.PackageId = &bp.PackageId{Id: newId}
	for _, typ := range out.Type {
		for _, entry := range typ.Entry {
			for _, cv := range entry.ConfigValue {
				ref := cv.GetValue().GetItem().GetRef()
				if ref != nil && ref.Id>>24 == oldId {
					ref.Id = bp.RemapPackageId(ref.Id, newId)
				}
			}
		}
	}
	return out
}

// mergePackageInto unions src's types, entries and config values into dst.
// Two definitions of the same (type, entry, configuration) must agree.
func mergePackageInto(dst, src *bp.Package) error {
	for _, srcType := range src.Type {
		dstType := findType(dst, srcType)
		if dstType == nil {
			dst.Type = append(dst.Type, srcType)
			continue
		}
		for _, srcEntry := range srcType.Entry {
			dstEntry := findEntry(dstType, srcEntry.Name)
			if dstEntry == nil {
				dstType.Entry = append(dstType.Entry, srcEntry)
				continue
			}
			for _, cv := range srcEntry.ConfigValue {
				existing := findConfigValue(dstEntry, cv.GetConfig())
				if existing == nil {
					dstEntry.ConfigValue = append(dstEntry.ConfigValue, cv)
					continue
				}
				if !targeting.Equal(existing, cv) {
					return bundle.InternalErrorf(
						"conflicting definitions of resource %s/%s while fusing",
						srcType.Name, srcEntry.Name)
				}
			}
		}
	}
	return nil
}

func findType(pkg *bp.Package, typ *bp.Type) *bp.Type {
	for _, t := range pkg.Type {
		if t.Name == typ.Name {
			return t
		}
		if t.GetTypeId().GetId() != 0 && t.GetTypeId().GetId() == typ.GetTypeId().GetId() {
			return t
		}
	}
	return nil
}

func findEntry(typ *bp.Type, name string) *bp.Entry {
	for _, e := range typ.Entry {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func findConfigValue(entry *bp.Entry, cfg *bp.Configuration) *bp.ConfigValue {
	for _, cv := range entry.ConfigValue {
		if targeting.Equal(cv.GetConfig(), cfg) {
			return cv
		}
	}
	return nil
}

// filterUniversalAssets reduces suffixed asset directories to their default
// variant in universal mode.
func filterUniversalAssets(s *splitter.ModuleSplit, opt optimizations.ApkOptimizations) (*splitter.ModuleSplit, error) {
	entries := s.Entries
	var err error
	for dim, ss := range opt.SuffixStrippings {
		if ss.DefaultSuffix == "" {
			continue
		}
		entries, err = splitter.FilterToDefaultSuffix(entries, dim, ss.DefaultSuffix)
		if err != nil {
			return nil, err
		}
	}
	return s.WithEntries(entries), nil
}
