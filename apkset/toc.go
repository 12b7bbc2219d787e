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

package apkset

import (
	"sort"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/shards"
	"android/bundletool/splitter"
	"android/bundletool/targeting"
)

// Apk is one serialized APK of the set.
type Apk struct {
	Path string
	Data []byte
}

// Set is the assembled output: the APKs plus their table of contents.
type Set struct {
	Apks []Apk
	Toc  *bp.BuildApksResult
}

// Builder serializes splits and assembles the table of contents.
type Builder struct {
	Version    string
	Serializer Serializer
}

func (bld *Builder) serializer() Serializer {
	if bld.Serializer != nil {
		return bld.Serializer
	}
	return ProtoApkSerializer{}
}

// BuildSplits assembles the split-APK variant of a bundle: one variant
// whose apk sets group the splits by module, in bundle order.
func (bld *Builder) BuildSplits(b *bundle.Bundle, splits []*splitter.ModuleSplit) (*Set, error) {
	set := &Set{Toc: &bp.BuildApksResult{Bundletool: &bp.Bundletool{Version: bld.Version}}}

	byModule := map[string][]*splitter.ModuleSplit{}
	for _, s := range splits {
		byModule[s.ModuleName] = append(byModule[s.ModuleName], s)
	}

	variant := &bp.Variant{
		Targeting: &bp.VariantTargeting{
			SdkVersionTargeting: targeting.SdkVersionTargetingFor(splitter.AndroidL),
		},
	}
	for _, m := range b.Modules {
		moduleSplits := byModule[m.Name]
		if len(moduleSplits) == 0 {
			continue
		}
		apkSet := &bp.ApkSet{
			ModuleMetadata: &bp.ModuleMetadata{
				Name:         m.Name,
				Targeting:    m.Manifest.ModuleConditions(),
				DeliveryType: m.Delivery.Proto(),
			},
		}
		for _, s := range moduleSplits {
			desc, err := bld.serializeSplit(set, s, false)
			if err != nil {
				return nil, err
			}
			apkSet.ApkDescription = append(apkSet.ApkDescription, desc)
		}
		variant.ApkSet = append(variant.ApkSet, apkSet)
	}
	set.Toc.Variant = []*bp.Variant{variant}
	return set, nil
}

// BuildStandalones assembles one variant per standalone shard. With
// universal set, the single shard is emitted as universal.apk.
func (bld *Builder) BuildStandalones(b *bundle.Bundle, shardSplits []*splitter.ModuleSplit, universal bool) (*Set, error) {
	set := &Set{Toc: &bp.BuildApksResult{Bundletool: &bp.Bundletool{Version: bld.Version}}}

	var moduleNames []string
	for _, m := range b.Modules {
		moduleNames = append(moduleNames, m.Name)
	}
	sort.Strings(moduleNames)

	var variantTargetings []*bp.VariantTargeting
	for _, s := range shardSplits {
		variantTargetings = append(variantTargetings, s.VariantTargeting)
	}
	if err := targeting.PopulateAlternativeVariantTargeting(variantTargetings); err != nil {
		return nil, err
	}

	ordered := append([]*splitter.ModuleSplit(nil), shardSplits...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return targeting.CompareVariants(ordered[i].VariantTargeting, ordered[j].VariantTargeting) < 0
	})

	for _, s := range ordered {
		data, err := bld.serializer().Serialize(s)
		if err != nil {
			return nil, err
		}
		path := apkPath(s, universal)
		set.Apks = append(set.Apks, Apk{Path: path, Data: data})
		set.Toc.Variant = append(set.Toc.Variant, &bp.Variant{
			Targeting: s.VariantTargeting,
			ApkSet: []*bp.ApkSet{{
				ModuleMetadata: &bp.ModuleMetadata{
					Name:         bundle.BaseModuleName,
					DeliveryType: bp.DeliveryType_INSTALL_TIME,
				},
				ApkDescription: []*bp.ApkDescription{{
					Targeting: s.ApkTargeting,
					Path:      path,
					StandaloneApkMetadata: &bp.StandaloneApkMetadata{
						FusedModuleName: moduleNames,
					},
				}},
			}},
		})
	}
	return set, nil
}

// BuildSystem assembles the system variant: the fused system APK plus its
// additional splits.
func (bld *Builder) BuildSystem(b *bundle.Bundle, result *shards.SystemResult) (*Set, error) {
	set := &Set{Toc: &bp.BuildApksResult{Bundletool: &bp.Bundletool{Version: bld.Version}}}

	systemData, err := bld.serializer().Serialize(result.SystemApk)
	if err != nil {
		return nil, err
	}
	systemPath := apkPath(result.SystemApk, false)
	set.Apks = append(set.Apks, Apk{Path: systemPath, Data: systemData})

	variant := &bp.Variant{
		Targeting: result.SystemApk.VariantTargeting,
		ApkSet: []*bp.ApkSet{{
			ModuleMetadata: &bp.ModuleMetadata{
				Name:         bundle.BaseModuleName,
				DeliveryType: bp.DeliveryType_INSTALL_TIME,
			},
			ApkDescription: []*bp.ApkDescription{{
				Targeting: result.SystemApk.ApkTargeting,
				Path:      systemPath,
				SystemApkMetadata: &bp.SystemApkMetadata{
					FusedModuleName: result.FusedModules,
				},
			}},
		}},
	}
	for _, s := range result.AdditionalSplits {
		desc, err := bld.serializeSplit(set, s, false)
		if err != nil {
			return nil, err
		}
		variant.ApkSet[0].ApkDescription = append(variant.ApkSet[0].ApkDescription, desc)
	}
	set.Toc.Variant = []*bp.Variant{variant}
	return set, nil
}

func (bld *Builder) serializeSplit(set *Set, s *splitter.ModuleSplit, universal bool) (*bp.ApkDescription, error) {
	data, err := bld.serializer().Serialize(s)
	if err != nil {
		return nil, err
	}
	path := apkPath(s, universal)
	set.Apks = append(set.Apks, Apk{Path: path, Data: data})
	return &bp.ApkDescription{
		Targeting: s.ApkTargeting,
		Path:      path,
		SplitApkMetadata: &bp.SplitApkMetadata{
			SplitId:       s.SplitId(),
			IsMasterSplit: s.MasterSplit,
		},
	}, nil
}

// Merge combines sets into one, renumbering variants and filling the SDK
// alternatives across all of them. Split and standalone variants share the
// SDK dimension; ABI and density alternatives stay within the standalone
// variants where they were populated.
func Merge(sets ...*Set) (*Set, error) {
	out := &Set{Toc: &bp.BuildApksResult{}}
	var variantTargetings []*bp.VariantTargeting
	for _, s := range sets {
		if s == nil {
			continue
		}
		if out.Toc.Bundletool == nil {
			out.Toc.Bundletool = s.Toc.GetBundletool()
		}
		out.Apks = append(out.Apks, s.Apks...)
		for _, v := range s.Toc.GetVariant() {
			out.Toc.Variant = append(out.Toc.Variant, v)
			variantTargetings = append(variantTargetings, v.Targeting)
		}
	}
	if err := targeting.PopulateSdkAlternatives(variantTargetings); err != nil {
		return nil, err
	}
	for i, v := range out.Toc.Variant {
		v.VariantNumber = uint32(i)
	}
	return out, nil
}
