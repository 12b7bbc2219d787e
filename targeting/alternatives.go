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

package targeting

import (
	"sort"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
)

// PopulateAlternativeVariantTargeting fills the alternatives of every
// variant with the sibling values of the others, per dimension. Within the
// collection each dimension must be targeted by every variant or by none.
// The on-device split picker relies on the alternatives to choose among
// siblings.
func PopulateAlternativeVariantTargeting(variants []*bp.VariantTargeting) error {
	if err := PopulateSdkAlternatives(variants); err != nil {
		return err
	}
	if err := populateVariantAbiAlternatives(variants); err != nil {
		return err
	}
	return populateVariantDensityAlternatives(variants)
}

// PopulateSdkAlternatives fills only the SDK alternatives; split and
// standalone variants share the SDK dimension even though only standalones
// target ABI and density.
func PopulateSdkAlternatives(variants []*bp.VariantTargeting) error {
	targeted := 0
	universe := map[int32]bool{}
	for _, v := range variants {
		if len(v.GetSdkVersionTargeting().GetValue()) == 0 {
			continue
		}
		targeted++
		for _, sdk := range v.SdkVersionTargeting.Value {
			universe[sdk.GetMin().GetValue()] = true
		}
	}
	if targeted == 0 {
		return nil
	}
	if targeted != len(variants) {
		return bundle.InternalErrorf("SDK_VERSION is targeted by %d of %d variants; it must be all or none",
			targeted, len(variants))
	}
	for _, v := range variants {
		own := map[int32]bool{}
		for _, sdk := range v.SdkVersionTargeting.Value {
			own[sdk.GetMin().GetValue()] = true
		}
		var alts []int32
		for sdk := range universe {
			if !own[sdk] {
				alts = append(alts, sdk)
			}
		}
		sort.Slice(alts, func(i, j int) bool { return alts[i] < alts[j] })
		v.SdkVersionTargeting.Alternatives = nil
		for _, sdk := range alts {
			v.SdkVersionTargeting.Alternatives = append(v.SdkVersionTargeting.Alternatives,
				&bp.SdkVersion{Min: &bp.Int32Value{Value: sdk}})
		}
	}
	return nil
}

func populateVariantAbiAlternatives(variants []*bp.VariantTargeting) error {
	targeted := 0
	universe := map[bp.Abi_AbiAlias]bool{}
	for _, v := range variants {
		if len(v.GetAbiTargeting().GetValue()) == 0 {
			continue
		}
		targeted++
		for _, abi := range v.AbiTargeting.Value {
			universe[abi.Alias] = true
		}
	}
	if targeted == 0 {
		return nil
	}
	if targeted != len(variants) {
		return bundle.InternalErrorf("ABI is targeted by %d of %d variants; it must be all or none",
			targeted, len(variants))
	}
	for _, v := range variants {
		own := map[bp.Abi_AbiAlias]bool{}
		for _, abi := range v.AbiTargeting.Value {
			own[abi.Alias] = true
		}
		var alts []bp.Abi_AbiAlias
		for abi := range universe {
			if !own[abi] {
				alts = append(alts, abi)
			}
		}
		SortAbis(alts)
		v.AbiTargeting.Alternatives = nil
		for _, abi := range alts {
			v.AbiTargeting.Alternatives = append(v.AbiTargeting.Alternatives, &bp.Abi{Alias: abi})
		}
	}
	return nil
}

func populateVariantDensityAlternatives(variants []*bp.VariantTargeting) error {
	targeted := 0
	universe := map[bp.ScreenDensity_DensityAlias]bool{}
	for _, v := range variants {
		if len(v.GetScreenDensityTargeting().GetValue()) == 0 {
			continue
		}
		targeted++
		for _, d := range v.ScreenDensityTargeting.Value {
			universe[d.DensityAlias] = true
		}
	}
	if targeted == 0 {
		return nil
	}
	if targeted != len(variants) {
		return bundle.InternalErrorf("SCREEN_DENSITY is targeted by %d of %d variants; it must be all or none",
			targeted, len(variants))
	}
	for _, v := range variants {
		own := map[bp.ScreenDensity_DensityAlias]bool{}
		for _, d := range v.ScreenDensityTargeting.Value {
			own[d.DensityAlias] = true
		}
		var alts []bp.ScreenDensity_DensityAlias
		for _, d := range DensityBuckets {
			if universe[d] && !own[d] {
				alts = append(alts, d)
			}
		}
		v.ScreenDensityTargeting.Alternatives = nil
		for _, d := range alts {
			v.ScreenDensityTargeting.Alternatives = append(v.ScreenDensityTargeting.Alternatives,
				&bp.ScreenDensity{DensityAlias: d})
		}
	}
	return nil
}
