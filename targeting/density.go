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
	bp "android/bundletool/bundle_proto"
)

// DensityBuckets lists the density splits produced by the density splitter,
// in ascending dpi order.
var DensityBuckets = []bp.ScreenDensity_DensityAlias{
	bp.ScreenDensity_LDPI,
	bp.ScreenDensity_MDPI,
	bp.ScreenDensity_TVDPI,
	bp.ScreenDensity_HDPI,
	bp.ScreenDensity_XHDPI,
	bp.ScreenDensity_XXHDPI,
	bp.ScreenDensity_XXXHDPI,
}

// densityDpi is the representative dpi of each bucket.
var densityDpi = map[bp.ScreenDensity_DensityAlias]uint32{
	bp.ScreenDensity_LDPI:    120,
	bp.ScreenDensity_MDPI:    160,
	bp.ScreenDensity_TVDPI:   213,
	bp.ScreenDensity_HDPI:    240,
	bp.ScreenDensity_XHDPI:   320,
	bp.ScreenDensity_XXHDPI:  480,
	bp.ScreenDensity_XXXHDPI: 640,
}

// DensityDpi returns the representative dpi of a bucket, 0 if unknown.
func DensityDpi(alias bp.ScreenDensity_DensityAlias) uint32 {
	return densityDpi[alias]
}

// BucketForDpi assigns a concrete resource dpi to the bucket that serves it:
// the smallest bucket whose representative dpi is at least the config's.
func BucketForDpi(dpi uint32) bp.ScreenDensity_DensityAlias {
	for _, alias := range DensityBuckets {
		if dpi <= densityDpi[alias] {
			return alias
		}
	}
	return bp.ScreenDensity_XXXHDPI
}

// DensityRank orders densities ascending for the variant comparator;
// a missing density ranks lowest.
func DensityRank(t *bp.ScreenDensityTargeting) uint32 {
	values := t.GetValue()
	if len(values) == 0 {
		return 0
	}
	v := values[0]
	if v.DensityDpi != 0 {
		return v.DensityDpi
	}
	return densityDpi[v.DensityAlias]
}
