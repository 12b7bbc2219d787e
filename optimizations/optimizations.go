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

// Package optimizations computes the effective splitting and compression
// directives from version-pinned defaults, the developer's bundle config
// and command-line overrides.
package optimizations

import (
	"sort"

	"github.com/google/blueprint/proptools"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/targeting"
)

// SuffixStripping directs the post-split suffix removal of one dimension.
type SuffixStripping struct {
	Enabled       bool
	DefaultSuffix string
}

// ApkOptimizations is the effective set of directives the pipeline runs
// under.
type ApkOptimizations struct {
	SplitDimensions      targeting.DimensionSet
	StandaloneDimensions targeting.DimensionSet
	SuffixStrippings     map[targeting.Dimension]SuffixStripping

	UncompressNativeLibraries bool
	UncompressDexFiles        bool
	UncompressedDexTargetSdk  bp.UncompressDexFiles_UncompressedDexTargetSdk

	Strip64BitLibraries bool
}

// Universal returns the optimizations of universal APK mode: no splitting,
// no standalone dimensions, everything fused.
func Universal() ApkOptimizations {
	return ApkOptimizations{
		SplitDimensions:      targeting.NewDimensionSet(),
		StandaloneDimensions: targeting.NewDimensionSet(),
		SuffixStrippings:     map[targeting.Dimension]SuffixStripping{},
	}
}

// defaultsTable pins the default optimizations to the version of the tool
// that built the bundle. Entries only grow; the effective entry is the
// floor of the bundle's version.
var defaultsTable = []struct {
	since    Version
	defaults ApkOptimizations
}{
	{
		since: MustParseVersion("0.0.0"),
		defaults: ApkOptimizations{
			SplitDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity, targeting.Language),
			StandaloneDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity),
		},
	},
	{
		since: MustParseVersion("0.6.0"),
		defaults: ApkOptimizations{
			SplitDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity, targeting.Language),
			StandaloneDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity),
			UncompressNativeLibraries: true,
		},
	},
	{
		since: MustParseVersion("1.11.3"),
		defaults: ApkOptimizations{
			SplitDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity, targeting.Language),
			StandaloneDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity),
			UncompressNativeLibraries: true,
			UncompressDexFiles:        true,
		},
	},
	{
		since: MustParseVersion("1.13.2"),
		defaults: ApkOptimizations{
			SplitDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity, targeting.Language),
			StandaloneDimensions: targeting.NewDimensionSet(
				targeting.Abi, targeting.ScreenDensity),
			UncompressNativeLibraries: true,
			UncompressDexFiles:        true,
			UncompressedDexTargetSdk:  bp.UncompressDexFiles_SDK_31,
		},
	},
}

// DefaultsForVersion returns the defaults entry that was current at the
// given tool version (floor lookup).
func DefaultsForVersion(v Version) (ApkOptimizations, error) {
	idx := -1
	for i, e := range defaultsTable {
		if v.AtLeast(e.since) {
			idx = i
		}
	}
	if idx < 0 {
		return ApkOptimizations{}, bundle.InternalErrorf("no optimization defaults for version %s", v)
	}
	d := defaultsTable[idx].defaults
	return ApkOptimizations{
		SplitDimensions:           copySet(d.SplitDimensions),
		StandaloneDimensions:      copySet(d.StandaloneDimensions),
		SuffixStrippings:          map[targeting.Dimension]SuffixStripping{},
		UncompressNativeLibraries: d.UncompressNativeLibraries,
		UncompressDexFiles:        d.UncompressDexFiles,
		UncompressedDexTargetSdk:  d.UncompressedDexTargetSdk,
	}, nil
}

func copySet(s targeting.DimensionSet) targeting.DimensionSet {
	out := make(targeting.DimensionSet, len(s))
	for d, v := range s {
		out[d] = v
	}
	return out
}

// Override carries command-line overrides. A non-empty dimension list
// replaces the configured split dimensions entirely; the optional booleans
// take precedence only when set.
type Override struct {
	SplitDimensions           []targeting.Dimension
	UncompressNativeLibraries *bool
	UncompressDexFiles        *bool
}

// Merge computes the effective optimizations for a bundle.
func Merge(config *bp.BundleConfig, override Override) (ApkOptimizations, error) {
	versionString := config.GetBundletool().GetVersion()
	if versionString == "" {
		// Bundles built before the version field existed get the oldest
		// defaults.
		versionString = "0.0.0"
	}
	version, err := ParseVersion(versionString)
	if err != nil {
		return ApkOptimizations{}, bundle.Errorf(bundle.InvalidBundle, "%v", err)
	}
	opt, err := DefaultsForVersion(version)
	if err != nil {
		return ApkOptimizations{}, err
	}

	// Developer toggles add to or remove from the defaults.
	for _, dim := range config.GetOptimizations().GetSplitsConfig().GetSplitDimension() {
		d, ok := targeting.FromSplitDimension(dim.GetValue())
		if !ok {
			return ApkOptimizations{}, bundle.Errorf(bundle.InvalidBundle,
				"unrecognized split dimension %v", dim.GetValue())
		}
		if dim.GetNegate() {
			delete(opt.SplitDimensions, d)
			continue
		}
		opt.SplitDimensions[d] = true
		if ss := dim.GetSuffixStripping(); ss != nil {
			opt.SuffixStrippings[d] = SuffixStripping{
				Enabled:       ss.GetEnabled(),
				DefaultSuffix: ss.GetDefaultSuffix(),
			}
		}
	}

	// The command-line list, when given, replaces the dimensions outright.
	if len(override.SplitDimensions) > 0 {
		opt.SplitDimensions = targeting.NewDimensionSet(override.SplitDimensions...)
	}

	if standalone := config.GetOptimizations().GetStandaloneConfig(); standalone != nil {
		if len(standalone.GetSplitDimension()) > 0 {
			opt.StandaloneDimensions = targeting.NewDimensionSet()
			for _, dim := range standalone.GetSplitDimension() {
				d, ok := targeting.FromSplitDimension(dim.GetValue())
				if !ok || dim.GetNegate() {
					continue
				}
				opt.StandaloneDimensions[d] = true
			}
		}
		opt.Strip64BitLibraries = standalone.GetStrip64BitLibraries()
	}

	// Explicit developer values win over the version defaults; explicit
	// command-line values win over both.
	if unl := config.GetOptimizations().GetUncompressNativeLibraries(); unl != nil {
		opt.UncompressNativeLibraries = unl.Enabled
	}
	if udf := config.GetOptimizations().GetUncompressDexFiles(); udf != nil {
		opt.UncompressDexFiles = udf.Enabled
		opt.UncompressedDexTargetSdk = udf.UncompressedDexTargetSdk
	}
	if override.UncompressNativeLibraries != nil {
		opt.UncompressNativeLibraries = proptools.Bool(override.UncompressNativeLibraries)
	}
	if override.UncompressDexFiles != nil {
		opt.UncompressDexFiles = proptools.Bool(override.UncompressDexFiles)
	}

	return opt, nil
}

// SplitDimensionList returns the enabled split dimensions in a stable order.
func (o ApkOptimizations) SplitDimensionList() []targeting.Dimension {
	var dims []targeting.Dimension
	for d := range o.SplitDimensions {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}
