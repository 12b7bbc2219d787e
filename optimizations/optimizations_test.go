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

package optimizations

import (
	"testing"

	"github.com/google/blueprint/proptools"

	bp "android/bundletool/bundle_proto"
	"android/bundletool/targeting"
)

func configWithVersion(version string) *bp.BundleConfig {
	return &bp.BundleConfig{Bundletool: &bp.Bundletool{Version: version}}
}

func TestVersionCompare(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.2.0", "1.11.0", -1},
		{"2.0.0", "1.99.99", 1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0-alpha", "1.0.0-beta", -1},
	}
	for _, tc := range testCases {
		va := MustParseVersion(tc.a)
		vb := MustParseVersion(tc.b)
		if got := va.Compare(vb); got != tc.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestParseVersionErrors(t *testing.T) {
	for _, s := range []string{"", "1.2", "1.2.3.4", "a.b.c", "1.-2.3"} {
		if _, err := ParseVersion(s); err == nil {
			t.Errorf("ParseVersion(%q) succeeded, want error", s)
		}
	}
}

// Version-floor defaults: any version between two table entries resolves to
// the earlier entry.
func TestDefaultsVersionFloor(t *testing.T) {
	testCases := []struct {
		version                string
		wantUncompressedNative bool
		wantUncompressedDex    bool
	}{
		{"0.2.0", false, false},
		{"0.6.0", true, false},
		{"1.11.2", true, false},
		{"1.11.3", true, true},
		{"1.12.0", true, true},
		{"9.0.0", true, true},
	}
	for _, tc := range testCases {
		opt, err := Merge(configWithVersion(tc.version), Override{})
		if err != nil {
			t.Fatalf("Merge(%s) failed: %v", tc.version, err)
		}
		if opt.UncompressNativeLibraries != tc.wantUncompressedNative {
			t.Errorf("version %s: UncompressNativeLibraries = %v, want %v",
				tc.version, opt.UncompressNativeLibraries, tc.wantUncompressedNative)
		}
		if opt.UncompressDexFiles != tc.wantUncompressedDex {
			t.Errorf("version %s: UncompressDexFiles = %v, want %v",
				tc.version, opt.UncompressDexFiles, tc.wantUncompressedDex)
		}
		if !opt.SplitDimensions.Has(targeting.Abi) || !opt.SplitDimensions.Has(targeting.Language) {
			t.Errorf("version %s: default split dimensions missing ABI/LANGUAGE", tc.version)
		}
	}
}

func TestUncompressedDexTargetSdkDefault(t *testing.T) {
	opt, err := Merge(configWithVersion("1.13.2"), Override{})
	if err != nil {
		t.Fatalf("Merge() failed: %v", err)
	}
	if opt.UncompressedDexTargetSdk != bp.UncompressDexFiles_SDK_31 {
		t.Errorf("UncompressedDexTargetSdk = %v, want SDK_31", opt.UncompressedDexTargetSdk)
	}
	opt, err = Merge(configWithVersion("1.13.1"), Override{})
	if err != nil {
		t.Fatalf("Merge() failed: %v", err)
	}
	if opt.UncompressedDexTargetSdk != bp.UncompressDexFiles_SDK_UNSPECIFIED {
		t.Errorf("UncompressedDexTargetSdk = %v, want SDK_UNSPECIFIED", opt.UncompressedDexTargetSdk)
	}
}

func TestDeveloperToggles(t *testing.T) {
	config := configWithVersion("1.8.0")
	config.Optimizations = &bp.Optimizations{
		SplitsConfig: &bp.SplitsConfig{
			SplitDimension: []*bp.SplitDimension{
				{Value: bp.SplitDimension_LANGUAGE, Negate: true},
				{
					Value: bp.SplitDimension_TEXTURE_COMPRESSION_FORMAT,
					SuffixStripping: &bp.SuffixStripping{
						Enabled:       true,
						DefaultSuffix: "etc2",
					},
				},
			},
		},
	}
	opt, err := Merge(config, Override{})
	if err != nil {
		t.Fatalf("Merge() failed: %v", err)
	}
	if opt.SplitDimensions.Has(targeting.Language) {
		t.Errorf("negated LANGUAGE still enabled")
	}
	if !opt.SplitDimensions.Has(targeting.TextureCompressionFormat) {
		t.Errorf("TEXTURE_COMPRESSION_FORMAT not enabled")
	}
	ss, ok := opt.SuffixStrippings[targeting.TextureCompressionFormat]
	if !ok || !ss.Enabled || ss.DefaultSuffix != "etc2" {
		t.Errorf("suffix stripping = %+v, want enabled with etc2", ss)
	}
}

func TestCommandLineOverrideReplacesDimensions(t *testing.T) {
	config := configWithVersion("1.8.0")
	config.Optimizations = &bp.Optimizations{
		SplitsConfig: &bp.SplitsConfig{
			SplitDimension: []*bp.SplitDimension{
				{Value: bp.SplitDimension_DEVICE_TIER},
			},
		},
	}
	opt, err := Merge(config, Override{
		SplitDimensions: []targeting.Dimension{targeting.Abi},
	})
	if err != nil {
		t.Fatalf("Merge() failed: %v", err)
	}
	if len(opt.SplitDimensions) != 1 || !opt.SplitDimensions.Has(targeting.Abi) {
		t.Errorf("override did not replace split dimensions: %v", opt.SplitDimensions)
	}
}

func TestExplicitValuesWinOverDefaults(t *testing.T) {
	config := configWithVersion("1.13.2")
	config.Optimizations = &bp.Optimizations{
		UncompressNativeLibraries: &bp.UncompressNativeLibraries{Enabled: false},
		UncompressDexFiles:        &bp.UncompressDexFiles{Enabled: false},
	}
	opt, err := Merge(config, Override{})
	if err != nil {
		t.Fatalf("Merge() failed: %v", err)
	}
	if opt.UncompressNativeLibraries || opt.UncompressDexFiles {
		t.Errorf("explicit developer false did not win: native=%v dex=%v",
			opt.UncompressNativeLibraries, opt.UncompressDexFiles)
	}

	opt, err = Merge(config, Override{UncompressDexFiles: proptools.BoolPtr(true)})
	if err != nil {
		t.Fatalf("Merge() failed: %v", err)
	}
	if !opt.UncompressDexFiles {
		t.Errorf("command-line true did not win over developer false")
	}
}

func TestUniversal(t *testing.T) {
	opt := Universal()
	if len(opt.SplitDimensions) != 0 || len(opt.StandaloneDimensions) != 0 {
		t.Errorf("Universal() has non-empty dimensions: %v %v",
			opt.SplitDimensions, opt.StandaloneDimensions)
	}
}
