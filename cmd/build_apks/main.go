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

// Converts an App Bundle into a set of device-targeted APKs with a table
// of contents. Run it without arguments to see usage details.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/blueprint/proptools"

	"android/bundletool/apkset"
	"android/bundletool/bundle"
	"android/bundletool/device"
	"android/bundletool/optimizations"
	"android/bundletool/preprocess"
	"android/bundletool/shards"
	"android/bundletool/splitter"
	"android/bundletool/targeting"
	"android/bundletool/zip"
)

var (
	bundlePath   = flag.String("bundle", "", "path to the input App Bundle")
	outputPath   = flag.String("o", "", "output path: an .apks archive, or a directory with -output-format=directory")
	mode         = flag.String("mode", "default", "one of default, universal, system")
	outputFormat = flag.String("output-format", "apks", "apks (a single archive) or directory (loose files)")
	devicePath   = flag.String("device-spec", "", "device spec JSON; required for system mode")
	fuseModules  = flag.String("fuse-modules", "", "system mode: comma-separated modules to fuse (default: all install-time modules)")
)

// Comma-separated dimension list, replacing the configured split dimensions.
type dimensionsFlagValue struct {
	dims []targeting.Dimension
}

func (d *dimensionsFlagValue) String() string {
	return ""
}

func (d *dimensionsFlagValue) Set(list string) error {
	for _, name := range strings.Split(list, ",") {
		v, ok := parseSplitDimension(name)
		if !ok {
			return fmt.Errorf("bad split dimension %q", name)
		}
		d.dims = append(d.dims, v)
	}
	return nil
}

func parseSplitDimension(name string) (targeting.Dimension, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ABI":
		return targeting.Abi, true
	case "SCREEN_DENSITY":
		return targeting.ScreenDensity, true
	case "LANGUAGE":
		return targeting.Language, true
	case "TEXTURE_COMPRESSION_FORMAT":
		return targeting.TextureCompressionFormat, true
	case "DEVICE_TIER":
		return targeting.DeviceTier, true
	case "COUNTRY_SET":
		return targeting.CountrySet, true
	}
	return 0, false
}

var (
	optimizeFor          dimensionsFlagValue
	uncompressNativeLibs = flag.Bool("uncompress-native-libs", false, "store native libraries uncompressed (overrides the bundle config)")
	uncompressDexFiles   = flag.Bool("uncompress-dex", false, "store dex files uncompressed (overrides the bundle config)")
)

func init() {
	flag.Var(&optimizeFor, "optimize-for", "comma-separated split dimensions replacing the configured ones")
}

func processArgs() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `usage: build_apks -bundle <bundle> -o <output> [-mode default|universal|system] `+
			`[-device-spec <json>] [-optimize-for dims] [-output-format apks|directory]`)
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if *bundlePath == "" || *outputPath == "" {
		flag.Usage()
	}
	switch *mode {
	case "default", "universal", "system":
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
	if *mode == "system" && *devicePath == "" {
		log.Fatal("system mode requires -device-spec")
	}
}

func main() {
	log.SetFlags(log.Lshortfile)
	processArgs()

	if err := run(); err != nil {
		if ue := bundle.AsUserError(err); ue != nil {
			log.Fatalf("error: %s", ue.Error())
		}
		log.Fatal(err)
	}
}

func run() error {
	b, closer, err := bundle.Open(*bundlePath)
	if err != nil {
		return err
	}
	defer closer.Close()

	for _, m := range b.Modules {
		if err := bundle.ValidateReferencedFiles(m); err != nil {
			return err
		}
	}
	if err := splitter.CheckTextureFormatParity(b.Modules); err != nil {
		return err
	}

	// Re-normalize entry compression into a temp copy so serialization can
	// copy compressed payloads verbatim. The temp file lives only for this
	// invocation.
	b, cleanup, err := recompressedBundle(b)
	if err != nil {
		return err
	}
	defer cleanup()

	b, err = preprocess.Chain{preprocess.EmbeddedApkSigner{}}.Preprocess(b)
	if err != nil {
		return err
	}

	var spec *device.Spec
	if *devicePath != "" {
		spec, err = device.ParseFile(*devicePath)
		if err != nil {
			return err
		}
	}

	var opt optimizations.ApkOptimizations
	if *mode == "universal" {
		opt = optimizations.Universal()
	} else {
		override := optimizations.Override{SplitDimensions: optimizeFor.dims}
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "uncompress-native-libs":
				override.UncompressNativeLibraries = proptools.BoolPtr(*uncompressNativeLibs)
			case "uncompress-dex":
				override.UncompressDexFiles = proptools.BoolPtr(*uncompressDexFiles)
			}
		})
		opt, err = optimizations.Merge(b.Config, override)
		if err != nil {
			return err
		}
	}

	logger := log.Default()
	builder := &apkset.Builder{Version: b.Version()}
	var set *apkset.Set

	switch *mode {
	case "universal":
		shardSplits, err := shards.GenerateStandalones(b, shards.Options{Optimizations: opt, Logger: logger})
		if err != nil {
			return err
		}
		set, err = builder.BuildStandalones(b, shardSplits, true)
		if err != nil {
			return err
		}
	case "system":
		fused := map[string]bool{}
		if *fuseModules != "" {
			for _, name := range strings.Split(*fuseModules, ",") {
				fused[strings.TrimSpace(name)] = true
			}
		} else {
			for _, m := range b.Modules {
				if m.Delivery == bundle.InstallTimeDelivery {
					fused[m.Name] = true
				}
			}
		}
		result, err := shards.GenerateSystemApks(b, spec, fused, shards.Options{Optimizations: opt, Logger: logger})
		if err != nil {
			return err
		}
		set, err = builder.BuildSystem(b, result)
		if err != nil {
			return err
		}
	default:
		splitOpts := splitter.Options{
			Optimizations:   opt,
			DeviceSpecKnown: spec != nil,
			Logger:          logger,
		}
		var allSplits []*splitter.ModuleSplit
		for _, m := range b.Modules {
			splits, err := splitter.SplitModule(m, splitOpts)
			if err != nil {
				return err
			}
			allSplits = append(allSplits, splits...)
		}
		splitSet, err := builder.BuildSplits(b, allSplits)
		if err != nil {
			return err
		}
		// Legacy devices get standalone shards alongside the splits.
		shardSplits, err := shards.GenerateStandalones(b, shards.Options{Optimizations: opt, Logger: logger})
		if err != nil {
			return err
		}
		standaloneSet, err := builder.BuildStandalones(b, shardSplits, false)
		if err != nil {
			return err
		}
		set, err = apkset.Merge(standaloneSet, splitSet)
		if err != nil {
			return err
		}
	}

	if *outputFormat == "directory" {
		return apkset.WriteDirectory(*outputPath, set)
	}
	out, err := os.Create(*outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return apkset.WriteZip(out, set)
}

// recompressedBundle rewrites the bundle archive with normalized entry
// compression and reopens the result. The returned cleanup removes the
// temp file; it is safe to call on every exit path.
func recompressedBundle(b *bundle.Bundle) (*bundle.Bundle, func(), error) {
	src, err := os.Open(*bundlePath)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()
	st, err := src.Stat()
	if err != nil {
		return nil, nil, err
	}
	zr, err := zip.NewReader(src, st.Size())
	if err != nil {
		return nil, nil, err
	}

	tmp, err := os.CreateTemp("", "bundle-recompressed-*.aab")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}
	if err := preprocess.Recompress(b, zr, tmp, preprocess.RecompressOptions{}); err != nil {
		cleanup()
		return nil, nil, err
	}

	rewritten, f, err := bundle.Open(tmp.Name())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	fullCleanup := func() {
		f.Close()
		cleanup()
	}
	return rewritten, fullCleanup, nil
}
