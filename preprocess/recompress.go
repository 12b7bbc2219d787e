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

package preprocess

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/google/blueprint/pathtools"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
	"android/bundletool/zip"
)

// compressionAction is the re-compression decision for one archive entry.
type compressionAction int

const (
	// sameAsSource keeps the entry's bytes and method as they are.
	sameAsSource compressionAction = iota
	// noCompression stores the entry uncompressed.
	noCompression
	// defaultCompression deflates the entry, falling back to stored when
	// deflate does not shrink it.
	defaultCompression
)

// parallelThresholdDefault is the uncompressed size above which an entry is
// deflated on the worker pool instead of the caller goroutine.
const parallelThresholdDefault = 100_000

// RecompressOptions tunes the rewrite.
type RecompressOptions struct {
	// Parallelism bounds the worker pool; 0 means one worker per CPU.
	Parallelism int
	// ParallelThreshold overrides the size cutoff for pool compression.
	ParallelThreshold uint64
}

// Recompress rewrites every entry of a bundle archive with normalized
// compression, so that later APK serialization can copy compressed payloads
// without re-deflating them. Large re-deflated entries are compressed in
// parallel and land in the output in completion order.
func Recompress(b *bundle.Bundle, src *zip.Reader, w io.Writer, opts RecompressOptions) error {
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	threshold := opts.ParallelThreshold
	if threshold == 0 {
		threshold = parallelThresholdDefault
	}

	classifier := newClassifier(b)
	out := zip.NewWriter(w)

	type result struct {
		name     string
		deflated *zip.Deflated
		err      error
	}
	limiter := make(chan bool, parallelism)
	results := make(chan result)
	pending := 0

	// Large default-compression entries go to the pool; everything else is
	// handled inline in archive order.
	for _, f := range src.File {
		action, err := classifier.classify(f.Name)
		if err != nil {
			return err
		}
		if action == defaultCompression && f.UncompressedSize64 > threshold {
			f := f
			pending++
			go func() {
				limiter <- true
				defer func() { <-limiter }()
				buf, err := zip.ReadFile(f)
				if err != nil {
					results <- result{name: f.Name, err: err}
					return
				}
				deflated, err := zip.DeflateBytes(buf)
				results <- result{name: f.Name, deflated: deflated, err: err}
			}()
			continue
		}
		if err := writeEntry(out, src, f, action); err != nil {
			return err
		}
	}

	var firstErr error
	for ; pending > 0; pending-- {
		r := <-results
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", r.name, r.err)
			}
			continue
		}
		if firstErr != nil {
			continue
		}
		if err := out.WriteDeflated(r.name, r.deflated); err != nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}
	return out.Close()
}

func writeEntry(out *zip.Writer, src *zip.Reader, f *zip.File, action compressionAction) error {
	switch action {
	case sameAsSource:
		return out.CopyFrom(f, f.Name)
	case noCompression:
		buf, err := zip.ReadFile(f)
		if err != nil {
			return err
		}
		return out.WriteDeflated(f.Name, zip.StoreBytes(buf))
	default:
		buf, err := zip.ReadFile(f)
		if err != nil {
			return err
		}
		deflated, err := zip.DeflateBytes(buf)
		if err != nil {
			return err
		}
		return out.WriteDeflated(f.Name, deflated)
	}
}

// classifier decides the compression action of each archive entry.
type classifier struct {
	config *bp.BundleConfig
	// uncompressedAssetModules holds the asset modules whose asset entries
	// stay uncompressed: on-demand modules, and install-time ones unless
	// the developer forces compression.
	uncompressedAssetModules map[string]bool
}

func newClassifier(b *bundle.Bundle) *classifier {
	c := &classifier{
		config:                   b.Config,
		uncompressedAssetModules: map[string]bool{},
	}
	installTimeDefault := b.Config.GetCompression().GetInstallTimeAssetModuleDefaultCompression()
	for _, m := range b.Modules {
		if m.Type != bundle.AssetModule {
			continue
		}
		if m.Delivery == bundle.OnDemandDelivery ||
			installTimeDefault != bp.Compression_COMPRESSED {
			c.uncompressedAssetModules[m.Name] = true
		}
	}
	return c
}

func (c *classifier) classify(name string) (compressionAction, error) {
	module, rel, inModule := strings.Cut(name, "/")
	if !inModule || name == bundle.ConfigFileName ||
		strings.HasPrefix(name, bundle.MetadataDirectory+"/") ||
		!bundle.ValidModuleName(module) {
		// Entries outside any module, including metadata and root meta
		// files, keep their source compression.
		return sameAsSource, nil
	}
	if strings.HasPrefix(rel, bundle.ManifestDirectory+"/") {
		return sameAsSource, nil
	}
	if c.uncompressedAssetModules[module] && strings.HasPrefix(rel, bundle.AssetsDirectory+"/") {
		return noCompression, nil
	}
	// Files the downstream resource compiler converts to binary form are
	// pointless to deflate here.
	if rel == bundle.ResourceTableName ||
		strings.HasPrefix(rel, bundle.ResDirectory+"/") ||
		strings.HasSuffix(rel, ".xml") {
		return noCompression, nil
	}
	for _, glob := range c.config.GetCompression().GetUncompressedGlob() {
		match, err := pathtools.Match(glob, rel)
		if err != nil {
			return 0, bundle.Errorf(bundle.InvalidBundle, "invalid uncompressed glob %q: %v", glob, err)
		}
		if match {
			return sameAsSource, nil
		}
	}
	return defaultCompression, nil
}
