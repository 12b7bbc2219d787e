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
	"io"
	"os"
	"path/filepath"

	"android/bundletool/zip"
)

// TocFileName is the table-of-contents entry of an APK set.
const TocFileName = "toc.pb"

// WriteZip writes the set as an APK set archive: the APKs plus toc.pb.
// APK payloads are stored; they are zips already.
func WriteZip(w io.Writer, set *Set) error {
	zw := zip.NewWriter(w)
	if err := zw.WriteEntry(TocFileName, set.Toc.Marshal(), zip.Deflate); err != nil {
		return err
	}
	for _, apk := range set.Apks {
		if err := zw.WriteEntry(apk.Path, apk.Data, zip.Store); err != nil {
			return err
		}
	}
	return zw.Close()
}

// WriteDirectory writes the APKs and toc.pb loose under dir.
func WriteDirectory(dir string, set *Set) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, TocFileName), set.Toc.Marshal(), 0644); err != nil {
		return err
	}
	for _, apk := range set.Apks {
		path := filepath.Join(dir, filepath.FromSlash(apk.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, apk.Data, 0644); err != nil {
			return err
		}
	}
	return nil
}
