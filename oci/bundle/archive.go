// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"
)

// Archive limits.
const (
	MaxLayerSize        int64 = 64 * 1024 * 1024
	MaxFileSize         int64 = 8 * 1024 * 1024
	MaxArchiveEntries         = 10000
	gzipOSUnknown             = 255
	defaultFileMode           = 0o644
)

type fileEntry struct {
	Path    string
	Content []byte
}

// packLayer writes files as a tar.gz whose bytes depend only on the file
// paths, contents and epoch.
func packLayer(files []fileEntry, epoch time.Time) ([]byte, error) {
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b fileEntry) int { return strings.Compare(a.Path, b.Path) })

	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	for _, f := range sorted {
		hdr := &tar.Header{
			Name:     f.Path,
			Size:     int64(len(f.Content)),
			Mode:     defaultFileMode,
			ModTime:  epoch,
			Typeflag: tar.TypeReg,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, fmt.Errorf("writing tar header for %s: %w", f.Path, err)
		}
		if _, err := tw.Write(f.Content); err != nil {
			return nil, fmt.Errorf("writing tar content for %s: %w", f.Path, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("closing tar writer: %w", err)
	}

	var gzBuf bytes.Buffer
	gw, err := gzip.NewWriterLevel(&gzBuf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("creating gzip writer: %w", err)
	}
	gw.ModTime = epoch
	gw.OS = gzipOSUnknown
	if _, err := gw.Write(tarBuf.Bytes()); err != nil {
		return nil, fmt.Errorf("writing gzip data: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("closing gzip writer: %w", err)
	}
	return gzBuf.Bytes(), nil
}

// unpackLayer extracts the regular files of a tar.gz layer. Links, devices
// and paths escaping the archive root are rejected, as are files and
// archives over the size limits.
func unpackLayer(data []byte) ([]fileEntry, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	var (
		files []fileEntry
		total int64
	)
	tr := tar.NewReader(io.LimitReader(gr, MaxLayerSize+1))
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar header: %w", err)
		}
		if err := validateArchivePath(hdr.Name); err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeDir {
			continue
		}
		if hdr.Typeflag != tar.TypeReg {
			return nil, fmt.Errorf("archive entry %s has disallowed type %q", hdr.Name, hdr.Typeflag)
		}
		if len(files) >= MaxArchiveEntries {
			return nil, fmt.Errorf("archive has more than %d entries", MaxArchiveEntries)
		}
		if hdr.Size > MaxFileSize {
			return nil, fmt.Errorf("file %s exceeds maximum size of %d bytes", hdr.Name, MaxFileSize)
		}

		content, err := io.ReadAll(io.LimitReader(tr, MaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", hdr.Name, err)
		}
		if int64(len(content)) > MaxFileSize {
			return nil, fmt.Errorf("file %s exceeds maximum size of %d bytes", hdr.Name, MaxFileSize)
		}
		total += int64(len(content))
		if total > MaxLayerSize {
			return nil, fmt.Errorf("layer exceeds maximum size of %d bytes", MaxLayerSize)
		}
		files = append(files, fileEntry{Path: path.Clean(hdr.Name), Content: content})
	}
	return files, nil
}

func validateArchivePath(p string) error {
	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("path traversal detected in archive: %s", p)
	}
	if path.IsAbs(cleaned) {
		return fmt.Errorf("absolute path not allowed in archive: %s", p)
	}
	return nil
}
