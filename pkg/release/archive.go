// SPDX-License-Identifier: MPL-2.0

package release

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	// LayoutFlat places every entry at the archive root.
	LayoutFlat Layout = "flat"
	// LayoutWrapped places every entry under a single top-level directory
	// named after the archive itself (e.g. "com.example.MyTool.xrnx/").
	LayoutWrapped Layout = "wrapped"

	// entryMode is the fixed permission bits for regular-file entries.
	// Fixed bits keep archives portable and byte-reproducible regardless of
	// the umask or source file modes on the building host.
	entryMode fs.FileMode = 0o644
	// dirMode is the fixed permission bits for directory entries.
	dirMode fs.FileMode = 0o755
)

// ErrInvalidLayout is the sentinel error wrapped by InvalidLayoutError.
var ErrInvalidLayout = errors.New("invalid archive layout")

type (
	// Layout selects the internal structure of a release archive.
	Layout string

	// InvalidLayoutError is returned when a Layout value is not recognized.
	// It wraps ErrInvalidLayout for errors.Is() compatibility.
	InvalidLayoutError struct {
		Value Layout
	}
)

// Error implements the error interface.
func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid archive layout %q (valid: %q, %q)", string(e.Value), LayoutFlat, LayoutWrapped)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *InvalidLayoutError) Unwrap() error {
	return ErrInvalidLayout
}

// Validate reports whether the layout is a recognized value.
func (l Layout) Validate() error {
	switch l {
	case LayoutFlat, LayoutWrapped:
		return nil
	default:
		return &InvalidLayoutError{Value: l}
	}
}

// BuildArchive writes the entries into a Deflate-compressed ZIP archive at
// outPath. Entry order is preserved as given; with the wrapped layout the
// top-level directory entry is written before the files it contains. Entry
// names always use forward slashes regardless of the host path separator,
// and timestamps are left at the ZIP epoch so that two builds over identical
// inputs produce identical bytes.
//
// The archive is assembled at a temporary sibling path and renamed into place
// only after a clean close, so an interrupted or failed build never leaves a
// truncated archive at outPath.
func BuildArchive(entries []Entry, outPath string, layout Layout, wrapDir string) (err error) {
	if lerr := layout.Validate(); lerr != nil {
		return lerr
	}

	tmpPath := outPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create archive file %s: %w", tmpPath, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	zw := zip.NewWriter(f)

	prefix := ""
	if layout == LayoutWrapped {
		prefix = wrapDir + "/"
		hdr := &zip.FileHeader{Name: prefix}
		hdr.SetMode(dirMode | fs.ModeDir)
		if _, herr := zw.CreateHeader(hdr); herr != nil {
			err = fmt.Errorf("failed to write directory entry %s: %w", prefix, herr)
			return err
		}
	}

	for _, entry := range entries {
		data := entry.Data
		if data == nil {
			data, err = os.ReadFile(entry.SourcePath)
			if err != nil {
				err = fmt.Errorf("failed to read source file %s: %w", entry.SourcePath, err)
				return err
			}
		}

		hdr := &zip.FileHeader{
			Name:   prefix + entry.Name,
			Method: zip.Deflate,
		}
		hdr.SetMode(entryMode)

		w, werr := zw.CreateHeader(hdr)
		if werr != nil {
			err = fmt.Errorf("failed to create archive entry %s: %w", entry.Name, werr)
			return err
		}
		if _, werr := w.Write(data); werr != nil {
			err = fmt.Errorf("failed to write archive entry %s: %w", entry.Name, werr)
			return err
		}
	}

	if cerr := zw.Close(); cerr != nil {
		err = fmt.Errorf("failed to finalize archive: %w", cerr)
		return err
	}
	if cerr := f.Close(); cerr != nil {
		err = fmt.Errorf("failed to close archive file: %w", cerr)
		return err
	}

	if rerr := os.Rename(tmpPath, outPath); rerr != nil {
		err = fmt.Errorf("failed to move archive into place: %w", rerr)
		return err
	}

	return nil
}
