// SPDX-License-Identifier: MPL-2.0

// Package manifest reads and patches Renoise tool manifests.
//
// A manifest.xml is the authoritative descriptor of a tool: it declares the
// tool's unique Id (used verbatim as the release archive's base name) and its
// Version, plus optional descriptive fields that this package reads through
// without validating. Version updates are applied as a targeted text
// substitution rather than a re-serialization so that comments, attribute
// ordering, and whitespace in the manifest survive a release byte-for-byte.
package manifest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// FileName is the well-known manifest file name in a tool's working directory.
const FileName = "manifest.xml"

var (
	// ErrMalformedDocument is the sentinel error wrapped by MalformedDocumentError.
	ErrMalformedDocument = errors.New("malformed manifest document")
	// ErrMissingField is the sentinel error wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing manifest field")
	// ErrPatchMismatch is the sentinel error wrapped by PatchMismatchError.
	ErrPatchMismatch = errors.New("version markup not found in manifest")
)

type (
	// Manifest is the parsed view of a manifest.xml. Only Id and Version are
	// required; the descriptive fields are optional and never mutated.
	Manifest struct {
		// ID is the unique tool identifier, e.g. "com.example.MyTool".
		ID string
		// Version is the declared version string, verbatim from the document.
		// It is not guaranteed to be a strict three-component semantic version.
		Version string

		// Optional descriptive fields, read-through only.
		Name        string
		Author      string
		Description string
		APIVersion  string
	}

	// MalformedDocumentError is returned when the manifest text is not
	// well-formed XML. It wraps ErrMalformedDocument for errors.Is().
	MalformedDocumentError struct {
		Err error
	}

	// MissingFieldError is returned when a required manifest element is absent
	// or has whitespace-only content. It wraps ErrMissingField for errors.Is().
	MissingFieldError struct {
		Field string
	}

	// PatchMismatchError is returned when the expected old-version markup is
	// not found during patching. It wraps ErrPatchMismatch for errors.Is().
	PatchMismatchError struct {
		OldVersion string
	}
)

// Error implements the error interface.
func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed manifest document: %v", e.Err)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *MalformedDocumentError) Unwrap() error {
	return ErrMalformedDocument
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("manifest is missing required field %q", e.Field)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// Error implements the error interface.
func (e *PatchMismatchError) Error() string {
	return fmt.Sprintf("expected <Version>%s</Version> markup not found in manifest", e.OldVersion)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *PatchMismatchError) Unwrap() error {
	return ErrPatchMismatch
}

// Parse extracts the manifest fields from document text.
//
// The decoder walks the element stream rather than unmarshalling into a fixed
// schema: fields may appear as direct or nested elements, unknown elements are
// ignored, and no root element name is assumed. The first occurrence of each
// known element wins. Id and Version must both resolve to non-empty text or
// parsing fails with a MissingFieldError naming the absent field.
func Parse(data []byte) (*Manifest, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	m := &Manifest{}
	sawElement := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedDocumentError{Err: err}
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true

		var field *string
		switch start.Name.Local {
		case "Id":
			field = &m.ID
		case "Version":
			field = &m.Version
		case "Name":
			field = &m.Name
		case "Author":
			field = &m.Author
		case "Description":
			field = &m.Description
		case "ApiVersion":
			field = &m.APIVersion
		default:
			continue
		}

		if *field != "" {
			// First occurrence wins; skip the repeated element's content.
			if err := dec.Skip(); err != nil {
				return nil, &MalformedDocumentError{Err: err}
			}
			continue
		}

		text, err := elementText(dec)
		if err != nil {
			return nil, &MalformedDocumentError{Err: err}
		}
		*field = strings.TrimSpace(text)
	}

	if !sawElement {
		return nil, &MalformedDocumentError{Err: errors.New("no XML elements found")}
	}

	if m.ID == "" {
		return nil, &MissingFieldError{Field: "Id"}
	}
	if m.Version == "" {
		return nil, &MissingFieldError{Field: "Version"}
	}

	return m, nil
}

// elementText collects the character data of the current element up to its
// end tag, descending through any nested markup.
func elementText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 1 {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// PatchVersion replaces the first occurrence of the old version's element
// markup with the new version, leaving every other byte of the document
// unchanged. Absent markup is a PatchMismatchError, never a silent no-op: a
// release must not ship an archive whose manifest still carries the old
// version.
func PatchVersion(data []byte, oldVersion, newVersion string) ([]byte, error) {
	oldMarkup := []byte("<Version>" + oldVersion + "</Version>")
	newMarkup := []byte("<Version>" + newVersion + "</Version>")

	if !bytes.Contains(data, oldMarkup) {
		return nil, &PatchMismatchError{OldVersion: oldVersion}
	}

	return bytes.Replace(data, oldMarkup, newMarkup, 1), nil
}
