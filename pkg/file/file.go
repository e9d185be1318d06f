// Package file builds the attribute set used to upload a file to Directus:
// a name, a MIME type and the whole content as a base64 data URI.
//
// Content is read fully into memory; there is no streaming upload.
package file

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ErrMissingFile is returned when the referenced path does not exist.
var ErrMissingFile = errors.New(`missing "file" or "data" attribute`)

// ErrInvalidDataURI is returned by DecodeDataURI for malformed input.
var ErrInvalidDataURI = errors.New("invalid data URI")

// Attributes is the upload payload for a single file.
type Attributes struct {
	Name string `json:"name" mapstructure:"name"`
	Type string `json:"type" mapstructure:"type"`
	Data string `json:"data" mapstructure:"data"`
}

// Map returns the attributes as a payload fragment.
func (a Attributes) Map() map[string]any {
	return map[string]any{
		"name": a.Name,
		"type": a.Type,
		"data": a.Data,
	}
}

// Builder reads files through an afero filesystem so callers can swap the
// OS filesystem for an in-memory one.
type Builder struct {
	fs afero.Fs
}

// NewBuilder returns a Builder over fs; nil means the OS filesystem.
func NewBuilder(fs afero.Fs) *Builder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Builder{fs: fs}
}

// Fs returns the filesystem the builder reads from.
func (b *Builder) Fs() afero.Fs {
	return b.fs
}

// Exists reports whether path names a regular file.
func (b *Builder) Exists(path string) bool {
	info, err := b.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// FromPath reads path and returns its attributes. The name is the base name
// of path; the type is sniffed from the content.
func (b *Builder) FromPath(path string) (Attributes, error) {
	if !b.Exists(path) {
		return Attributes{}, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}

	content, err := afero.ReadFile(b.fs, path)
	if err != nil {
		return Attributes{}, fmt.Errorf("error reading file %s: %w", path, err)
	}

	mimeType := DetectType(content)
	return Attributes{
		Name: filepath.Base(path),
		Type: mimeType,
		Data: EncodeDataURI(mimeType, content),
	}, nil
}

// FromBuffer returns attributes for raw content. When name is empty a random
// name is generated with the MIME subtype as extension.
func (b *Builder) FromBuffer(content []byte, name string) Attributes {
	mimeType := DetectType(content)
	if name == "" {
		name = RandomName(mimeType)
	}
	return Attributes{
		Name: name,
		Type: mimeType,
		Data: EncodeDataURI(mimeType, content),
	}
}

// DetectType sniffs the MIME type of content from its leading bytes. The
// result carries no parameters ("text/plain", not "text/plain; charset=utf-8").
func DetectType(content []byte) string {
	mt := mimetype.Detect(content).String()
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base
	}
	return mt
}

// RandomName returns a unique file name using the subtype of mimeType as
// extension, e.g. "3f2c....png" for image/png.
func RandomName(mimeType string) string {
	name := uuid.NewString()
	if _, sub, ok := strings.Cut(mimeType, "/"); ok && sub != "" {
		name += "." + sub
	}
	return name
}

// EncodeDataURI returns "data:<mimeType>;base64,<content>".
func EncodeDataURI(mimeType string, content []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

// DecodeDataURI splits a base64 data URI into its MIME type and content.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}

	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mimeType, content, nil
}
