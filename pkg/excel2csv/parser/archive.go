package parser

import (
	"archive/zip"
	"io"
	"strings"
)

// Part names of the workbook-level documents.
const (
	WorkbookPart      = "xl/workbook.xml"
	WorkbookRelsPart  = "xl/_rels/workbook.xml.rels"
	StylesPart        = "xl/styles.xml"
	SharedStringsPart = "xl/sharedStrings.xml"
)

// Container exposes the named parts of a packaged document.
type Container interface {
	// Open opens a named part for streaming. A missing part yields a
	// *ContainerError wrapping ErrPartNotFound.
	Open(name string) (io.ReadCloser, error)
}

// ZipContainer is a Container backed by a zip archive.
type ZipContainer struct {
	files map[string]*zip.File
}

// NewZipContainer indexes the entries of a zip reader. Lookups ignore case
// and accept backslash separators, which some third-party writers emit.
func NewZipContainer(r *zip.Reader) *ZipContainer {
	c := &ZipContainer{files: make(map[string]*zip.File, len(r.File))}
	for _, f := range r.File {
		c.files[normalizePartName(f.Name)] = f
	}
	return c
}

// Open opens a named part.
func (c *ZipContainer) Open(name string) (io.ReadCloser, error) {
	f, ok := c.files[normalizePartName(name)]
	if !ok {
		return nil, NewContainerError(name, ErrPartNotFound)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, NewContainerError(name, err)
	}
	return rc, nil
}

// Has reports whether a part exists.
func (c *ZipContainer) Has(name string) bool {
	_, ok := c.files[normalizePartName(name)]
	return ok
}

func normalizePartName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	return strings.ToLower(strings.TrimPrefix(name, "/"))
}

// resolveRelativePath turns a relationship target into a part name.
func resolveRelativePath(target, baseDir string) string {
	target = strings.ReplaceAll(target, `\`, "/")
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}
