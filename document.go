// Package pagedraw turns drawable elements (text, vector geometry, solids,
// meshes, images, links and data charts) into positioned drawing
// operations on a page surface.
//
// Shapes are authored in a plane-based space with y pointing up and are
// aligned into document space, in points with y pointing down from the
// page top, when added to a Page. Pages render onto any Surface; raster
// (PNG/JPEG) and PDF surfaces are provided.
//
// See the Version variable for the current library version.
package pagedraw

import (
	"errors"
	"fmt"
	"image"
	"slices"
)

// Document is an ordered list of pages sharing a default layout.
type Document struct {
	pages      []*Page
	layout     PageLayout
	activePage int
}

// New creates a new Document with one blank A4 page.
func New() *Document {
	d := &Document{layout: NewPageLayout()}
	d.CreatePage()
	return d
}

// GetLayout returns the layout used for new pages.
func (d *Document) GetLayout() PageLayout {
	return d.layout
}

// SetLayout sets the layout used for new pages.
func (d *Document) SetLayout(l PageLayout) {
	d.layout = l
}

// CreatePage creates a new page with the document layout and adds it.
func (d *Document) CreatePage() *Page {
	p := newPageFromLayout(d.layout)
	d.pages = append(d.pages, p)
	return p
}

// AddPage adds an existing page.
func (d *Document) AddPage(p *Page) *Page {
	d.pages = append(d.pages, p)
	return p
}

// GetActivePage returns the currently active page.
func (d *Document) GetActivePage() *Page {
	if len(d.pages) == 0 {
		return nil
	}
	if d.activePage >= len(d.pages) {
		d.activePage = 0
	}
	return d.pages[d.activePage]
}

// SetActivePageIndex sets the active page by index.
func (d *Document) SetActivePageIndex(index int) error {
	if index < 0 || index >= len(d.pages) {
		return fmt.Errorf("active page %d: %w", index, errOutOfRange)
	}
	d.activePage = index
	return nil
}

// GetPage returns a page by index.
func (d *Document) GetPage(index int) (*Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page %d: %w", index, errOutOfRange)
	}
	return d.pages[index], nil
}

// GetAllPages returns all pages.
func (d *Document) GetAllPages() []*Page {
	return d.pages
}

// GetPageCount returns the number of pages.
func (d *Document) GetPageCount() int {
	return len(d.pages)
}

// RemovePageByIndex removes a page. The last remaining page cannot be
// removed. The active page stays the same unless it is the one removed,
// in which case the page taking its place (or the new last page) becomes
// active.
func (d *Document) RemovePageByIndex(index int) error {
	if index < 0 || index >= len(d.pages) {
		return fmt.Errorf("remove page %d: %w", index, errOutOfRange)
	}
	if len(d.pages) == 1 {
		return errLastPage
	}
	switch {
	case index < d.activePage:
		d.activePage--
	case index == d.activePage && index == len(d.pages)-1:
		d.activePage--
	}
	d.pages = slices.Delete(d.pages, index, index+1)
	return nil
}

// MovePage moves the page at from to position to. The active page follows
// the page it refers to.
func (d *Document) MovePage(from, to int) error {
	n := len(d.pages)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move page %d to %d: %w", from, to, errOutOfRange)
	}
	if from == to {
		return nil
	}
	active := d.GetActivePage()
	p := d.pages[from]
	d.pages = slices.Insert(slices.Delete(d.pages, from, from+1), to, p)
	d.activePage = slices.Index(d.pages, active)
	return nil
}

var errLastPage = errors.New("cannot remove the last page")

// RenderImages renders every page to an image. Fonts are loaded once for
// the whole document.
func (d *Document) RenderImages(opts *RenderOptions) ([]image.Image, error) {
	opts = opts.resolve()
	images := make([]image.Image, len(d.pages))
	for i, p := range d.pages {
		img, err := p.RenderImage(opts)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		images[i] = img
	}
	return images, nil
}

// SaveImages renders all pages and saves them to files.
// The pattern should contain %d for the page number (1-based), e.g. "page_%d.png".
func (d *Document) SaveImages(pattern string, opts *RenderOptions) error {
	opts = opts.resolve()
	for i, p := range d.pages {
		if err := p.SaveImage(fmt.Sprintf(pattern, i+1), opts); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	return nil
}

// SavePDFs writes one single-page PDF file per page.
// The pattern should contain %d for the page number (1-based), e.g. "page_%d.pdf".
func (d *Document) SavePDFs(pattern string, opts *RenderOptions) error {
	opts = opts.resolve()
	for i, p := range d.pages {
		if err := p.SavePDF(fmt.Sprintf(pattern, i+1), opts); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	return nil
}
