package res

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/gompdf/folio/internal/layout"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrUnsupportedScheme is returned for references the loader cannot
// fetch, such as http URLs
var ErrUnsupportedScheme = errors.New("unsupported resource scheme")

// ResourceType represents the type of resource
type ResourceType int

const (
	// ResourceTypeUnknown is an unknown resource type
	ResourceTypeUnknown ResourceType = iota
	// ResourceTypeImage is an image resource
	ResourceTypeImage
	// ResourceTypeFont is a font resource
	ResourceTypeFont
	// ResourceTypeCSS is a CSS resource
	ResourceTypeCSS
	// ResourceTypeOther is any other resource
	ResourceTypeOther
)

// Resource represents a loaded resource
type Resource struct {
	URL      string
	Type     ResourceType
	Data     []byte
	MimeType string
}

type size struct {
	width, height float64
	ok            bool
}

// Loader reads resources referenced by a document from a file system or
// from data URLs. It never touches the network.
type Loader struct {
	fsys fs.FS
	// base is the slash separated path of the document within fsys
	base string

	cacheLock sync.RWMutex
	cache     map[string]*Resource
	sizes     map[string]size

	searchPaths []string
}

// NewLoader creates a loader resolving relative references against the
// directory of base inside fsys. fsys may be nil when only data URLs are
// used.
func NewLoader(fsys fs.FS, base string) *Loader {
	return &Loader{
		fsys:  fsys,
		base:  base,
		cache: make(map[string]*Resource),
		sizes: make(map[string]size),
	}
}

// AddSearchPath adds a directory of fsys searched when a reference is not
// found next to the document
func (l *Loader) AddSearchPath(dir string) {
	l.searchPaths = append(l.searchPaths, dir)
}

// Load loads a resource from a data URL or a path
func (l *Loader) Load(ref string) (*Resource, error) {
	l.cacheLock.RLock()
	if res, ok := l.cache[ref]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	var (
		res *Resource
		err error
	)
	if strings.HasPrefix(ref, "data:") {
		res, err = parseDataURL(ref)
	} else {
		res, err = l.loadLocal(ref)
	}
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[ref] = res
	l.cacheLock.Unlock()
	return res, nil
}

// parseDataURL parses a data URL (RFC 2397) and returns a Resource.
// Examples:
//
//	data:image/png;base64,<base64>
//	data:text/plain,Hello%20World
func parseDataURL(u string) (*Resource, error) {
	s := strings.TrimPrefix(u, "data:")
	meta, dataPart, found := strings.Cut(s, ",")
	if !found {
		return nil, fmt.Errorf("invalid data URL")
	}

	mime := "application/octet-stream"
	isBase64 := false
	comps := strings.Split(meta, ";")
	if comps[0] != "" {
		mime = comps[0]
	}
	for _, c := range comps[1:] {
		if strings.EqualFold(strings.TrimSpace(c), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		var err error
		data, err = base64.StdEncoding.DecodeString(dataPart)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
	} else if d, err := url.PathUnescape(dataPart); err == nil {
		data = []byte(d)
	} else {
		data = []byte(dataPart)
	}

	return &Resource{URL: u, Data: data, MimeType: mime, Type: determineResourceType(mime, "")}, nil
}

// resolvePath maps a reference to a path inside the file system
func (l *Loader) resolvePath(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("failed to parse reference %q: %w", ref, err)
	}
	switch u.Scheme {
	case "", "file":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}

	p := u.Path
	if !strings.HasPrefix(p, "/") {
		p = path.Join(path.Dir(l.base), p)
	}
	p = strings.TrimPrefix(path.Clean(p), "/")
	if p == "" || p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("reference %q leaves the document root: %w", ref, fs.ErrNotExist)
	}
	return p, nil
}

// loadLocal loads a resource from the file system
func (l *Loader) loadLocal(ref string) (*Resource, error) {
	if l.fsys == nil {
		return nil, fmt.Errorf("resource not found: %s: %w", ref, fs.ErrNotExist)
	}
	p, err := l.resolvePath(ref)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return l.loadFromSearchPaths(p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return newFileResource(p, data), nil
}

// loadFromSearchPaths tries to load a resource from the search paths
func (l *Loader) loadFromSearchPaths(p string) (*Resource, error) {
	name := path.Base(p)
	for _, dir := range l.searchPaths {
		candidate := path.Join(dir, name)
		data, err := fs.ReadFile(l.fsys, candidate)
		if err != nil {
			continue
		}
		return newFileResource(candidate, data), nil
	}
	return nil, fmt.Errorf("resource not found: %s: %w", p, fs.ErrNotExist)
}

func newFileResource(p string, data []byte) *Resource {
	mime := determineMimeType(p)
	return &Resource{
		URL:      p,
		Data:     data,
		MimeType: mime,
		Type:     determineResourceType(mime, p),
	}
}

// determineMimeType determines the MIME type of a file
func determineMimeType(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	case ".ttf":
		return "font/ttf"
	case ".otf":
		return "font/otf"
	case ".css":
		return "text/css"
	case ".html", ".htm", ".xhtml":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

// determineResourceType determines the type of a resource
func determineResourceType(mimeType, p string) ResourceType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return ResourceTypeImage
	case strings.HasPrefix(mimeType, "font/"):
		return ResourceTypeFont
	case mimeType == "text/css":
		return ResourceTypeCSS
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".tiff", ".tif", ".bmp":
		return ResourceTypeImage
	case ".ttf", ".otf":
		return ResourceTypeFont
	case ".css":
		return ResourceTypeCSS
	}
	return ResourceTypeOther
}

// LoadImage loads an image resource
func (l *Loader) LoadImage(ref string) (*Resource, error) {
	res, err := l.Load(ref)
	if err != nil {
		return nil, err
	}
	if res.Type != ResourceTypeImage {
		return nil, fmt.Errorf("resource is not an image: %s", ref)
	}
	return res, nil
}

// LoadCSS loads a CSS resource
func (l *Loader) LoadCSS(ref string) (*Resource, error) {
	res, err := l.Load(ref)
	if err != nil {
		return nil, err
	}
	if res.Type != ResourceTypeCSS {
		return nil, fmt.Errorf("resource is not CSS: %s", ref)
	}
	return res, nil
}

// IsSVG reports whether the resource is an SVG document
func (r *Resource) IsSVG() bool {
	return r.MimeType == "image/svg+xml"
}

// GetReader returns a reader for a resource
func (r *Resource) GetReader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// GetString returns the resource data as a string
func (r *Resource) GetString() string {
	return string(r.Data)
}

// ImageSize returns the intrinsic size of an image element, reading only
// the image header. Sizes are cached per source.
func (l *Loader) ImageSize(img *layout.Image) (float64, float64, bool) {
	l.cacheLock.RLock()
	s, ok := l.sizes[img.Source]
	l.cacheLock.RUnlock()
	if ok {
		return s.width, s.height, s.ok
	}

	w, h, err := l.imageSize(img.Source)
	s = size{width: w, height: h, ok: err == nil}
	l.cacheLock.Lock()
	l.sizes[img.Source] = s
	l.cacheLock.Unlock()
	return s.width, s.height, s.ok
}

func (l *Loader) imageSize(ref string) (float64, float64, error) {
	res, err := l.LoadImage(ref)
	if err != nil {
		return 0, 0, err
	}
	if res.IsSVG() {
		icon, err := oksvg.ReadIconStream(res.GetReader(), oksvg.IgnoreErrorMode)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to parse SVG %s: %w", ref, err)
		}
		return icon.ViewBox.W, icon.ViewBox.H, nil
	}
	cfg, _, err := image.DecodeConfig(res.GetReader())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header %s: %w", ref, err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

// DecodeImage decodes an image resource. SVG documents are rasterized at
// their view box size.
func (l *Loader) DecodeImage(ref string) (image.Image, error) {
	res, err := l.LoadImage(ref)
	if err != nil {
		return nil, err
	}
	if !res.IsSVG() {
		img, _, err := image.Decode(res.GetReader())
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", ref, err)
		}
		return img, nil
	}

	icon, err := oksvg.ReadIconStream(res.GetReader(), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG %s: %w", ref, err)
	}
	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("SVG %s has an empty view box", ref)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}
