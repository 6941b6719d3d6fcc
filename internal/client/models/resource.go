package models

import (
	"net/url"
	"sort"
	"strings"
)

// Resource names.
const (
	ResourceBanners    = "banners"
	ResourceBlog       = "blog"
	ResourceGallery    = "gallery"
	ResourceComplaints = "complaints"
	ResourceLicenses   = "licenses"
)

// Resource describes one server-backed collection and how to talk to it.
type Resource struct {
	Name  string
	Label string // singular, human readable

	// Path is the collection endpoint relative to the base URL, with a
	// trailing slash. ItemPath is the prefix for item endpoints when it
	// differs from Path.
	Path     string
	ItemPath string

	IDField string

	// Fields are the text form fields in declaration order.
	Fields    []string
	Required  []string
	MinLength map[string]int

	// FileField names the binary part; empty for resources without one.
	FileField            string
	FileRequiredOnCreate bool

	// Envelopes are keys that may wrap the record in create/update responses.
	Envelopes []string

	// Unique lists fields gated by a live uniqueness check.
	Unique []string

	ReadOnly   bool // no create/update from the admin panel
	Approvable bool
}

// CollectionURL is the list/create endpoint.
func (r Resource) CollectionURL() string {
	return r.Path
}

// ItemURL is the update/delete endpoint for id.
func (r Resource) ItemURL(id string) string {
	base := r.ItemPath
	if base == "" {
		base = r.Path
	}
	return strings.TrimSuffix(base, "/") + "/" + url.PathEscape(id) + "/"
}

// ApproveURL is the approval action endpoint for id.
func (r Resource) ApproveURL(id string) string {
	return r.ItemURL(id) + "approve/"
}

// CheckURL is the uniqueness check endpoint for field.
func (r Resource) CheckURL(field, value string) string {
	return r.Path + "check_" + field + "/?" + url.Values{field: {value}}.Encode()
}

// HasFile reports whether the resource carries a binary part.
func (r Resource) HasFile() bool {
	return r.FileField != ""
}

// Catalog indexes resources by name.
type Catalog map[string]Resource

// Lookup returns the named resource.
func (c Catalog) Lookup(name string) (Resource, bool) {
	r, ok := c[name]
	return r, ok
}

// Names returns the resource names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WithPaths returns a copy of the catalog with collection paths replaced by
// overrides (resource name -> path). Item paths of overridden resources fall
// back to the new collection path.
func (c Catalog) WithPaths(overrides map[string]string) Catalog {
	out := make(Catalog, len(c))
	for name, r := range c {
		if p, ok := overrides[name]; ok && p != "" {
			if !strings.HasSuffix(p, "/") {
				p += "/"
			}
			r.Path = p
			r.ItemPath = ""
		}
		out[name] = r
	}
	return out
}

// DefaultCatalog describes the backend's resources.
func DefaultCatalog() Catalog {
	return Catalog{
		ResourceBanners: {
			Name:                 ResourceBanners,
			Label:                "Banner",
			Path:                 "/banner/banners/",
			ItemPath:             "/banner/",
			IDField:              "_id",
			FileField:            "image",
			FileRequiredOnCreate: true,
			Envelopes:            []string{"banner"},
		},
		ResourceBlog: {
			Name:                 ResourceBlog,
			Label:                "Blog post",
			Path:                 "/blog/posts/",
			IDField:              "_id",
			Fields:               []string{"title", "subtitle", "content", "status"},
			Required:             []string{"title", "content"},
			FileField:            "image",
			FileRequiredOnCreate: true,
			Envelopes:            []string{"post"},
		},
		ResourceGallery: {
			Name:                 ResourceGallery,
			Label:                "Gallery image",
			Path:                 "/gallery/images/",
			IDField:              "_id",
			Fields:               []string{"title"},
			Required:             []string{"title"},
			FileField:            "image",
			FileRequiredOnCreate: true,
			Envelopes:            []string{"image"},
		},
		ResourceComplaints: {
			Name:     ResourceComplaints,
			Label:    "Complaint",
			Path:     "/complaints/complaints/",
			IDField:  "id",
			Fields:   []string{"name", "email", "phone", "subject", "message"},
			ReadOnly: true,
		},
		ResourceLicenses: {
			Name:                 ResourceLicenses,
			Label:                "Membership application",
			Path:                 "/license/",
			IDField:              "_id",
			Fields:               []string{"name", "aadhar_number", "phone", "address"},
			Required:             []string{"name", "aadhar_number", "phone", "address"},
			MinLength:            map[string]int{"aadhar_number": 4},
			FileField:            "photo",
			FileRequiredOnCreate: true,
			Unique:               []string{"phone"},
			Approvable:           true,
		},
	}
}
