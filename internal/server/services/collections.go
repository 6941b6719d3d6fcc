package services

// Collection names.
const (
	Banners    = "banners"
	Blog       = "blog"
	Gallery    = "gallery"
	Complaints = "complaints"
	Licenses   = "licenses"
)

// DefaultCollections describes the website's content types.
func DefaultCollections() map[string]Collection {
	return map[string]Collection{
		Banners: {
			Name:            Banners,
			IDField:         "_id",
			FileField:       "image",
			FileRequired:    true,
			RequiredMessage: "Image is required",
			NoChanges:       "No image provided",
			URLField:        "image_url",
			MediaFolder:     "banner",
			Timestamps:      true,
			NewestFirst:     true,
		},
		Blog: {
			Name:            Blog,
			IDField:         "_id",
			Fields:          []string{"title", "subtitle", "content", "status"},
			Defaults:        map[string]any{"status": "draft"},
			Required:        []string{"title", "content"},
			FileField:       "image",
			FileRequired:    true,
			RequiredMessage: "Title, content, and image are required",
			NoChanges:       "No valid fields to update",
			URLField:        "image_url",
			MediaFolder:     "blog",
			Timestamps:      true,
			NewestFirst:     true,
		},
		Gallery: {
			Name:            Gallery,
			IDField:         "_id",
			Fields:          []string{"title"},
			Required:        []string{"title"},
			FileField:       "image",
			FileRequired:    true,
			RequiredMessage: "Title and image are required",
			NoChanges:       "No fields to update",
			URLField:        "image_url",
			MediaFolder:     "gallery",
			Unique:          []UniqueRule{{Field: "title", Message: "Title already exists"}},
			Timestamps:      true,
			NewestFirst:     true,
		},
		Complaints: {
			Name:            Complaints,
			IDField:         "id",
			Fields:          []string{"name", "email", "phone", "subject", "message"},
			Required:        []string{"name", "message"},
			RequiredMessage: "Name and message are required",
			NoChanges:       "No fields to update",
			Timestamps:      true,
			NewestFirst:     true,
		},
		Licenses: {
			Name:            Licenses,
			IDField:         "_id",
			Fields:          []string{"name", "aadhar_number", "phone", "address"},
			Defaults:        map[string]any{"is_approved": false},
			Required:        []string{"phone"},
			FileField:       "photo",
			RequiredMessage: "Phone number is required",
			NoChanges:       "No fields to update",
			URLField:        "photo",
			MediaFolder:     "licenses/photos",
			Unique: []UniqueRule{{
				Field:   "phone",
				Message: "This phone number is already registered for a license.",
			}},
		},
	}
}
