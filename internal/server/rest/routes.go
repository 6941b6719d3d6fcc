package rest

import "github.com/dmitrijs2005/nehruadmin/internal/server/services"

type replyStyle int

const (
	// replyDocument writes the stored document as is.
	replyDocument replyStyle = iota
	// replyEnvelope wraps the document under the route's envelope key.
	replyEnvelope
	// replyPartial writes the message, the id and the media link only.
	replyPartial
)

type route struct {
	collection string
	label      string
	path       string
	itemPath   string

	envelope     string
	createReply  replyStyle
	updateReply  replyStyle
	created      string
	updated      string
	deleted      string
	deleteNoBody bool

	publicList   bool
	publicCreate bool
	readOnly     bool
}

func (s *RESTServer) routes() []route {
	return []route{
		{
			collection:  services.Banners,
			label:       "Banner",
			path:        "/banner/banners/",
			itemPath:    "/banner/{id}/",
			envelope:    "banner",
			createReply: replyPartial,
			updateReply: replyEnvelope,
			created:     "Banner uploaded successfully!",
			updated:     "Banner updated successfully!",
			deleted:     "Banner deleted successfully!",
			publicList:  true,
		},
		{
			collection:  services.Blog,
			label:       "Post",
			path:        "/blog/posts/",
			itemPath:    "/blog/posts/{id}/",
			envelope:    "post",
			createReply: replyEnvelope,
			updateReply: replyEnvelope,
			created:     "Blog post created successfully!",
			updated:     "Blog post updated successfully!",
			deleted:     "Blog post deleted successfully!",
			publicList:  true,
		},
		{
			collection:  services.Gallery,
			label:       "Image",
			path:        "/gallery/images/",
			itemPath:    "/gallery/images/{id}/",
			envelope:    "image",
			createReply: replyPartial,
			updateReply: replyEnvelope,
			created:     "Image added successfully!",
			updated:     "Image updated successfully!",
			deleted:     "Image deleted successfully!",
			publicList:  true,
		},
		{
			collection:   services.Complaints,
			label:        "Complaint",
			path:         "/complaints/complaints/",
			itemPath:     "/complaints/complaints/{id}/",
			deleteNoBody: true,
			publicCreate: true,
			readOnly:     true,
		},
		{
			collection:   services.Licenses,
			label:        "License",
			path:         "/license/",
			itemPath:     "/license/{id}/",
			deleteNoBody: true,
			publicCreate: true,
		},
	}
}
