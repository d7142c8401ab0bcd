// Package media manages attachments: gallery photos and delivery documents.
package media

import "github.com/seasistemi/deliveryops/internal/wordpress"

// Media is a WordPress attachment.
type Media struct {
	wordpress.Post
	AltText   string `json:"alt_text"`
	Caption   any    `json:"caption,omitempty"`
	MediaType string `json:"media_type"`
	MimeType  string `json:"mime_type"`
	Parent    int    `json:"post"`
	SourceURL string `json:"source_url"`
}
