package wordpress

import "html"

// Rendered is the WP rendered/raw text envelope.
type Rendered struct {
	Rendered string `json:"rendered"`
	Raw      string `json:"raw,omitempty"`
}

// Decoded returns the rendered text with HTML entities resolved.
func (r Rendered) Decoded() string {
	return html.UnescapeString(r.Rendered)
}

// Post is the common envelope shared by all custom post types.
type Post struct {
	ID       int      `json:"id"`
	Date     string   `json:"date"`
	DateGMT  string   `json:"date_gmt"`
	Modified string   `json:"modified"`
	Slug     string   `json:"slug"`
	Status   string   `json:"status"`
	Author   int      `json:"author"`
	Type     string   `json:"type"`
	Link     string   `json:"link"`
	Title    Rendered `json:"title"`
	Content  Rendered `json:"content"`
}

// DecodeTitle resolves HTML entities in the rendered title in place. The
// backend escapes titles for HTML display; API consumers want the plain text.
func (p *Post) DecodeTitle() {
	p.Title.Rendered = html.UnescapeString(p.Title.Rendered)
}
