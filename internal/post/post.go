package post

// Post represents a content item that can appear in a curated feed.
type Post struct {
	// ID is the integer row identifier; curated orders reference posts
	// by this ID.
	ID int64

	// Title is the display title
	Title string

	// Content is the post body (markdown)
	Content string

	// Excerpt is an optional short summary shown in feed listings
	Excerpt *string

	// Author is the normalized author handle
	Author string

	// Status is the publication status ("publish" or "draft")
	Status string

	// Categories is a list of category slugs (stored as JSON in DB)
	Categories []string

	// Tags is a list of tag slugs (stored as JSON in DB)
	Tags []string

	// CreatedAt is the Unix timestamp when the post was created
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the post was last updated
	UpdatedAt int64
}

// Summary is the lightweight listing shape used by feeds and the editor.
type Summary struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author,omitempty"`
	Status    string   `json:"status"`
	Excerpt   *string  `json:"excerpt,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt int64    `json:"created_at"`
}

// Summarize converts a Post to its listing shape.
func Summarize(p *Post) Summary {
	return Summary{
		ID:        p.ID,
		Title:     p.Title,
		Author:    p.Author,
		Status:    p.Status,
		Excerpt:   p.Excerpt,
		Tags:      p.Tags,
		CreatedAt: p.CreatedAt,
	}
}

// Statuses accepted by the store.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// ValidStatus reports whether s is a recognized publication status.
func ValidStatus(s string) bool {
	return s == StatusPublish || s == StatusDraft
}
