package domain

// Generation inputs are created by the authoring surfaces and read-only to the
// pipeline.

// Outline is the article skeleton the generation request is built from.
type Outline struct {
	ID      string
	Title   string
	Content string
}

// StyleProfile captures the authorial voice serialized into the generation request.
type StyleProfile struct {
	ID            string
	Name          string
	AuthorInfo    string
	StyleFeatures string
	SampleText    string
}

// Audience describes a target readership.
type Audience struct {
	ID          string
	Name        string
	Description string
}

// User identifies the article owner for access scoping and for the external
// service's per-user accounting.
type User struct {
	ID    string
	Email string
}
