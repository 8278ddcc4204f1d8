package topics

// Renderer formats topic content for terminal display. The ext
// argument is the topic file's extension, letting renderers skip
// formats they do not understand.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer passes content through untouched.
type PlainRenderer struct{}

// Render returns the content unchanged.
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}
