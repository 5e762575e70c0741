package render

// Markdown renders markdown content for terminal display.
// Uses a pooled renderer for better performance and thread safety.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownWithWidth renders with the active theme's glamour style and the
// specified width.
func MarkdownWithWidth(content string, width int) (string, error) {
	opts := DefaultOptions().
		WithWidth(width).
		WithStyle(GetTUITheme().MarkdownStyle)
	return Markdown(content, opts)
}
