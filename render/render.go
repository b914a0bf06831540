package render

import "io"

// Renderer draws tables to a writer and charts to HTML files.
type Renderer struct {
	*TableRenderer
	*ChartRenderer
}

func New(out io.Writer, outputDir string) *Renderer {
	return &Renderer{
		TableRenderer: NewTableRenderer(out),
		ChartRenderer: NewChartRenderer(outputDir, out),
	}
}
