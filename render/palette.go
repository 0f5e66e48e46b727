package render

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesColors = []string{
	"4F46E5", "10B981", "F59E0B", "EF4444", "8B5CF6",
	"06B6D4", "EC4899", "84CC16", "F97316", "6366F1",
}

// seriesColor returns the palette colour for the i-th series.
func seriesColor(i int) drawing.Color {
	return drawing.ColorFromHex(seriesColors[i%len(seriesColors)])
}

// languageColors assigns palette colours to languages in the given order.
func languageColors(languages []string) map[string]drawing.Color {
	colors := make(map[string]drawing.Color, len(languages))
	for i, lang := range languages {
		colors[lang] = seriesColor(i)
	}
	return colors
}

var viridisStops = []drawing.Color{
	{R: 68, G: 1, B: 84, A: 255},
	{R: 59, G: 82, B: 139, A: 255},
	{R: 33, G: 145, B: 140, A: 255},
	{R: 94, G: 201, B: 98, A: 255},
	{R: 253, G: 231, B: 37, A: 255},
}

// viridis maps f in [0, 1] onto the viridis colour scale.
func viridis(f float64) drawing.Color {
	switch {
	case f <= 0:
		return viridisStops[0]
	case f >= 1:
		return viridisStops[len(viridisStops)-1]
	}
	pos := f * float64(len(viridisStops)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := viridisStops[i], viridisStops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*frac)
	}
	return drawing.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}
