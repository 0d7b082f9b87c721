package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/fieldsim/internal/charge"
	"github.com/san-kum/fieldsim/internal/fieldlines"
)

// FieldLinesToSVG draws traced lines and charges over an nx x ny grid,
// scale pixels per cell. Positive charges are red, negative blue.
func FieldLinesToSVG(lines []fieldlines.Line, charges []charge.Charge, nx, ny int, scale float64) string {
	width := float64(nx) * scale
	height := float64(ny) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="none" stroke="rgba(0, 0, 255, 0.75)" stroke-width="1">
`, width, height, width, height))

	for _, l := range lines {
		if len(l.Points) < 2 {
			continue
		}
		sb.WriteString(`<path d="M`)
		for i, p := range l.Points {
			x, y := p.X*scale, p.Y*scale
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n")

	r := scale / 2
	for _, c := range charges {
		fill := "blue"
		if c.Positive() {
			fill = "red"
		}
		cx := float64(c.X)*scale + r
		cy := float64(c.Y)*scale + r
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, r, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
