package report

import (
	"math"
	"strconv"
)

const (
	gaugeRadius = 70.0
	gaugeHeight = 130.0
)

// scoreBand returns the status label and its color for a 0-100 score.
func scoreBand(score int) (string, rgb) {
	switch {
	case score >= 80:
		return "Excellent", green
	case score >= 60:
		return "Good", orange
	default:
		return "Needs Improvement", red
	}
}

// arcPoint maps a 0-100 value onto the upper half circle, 0 on the left.
func arcPoint(cx, cy, r float64, value float64) (float64, float64) {
	theta := (180 - 1.8*value) * math.Pi / 180
	return cx + r*math.Cos(theta), cy - r*math.Sin(theta)
}

// gauge draws a semicircular score gauge whose arc sits on the baseline cy.
// sub is an optional list of lines printed under the status label.
func (d *doc) gauge(cx, cy float64, score int, title string, sub ...string) {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	label, color := scoreBand(score)
	pdf := d.pdf

	d.use("subheading")
	pdf.SetXY(cx-gaugeRadius-20, cy-gaugeRadius-30)
	pdf.CellFormat(2*gaugeRadius+40, 16, d.tr(title), "", 0, "C", false, 0, "")

	pdf.SetLineWidth(3)
	for i := 0; i <= 100; i += 2 {
		tick := lightGrey
		if i <= score {
			tick = color
		}
		d.setDraw(tick)
		x1, y1 := arcPoint(cx, cy, gaugeRadius-8, float64(i))
		x2, y2 := arcPoint(cx, cy, gaugeRadius, float64(i))
		pdf.Line(x1, y1, x2, y2)
	}

	d.setDraw(black)
	pdf.SetLineWidth(2)
	nx, ny := arcPoint(cx, cy, gaugeRadius-14, float64(score))
	pdf.Line(cx, cy, nx, ny)
	d.setFill(black)
	pdf.Circle(cx, cy, 4, "F")

	d.use("footer")
	for v := 0; v <= 100; v += 20 {
		lx, ly := arcPoint(cx, cy, gaugeRadius+10, float64(v))
		s := strconv.Itoa(v)
		w := pdf.GetStringWidth(s)
		pdf.SetXY(lx-w/2, ly-6)
		pdf.CellFormat(w, 12, s, "", 0, "C", false, 0, "")
	}

	d.use("title")
	pdf.SetXY(cx-gaugeRadius, cy+6)
	pdf.CellFormat(2*gaugeRadius, 22, strconv.Itoa(score), "", 0, "C", false, 0, "")

	s := d.use("label")
	pdf.SetTextColor(color.R, color.G, color.B)
	pdf.SetXY(cx-gaugeRadius-20, cy+28)
	pdf.CellFormat(2*gaugeRadius+40, s.Leading, d.tr(label), "", 0, "C", false, 0, "")

	s = d.use("normal")
	for i, line := range sub {
		pdf.SetXY(cx-gaugeRadius-20, cy+28+float64(i+1)*s.Leading+4)
		pdf.CellFormat(2*gaugeRadius+40, s.Leading, d.tr(line), "", 0, "C", false, 0, "")
	}
}

// gaugeRow draws the resume gauge and the combined gauge side by side and
// moves the cursor below them.
func (d *doc) gaugeRow(score, ats int) {
	d.ensureSpace(gaugeHeight + 60)
	top := d.pdf.GetY()
	cy := top + gaugeRadius + 34
	left := d.left()
	quarter := d.width() / 4

	d.gauge(left+quarter, cy, score, "Resume Score")
	combined := int(0.6*float64(score) + 0.4*float64(ats))
	d.gauge(left+3*quarter, cy, combined, "Overall Score",
		"Resume: "+strconv.Itoa(score), "ATS: "+strconv.Itoa(ats))

	d.pdf.SetXY(left, top+gaugeHeight+50)
}

// scoreBar is the gauge-free rendition used by the simple layout.
func (d *doc) scoreBar(name string, score int) {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	label, color := scoreBand(score)
	s := d.use("value")
	pdf := d.pdf

	pdf.SetX(d.left())
	pdf.CellFormat(120, s.Leading, d.tr(name), "", 0, "L", false, 0, "")

	barW := d.width() - 120 - 150
	x, y := pdf.GetX(), pdf.GetY()+4
	d.setDraw(grey)
	pdf.SetLineWidth(0.5)
	d.setFill(lightGrey)
	pdf.Rect(x, y, barW, s.Leading-8, "FD")
	if score > 0 {
		d.setFill(color)
		pdf.Rect(x, y, barW*float64(score)/100, s.Leading-8, "F")
	}
	pdf.SetX(x + barW + 8)
	pdf.CellFormat(142, s.Leading, d.tr(strconv.Itoa(score)+"/100 "+label), "", 1, "L", false, 0, "")
}
