package report

// rgb is a fill, draw or text color.
type rgb struct {
	R, G, B int
}

var (
	black      = rgb{0, 0, 0}
	white      = rgb{255, 255, 255}
	darkBlue   = rgb{0, 0, 139}
	grey       = rgb{128, 128, 128}
	lightGrey  = rgb{211, 211, 211}
	lightGreen = rgb{144, 238, 144}
	salmon     = rgb{250, 128, 114}
	lightBlue  = rgb{173, 216, 230}
	green      = rgb{0, 128, 0}
	orange     = rgb{255, 165, 0}
	red        = rgb{255, 0, 0}
)

// TextStyle captures the font formatting of one kind of report element.
type TextStyle struct {
	Family  string
	Bold    bool
	Italic  bool
	Size    float64
	Leading float64
	Color   rgb
}

func (s TextStyle) fontStyle() string {
	out := ""
	if s.Bold {
		out += "B"
	}
	if s.Italic {
		out += "I"
	}
	return out
}

const (
	sansFamily  = "Helvetica"
	serifFamily = "Times"
)

// StyleMap centralizes the formatting of the analysis report and the tailored resume.
var StyleMap = map[string]TextStyle{
	"title":       {Family: sansFamily, Bold: true, Size: 20, Leading: 26, Color: darkBlue},
	"subtitle":    {Family: sansFamily, Size: 14, Leading: 18, Color: darkBlue},
	"heading":     {Family: sansFamily, Bold: true, Size: 14, Leading: 22, Color: white},
	"subheading":  {Family: sansFamily, Bold: true, Size: 12, Leading: 16, Color: darkBlue},
	"label":       {Family: sansFamily, Bold: true, Size: 12, Leading: 18, Color: darkBlue},
	"value":       {Family: sansFamily, Size: 12, Leading: 18, Color: black},
	"normal":      {Family: sansFamily, Size: 10, Leading: 14, Color: black},
	"tableHeader": {Family: sansFamily, Bold: true, Size: 12, Leading: 16, Color: black},
	"footer":      {Family: sansFamily, Size: 9, Leading: 12, Color: black},

	"resumeName":       {Family: serifFamily, Bold: true, Size: 20, Leading: 26, Color: black},
	"resumeContact":    {Family: serifFamily, Size: 10, Leading: 13, Color: black},
	"resumeSection":    {Family: serifFamily, Bold: true, Size: 12, Leading: 16, Color: black},
	"resumeSubheading": {Family: serifFamily, Bold: true, Size: 11, Leading: 14, Color: black},
	"resumeBody":       {Family: serifFamily, Size: 10, Leading: 13, Color: black},
	"resumeTable":      {Family: serifFamily, Size: 9, Leading: 12, Color: black},
	"resumeTableHead":  {Family: serifFamily, Bold: true, Size: 9, Leading: 12, Color: black},
}
