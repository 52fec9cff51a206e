package export

import (
	"github.com/knitlab/knitscope/knit"
)

// Status palette shared with the host UI, keep in sync with its stylesheet.
const (
	healthyBorder = "#28a745"
	healthyFill   = "#f8fff9"
	warningBorder = "#ff8c00"
	warningFill   = "#fff8e1"
	errorBorder   = "#ff0000"
	errorFill     = "#ffeeee"
)

// paletteFor maps the highest claiming severity to border color, fill color
// and border width. No severity and INFO both render healthy.
func paletteFor(severity knit.Severity) (string, string, int) {
	switch severity {
	case knit.SeverityError:
		return errorBorder, errorFill, 3
	case knit.SeverityWarning:
		return warningBorder, warningFill, 2
	}
	return healthyBorder, healthyFill, 1
}

func stateClass(severity knit.Severity) string {
	switch severity {
	case knit.SeverityError:
		return "error"
	case knit.SeverityWarning:
		return "warning"
	}
	return "healthy"
}

func nodeHints(severity knit.Severity, inCycle bool) VisualHints {
	border, fill, width := paletteFor(severity)
	classes := []string{"node-" + stateClass(severity)}
	if inCycle {
		classes = append(classes, "cycle-member")
	}
	return VisualHints{
		BorderColor:     border,
		BackgroundColor: fill,
		BorderWidth:     width,
		Classes:         classes,
	}
}

func edgeHints(severity knit.Severity, inCycle bool) EdgeHints {
	border, _, width := paletteFor(severity)
	style := "solid"
	if inCycle {
		style = "dashed"
	}
	classes := []string{"edge-" + stateClass(severity)}
	if inCycle {
		classes = append(classes, "cycle-member")
	}
	return EdgeHints{
		BorderColor: border,
		Color:       border,
		Width:       width,
		Style:       style,
		Classes:     classes,
	}
}
