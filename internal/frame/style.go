package frame

import (
	"math"
	"strconv"
)

// ColorClass is the semantic colour of a line. The painter picks the
// actual colour.
type ColorClass int

const (
	Neutral ColorClass = iota
	Positive
	Negative
	Informational
	Muted
)

func (c ColorClass) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Informational:
		return "informational"
	case Muted:
		return "muted"
	default:
		return "neutral"
	}
}

// Placeholder stands in for a value that cannot be shown.
const Placeholder = "—"

// StyledLine is one line of text and its colour class.
type StyledLine struct {
	Text  string
	Class ColorClass
}

// Format controls how deltas and prices are printed.
type Format struct {
	PriceDecimals       uint
	PositiveDecimals    uint
	NonPositiveDecimals uint

	// PositivePrefix puts "+" in front of positive deltas. Negative values
	// carry their own sign.
	PositivePrefix bool
}

// DefaultFormat matches what the dashboard has always shown.
var DefaultFormat = Format{
	PriceDecimals:       4,
	PositiveDecimals:    3,
	NonPositiveDecimals: 3,
	PositivePrefix:      true,
}

// Style renders a percentage delta with the sign-driven colour rule.
func Style(value float64, label string, f Format) StyledLine {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return StyledLine{Text: label + ": " + Placeholder, Class: Informational}
	}

	switch {
	case value > 0:
		num := strconv.FormatFloat(value, 'f', int(f.PositiveDecimals), 64)
		if f.PositivePrefix {
			num = "+" + num
		}
		return StyledLine{Text: label + ": " + num + "%", Class: Positive}
	case value < 0:
		num := strconv.FormatFloat(value, 'f', int(f.NonPositiveDecimals), 64)
		return StyledLine{Text: label + ": " + num + "%", Class: Negative}
	default:
		// Covers negative zero too.
		num := strconv.FormatFloat(0, 'f', int(f.NonPositiveDecimals), 64)
		return StyledLine{Text: label + ": " + num + "%", Class: Neutral}
	}
}

// Price renders the price line.
func Price(value float64, f Format) StyledLine {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return StyledLine{Text: "Price: " + Placeholder, Class: Informational}
	}
	return StyledLine{
		Text:  "Price: $" + strconv.FormatFloat(value, 'f', int(f.PriceDecimals), 64),
		Class: Informational,
	}
}
