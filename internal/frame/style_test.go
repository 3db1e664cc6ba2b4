package frame

import (
	"math"
	"strings"
	"testing"
)

func TestStyleSignRule(t *testing.T) {
	f := Format{PositiveDecimals: 2, NonPositiveDecimals: 2, PositivePrefix: true}
	tests := []struct {
		name  string
		value float64
		class ColorClass
		text  string
	}{
		{"positive", 1.23456, Positive, "Change 24h: +1.23%"},
		{"negative", -1.23456, Negative, "Change 24h: -1.23%"},
		{"zero", 0, Neutral, "Change 24h: 0.00%"},
		{"negative zero", math.Copysign(0, -1), Neutral, "Change 24h: 0.00%"},
		{"nan", math.NaN(), Informational, "Change 24h: " + Placeholder},
		{"+inf", math.Inf(1), Informational, "Change 24h: " + Placeholder},
		{"-inf", math.Inf(-1), Informational, "Change 24h: " + Placeholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Style(tt.value, LabelChange24h, f)
			if got.Class != tt.class {
				t.Errorf("expected class %s, got %s", tt.class, got.Class)
			}
			if got.Text != tt.text {
				t.Errorf("expected text %q, got %q", tt.text, got.Text)
			}
		})
	}
}

func TestStylePrecisionPerBranch(t *testing.T) {
	f := Format{PositiveDecimals: 5, NonPositiveDecimals: 6}

	pos := Style(0.5, "x", f)
	if !strings.HasSuffix(pos.Text, "0.50000%") {
		t.Errorf("expected 5 positive digits, got %q", pos.Text)
	}
	if strings.Contains(pos.Text, "+") {
		t.Errorf("expected no prefix when disabled, got %q", pos.Text)
	}

	neg := Style(-0.5, "x", f)
	if !strings.HasSuffix(neg.Text, "-0.500000%") {
		t.Errorf("expected 6 non-positive digits, got %q", neg.Text)
	}
}

func TestStyleDefaultFormatContainsRoundedValue(t *testing.T) {
	got := Style(1.23456, LabelChange1h, DefaultFormat)
	if got.Class != Positive {
		t.Errorf("expected positive, got %s", got.Class)
	}
	if !strings.Contains(got.Text, "+1.23") {
		t.Errorf("expected text to contain +1.23, got %q", got.Text)
	}
}

func TestPrice(t *testing.T) {
	got := Price(0.812345, Format{PriceDecimals: 4})
	if got.Text != "Price: $0.8123" {
		t.Errorf("expected %q, got %q", "Price: $0.8123", got.Text)
	}
	if got.Class != Informational {
		t.Errorf("expected informational, got %s", got.Class)
	}
	if nan := Price(math.NaN(), DefaultFormat); !strings.Contains(nan.Text, Placeholder) {
		t.Errorf("expected placeholder for NaN price, got %q", nan.Text)
	}
}
