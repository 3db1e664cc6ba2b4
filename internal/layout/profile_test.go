package layout

import (
	"testing"
)

func TestBucketsPartitionHeights(t *testing.T) {
	bs := Buckets()
	if len(bs) == 0 {
		t.Fatal("expected at least one bucket")
	}
	if bs[0].Min != 0 {
		t.Errorf("expected first bucket to start at 0, got %d", bs[0].Min)
	}
	for i := 0; i < len(bs)-1; i++ {
		if bs[i].Max != bs[i+1].Min {
			t.Errorf("bucket %d ends at %d but bucket %d starts at %d", i, bs[i].Max, i+1, bs[i+1].Min)
		}
		if bs[i].Max <= bs[i].Min {
			t.Errorf("bucket %d is empty: [%d,%d)", i, bs[i].Min, bs[i].Max)
		}
	}
	if last := bs[len(bs)-1]; last.Max != 0 {
		t.Errorf("expected last bucket to be unbounded, got max %d", last.Max)
	}
}

func TestEveryHeightHasOneBucket(t *testing.T) {
	bs := Buckets()
	for h := uint(0); h < 200; h++ {
		n := 0
		for _, b := range bs {
			if b.Contains(h) {
				n++
				if got := Select(h); got != b.Profile {
					t.Errorf("height %d: Select = %+v, bucket profile = %+v", h, got, b.Profile)
				}
			}
		}
		if n != 1 {
			t.Errorf("height %d falls in %d buckets", h, n)
		}
	}
}

func TestSelectIsDeterministic(t *testing.T) {
	for _, h := range []uint{0, 1, 19, 20, 44, 45, 54, 55, 1000, ^uint(0)} {
		if a, b := Select(h), Select(h); a != b {
			t.Errorf("height %d: %+v != %+v", h, a, b)
		}
	}
}

func TestFieldsAreMonotonicInHeight(t *testing.T) {
	prev := Select(0).Fields()
	for h := uint(1); h < 200; h++ {
		cur := Select(h).Fields()
		seen := make(map[Field]bool, len(cur))
		for _, f := range cur {
			seen[f] = true
		}
		for _, f := range prev {
			if !seen[f] {
				t.Fatalf("field %d visible at height %d disappears at %d", f, h-1, h)
			}
		}
		prev = cur
	}
}

func TestPaddingGrowsOneUnitPerBucket(t *testing.T) {
	bs := Buckets()
	for i := 2; i < len(bs); i++ {
		prev, cur := bs[i-1].Profile, bs[i].Profile
		if cur.LeadingBlankLines != prev.LeadingBlankLines+1 {
			t.Errorf("bucket %d: leading %d after %d", i, cur.LeadingBlankLines, prev.LeadingBlankLines)
		}
		if cur.LeadingBlankLines != cur.TrailingBlankLines {
			t.Errorf("bucket %d: leading %d != trailing %d", i, cur.LeadingBlankLines, cur.TrailingBlankLines)
		}
	}
}

func TestSelectScenarios(t *testing.T) {
	tests := []struct {
		name     string
		height   uint
		tooSmall bool
		show1h   bool
		padding  uint
	}{
		{"zero", 0, true, false, 0},
		{"too small", 18, true, false, 0},
		{"compact", 20, false, false, 0},
		{"mid tier", 45, false, true, 4},
		{"tallest", 60, false, true, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Select(tt.height)
			if p.TooSmall != tt.tooSmall {
				t.Errorf("expected TooSmall %v, got %v", tt.tooSmall, p.TooSmall)
			}
			if p.ShowChange1h != tt.show1h {
				t.Errorf("expected ShowChange1h %v, got %v", tt.show1h, p.ShowChange1h)
			}
			if p.LeadingBlankLines != tt.padding {
				t.Errorf("expected padding %d, got %d", tt.padding, p.LeadingBlankLines)
			}
		})
	}

	if Select(45).LeadingBlankLines >= Select(60).LeadingBlankLines {
		t.Error("expected height 45 to have less padding than height 60")
	}
	if len(Select(18).Fields()) != 0 {
		t.Error("expected the too-small profile to show no fields")
	}
}

func TestCompactProfileDropsSeparators(t *testing.T) {
	if Select(MinHeight).Separators {
		t.Error("expected no separators in the compact bucket")
	}
	if !Select(MinHeight + 4).Separators {
		t.Error("expected separators above the compact bucket")
	}
}
