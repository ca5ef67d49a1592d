package style

import "testing"

func TestAll_EnumerationOrder(t *testing.T) {
	want := []Category{Classic, Hybrid, WetAngel, Volume}
	got := All()
	if len(got) != len(want) {
		t.Fatalf("All() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtremes(t *testing.T) {
	a, b := Extremes()
	if a != Classic || b != Volume {
		t.Errorf("Extremes() = (%q, %q), want (classic, volume)", a, b)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"classic", Classic, false},
		{"wetAngel", WetAngel, false},
		{"volume", Volume, false},
		{"Volume", "", true},
		{"lashLift", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpectrumIndex(t *testing.T) {
	if Classic.SpectrumIndex() != 0 {
		t.Errorf("classic index = %d, want 0", Classic.SpectrumIndex())
	}
	if WetAngel.SpectrumIndex() != 1 {
		t.Errorf("wetAngel index = %d, want 1", WetAngel.SpectrumIndex())
	}
	if Category("nope").SpectrumIndex() != -1 {
		t.Error("unknown category should have index -1")
	}
}

func TestDetailsForEveryCategory(t *testing.T) {
	for _, c := range All() {
		d, ok := DetailsFor(c)
		if !ok {
			t.Errorf("no details for %q", c)
			continue
		}
		if d.Name == "" || d.BookingLabel == "" || len(d.BestFor) == 0 {
			t.Errorf("incomplete details for %q: %+v", c, d)
		}
		if c.DisplayName() != d.Name {
			t.Errorf("DisplayName(%q) = %q, want %q", c, c.DisplayName(), d.Name)
		}
	}
}
