package statistics

import (
	"math"
	"testing"
)

func TestBootstrapGeoMeanCI_Empty(t *testing.T) {
	ci := BootstrapGeoMeanCI(nil, 0.95, 1)
	if ci.Center != 0 || ci.Lower != 0 || ci.Upper != 0 {
		t.Errorf("expected zero CI for empty input, got %+v", ci)
	}
	if ci.NumBootstraps != 0 {
		t.Errorf("expected 0 bootstraps for empty input, got %d", ci.NumBootstraps)
	}
}

func TestBootstrapGeoMeanCI_SingleValue(t *testing.T) {
	ci := BootstrapGeoMeanCI([]float64{1500}, 0.95, 1)
	if math.Abs(ci.Center-1500) > 1e-9 || ci.Lower != ci.Center || ci.Upper != ci.Center {
		t.Errorf("expected degenerate CI for single value, got %+v", ci)
	}
}

func TestBootstrapGeoMeanCI_NonPositive(t *testing.T) {
	ci := BootstrapGeoMeanCI([]float64{10, 0, 20}, 0.95, 1)
	if ci.Center != 0 || ci.NumBootstraps != 0 {
		t.Errorf("expected zero CI for non-positive input, got %+v", ci)
	}
}

func TestBootstrapGeoMeanCI_IdenticalValues(t *testing.T) {
	ci := BootstrapGeoMeanCI([]float64{2000, 2000, 2000, 2000}, 0.95, 42)
	if math.Abs(ci.Lower-2000) > 1e-6 || math.Abs(ci.Upper-2000) > 1e-6 {
		t.Errorf("expected CI [2000, 2000] for identical values, got [%f, %f]", ci.Lower, ci.Upper)
	}
}

func TestBootstrapGeoMeanCI_Spread(t *testing.T) {
	values := []float64{100, 400, 200, 300, 250, 150}
	ci := BootstrapGeoMeanCI(values, 0.95, 42)

	logSum := 0.0
	for _, v := range values {
		logSum += math.Log(v)
	}
	want := math.Exp(logSum / float64(len(values)))
	if math.Abs(ci.Center-want) > 1e-9 {
		t.Errorf("Center = %f, want geometric mean %f", ci.Center, want)
	}
	if !ci.Contains(ci.Center) {
		t.Errorf("CI [%f, %f] should contain center %f", ci.Lower, ci.Upper, ci.Center)
	}
	if ci.Lower >= ci.Upper {
		t.Errorf("lower %f should be below upper %f", ci.Lower, ci.Upper)
	}
	if ci.Lower < 100 || ci.Upper > 400 {
		t.Errorf("CI [%f, %f] should stay within the data range", ci.Lower, ci.Upper)
	}
	if ci.NumBootstraps != DefaultBootstrapIterations {
		t.Errorf("expected %d bootstraps, got %d", DefaultBootstrapIterations, ci.NumBootstraps)
	}
}

func TestBootstrapGeoMeanCI_Reproducible(t *testing.T) {
	values := []float64{3, 9, 27, 81}
	a := BootstrapGeoMeanCI(values, 0.9, 7)
	b := BootstrapGeoMeanCI(values, 0.9, 7)
	if a != b {
		t.Errorf("same seed should give the same interval: %+v vs %+v", a, b)
	}
}
