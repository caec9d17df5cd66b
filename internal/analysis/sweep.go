package analysis

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ErrInvalidSweep is returned for sweep parameters rejected before sampling.
var ErrInvalidSweep = errors.New("invalid sweep parameters")

// MaxSweepRadii bounds the number of radii a single sweep may visit.
const MaxSweepRadii = 1 << 20

// SweepParams is an inclusive radius range walked in Step increments.
type SweepParams struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// Validate checks Step > 0, Max >= Min, Min >= 0 and that the range holds
// at most MaxSweepRadii radii.
func (p SweepParams) Validate() error {
	switch {
	case p.Step <= 0:
		return fmt.Errorf("%w: step must be > 0, got %d", ErrInvalidSweep, p.Step)
	case p.Min < 0:
		return fmt.Errorf("%w: min radius must be >= 0, got %d", ErrInvalidSweep, p.Min)
	case p.Max < p.Min:
		return fmt.Errorf("%w: max radius %d is below min radius %d", ErrInvalidSweep, p.Max, p.Min)
	case p.count() > MaxSweepRadii:
		return fmt.Errorf("%w: %d..%d step %d visits more than %d radii",
			ErrInvalidSweep, p.Min, p.Max, p.Step, MaxSweepRadii)
	}
	return nil
}

// count is the number of radii in a range with 0 <= Min <= Max and Step > 0.
func (p SweepParams) count() int {
	return (p.Max-p.Min)/p.Step + 1
}

// Radii lists the radii a sweep visits: Min, Min+Step, ... up to Max.
func (p SweepParams) Radii() []int {
	if p.Validate() != nil {
		return nil
	}
	radii := make([]int, 0, p.count())
	for r := p.Min; ; r += p.Step {
		radii = append(radii, r)
		if r > p.Max-p.Step {
			break
		}
	}
	return radii
}

// ParseSweepParams parses the textual min, max and step fields.
func ParseSweepParams(minText, maxText, stepText string) (SweepParams, error) {
	var p SweepParams
	fields := []struct {
		name string
		text string
		dst  *int
	}{
		{"min", minText, &p.Min},
		{"max", maxText, &p.Max},
		{"step", stepText, &p.Step},
	}

	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f.text))
		if err != nil {
			return SweepParams{}, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidSweep, f.name, f.text)
		}
		*f.dst = v
	}
	if err := p.Validate(); err != nil {
		return SweepParams{}, err
	}
	return p, nil
}

// Profile is a sequence of radial samples in strictly increasing radius.
type Profile []RadialSample

// Sweep samples every radius of p around c. Parameters are validated before
// any sampling; on error no profile is returned.
func Sweep(img *image.NRGBA, c Point, p SweepParams) (Profile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	radii := p.Radii()
	profile := make(Profile, 0, len(radii))
	for _, r := range radii {
		s, err := Sample(img, c, r)
		if err != nil {
			return nil, err
		}
		profile = append(profile, s)
	}
	return profile, nil
}

// Summary condenses a profile for the results feed.
type Summary struct {
	Radii    int `json:"radii"`
	WithData int `json:"with_data"`
	// WeightedMean is the sample-count weighted mean of the valid averages.
	WeightedMean float64 `json:"weighted_mean"`
	PeakRadius   int     `json:"peak_radius"`
	PeakAverage  float64 `json:"peak_average"`
}

// Summarize computes the summary. Mean and peak stay zero when no radius
// has data.
func (p Profile) Summarize() Summary {
	s := Summary{Radii: len(p)}

	var values, weights []float64
	for _, rs := range p {
		if !rs.Valid() {
			continue
		}
		if len(values) == 0 || rs.Average > s.PeakAverage {
			s.PeakRadius = rs.Radius
			s.PeakAverage = rs.Average
		}
		values = append(values, rs.Average)
		weights = append(weights, float64(rs.Samples))
	}

	s.WithData = len(values)
	if s.WithData > 0 {
		s.WeightedMean = stat.Mean(values, weights)
	}
	return s
}

func (s Summary) String() string {
	if s.WithData == 0 {
		return fmt.Sprintf("sweep: %d radii, none inside the image", s.Radii)
	}
	return fmt.Sprintf("sweep: %d radii, %d with data, mean %.4f, peak %.4f at R=%d",
		s.Radii, s.WithData, s.WeightedMean, s.PeakAverage, s.PeakRadius)
}
