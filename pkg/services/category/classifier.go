package category

import "math"

// Label is one of the six ordered AQI severity bands.
type Label string

const (
	Good         Label = "Good"
	Satisfactory Label = "Satisfactory"
	Moderate     Label = "Moderate"
	Poor         Label = "Poor"
	VeryPoor     Label = "Very Poor"
	Severe       Label = "Severe"
)

// band upper bounds are inclusive: 50 is still Good, 400 is still Very Poor.
var bands = []struct {
	upper float64
	label Label
}{
	{50, Good},
	{100, Satisfactory},
	{200, Moderate},
	{300, Poor},
	{400, VeryPoor},
}

// Classify maps a metric value to its severity band. The second result
// is false for missing (NaN) input, which carries no band.
func Classify(value float64) (Label, bool) {
	if math.IsNaN(value) {
		return "", false
	}
	for _, b := range bands {
		if value <= b.upper {
			return b.label, true
		}
	}
	return Severe, true
}

var colors = map[Label]string{
	Good:         "#009865",
	Satisfactory: "#a3c853",
	Moderate:     "#fff833",
	Poor:         "#f29c33",
	VeryPoor:     "#e93f33",
	Severe:       "#af2d24",
}

// Color returns the conventional display color for a band.
func Color(l Label) string {
	return colors[l]
}

// Labels lists the bands from least to most severe.
func Labels() []Label {
	return []Label{Good, Satisfactory, Moderate, Poor, VeryPoor, Severe}
}
