package spectrum

import "github.com/michaelplews/opus/encoding"

// MetadataLabels maps AB parameter names to their display labels.
var MetadataLabels = map[string]string{
	"DAT": "Date",
	"FXV": "Upper X Value",
	"LXV": "Lower X Value",
	"DXU": "X Units",
	"MXY": "Max Y Value",
	"MNY": "Min Y Value",
	"NPT": "Number of Points",
	"TIM": "Time",
}

// Metadata flattens the labelled parameters present in params, keyed by label.
// Parameters without a label are left out.
func Metadata(params ParameterSource) map[string]encoding.ParameterValue {
	out := make(map[string]encoding.ParameterValue, len(MetadataLabels))
	for name, label := range MetadataLabels {
		if v, ok := params.Value(name); ok {
			out[label] = v
		}
	}

	return out
}
