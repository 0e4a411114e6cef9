package batch

import (
	"errors"

	"github.com/benitha200/cherryapp-backend/internal/model"
)

// ErrUnsupportedProcessingType no bucket schema for the processing type
var ErrUnsupportedProcessingType = errors.New("unsupported processing type")

// ── bucket schemas ──

var (
	FullyWashedGrades = []string{"A0", "A1", "A2", "A3"}
	NaturalGrades     = []string{"N1", "N2"}
	SecondaryGrades   = []string{"B1", "B2"}
	HoneyGrades       = []string{"H1"}
)

// Output one bagging-off row worth of buckets
type Output struct {
	ProcessingType string
	Buckets        model.OutputBuckets
}

// Grades bucket names a bagging-off of processingType on batchNo may hold
func Grades(processingType, batchNo string) ([]string, error) {
	switch model.NormalizeProcessingType(processingType) {
	case model.ProcessingHoney:
		return HoneyGrades, nil
	case model.ProcessingNatural:
		if IsSecondary(batchNo) {
			return SecondaryGrades, nil
		}
		return NaturalGrades, nil
	case model.ProcessingFullyWashed:
		if IsSecondary(batchNo) {
			return SecondaryGrades, nil
		}
		return FullyWashedGrades, nil
	}
	return nil, ErrUnsupportedProcessingType
}

// Split maps a reported bucket map onto the rows it produces.
// Honey output may carry a companion fully-washed output, which becomes a
// second FULLY_WASHED row. Zero buckets are dropped; rows left empty are
// not returned.
func Split(processingType, batchNo string, reported map[string]float64) ([]Output, error) {
	canonical := model.NormalizeProcessingType(processingType)
	grades, err := Grades(canonical, batchNo)
	if err != nil {
		return nil, err
	}

	var outputs []Output
	if b := pick(reported, grades); len(b) > 0 {
		outputs = append(outputs, Output{ProcessingType: canonical, Buckets: b})
	}

	if canonical == model.ProcessingHoney {
		if b := pick(reported, FullyWashedGrades); len(b) > 0 {
			outputs = append(outputs, Output{ProcessingType: model.ProcessingFullyWashed, Buckets: b})
		}
	}

	return outputs, nil
}

// Merge adds delta onto base component-wise, returning a new map
func Merge(base, delta model.OutputBuckets) model.OutputBuckets {
	out := make(model.OutputBuckets, len(base)+len(delta))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range delta {
		out[k] += v
	}
	return out
}

func pick(reported map[string]float64, grades []string) model.OutputBuckets {
	b := model.OutputBuckets{}
	for _, g := range grades {
		if kg := reported[g]; kg > 0 {
			b[g] = kg
		}
	}
	return b
}
