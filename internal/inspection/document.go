package inspection

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carscope/carscope/pkg/checklist"
	"github.com/carscope/carscope/pkg/scoring"
	"github.com/carscope/carscope/pkg/surface"
)

// Format is the encoding of a score document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DocumentOptions tune how ScoreDocument fills gaps in a document.
type DocumentOptions struct {
	// Template replaces the default checklist for forms that do not embed their own.
	Template *checklist.Template
	// DefaultMarketValue is used when the document leaves market_value at zero.
	DefaultMarketValue float64
	// Now is the reference date for legal expiry checks.
	Now time.Time
}

// ScoreDocument scores a standalone document. A document carrying a
// "checklist" key is a raw engine input; anything else is an inspection Form.
func ScoreDocument(scorer Scorer, data []byte, format Format, opts DocumentOptions) (*surface.Report, error) {
	unmarshal := json.Unmarshal
	switch format {
	case FormatJSON, "":
	case FormatYAML:
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}

	var probe map[string]any
	if err := unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidForm, err)
	}

	if _, raw := probe["checklist"]; raw {
		var in scoring.ScoreInput
		if err := unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("%w: decode score input: %w", ErrInvalidForm, err)
		}
		if in.MarketValue == 0 {
			in.MarketValue = opts.DefaultMarketValue
		}
		out, err := scorer.Score(in)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		return surface.NewReport("", in.MarketValue, out), nil
	}

	var form Form
	if err := unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("%w: decode form: %w", ErrInvalidForm, err)
	}
	if form.Template == nil {
		form.Template = opts.Template
	}
	if form.MarketValue == 0 {
		form.MarketValue = opts.DefaultMarketValue
	}
	eval, err := Evaluate(scorer, form, opts.Now)
	if err != nil {
		return nil, err
	}
	return eval.Report(form), nil
}
