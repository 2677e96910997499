package schema

import "encoding/json"

type (
	// Button is a single frame button.
	Button struct {
		Label   string       `json:"label"`
		Action  ButtonAction `json:"action"`
		Target  string       `json:"target,omitempty"`
		PostURL string       `json:"post_url,omitempty"`
	}

	// Frame is the typed frame description produced by the parsing layer.
	Frame struct {
		Version          string   `json:"version,omitempty"`
		Title            string   `json:"title,omitempty"`
		Image            string   `json:"image"`
		ImageAspectRatio string   `json:"imageAspectRatio,omitempty"`
		InputText        string   `json:"inputText,omitempty"`
		Buttons          []Button `json:"buttons,omitempty"`
		State            string   `json:"state,omitempty"`
		PostURL          string   `json:"postUrl,omitempty"`
		Accepts          []Accept `json:"accepts,omitempty"`
	}

	// Accept declares a protocol a frame supports.
	Accept struct {
		ID      string `json:"id"`
		Version string `json:"version"`
	}

	// ParseResult is the outcome of parsing one specification.
	ParseResult struct {
		Status        string              `json:"status"`
		Frame         *Frame              `json:"frame,omitempty"`
		Reports       map[string][]Report `json:"reports,omitempty"`
		Specification string              `json:"specification,omitempty"`
		FramesVersion string              `json:"framesVersion,omitempty"`
	}

	// Report is a single parser diagnostic.
	Report struct {
		Level   string `json:"level"`
		Message string `json:"message"`
		Source  string `json:"source,omitempty"`
	}

	// ParseResultWithSpecs is the multi-specification body the proxy returns on success.
	ParseResultWithSpecs struct {
		Specs    map[string]*ParseResult `json:"-"`
		Manifest json.RawMessage         `json:"-"`

		// Message is an optional action result message sent alongside the frame.
		Message string `json:"-"`
	}
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	messageKey = "message"
)

// Success reports whether the parser accepted the frame.
func (r *ParseResult) Success() bool {
	return r != nil && r.Status == StatusSuccess && r.Frame != nil
}

// Lookup returns the result for a specification.
func (r *ParseResultWithSpecs) Lookup(specification string) (*ParseResult, bool) {
	if r == nil || r.Specs == nil {
		return nil, false
	}
	ret, ok := r.Specs[specification]
	return ret, ok && ret != nil
}

// Frame returns the frame parsed under the specification, falling back to the
// open frames interpretation.
func (r *ParseResultWithSpecs) Frame(specification string) *Frame {
	if result, ok := r.Lookup(specification); ok && result.Frame != nil {
		return result.Frame
	}
	if result, ok := r.Lookup(SpecificationOpenFrames); ok {
		return result.Frame
	}
	return nil
}

func (r *ParseResultWithSpecs) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Specs = make(map[string]*ParseResult, len(raw))
	for key, value := range raw {
		switch key {
		case FarcasterManifestKey:
			r.Manifest = value
			continue
		case messageKey:
			_ = json.Unmarshal(value, &r.Message)
			continue
		}
		result := &ParseResult{}
		if err := json.Unmarshal(value, result); err != nil {
			return err
		}
		if result.Specification == "" {
			result.Specification = key
		}
		r.Specs[key] = result
	}
	return nil
}

func (r ParseResultWithSpecs) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Specs)+1)
	for key, value := range r.Specs {
		out[key] = value
	}
	if len(r.Manifest) > 0 {
		out[FarcasterManifestKey] = r.Manifest
	}
	if r.Message != "" {
		out[messageKey] = r.Message
	}
	return json.Marshal(out)
}
