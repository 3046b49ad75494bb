package generation

import (
	"encoding/json"
	"fmt"
)

// Inputs carries the serialized generation inputs in the shape the workflow
// service expects.
type Inputs struct {
	OutlineTitle   string `json:"outline_title"`
	OutlineContent string `json:"outline_content"`
	AuthorInfo     string `json:"author_info"`
	StyleFeatures  string `json:"style_features"`
	SampleText     string `json:"sample_text"`
	WritingPurpose string `json:"writing_purpose"`
	TargetAudience string `json:"target_audience"`
}

type workflowRequest struct {
	Inputs       Inputs `json:"inputs"`
	ResponseMode string `json:"response_mode"`
	User         string `json:"user"`
}

type workflowResponse struct {
	Data struct {
		Status  string `json:"status"`
		Error   string `json:"error"`
		Outputs struct {
			GeneratedArticle string          `json:"generated_article"`
			StructuredOutput json.RawMessage `json:"structured_output"`
		} `json:"outputs"`
	} `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Output is the parsed result of a successful workflow run.
type Output struct {
	Article    string
	Structured json.RawMessage
}

// MalformedResponseError reports a 2xx response whose body lacks the expected
// success markers.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("generation: malformed response: %s", e.Reason)
}

// parseWorkflowResponse is the strict boundary parser: callers only ever see a
// typed Output or an error, never the raw nested body.
func parseWorkflowResponse(raw []byte) (*Output, error) {
	var decoded workflowResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &MalformedResponseError{Reason: "invalid json body"}
	}
	if decoded.Data.Status != "succeeded" {
		reason := fmt.Sprintf("workflow status %q", decoded.Data.Status)
		if decoded.Data.Error != "" {
			reason = fmt.Sprintf("%s: %s", reason, decoded.Data.Error)
		}
		return nil, &MalformedResponseError{Reason: reason}
	}
	if decoded.Data.Outputs.GeneratedArticle == "" {
		return nil, &MalformedResponseError{Reason: "generated_article missing from outputs"}
	}
	out := &Output{Article: decoded.Data.Outputs.GeneratedArticle}
	if len(decoded.Data.Outputs.StructuredOutput) > 0 && string(decoded.Data.Outputs.StructuredOutput) != "null" {
		out.Structured = append(json.RawMessage(nil), decoded.Data.Outputs.StructuredOutput...)
	}
	return out, nil
}
