package tool

import "encoding/json"

// Call is the boundary input: a tool name and its raw parameter payload.
type Call struct {
	Tool   string         `json:"toolName"`
	Params map[string]any `json:"parameters"`
}

// Result is the boundary output. Exactly one of Data or Err is meaningful,
// discriminated by Success. Mutation results carry minimal acknowledgments,
// never the full document.
type Result struct {
	Success bool
	Data    map[string]any
	Err     *Error
}

// OK builds a success result.
func OK(data map[string]any) Result {
	return Result{Success: true, Data: data}
}

// Fail builds a failure result.
func Fail(err *Error) Result {
	return Result{Success: false, Err: err}
}

// MarshalJSON renders the contract shape: {"success": true, ...data} or
// {"success": false, "error": kind, "message": ..., "details": ...}.
func (r Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Data)+3)
	if r.Success {
		for k, v := range r.Data {
			out[k] = v
		}
		out["success"] = true
		return json.Marshal(out)
	}

	out["success"] = false
	if r.Err != nil {
		out["error"] = r.Err.Kind
		out["message"] = r.Err.Message
		if len(r.Err.Details) > 0 {
			out["details"] = r.Err.Details
		}
	}
	return json.Marshal(out)
}
