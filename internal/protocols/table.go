package protocols

import "encoding/json"

// Table maps an endpoint path (or Bidi method) to its raw definition, usually
// an object keyed by HTTP method or "socket". Only the outer object is decoded;
// endpoint values are kept byte for byte and never validated.
type Table map[string]json.RawMessage

// Endpoints returns the number of endpoint keys in the table.
func (t Table) Endpoints() int {
	return len(t)
}

// Commands returns the number of method-level definitions in the table.
// Endpoint values that are not JSON objects count as zero.
func (t Table) Commands() int {
	total := 0
	for _, raw := range t {
		if methods, ok := methodsOf(raw); ok {
			total += len(methods)
		}
	}
	return total
}

// CommandName reads the "command" string of endpoint/method. ok is false when
// the entry is missing or not shaped that way.
func (t Table) CommandName(endpoint, method string) (string, bool) {
	methods, ok := methodsOf(t[endpoint])
	if !ok {
		return "", false
	}
	var def struct {
		Command *string `json:"command"`
	}
	if err := json.Unmarshal(methods[method], &def); err != nil || def.Command == nil {
		return "", false
	}
	return *def.Command, true
}

func methodsOf(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var methods map[string]json.RawMessage
	if err := json.Unmarshal(raw, &methods); err != nil || methods == nil {
		return nil, false
	}
	return methods, true
}
