package bravesearch

import (
	"encoding/json"
	"maps"
)

// Envelope is a Brave web search response, or the error that replaced it.
//
// Keys other than "error" and "web" are kept verbatim in Extra, and the same
// holds for the "web" section and each result, so a decoded response encodes
// back to the same document.
type Envelope struct {
	Error string                     `json:"error,omitempty" jsonschema:"description=Set when the search failed"`
	Web   *WebSection                `json:"web,omitempty" jsonschema:"description=Web search results"`
	Extra map[string]json.RawMessage `json:"-"`
}

// WebSection is the "web" object of a search response.
type WebSection struct {
	Results []Result                   `json:"results" jsonschema:"description=Search results in rank order"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// Result is a single web search hit.
type Result struct {
	Title       string                     `json:"title,omitempty"`
	URL         string                     `json:"url,omitempty"`
	Description string                     `json:"description,omitempty"`
	Extra       map[string]json.RawMessage `json:"-"`
}

// ErrorEnvelope returns the envelope used to report a failed search: the
// message and an empty result list.
func ErrorEnvelope(message string) Envelope {
	return Envelope{Error: message, Web: &WebSection{Results: []Result{}}}
}

// Failed reports whether the envelope carries an error. The results of a
// failed envelope must not be used.
func (e Envelope) Failed() bool {
	return e.Error != ""
}

// Results returns the web results, or nil when the envelope failed or has no
// web section.
func (e Envelope) Results() []Result {
	if e.Failed() || e.Web == nil {
		return nil
	}
	return e.Web.Results
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*e = Envelope{}
	if raw, ok := fields["error"]; ok {
		if err := json.Unmarshal(raw, &e.Error); err != nil {
			// Non-string error payloads are kept as their JSON text.
			e.Error = string(raw)
		}
		delete(fields, "error")
	}
	if raw, ok := fields["web"]; ok {
		if string(raw) != "null" {
			e.Web = &WebSection{}
			if err := json.Unmarshal(raw, e.Web); err != nil {
				return err
			}
		}
		delete(fields, "web")
	}
	if len(fields) > 0 {
		e.Extra = fields
	}
	return nil
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(e.Extra)+2)
	for k, v := range e.Extra {
		fields[k] = v
	}
	if e.Error != "" {
		fields["error"] = e.Error
	}
	if e.Web != nil {
		fields["web"] = e.Web
	}
	return json.Marshal(fields)
}

func (w *WebSection) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*w = WebSection{}
	if raw, ok := fields["results"]; ok {
		if err := json.Unmarshal(raw, &w.Results); err != nil {
			return err
		}
		delete(fields, "results")
	}
	if len(fields) > 0 {
		w.Extra = fields
	}
	return nil
}

func (w WebSection) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(w.Extra)+1)
	for k, v := range w.Extra {
		fields[k] = v
	}
	results := w.Results
	if results == nil {
		results = []Result{}
	}
	fields["results"] = results
	return json.Marshal(fields)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Result{
		Title:       takeString(fields, "title"),
		URL:         takeString(fields, "url"),
		Description: takeString(fields, "description"),
	}
	if len(fields) > 0 {
		r.Extra = fields
	}
	return nil
}

func (r Result) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(r.Extra)+3)
	for k, v := range r.Extra {
		fields[k] = v
	}
	putString(fields, "title", r.Title)
	putString(fields, "url", r.URL)
	putString(fields, "description", r.Description)
	return json.Marshal(fields)
}

// takeString moves a string field out of fields. Values that are not JSON
// strings, null included, stay in fields.
func takeString(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	delete(fields, key)
	return s
}

func putString(fields map[string]any, key, value string) {
	if value == "" {
		return
	}
	fields[key] = value
}

// cloneExtra copies the passthrough keys so an aggregate does not share maps
// with the page it was built from.
func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	return maps.Clone(extra)
}
