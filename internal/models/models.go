package models

// JSONValue is a generic type to represent any decoded JSON value.
// With json.Decoder.UseNumber() in effect this is one of: string,
// json.Number, bool, nil, JSONObject or JSONArray.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Document holds one parsed input document. Several documents can be
// described together: each root is lifted to a shape and merged into the
// running description.
type Document struct {
	Root JSONValue
	// Source is the file path the document was read from, or "stdin".
	Source string
}
