package workitems

// Parameters are the search settings carried by a work item payload. All
// fields are optional in the payload; absence falls back to the zero value.
type Parameters struct {
	Phrase string
	Months int
	Topic  string
}

// ParametersFrom extracts search parameters from the optional "search"
// sub-object of an item's payload. A missing sub-object or missing keys are
// not errors; the corresponding fields keep their defaults.
func ParametersFrom(item *Item) Parameters {
	var p Parameters
	if item == nil {
		return p
	}

	raw, ok := item.Payload["search"].(map[string]any)
	if !ok {
		return p
	}

	if phrase, ok := raw["phrase"].(string); ok {
		p.Phrase = phrase
	}
	if months, ok := raw["months"].(float64); ok && months > 0 {
		p.Months = int(months)
	}
	if topic, ok := raw["topic"].(string); ok {
		p.Topic = topic
	}
	return p
}
