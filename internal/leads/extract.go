package leads

// namedFieldKey is the member under which lead forms (Meta lead ads and
// similar) ship their answers as [{"name": ..., "values": [...]}].
const namedFieldKey = "field_name"

// Extraction holds every contact value found in a payload, per category, in
// traversal order. Duplicates are kept.
type Extraction struct {
	Emails    []string
	Phones    []string
	TaxIDs    []string
	Names     []string
	LastNames []string
}

func (e *Extraction) add(c Category, values []string) {
	switch c {
	case CategoryEmail:
		e.Emails = append(e.Emails, values...)
	case CategoryPhone:
		e.Phones = append(e.Phones, values...)
	case CategoryTaxID:
		e.TaxIDs = append(e.TaxIDs, values...)
	case CategoryFirstName:
		e.Names = append(e.Names, values...)
	case CategoryLastName:
		e.LastNames = append(e.LastNames, values...)
	}
}

// Extract walks the payload and collects contact values from every
// named-field list it contains, at any depth. Fields at the current level are
// collected before nested objects and arrays are visited.
func Extract(payload Value) Extraction {
	var out Extraction
	extractInto(&out, payload)
	return out
}

func extractInto(out *Extraction, v Value) {
	switch v.Kind {
	case Object:
		if list, ok := v.Lookup(namedFieldKey); ok && list.Kind == Array {
			for _, item := range list.Items {
				collectNamedField(out, item)
			}
		}
		for _, m := range v.Members {
			if m.Value.Kind == Object || m.Value.Kind == Array {
				extractInto(out, m.Value)
			}
		}
	case Array:
		for _, item := range v.Items {
			extractInto(out, item)
		}
	}
}

func collectNamedField(out *Extraction, item Value) {
	name, ok := item.Lookup("name")
	if !ok {
		return
	}
	fieldName, ok := name.Str()
	if !ok {
		return
	}
	values, ok := item.Lookup("values")
	if !ok || values.Kind != Array || len(values.Items) == 0 {
		return
	}
	category := Categorize(fieldName)
	if category == CategoryNone {
		return
	}
	out.add(category, scalarTexts(values.Items))
}

// scalarTexts keeps strings verbatim and numbers/booleans as their JSON
// literal; nulls and containers carry no contact value.
func scalarTexts(items []Value) []string {
	texts := make([]string, 0, len(items))
	for _, item := range items {
		switch item.Kind {
		case String, Number:
			texts = append(texts, item.Text)
		case Bool:
			if item.Bool {
				texts = append(texts, "true")
			} else {
				texts = append(texts, "false")
			}
		}
	}
	return texts
}
