package leads

import "time"

const (
	// TimestampLayout formats Record.ReceivedAt (DD/MM/YYYY HH:MM:SS).
	TimestampLayout = "02/01/2006 15:04:05"
	// DayLayout names the daily ledger a record is appended to.
	DayLayout = "2006-01-02"
)

// Record is an enriched lead as returned to callers and stored in the ledger.
type Record struct {
	Emails     []string `json:"emails"`
	Phones     []string `json:"phones"`
	TaxIDs     []string `json:"cnpjs"`
	Names      []string `json:"names"`
	LastNames  []string `json:"last_names"`
	ReceivedAt string   `json:"data"`
	Origin     string   `json:"origem"`
	EmailValid bool     `json:"email_valido"`
	PhoneValid bool     `json:"telefone_valido"`
	TaxIDValid bool     `json:"cnpj_valido"`
	Rating     int      `json:"rating"`
}

// Enrich runs extraction, validation and rating over payload. at should
// already be in the zone the timestamp is reported in.
func Enrich(payload Value, path string, at time.Time) Record {
	extracted := Extract(payload)
	validation := Validate(extracted)

	return Record{
		Emails:     nonNil(extracted.Emails),
		Phones:     nonNil(extracted.Phones),
		TaxIDs:     validation.CleanTaxIDs,
		Names:      nonNil(extracted.Names),
		LastNames:  nonNil(extracted.LastNames),
		ReceivedAt: at.Format(TimestampLayout),
		Origin:     ResolveOrigin(path),
		EmailValid: validation.EmailValid,
		PhoneValid: validation.PhoneValid,
		TaxIDValid: validation.TaxIDValid,
		Rating:     Rate(validation.EmailValid, validation.PhoneValid, validation.TaxIDValid),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
