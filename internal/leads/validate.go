package leads

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{11,15}$`)
	taxIDPattern = regexp.MustCompile(`^[0-9]{14}$`)

	taxIDPunctuation = strings.NewReplacer(".", "", "-", "", "/", "")
)

// ValidateEmail reports whether s looks like local@domain.tld.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePhone accepts 11 to 15 digits with an optional leading '+'.
func ValidatePhone(s string) bool {
	return phonePattern.MatchString(s)
}

// CleanTaxID strips the punctuation commonly used when writing a CNPJ.
func CleanTaxID(s string) string {
	return taxIDPunctuation.Replace(s)
}

// ValidateTaxID cleans s and reports whether the result is a 14 digit CNPJ.
// The cleaned value is returned either way.
func ValidateTaxID(s string) (bool, string) {
	cleaned := CleanTaxID(s)
	return taxIDPattern.MatchString(cleaned), cleaned
}

// Validation is the per-category outcome for an Extraction.
type Validation struct {
	EmailValid bool
	PhoneValid bool
	TaxIDValid bool
	// CleanTaxIDs is aligned index by index with Extraction.TaxIDs.
	CleanTaxIDs []string
}

// Validate checks every extracted value. A category is valid when all of its
// values are; an empty category is valid.
func Validate(e Extraction) Validation {
	out := Validation{
		EmailValid:  true,
		PhoneValid:  true,
		TaxIDValid:  true,
		CleanTaxIDs: make([]string, 0, len(e.TaxIDs)),
	}
	for _, email := range e.Emails {
		if !ValidateEmail(email) {
			out.EmailValid = false
		}
	}
	for _, phone := range e.Phones {
		if !ValidatePhone(phone) {
			out.PhoneValid = false
		}
	}
	for _, taxID := range e.TaxIDs {
		ok, cleaned := ValidateTaxID(taxID)
		if !ok {
			out.TaxIDValid = false
		}
		out.CleanTaxIDs = append(out.CleanTaxIDs, cleaned)
	}
	return out
}
