package leads

import "strings"

// Category is the kind of contact information a named field carries.
type Category int

const (
	CategoryNone Category = iota
	CategoryEmail
	CategoryPhone
	CategoryTaxID
	CategoryFirstName
	CategoryLastName
)

func (c Category) String() string {
	switch c {
	case CategoryEmail:
		return "email"
	case CategoryPhone:
		return "phone"
	case CategoryTaxID:
		return "tax_id"
	case CategoryFirstName:
		return "first_name"
	case CategoryLastName:
		return "last_name"
	default:
		return "none"
	}
}

// aliases is checked in order; the first list containing a name wins.
var aliases = []struct {
	category Category
	names    map[string]struct{}
}{
	{CategoryEmail, nameSet("email", "email_address", "mail", "e-mail")},
	{CategoryPhone, nameSet("telefone", "phone", "phone_number", "mobile", "contact_number", "celular")},
	{CategoryTaxID, nameSet("cnpj", "cnpj_da_empresa", "company_cnpj")},
	{CategoryFirstName, nameSet("nome", "name", "first_name")},
	{CategoryLastName, nameSet("sobrenome", "lastname", "last_name")},
}

func nameSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Categorize maps a form field name to its contact category, ignoring case.
// Unknown names return CategoryNone.
func Categorize(fieldName string) Category {
	name := strings.ToLower(strings.TrimSpace(fieldName))
	for _, a := range aliases {
		if _, ok := a.names[name]; ok {
			return a.category
		}
	}
	return CategoryNone
}
