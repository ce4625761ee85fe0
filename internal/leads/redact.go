package leads

import (
	"crypto/sha256"
	"fmt"
)

// HashContact returns a short, stable fingerprint of a contact value so log
// lines can be correlated without carrying the value itself.
func HashContact(value string) string {
	h := sha256.Sum256([]byte(value))
	return fmt.Sprintf("%x", h[:6])
}

// ContactFingerprints hashes every email and phone on r, in that order.
func ContactFingerprints(r Record) []string {
	out := make([]string, 0, len(r.Emails)+len(r.Phones))
	for _, e := range r.Emails {
		out = append(out, HashContact(e))
	}
	for _, p := range r.Phones {
		out = append(out, HashContact(p))
	}
	return out
}
