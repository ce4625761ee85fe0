package leads

const (
	RatingNone    = 0
	RatingPartial = 1
	RatingFull    = 2
)

// Rate scores a lead by how many of its contact channels validated.
func Rate(emailValid, phoneValid, taxIDValid bool) int {
	valid := 0
	for _, ok := range []bool{emailValid, phoneValid, taxIDValid} {
		if ok {
			valid++
		}
	}
	switch valid {
	case 3:
		return RatingFull
	case 0:
		return RatingNone
	default:
		return RatingPartial
	}
}
