package model

import "strconv"

// Money is a monetary amount in whole US dollars.
type Money int64

// String formats the amount with a dollar sign and comma-grouped digits,
// e.g. Money(50000).String() == "$50,000".
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	digits := strconv.FormatInt(v, 10)

	// Insert a comma before every group of three digits from the right.
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	return sign + "$" + string(grouped)
}
