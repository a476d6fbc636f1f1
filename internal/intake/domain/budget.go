package domain

import (
	"strconv"
	"strings"
)

// Budget range tokens offered by the intake form.
var BudgetRanges = []string{"1000-3000", "3000-5000", "5000-10000", "10000-25000", "25000+"}

// Timeline tokens offered by the intake form.
var TimelineOptions = []string{"asap", "1-2months", "2-3months", "3+months", "flexible"}

// ParseBudgetRange derives the numeric bounds of a range token such as
// "5000-10000". Non-digit characters are ignored. An open-ended token such
// as "25000+" has no maximum; a single value without a marker is both
// bounds. Unparseable or zero parts yield nil.
func ParseBudgetRange(token string) (min, max *int) {
	parts := strings.Split(token, "-")

	min = digits(parts[0])
	if len(parts) > 1 && parts[1] != "" {
		max = digits(parts[1])
		return min, max
	}
	if strings.Contains(parts[0], "+") {
		return min, nil
	}
	return min, min
}

func digits(s string) *int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil || n == 0 {
		return nil
	}
	return &n
}
