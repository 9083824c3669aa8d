package checkout

import (
	"regexp"
	"strings"

	"github.com/quickkart/storefront/internal/domain"
)

var (
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	upiRe     = regexp.MustCompile(`^[\w.\-]{2,}@[a-zA-Z]{2,}$`)
	expiryRe  = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvRe     = regexp.MustCompile(`^[0-9]{3,4}$`)
	nonDigit  = regexp.MustCompile(`\D`)
)

func validAddress(a domain.Address) bool {
	return strings.TrimSpace(a.Name) != "" &&
		phoneRe.MatchString(strings.TrimSpace(a.Phone)) &&
		strings.TrimSpace(a.Line1) != "" &&
		pincodeRe.MatchString(strings.TrimSpace(a.Pincode))
}

func validUPI(id string) bool {
	return upiRe.MatchString(strings.TrimSpace(id))
}

func validCard(c *CardDetails) bool {
	if c == nil {
		return false
	}
	num := nonDigit.ReplaceAllString(c.Number, "")
	return len(strings.TrimSpace(c.Name)) >= 2 &&
		len(num) >= 13 && len(num) <= 19 &&
		expiryRe.MatchString(strings.TrimSpace(c.Expiry)) &&
		cvvRe.MatchString(strings.TrimSpace(c.CVV))
}
