package model

// IsEligible reports whether the product may be sold into the given
// country. An empty country code means "no country supplied" and every
// product is eligible; that is a display default, not a checkout
// guarantee.
// Eligibility is a whole-product property; variants never differ.
func (p *Product) IsEligible(countryCode string) bool {
	if countryCode == "" {
		return true
	}

	if p.SellGlobally {
		return !containsCountry(p.RestrictedCountries, countryCode)
	}
	return containsCountry(p.AllowedCountries, countryCode)
}

func containsCountry(list []string, code string) bool {
	for _, c := range list {
		if c == code {
			return true
		}
	}
	return false
}
