package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const ContextKeyCountry = "country_code"

// ClientCountry resolves the shopper's country code for eligibility
// checks. An explicit ?country= wins; otherwise the CDN-provided
// CF-IPCountry header is used. When neither yields a usable two-letter
// code the country stays empty and every product is treated as eligible.
func ClientCountry() gin.HandlerFunc {
	return func(c *gin.Context) {
		country := strings.ToUpper(strings.TrimSpace(c.Query("country")))
		if country == "" {
			country = strings.ToUpper(strings.TrimSpace(c.GetHeader("CF-IPCountry")))
		}
		if len(country) != 2 || country == "XX" {
			country = ""
		}

		c.Set(ContextKeyCountry, country)
		c.Next()
	}
}

// GetCountry returns the country code resolved by ClientCountry.
func GetCountry(c *gin.Context) string {
	return c.GetString(ContextKeyCountry)
}
