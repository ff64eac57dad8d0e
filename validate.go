package houdiniswap

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Every externally supplied scalar passes through one of these before it can
// reach a header, URL or request body.

const (
	maxCredentialLength = 1000
	minAddressLength    = 10
	maxAddressLength    = 200
	minCorrelationIDLen = 10
	maxCorrelationIDLen = 50
)

var forbiddenChars = []string{"\n", "\r", "\t", "\x00"}

// sanitizeText trims surrounding whitespace and rejects empty values and
// control characters that could be used for header or log injection.
func sanitizeText(value, field string) (string, error) {
	sanitized := strings.TrimSpace(value)
	if sanitized == "" {
		return "", newValidationErrorf("%s cannot be empty", field)
	}
	for _, c := range forbiddenChars {
		if strings.Contains(sanitized, c) {
			return "", newValidationErrorf("%s contains invalid characters", field)
		}
	}
	return sanitized, nil
}

// validateAmount accepts ints, floats, exact decimals and numeric strings,
// and requires the value to be strictly greater than zero.
func validateAmount(amount any, field string) error {
	d, err := amountToDecimal(amount, field)
	if err != nil {
		return err
	}
	if d.Sign() <= 0 {
		return newValidationErrorf("%s must be greater than 0, got %s", field, d)
	}
	return nil
}

// normalizeAmountDecimal canonicalizes any accepted numeric representation to
// an exact decimal for internal arithmetic. The conversion always goes
// through an exact-decimal intermediate, never binary floating point.
func normalizeAmountDecimal(amount any) (decimal.Decimal, error) {
	return amountToDecimal(amount, "amount")
}

// normalizeAmountString canonicalizes any accepted numeric representation to
// a wire-safe string.
func normalizeAmountString(amount any) (string, error) {
	if s, ok := amount.(string); ok {
		// A valid numeric string is passed through untouched.
		if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
			return "", newValidationErrorf("amount must be a valid number, got %q", s)
		}
		return strings.TrimSpace(s), nil
	}
	d, err := amountToDecimal(amount, "amount")
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func amountToDecimal(amount any, field string) (decimal.Decimal, error) {
	switch v := amount.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, newValidationErrorf("%s must be a valid number, got %q", field, v)
		}
		return d, nil
	case float64:
		// Shortest round-trip text keeps 0.1 as "0.1", not its binary
		// expansion.
		d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', -1, 64))
		if err != nil {
			return decimal.Decimal{}, newValidationErrorf("%s must be a valid number, got %v", field, v)
		}
		return d, nil
	case float32:
		return amountToDecimal(float64(v), field)
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Decimal{}, newValidationErrorf("%s must be a number, got %T", field, amount)
	}
}

func validatePage(page int, field string) error {
	if page < 1 {
		return newValidationErrorf("%s must be >= 1, got %d", field, page)
	}
	return nil
}

func validatePageSize(pageSize int, field string) error {
	if pageSize < 1 {
		return newValidationErrorf("%s must be >= 1, got %d", field, pageSize)
	}
	return nil
}

// validateHexString sanitizes value and requires the remainder to parse as
// base 16. A 0x prefix is accepted.
func validateHexString(value, field string) error {
	sanitized, err := sanitizeText(value, field)
	if err != nil {
		return err
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(sanitized, "0x"), "0X")
	if trimmed == "" {
		return newValidationErrorf("%s must be a valid hexadecimal string", field)
	}
	if _, err := strconv.ParseUint(trimmed, 16, 64); err != nil {
		// Hashes are longer than 64 bits; fall back to a digit scan.
		for _, r := range trimmed {
			if !isHexDigit(r) {
				return newValidationErrorf("%s must be a valid hexadecimal string", field)
			}
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// validateCorrelationID checks a houdini id: alphanumeric plus underscore and
// hyphen, 10 to 50 characters.
func validateCorrelationID(id string) error {
	sanitized, err := sanitizeText(id, "houdini_id")
	if err != nil {
		return err
	}
	for _, r := range sanitized {
		if r == '_' || r == '-' {
			continue
		}
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		return newValidationErrorf("houdini_id must be alphanumeric (may include _ or -)")
	}
	if len(sanitized) < minCorrelationIDLen || len(sanitized) > maxCorrelationIDLen {
		return newValidationErrorf("houdini_id must be between %d and %d characters, got %d",
			minCorrelationIDLen, maxCorrelationIDLen, len(sanitized))
	}
	return nil
}

// validateAddress sanitizes address and checks its length. When a network
// with a non-empty validation pattern is supplied, the address must match it.
// The pattern comes from server-supplied metadata and may be malformed; a
// compile failure skips the pattern check rather than failing validation.
func validateAddress(address string, network *Network, field string) error {
	sanitized, err := sanitizeText(address, field)
	if err != nil {
		return err
	}
	if network != nil && network.AddressValidation != "" {
		if pattern, err := regexp.Compile(network.AddressValidation); err == nil {
			if !pattern.MatchString(sanitized) {
				return newValidationErrorf("%s does not match expected format for network %s: %s",
					field, network.Name, network.AddressValidation)
			}
		}
	}
	if len(sanitized) < minAddressLength || len(sanitized) > maxAddressLength {
		return newValidationErrorf("%s length must be between %d and %d characters",
			field, minAddressLength, maxAddressLength)
	}
	return nil
}

// validateCredentials rejects credentials that would break the
// "<key>:<secret>" authorization header or blow past sane header limits.
func validateCredentials(apiKey, apiSecret string) error {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(apiSecret) == "" {
		return newValidationErrorf("api key and secret are required")
	}
	if strings.Contains(apiKey, ":") || strings.Contains(apiSecret, ":") {
		return newValidationErrorf("api key and secret cannot contain ':' character")
	}
	if len(apiKey) > maxCredentialLength || len(apiSecret) > maxCredentialLength {
		return newValidationErrorf("api credentials exceed maximum length of %d characters", maxCredentialLength)
	}
	return nil
}
