// Package validator validates request structs through struct tags.
//
// Usecases depend on the Validator interface. V10Validator backs it with
// go-playground/validator and English messages, and adds the rules used by
// the ambassador API:
//
//   - phone: digits, spaces, dashes, parentheses and an optional leading +,
//     at least 10 characters
//   - email_loose: something@something.something without whitespace
//   - otp_purpose: "phone" or "email"
//   - numeric_code: ASCII digits only
package validator
