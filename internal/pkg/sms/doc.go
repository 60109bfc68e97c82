// Package sms sends text messages to phone numbers.
//
// Drivers:
//   - Twilio: production delivery through the Twilio Messages API.
//   - Log: writes messages to slog, for local development.
//
// Wrap a driver with NewRetry to retry transient failures.
package sms
