// Package mail sends email through a provider-agnostic Mail interface.
//
// The SMTP driver delivers OTP codes and application notices in production;
// the Log driver writes messages to slog for local development.
package mail
