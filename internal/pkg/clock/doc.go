// Package clock provides a tiny time abstraction.
//
// Business code depends on Clocker instead of calling time.Now directly, so
// OTP expiry and resend cooldowns can be exercised with a Manual clock.
package clock
