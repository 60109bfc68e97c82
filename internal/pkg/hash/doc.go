// Package hash derives and checks keyed digests of short secrets.
//
// OTP codes are never stored in plain text: each record gets a random salt and
// only HMAC(secret, salt:code) is persisted. Verification recomputes the digest
// and compares in constant time.
package hash
