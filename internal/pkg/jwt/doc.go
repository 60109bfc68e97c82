// Package jwt issues and verifies the session tokens handed out after a
// successful phone OTP login.
//
// Tokens are HS512 signed, carry the application id as subject and are placed
// in the request context by the router's authentication middleware.
package jwt
