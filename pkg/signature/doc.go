// Package signature implements the canonical request-signing primitives shared
// by REST authentication, channel authorization and webhook validation.
//
// A request is signed by building a deterministic string-to-sign and computing
// an HMAC-SHA256 over it with the application secret:
//
//	METHOD\nPATH\nk1=v1&k2=v2...
//
// Query parameters are sorted ascending by key (byte order, case-sensitive) and
// their values are used verbatim. URL-encoding is a transport concern applied
// after signing, never inside the signed string.
//
// # Usage
//
//	toSign := signature.StringToSign("POST", "/apps/1/events", params)
//	sig := signature.Sign(toSign, secret) // lowercase hex
//
//	if !signature.Verify(string(body), secret, header) {
//		// reject
//	}
//
// BodyMD5 produces the content digest sent as the body_md5 parameter. MD5 is
// used as a content-identity check under the HMAC, not as a security boundary.
package signature
