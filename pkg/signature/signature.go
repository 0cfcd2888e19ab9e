package signature

import (
	"crypto/hmac"
	"crypto/md5" //nolint:gosec // body_md5 is a content digest covered by the HMAC
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// StringToSign builds the canonical string covered by a request signature.
// Parameter keys are sorted ascending; values are not escaped.
func StringToSign(method, path string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(method)
	b.WriteByte('\n')
	b.WriteString(path)
	b.WriteByte('\n')

	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}

	return b.String()
}

// Sign returns the lowercase hex HMAC-SHA256 of message keyed by secret.
func Sign(message string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is the HMAC-SHA256 of message under secret.
// Comparison is constant-time; surrounding whitespace in signature is ignored.
func Verify(message string, secret []byte, signature string) bool {
	expected := Sign(message, secret)
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}

// BodyMD5 returns the lowercase hex MD5 digest of body.
func BodyMD5(body []byte) string {
	sum := md5.Sum(body) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
