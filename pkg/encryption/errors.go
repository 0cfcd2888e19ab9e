package encryption

import "errors"

var (
	// ErrInvalidMasterKey indicates a master key that is not base64 or does not decode to 32 bytes.
	ErrInvalidMasterKey = errors.New("encryption master key must be a 32 byte key, base64 encoded")

	// ErrMasterKeyRequired indicates an encrypted channel operation on a client without a master key.
	ErrMasterKeyRequired = errors.New("encrypted channels require an encryption master key")

	// ErrNotEncryptedChannel indicates an attempt to encrypt for a channel without the encrypted prefix.
	ErrNotEncryptedChannel = errors.New("channel is not an encrypted channel")

	// ErrInvalidPayload indicates a payload whose nonce or ciphertext cannot be decoded.
	ErrInvalidPayload = errors.New("invalid encrypted payload")

	// ErrDecryptionFailed indicates the ciphertext failed authentication (tampered, corrupted or wrong key).
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrRandomSource indicates the nonce could not be read from the random source.
	ErrRandomSource = errors.New("failed to read nonce from random source")
)
