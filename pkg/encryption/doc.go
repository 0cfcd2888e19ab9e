// Package encryption provides end-to-end encryption for messages published on
// encrypted channels.
//
// Every encrypted channel has its own 32-byte key derived from one long-lived
// master key:
//
//	shared_secret = SHA256(channel_name || master_key)
//
// The derivation is a pure function of its inputs and is recomputed on every
// call. Message bodies are sealed with XSalsa20-Poly1305 (NaCl secretbox)
// under the channel key and a fresh 24-byte random nonce. The provider never
// sees the master key or plaintext; subscribers receive the channel key in
// their authorization response.
//
// # Usage
//
//	key, err := encryption.ParseMasterKey(os.Getenv("PUSHER_ENCRYPTION_MASTER_KEY_BASE64"))
//	if err != nil {
//		return err
//	}
//	engine := encryption.New(key)
//
//	payload, err := engine.Encrypt("private-encrypted-orders", []byte(`{"id":42}`))
//	plaintext, err := engine.Decrypt("private-encrypted-orders", payload)
//
// # Capability
//
// Clients without a master key hold Disabled(), an implementation of
// Capability whose Engine method always fails with ErrMasterKeyRequired, so
// encrypted-channel operations fail fast without nil checks:
//
//	eng, err := capability.Engine()
//	if errors.Is(err, encryption.ErrMasterKeyRequired) {
//		// client was configured without encryption
//	}
//
// # Wire format
//
// Payload marshals to {"nonce":"<base64>","ciphertext":"<base64>"} using
// standard padded base64. SharedSecret returns unpadded standard base64.
//
// # Error Types
//   - ErrInvalidMasterKey: master key is not base64 or not 32 bytes
//   - ErrMasterKeyRequired: encryption capability is not configured
//   - ErrNotEncryptedChannel: channel lacks the private-encrypted- prefix
//   - ErrInvalidPayload: nonce or ciphertext is malformed
//   - ErrDecryptionFailed: authentication failed; no plaintext is returned
package encryption
