package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer protects values at rest on the device. It knows nothing about the
// network, the session or the store it is used with.
//
// Layout of a sealed value (standard Base64 of):
//
//	salt (16 bytes) ‖ nonce (12 bytes) ‖ AES-256-GCM ciphertext
//
// The AES key is derived from the configured secret and the salt via
// Argon2id, so the same plaintext never seals to the same string twice.
type Sealer interface {
	// Seal encrypts plaintext and returns the Base64 blob.
	Seal(plaintext []byte) (string, error)

	// Open reverses Seal. It returns ErrUnsealFailed when the blob is
	// malformed or was sealed with a different secret.
	Open(sealed string) ([]byte, error)
}
