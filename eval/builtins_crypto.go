package eval

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"hash"
	"io"
	"strings"

	"github.com/simon-lentz/weft/immutable"
)

// registerCryptoBuiltins installs the `crypto` namespace: hash, HMAC,
// and symmetric AES-GCM encrypt/decrypt, each a thin wrapper over the
// standard library's crypto primitives per §1's "treat third-party
// crypto primitives as a black box" scoping — this system never
// reimplements a cipher or digest, only dispatches to one by name.
func registerCryptoBuiltins(ns *Namespace) {
	ns.register("hash", 2, 2, builtinHash)
	ns.register("hmac", 3, 3, builtinHMAC)
	ns.register("encrypt", 2, 2, builtinEncrypt)
	ns.register("decrypt", 2, 2, builtinDecrypt)
}

func hasherFor(algorithm string) (func() hash.Hash, error) {
	switch strings.ToUpper(algorithm) {
	case "MD5":
		return md5.New, nil
	case "SHA-1", "SHA1":
		return sha1.New, nil
	case "SHA-256", "SHA256":
		return sha256.New, nil
	case "SHA-512", "SHA512":
		return sha512.New, nil
	default:
		return nil, DomainError("unsupported hash algorithm: %s", algorithm)
	}
}

func builtinHash(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	algorithm, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	newHash, err := hasherFor(algorithm)
	if err != nil {
		return immutable.Value{}, err
	}
	h := newHash()
	h.Write([]byte(s))
	return immutable.NewStr(hexString(h.Sum(nil))), nil
}

func builtinHMAC(args []immutable.Value) (immutable.Value, error) {
	s, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	secret, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	algorithm, ok := args[2].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[2].PrettyName())
	}
	newHash, err := hasherFor(algorithm)
	if err != nil {
		return immutable.Value{}, err
	}
	mac := hmac.New(newHash, []byte(secret))
	mac.Write([]byte(s))
	return immutable.NewStr(hexString(mac.Sum(nil))), nil
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xf]
	}
	return string(out)
}

// builtinEncrypt returns base64(nonce || ciphertext) under AES-256-GCM,
// the key being the SHA-256 digest of the supplied secret so any
// string length is accepted, matching the permissive key-as-string
// shape the spec's examples use.
func builtinEncrypt(args []immutable.Value) (immutable.Value, error) {
	plaintext, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	secret, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	gcm, err := aesGCM(secret)
	if err != nil {
		return immutable.Value{}, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return immutable.Value{}, DomainError("encrypt: %s", err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return immutable.NewStr(base64.StdEncoding.EncodeToString(sealed)), nil
}

func builtinDecrypt(args []immutable.Value) (immutable.Value, error) {
	encoded, ok := args[0].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[0].PrettyName())
	}
	secret, ok := args[1].Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", args[1].PrettyName())
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return immutable.Value{}, DomainError("decrypt: invalid base64 input: %s", err)
	}
	gcm, err := aesGCM(secret)
	if err != nil {
		return immutable.Value{}, err
	}
	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return immutable.Value{}, DomainError("decrypt: ciphertext too short")
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return immutable.Value{}, DomainError("decrypt: %s", err)
	}
	return immutable.NewStr(string(plaintext)), nil
}

func aesGCM(secret string) (cipher.AEAD, error) {
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, DomainError("encrypt: %s", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, DomainError("encrypt: %s", err)
	}
	return gcm, nil
}
