package tokencodec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// The signed payload is additionally sealed with AES-GCM before it goes on
// the wire. The nonce is prepended to the ciphertext and the whole thing is
// base64url encoded so it survives HTTP headers.

func (c *Codec) seal(payload string) (string, error) {
	block, err := aes.NewCipher(c.cipherKey)
	if err != nil {
		return "", fmt.Errorf("error while creating cipher. Err: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("error while creating GCM. Err: %w", err)
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("error while generating nonce. Err: %w", err)
	}

	sealed := aesgcm.Seal(nonce, nonce, []byte(payload), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *Codec) open(token string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(c.cipherKey)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(sealed) < aesgcm.NonceSize() {
		return "", errors.New("sealed payload too short")
	}

	nonce, ciphertext := sealed[:aesgcm.NonceSize()], sealed[aesgcm.NonceSize():]
	payload, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(payload), nil
}
