// Prints a fresh random secret for invoicegen's SECRET_KEY setting
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

// 32 bytes so the derived AES-256 sealing key gets full entropy
const secretLen = 32

func main() {
	b := make([]byte, secretLen)
	if _, err := rand.Read(b); err != nil {
		fmt.Fprintf(os.Stderr, "gensecret: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hex.EncodeToString(b))
}
