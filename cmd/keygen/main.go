package main

import (
	"encoding/base64"
	"fmt"

	"aidanwoods.dev/go-paseto"
)

func main() {
	secretKey := paseto.NewV4AsymmetricSecretKey()
	publicKey := secretKey.Public()

	privateKeyBase64 := base64.StdEncoding.EncodeToString(secretKey.ExportBytes())
	publicKeyBase64 := base64.StdEncoding.EncodeToString(publicKey.ExportBytes())

	fmt.Printf("Generated PASETO v4 key pair:\n\n")
	fmt.Printf("Private Key (keep this secret!):\n%s\n\n", privateKeyBase64)
	fmt.Printf("Public Key:\n%s\n\n", publicKeyBase64)

	fmt.Println("Export these before starting the server:")
	fmt.Printf("PASETO_PRIVATE_KEY=%s\n", privateKeyBase64)
	fmt.Printf("PASETO_PUBLIC_KEY=%s\n", publicKeyBase64)
}
