package modgate

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

const (
	AddrHRPModerator = "gov"
	AddrHRPService   = "gvs"
)

// GetHash returns the sha3-256 digest used for content fingerprints.
func GetHash(b []byte) []byte {
	sum := sha3.Sum256(b)
	return sum[:]
}

// SignBytes signs message with a hex-encoded secp256k1 private key.
// The signature is the 65-byte recoverable form.
func SignBytes(message []byte, privkey string) ([]byte, error) {
	key, err := crypto.HexToECDSA(privkey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	digest := crypto.Keccak256(message)
	return crypto.Sign(digest, key)
}

// VerifySignature recovers the signer from a 65-byte recoverable signature
// and checks it against the given bech32 address.
func VerifySignature(message []byte, signature []byte, address string) error {
	if len(signature) != 65 {
		return fmt.Errorf("invalid signature length: %d", len(signature))
	}
	hrp, _, err := bech32.DecodeAndConvert(address)
	if err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}
	digest := crypto.Keccak256(message)
	pubkey, err := crypto.SigToPub(digest, signature)
	if err != nil {
		return fmt.Errorf("signature recovery failed: %w", err)
	}
	recovered, err := pubkeyToAddr(pubkey, hrp)
	if err != nil {
		return err
	}
	if recovered != address {
		return fmt.Errorf("signer mismatch: expected %s, got %s", address, recovered)
	}
	return nil
}

// PrivKeyToAddr derives the bech32 address for a hex-encoded private key.
func PrivKeyToAddr(privkey string, hrp string) (string, error) {
	key, err := crypto.HexToECDSA(privkey)
	if err != nil {
		return "", fmt.Errorf("invalid private key: %w", err)
	}
	return pubkeyToAddr(&key.PublicKey, hrp)
}

func pubkeyToAddr(pubkey *ecdsa.PublicKey, hrp string) (string, error) {
	addr := crypto.PubkeyToAddress(*pubkey)
	return bech32.ConvertAndEncode(hrp, addr.Bytes())
}
