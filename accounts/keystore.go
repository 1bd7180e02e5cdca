package accounts

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// AccDesc points at an encrypted key on disk.
type AccDesc struct {
	Address string
	Keypath string
}

// Store writes geth compatible keystore files into Dir.
type Store struct {
	Dir     string
	ScryptN int
	ScryptP int
}

func NewStore(dir string) *Store {
	return &Store{
		Dir:     dir,
		ScryptN: gethkeystore.StandardScryptN,
		ScryptP: gethkeystore.StandardScryptP,
	}
}

// Import encrypts a hex private key, with or without 0x prefix.
func (s *Store) Import(privateKey, passphrase string) (AccDesc, error) {
	priv, err := PrivateKeyFromHex(privateKey)
	if err != nil {
		return AccDesc{}, err
	}
	return s.store(priv, passphrase)
}

// Generate creates and encrypts a fresh key.
func (s *Store) Generate(passphrase string) (AccDesc, error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return AccDesc{}, err
	}
	return s.store(priv, passphrase)
}

func (s *Store) store(priv *ecdsa.PrivateKey, passphrase string) (AccDesc, error) {
	if passphrase == "" {
		return AccDesc{}, fmt.Errorf("passphrase must not be empty")
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return AccDesc{}, err
	}
	key := &gethkeystore.Key{
		Id:         id,
		Address:    crypto.PubkeyToAddress(priv.PublicKey),
		PrivateKey: priv,
	}
	keystoreJSON, err := gethkeystore.EncryptKey(key, passphrase, s.ScryptN, s.ScryptP)
	if err != nil {
		return AccDesc{}, fmt.Errorf("couldn't encrypt the key: %w", err)
	}

	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return AccDesc{}, err
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%s.json", key.Address.Hex()))
	if err := os.WriteFile(path, keystoreJSON, 0o600); err != nil {
		return AccDesc{}, err
	}
	return AccDesc{Address: key.Address.Hex(), Keypath: path}, nil
}

type keystoreHeader struct {
	Address string `json:"address"`
}

// VerifyKeystore reads the address of a keystore file without decrypting it.
func VerifyKeystore(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	k := &keystoreHeader{}
	if err := json.Unmarshal(content, k); err != nil {
		return "", fmt.Errorf("%s is not a keystore file: %w", path, err)
	}
	if !common.IsHexAddress(k.Address) {
		return "", fmt.Errorf("%s has no valid address", path)
	}
	return common.HexToAddress(k.Address).Hex(), nil
}

// PrivateKeyFromHex works with both 0x prefixed and naked hex.
func PrivateKeyFromHex(hex string) (*ecdsa.PrivateKey, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "0x")
	priv, err := crypto.HexToECDSA(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return priv, nil
}

func PrivateKeyFromKeystore(file, password string) (*ecdsa.PrivateKey, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	key, err := gethkeystore.DecryptKey(content, password)
	if err != nil {
		return nil, err
	}
	return key.PrivateKey, nil
}
