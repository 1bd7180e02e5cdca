package accounts

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyAccount signs with an unlocked private key.
type KeyAccount struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewKeyAccount(key *ecdsa.PrivateKey) *KeyAccount {
	return &KeyAccount{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Unlock decrypts the keystore of ad. It fails when the key inside does not
// belong to ad.Address.
func Unlock(ad AccDesc, passphrase string) (*KeyAccount, error) {
	key, err := PrivateKeyFromKeystore(ad.Keypath, passphrase)
	if err != nil {
		return nil, fmt.Errorf("couldn't unlock %s: %w", ad.Keypath, err)
	}
	acc := NewKeyAccount(key)
	if ad.Address != "" && common.HexToAddress(ad.Address) != acc.address {
		return nil, fmt.Errorf("keystore %s holds %s, expected %s", ad.Keypath, acc.address.Hex(), ad.Address)
	}
	return acc, nil
}

func (a *KeyAccount) Address() common.Address {
	return a.address
}

func (a *KeyAccount) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(a.key, chainID)
	if err != nil {
		return nil, err
	}
	return opts.Signer(a.address, tx)
}
