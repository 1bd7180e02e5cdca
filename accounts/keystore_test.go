package accounts_test

import (
	"math/big"
	"os"
	"strings"
	"testing"

	gethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/circles-groups/accounts"
)

const testKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func newStore(t *testing.T) *accounts.Store {
	t.Helper()
	s := accounts.NewStore(t.TempDir())
	s.ScryptN = gethkeystore.LightScryptN
	s.ScryptP = gethkeystore.LightScryptP
	return s
}

func TestImportUnlockSign(t *testing.T) {
	s := newStore(t)
	ad, err := s.Import(testKey, "secret")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if ad.Address != "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23" {
		t.Fatalf("address = %s", ad.Address)
	}
	info, err := os.Stat(ad.Keypath)
	if err != nil {
		t.Fatalf("stat keystore: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("keystore mode = %v", info.Mode().Perm())
	}

	addr, err := accounts.VerifyKeystore(ad.Keypath)
	if err != nil || addr != ad.Address {
		t.Fatalf("VerifyKeystore = %s, %v", addr, err)
	}

	acc, err := accounts.Unlock(ad, "secret")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	to := common.HexToAddress("0x1")
	tx := types.NewTx(&types.DynamicFeeTx{ChainID: big.NewInt(100), To: &to, Gas: 21000, GasFeeCap: big.NewInt(2), GasTipCap: big.NewInt(1), Value: big.NewInt(0)})
	signed, err := acc.SignTx(tx, big.NewInt(100))
	if err != nil {
		t.Fatalf("SignTx: %v", err)
	}
	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(100)), signed)
	if err != nil || from != acc.Address() {
		t.Fatalf("sender = %s, %v", from.Hex(), err)
	}
}

func TestUnlockWrongPassphrase(t *testing.T) {
	s := newStore(t)
	ad, err := s.Generate("right")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := accounts.Unlock(ad, "wrong"); err == nil {
		t.Fatalf("expected wrong passphrase to fail")
	}
}

func TestUnlockAddressMismatch(t *testing.T) {
	s := newStore(t)
	ad, err := s.Generate("pw")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ad.Address = "0x0000000000000000000000000000000000000001"
	if _, err := accounts.Unlock(ad, "pw"); err == nil || !strings.Contains(err.Error(), "expected") {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestImportRejectsBadInput(t *testing.T) {
	s := newStore(t)
	if _, err := s.Import("0xzz", "pw"); err == nil {
		t.Fatalf("expected invalid key to fail")
	}
	if _, err := s.Import(testKey, ""); err == nil {
		t.Fatalf("expected empty passphrase to fail")
	}
}
