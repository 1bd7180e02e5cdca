package util

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tranvictor/circles-groups/accounts"
	"github.com/tranvictor/circles-groups/circles"
	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/groupbook"
	"github.com/tranvictor/circles-groups/groups"
	"github.com/tranvictor/circles-groups/index"
	"github.com/tranvictor/circles-groups/ledger"
	"github.com/tranvictor/circles-groups/networks"
	"github.com/tranvictor/circles-groups/profiles"
	"github.com/tranvictor/circles-groups/ui"
)

// PassphraseVar lets scripts unlock the keystore without a prompt.
const PassphraseVar = "CIRCLES_KEYSTORE_PASSPHRASE"

var ErrNoWallet = errors.New("no wallet configured, run `cg setup` first")

// Session holds every client a command needs. It is built once per
// invocation and closed when the command returns.
type Session struct {
	Settings  config.Settings
	Endpoints Endpoints
	Log       zerolog.Logger

	Ledger     *ledger.Client
	Index      *index.Client
	Circles    *circles.Service
	Aggregator *groups.Aggregator
	Resolver   *groups.Resolver
	Directory  *groups.Directory
	Profiles   *profiles.Client
	Book       *groupbook.Book
}

// LoadSettings reads the config file and the custom networks next to it.
func LoadSettings(log zerolog.Logger) (config.Settings, error) {
	if err := networks.LoadCustomNetworks(NetworksDir()); err != nil {
		log.Warn().Err(err).Msg("custom networks")
	}
	s, err := config.Load(config.ResolvePath())
	if err != nil {
		return config.Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, fmt.Errorf("invalid config %s: %w", config.ResolvePath(), err)
	}
	return s, nil
}

func NetworksDir() string {
	return filepath.Join(config.Dir(), "networks")
}

func KeystoreDir() string {
	return filepath.Join(config.Dir(), "keystores")
}

// NewSession connects to the node and the index. With needWallet the
// configured keystore is unlocked so the session can send transactions.
func NewSession(ctx context.Context, u ui.UI, log zerolog.Logger, needWallet bool) (*Session, error) {
	s, err := LoadSettings(log)
	if err != nil {
		return nil, err
	}
	if needWallet && !s.HasWallet() {
		return nil, ErrNoWallet
	}
	e, err := ResolveEndpoints(config.Network, s)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("network", e.Network.GetName()).
		Str("node", e.NodeURL).
		Str("indexer", e.IndexerURL).
		Msg("endpoints")

	l, err := ledger.Dial(ctx, e.NodeName, e.NodeURL, e.ChainID, log)
	if err != nil {
		return nil, err
	}
	idx, err := index.Dial(ctx, e.IndexerURL)
	if err != nil {
		l.Close()
		return nil, err
	}
	book, err := groupbook.Open(groupbook.DefaultPath(config.Dir()))
	if err != nil {
		l.Close()
		idx.Close()
		return nil, err
	}

	sess := &Session{
		Settings:   s,
		Endpoints:  e,
		Log:        log,
		Ledger:     l,
		Index:      idx,
		Circles:    circles.NewService(l, circles.ContractsOf(e.Network)),
		Aggregator: groups.NewAggregator(idx, idx, log),
		Resolver:   groups.NewResolver(idx, s.IndexingWait(), log),
		Directory:  groups.NewDirectory(idx, idx, log),
		Profiles:   profiles.NewClient(e.ProfileServiceURL, log),
		Book:       book,
	}

	if needWallet {
		acc, err := unlock(u, s.Wallet)
		if err != nil {
			sess.Close()
			return nil, err
		}
		l.WithSigner(acc)
	}
	return sess, nil
}

func unlock(u ui.UI, w config.WalletSettings) (*accounts.KeyAccount, error) {
	ad := accounts.AccDesc{Address: w.Address, Keypath: w.Keystore}
	passphrase := os.Getenv(PassphraseVar)
	if passphrase == "" {
		u.Info("Using keystore: %s", w.Keystore)
		passphrase = u.AskSecret("Enter passphrase: ")
	}
	return accounts.Unlock(ad, passphrase)
}

func (s *Session) Close() {
	s.Ledger.Close()
	s.Index.Close()
}

// WalletAddress is the configured wallet, lowercase, or "" before setup.
func (s *Session) WalletAddress() string {
	if !s.Settings.HasWallet() {
		return ""
	}
	addr, err := common.NormalizeAddress(s.Settings.Wallet.Address)
	if err != nil {
		return ""
	}
	return addr
}

// ResolveGroup turns the --group value, or a prompted one, into a book
// entry. Names are fuzzy matched against the local group book.
func (s *Session) ResolveGroup(u ui.UI, hint string) (groupbook.Entry, error) {
	if hint == "" {
		var err error
		hint, err = PromptInputWithValidation(u, "Group address or name:", func(v string) error {
			if v == "" {
				return fmt.Errorf("a group is required")
			}
			return nil
		})
		if err != nil {
			return groupbook.Entry{}, err
		}
	}
	e, err := s.Book.Resolve(hint)
	if err != nil {
		return groupbook.Entry{}, err
	}
	if e.Name != "" {
		u.Info("Group: %s (%s)", e.Name, e.Address)
	}
	return e, nil
}
