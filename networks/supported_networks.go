package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var supportedNetworks = []Network{
	GnosisMainnet,
}

var ErrNetworkNotFound = fmt.Errorf("network not found")

type registry struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func newRegistry(builtin []Network) (*registry, error) {
	r := &registry{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range builtin {
		if err := r.add(n, false); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// add registers n under its name and alternative names. Custom networks may
// override built-in ones, built-ins may not collide with each other.
func (r *registry) add(n Network, override bool) error {
	names := append([]string{n.GetName()}, n.GetAlternativeNames()...)
	for _, name := range names {
		name = strings.ToLower(name)
		if _, found := r.networks[name]; found && !override {
			return fmt.Errorf("network with name or alternative name of '%s' already exists", name)
		}
		r.networks[name] = n
	}
	r.networksByID[n.GetChainID()] = n
	return nil
}

func (r *registry) get(name string) (Network, error) {
	n, found := r.networks[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return n, nil
}

var global = mustRegistry()

func mustRegistry() *registry {
	r, err := newRegistry(supportedNetworks)
	if err != nil {
		panic(err)
	}
	return r
}

// LoadCustomNetworks registers every *.json network definition in dir.
// Definitions that fail to parse are returned as errors, the rest still load.
func LoadCustomNetworks(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("couldn't list custom networks in %s: %w", dir, err)
	}
	var errs []error
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", file, err))
			continue
		}
		n, err := NewNetworkFromJSON(content)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", file, err))
			continue
		}
		_ = global.add(n, true)
	}
	if len(errs) > 0 {
		return fmt.Errorf("some custom networks were skipped: %v", errs)
	}
	return nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	cfg := GenericCirclesNetworkConfig{}
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if cfg.Name == "" || cfg.ChainID == 0 {
		return nil, fmt.Errorf("network config needs a name and a chain id")
	}
	return NewGenericCirclesNetwork(cfg), nil
}

func GetNetwork(name string) (Network, error) {
	return global.get(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	n, found := global.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d is not supported", id)
	}
	return n, nil
}

func GetSupportedNetworkNames() []string {
	res := make([]string, 0, len(global.networks))
	for name := range global.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// AddNetwork registers n and saves it into dir so later runs pick it up
// through LoadCustomNetworks.
func AddNetwork(dir string, n Network) error {
	content, err := n.MarshalJSON()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.json", strings.ToLower(n.GetName())))
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return err
	}
	return global.add(n, true)
}

// GetSupportedNetworks lists each registered network once, ordered by chain id.
func GetSupportedNetworks() []Network {
	res := make([]Network, 0, len(global.networksByID))
	for _, n := range global.networksByID {
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GetChainID() < res[j].GetChainID() })
	return res
}
