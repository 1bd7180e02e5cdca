package ledger

import (
	"errors"
	"strings"
)

// Hint suggests a fix for well known failure causes. It returns "" when
// nothing specific applies.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoSigner) {
		return "Run `cg setup` to configure a wallet."
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return "The wallet does not have enough xDAI to pay for gas."
	case strings.Contains(msg, "only owner"),
		strings.Contains(msg, "not authorized"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "caller is not"):
		return "The wallet is not allowed to do this, check that it owns the group."
	case strings.Contains(msg, "execution reverted"):
		return "The contract rejected the call. Check the arguments and the group permissions."
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "deadline exceeded"),
		strings.Contains(msg, "timeout"):
		return "The network did not respond. Check your connection and the RPC url in the config."
	}
	return ""
}
