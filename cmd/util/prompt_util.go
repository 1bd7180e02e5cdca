package util

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/ui"
)

type StringValidator func(st string) error

// PromptInputWithValidation shows a label, then loops until the validator
// passes. It fails with ui.ErrNoInput when the input ends first.
func PromptInputWithValidation(u ui.UI, label string, validator StringValidator) (string, error) {
	if label != "" {
		u.Info(label)
	}
	input, err := u.Ask(func(s string) error {
		return validator(strings.TrimSpace(s))
	})
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", label, err)
	}
	return strings.TrimSpace(input), nil
}

// PromptInput returns value when it is set and valid, otherwise asks for it.
func PromptInput(u ui.UI, label, value string, validator StringValidator) (string, error) {
	value = strings.TrimSpace(value)
	if value != "" {
		err := validator(value)
		if err == nil {
			return value, nil
		}
		u.Error("%s", err)
	}
	return PromptInputWithValidation(u, label, validator)
}

// PromptOptional is PromptInput that also accepts an empty answer.
func PromptOptional(u ui.UI, label, value string, validator StringValidator) (string, error) {
	return PromptInput(u, label, value, func(s string) error {
		if s == "" {
			return nil
		}
		return validator(s)
	})
}

func validateAddress(s string) error {
	if !common.IsAddress(s) {
		return fmt.Errorf("%q is not a valid address", s)
	}
	return nil
}

// PromptAddress returns a lowercase address.
func PromptAddress(u ui.UI, label, value string) (string, error) {
	input, err := PromptInput(u, label, value, validateAddress)
	if err != nil {
		return "", err
	}
	return common.NormalizeAddress(input)
}

// PromptAddresses reads a comma or space separated list with at least one
// valid address.
func PromptAddresses(u ui.UI, label, value string) ([]string, error) {
	var result []string
	_, err := PromptInput(u, label, value, func(s string) error {
		addrs, err := common.SplitAddresses(s)
		if err != nil {
			return err
		}
		if len(addrs) == 0 {
			return fmt.Errorf("at least one address is required")
		}
		result = addrs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PromptOptionalAddresses is PromptAddresses that accepts an empty list.
func PromptOptionalAddresses(u ui.UI, label, value string) ([]string, error) {
	var result []string
	_, err := PromptOptional(u, label, value, func(s string) error {
		addrs, err := common.SplitAddresses(s)
		if err != nil {
			return err
		}
		result = addrs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PromptNonNegativeInt returns value when it is non-negative, otherwise asks.
func PromptNonNegativeInt(u ui.UI, label string, value int64) (int64, error) {
	if value >= 0 {
		return value, nil
	}
	var result int64
	_, err := PromptInputWithValidation(u, label, func(s string) error {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("please enter a non-negative integer")
		}
		result = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// PromptAmount reads a positive CRC amount and returns it in wei.
func PromptAmount(u ui.UI, label, value string) (*big.Int, error) {
	var result *big.Int
	_, err := PromptInput(u, label, value, func(s string) error {
		amount, err := common.FloatStringToBig(s, common.CRCDecimals)
		if err != nil {
			return err
		}
		if amount.Sign() <= 0 {
			return fmt.Errorf("amount must be greater than zero")
		}
		result = amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Confirm asks unless --yes was given.
func Confirm(u ui.UI, prompt string) bool {
	if config.AssumeYes {
		return true
	}
	return u.Confirm(prompt, false)
}
