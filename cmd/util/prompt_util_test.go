package util_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tranvictor/circles-groups/cmd/util"
	"github.com/tranvictor/circles-groups/config"
	"github.com/tranvictor/circles-groups/ui"
)

const memberA = "0x00000000000000000000000000000000000000a1"

func TestPromptAddressUsesValidFlag(t *testing.T) {
	u := ui.NewRecordingUI()
	got, err := util.PromptAddress(u, "Member:", "0x00000000000000000000000000000000000000A1")
	if err != nil || got != memberA {
		t.Fatalf("got %s, %v", got, err)
	}
}

func TestPromptAddressAsksWhenFlagInvalid(t *testing.T) {
	u := ui.NewRecordingUI(memberA)
	got, err := util.PromptAddress(u, "Member:", "alice")
	if err != nil || got != memberA {
		t.Fatalf("got %s, %v", got, err)
	}
	if len(u.ErrorMessages()) != 1 {
		t.Fatalf("expected the invalid flag to be reported, got %v", u.ErrorMessages())
	}
}

func TestPromptAddressFailsOnClosedInput(t *testing.T) {
	for _, input := range []string{"", "not-an-address", "0x00000000000000000000000000000000000000a"} {
		u := ui.NewTerminalUIFrom(strings.NewReader(input), &bytes.Buffer{})
		got, err := util.PromptAddress(u, "Member address:", "")
		if !errors.Is(err, ui.ErrNoInput) {
			t.Fatalf("input %q: expected ErrNoInput, got %q, %v", input, got, err)
		}
		if got != "" {
			t.Fatalf("input %q: expected no address, got %q", input, got)
		}
	}
}

func TestPromptAddressAcceptsLastLineWithoutNewline(t *testing.T) {
	u := ui.NewTerminalUIFrom(strings.NewReader("0x00000000000000000000000000000000000000A1"), &bytes.Buffer{})
	got, err := util.PromptAddress(u, "Member address:", "")
	if err != nil || got != memberA {
		t.Fatalf("got %s, %v", got, err)
	}
}

func TestPromptAddresses(t *testing.T) {
	u := ui.NewRecordingUI()
	got, err := util.PromptAddresses(u, "Members:", memberA+", 0x00000000000000000000000000000000000000b2")
	if err != nil || len(got) != 2 {
		t.Fatalf("got %v, %v", got, err)
	}
	empty, err := util.PromptOptionalAddresses(ui.NewRecordingUI(""), "Conditions:", "")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected no addresses, got %v, %v", empty, err)
	}
	if _, err := util.PromptAddresses(ui.NewRecordingUI(), "Members:", ""); !errors.Is(err, ui.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestPromptNonNegativeInt(t *testing.T) {
	if got, err := util.PromptNonNegativeInt(ui.NewRecordingUI(), "Nonce:", 3); err != nil || got != 3 {
		t.Fatalf("got %d, %v", got, err)
	}
	if got, err := util.PromptNonNegativeInt(ui.NewRecordingUI("12"), "Nonce:", -1); err != nil || got != 12 {
		t.Fatalf("got %d, %v", got, err)
	}
	if _, err := util.PromptNonNegativeInt(ui.NewRecordingUI(), "Nonce:", -1); !errors.Is(err, ui.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestPromptAmount(t *testing.T) {
	got, err := util.PromptAmount(ui.NewRecordingUI(), "Amount:", "1.5")
	if err != nil || got.String() != "1500000000000000000" {
		t.Fatalf("got %s, %v", got, err)
	}
}

func TestPromptAmountFailsOnClosedInput(t *testing.T) {
	u := ui.NewTerminalUIFrom(strings.NewReader("0"), &bytes.Buffer{})
	got, err := util.PromptAmount(u, "Amount:", "")
	if !errors.Is(err, ui.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no amount, got %s", got)
	}
}

func TestConfirmAssumeYes(t *testing.T) {
	config.AssumeYes = true
	defer func() { config.AssumeYes = false }()
	if !util.Confirm(ui.NewRecordingUI(), "Proceed?") {
		t.Fatalf("--yes should confirm")
	}
	config.AssumeYes = false
	if util.Confirm(ui.NewRecordingUI("n"), "Proceed?") {
		t.Fatalf("expected no")
	}
}
