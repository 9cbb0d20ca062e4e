package user

import (
	"os"
	"testing"
)

func TestGetCurrentUsername(t *testing.T) {
	username := GetCurrentUsername()
	if username == "" {
		t.Error("GetCurrentUsername() should never return an empty string")
	}
}

func TestParticipantIDIsStable(t *testing.T) {
	// Point HOME at a scratch dir so the real identity file is untouched.
	t.Setenv("HOME", t.TempDir())

	first, err := ParticipantID()
	if err != nil {
		t.Fatalf("ParticipantID() error: %v", err)
	}
	if first == "" {
		t.Fatal("ParticipantID() returned an empty id")
	}

	second, err := ParticipantID()
	if err != nil {
		t.Fatalf("ParticipantID() error on second call: %v", err)
	}
	if first != second {
		t.Errorf("ParticipantID() not stable: %q then %q", first, second)
	}

	// The id survives in the identity file.
	if _, err := os.Stat(os.Getenv("HOME") + "/.retroflect/participant-id"); err != nil {
		t.Errorf("identity file missing: %v", err)
	}
}
