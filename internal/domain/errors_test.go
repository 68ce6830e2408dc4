package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:    "hubzilla.hostmeta",
		Kind:  KindUnreachable,
		Stage: StageHostMeta,
		Err:   root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindUnreachable {
		t.Fatalf("expected kind %s", KindUnreachable)
	}
}

func TestOpErrorMessage(t *testing.T) {
	err := &OpError{
		Op:    "verify.credentials",
		Kind:  KindUnauthorized,
		Stage: StageCredentials,
		Err:   ErrUnauthorized,
	}

	msg := err.Error()
	for _, want := range []string{"verify.credentials", "unauthorized", "stage=credentials", "credentials rejected"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}

	var nilErr *OpError
	if nilErr.Error() != "<nil>" {
		t.Fatalf("expected <nil> for nil OpError")
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", &OpError{Op: "config.load", Kind: KindInvalidConfig})

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(err, KindNotFound) {
		t.Fatalf("expected IsKind to reject other kinds")
	}
	if IsKind(errors.New("plain"), KindInvalidConfig) {
		t.Fatalf("expected IsKind to reject plain errors")
	}
}

func TestStageOf(t *testing.T) {
	stage, ok := StageOf(&OpError{Op: "x", Kind: KindIdentityMismatch, Stage: StageNodeInfo})
	if !ok || stage != StageNodeInfo {
		t.Fatalf("expected nodeinfo stage, got %q ok=%v", stage, ok)
	}

	if _, ok := StageOf(errors.New("plain")); ok {
		t.Fatalf("expected no stage for plain error")
	}
}
