package errors

import "testing"

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}
}

func TestPredicatesMatchOnlyOwnSentinel(t *testing.T) {
	if IsNotFound(ErrAlreadyExists) {
		t.Fatal("not found must not match already exists")
	}
	if IsInvalidToken(ErrInvalidCredentials) {
		t.Fatal("invalid token must not match invalid credentials")
	}
	if !IsAlreadyExists(ErrAlreadyExists) {
		t.Fatal("expected already exists")
	}
}
