package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidVersion, "negative version component: %d", -1)

	if err.Code != ErrCodeInvalidVersion {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidVersion)
	}
	if err.Message != "negative version component: -1" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch %s", "pypi")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error does not match cause with errors.Is")
	}
	if err.Error() != "NETWORK_ERROR: failed to fetch pypi: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDescriptorNotFound, "no descriptor for %s", "pyneonat")

	if !Is(err, ErrCodeDescriptorNotFound) {
		t.Error("Is did not match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is matched a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is matched a plain error")
	}

	// Code survives wrapping with %w.
	wrapped := fmt.Errorf("loading: %w", err)
	if !Is(wrapped, ErrCodeDescriptorNotFound) {
		t.Error("Is did not unwrap")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeStore, "oops")); got != ErrCodeStore {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeStore)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidManifest, "unsupported manifest")
	if got := UserMessage(err); got != "unsupported manifest" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestValidatePythonPackageName(t *testing.T) {
	valid := []string{"pyneonat", "scikit-learn", "zope.interface", "a", "A2", "my_pkg"}
	for _, name := range valid {
		if err := ValidatePythonPackageName(name); err != nil {
			t.Errorf("ValidatePythonPackageName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "-leading", "trailing-", "has space", "dot..dot", "a/b", "a\\b"}
	for _, name := range invalid {
		if err := ValidatePythonPackageName(name); err == nil {
			t.Errorf("ValidatePythonPackageName(%q) = nil, want error", name)
		}
	}
}

func TestValidateManifestFilename(t *testing.T) {
	if err := ValidateManifestFilename("distmeta.toml"); err != nil {
		t.Errorf("valid filename rejected: %v", err)
	}
	for _, name := range []string{"", "dir/distmeta.toml", ".hidden"} {
		if err := ValidateManifestFilename(name); err == nil {
			t.Errorf("ValidateManifestFilename(%q) = nil, want error", name)
		}
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://github.com/neurospin/pyneonat"); err != nil {
		t.Errorf("valid URL rejected: %v", err)
	}
	for _, url := range []string{"", "ftp://host/file", "javascript:alert(1)"} {
		if err := ValidateURL(url); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", url)
		}
	}
}
