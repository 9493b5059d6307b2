package semerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(NotARepo, "not a git repository", nil)
	if err.Error() != "[NOT_A_REPO] not a git repository" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	cause := fmt.Errorf("exit status 128")
	wrapped := New(GitFailed, "git diff", cause)
	if wrapped.Error() != "[GIT_FAILED] git diff: exit status 128" {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Unwrap chain broken")
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(Errorf(InvalidQuery, "bad sql")) != InvalidQuery {
		t.Error("CodeOf lost the code")
	}
	if CodeOf(fmt.Errorf("plain")) != Internal {
		t.Error("plain errors should map to INTERNAL")
	}
}
