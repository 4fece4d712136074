package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bandyer/mvninvalidate/internal/handler"
)

func execute(t *testing.T, run Runner, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(run)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestCommandParsesPositionalArgs(t *testing.T) {
	var got Args
	run := func(_ context.Context, a Args) (handler.Output, error) {
		got = a
		return handler.Output{InvalidationID: "I123"}, nil
	}

	out, err := execute(t, run, "AKID", "secret", "E1ABC", "/releases/", "com.bandyer.library", "1.0")
	if err != nil {
		t.Fatalf("execute error = %v", err)
	}
	if strings.TrimSpace(out) != "I123" {
		t.Fatalf("stdout = %q, want invalidation id", out)
	}
	if got.Credentials.AccessKeyID != "AKID" || got.Credentials.SecretAccessKey != "secret" {
		t.Fatalf("unexpected credentials: %+v", got.Credentials)
	}
	if got.Distribution != "E1ABC" {
		t.Fatalf("distribution = %q", got.Distribution)
	}
	want := handler.Input{BasePath: "/releases/", PackageID: "com.bandyer.library", Version: "1.0"}
	if got.Input != want {
		t.Fatalf("input = %+v, want %+v", got.Input, want)
	}
}

func TestCommandRejectsWrongArgCount(t *testing.T) {
	called := false
	run := func(context.Context, Args) (handler.Output, error) {
		called = true
		return handler.Output{}, nil
	}

	for _, args := range [][]string{
		{},
		{"AKID", "secret", "E1ABC", "/releases/", "com.bandyer.library"},
		{"AKID", "secret", "E1ABC", "/releases/", "com.bandyer.library", "1.0", "extra"},
	} {
		if _, err := execute(t, run, args...); err == nil {
			t.Fatalf("expected error for %d args", len(args))
		}
	}
	if called {
		t.Fatalf("runner must not be called on bad arguments")
	}
}

func TestCommandPropagatesRunnerError(t *testing.T) {
	boom := errors.New("invalid distribution")
	run := func(context.Context, Args) (handler.Output, error) {
		return handler.Output{}, boom
	}

	out, err := execute(t, run, "AKID", "secret", "E1ABC", "releases", "a.b", "1")
	if !errors.Is(err, boom) {
		t.Fatalf("execute error = %v, want %v", err, boom)
	}
	if out != "" {
		t.Fatalf("nothing should be printed on failure, got %q", out)
	}
}
