package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lightblue-platform/lightblue-client-go/core"
)

// newTestApp builds an App with captured I/O and a --config pointing at a
// nonexistent file, so tests never pick up a developer's real config.
func newTestApp(t *testing.T, stdin io.Reader, opts ...AppOption) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	opts = append(opts, WithIO(stdin, stdout, stderr))
	return NewApp(opts...), stdout, stderr
}

func noConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestExitError(t *testing.T) {
	err := exitWithCode(ExitValidation, errors.New("test error"))

	if err.Error() != "test error" {
		t.Errorf("Error() = %q, want 'test error'", err.Error())
	}

	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatal("expected *exitError type")
	}

	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), ExitValidation)
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"success", ExitSuccess, 0},
		{"validation", ExitValidation, 1},
		{"request", ExitRequest, 2},
		{"network", ExitNetwork, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.want {
				t.Errorf("Exit%s = %d, want %d", tt.name, tt.code, tt.want)
			}
		})
	}
}

func TestFindCommand(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"a": 1}`))
	}))
	defer server.Close()

	app, stdout, _ := newTestApp(t, nil)
	app.SetArgs([]string{
		"find", "user", "1.0",
		"--config", noConfig(t),
		"--url", server.URL,
		"--insecure",
		"--query", `{"field":"login","op":"=","rvalue":"jdoe"}`,
	})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("Method = %q, want POST", gotMethod)
	}
	if gotPath != "/find/user/1.0" {
		t.Errorf("Path = %q, want /find/user/1.0", gotPath)
	}
	if !strings.Contains(gotBody, `"rvalue":"jdoe"`) {
		t.Errorf("body = %q, want query present", gotBody)
	}
	if strings.TrimSpace(stdout.String()) != `{"a":1}` {
		t.Errorf("stdout = %q, want compact {\"a\":1}", stdout.String())
	}
}

func TestFindCommandNoFilters(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Method = %q, want GET", r.Method)
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	app, _, _ := newTestApp(t, nil)
	app.SetArgs([]string{"find", "user", "1.0", "--config", noConfig(t), "--url", server.URL, "--insecure"})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestFindCommandMissingURL(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	app.SetArgs([]string{"find", "user", "1.0", "--config", noConfig(t)})

	err := app.Execute()
	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatalf("error type = %T, want *exitError", err)
	}
	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d (ExitValidation)", exitErr.ExitCode(), ExitValidation)
	}
}

func TestFindCommandServiceError(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer server.Close()

	app, _, stderr := newTestApp(t, nil)
	app.SetArgs([]string{"find", "user", "1.0", "--config", noConfig(t), "--url", server.URL, "--insecure"})

	err := app.Execute()
	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatalf("error type = %T, want *exitError", err)
	}
	if exitErr.ExitCode() != ExitRequest {
		t.Errorf("ExitCode() = %d, want %d (ExitRequest)", exitErr.ExitCode(), ExitRequest)
	}
	if !strings.Contains(stderr.String(), "404") || !strings.Contains(stderr.String(), "not found") {
		t.Errorf("stderr = %q, want status and body reported", stderr.String())
	}
}

func TestFindCommandBadJSONFlag(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	app.SetArgs([]string{
		"find", "user", "1.0",
		"--config", noConfig(t),
		"--url", "https://host.example/db/data",
		"--query", "{not json",
	})

	err := app.Execute()
	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatalf("error type = %T, want *exitError", err)
	}
	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d (ExitValidation)", exitErr.ExitCode(), ExitValidation)
	}
}

func TestInsertCommand(t *testing.T) {
	var gotMethod, gotBody string
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"inserted": 1}`))
	}))
	defer server.Close()

	app, _, _ := newTestApp(t, nil)
	app.SetArgs([]string{
		"insert", "user", "1.0",
		"--config", noConfig(t),
		"--url", server.URL,
		"--insecure",
		"--data", `[{"login":"jdoe"}]`,
	})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("Method = %q, want PUT", gotMethod)
	}
	if !strings.Contains(gotBody, `"data":[{"login":"jdoe"}]`) {
		t.Errorf("body = %q, want data merged under data key", gotBody)
	}
}

func TestInsertCommandDataFromStdin(t *testing.T) {
	var gotBody string
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	app, _, _ := newTestApp(t, strings.NewReader(`[{"login":"asmith"}]`))
	app.SetArgs([]string{
		"insert", "user", "1.0",
		"--config", noConfig(t),
		"--url", server.URL,
		"--insecure",
		"--data", "-",
	})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(gotBody, `"asmith"`) {
		t.Errorf("body = %q, want stdin data present", gotBody)
	}
}

func TestInsertCommandDataFromFile(t *testing.T) {
	var gotBody string
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	dataFile := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(dataFile, []byte(`[{"login":"fromfile"}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	app, _, _ := newTestApp(t, nil)
	app.SetArgs([]string{
		"insert", "user", "1.0",
		"--config", noConfig(t),
		"--url", server.URL,
		"--insecure",
		"--data", "@" + dataFile,
	})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(gotBody, `"fromfile"`) {
		t.Errorf("body = %q, want file data present", gotBody)
	}
}

func TestInsertCommandNoData(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	app.SetArgs([]string{
		"insert", "user", "1.0",
		"--config", noConfig(t),
		"--url", "https://host.example/db/data",
	})

	err := app.Execute()
	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatalf("error type = %T, want *exitError", err)
	}
	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d (ExitValidation)", exitErr.ExitCode(), ExitValidation)
	}
}

func TestConfigSuppliesURL(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("url: https://config.example/db/data\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var gotURL string
	connector := func(ctx context.Context, url string, opts ...core.Option) (*core.DataConnection, error) {
		gotURL = url
		return nil, fmt.Errorf("stop here")
	}

	app, _, _ := newTestApp(t, nil, WithConnector(connector))
	app.SetArgs([]string{"find", "user", "1.0", "--config", configPath})

	if err := app.Execute(); err == nil {
		t.Fatal("Execute() error = nil, want connector error")
	}
	if gotURL != "https://config.example/db/data" {
		t.Errorf("connector url = %q, want config url", gotURL)
	}
}

func TestConnectFailureExitsNetwork(t *testing.T) {
	connector := func(ctx context.Context, url string, opts ...core.Option) (*core.DataConnection, error) {
		return nil, &core.ClientError{Op: "connect", Message: "refused", Err: core.ErrConnection}
	}

	app, _, _ := newTestApp(t, nil, WithConnector(connector))
	app.SetArgs([]string{"find", "user", "1.0", "--config", noConfig(t), "--url", "https://host.example"})

	err := app.Execute()
	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatalf("error type = %T, want *exitError", err)
	}
	if exitErr.ExitCode() != ExitNetwork {
		t.Errorf("ExitCode() = %d, want %d (ExitNetwork)", exitErr.ExitCode(), ExitNetwork)
	}
}

func TestVersionCommand(t *testing.T) {
	app, stdout, _ := newTestApp(t, nil)
	app.SetArgs([]string{"version", "--config", noConfig(t)})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "lbdata") {
		t.Errorf("stdout = %q, want version banner", stdout.String())
	}
}
