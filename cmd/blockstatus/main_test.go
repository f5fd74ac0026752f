package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/GoCodeAlone/blockstatus/cmd/blockstatus/cmd"
)

func TestMainVersionFlag(t *testing.T) {
	originalArgs := os.Args
	originalExit := cmd.OsExit
	defer func() {
		os.Args = originalArgs
		cmd.OsExit = originalExit
	}()

	exitCode := -1
	cmd.OsExit = func(code int) {
		exitCode = code
	}

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	os.Args = []string{"blockstatus", "--version"}
	main()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)

	if exitCode != -1 {
		t.Errorf("Expected no exit, got code %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("blockstatus v")) {
		t.Errorf("Expected version output, got %q", buf.String())
	}
}

func TestMainUnknownCommandExits(t *testing.T) {
	originalArgs := os.Args
	originalExit := cmd.OsExit
	defer func() {
		os.Args = originalArgs
		cmd.OsExit = originalExit
	}()

	exitCode := -1
	cmd.OsExit = func(code int) {
		exitCode = code
	}

	oldStderr := os.Stderr
	_, w, _ := os.Pipe()
	os.Stderr = w
	os.Args = []string{"blockstatus", "no-such-command"}
	main()
	w.Close()
	os.Stderr = oldStderr

	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
}
