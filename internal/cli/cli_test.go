package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersWSDL = "../../wsdl/testdata/users.wsdl"

func run(t *testing.T, args ...string) error {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(new(strings.Builder))
	return root.Execute()
}

// ---------- Command tests ----------

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{
		"output", "namespace", "include-operations", "target", "package",
		"replace", "strict-enums", "unknown-type", "timeout",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
	assert.Equal(t, "o", cmd.Flags().Lookup("output").Shorthand)
	assert.Equal(t, defaultOutput, cmd.Flags().Lookup("output").DefValue)
}

func TestGenerateTypeScript(t *testing.T) {
	output := filepath.Join(t.TempDir(), "nested", "dir", "types.ts")
	require.NoError(t, run(t, usersWSDL, "-o", output, "--include-operations"))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "// Generated TypeScript types from WSDL\n"))
	assert.Contains(t, text, "export interface UserInfo {\n")
	assert.Contains(t, text, "export interface IUserService {\n")
}

func TestGenerateGo(t *testing.T) {
	output := filepath.Join(t.TempDir(), "types.go")
	require.NoError(t, run(t, usersWSDL, "-o", output, "--target", "go", "--package", "users"))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package users\n")
	assert.Contains(t, string(data), "type UserInfo struct {")
}

func TestGenerateFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.ts")
	config := filepath.Join(dir, "wsdl2ts.yaml")
	require.NoError(t, os.WriteFile(config, []byte(
		"output: "+output+"\n"+
			"include_operations: true\n"+
			"unknown_type: any\n"+
			"replace:\n"+
			"  - '^User -> Account'\n"), 0644))

	require.NoError(t, run(t, usersWSDL, "--config", config))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "export interface IAccountService {\n")
	assert.Contains(t, string(data), "  extra: any;\n")
}

func TestGenerateFromEnvironment(t *testing.T) {
	output := filepath.Join(t.TempDir(), "types.ts")
	t.Setenv("WSDL2TS_OUTPUT", output)
	require.NoError(t, run(t, usersWSDL))
	_, err := os.Stat(output)
	assert.NoError(t, err)
}

func TestGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	notWSDL := filepath.Join(dir, "schema.xsd")
	require.NoError(t, os.WriteFile(notWSDL,
		[]byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"/>`), 0644))
	malformed := filepath.Join(dir, "broken.wsdl")
	require.NoError(t, os.WriteFile(malformed, []byte(`<definitions>`), 0644))

	tests := []struct {
		name string
		args []string
		code errbuilder.ErrCode
		msg  string
	}{
		{"missing file", []string{filepath.Join(dir, "missing.wsdl")}, errbuilder.CodeNotFound, "failed to read WSDL file"},
		{"no definitions", []string{notWSDL}, errbuilder.CodeInvalidArgument, "Invalid WSDL: No definitions found"},
		{"malformed xml", []string{malformed}, errbuilder.CodeInvalidArgument, "failed to parse WSDL"},
		{"bad target", []string{usersWSDL, "--target", "java"}, errbuilder.CodeInvalidArgument, "unknown target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "-o", filepath.Join(dir, "out.ts"))
			err := run(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errbuilder.CodeOf(err))
			assert.Contains(t, errorMessage(err), tt.msg)
		})
	}
}

func TestGenerateRequiresSource(t *testing.T) {
	err := run(t)
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeForError(err))
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	assert.Equal(t, "explicit", resolveString(nil, "explicit", "test_key", "test-flag"))
	assert.Equal(t, "", resolveString(nil, "", "test_key", "test-flag"))
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("bad input"),
			expected: 2,
		},
		{
			name: "not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("missing"),
			expected: 3,
		},
		{
			name: "internal",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("write failed"),
			expected: 4,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCodeForError(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("no such file")
	assert.Equal(t, "no such file", errorMessage(err))
	assert.Equal(t, "boom", errorMessage(errors.New("boom")))
}
