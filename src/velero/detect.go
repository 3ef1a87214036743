package velero

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
)

// RequiredVersion is the exact velero client release this tool drives. The
// comparison is an exact string match, not a semantic version range.
const RequiredVersion = "v1.4.2"

// BinaryEnv overrides the executable name or path looked up for velero.
const BinaryEnv = "VELERO_BACKUP_VELERO_BIN"

// versionTokenIndex is the position of the version in `velero version`
// output: "Client:" "Version:" "v1.4.2" ...
const versionTokenIndex = 2

// ErrUnexpectedVersionOutput is returned when the version output does not have
// the expected "Client: Version: <version>" prefix.
const ErrUnexpectedVersionOutput = errors.ConstError("unexpected velero version output")

// VersionInfo describes the velero binary found for one invocation.
type VersionInfo struct {
	Path     string
	Found    string
	Required string
}

// Matches reports whether the found version is exactly the required one.
func (v VersionInfo) Matches() bool {
	return v.Found != "" && v.Found == v.Required
}

// FoundOrNone renders the found version for humans.
func (v VersionInfo) FoundOrNone() string {
	if v.Found == "" {
		return "None"
	}
	return v.Found
}

// VersionMismatchError reports that velero is missing or is not the pinned
// release.
type VersionMismatchError struct {
	Found    string
	Required string
}

func (e *VersionMismatchError) Error() string {
	found := e.Found
	if found == "" {
		found = "none"
	}
	return fmt.Sprintf("wrong velero version: found %s, require %s", found, e.Required)
}

// Gate checks the installed velero against RequiredVersion. Nothing is cached:
// every call looks the binary up and asks it for its version again.
type Gate struct {
	log      logrus.FieldLogger
	lookPath func(string) (string, error)
	output   func(ctx context.Context, path string, args ...string) ([]byte, error)
}

// NewGate returns a Gate using PATH lookup and a real subprocess.
func NewGate(log logrus.FieldLogger) *Gate {
	return &Gate{log: log, lookPath: exec.LookPath, output: commandOutput}
}

// Detect locates velero and queries its version. A missing binary is not an
// error: it yields an empty Found.
func (g *Gate) Detect(ctx context.Context) (VersionInfo, error) {
	info := VersionInfo{Required: RequiredVersion}
	path, err := g.lookPath(BinaryName())
	if err != nil {
		g.log.Debugf("velero binary not found: %v", err)
		return info, nil
	}
	info.Path = path
	out, err := g.output(ctx, path, "version", "--client-only")
	if err != nil {
		return info, errors.Annotatef(err, "running %s version", path)
	}
	g.log.Debugf("Velero version output: %s", strings.TrimSpace(string(out)))
	found, err := ExtractVersion(string(out))
	if err != nil {
		return info, errors.Trace(err)
	}
	g.log.Debugf("Current Velero version is %s", found)
	info.Found = found
	return info, nil
}

// Check returns the detected version and a *VersionMismatchError unless it is
// exactly RequiredVersion. Failing to run or parse the version subcommand
// counts as a mismatch.
func (g *Gate) Check(ctx context.Context) (VersionInfo, error) {
	info, err := g.Detect(ctx)
	if err != nil {
		g.log.Warnf("Unable to determine velero version: %v", err)
	}
	if !info.Matches() {
		return info, &VersionMismatchError{Found: info.Found, Required: info.Required}
	}
	return info, nil
}

// Report backs the required-version subcommand and never fails: detection
// problems are logged and reported as "None".
func (g *Gate) Report(ctx context.Context, w io.Writer) VersionInfo {
	info, err := g.Detect(ctx)
	if err != nil {
		g.log.Warnf("Unable to determine velero version: %v", err)
		info.Found = ""
	}
	fmt.Fprintln(w, "Required Velero version:", info.Required)
	fmt.Fprintln(w, "Velero version found:", info.FoundOrNone())
	return info
}

// ExtractVersion pulls the client version out of `velero version` output.
func ExtractVersion(output string) (string, error) {
	fields := strings.Fields(output)
	if len(fields) <= versionTokenIndex {
		return "", errors.Annotatef(ErrUnexpectedVersionOutput, "got %d tokens", len(fields))
	}
	if fields[versionTokenIndex-1] != "Version:" {
		return "", errors.Annotatef(ErrUnexpectedVersionOutput, "token %q precedes the version", fields[versionTokenIndex-1])
	}
	return fields[versionTokenIndex], nil
}

// BinaryName returns the velero executable to look up, honouring BinaryEnv.
func BinaryName() string {
	if v := strings.TrimSpace(os.Getenv(BinaryEnv)); v != "" {
		return v
	}
	return "velero"
}

func commandOutput(ctx context.Context, path string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, errors.Annotatef(err, "stderr: %s", strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
