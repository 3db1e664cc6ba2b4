// Package update checks GitHub releases for a newer nanoterm and replaces the
// running binary.
package update

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	repoOwner = "kurtsley"
	repoName  = "nanoterm"

	checksumFile = "checksums.txt"
)

// ErrDevBuild is returned for builds without a release version.
var ErrDevBuild = errors.New("cannot update dev builds")

// InstallMethod represents how nanoterm was installed.
type InstallMethod int

const (
	// InstallUnknown means the executable path could not be resolved.
	InstallUnknown InstallMethod = iota
	// InstallGo means the binary was built by go install.
	InstallGo
	// InstallRelease means a release archive was unpacked by hand.
	InstallRelease
)

func (m InstallMethod) String() string {
	switch m {
	case InstallGo:
		return "go"
	case InstallRelease:
		return "release"
	default:
		return "unknown"
	}
}

// DetectInstallMethod inspects the path of the running executable.
func DetectInstallMethod() InstallMethod {
	exe, err := os.Executable()
	if err != nil {
		return InstallUnknown
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return InstallUnknown
	}
	return installMethodFor(exe, os.Getenv("GOBIN"), os.Getenv("GOPATH"))
}

func installMethodFor(exe, gobin, gopath string) InstallMethod {
	dir := filepath.Dir(exe)
	if gobin != "" && dir == filepath.Clean(gobin) {
		return InstallGo
	}
	if gopath != "" && dir == filepath.Join(gopath, "bin") {
		return InstallGo
	}
	if strings.HasSuffix(dir, string(filepath.Separator)+filepath.Join("go", "bin")) {
		return InstallGo
	}
	return InstallRelease
}

// UpdateInstructions tells the user how to upgrade for the given install method.
func UpdateInstructions(method InstallMethod) string {
	switch method {
	case InstallGo:
		return "Run: go install github.com/kurtsley/nanoterm/cmd/nanoterm@latest"
	default:
		return "Run: nanoterm upgrade"
	}
}

// Release describes a published release.
type Release struct {
	Version    string
	ReleaseURL string
}

// IsDevBuild reports whether version is a local build.
func IsDevBuild(version string) bool {
	v := strings.TrimPrefix(version, "v")
	return v == "" || v == "dev"
}

func detectLatest(ctx context.Context) (*selfupdate.Updater, *selfupdate.Release, bool, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:    source,
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: checksumFile},
	})
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to create updater: %w", err)
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to detect latest version: %w", err)
	}
	return updater, latest, found, nil
}

// Check reports the latest release and whether it is newer than current.
// Dev builds never have an update.
func Check(ctx context.Context, current string) (*Release, bool, error) {
	if IsDevBuild(current) {
		return nil, false, nil
	}

	_, latest, found, err := detectLatest(ctx)
	if err != nil || !found {
		return nil, false, err
	}

	release := &Release{Version: latest.Version(), ReleaseURL: latest.URL}
	return release, latest.GreaterThan(strings.TrimPrefix(current, "v")), nil
}

// Apply replaces the running binary with the latest release and returns the
// version installed.
func Apply(ctx context.Context, current string) (string, error) {
	if IsDevBuild(current) {
		return "", ErrDevBuild
	}

	updater, latest, found, err := detectLatest(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("no releases found")
	}
	if !latest.GreaterThan(strings.TrimPrefix(current, "v")) {
		return "", fmt.Errorf("already at latest version (%s)", current)
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return "", fmt.Errorf("failed to update: %w", err)
	}
	return latest.Version(), nil
}

// Notice formats the message shown when a newer release exists.
func Notice(current, latest string, method InstallMethod) string {
	return fmt.Sprintf("Update available: %s -> %s (%s)", current, latest, UpdateInstructions(method))
}
