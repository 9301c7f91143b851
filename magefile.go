//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/integralist/go-findroot/find"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/mholt/archiver"
)

const (
	binaryName  = "posterserv"
	mainPackage = "./cmd/posterserv"
	versionPkg  = "github.com/wrouesnel/posterserv/version"
)

// Platforms release binaries are built for, as GOOS/GOARCH.
var platforms = []string{
	"linux/amd64",
	"linux/arm64",
	"darwin/amd64",
	"darwin/arm64",
	"windows/amd64",
}

var Default = Build

// rootDir is the repository root, or the working directory outside a checkout.
func rootDir() string {
	stat, err := find.Repo()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return stat.Path
}

func buildVersion() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || out == "" {
		return "0.0.0-dev"
	}
	return strings.TrimPrefix(out, "v")
}

func ldflags() string {
	return fmt.Sprintf("-s -w -X %s.Version=%s", versionPkg, buildVersion())
}

func goBuild(env map[string]string, output string) error {
	return sh.RunWithV(env, "go", "build", "-trimpath", "-ldflags", ldflags(), "-o", output, mainPackage)
}

// Build compiles the binary for the host platform into bin/.
func Build() error {
	return goBuild(map[string]string{"CGO_ENABLED": "0"}, filepath.Join(rootDir(), "bin", binaryName))
}

// Test runs the unit and CLI script tests.
func Test() error {
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build outputs.
func Clean() error {
	for _, dir := range []string{"bin", "dist"} {
		if err := sh.Rm(filepath.Join(rootDir(), dir)); err != nil {
			return err
		}
	}
	return nil
}

type Release mg.Namespace

// Binaries cross-compiles the binary for every release platform into dist/.
func (Release) Binaries() error {
	for _, platform := range platforms {
		goos, goarch := splitPlatform(platform)
		if err := goBuild(map[string]string{"CGO_ENABLED": "0", "GOOS": goos, "GOARCH": goarch},
			releaseBinary(goos, goarch)); err != nil {
			return err
		}
	}
	return nil
}

// Archives packages each release binary into dist/.
func (Release) Archives() error {
	mg.Deps(Release.Binaries)

	for _, platform := range platforms {
		goos, goarch := splitPlatform(platform)
		ext := "tar.gz"
		if goos == "windows" {
			ext = "zip"
		}
		archive := filepath.Join(rootDir(), "dist", fmt.Sprintf("%s_%s_%s_%s.%s", binaryName, buildVersion(), goos, goarch, ext))
		_ = os.Remove(archive)
		if err := archiver.Archive([]string{releaseBinary(goos, goarch)}, archive); err != nil {
			return fmt.Errorf("archiving %s: %w", platform, err)
		}
	}
	return nil
}

func splitPlatform(platform string) (string, string) {
	parts := strings.SplitN(platform, "/", 2)
	return parts[0], parts[1]
}

func releaseBinary(goos, goarch string) string {
	name := binaryName
	if goos == "windows" {
		name += ".exe"
	}
	return filepath.Join(rootDir(), "dist", fmt.Sprintf("%s_%s", goos, goarch), name)
}
