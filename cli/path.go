package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/equatic/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// Extensions of the configuration files. Both are loaded when present, and
// the YAML file takes precedence.
const (
	yamlExt = ".yaml"
	jsonExt = ".json"
)

// DefaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// prefixRules rewrite the executable name into the directory prefix, in order.
var prefixRules = []struct {
	rex *regexp.Regexp
	rep string
}{
	{regexp.MustCompile(`^__debug_bin\d+$`), pkg.Name}, // dlv default output
	{regexp.MustCompile(`^\.+`), ""},                   // leading dot(s)
}

// basePrefix returns the name of the per-user configuration and cache
// directories: the base name of the executable without extension, rewritten
// by prefixRules.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		for _, r := range prefixRules {
			id = r.rex.ReplaceAllString(id, r.rep)
		}

		if id == "" {
			return pkg.Name
		}

		return id
	},
)

// userDir returns the [basePrefix] directory under the directory reported by
// base. If base fails, fallback under the home directory is used, and then the
// working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, basePrefix())
}

var (
	configDir = sync.OnceValue(func() string { return userDir(os.UserConfigDir, ".config") })
	cacheDir  = sync.OnceValue(func() string { return userDir(os.UserCacheDir, ".cache") })
)

// configPath returns the path formed by joining the configuration directory
// with elem.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// cachePath returns the path formed by joining the cache directory with elem.
func cachePath(elem ...string) string {
	return filepath.Join(append([]string{cacheDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
