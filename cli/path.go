package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/entap/expr/pkg"
)

// baseConfig is the base name of the configuration file and the top-level
// key holding flag values inside it.
const baseConfig = "config"

const defaultDirMode os.FileMode = 0o700

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	return errors.Join(
		os.MkdirAll(pkg.ConfigDir(), defaultDirMode),
		os.MkdirAll(pkg.CacheDir(), defaultDirMode),
	)
}
