package sconeconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/scone/cmds"
	"github.com/reusee/scone/configs"
	"github.com/reusee/scone/logs"
)

//go:embed schema.cue
var Schema string

var configFiles = cmds.Collect[string]("-config")

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	paths := append([]string(nil), *configFiles...)

	filenames := []string{
		"scone.cue",
		".scone.cue",
	}
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")
	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	if len(paths) > 0 {
		logger.Info("config files", "paths", paths)
	}
	return configs.NewLoader(paths, Schema)
}
