package calcconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/taicalc/cmds"
	"github.com/reusee/taicalc/configs"
	"github.com/reusee/taicalc/logs"
)

//go:embed schema.cue
var schema string

var configFiles = cmds.Collect[string]("-config")

var filenames = []string{
	"taicalc.cue",
	".taicalc.cue",
}

// ConfigsLoader loads files named by -config, then taicalc.cue and .taicalc.cue from the
// working directory, the user config directory and /etc. Earlier files win.
func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	paths := append([]string{}, *configFiles...)
	paths = append(paths, discover()...)
	if len(paths) > 0 {
		logger.Info("config files",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, schema)
}

func discover() (paths []string) {
	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
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
	return
}

// NewLoader checks sources against the taicalc schema.
func NewLoader(sources []configs.Source) configs.Loader {
	return configs.NewSourceLoader(sources, schema)
}
