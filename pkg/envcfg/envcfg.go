package envcfg

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// cfnctl reads defaults from ~/.cfnctl.ini, to allow developers to keep
// consistent settings between the environments they work on. One section
// per environment:
//
//	[dev]
//	region = eu-west-1
//	account_id = 111111111111
//	prefix_list = sandbox-,scratch-
//
// Flags always win over values from the file.

// Defaults holds the optional per-environment settings.
type Defaults struct {
	Region     string
	AccountID  string
	PrefixList []string
}

// DefaultPath returns the config file location in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return path.Join(home, ".cfnctl.ini"), nil
}

// Load reads the defaults for the named environment. A missing file or a
// missing section is not an error and yields zero Defaults.
func Load(file string, env string) (Defaults, error) {
	var d Defaults

	if _, err := os.Stat(file); os.IsNotExist(err) {
		return d, nil
	} else if err != nil {
		return d, err
	}

	cfg, err := ini.Load(file)
	if err != nil {
		return d, errors.Wrapf(err, "loading config file %s", file)
	}

	sec := cfg.Section(env)
	d.Region = sec.Key("region").String()
	d.AccountID = sec.Key("account_id").String()
	d.PrefixList = splitList(sec.Key("prefix_list").String())
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
