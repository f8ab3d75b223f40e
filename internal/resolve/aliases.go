package resolve

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// aliasFile is the on-disk shape of an alias override file:
//
//	aliases:
//	  nyc: new-york-newark-jersey-city-ny
//	  sf: san-francisco-oakland-berkeley-ca
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadAliases reads alias→metro-id overrides from a YAML file. A missing
// path returns an empty map.
func LoadAliases(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "resolve: read alias file %s", path)
	}

	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "resolve: parse alias file %s", path)
	}
	return f.Aliases, nil
}
