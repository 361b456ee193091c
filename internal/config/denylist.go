package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"

	"cgraph/internal/lang"
)

// DenyListFile is the on-disk shape of a user deny-list extension. Entries
// are added on top of the built-in defaults.
type DenyListFile struct {
	Names    []string `toml:"names"`
	Prefixes []string `toml:"prefixes"`
}

// LoadDenyList builds the non-trackable filter, extending the defaults from
// a TOML file when path is non-empty.
func LoadDenyList(path string) (*lang.DenyList, error) {
	deny := lang.NewDenyList()
	if path == "" {
		return deny, nil
	}

	var file DenyListFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to load deny list %s: %w", path, err)
	}

	deny.Add(file.Names...)
	deny.AddPrefix(file.Prefixes...)
	return deny, nil
}

// WriteStarterDenyList writes a commented-out starter deny-list file so
// users have a template to extend. Fails if the file already exists.
func WriteStarterDenyList(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("deny list already exists: %s", path)
	}

	starter := DenyListFile{
		Names:    []string{},
		Prefixes: []string{},
	}
	data, err := gotoml.Marshal(starter)
	if err != nil {
		return err
	}

	header := []byte("# Additional non-trackable callees, merged with the built-in defaults.\n" +
		"# names match the bare callee, prefixes match the full call expression.\n")
	return os.WriteFile(path, append(header, data...), 0644)
}
