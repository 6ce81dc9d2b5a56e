// Package yaml loads locator profiles from YAML documents so the
// selectors that bind extraction to page markup can be swapped without
// recompiling.
package yaml

import (
	"io"
	"os"

	"github.com/fwojciec/relgraph"
	"gopkg.in/yaml.v3"
)

// profilesDoc is the YAML document shape: a list of locator profiles.
type profilesDoc struct {
	Profiles []*relgraph.LocatorProfile `yaml:"profiles"`
}

// LoadProfiles decodes locator profiles from a YAML document.
// Returns EINVALID for malformed documents or unknown harvest kinds.
func LoadProfiles(r io.Reader) ([]*relgraph.LocatorProfile, error) {
	var doc profilesDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, relgraph.Errorf(relgraph.EINVALID, "malformed locator profiles: %v", err)
	}
	for _, profile := range doc.Profiles {
		if !profile.Kind.Valid() {
			return nil, relgraph.Errorf(relgraph.EINVALID, "unknown harvest kind %q in locator profiles", profile.Kind)
		}
	}
	return doc.Profiles, nil
}

// LoadProfilesFile reads locator profiles from a YAML file.
// Returns ENOTFOUND when the file does not exist.
func LoadProfilesFile(path string) ([]*relgraph.LocatorProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, relgraph.Errorf(relgraph.ENOTFOUND, "locator profiles file %q not found", path)
		}
		return nil, err
	}
	defer f.Close()
	return LoadProfiles(f)
}

// Register loads profiles from the reader and registers each one,
// overriding the registry's built-in profiles for the kinds present.
func Register(registry relgraph.LocatorRegistry, r io.Reader) error {
	profiles, err := LoadProfiles(r)
	if err != nil {
		return err
	}
	for _, profile := range profiles {
		registry.Register(profile)
	}
	return nil
}
