// Package dataset builds and caches the merged municipality dataset from
// the two source files.
package dataset

import (
	"errors"
	"io/fs"
	"os"

	"github.com/couchcryptid/piggdekk-dashboard/internal/domain"
	"github.com/couchcryptid/piggdekk-dashboard/internal/tabular"
)

// LoadSupport reads the support dataset, enforcing its column contract.
func LoadSupport(path string) (tabular.Table, error) {
	return tabular.ReadFile(path, domain.SupportColumns)
}

// LoadContacts reads the contacts dataset. An absent file is not an error:
// contacts are optional, and callers get an empty table with exactly the
// contact columns so the merge needs no special-casing.
func LoadContacts(path string) (tabular.Table, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return tabular.New(domain.ContactColumns...), nil
	}
	return tabular.ReadFile(path, domain.ContactColumns)
}
