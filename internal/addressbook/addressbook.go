// Package addressbook loads the read-only name→address directory and
// resolves template-declared recipient names into validated addresses.
package addressbook

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/example/mail-composer/internal/apperror"
	"github.com/example/mail-composer/internal/message"
)

// Entry is one directory record as stored on disk.
type Entry struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Book is the parsed directory. Names are unique and case-sensitive.
// Stored addresses are not validated at load time; Resolve reparses them,
// so a malformed entry only surfaces when it is actually used.
type Book struct {
	byName map[string]string
}

// Load reads a JSON array of {"name", "address"} records.
func Load(path string) (*Book, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.New(apperror.InternalServerError,
			"failed to read the address book").
			WithHint("check that the address book file exists and is readable").
			WithCause(err)
	}

	var entries []Entry
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, apperror.New(apperror.UnavailableForLegalReasons,
			"failed to parse the address book").
			WithHint(`expected a JSON array of {"name": "...", "address": "..."} records`).
			WithCause(err)
	}

	byName := make(map[string]string, len(entries))
	for _, entry := range entries {
		if _, ok := byName[entry.Name]; ok {
			return nil, apperror.Newf(apperror.UnavailableForLegalReasons,
				"duplicate name %q in the address book", entry.Name).
				WithHint("address book names must be unique")
		}
		byName[entry.Name] = entry.Address
	}

	return &Book{byName: byName}, nil
}

// Resolve returns the address registered under the given name. The stored
// string is reparsed on every hit.
func (b *Book) Resolve(name string) (message.Address, error) {
	raw, ok := b.byName[name]
	if !ok {
		return message.Address{}, apperror.Newf(apperror.NotFound,
			"no address registered for %q", name).
			WithHint("check the address book contents and the template's recipient names")
	}
	return message.ParseAddress(raw)
}

// ResolveMany resolves names in input order and fails fast on the first
// name that cannot be resolved. No partial results are returned.
func (b *Book) ResolveMany(names []string) ([]message.Address, error) {
	addrs := make([]message.Address, 0, len(names))
	for _, name := range names {
		addr, err := b.Resolve(name)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// Names returns the registered names in sorted order.
func (b *Book) Names() []string {
	names := make([]string, 0, len(b.byName))
	for name := range b.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of directory entries.
func (b *Book) Len() int {
	return len(b.byName)
}
