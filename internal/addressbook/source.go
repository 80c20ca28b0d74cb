package addressbook

import "github.com/example/mail-composer/internal/message"

// Source resolves names against a directory file that is loaded on first
// use. Deferring the load keeps directory problems at resolution time, so a
// malformed address book cannot prevent the work-start clock-in from being
// recorded.
type Source struct {
	path string
	book *Book
}

// NewSource points a lazy resolver at the directory file.
func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) load() (*Book, error) {
	if s.book != nil {
		return s.book, nil
	}
	book, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	s.book = book
	return book, nil
}

// Resolve loads the directory if needed and resolves a single name.
func (s *Source) Resolve(name string) (message.Address, error) {
	book, err := s.load()
	if err != nil {
		return message.Address{}, err
	}
	return book.Resolve(name)
}

// ResolveMany loads the directory if needed and resolves names in input
// order, failing fast on the first miss.
func (s *Source) ResolveMany(names []string) ([]message.Address, error) {
	book, err := s.load()
	if err != nil {
		return nil, err
	}
	return book.ResolveMany(names)
}
