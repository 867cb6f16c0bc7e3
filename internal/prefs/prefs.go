// Package prefs holds the single persisted user preference: the UI language.
// The store is an explicitly-owned process-wide value exposed only through
// accessors, never as a raw mutable field.
package prefs

import "sync"

const DefaultLanguage = "en"

var supportedLanguages = map[string]bool{
	"en": true,
	"ar": true,
}

type UnsupportedLanguageError string

func (e UnsupportedLanguageError) Error() string {
	return "unsupported language: " + string(e)
}

type Store struct {
	mu       sync.RWMutex
	language string
}

func NewStore() *Store {
	return &Store{language: DefaultLanguage}
}

// Language returns the current UI language.
func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage switches the UI language. Unknown codes are rejected and leave
// the current value untouched.
func (s *Store) SetLanguage(lang string) error {
	if !supportedLanguages[lang] {
		return UnsupportedLanguageError(lang)
	}

	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	return nil
}
