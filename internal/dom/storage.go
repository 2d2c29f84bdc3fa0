//go:build js && wasm

package dom

import (
	"errors"
	"syscall/js"
)

// LocalStorage is a session.KV over window.localStorage.
type LocalStorage struct {
	ls js.Value
}

// NewLocalStorage binds to window.localStorage.
func NewLocalStorage() (*LocalStorage, error) {
	ls := js.Global().Get("localStorage")
	if !present(ls) {
		return nil, errors.New("localStorage is not available")
	}
	return &LocalStorage{ls: ls}, nil
}

func (s *LocalStorage) Get(key string) (string, bool, error) {
	v := s.ls.Call("getItem", key)
	if v.IsNull() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func (s *LocalStorage) Set(key, value string) error {
	s.ls.Call("setItem", key, value)
	return nil
}

func (s *LocalStorage) Remove(key string) error {
	s.ls.Call("removeItem", key)
	return nil
}
