package kv

import "errors"

// ErrNotFound is returned when a key has no value
var ErrNotFound = errors.New("key not found")

type GetInput struct {
	Key string
}

type GetOutput struct {
	Value []byte
}

type PutInput struct {
	Key   string
	Value []byte
}

type DeleteInput struct {
	Key string
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	return nil
}
