// SPDX-License-Identifier: MIT

package storage

import "sync"

type synchronized struct {
	mu  sync.Mutex
	src Source
}

// Synchronized serializes every call on src so it can be shared between
// goroutines. HDF5 handles are not safe for concurrent reads.
func Synchronized(src Source) Source {
	if s, ok := src.(*synchronized); ok {
		return s
	}

	return &synchronized{src: src}
}

func (s *synchronized) Dataset(name string) (Array, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.src.Dataset(name)
}

func (s *synchronized) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.src.Close()
}
