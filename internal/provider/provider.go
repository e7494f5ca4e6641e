// Package provider abstracts the bytes of the file under analysis: size query
// and bounded writes over an in-memory image of the loaded data.
package provider

import (
	"fmt"
	"io"
	"os"
)

// Provider is the data source the script commands operate on.
type Provider interface {
	// Path returns the path of the loaded file.
	Path() string

	// Size returns the current data size in bytes.
	Size() uint64

	// ReadAt copies len(p) bytes starting at address into p.
	ReadAt(address uint64, p []byte) error

	// WriteAt patches len(p) bytes starting at address. The write is rejected
	// when it would run past the end of the data; nothing is written then.
	WriteAt(address uint64, p []byte) error

	// SaveTo writes the current (patched) image to w.
	SaveTo(w io.Writer) error
}

// Memory is a Provider over an in-memory copy of the loaded file. Patches
// mutate the copy, never the file on disk.
type Memory struct {
	path string
	data []byte
}

// Open loads the file at path into memory.
func Open(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load data file: %w", err)
	}
	return &Memory{path: path, data: data}, nil
}

// NewMemory creates a provider over the given bytes, reporting path as its
// origin. The slice is owned by the provider afterwards.
func NewMemory(path string, data []byte) *Memory {
	return &Memory{path: path, data: data}
}

// Path returns the path of the loaded file.
func (m *Memory) Path() string { return m.path }

// Size returns the current data size in bytes.
func (m *Memory) Size() uint64 { return uint64(len(m.data)) }

// ReadAt copies len(p) bytes starting at address into p.
func (m *Memory) ReadAt(address uint64, p []byte) error {
	if err := m.checkRange(address, len(p)); err != nil {
		return err
	}
	copy(p, m.data[address:])
	return nil
}

// WriteAt patches len(p) bytes starting at address.
func (m *Memory) WriteAt(address uint64, p []byte) error {
	if err := m.checkRange(address, len(p)); err != nil {
		return err
	}
	copy(m.data[address:], p)
	return nil
}

// SaveTo writes the current image to w.
func (m *Memory) SaveTo(w io.Writer) error {
	if _, err := w.Write(m.data); err != nil {
		return fmt.Errorf("failed to save data image: %w", err)
	}
	return nil
}

func (m *Memory) checkRange(address uint64, n int) error {
	if address >= uint64(len(m.data)) || uint64(n) > uint64(len(m.data))-address {
		return fmt.Errorf("range [%d, %d) outside data of size %d", address, address+uint64(n), len(m.data))
	}
	return nil
}
