package mocks

import (
	"errors"
	"testing"
)

func TestStream(t *testing.T) {
	expected := errors.New("mocked error")

	t.Run("Read", func(t *testing.T) {
		s := &Stream{
			MockRead: func(b []byte) (int, error) {
				return 0, expected
			},
		}
		if _, err := s.Read(make([]byte, 4)); !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("Write", func(t *testing.T) {
		s := &Stream{
			MockWrite: func(b []byte) (int, error) {
				return 0, expected
			},
		}
		if _, err := s.Write(nil); !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("Close", func(t *testing.T) {
		s := &Stream{
			MockClose: func() error {
				return expected
			},
		}
		if err := s.Close(); !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("Flush", func(t *testing.T) {
		s := &Stream{
			MockFlush: func() error {
				return expected
			},
		}
		if err := s.Flush(); !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
	})
}
