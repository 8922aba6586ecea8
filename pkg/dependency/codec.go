// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/m-renaud/cabal/pkg/pkgname"
	"github.com/m-renaud/cabal/pkg/verrange"
)

var ErrCorruptEncoding = errors.New("corrupt dependency encoding")

const codecVersion = 1

const (
	tagMainLibrary = 0
	tagSubLibrary  = 1
)

// MarshalBinary encodes the three fields structurally: the package name,
// the canonical range text, and the selectors in canonical order, each
// length-prefixed. Used for caching and cross-process transfer; the text
// grammar remains the only user-facing format.
func (d Dependency) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(codecVersion)
	writeString(&buf, d.pkg.String())
	writeString(&buf, d.rng.String())

	sels := d.libs.Selectors()
	writeLen(&buf, len(sels))
	for _, sel := range sels {
		if sub, ok := sel.Sub(); ok {
			buf.WriteByte(tagSubLibrary)
			writeString(&buf, sub.String())
		} else {
			buf.WriteByte(tagMainLibrary)
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes and re-enters through New, so the invariant is
// re-established on the receiving side even for bytes produced elsewhere.
func (d *Dependency) UnmarshalBinary(data []byte) error {
	buf := bytes.NewReader(data)
	ver, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: missing header", ErrCorruptEncoding)
	}
	if ver != codecVersion {
		return fmt.Errorf("%w: unsupported codec version %d", ErrCorruptEncoding, ver)
	}

	rawName, err := readString(buf)
	if err != nil {
		return err
	}
	name, err := pkgname.Parse(rawName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptEncoding, err)
	}

	rawRange, err := readString(buf)
	if err != nil {
		return err
	}
	rng, err := verrange.Parse(rawRange)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptEncoding, err)
	}

	count, err := readLen(buf)
	if err != nil {
		return err
	}
	sels := make([]LibrarySelector, 0, count)
	for i := 0; i < count; i++ {
		tag, err := buf.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: truncated selector list", ErrCorruptEncoding)
		}
		switch tag {
		case tagMainLibrary:
			sels = append(sels, MainLibrary())
		case tagSubLibrary:
			raw, err := readString(buf)
			if err != nil {
				return err
			}
			sub, err := pkgname.ParseComponent(raw)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCorruptEncoding, err)
			}
			sels = append(sels, SubLibrary(sub))
		default:
			return fmt.Errorf("%w: unknown selector tag %d", ErrCorruptEncoding, tag)
		}
	}
	if buf.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrCorruptEncoding, buf.Len())
	}

	*d = New(name, rng, NewLibrarySet(sels...))
	return nil
}

// Hash digests the structural encoding. Equal dependencies (same package,
// same canonical range text, same selectors) hash equal; use Simplify first
// when range equivalence rather than canonical-text identity is wanted.
func (d Dependency) Hash() [sha256.Size]byte {
	encoded, _ := d.MarshalBinary()
	return sha256.Sum256(encoded)
}

func writeLen(buf *bytes.Buffer, n int) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], uint16(n))
	buf.Write(tmp[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeLen(buf, len(s))
	buf.WriteString(s)
}

func readLen(buf *bytes.Reader) (int, error) {
	var tmp [2]byte
	if _, err := io.ReadFull(buf, tmp[:]); err != nil {
		return 0, fmt.Errorf("%w: truncated length prefix", ErrCorruptEncoding)
	}
	return int(binary.BigEndian.Uint16(tmp[:])), nil
}

func readString(buf *bytes.Reader) (string, error) {
	n, err := readLen(buf)
	if err != nil {
		return "", err
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(buf, out); err != nil {
		return "", fmt.Errorf("%w: truncated string field", ErrCorruptEncoding)
	}
	return string(out), nil
}
