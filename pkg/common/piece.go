package common

import "fmt"

// Piece is a nominal animal kind plus, for non-empty pieces, an owner tag.
//
// The owner tag is convention-relative, not literal: after every move the
// board is rotated and re-owned (see Board.Rotate) so that the side to move
// always holds the Sente-looking (owner bit clear) tag, regardless of
// whether that side is literally Sente or Gote. Board.Sente records which
// player is literally to move; Piece itself never does.
type Piece uint8

const (
	Empty Piece = iota
	Chick
	Hen
	Elephant
	Giraffe
	Lion
)

const goteBit Piece = 0x08

// Animal strips the owner tag, leaving the bare animal kind.
func (p Piece) Animal() Piece { return p &^ goteBit }

// IsEmpty reports whether the slot holds no piece.
func (p Piece) IsEmpty() bool { return p.Animal() == Empty }

// IsGote reports whether p carries the Gote-looking owner tag. Meaningless
// for Empty.
func (p Piece) IsGote() bool { return p&goteBit != 0 }

// NewPiece builds a piece of the given animal kind and owner tag.
func NewPiece(animal Piece, gote bool) Piece {
	if gote {
		return animal | goteBit
	}
	return animal
}

// Promote turns a Chick into a Hen. It is the identity on a Hen and
// undefined on any other animal (callers only promote Chicks).
func Promote(p Piece) Piece {
	if p.Animal() == Chick {
		return p + 1
	}
	return p
}

// FlipOwner toggles the owner tag. It is the identity on Empty.
func FlipOwner(p Piece) Piece {
	if p.IsEmpty() {
		return p
	}
	return p ^ goteBit
}

// Byte renders p using the board-string alphabet: space for empty,
// uppercase for a Sente-tagged piece, lowercase for Gote.
func (p Piece) Byte() byte {
	var b byte
	switch p.Animal() {
	case Empty:
		return ' '
	case Chick:
		b = 'C'
	case Hen:
		b = 'D'
	case Elephant:
		b = 'E'
	case Giraffe:
		b = 'G'
	case Lion:
		b = 'L'
	default:
		return '?'
	}
	if p.IsGote() {
		b += 'a' - 'A'
	}
	return b
}

// ParsePieceByte parses one character of the board-string alphabet.
func ParsePieceByte(c byte) (Piece, error) {
	if c == ' ' {
		return Empty, nil
	}
	gote := c >= 'a' && c <= 'z'
	upper := c
	if gote {
		upper -= 'a' - 'A'
	}
	var animal Piece
	switch upper {
	case 'C':
		animal = Chick
	case 'D':
		animal = Hen
	case 'E':
		animal = Elephant
	case 'G':
		animal = Giraffe
	case 'L':
		animal = Lion
	default:
		return Empty, fmt.Errorf("dobutsu: unrecognized piece byte %q", c)
	}
	return NewPiece(animal, gote), nil
}

func (p Piece) String() string {
	return string(p.Byte())
}
