// Package positionid implements compact position encoding in the
// style of GNU Backgammon's position IDs.
//
// A position ID is a 14-character base64 string derived from an
// 80-bit key: for each side, each of the 25 relative points (24 board
// points by pip distance plus the bar) contributes one 1-bit per
// checker followed by a 0-bit.
package positionid

import "errors"

const (
	// IDLength is the length of a position ID string.
	IDLength = 14
	// RelPoints is the number of relative points per side: 24 board
	// points ordered by pip distance, plus the bar at index 24.
	RelPoints = 25
)

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// ErrBadID reports a malformed position ID.
var ErrBadID = errors.New("malformed position ID")

// RelBoard is a side-relative view of a position: [side][relative
// point] checker counts, where relative point i holds checkers i+1
// pips from home and index 24 is the bar.
type RelBoard [2][RelPoints]uint8

// Key is the 80-bit packed form of a position.
type Key [10]uint8

// addBits sets nBits consecutive 1-bits starting at bitPos.
func addBits(key *Key, bitPos, nBits uint32) {
	k := bitPos / 8
	r := bitPos & 0x7
	b := ((uint32(1) << nBits) - 1) << r

	key[k] |= uint8(b)
	if k < 8 {
		key[k+1] |= uint8(b >> 8)
		key[k+2] |= uint8(b >> 16)
	} else if k == 8 {
		key[k+1] |= uint8(b >> 8)
	}
}

// MakeKey packs a relative board into its 80-bit key.
func MakeKey(rel RelBoard) Key {
	var key Key
	var bitPos uint32

	for side := 0; side < 2; side++ {
		for p := 0; p < RelPoints; p++ {
			if nc := uint32(rel[side][p]); nc > 0 {
				addBits(&key, bitPos, nc)
				bitPos += nc + 1
			} else {
				bitPos++
			}
		}
	}
	return key
}

// FromKey unpacks a key back into a relative board.
func FromKey(key Key) (RelBoard, error) {
	var rel RelBoard
	side, p := 0, 0

	for a := 0; a < len(key); a++ {
		cur := key[a]
		for k := 0; k < 8; k++ {
			if cur&0x1 != 0 {
				if side >= 2 || p >= RelPoints {
					return rel, ErrBadID
				}
				rel[side][p]++
			} else {
				p++
				if p == RelPoints {
					side++
					p = 0
				}
			}
			cur >>= 1
		}
	}
	return rel, nil
}

// ID renders the key as a 14-character base64 string.
func (key Key) ID() string {
	result := make([]byte, IDLength)
	puch := key[:]

	for i := 0; i < 3; i++ {
		result[i*4] = base64Chars[puch[0]>>2]
		result[i*4+1] = base64Chars[((puch[0]&0x03)<<4)|(puch[1]>>4)]
		result[i*4+2] = base64Chars[((puch[1]&0x0F)<<2)|(puch[2]>>6)]
		result[i*4+3] = base64Chars[puch[2]&0x3F]
		puch = puch[3:]
	}
	result[12] = base64Chars[puch[0]>>2]
	result[13] = base64Chars[(puch[0]&0x03)<<4]

	return string(result)
}

// Encode returns the position ID for a relative board.
func Encode(rel RelBoard) string {
	return MakeKey(rel).ID()
}

// Decode parses a position ID back into a relative board.
func Decode(id string) (RelBoard, error) {
	var rel RelBoard
	if len(id) != IDLength {
		return rel, ErrBadID
	}

	var vals [IDLength]uint8
	for i := 0; i < IDLength; i++ {
		v, ok := base64Decode(id[i])
		if !ok {
			return rel, ErrBadID
		}
		vals[i] = v
	}

	// Inverse of ID(): four characters pack three key bytes.
	var key Key
	for i := 0; i < 3; i++ {
		c := vals[i*4 : i*4+4]
		key[i*3] = c[0]<<2 | c[1]>>4
		key[i*3+1] = c[1]<<4 | c[2]>>2
		key[i*3+2] = c[2]<<6 | c[3]
	}
	key[9] = vals[12]<<2 | vals[13]>>4

	return FromKey(key)
}

func base64Decode(ch byte) (uint8, bool) {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return ch - 'A', true
	case ch >= 'a' && ch <= 'z':
		return ch - 'a' + 26, true
	case ch >= '0' && ch <= '9':
		return ch - '0' + 52, true
	case ch == '+':
		return 62, true
	case ch == '/':
		return 63, true
	}
	return 0, false
}
