package cidutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/zerowallet/wallet"
)

// ErrEmptyContentHash is returned when unpacking an all-zero content hash.
var ErrEmptyContentHash = errors.New("empty content hash")

// CIDv1RawSHA256 returns a CIDv1 string using the "raw" multicodec
// and a sha2-256 multihash.
func CIDv1RawSHA256(data []byte) string {
	c, err := CIDv1RawSHA256CID(data)
	if err != nil {
		return ""
	}
	return c.String()
}

// CIDv1RawSHA256CID returns a CIDv1 (raw + sha2-256) derived from data.
func CIDv1RawSHA256CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// PackContentHash writes the string form of c into a zero-padded
// content-hash buffer.
func PackContentHash(c cid.Cid) ([wallet.ContentHashSize]byte, error) {
	var out [wallet.ContentHashSize]byte
	if !c.Defined() {
		return out, errors.New("undefined cid")
	}
	s := c.String()
	if len(s) > len(out) {
		return out, fmt.Errorf("cid %q exceeds %d bytes", s, len(out))
	}
	copy(out[:], s)
	return out, nil
}

// UnpackContentHash parses the CID held in a content-hash buffer.
func UnpackContentHash(h [wallet.ContentHashSize]byte) (cid.Cid, error) {
	s := bytes.TrimRight(h[:], "\x00")
	if len(s) == 0 {
		return cid.Undef, ErrEmptyContentHash
	}
	return cid.Decode(string(s))
}

// VerifyContent reports whether data hashes to the multihash carried by c.
func VerifyContent(c cid.Cid, data []byte) error {
	dmh, err := multihash.Decode(c.Hash())
	if err != nil {
		return err
	}
	sum, err := multihash.Sum(data, dmh.Code, dmh.Length)
	if err != nil {
		return err
	}
	if !bytes.Equal(sum, c.Hash()) {
		return fmt.Errorf("content does not match %s", c)
	}
	return nil
}
