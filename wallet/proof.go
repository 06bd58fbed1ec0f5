package wallet

import "strconv"

// Proof is an attestation proof: an opaque payload tagged with the time it
// was created. Stored proofs are keyed by the decimal form of Timestamp.
type Proof struct {
	Timestamp uint64 `json:"timestamp"`
	Payload   []byte `json:"payload"`
}

// NewProof builds a proof, copying payload.
func NewProof(timestamp uint64, payload []byte) Proof {
	return Proof{Timestamp: timestamp, Payload: append([]byte(nil), payload...)}
}

// Key is the mapping key AddProof stores p under.
func (p Proof) Key() string {
	return strconv.FormatUint(p.Timestamp, 10)
}

// WellFormed reports whether the timestamp is set.
func (p Proof) WellFormed() bool {
	return p.Timestamp > 0
}

func (p Proof) clone() Proof {
	if p.Payload != nil {
		p.Payload = append([]byte(nil), p.Payload...)
	}
	return p
}
