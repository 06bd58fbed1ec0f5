package attest

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"xdao.co/zerowallet/keys"
	"xdao.co/zerowallet/wallet"
)

// EnvelopeVersion is the only envelope version Open accepts.
const EnvelopeVersion = 1

// Signature algorithms.
const (
	AlgEd25519    = "ed25519"
	AlgDilithium3 = "dilithium3"
)

const domainTag = "zerowallet-proof-v1"

// Envelope is the sealed form carried in a wallet.Proof payload: a statement
// signed by the issuer key embedded alongside it.
type Envelope struct {
	Version   int    `json:"v"`
	Alg       string `json:"alg"`
	HashAlg   string `json:"hash_alg"`
	PublicKey []byte `json:"public_key"`
	Statement []byte `json:"statement"`
	Signature []byte `json:"signature"`
}

// SignedBytes is the message the envelope signature covers. Algorithm names
// are bound in so an envelope cannot be reinterpreted under another scheme.
func (e *Envelope) SignedBytes() []byte {
	var b bytes.Buffer
	b.WriteString(domainTag)
	b.WriteByte(0)
	b.WriteString(e.Alg)
	b.WriteByte(0)
	b.WriteString(e.HashAlg)
	b.WriteByte(0)
	b.Write(e.Statement)
	return b.Bytes()
}

// SealEd25519 signs statement with priv over hashAlg(SignedBytes) and
// returns the encoded envelope.
func SealEd25519(statement []byte, hashAlg string, priv ed25519.PrivateKey) ([]byte, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, newError(KindCrypto, "ZW-ATT-501", "invalid ed25519 private key")
	}
	env := &Envelope{
		Version:   EnvelopeVersion,
		Alg:       AlgEd25519,
		HashAlg:   hashAlg,
		PublicKey: bytes.Clone(priv.Public().(ed25519.PublicKey)),
		Statement: bytes.Clone(statement),
	}
	digest, err := keys.Digest(hashAlg, env.SignedBytes())
	if err != nil {
		return nil, wrapError(KindCrypto, "ZW-ATT-201", "unsupported hash algorithm", err)
	}
	env.Signature = ed25519.Sign(priv, digest)
	return encode(env)
}

// SealDilithium3 is SealEd25519 for a post-quantum Dilithium3 keypair.
func SealDilithium3(statement []byte, hashAlg string, pk *mode3.PublicKey, sk *mode3.PrivateKey) ([]byte, error) {
	if pk == nil || sk == nil {
		return nil, newError(KindCrypto, "ZW-ATT-501", "missing dilithium3 key")
	}
	pub, err := pk.MarshalBinary()
	if err != nil {
		return nil, wrapError(KindCrypto, "ZW-ATT-115", "invalid dilithium3 public key", err)
	}
	env := &Envelope{
		Version:   EnvelopeVersion,
		Alg:       AlgDilithium3,
		HashAlg:   hashAlg,
		PublicKey: pub,
		Statement: bytes.Clone(statement),
	}
	sig, err := keys.SignDilithium3(env.SignedBytes(), hashAlg, sk)
	if err != nil {
		return nil, wrapError(KindCrypto, "ZW-ATT-201", "unsupported hash algorithm", err)
	}
	env.Signature = sig
	return encode(env)
}

// NewProofEd25519 seals statement and wraps it in a proof stamped timestamp.
func NewProofEd25519(timestamp uint64, statement []byte, hashAlg string, priv ed25519.PrivateKey) (wallet.Proof, error) {
	payload, err := SealEd25519(statement, hashAlg, priv)
	if err != nil {
		return wallet.Proof{}, err
	}
	return wallet.Proof{Timestamp: timestamp, Payload: payload}, nil
}

// Open decodes payload and checks its shape. It does not verify the signature.
func Open(payload []byte) (*Envelope, error) {
	if len(payload) == 0 {
		return nil, newError(KindEncoding, "ZW-ATT-001", "empty proof payload")
	}
	var env Envelope
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return nil, wrapError(KindEncoding, "ZW-ATT-002", "invalid envelope encoding", err)
	}
	if env.Version != EnvelopeVersion {
		return nil, newError(KindEncoding, "ZW-ATT-003", "unsupported envelope version")
	}
	switch env.Alg {
	case "":
		return nil, newError(KindCrypto, "ZW-ATT-101", "missing signature algorithm")
	case AlgEd25519:
		if len(env.PublicKey) != ed25519.PublicKeySize {
			return nil, newError(KindCrypto, "ZW-ATT-114", "invalid ed25519 public key length")
		}
		if len(env.Signature) != ed25519.SignatureSize {
			return nil, newError(KindCrypto, "ZW-ATT-132", "invalid ed25519 signature length")
		}
	case AlgDilithium3:
		if len(env.PublicKey) != mode3.PublicKeySize {
			return nil, newError(KindCrypto, "ZW-ATT-115", "invalid dilithium3 public key length")
		}
		if len(env.Signature) != mode3.SignatureSize {
			return nil, newError(KindCrypto, "ZW-ATT-133", "invalid dilithium3 signature length")
		}
	default:
		return nil, newError(KindCrypto, "ZW-ATT-301", "unsupported signature algorithm")
	}
	if env.HashAlg == "" {
		return nil, newError(KindCrypto, "ZW-ATT-102", "missing hash algorithm")
	}
	return &env, nil
}

// Verify opens payload and checks the envelope signature.
func Verify(payload []byte) (*Envelope, error) {
	env, err := Open(payload)
	if err != nil {
		return nil, err
	}
	digest, err := keys.Digest(env.HashAlg, env.SignedBytes())
	if err != nil {
		return nil, wrapError(KindCrypto, "ZW-ATT-201", "unsupported hash algorithm", err)
	}
	switch env.Alg {
	case AlgEd25519:
		if !ed25519.Verify(ed25519.PublicKey(env.PublicKey), digest, env.Signature) {
			return nil, newError(KindCrypto, "ZW-ATT-401", "signature invalid")
		}
	case AlgDilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(env.PublicKey); err != nil {
			return nil, wrapError(KindCrypto, "ZW-ATT-115", "invalid dilithium3 public key", err)
		}
		if !mode3.Verify(&pk, digest, env.Signature) {
			return nil, newError(KindCrypto, "ZW-ATT-401", "signature invalid")
		}
	}
	return env, nil
}

func encode(env *Envelope) ([]byte, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return nil, wrapError(KindEncoding, "ZW-ATT-002", "envelope encoding failed", err)
	}
	return b, nil
}
