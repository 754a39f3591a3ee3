package variable

import "github.com/fxamacker/cbor/v2"

// Codec turns the data of a sim object into host payload bytes and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func (c cborCodec) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c cborCodec) Unmarshal(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}

// CBOR is the default codec. Encoding is deterministic so equal data gives
// equal payloads. Struct fields are keyed by their cbor tags, which hold the
// full host field names.
var CBOR Codec = newCBORCodec()

func newCBORCodec() cborCodec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}

	return cborCodec{enc: enc, dec: dec}
}
