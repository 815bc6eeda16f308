package bytecode

import (
	"bytes"
	"encoding/gob"
)

func init() {
	// Chunk.Constants is []interface{}; gob needs every concrete type that
	// can appear behind that interface registered up front. Per spec §6
	// only Number, String, and Bool ever need a constant-pool slot (Nil and
	// Undefined have their own dedicated opcodes).
	gob.Register(float64(0))
	gob.Register("")
	gob.Register(false)
}

// Encode serializes a Chunk using encoding/gob. A third-party codec was
// deliberately not reached for here: gob already round-trips Go structs
// (including the []interface{} constant pool) without per-field schema
// work, and nothing downstream of this format needs cross-language
// interchange — the only declared consumer is this module's own CLI. See
// DESIGN.md for why gob was chosen over a third-party codec.
func (c *Chunk) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode deserializes a Chunk produced by Encode.
func Decode(data []byte) (*Chunk, error) {
	var c Chunk
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
