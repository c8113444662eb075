package stego

import (
	"encoding/binary"
	"errors"

	"github.com/klauspost/reedsolomon"
)

// Reed-Solomon armor is an optional wrapper around the ciphertext bytes.
// It trades capacity for resilience against a few flipped LSBs, for
// example from sloppy image tooling that touches pixel values.
const (
	armorDataShards   = 4
	armorParityShards = 2
)

func armorProtect(data []byte) ([]byte, error) {
	enc, err := reedsolomon.New(armorDataShards, armorParityShards)
	if err != nil {
		return nil, err
	}

	// Length prefix so the shard padding can be stripped on recovery.
	payload := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(payload[:4], uint32(len(data)))
	copy(payload[4:], data)

	shards, err := enc.Split(payload)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(shards); err != nil {
		return nil, err
	}

	var out []byte
	for _, shard := range shards {
		out = append(out, shard...)
	}
	return out, nil
}

func armorRecover(data []byte) ([]byte, error) {
	enc, err := reedsolomon.New(armorDataShards, armorParityShards)
	if err != nil {
		return nil, err
	}

	shards, err := enc.Split(data)
	if err != nil {
		return nil, err
	}
	if ok, _ := enc.Verify(shards); !ok {
		if err := enc.Reconstruct(shards); err != nil {
			return nil, err
		}
	}

	var joined []byte
	for i := 0; i < armorDataShards; i++ {
		joined = append(joined, shards[i]...)
	}

	if len(joined) < 4 {
		return nil, errors.New("recovered data too short")
	}
	length := binary.BigEndian.Uint32(joined[:4])
	if uint32(len(joined)) < 4+length {
		return nil, errors.New("recovered data length mismatch")
	}
	return joined[4 : 4+length], nil
}
