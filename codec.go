package dynamix

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshot is the wire envelope for a serialized object: the class name plus
// the visible attributes as an ordered pair list. Encoding attributes as a
// list rather than a map is what lets insertion order survive the round trip.
type snapshot struct {
	Class string         `msgpack:"class"`
	Attrs []snapshotPair `msgpack:"attrs"`
}

type snapshotPair struct {
	Name  string `msgpack:"n"`
	Value any    `msgpack:"v"`
}

// Marshal serializes an object's visible attributes to msgpack. Reserved
// attributes never leave the process. The object must be bound to a class;
// marshaling an unbound object fails with ErrUnbound.
//
// Integer attribute values decode as int64 on the way back in; use int64 (or
// assert loosely) when round-tripping numeric attributes.
func Marshal(o *Object) ([]byte, error) {
	if o == nil || o.class == nil {
		return nil, errors.Wrap(ErrUnbound, "marshal")
	}
	snap := snapshot{Class: o.class.name}
	for k, v := range o.visiblePairs() {
		snap.Attrs = append(snap.Attrs, snapshotPair{Name: k, Value: v})
	}
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "encode snapshot: %v", err)
	}
	return data, nil
}

// Unmarshal decodes a snapshot produced by Marshal into a fresh instance of
// this class. The envelope's class name must match; decoding a snapshot of a
// different class fails with ErrClassMismatch.
func (c *Class) Unmarshal(data []byte) (*Object, error) {
	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	if snap.Class != c.name {
		return nil, errors.Wrapf(ErrClassMismatch, "snapshot is %q, class is %q", snap.Class, c.name)
	}
	return c.fromSnapshot(snap), nil
}

// Decode resolves the snapshot's class by name and builds the object. This
// is the polymorphic path: callers need not know the class ahead of time,
// only that it is registered. An unregistered class name fails with
// ErrNotFound.
func (r *Registry) Decode(data []byte) (*Object, error) {
	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	c, err := r.Lookup(snap.Class)
	if err != nil {
		return nil, err
	}
	return c.fromSnapshot(snap), nil
}

// decodeSnapshot parses and validates the wire envelope. Loose interface
// decoding widens integers to int64 so numeric attrs come back with one
// predictable type.
func decodeSnapshot(data []byte) (*snapshot, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)

	var snap snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "decode snapshot: %v", err)
	}
	if snap.Class == "" {
		return nil, errors.Wrap(ErrInvalidFormat, "snapshot missing class name")
	}
	return &snap, nil
}

// fromSnapshot builds an instance from a decoded envelope. Reserved names in
// the envelope are dropped; Marshal never writes them, so their presence
// means the bytes were produced elsewhere.
func (c *Class) fromSnapshot(snap *snapshot) *Object {
	o := &Object{class: c}
	for _, p := range snap.Attrs {
		if Reserved(p.Name) {
			continue
		}
		o.attrs.Set(p.Name, p.Value)
	}
	return o
}
