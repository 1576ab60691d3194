// Package osi contains the sensor-view message set exchanged between the
// driving simulation and sensor models, together with its binary codec.
//
// The messages are hand-written protobuf shapes: every field carries a
// fixed wire tag and the tags are the compatibility contract. Physical
// quantities are doubles; the unit is stated on each field and is a
// documentation contract only, nothing validates it at runtime.
package osi

// Version returns the version of the message set implemented by this
// package.
func Version() *InterfaceVersion {
	return &InterfaceVersion{VersionMajor: 3, VersionMinor: 5, VersionPatch: 0}
}

// Message is implemented by every type of the message set.
type Message interface {
	appendTo(b []byte) []byte
	decode(b []byte) error
}

// Marshal encodes msg to its protobuf wire form.
func Marshal(msg Message) ([]byte, error) {
	return msg.appendTo(nil), nil
}

// Unmarshal decodes protobuf wire data into msg. Fields absent from the
// payload keep their zero value, unknown fields are skipped.
func Unmarshal(data []byte, msg Message) error {
	return msg.decode(data)
}
