package kdf

import "fmt"

// Version identifies a key derivation algorithm and the envelope tag that
// marks data produced with it. Versions are ordered; new ones are appended
// and none is ever removed.
type Version uint8

const (
	V1 Version = iota + 1 // SHA-256, decrypt only
	V2                    // Argon2id
)

// Latest is the only version new encryption may produce.
const Latest = V2

// TagLen is the length of every version tag.
const TagLen = 8

var tags = map[Version]string{
	V1: "AGCRYPT1",
	V2: "AGCRYPT2",
}

// Versions returns every version that can still be decrypted, newest first.
func Versions() []Version {
	return []Version{V2, V1}
}

// Tag returns the 8-byte magic for v, or nil if v is unknown.
func (v Version) Tag() []byte {
	tag, ok := tags[v]
	if !ok {
		return nil
	}
	return []byte(tag)
}

// Valid reports whether v is a known version.
func (v Version) Valid() bool {
	_, ok := tags[v]
	return ok
}

func (v Version) String() string {
	if !v.Valid() {
		return fmt.Sprintf("unknown(%d)", uint8(v))
	}
	return fmt.Sprintf("v%d", uint8(v))
}
