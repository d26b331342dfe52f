package envelope

import (
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	gcmpb "github.com/tink-crypto/tink-go/v2/proto/aes_gcm_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"
	"google.golang.org/protobuf/proto"
)

const (
	// NonceLen is the AES-GCM nonce size Tink prepends to each ciphertext.
	NonceLen = 12
	// AuthTagLen is the AES-GCM authentication tag size.
	AuthTagLen = 16

	aesGCMTypeURL = "type.googleapis.com/google.crypto.tink.AesGcmKey"
)

// newPrimitive wraps a raw AES-256 key in a single-key Tink keyset. The key
// uses the RAW output prefix, so Tink ciphertexts are exactly
// nonce || ciphertext || tag with no key id header.
func newPrimitive(key []byte) (tink.AEAD, error) {
	keyValue, err := proto.Marshal(&gcmpb.AesGcmKey{Version: 0, KeyValue: key})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key: %w", err)
	}
	defer memguard.WipeBytes(keyValue)

	ks := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{{
			KeyData: &tinkpb.KeyData{
				TypeUrl:         aesGCMTypeURL,
				Value:           keyValue,
				KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
			},
			Status:           tinkpb.KeyStatusType_ENABLED,
			KeyId:            1,
			OutputPrefixType: tinkpb.OutputPrefixType_RAW,
		}},
	}

	handle, err := insecurecleartextkeyset.Read(&keyset.MemReaderWriter{Keyset: ks})
	if err != nil {
		return nil, fmt.Errorf("failed to create keyset: %w", err)
	}

	primitive, err := aead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("failed to create AEAD: %w", err)
	}
	return primitive, nil
}
