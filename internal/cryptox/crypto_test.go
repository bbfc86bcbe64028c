package cryptox

import (
	"testing"

	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1 := DeriveMasterKey([]byte("pass"), salt)
	k2 := DeriveMasterKey([]byte("pass"), salt)
	require.Equal(t, k1, k2)
	require.Len(t, k1, 32)

	k3 := DeriveMasterKey([]byte("other"), salt)
	require.NotEqual(t, k1, k3)
}

func TestEncryptDecryptEntry_RoundTrip(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	key := testKey(1)
	ct, nonce, err := EncryptEntry(payload{Name: "example"}, key)
	require.NoError(t, err)
	require.Len(t, nonce, NonceSize)

	var got payload
	require.NoError(t, DecryptEntry(ct, nonce, key, &got))
	require.Equal(t, "example", got.Name)
}

func TestDecryptEntry_WrongKey(t *testing.T) {
	ct, nonce, err := EncryptEntry(map[string]string{"a": "b"}, testKey(1))
	require.NoError(t, err)

	var got map[string]string
	err = DecryptEntry(ct, nonce, testKey(2), &got)
	require.ErrorIs(t, err, common.ErrDecryption)
}

func TestSealOpenBlob_RoundTrip(t *testing.T) {
	key := testKey(3)
	blob, err := SealBlob([]byte("attachment body"), key)
	require.NoError(t, err)

	pt, err := OpenBlob(blob, key)
	require.NoError(t, err)
	require.Equal(t, []byte("attachment body"), pt)
}

func TestOpenBlob_Tampered(t *testing.T) {
	key := testKey(4)
	blob, err := SealBlob([]byte("x"), key)
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xff
	_, err = OpenBlob(blob, key)
	require.ErrorIs(t, err, common.ErrDecryption)
}

func TestOpenBlob_TooShort(t *testing.T) {
	_, err := OpenBlob([]byte("short"), testKey(5))
	require.ErrorIs(t, err, common.ErrDecryption)
}
