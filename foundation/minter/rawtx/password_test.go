package rawtx_test

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/bipwallet/deeplink/foundation/minter/rawtx"
)

func TestDecodePassword(t *testing.T) {
	rlpHello, err := rlp.EncodeToBytes("hello")
	if err != nil {
		t.Fatal(err)
	}

	tt := []struct {
		p        string
		password string
		ok       bool
	}{
		{base64.RawURLEncoding.EncodeToString([]byte("pass word")), "pass word", true},
		{base64.URLEncoding.EncodeToString([]byte("pässwörd")), "pässwörd", true},
		{rawtx.EncodePassword("secret"), "secret", true},
		{base64.RawURLEncoding.EncodeToString(rlpHello), "hello", true},
		{hex.EncodeToString(rlpHello), "hello", true},
		{"", "", false},
		{"!!", "", false},
		{base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe}), "", false},
	}

	for i, tc := range tt {
		password, ok := rawtx.DecodePassword(tc.p)
		if ok != tc.ok {
			t.Errorf("[case:%d] %q: expected ok %v, got %v", i, tc.p, tc.ok, ok)
			continue
		}
		if password != tc.password {
			t.Errorf("[case:%d] %q: expected password %q, got %q", i, tc.p, tc.password, password)
		}
	}
}
