package rawtx

import (
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
)

// DecodePassword extracts the password a link author attached to a check
// redeem. Links in the wild carry it either as base64url of the UTF-8 text
// or as an RLP string, so both forms are accepted.
func DecodePassword(p string) (string, bool) {
	if p == "" {
		return "", false
	}

	if raw, err := DecodeBase64URL(p); err == nil {
		if utf8.Valid(raw) {
			return nonEmpty(string(raw))
		}
		if s, ok := rlpString(raw); ok {
			return nonEmpty(s)
		}
	}

	if raw, err := hexutil.Decode(with0x(p)); err == nil {
		if s, ok := rlpString(raw); ok {
			return nonEmpty(s)
		}
	}

	return "", false
}

// EncodePassword produces the base64url form of a password.
func EncodePassword(password string) string {
	return base64URL([]byte(password))
}

func rlpString(raw []byte) (string, bool) {
	var b []byte
	if err := rlp.DecodeBytes(raw, &b); err != nil {
		return "", false
	}

	if !utf8.Valid(b) {
		return "", false
	}

	return string(b), true
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}
