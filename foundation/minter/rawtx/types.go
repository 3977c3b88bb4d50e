package rawtx

import "fmt"

// Type identifies the kind of a Minter transaction.
type Type byte

// All transaction types known to the wallet. The values are the on-chain tags.
const (
	TypeSend                Type = 0x01
	TypeSell                Type = 0x02
	TypeSellAll             Type = 0x03
	TypeBuy                 Type = 0x04
	TypeCreateCoin          Type = 0x05
	TypeDeclareCandidacy    Type = 0x06
	TypeDelegate            Type = 0x07
	TypeUnbond              Type = 0x08
	TypeRedeemCheck         Type = 0x09
	TypeSetCandidateOnline  Type = 0x0A
	TypeSetCandidateOffline Type = 0x0B
	TypeCreateMultisig      Type = 0x0C
	TypeMultisend           Type = 0x0D
	TypeEditCandidate       Type = 0x0E
)

var typeNames = map[Type]string{
	TypeSend:                "send",
	TypeSell:                "sell",
	TypeSellAll:             "sellAll",
	TypeBuy:                 "buy",
	TypeCreateCoin:          "createCoin",
	TypeDeclareCandidacy:    "declareCandidacy",
	TypeDelegate:            "delegate",
	TypeUnbond:              "unbond",
	TypeRedeemCheck:         "redeemCheck",
	TypeSetCandidateOnline:  "setCandidateOnline",
	TypeSetCandidateOffline: "setCandidateOffline",
	TypeCreateMultisig:      "createMultisig",
	TypeMultisend:           "multisend",
	TypeEditCandidate:       "editCandidate",
}

// ParseType maps an encoded tag onto the closed set of types.
func ParseType(tag uint64) (Type, error) {
	if tag > 0xff {
		return 0, fmt.Errorf("tag %d: %w", tag, ErrUnknownType)
	}

	t := Type(tag)
	if _, exists := typeNames[t]; !exists {
		return 0, fmt.Errorf("tag %d: %w", tag, ErrUnknownType)
	}

	return t, nil
}

// ParseTypeName maps a type name such as "delegate" onto its type.
func ParseTypeName(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("name %q: %w", name, ErrUnknownType)
}

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	if n, exists := typeNames[t]; exists {
		return n
	}

	return fmt.Sprintf("unknown(0x%02x)", byte(t))
}
