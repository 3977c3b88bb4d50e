package public

import "github.com/bipwallet/deeplink/foundation/validate"

// decodeRequest is the body of a link decode call.
type decodeRequest struct {
	URL string `json:"url" validate:"required"`
}

// Validate checks the request against its declared tags.
func (req decodeRequest) Validate() error {
	return validate.Check(req)
}

// event is published to the websocket subscribers for every decode attempt.
type event struct {
	TraceID string `json:"traceid"`
	ID      string `json:"id,omitempty"`
	Type    string `json:"type,omitempty"`
	Result  string `json:"result"`
}

// encodeRequest describes a transaction to be turned into a link.
type encodeRequest struct {
	Type     string `json:"type" validate:"required"`
	Data     string `json:"data" validate:"required,hexadecimal"`
	Payload  string `json:"payload"`
	Nonce    uint64 `json:"nonce"`
	GasPrice uint64 `json:"gas_price"`
	GasCoin  string `json:"gas_coin" validate:"omitempty,coin"`
	Password string `json:"password"`
}

// Validate checks the request against its declared tags.
func (req encodeRequest) Validate() error {
	return validate.Check(req)
}

// encodeResponse carries the transaction in both link forms.
type encodeResponse struct {
	Data    string `json:"d"`
	Link    string `json:"link"`
	AppLink string `json:"app_link"`
}

// nameRequest registers a contact name for an address.
type nameRequest struct {
	Address string `json:"address" validate:"required,mxaddress"`
	Name    string `json:"name" validate:"required,max=64"`
}

// Validate checks the request against its declared tags.
func (req nameRequest) Validate() error {
	return validate.Check(req)
}
