// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bipwallet/deeplink/business/confirm"
	"github.com/bipwallet/deeplink/business/deeplink"
	v1 "github.com/bipwallet/deeplink/business/web/v1"
	"github.com/bipwallet/deeplink/foundation/events"
	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/minter/rawtx"
	"github.com/bipwallet/deeplink/foundation/nameservice"
	"github.com/bipwallet/deeplink/foundation/validate"
	"github.com/bipwallet/deeplink/foundation/web"
)

// Handlers manages the set of deep link endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	Router  *deeplink.Router
	Builder confirm.Builder
	Store   *coin.Store
	NS      *nameservice.NameService
	Evts    *events.Events
	WS      websocket.Upgrader
}

// DecodeLink resolves a complete wallet link into its confirmation model.
func (h Handlers) DecodeLink(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req decodeRequest
	if err := decode(r, &req); err != nil {
		return err
	}

	trx, err := h.Router.Resolve(req.URL)

	return h.respond(ctx, w, trx, err)
}

// EncodeLink builds the links that carry the described transaction.
func (h Handlers) EncodeLink(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req encodeRequest
	if err := decode(r, &req); err != nil {
		return err
	}

	txType, err := rawtx.ParseTypeName(req.Type)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	data := req.Data
	if !strings.HasPrefix(data, "0x") && !strings.HasPrefix(data, "0X") {
		data = "0x" + data
	}

	raw, err := hexutil.Decode(data)
	if err != nil {
		return v1.NewRequestError(fmt.Errorf("data: %w", err), http.StatusBadRequest)
	}

	tx := rawtx.Tx{
		Type:     txType,
		Data:     raw,
		Payload:  req.Payload,
		Nonce:    &req.Nonce,
		GasPrice: &req.GasPrice,
	}

	if req.GasCoin != "" {
		c, exists := h.Store.CoinBySymbol(req.GasCoin)
		if !exists {
			return v1.NewRequestError(fmt.Errorf("gas coin %q is unknown", req.GasCoin), http.StatusBadRequest)
		}
		tx.GasCoinID = &c.ID
	}

	d, err := rawtx.EncodeText(tx)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	link := deeplink.Link{Data: d}
	if req.Password != "" {
		link.Password = rawtx.EncodePassword(req.Password)
	}

	resp := encodeResponse{
		Data:    d,
		Link:    h.Router.WebLink(link),
		AppLink: h.Router.AppLink(link),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Tx decodes the transaction carried in the path, with the optional
// password in the p query parameter.
func (h Handlers) Tx(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	link := deeplink.Link{
		Data:     web.Param(r, deeplink.ParamData),
		Password: r.URL.Query().Get(deeplink.ParamPassword),
	}

	trx, err := h.Router.Decode(link)

	return h.respond(ctx, w, trx, err)
}

// Open sends a browser that followed a web link on to the wallet app.
func (h Handlers) Open(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	link := deeplink.Link{
		Data:     web.Param(r, deeplink.ParamData),
		Password: r.URL.Query().Get(deeplink.ParamPassword),
	}

	if _, err := h.Router.Decode(link); err != nil {
		h.Log.Infow("open", "traceid", web.GetTraceID(ctx), "status", "link not handled", "reason", deeplink.Reason(err))
		return v1.NewRequestError(deeplink.ErrUnhandled, http.StatusNotFound)
	}

	if err := web.SetStatusCode(ctx, http.StatusFound); err != nil {
		return err
	}
	http.Redirect(w, r, h.Router.AppLink(link), http.StatusFound)

	return nil
}

// Coins returns the coin table used to resolve coin ids.
func (h Handlers) Coins(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Store.Copy(), http.StatusOK)
}

// Names returns the address book used to label addresses.
func (h Handlers) Names(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.NS.Copy(), http.StatusOK)
}

// AddName registers a contact name for an address.
func (h Handlers) AddName(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req nameRequest
	if err := decode(r, &req); err != nil {
		return err
	}

	if err := h.NS.Add(req.Address, req.Name); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("add name", "traceid", web.GetTraceID(ctx), "address", req.Address, "name", req.Name)

	return web.Respond(ctx, w, req, http.StatusCreated)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving events from the service.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting for events from the service or ticker.
	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

// decode reads the request body. Validation failures pass through as they
// are, anything else is a bad request.
func decode(r *http.Request, val any) error {
	if err := web.Decode(r, val); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	return nil
}

// respond builds the confirmation model or reports the link as not handled.
// The reason of a failure is logged but never shown to the caller.
func (h Handlers) respond(ctx context.Context, w http.ResponseWriter, trx deeplink.Transaction, err error) error {
	traceID := web.GetTraceID(ctx)

	if err != nil {
		reason := deeplink.Reason(err)
		h.Log.Infow("decode", "traceid", traceID, "status", "link not handled", "reason", reason, "ERROR", err)
		h.publish(event{TraceID: traceID, Result: reason})
		return v1.NewRequestError(deeplink.ErrUnhandled, http.StatusNotFound)
	}

	m, err := h.Builder.Build(trx)
	if err != nil {
		reason := deeplink.Reason(err)
		h.Log.Infow("decode", "traceid", traceID, "status", "link not handled", "id", trx.ID, "reason", reason, "ERROR", err)
		h.publish(event{TraceID: traceID, ID: trx.ID, Result: reason})
		return v1.NewRequestError(deeplink.ErrUnhandled, http.StatusNotFound)
	}

	h.Log.Infow("decode", "traceid", traceID, "id", m.ID, "type", m.Type, "gascoin", m.GasCoin, "password", m.HasPassword)
	h.publish(event{TraceID: traceID, ID: m.ID, Type: m.Type, Result: deeplink.Reason(nil)})

	return web.Respond(ctx, w, m, http.StatusOK)
}

func (h Handlers) publish(ev event) {
	if h.Evts == nil {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		h.Log.Errorw("publish", "traceid", ev.TraceID, "ERROR", fmt.Errorf("marshal event: %w", err))
		return
	}

	h.Evts.Send(string(data))
}
