// Package deeplink matches incoming wallet links and turns the transaction
// they carry into a decoded transaction ready for confirmation.
package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bipwallet/deeplink/foundation/minter/rawtx"
)

// Set of errors for links that can't be routed.
var (
	ErrUnhandled   = errors.New("link not handled")
	ErrMissingData = errors.New("link has no transaction data")
)

// Query parameters a link can carry.
const (
	ParamData     = "d"
	ParamPassword = "p"
)

// Config represents the settings the router needs.
type Config struct {
	Scheme    string
	Hosts     []string
	BaseCoin  string
	Coins     rawtx.CoinLookup
	CacheSize int
	CacheTTL  time.Duration
}

// Link is a matched link before its transaction is decoded.
type Link struct {
	Data     string
	Password string
}

// Transaction is the result of resolving a link.
type Transaction struct {
	ID          string   `json:"id"`
	Tx          rawtx.Tx `json:"tx"`
	Password    string   `json:"-"`
	HasPassword bool     `json:"has_password"`
}

// Router resolves links into transactions.
type Router struct {
	scheme   string
	webHost  string
	hosts    map[string]struct{}
	baseCoin string
	coins    rawtx.CoinLookup
	cache    gcache.Cache
}

// New constructs a router for the configured scheme and hosts.
func New(cfg Config) *Router {
	var webHost string
	hosts := make(map[string]struct{}, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		h = strings.ToLower(h)
		if webHost == "" {
			webHost = h
		}
		hosts[h] = struct{}{}
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = 500
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Router{
		scheme:   strings.ToLower(cfg.Scheme),
		webHost:  webHost,
		hosts:    hosts,
		baseCoin: cfg.BaseCoin,
		coins:    cfg.Coins,
		cache:    gcache.New(size).LRU().Expiration(ttl).Build(),
	}
}

// Match checks the link belongs to the wallet and extracts its parameters.
// Links take the forms:
//
//	<scheme>://<host>/tx/<d>?p=<password>
//	https://<host>/tx/<d>?p=<password>
//
// with d also accepted as a query parameter.
func (r *Router) Match(rawURL string) (Link, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Link{}, fmt.Errorf("parsing url: %v: %w", err, ErrUnhandled)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())

	segments := splitPath(u.Path)

	switch {
	case scheme != "" && scheme == r.scheme:
		// Custom scheme links may carry the route in the host position.
		if host == "tx" {
			segments = append([]string{"tx"}, segments...)
		}

	case scheme == "https":
		if _, exists := r.hosts[host]; !exists {
			return Link{}, fmt.Errorf("host %q: %w", host, ErrUnhandled)
		}

	default:
		return Link{}, fmt.Errorf("scheme %q: %w", scheme, ErrUnhandled)
	}

	if len(segments) == 0 || segments[0] != "tx" || len(segments) > 2 {
		return Link{}, fmt.Errorf("path %q: %w", u.Path, ErrUnhandled)
	}

	query := u.Query()

	link := Link{
		Data:     query.Get(ParamData),
		Password: query.Get(ParamPassword),
	}
	if len(segments) == 2 {
		link.Data = segments[1]
	}

	if link.Data == "" {
		return Link{}, ErrMissingData
	}

	return link, nil
}

// AppLink renders the link in the custom scheme form the wallet app opens.
func (r *Router) AppLink(link Link) string {
	return r.scheme + "://" + linkPath(link)
}

// WebLink renders the link in the https form on the first configured host.
func (r *Router) WebLink(link Link) string {
	return "https://" + r.webHost + "/" + linkPath(link)
}

// Resolve matches the link and decodes the transaction it carries.
func (r *Router) Resolve(rawURL string) (Transaction, error) {
	key := crypto.Keccak256Hash([]byte(rawURL)).Hex()

	if v, err := r.cache.Get(key); err == nil {
		resolveTotal.WithLabelValues(resultCached).Inc()
		return v.(Transaction).clone(), nil
	}

	trx, err := r.resolve(rawURL)
	resolveTotal.WithLabelValues(Reason(err)).Inc()
	if err != nil {
		return Transaction{}, err
	}

	r.cache.Set(key, trx.clone())

	return trx, nil
}

// Purge drops every cached resolution, used when the coin table changes.
func (r *Router) Purge() {
	r.cache.Purge()
}

func (r *Router) resolve(rawURL string) (Transaction, error) {
	link, err := r.Match(rawURL)
	if err != nil {
		return Transaction{}, err
	}

	return r.Decode(link)
}

// Decode turns the parameters of an already matched link into a
// transaction. Results are not cached.
func (r *Router) Decode(link Link) (Transaction, error) {
	if link.Data == "" {
		return Transaction{}, ErrMissingData
	}

	tx, err := rawtx.DecodeText(link.Data, r.coins, r.baseCoin)
	if err != nil {
		return Transaction{}, err
	}

	trx := Transaction{
		ID: crypto.Keccak256Hash([]byte(link.Data)).Hex(),
		Tx: tx,
	}

	if link.Password != "" {
		trx.Password, trx.HasPassword = rawtx.DecodePassword(link.Password)
	}

	return trx, nil
}

// clone returns a copy that shares no memory with trx, so cached entries
// can't be changed through a returned value.
func (trx Transaction) clone() Transaction {
	cpy := trx
	cpy.Tx.Data = append([]byte(nil), trx.Tx.Data...)
	cpy.Tx.Nonce = cloneUint(trx.Tx.Nonce)
	cpy.Tx.GasPrice = cloneUint(trx.Tx.GasPrice)
	cpy.Tx.GasCoinID = cloneUint(trx.Tx.GasCoinID)

	return cpy
}

func cloneUint(v *uint64) *uint64 {
	if v == nil {
		return nil
	}

	cpy := *v
	return &cpy
}

func linkPath(link Link) string {
	s := "tx/" + url.PathEscape(link.Data)
	if link.Password != "" {
		s += "?" + url.Values{ParamPassword: {link.Password}}.Encode()
	}

	return s
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}

	return strings.Split(p, "/")
}
