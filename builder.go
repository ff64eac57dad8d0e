package houdiniswap

import "context"

type exchangeKind int

const (
	kindUnset exchangeKind = iota
	kindCEX
	kindDEX
)

// ExchangeBuilder assembles an exchange request step by step. Setters return
// the builder for chaining; the first setter error is remembered and
// surfaced by Execute, so call sites only check the final error. The zero
// builder is not usable, start from Client.ExchangeBuilder.
type ExchangeBuilder struct {
	client *Client
	kind   exchangeKind
	err    error

	amount      any
	fromToken   string
	toToken     string
	addressTo   string
	addressFrom string
	anonymous   bool
	receiverTag string
	walletID    string
	ip          string
	userAgent   string
	timezone    string
	useXmr      *bool

	swap    string
	quoteID string
	route   RouteDTO
}

// ExchangeBuilder returns a builder for constructing an exchange request
// against this client.
func (c *Client) ExchangeBuilder() *ExchangeBuilder {
	return &ExchangeBuilder{client: c}
}

// CEX selects a centralized exchange, addressed by token symbols.
func (b *ExchangeBuilder) CEX() *ExchangeBuilder {
	b.kind = kindCEX
	return b
}

// DEX selects a decentralized exchange, addressed by opaque token ids.
func (b *ExchangeBuilder) DEX() *ExchangeBuilder {
	b.kind = kindDEX
	return b
}

// Amount sets the exchange amount. It accepts an int, float64,
// decimal.Decimal or numeric string.
func (b *ExchangeBuilder) Amount(amount any) *ExchangeBuilder {
	if b.err == nil {
		b.err = validateAmount(amount, "amount")
	}
	b.amount = amount
	return b
}

// FromToken sets the source token: symbol for CEX, token id for DEX.
func (b *ExchangeBuilder) FromToken(token string) *ExchangeBuilder {
	b.fromToken = token
	return b
}

// ToToken sets the destination token: symbol for CEX, token id for DEX.
func (b *ExchangeBuilder) ToToken(token string) *ExchangeBuilder {
	b.toToken = token
	return b
}

// AddressTo sets the destination address.
func (b *ExchangeBuilder) AddressTo(address string) *ExchangeBuilder {
	b.addressTo = address
	return b
}

// AddressFrom sets the source address. DEX only.
func (b *ExchangeBuilder) AddressFrom(address string) *ExchangeBuilder {
	b.addressFrom = address
	return b
}

// Anonymous sets the anonymity flag.
func (b *ExchangeBuilder) Anonymous(anonymous bool) *ExchangeBuilder {
	b.anonymous = anonymous
	return b
}

// ReceiverTag sets the optional receiver tag or memo.
func (b *ExchangeBuilder) ReceiverTag(tag string) *ExchangeBuilder {
	b.receiverTag = tag
	return b
}

// WalletID sets the optional wallet id.
func (b *ExchangeBuilder) WalletID(walletID string) *ExchangeBuilder {
	b.walletID = walletID
	return b
}

// IP sets the optional originating IP address.
func (b *ExchangeBuilder) IP(ip string) *ExchangeBuilder {
	b.ip = ip
	return b
}

// UserAgent sets the optional originating user agent.
func (b *ExchangeBuilder) UserAgent(userAgent string) *ExchangeBuilder {
	b.userAgent = userAgent
	return b
}

// Timezone sets the optional originating timezone.
func (b *ExchangeBuilder) Timezone(timezone string) *ExchangeBuilder {
	b.timezone = timezone
	return b
}

// UseXmr sets the optional XMR routing flag.
func (b *ExchangeBuilder) UseXmr(useXmr bool) *ExchangeBuilder {
	b.useXmr = &useXmr
	return b
}

// Swap sets the swap identifier from a DEX quote. DEX only.
func (b *ExchangeBuilder) Swap(swap string) *ExchangeBuilder {
	b.swap = swap
	return b
}

// QuoteID sets the quote id from a DEX quote. DEX only.
func (b *ExchangeBuilder) QuoteID(quoteID string) *ExchangeBuilder {
	b.quoteID = quoteID
	return b
}

// Route sets the opaque route from a DEX quote. DEX only.
func (b *ExchangeBuilder) Route(route RouteDTO) *ExchangeBuilder {
	if b.err == nil && route.IsZero() {
		b.err = newValidationErrorf("route must not be empty")
	}
	b.route = route
	return b
}

// Execute validates the assembled request and submits it.
func (b *ExchangeBuilder) Execute(ctx context.Context) (ExchangeResponse, error) {
	if b.err != nil {
		return ExchangeResponse{}, b.err
	}
	switch b.kind {
	case kindCEX:
		if err := b.validateCEX(); err != nil {
			return ExchangeResponse{}, err
		}
		return b.client.PostCEXExchange(ctx, CEXExchangeRequest{
			Amount:      b.amount,
			FromToken:   b.fromToken,
			ToToken:     b.toToken,
			AddressTo:   b.addressTo,
			Anonymous:   b.anonymous,
			ReceiverTag: b.receiverTag,
			WalletID:    b.walletID,
			IP:          b.ip,
			UserAgent:   b.userAgent,
			Timezone:    b.timezone,
			UseXmr:      b.useXmr,
		})
	case kindDEX:
		if err := b.validateDEX(); err != nil {
			return ExchangeResponse{}, err
		}
		return b.client.PostDEXExchange(ctx, DEXExchangeRequest{
			Amount:      b.amount,
			TokenIDFrom: b.fromToken,
			TokenIDTo:   b.toToken,
			AddressFrom: b.addressFrom,
			AddressTo:   b.addressTo,
			Swap:        b.swap,
			QuoteID:     b.quoteID,
			Route:       b.route,
		})
	default:
		return ExchangeResponse{}, newValidationErrorf("exchange type must be set, use CEX() or DEX()")
	}
}

func (b *ExchangeBuilder) validateCEX() error {
	switch {
	case b.amount == nil:
		return newValidationErrorf("amount is required")
	case b.fromToken == "":
		return newValidationErrorf("from_token is required")
	case b.toToken == "":
		return newValidationErrorf("to_token is required")
	case b.addressTo == "":
		return newValidationErrorf("address_to is required")
	}
	return nil
}

func (b *ExchangeBuilder) validateDEX() error {
	if err := b.validateCEX(); err != nil {
		return err
	}
	switch {
	case b.addressFrom == "":
		return newValidationErrorf("address_from is required")
	case b.swap == "":
		return newValidationErrorf("swap is required")
	case b.quoteID == "":
		return newValidationErrorf("quote_id is required")
	case b.route.IsZero():
		return newValidationErrorf("route is required")
	}
	return nil
}
