package terminal

import "fmt"

// MetaTrader 5 trade server return codes. Only the codes the scripts act on
// are named; everything else classifies as RejectUnknown.
const (
	RetcodeRequote       = 10004
	RetcodeReject        = 10006
	RetcodeDone          = 10009
	RetcodeInvalidVolume = 10014
	RetcodeInvalidPrice  = 10015
	RetcodeInvalidStops  = 10016
	RetcodeTradeDisabled = 10017
	RetcodeMarketClosed  = 10018
	RetcodeNoMoney       = 10019
	RetcodePriceChanged  = 10020
	RetcodeInvalidFill   = 10030
)

// RejectReason is the fixed taxonomy of order rejection kinds. Callers
// translate retcodes to these instead of propagating raw integers.
type RejectReason int

const (
	RejectUnknown RejectReason = iota
	RejectInvalidVolume
	RejectInvalidPrice
	RejectInvalidStops
	RejectTradeDisabled
	RejectMarketClosed
	RejectNoMoney
	RejectPriceChanged
	RejectRejected
	RejectInvalidFill
)

func (r RejectReason) String() string {
	switch r {
	case RejectInvalidVolume:
		return "invalid volume"
	case RejectInvalidPrice:
		return "invalid price"
	case RejectInvalidStops:
		return "invalid stop loss or take profit"
	case RejectTradeDisabled:
		return "trading is disabled"
	case RejectMarketClosed:
		return "market is closed"
	case RejectNoMoney:
		return "insufficient funds"
	case RejectPriceChanged:
		return "price changed"
	case RejectRejected:
		return "request rejected"
	case RejectInvalidFill:
		return "invalid order filling type"
	default:
		return "unknown rejection"
	}
}

// ClassifyRetcode maps a trade server return code onto the rejection
// taxonomy. RetcodeDone is not a rejection and classifies as RejectUnknown;
// callers check for success before classifying.
func ClassifyRetcode(code int) RejectReason {
	switch code {
	case RetcodeInvalidVolume:
		return RejectInvalidVolume
	case RetcodeInvalidPrice:
		return RejectInvalidPrice
	case RetcodeInvalidStops:
		return RejectInvalidStops
	case RetcodeTradeDisabled:
		return RejectTradeDisabled
	case RetcodeMarketClosed:
		return RejectMarketClosed
	case RetcodeNoMoney:
		return RejectNoMoney
	case RetcodePriceChanged, RetcodeRequote:
		return RejectPriceChanged
	case RetcodeReject:
		return RejectRejected
	case RetcodeInvalidFill:
		return RejectInvalidFill
	default:
		return RejectUnknown
	}
}

// OrderRejectedError reports a non-success acknowledgement from the trade
// server, carrying both the raw retcode and its classified reason.
type OrderRejectedError struct {
	Retcode int
	Reason  RejectReason
	Comment string
}

func (e *OrderRejectedError) Error() string {
	if e.Comment != "" {
		return fmt.Sprintf("terminal: order rejected: %s (retcode %d: %s)", e.Comment, e.Retcode, e.Reason)
	}
	return fmt.Sprintf("terminal: order rejected (retcode %d: %s)", e.Retcode, e.Reason)
}
