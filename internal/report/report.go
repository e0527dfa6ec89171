package report

import (
	"fmt"
	"io"
	"time"

	"mt5ops/internal/domain"
)

// Readiness thresholds, in percent of used margin and account currency.
const (
	marginLevelError = 100
	marginLevelWarn  = 200
	freeMarginWarn   = 100
)

// AccountSummary writes the formatted account report.
func AccountSummary(w io.Writer, a *domain.AccountSnapshot, now time.Time) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, Rule('=', 50))
	fmt.Fprintln(w, Center("ACCOUNT INFORMATION", 50))
	fmt.Fprintln(w, Rule('=', 50))
	fmt.Fprintf(w, "Account ID: %d\n", a.Login)
	fmt.Fprintf(w, "Server: %s\n", a.Server)
	fmt.Fprintf(w, "Company: %s\n", a.Company)
	fmt.Fprintf(w, "Account Name: %s\n", a.Name)
	fmt.Fprintf(w, "Currency: %s\n", a.Currency)
	fmt.Fprintf(w, "Leverage: 1:%d\n", a.Leverage)

	fmt.Fprintln(w)
	fmt.Fprintln(w, Rule('-', 30))
	fmt.Fprintln(w, Center("FINANCIAL DATA", 30))
	fmt.Fprintln(w, Rule('-', 30))
	fmt.Fprintf(w, "Balance: %s\n", Money(a.Balance, a.Currency))
	fmt.Fprintf(w, "Equity: %s\n", Money(a.Equity, a.Currency))
	fmt.Fprintf(w, "Profit/Loss: %s\n", Money(a.Profit, a.Currency))
	fmt.Fprintf(w, "Free Margin: %s\n", Money(a.FreeMargin, a.Currency))
	fmt.Fprintf(w, "Margin Level: %s\n", Percent(a.MarginLevel))

	fmt.Fprintln(w)
	fmt.Fprintln(w, Rule('-', 30))
	fmt.Fprintln(w, Center("TRADING STATUS", 30))
	fmt.Fprintln(w, Rule('-', 30))
	fmt.Fprintf(w, "Trading Allowed: %s\n", Flag(a.TradeAllowed))
	fmt.Fprintf(w, "Expert Advisors: %s\n", Flag(a.ExpertAllowed))
	fmt.Fprintf(w, "Last Updated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, Rule('=', 50))
}

// Readiness evaluates whether the account is ready for trading. It returns
// advisory warnings and blocking errors; the account is ready when errors is
// empty.
func Readiness(a *domain.AccountSnapshot) (warnings, errors []string) {
	if !a.TradeAllowed {
		errors = append(errors, "trading is not allowed on this account")
	}
	if !a.ExpertAllowed {
		errors = append(errors, "expert advisors are not allowed")
	}

	switch {
	case a.MarginLevel < marginLevelError:
		errors = append(errors, fmt.Sprintf("low margin level: %s", Percent(a.MarginLevel)))
	case a.MarginLevel < marginLevelWarn:
		warnings = append(warnings, fmt.Sprintf("margin level is low: %s", Percent(a.MarginLevel)))
	}

	if a.FreeMargin < freeMarginWarn {
		warnings = append(warnings, fmt.Sprintf("low free margin: %.2f", a.FreeMargin))
	}
	return warnings, errors
}

// PrintReadiness renders the readiness verdict and reports whether the
// account is ready.
func PrintReadiness(w io.Writer, a *domain.AccountSnapshot) bool {
	warnings, errs := Readiness(a)

	if len(warnings) > 0 {
		fmt.Fprintln(w, "\nWARNINGS:")
		for _, msg := range warnings {
			fmt.Fprintf(w, "   - %s\n", msg)
		}
	}
	if len(errs) > 0 {
		fmt.Fprintln(w, "\nERRORS:")
		for _, msg := range errs {
			fmt.Fprintf(w, "   - %s\n", msg)
		}
		return false
	}
	if len(warnings) == 0 {
		fmt.Fprintln(w, "\nAccount is ready for trading.")
	}
	return true
}

// MarketTableHeader writes the header of the market data table.
func MarketTableHeader(w io.Writer) {
	fmt.Fprintf(w, "%-10s %-10s %-10s %-10s %-20s\n", "Symbol", "Bid", "Ask", "Spread", "Time")
	fmt.Fprintln(w, Rule('-', 60))
}

// MarketRow writes one market data row. The point size converts the bid/ask
// gap into points.
func MarketRow(w io.Writer, symbol string, q *domain.Quote, point float64, digits int) {
	fmt.Fprintf(w, "%-10s %-10s %-10s %-10.1f %-20s\n",
		symbol, Price(q.Bid, digits), Price(q.Ask, digits),
		q.SpreadPoints(point), q.Time.Format("15:04:05"))
}

// MarketRowMissing writes a placeholder row for a symbol without data.
func MarketRowMissing(w io.Writer, symbol string) {
	fmt.Fprintf(w, "%-10s %-10s %-10s %-10s %-20s\n", symbol, "N/A", "N/A", "N/A", "N/A")
}

// OrderIntent writes the plan about to be submitted.
func OrderIntent(w io.Writer, plan *domain.OrderPlan, riskAmount float64, sized string) {
	fmt.Fprintf(w, "\nPlacing %s order for %s:\n", plan.Side, plan.Symbol)
	fmt.Fprintf(w, "Volume: %v (%s)\n", plan.Volume, sized)
	fmt.Fprintf(w, "Price: %v\n", plan.Price)
	fmt.Fprintf(w, "Stop Loss: %v\n", plan.StopLoss)
	fmt.Fprintf(w, "Take Profit: %v\n", plan.TakeProfit)
	fmt.Fprintf(w, "Risk Amount: %v\n", riskAmount)
}

// OrderAccepted writes a successful acknowledgement.
func OrderAccepted(w io.Writer, ack *domain.OrderAck) {
	fmt.Fprintln(w, "\nOrder placed successfully")
	fmt.Fprintf(w, "Order ticket: %d\n", ack.Order)
	fmt.Fprintf(w, "Deal ticket: %d\n", ack.Deal)
	fmt.Fprintf(w, "Volume: %v\n", ack.FilledVolume)
	fmt.Fprintf(w, "Price: %v\n", ack.FilledPrice)
	if !ack.Time.IsZero() {
		fmt.Fprintf(w, "Timestamp: %s\n", ack.Time.Format("2006-01-02 15:04:05"))
	}
}

// OrderRejected writes a rejection with its classified reason.
func OrderRejected(w io.Writer, retcode int, reason, comment string) {
	fmt.Fprintln(w, "\nOrder failed")
	fmt.Fprintf(w, "Return code: %d\n", retcode)
	fmt.Fprintf(w, "Reason: %s\n", reason)
	if comment != "" {
		fmt.Fprintf(w, "Comment: %s\n", comment)
	}
}

// TerminalRequirements writes the terminal requirements check.
func TerminalRequirements(w io.Writer, st *domain.TerminalStatus) {
	fmt.Fprintln(w, "\nSystem Requirements Check:")
	fmt.Fprintln(w, Rule('=', 40))
	fmt.Fprintf(w, "Terminal Build: %d\n", st.Build)
	fmt.Fprintf(w, "DLL Allowed: %s\n", Flag(st.DLLsAllowed))
	fmt.Fprintf(w, "Trade Allowed: %s\n", Flag(st.TradeAllowed))
	fmt.Fprintf(w, "Connected: %s\n", Flag(st.Connected))

	if !st.DLLsAllowed {
		fmt.Fprintln(w, "Warning: DLL imports not allowed")
	}
	if !st.TradeAllowed {
		fmt.Fprintln(w, "Warning: trading not allowed")
	}
	if !st.Connected {
		fmt.Fprintln(w, "Error: not connected to trading server")
	}
}
