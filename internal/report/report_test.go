package report

import (
	"strings"
	"testing"
	"time"

	"mt5ops/internal/domain"
)

func healthyAccount() *domain.AccountSnapshot {
	return &domain.AccountSnapshot{
		Login: 123456, Server: "Demo-Server", Company: "Broker Co",
		Name: "Operator", Currency: "USD",
		Balance: 10000, Equity: 10250, Profit: 250,
		Margin: 100, FreeMargin: 10150, MarginLevel: 10250,
		Leverage: 100, TradeAllowed: true, ExpertAllowed: true,
	}
}

func TestReadinessHealthy(t *testing.T) {
	warnings, errs := Readiness(healthyAccount())
	if len(warnings) != 0 || len(errs) != 0 {
		t.Errorf("Readiness(healthy) = (%v, %v), want clean", warnings, errs)
	}
}

func TestReadinessMarginLevels(t *testing.T) {
	a := healthyAccount()

	a.MarginLevel = 150
	warnings, errs := Readiness(a)
	if len(errs) != 0 {
		t.Errorf("margin level 150: errors = %v, want none", errs)
	}
	if len(warnings) == 0 || !strings.Contains(warnings[0], "margin level") {
		t.Errorf("margin level 150: warnings = %v, want margin warning", warnings)
	}

	a.MarginLevel = 50
	_, errs = Readiness(a)
	if len(errs) == 0 || !strings.Contains(errs[0], "low margin level") {
		t.Errorf("margin level 50: errors = %v, want margin error", errs)
	}
}

func TestReadinessPermissions(t *testing.T) {
	a := healthyAccount()
	a.TradeAllowed = false
	a.ExpertAllowed = false
	_, errs := Readiness(a)
	if len(errs) != 2 {
		t.Fatalf("errors = %v, want trading and EA violations", errs)
	}
}

func TestReadinessFreeMargin(t *testing.T) {
	a := healthyAccount()
	a.FreeMargin = 50
	warnings, _ := Readiness(a)
	found := false
	for _, msg := range warnings {
		if strings.Contains(msg, "free margin") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want free margin warning", warnings)
	}
}

func TestPrintReadinessVerdict(t *testing.T) {
	var buf strings.Builder
	if !PrintReadiness(&buf, healthyAccount()) {
		t.Error("PrintReadiness(healthy) = false, want true")
	}
	if !strings.Contains(buf.String(), "ready for trading") {
		t.Errorf("output = %q, want ready message", buf.String())
	}

	buf.Reset()
	blocked := healthyAccount()
	blocked.TradeAllowed = false
	if PrintReadiness(&buf, blocked) {
		t.Error("PrintReadiness(blocked) = true, want false")
	}
	if !strings.Contains(buf.String(), "ERRORS:") {
		t.Errorf("output = %q, want errors section", buf.String())
	}
}

func TestAccountSummaryContent(t *testing.T) {
	var buf strings.Builder
	AccountSummary(&buf, healthyAccount(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	out := buf.String()

	for _, want := range []string{
		"ACCOUNT INFORMATION", "Account ID: 123456", "Server: Demo-Server",
		"Leverage: 1:100", "Balance: 10000.00 USD", "Margin Level: 10250.00%",
		"Trading Allowed: yes", "Last Updated: 2026-03-01 12:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestMarketRows(t *testing.T) {
	var buf strings.Builder
	MarketTableHeader(&buf)
	q := &domain.Quote{Symbol: "EURUSD", Bid: 1.10497, Ask: 1.10500,
		Time: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)}
	MarketRow(&buf, "EURUSD", q, 0.00001, 5)
	MarketRowMissing(&buf, "GBPUSD")
	out := buf.String()

	if !strings.Contains(out, "1.10497") || !strings.Contains(out, "1.10500") {
		t.Errorf("row missing prices: %q", out)
	}
	if !strings.Contains(out, "09:30:00") {
		t.Errorf("row missing time: %q", out)
	}
	if !strings.Contains(out, "N/A") {
		t.Errorf("missing-data row not rendered: %q", out)
	}
}

func TestOrderReports(t *testing.T) {
	var buf strings.Builder
	plan := &domain.OrderPlan{
		Symbol: "EURUSD", Side: domain.SideBuy, Volume: 0.10,
		Price: 1.10500, StopLoss: 1.10000, TakeProfit: 1.11500,
	}
	OrderIntent(&buf, plan, 25.0, "exact")
	if !strings.Contains(buf.String(), "Placing buy order for EURUSD") {
		t.Errorf("intent = %q, want side and symbol", buf.String())
	}

	buf.Reset()
	OrderAccepted(&buf, &domain.OrderAck{Order: 42, Deal: 43, FilledVolume: 0.10, FilledPrice: 1.10500})
	if !strings.Contains(buf.String(), "Order ticket: 42") {
		t.Errorf("ack = %q, want ticket", buf.String())
	}

	buf.Reset()
	OrderRejected(&buf, 10019, "insufficient funds", "No money")
	out := buf.String()
	if !strings.Contains(out, "10019") || !strings.Contains(out, "insufficient funds") {
		t.Errorf("rejection = %q, want retcode and reason", out)
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := Money(1234.5, "USD"); got != "1234.50 USD" {
		t.Errorf("Money = %q", got)
	}
	if got := Percent(99.123); got != "99.12%" {
		t.Errorf("Percent = %q", got)
	}
	if got := Flag(true); got != "yes" {
		t.Errorf("Flag(true) = %q", got)
	}
	if got := Price(1.105, 5); got != "1.10500" {
		t.Errorf("Price = %q", got)
	}
	if got := Rule('=', 5); got != "=====" {
		t.Errorf("Rule = %q", got)
	}
}
