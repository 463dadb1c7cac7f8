package rules

import (
	"regexp"
	"strings"
)

// merchantRule rewrites one known messy merchant-name variant to its
// canonical spelling. Rules run in order against the uppercased description,
// each independently, before the generic cleanup pass.
type merchantRule struct {
	re   *regexp.Regexp
	repl string
}

var merchantRules = []merchantRule{
	// WT FED#01794 -> WT FED
	{regexp.MustCompile(`\bWT\s+FED[#\s]*\d+\b`), "WT FED"},

	// EUNIFYPAY* PAINTED -> EUNIFYPAY PAINTED
	{regexp.MustCompile(`\bEUNIFYPAY\*\s*`), "EUNIFYPAY "},

	// SHEGER INTERNATIONAL / SHEGER INTERNATION (truncated) -> SHEGER MARKET
	{regexp.MustCompile(`\bSHEGER\s+INTERNATION(?:AL)?\b`), "SHEGER MARKET"},

	// APPLEBEES 2104013 -> APPLEBEES
	{regexp.MustCompile(`\bAPPLEBEES\s+\d+\b`), "APPLEBEES"},

	// CHIPOTLE 0871 -> CHIPOTLE
	{regexp.MustCompile(`\bCHIPOTLE\s+\d+\b`), "CHIPOTLE"},

	// DOMINO'S 6217 -> DOMINO'S PIZZA (both apostrophe variants)
	{regexp.MustCompile(`\bDOMINO['\x{2019}]S\s+\d+\b`), "DOMINO'S PIZZA"},

	// KING SOOP 18605 E. 48T (truncated) -> KING SOOPERS
	{regexp.MustCompile(`\bKING\s+SOOP(?:ERS)?\b`), "KING SOOPERS"},

	// NAME-CHEAP.COM VGAIJC -> NAME-CHEAP.COM
	{regexp.MustCompile(`\bNAME-?CHEAP\.COM\s+[A-Z0-9]+\b`), "NAME-CHEAP.COM"},

	// WM SUPERCENTER -> WAL-MART
	{regexp.MustCompile(`\bWM\s+SUPERCENTER\b`), "WAL-MART"},

	// COMCAST / COMCAST CABLE / COMCAST-XFINITY CABLE SVCS -> COMCAST-XFINITY.
	// Anchored so tokens like 800-COMCAST stay untouched.
	{regexp.MustCompile(`(^|\s)COMCAST(?:-XFINITY)?(?:\s+CABLE(?:\s+SVCS)?)?\b`), "${1}COMCAST-XFINITY"},

	// PRMG WEB / PRIMELENDING ACH / PRIMELENDING WWW.PRIMELEND,TX -> PRIMELENDING
	{regexp.MustCompile(`\bPRMG\s+WEB\b`), "PRIMELENDING"},
	{regexp.MustCompile(`\bPRIMELENDING\s+ACH\b`), "PRIMELENDING"},
	{regexp.MustCompile(`\bPRIMELENDING\s+WWW\.PRIMELEND,?TX\b`), "PRIMELENDING"},

	// Online-transfer narrations carry account numbers and confirmation
	// codes; collapse each known destination to a standard token.
	{regexp.MustCompile(`\bONLINE\s+TRANSFER\b.*\bACTIVE\s+CASH\b.*`), "ONLINE TRANSFER TO WF ACTIVE CASH VISA"},
	{regexp.MustCompile(`\bONLINE\s+TRANSFER\b.*\bREFLECT\b.*`), "ONLINE TRANSFER TO WF REFLECT VISA"},
	{regexp.MustCompile(`\bONLINE\s+TRANSFER\b.*\bWAY2SAVE\b.*`), "ONLINE TRANSFER TO WAY2SAVE SAVINGS"},
	{regexp.MustCompile(`\bONLINE\s+TRANSFER\b.*\bEVERYDAY\s+CHECKING\b.*`), "ONLINE TRANSFER TO EVERYDAY CHECKING"},
}

// Generic cleanup, applied after the explicit rules so those still see the
// original noisy text.
var (
	asterisksRe      = regexp.MustCompile(`\*+`)
	refTokenRe       = regexp.MustCompile(`#\d+\b`)
	trailingNumberRe = regexp.MustCompile(`\s+\d+\b$`)
)

// ResolveMerchant collapses known messy merchant-name variants (store
// numbers, truncated names, punctuation noise) in an already-normalized
// description into one canonical spelling, then strips asterisks, #NNN
// reference tokens, and trailing bare store numbers.
func ResolveMerchant(normalized string) string {
	if normalized == "" {
		return ""
	}
	d := strings.ToUpper(CollapseSpaces(normalized))

	for _, r := range merchantRules {
		d = r.re.ReplaceAllString(d, r.repl)
	}

	// Ride-share fare variants (LYFT *RIDE, LYFT *2, ...) -> bare brand.
	if strings.HasPrefix(d, "LYFT") {
		return "LYFT"
	}

	d = asterisksRe.ReplaceAllString(d, " ")
	d = refTokenRe.ReplaceAllString(d, "")
	d = trailingNumberRe.ReplaceAllString(d, "")
	return CollapseSpaces(d)
}
