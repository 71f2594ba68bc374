// Package heuristics fetches a business homepage and extracts the raw
// presence signals the friction scorer consumes. Anything it cannot
// detect stays at the zero value, which downstream treats as the
// friction-increasing case.
package heuristics

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
)

// providerMarker maps a lowercase substring marker in the page source to
// the provider name reported in scoring notes. Markers are checked in
// slice order so provider lists are reproducible across runs.
type providerMarker struct {
	marker   string
	provider string
}

var bookingMarkers = []providerMarker{
	{"calendly.com", "calendly"},
	{"acuityscheduling", "acuity"},
	{"squareup.com/appointments", "square"},
	{"setmore.com", "setmore"},
	{"housecallpro", "housecallpro"},
	{"getjobber.com", "jobber"},
	{"servicetitan", "servicetitan"},
	{"booksy.com", "booksy"},
	{"simplybook.me", "simplybook"},
	{"youcanbook.me", "youcanbookme"},
}

var chatMarkers = []providerMarker{
	{"intercom.io", "intercom"},
	{"widget.intercom", "intercom"},
	{"drift.com", "drift"},
	{"tawk.to", "tawk"},
	{"livechatinc", "livechat"},
	{"crisp.chat", "crisp"},
	{"zopim", "zendesk"},
	{"zdassets", "zendesk"},
	{"tidio", "tidio"},
	{"smartsupp", "smartsupp"},
	{"podium.com", "podium"},
}

var quoteMarkers = []providerMarker{
	{"gethearth", "hearth"},
	{"quotemachine", "quotemachine"},
	{"leadperfection", "leadperfection"},
	{"improveit360", "improveit360"},
}

// genericQuoteMarkers signal an instant-quote/estimator capability
// without identifying a provider.
var genericQuoteMarkers = []string{
	"instant quote",
	"instant-quote",
	"instantquote",
	"instant estimate",
	"online estimate",
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[\s.\-]\d{3}[\s.\-]\d{4}`)
)

// Extract parses a homepage and derives its HeuristicResult. The caller
// is expected to set HTMLSizeBytes from the raw fetched size; Extract
// fills it from len(html) as a default.
func Extract(html []byte) (model.HeuristicResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return model.HeuristicResult{}, eris.Wrap(err, "heuristics: parse html")
	}

	lower := strings.ToLower(string(html))

	var h model.HeuristicResult
	h.HTMLSizeBytes = int64(len(html))

	h.BookingProviders = matchProviders(lower, bookingMarkers)
	h.HasBooking = len(h.BookingProviders) > 0
	h.ChatProviders = matchProviders(lower, chatMarkers)
	h.HasChat = len(h.ChatProviders) > 0
	h.QuoteProviders = matchProviders(lower, quoteMarkers)
	h.HasInstantQuote = len(h.QuoteProviders) > 0
	if !h.HasInstantQuote {
		for _, marker := range genericQuoteMarkers {
			if strings.Contains(lower, marker) {
				h.HasInstantQuote = true
				break
			}
		}
	}

	extractForms(doc, &h)
	extractContacts(doc, lower, &h)

	h.HasViewportMeta = doc.Find(`meta[name="viewport"]`).Length() > 0

	h.HasAnalytics = strings.Contains(lower, "google-analytics.com") ||
		strings.Contains(lower, "googletagmanager.com/gtag/js") ||
		strings.Contains(lower, "gtag(")
	h.HasTagManager = strings.Contains(lower, "googletagmanager.com/gtm.js") ||
		strings.Contains(lower, "gtm-")
	h.HasAdsTag = strings.Contains(lower, "googleadservices") ||
		strings.Contains(lower, "googleads.g.doubleclick")
	h.HasPixel = strings.Contains(lower, "connect.facebook.net") ||
		strings.Contains(lower, "fbq(")

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		target := strings.ToLower(href + " " + s.Text())
		if strings.Contains(target, "privacy") {
			h.HasPrivacyPolicy = true
		}
		if strings.Contains(target, "terms") {
			h.HasTerms = true
		}
		if h.ContactURL == "" && strings.Contains(strings.ToLower(href), "contact") {
			h.ContactURL = href
		}
	})

	return h, nil
}

// extractForms counts fillable and required inputs across all forms.
func extractForms(doc *goquery.Document, h *model.HeuristicResult) {
	doc.Find("form").Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("type")
		switch strings.ToLower(typ) {
		case "hidden", "submit", "button", "image", "reset":
			return
		}
		if goquery.NodeName(s) == "input" && strings.EqualFold(typ, "file") {
			h.HasFileUpload = true
		}
		h.FormInputs++
		if _, required := s.Attr("required"); required {
			h.FormRequired++
		}
	})

	// File inputs outside <form> tags (dropzone-style uploaders) still count.
	if !h.HasFileUpload {
		h.HasFileUpload = doc.Find(`input[type="file"]`).Length() > 0
	}
}

// extractContacts collects emails and phone numbers from mailto/tel links
// and the raw page text.
func extractContacts(doc *goquery.Document, lower string, h *model.HeuristicResult) {
	emails := map[string]bool{}
	phones := map[string]bool{}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case strings.HasPrefix(strings.ToLower(href), "mailto:"):
			addr := strings.ToLower(strings.TrimPrefix(href, "mailto:"))
			if i := strings.Index(addr, "?"); i >= 0 {
				addr = addr[:i]
			}
			if addr != "" {
				emails[addr] = true
			}
		case strings.HasPrefix(strings.ToLower(href), "tel:"):
			num := strings.TrimPrefix(href, "tel:")
			if num != "" {
				phones[num] = true
			}
		}
	})

	for _, m := range emailPattern.FindAllString(lower, 10) {
		emails[m] = true
	}
	for _, m := range phonePattern.FindAllString(lower, 10) {
		phones[strings.TrimSpace(m)] = true
	}

	h.Emails = sortedKeys(emails)
	h.Phones = sortedKeys(phones)
}

func matchProviders(lower string, markers []providerMarker) []string {
	var providers []string
	seen := map[string]bool{}
	for _, m := range markers {
		if seen[m.provider] {
			continue
		}
		if strings.Contains(lower, m.marker) {
			providers = append(providers, m.provider)
			seen[m.provider] = true
		}
	}
	return providers
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
