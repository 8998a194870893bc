// Package page owns the dashboard markup and the element state bound to it.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	apperrors "github.com/yanqian/trafficai/pkg/errors"
)

//go:embed assets/index.html
var indexHTML []byte

// Element ids the controller binds to.
const (
	IDThemeToggle    = "toggle-mode"
	IDTrafficMap     = "traffic-map"
	IDConnectVehicle = "connect-vehicle"
	IDRouteOptimize  = "route-optimize"
	IDVoiceCommand   = "voice-command"
	IDAlertOptions   = "alert-options"
	IDSetAlert       = "set-alert"
	IDLogin          = "login-btn"

	ClassTrafficDisplay = "traffic-display"
)

var requiredIDs = []string{
	IDThemeToggle,
	IDTrafficMap,
	IDConnectVehicle,
	IDRouteOptimize,
	IDVoiceCommand,
	IDAlertOptions,
	IDSetAlert,
	IDLogin,
}

// Layout is what the controller needs to know about the served markup.
type Layout struct {
	HTML         []byte
	IDs          map[string]bool
	Anchors      []string
	AlertOptions []string
	HasTraffic   bool
}

// ParseLayout indexes ids, in-page anchors and alert options of an HTML document.
func ParseLayout(r io.Reader) (*Layout, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	layout := &Layout{HTML: raw, IDs: map[string]bool{}}
	doc.Find("[id]").Each(func(_ int, sel *goquery.Selection) {
		if id, ok := sel.Attr("id"); ok && id != "" {
			layout.IDs[id] = true
		}
	})
	doc.Find(`a[href^="#"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		layout.Anchors = append(layout.Anchors, href)
	})
	doc.Find("#" + IDAlertOptions + " option").Each(func(_ int, sel *goquery.Selection) {
		value, ok := sel.Attr("value")
		if !ok {
			value = strings.TrimSpace(sel.Text())
		}
		layout.AlertOptions = append(layout.AlertOptions, value)
	})
	layout.HasTraffic = doc.Find("."+ClassTrafficDisplay).Length() > 0
	return layout, nil
}

// DefaultLayout parses the embedded page.
func DefaultLayout() (*Layout, error) {
	return ParseLayout(bytes.NewReader(indexHTML))
}

// LoadLayout parses the page at path, or the embedded page when path is empty.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return DefaultLayout()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfig, "open page layout", err)
	}
	defer f.Close()
	return ParseLayout(f)
}

// Validate reports every missing binding and dangling anchor as one config error.
func (l *Layout) Validate() error {
	var problems []string
	for _, id := range requiredIDs {
		if !l.IDs[id] {
			problems = append(problems, "missing element #"+id)
		}
	}
	if !l.HasTraffic {
		problems = append(problems, "missing element ."+ClassTrafficDisplay)
	}
	if len(l.AlertOptions) == 0 && l.IDs[IDAlertOptions] {
		problems = append(problems, "#"+IDAlertOptions+" has no options")
	}
	dangling := map[string]bool{}
	for _, href := range l.Anchors {
		if target := strings.TrimPrefix(href, "#"); target == "" || !l.IDs[target] {
			dangling[href] = true
		}
	}
	hrefs := make([]string, 0, len(dangling))
	for href := range dangling {
		hrefs = append(hrefs, href)
	}
	sort.Strings(hrefs)
	for _, href := range hrefs {
		problems = append(problems, fmt.Sprintf("anchor %q has no target", href))
	}
	if len(problems) > 0 {
		return apperrors.Wrap(apperrors.CodeConfig, "invalid page layout: "+strings.Join(problems, "; "), nil)
	}
	return nil
}
