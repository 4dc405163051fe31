package remote

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/GriffinCanCode/WebUIKit/internal/jscodes"
)

// Page returns html with the bridge script appended to its head. An empty
// html uses the built-in page.
func Page(html []byte) (string, error) {
	if len(bytes.TrimSpace(html)) == 0 {
		html = []byte(jscodes.Page)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	// Drop a previously injected bridge so reloading a saved page stays idempotent
	doc.Find("script#webuikit-bridge").Remove()
	doc.Find("head").AppendHtml(`<script id="webuikit-bridge">` + jscodes.Bridge + `</script>`)

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return out, nil
}
