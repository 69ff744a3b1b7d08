// Package templates renders the HTML pages of the roster UI as templ
// components.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// AppTitle is shown in the page header and the browser tab.
const AppTitle = "Aplikasi Verifikasi Dapodik - SMAN 2 Pematangsiantar"

// NavItem is one entry of the side menu.
type NavItem struct {
	Key   string
	Label string
	Href  string
}

// Menu lists the pages in menu order.
var Menu = []NavItem{
	{Key: "dashboard", Label: "Dashboard", Href: "/"},
	{Key: "input", Label: "Input Data", Href: "/input"},
	{Key: "upload", Label: "Upload File", Href: "/upload"},
	{Key: "cetak", Label: "Cetak PDF", Href: "/cetak"},
}

const styles = `
body{font-family:system-ui,sans-serif;margin:0;color:#1f2933;background:#f5f7fa}
header{background:#1e3a8a;color:#fff;padding:14px 24px;font-size:20px;font-weight:600}
.wrap{display:flex;min-height:calc(100vh - 52px)}
nav{width:190px;background:#fff;border-right:1px solid #d9e2ec;padding:16px 0}
nav a{display:block;padding:8px 20px;color:#243b53;text-decoration:none}
nav a.active{background:#e0e8f9;font-weight:600}
main{flex:1;padding:24px}
table{border-collapse:collapse;width:100%;background:#fff;font-size:13px}
th,td{border:1px solid #d9e2ec;padding:4px 8px;text-align:left}
th{background:#c8dcff}
.alert{padding:10px 14px;border-radius:4px;margin:12px 0}
.alert-info{background:#e0f2fe}
.alert-success{background:#dcfce7}
.alert-warning{background:#fef9c3}
.alert-error{background:#fee2e2}
.bar{background:#3b82f6;height:18px;color:#fff;font-size:12px;padding-left:4px}
form.grid{display:grid;grid-template-columns:1fr 1fr;gap:10px 24px;max-width:760px}
label{display:block;font-size:13px;margin-bottom:2px}
input,select{width:100%;padding:5px;box-sizing:border-box}
`

// Layout wraps a page body in the common document shell and side menu.
func Layout(active string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="id"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>` + templ.EscapeString(AppTitle) + `</title>`)
		b.WriteString(`<style>` + styles + `</style></head><body>`)
		b.WriteString(`<header>` + templ.EscapeString(AppTitle) + `</header><div class="wrap"><nav>`)
		for _, item := range Menu {
			class := ""
			if item.Key == active {
				class = ` class="active"`
			}
			b.WriteString(`<a href="` + item.Href + `"` + class + `>` + templ.EscapeString(item.Label) + `</a>`)
		}
		b.WriteString(`</nav><main>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</main></div></body></html>`)
		return err
	})
}

// ErrorAlert renders an error box with the user message, the suggested
// action and the support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="alert alert-error" role="alert"><strong>`)
		b.WriteString(templ.EscapeString(message))
		b.WriteString(`</strong>`)
		if action != "" {
			b.WriteString(`<div>` + templ.EscapeString(action) + `</div>`)
		}
		if code != "" {
			b.WriteString(`<small>Kode: ` + templ.EscapeString(code) + `</small>`)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func alert(b *strings.Builder, kind, text string) {
	b.WriteString(`<div class="alert alert-` + kind + `">` + templ.EscapeString(text) + `</div>`)
}

func classSelect(b *strings.Builder, name string, options []string, selected string, withAll bool) {
	b.WriteString(`<select name="` + name + `" id="` + name + `">`)
	if withAll {
		options = append([]string{allClasses}, options...)
	}
	for _, opt := range options {
		sel := ""
		if opt == selected {
			sel = " selected"
		}
		v := templ.EscapeString(opt)
		b.WriteString(`<option value="` + v + `"` + sel + `>` + v + `</option>`)
	}
	b.WriteString(`</select>`)
}
