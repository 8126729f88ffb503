package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// landingPage renders the static landing page.
func landingPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Tempo</title>
</head>
<body>
<h1>Tempo</h1>
<p>Interval timers with CSV import and export. The API lives under <code>/api/v1</code>.</p>
</body>
</html>
`)
		return err
	})
}
