package emails

import (
	"fmt"
	"html"
	"time"
)

const (
	colorPrimary = "#0B3D91"
	colorAccent  = "#F2A900"
	colorText    = "#1F2937"
	colorMuted   = "#6B7280"
	colorBody    = "#F3F4F6"
)

// Layout wraps a content fragment in the shared branded shell.
func Layout(contentHTML string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body { margin: 0; padding: 0; background-color: %s; font-family: -apple-system, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; color: %s; }
    .content p { margin: 0 0 20px 0; font-size: 16px; line-height: 1.6; }
    .content h1 { font-size: 22px; margin: 0 0 18px 0; color: %s; }
    .cp-button { display: inline-block; background-color: %s; color: #ffffff !important; padding: 12px 28px; border-radius: 6px; text-decoration: none; font-weight: 600; }
    .footer { color: %s; font-size: 13px; }
  </style>
</head>
<body>
  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="background-color: %s;">
    <tr>
      <td align="center" style="padding: 32px 0;">
        <table role="presentation" width="600" cellspacing="0" cellpadding="0" style="background: #ffffff; border-radius: 8px; border-top: 4px solid %s;">
          <tr><td style="padding: 32px 40px 0 40px; font-size: 20px; font-weight: 700; color: %s;">%s</td></tr>
          <tr><td class="content" style="padding: 24px 40px;">%s</td></tr>
          <tr><td class="footer" align="center" style="padding: 0 40px 32px 40px;">Dúvidas? <a href="mailto:%s">%s</a><br>© %d %s</td></tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		brandName, colorBody, colorText, colorPrimary, colorPrimary, colorMuted,
		colorBody, colorAccent, colorPrimary, brandName, contentHTML,
		supportEmail, supportEmail, time.Now().Year(), brandName)
}

func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
