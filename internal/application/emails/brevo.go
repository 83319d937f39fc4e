package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

const (
	brandName    = "Conecta Pro"
	supportEmail = "suporte@conectapro.com.br"
	siteURL      = "https://conectapro.com.br"
)

type sendRequest struct {
	Sender      contact   `json:"sender"`
	To          []contact `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
	ReplyTo     *contact  `json:"replyTo,omitempty"`
}

type contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Sender sends transactional emails. Callers treat a nil Sender as disabled.
type Sender interface {
	SendWelcome(ctx context.Context, toEmail, name string) error
	SendNewConversation(ctx context.Context, toEmail, ownerName, buyerName, listingTitle string) error
}

// BrevoClient sends through Brevo's transactional API. With no APIKey every send is a no-op.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	BaseURL  string // overrides brevoAPI
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@conectapro.com.br"
}

func (c *BrevoClient) endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return brevoAPI
}

func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body, err := json.Marshal(sendRequest{
		Sender:      contact{Email: c.from(), Name: brandName},
		To:          []contact{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
		ReplyTo:     &contact{Email: supportEmail, Name: brandName + " Suporte"},
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *BrevoClient) SendWelcome(ctx context.Context, toEmail, name string) error {
	if name == "" {
		name = "empreendedor"
	}
	return c.send(ctx, toEmail, "Bem-vindo à "+brandName+"!", Layout(welcomeContent(name)))
}

// SendNewConversation tells a listing owner that a buyer opened a conversation.
func (c *BrevoClient) SendNewConversation(ctx context.Context, toEmail, ownerName, buyerName, listingTitle string) error {
	if ownerName == "" {
		ownerName = "anunciante"
	}
	subject := "Novo interessado em \"" + listingTitle + "\""
	return c.send(ctx, toEmail, subject, Layout(newConversationContent(ownerName, buyerName, listingTitle)))
}

func welcomeContent(name string) string {
	return fmt.Sprintf(`
    <h1>Olá, %s!</h1>
    <p>A sua conta na <strong>%s</strong> foi criada. Agora pode anunciar o seu negócio, guardar oportunidades e conversar diretamente com vendedores e investidores.</p>
    <p style="text-align: center;"><a href="%s/anuncios" class="cp-button">Ver anúncios</a></p>
    <p style="font-size: 14px; color: #666;">Se não criou esta conta, contacte o nosso suporte.</p>
`, EscapeHTML(name), brandName, siteURL)
}

func newConversationContent(ownerName, buyerName, listingTitle string) string {
	return fmt.Sprintf(`
    <h1>Olá, %s</h1>
    <p><strong>%s</strong> quer saber mais sobre o seu anúncio <strong>%s</strong>.</p>
    <p style="text-align: center;"><a href="%s/mensagens" class="cp-button">Abrir mensagens</a></p>
`, EscapeHTML(ownerName), EscapeHTML(buyerName), EscapeHTML(listingTitle), siteURL)
}
