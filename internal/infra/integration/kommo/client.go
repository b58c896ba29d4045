package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/jpher/readiness-funnel/internal/infra/queue"
)

type Client struct {
	apiToken string
	baseURL  string
}

func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		apiToken: apiToken,
		baseURL:  baseURL,
	}
}

// SyncLead cria (ou atualiza) o contato no Kommo e abre um lead com o
// score de readiness como tag. Chamado pelo worker da fila.
func (c *Client) SyncLead(ctx context.Context, payload queue.LeadCapturedPayload) error {
	if c.apiToken == "" {
		log.Println("⚠️ Kommo: API_TOKEN não configurado")
		return fmt.Errorf("kommo não configurado")
	}

	contactID, err := c.findOrCreateContact(ctx, payload)
	if err != nil {
		return fmt.Errorf("erro ao criar/buscar contato: %w", err)
	}

	leadData := []map[string]interface{}{
		{
			"name": fmt.Sprintf("%s - Readiness %d%%", payload.Name, payload.Percentage),
			"_embedded": map[string]interface{}{
				"tags": []map[string]interface{}{
					{"name": "readiness_assessment"},
				},
				"contacts": []map[string]interface{}{
					{"id": contactID},
				},
			},
		},
	}

	body, err := c.post(ctx, "/leads", leadData)
	if err != nil {
		return err
	}

	var result struct {
		Embedded struct {
			Leads []struct {
				ID int `json:"id"`
			} `json:"leads"`
		} `json:"_embedded"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return err
	}
	if len(result.Embedded.Leads) == 0 {
		return fmt.Errorf("lead não criado no kommo")
	}

	log.Printf("✅ Kommo: Lead criado #%d para %s", result.Embedded.Leads[0].ID, payload.Email)
	return nil
}

func (c *Client) findOrCreateContact(ctx context.Context, payload queue.LeadCapturedPayload) (int, error) {
	if id, err := c.findContactByEmail(ctx, payload.Email); err == nil && id > 0 {
		return id, nil
	}
	return c.createContact(ctx, payload)
}

func (c *Client) findContactByEmail(ctx context.Context, email string) (int, error) {
	endpoint := fmt.Sprintf("%s/contacts?query=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, err
	}
	c.addAuthHeaders(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("erro ao buscar contato: %d", resp.StatusCode)
	}

	var result struct {
		Embedded struct {
			Contacts []struct {
				ID int `json:"id"`
			} `json:"contacts"`
		} `json:"_embedded"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) > 0 {
		return result.Embedded.Contacts[0].ID, nil
	}

	return 0, fmt.Errorf("contato não encontrado")
}

func (c *Client) createContact(ctx context.Context, payload queue.LeadCapturedPayload) (int, error) {
	fields := []map[string]interface{}{
		{
			"field_code": "EMAIL",
			"values": []map[string]interface{}{
				{"value": payload.Email, "enum_code": "WORK"},
			},
		},
	}
	if payload.Phone != "" {
		fields = append(fields, map[string]interface{}{
			"field_code": "PHONE",
			"values": []map[string]interface{}{
				{"value": payload.Phone, "enum_code": "WORK"},
			},
		})
	}

	contactData := []map[string]interface{}{
		{
			"name":                 payload.Name,
			"custom_fields_values": fields,
		},
	}

	body, err := c.post(ctx, "/contacts", contactData)
	if err != nil {
		return 0, err
	}

	var result struct {
		Embedded struct {
			Contacts []struct {
				ID int `json:"id"`
			} `json:"contacts"`
		} `json:"_embedded"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) > 0 {
		return result.Embedded.Contacts[0].ID, nil
	}

	return 0, fmt.Errorf("erro ao obter ID do contato criado")
}

func (c *Client) post(ctx context.Context, path string, data interface{}) ([]byte, error) {
	payload, _ := json.Marshal(data)
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	c.addAuthHeaders(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("kommo %s: %d - %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
}
