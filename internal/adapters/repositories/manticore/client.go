package manticore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	manticoresearch "github.com/manticoresoftware/manticoresearch-go"
)

type ManticoreClient struct {
	client     *manticoresearch.APIClient
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewClient создает клиента для HTTP API Manticore, baseURL вида http://localhost:9308
func NewClient(baseURL string, timeout time.Duration) (*ManticoreClient, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("empty manticore url")
	}

	configuration := manticoresearch.NewConfiguration()
	configuration.Servers = manticoresearch.ServerConfigurations{
		{
			URL: baseURL,
		},
	}

	// Увеличиваем таймауты для больших bulk операций
	configuration.HTTPClient = &http.Client{
		Timeout: 5 * time.Minute,
	}

	return &ManticoreClient{
		client:     manticoresearch.NewAPIClient(configuration),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: 3,
	}, nil
}

// GetClient возвращает внутренний клиент Manticore
func (c *ManticoreClient) GetClient() *manticoresearch.APIClient {
	return c.client
}

// execSQL выполняет служебный SQL запрос (DDL, DROP, COUNT)
func (c *ManticoreClient) execSQL(ctx context.Context, sql string) (*manticoresearch.SqlResponse, error) {
	req := c.client.UtilsAPI.Sql(ctx).Body(sql)
	req = req.RawResponse(true)

	resp, httpResp, err := c.client.UtilsAPI.SqlExecute(req)
	if err != nil {
		// Проверим детали ошибки
		if httpResp != nil && httpResp.Body != nil {
			body, _ := io.ReadAll(httpResp.Body)
			return nil, fmt.Errorf("failed to execute SQL: %w, response: %s", err, string(body))
		}
		return nil, fmt.Errorf("failed to execute SQL: %w", err)
	}

	if httpResp != nil && httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SQL returned HTTP %d", httpResp.StatusCode)
	}

	// Проверяем наличие ошибок в ответе
	if resp != nil && resp.SqlObjResponse != nil {
		hits := resp.SqlObjResponse.GetHits()
		if sqlErr, ok := hits["error"]; ok && sqlErr != nil && sqlErr != "" {
			return nil, fmt.Errorf("SQL error: %v", sqlErr)
		}
	}

	return resp, nil
}

// TableExists проверяет существование таблицы через SHOW CREATE TABLE
func (c *ManticoreClient) TableExists(ctx context.Context, tableName string) (bool, error) {
	req := c.client.UtilsAPI.Sql(ctx).Body(fmt.Sprintf("SHOW CREATE TABLE %s", tableName))
	req = req.RawResponse(true)

	if _, _, err := c.client.UtilsAPI.SqlExecute(req); err != nil {
		// Если ошибка - таблицы нет
		return false, nil
	}
	return true, nil
}

// DropTable удаляет таблицу
func (c *ManticoreClient) DropTable(ctx context.Context, tableName string) error {
	if _, err := c.execSQL(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}

// TruncateTable очищает таблицу
func (c *ManticoreClient) TruncateTable(ctx context.Context, tableName string) error {
	if _, err := c.execSQL(ctx, fmt.Sprintf("TRUNCATE TABLE %s", tableName)); err != nil {
		return fmt.Errorf("failed to truncate table %s: %w", tableName, err)
	}
	return nil
}

// GetTableCount возвращает количество документов в таблице
func (c *ManticoreClient) GetTableCount(ctx context.Context, tableName string) (int64, error) {
	resp, err := c.execSQL(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName))
	if err != nil {
		return 0, fmt.Errorf("failed to get table count: %w", err)
	}
	if resp == nil || resp.SqlObjResponse == nil {
		return 0, nil
	}

	hits := resp.SqlObjResponse.GetHits()

	// Извлекаем данные из Hits
	if data, ok := hits["data"]; ok {
		if rows, ok := data.([]interface{}); ok && len(rows) > 0 {
			if row, ok := rows[0].(map[string]interface{}); ok {
				if count, ok := row["count(*)"]; ok {
					n, err := toInt64(count)
					if err != nil {
						return 0, err
					}
					return n, nil
				}
			}
		}
	}

	return 0, nil
}

// FetchRows выполняет SELECT через /sql и возвращает строки вместе с id документа
func (c *ManticoreClient) FetchRows(ctx context.Context, query string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	err := c.withRetry(ctx, func() error {
		var err error
		rows, err = c.fetchRows(ctx, query)
		return err
	})
	return rows, err
}

func (c *ManticoreClient) fetchRows(ctx context.Context, query string) ([]map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sql", strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Error string `json:"error"`
		Hits  struct {
			Hits []struct {
				ID     json.Number            `json:"_id"`
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("SQL error: %s", result.Error)
	}

	rows := make([]map[string]interface{}, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		row := make(map[string]interface{}, len(hit.Source)+1)
		// Данные из _source
		for k, v := range hit.Source {
			row[k] = v
		}
		// ID из верхнего уровня
		row["id"] = hit.ID
		rows = append(rows, row)
	}

	return rows, nil
}

// bulk отправляет NDJSON команды в /bulk
func (c *ManticoreClient) bulk(ctx context.Context, commands []map[string]interface{}) error {
	if len(commands) == 0 {
		return nil
	}

	// Создаем NDJSON буфер
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	for _, cmd := range commands {
		if err := encoder.Encode(cmd); err != nil {
			return fmt.Errorf("failed to marshal bulk command: %w", err)
		}
	}

	data := buf.Bytes()
	return c.withRetry(ctx, func() error {
		return c.bulkRequest(ctx, data)
	})
}

func (c *ManticoreClient) bulkRequest(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bulk", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// Читаем ответ
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bulk request returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Errors bool        `json:"errors"`
		Error  interface{} `json:"error"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	// Проверяем на ошибки
	if response.Errors {
		if response.Error != nil && response.Error != "" {
			return fmt.Errorf("bulk error: %v", response.Error)
		}
		return fmt.Errorf("bulk completed with errors: %s", string(body))
	}

	return nil
}

// withRetry повторяет запрос с линейной задержкой
func (c *ManticoreClient) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Second * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("Manticore request failed (attempt %d/%d): %v", attempt+1, c.maxRetries, lastErr)
	}
	return fmt.Errorf("failed after %d attempts: %w", c.maxRetries, lastErr)
}

// escapeString экранирует строку для использования в SQL литерале
func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, r := range s {
		switch r {
		case '\\', '\'':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// toInt64 преобразует числовое значение из ответа Manticore
func toInt64(val interface{}) (int64, error) {
	switch v := val.(type) {
	case nil:
		return 0, nil
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return json.Number(v).Int64()
	default:
		return 0, fmt.Errorf("unsupported type for int64 conversion: %T", val)
	}
}
