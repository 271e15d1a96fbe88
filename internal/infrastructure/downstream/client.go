// Package downstream contiene los clientes HTTP de los servicios externos: el microservicio de
// inventario (réplica best-effort de productos) y el servicio de cuentas (registro de usuarios).
package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jhoicas/farmasync-api/internal/application/ports"
)

// maxBodyBytes cota de lectura de respuestas; lo que exceda se descarta.
const maxBodyBytes = 64 * 1024

// maxErrorBody longitud del cuerpo que se conserva en un DownstreamError.
const maxErrorBody = 512

// postJSON envía payload y devuelve el cuerpo de una respuesta 2xx.
// Cualquier otro estado o fallo de transporte vuelve como *ports.DownstreamError.
func postJSON(ctx context.Context, client *http.Client, service, url string, payload any, headers map[string]string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ports.DownstreamError{Service: service, Err: fmt.Errorf("serializar payload: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &ports.DownstreamError{Service: service, Err: fmt.Errorf("crear request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &ports.DownstreamError{Service: service, Err: fmt.Errorf("timeout o cancelación: %w", ctx.Err())}
		}
		return nil, &ports.DownstreamError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ports.DownstreamError{Service: service, Status: resp.StatusCode, Err: fmt.Errorf("leer respuesta: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ports.DownstreamError{Service: service, Status: resp.StatusCode, Body: truncate(string(raw))}
	}
	return raw, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
