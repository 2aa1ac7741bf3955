// Package collaborators consulta a los sistemas externos del back office
// (casos funerarios y órdenes de compra) únicamente para verificar que una
// referencia exista. El ledger nunca depende de ellos más allá de este check.
package collaborators

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/inventario-funeraria/internal/application/ledger"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
)

var _ ledger.ReferenceChecker = (*HTTPChecker)(nil)

// HTTPChecker verifica referencias con un GET al API del colaborador.
// 200 = existe, 404 = no existe; timeout o transporte caído se reportan como
// ErrReferenceCheckTimeout para que el caller pueda reintentar.
type HTTPChecker struct {
	casesBaseURL          string
	purchaseOrdersBaseURL string
	client                *http.Client
	timeout               time.Duration
}

// NewHTTPChecker construye el verificador. baseURL vacío deshabilita el check
// correspondiente (toda referencia de ese tipo se acepta sin verificar).
func NewHTTPChecker(casesBaseURL, purchaseOrdersBaseURL string, timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPChecker{
		casesBaseURL:          casesBaseURL,
		purchaseOrdersBaseURL: purchaseOrdersBaseURL,
		client:                &http.Client{Timeout: timeout},
		timeout:               timeout,
	}
}

// PurchaseOrderExists consulta GET {base}/api/purchase-orders/{ref}.
func (c *HTTPChecker) PurchaseOrderExists(ctx context.Context, ref string) (bool, error) {
	if c.purchaseOrdersBaseURL == "" {
		return true, nil
	}
	return c.exists(ctx, fmt.Sprintf("%s/api/purchase-orders/%s", c.purchaseOrdersBaseURL, url.PathEscape(ref)))
}

// CaseExists consulta GET {base}/api/cases/{ref}.
func (c *HTTPChecker) CaseExists(ctx context.Context, ref string) (bool, error) {
	if c.casesBaseURL == "" {
		return true, nil
	}
	return c.exists(ctx, fmt.Sprintf("%s/api/cases/%s", c.casesBaseURL, url.PathEscape(ref)))
}

func (c *HTTPChecker) exists(ctx context.Context, endpoint string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return false, domain.ErrReferenceCheckTimeout
		}
		// Transporte caído equivale a "no se pudo verificar", no a "no existe".
		return false, domain.ErrReferenceCheckTimeout
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("colaborador respondió %d en %s", resp.StatusCode, endpoint)
	}
}
