package commit

import (
	"bytes"
	"html/template"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

var cardTemplate = template.Must(template.New("card").Parse(
	`<div style="border:1px solid #e5e7eb;padding:12px;border-radius:8px;max-width:320px;">` +
		`<img src="{{.ImageURL}}" alt="{{.Name}}" style="width:100%;height:160px;object-fit:cover;border-radius:6px;margin-bottom:8px;" />` +
		`<h3 style="margin:0 0 6px 0;font-size:16px">{{.Name}}</h3>` +
		`<p style="margin:0 0 6px 0;color:#6b7280">{{.Description}}</p>` +
		`<div style="font-weight:600;">Precio: ${{.Price}}</div>` +
		`<div style="color:#6b7280;">Stock: {{.Stock}}</div>` +
		`</div>`))

// RenderProductCard fragmento HTML decorativo del producto para la vista de administración.
func RenderProductCard(p *entity.Product) string {
	var buf bytes.Buffer
	err := cardTemplate.Execute(&buf, struct {
		Name, Description, ImageURL, Price string
		Stock                              int
	}{
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
	})
	if err != nil {
		return ""
	}
	return buf.String()
}
