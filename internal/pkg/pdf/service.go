// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/techempire/storefront/internal/config"
	"github.com/techempire/storefront/internal/domain/build"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/domain/order"
)

var funcs = template.FuncMap{
	"price": catalog.FormatPrice,
	"date": func(t time.Time) string {
		return t.Format("02.01.2006")
	},
	"category": func(c catalog.Category) string {
		return c.Name()
	},
}

var (
	invoiceTmpl = template.Must(template.New("invoice").Funcs(funcs).Parse(layoutHead + invoiceBody + layoutFoot))
	sheetTmpl   = template.Must(template.New("build_sheet").Funcs(funcs).Parse(layoutHead + sheetBody + layoutFoot))
)

// Service handles PDF generation
type Service struct {
	company CompanyInfo
	now     func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		company: CompanyInfo{
			Name:    cfg.Company.Name,
			Address: cfg.Company.Address,
			Phone:   cfg.Company.Phone,
			Email:   cfg.Company.Email,
			Website: cfg.Company.Website,
		},
		now: time.Now,
	}
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	Title         string       `json:"title"`
	InvoiceNumber string       `json:"invoice_number"`
	InvoiceDate   string       `json:"invoice_date"`
	Order         *order.Order `json:"order"`
	Company       CompanyInfo  `json:"company"`
}

// BuildSheetData represents the data passed to the build sheet template
type BuildSheetData struct {
	Title   string            `json:"title"`
	Date    string            `json:"date"`
	Build   *build.SavedBuild `json:"build"`
	Missing []build.Slot      `json:"missing"`
	Company CompanyInfo       `json:"company"`
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	html, err := s.invoiceHTML(o)
	if err != nil {
		return nil, err
	}
	return render(html)
}

// GenerateBuildSheet generates a printable PC build sheet
func (s *Service) GenerateBuildSheet(b *build.SavedBuild) (*bytes.Buffer, error) {
	html, err := s.buildSheetHTML(b)
	if err != nil {
		return nil, err
	}
	return render(html)
}

func (s *Service) invoiceHTML(o *order.Order) (string, error) {
	data := InvoiceData{
		Title:         fmt.Sprintf("Счёт %s", o.OrderNumber),
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   s.now().Format("02.01.2006"),
		Order:         o,
		Company:       s.company,
	}
	return execute(invoiceTmpl, data)
}

func (s *Service) buildSheetHTML(b *build.SavedBuild) (string, error) {
	present := make(map[catalog.Category]bool, len(b.Components))
	for _, c := range b.Components {
		present[c.Category] = true
	}

	var missing []build.Slot
	for _, slot := range build.DefaultSlots {
		if slot.Required && !present[slot.Category] {
			missing = append(missing, slot)
		}
	}

	data := BuildSheetData{
		Title:   b.Name,
		Date:    s.now().Format("02.01.2006"),
		Build:   b,
		Missing: missing,
		Company: s.company,
	}
	return execute(sheetTmpl, data)
}

func execute(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// render converts HTML to PDF with wkhtmltopdf
func render(htmlContent string) (*bytes.Buffer, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	page.Encoding.Set("utf-8")

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

const layoutHead = `<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .title { font-size: 28px; font-weight: bold; color: #2563eb; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin: 20px 0 10px; color: #374151; }
        table.items { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        table.items th, table.items td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        table.items th { background-color: #f8f9fa; }
        table.items .num { text-align: right; width: 120px; }
        .total { font-size: 18px; font-weight: bold; text-align: right; }
        .warning { color: #92400e; background-color: #fef3c7; padding: 10px; border-radius: 4px; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Company.Name}}</h1>
        <p>{{.Company.Address}}</p>
        <p>Телефон: {{.Company.Phone}} · Email: {{.Company.Email}}</p>
    </div>
`

const layoutFoot = `
    <div class="footer">
        <p>{{.Company.Website}}</p>
    </div>
</body>
</html>
`

const invoiceBody = `
    <div class="title">СЧЁТ {{.InvoiceNumber}}</div>
    <p><strong>Дата:</strong> {{.InvoiceDate}}</p>
    <p><strong>Заказ:</strong> {{.Order.OrderNumber}} от {{date .Order.CreatedAt}}</p>
    <p><strong>Статус:</strong> {{.Order.Status.Name}}</p>

    <div class="section-title">Покупатель</div>
    {{if .Order.CustomerName}}<p>{{.Order.CustomerName}}</p>{{end}}
    <p>{{.Order.Email}}</p>
    {{if .Order.Phone}}<p>{{.Order.Phone}}</p>{{end}}
    <p><strong>Адрес доставки:</strong> {{.Order.ShippingAddress}}</p>
    <p><strong>Способ оплаты:</strong> {{.Order.PaymentMethod.Name}}</p>

    <table class="items">
        <thead>
            <tr><th>Товар</th><th class="num">Кол-во</th><th class="num">Цена</th><th class="num">Сумма</th></tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.ProductName}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{price .Price}}</td>
                <td class="num">{{price .TotalPrice}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <p class="total">Итого: {{price .Order.TotalAmount}}</p>
`

const sheetBody = `
    <div class="title">Конфигурация ПК: {{.Title}}</div>
    <p><strong>Дата:</strong> {{.Date}}</p>

    <table class="items">
        <thead>
            <tr><th>Компонент</th><th>Модель</th><th>Характеристики</th><th class="num">Цена</th></tr>
        </thead>
        <tbody>
            {{range .Build.Components}}
            <tr>
                <td>{{category .Category}}</td>
                <td>{{.Name}}</td>
                <td>{{.Specs}}</td>
                <td class="num">{{price .Price}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    {{if .Missing}}
    <p class="warning">Сборка не завершена. Не выбраны:{{range $i, $s := .Missing}}{{if $i}},{{end}} {{$s.Name}}{{end}}</p>
    {{end}}

    <p class="total">Итого: {{price .Build.Total}}</p>
`
